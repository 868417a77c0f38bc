package middleware

import (
	"context"
	"fmt"
	"net/http"

	"hospital-management-backend/internal/domain/entity"
	"hospital-management-backend/internal/domain/repository"
	"hospital-management-backend/pkg/jwt"
	"hospital-management-backend/pkg/response"

	"github.com/sirupsen/logrus"
)

type contextKey string

const UserKey contextKey = "user"

type AuthMiddleware struct {
	jwtService *jwt.JWTService
	userRepo   repository.UserRepository
	log        *logrus.Logger
}

func NewAuthMiddleware(jwtService *jwt.JWTService, userRepo repository.UserRepository, log *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userRepo:   userRepo,
		log:        log,
	}
}

// RequireRole resolves the caller from the role-appropriate session cookie,
// loads the account and attaches it to the request context. Missing or
// invalid tokens short-circuit with 401; a valid identity of the wrong role
// gets 403.
func (m *AuthMiddleware) RequireRole(role entity.Role) func(http.Handler) http.Handler {
	cookieName := jwt.CookieName(string(role))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				response.Unauthorized(w, "User is not authenticated")
				return
			}

			claims, err := m.jwtService.ValidateToken(cookie.Value)
			if err != nil {
				response.Unauthorized(w, "Invalid or expired token")
				return
			}

			user, err := m.userRepo.FindByID(r.Context(), claims.UserID)
			if err != nil {
				m.log.Warnf("Failed to load user %s from token: %+v", claims.UserID, err)
				response.InternalServerError(w, "Failed to authenticate request")
				return
			}
			if user == nil {
				response.Unauthorized(w, "User is not authenticated")
				return
			}

			if user.Role != role {
				response.Forbidden(w, fmt.Sprintf("%s not authorized for this resource", user.Role))
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserFromContext extracts the authenticated user from context.
func GetUserFromContext(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(UserKey).(*entity.User)
	return user, ok
}
