package jwt

import (
	"errors"
	"net/http"
	"time"

	"hospital-management-backend/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Cookie names per privileged role. A browser can hold both at once, which
// lets one machine stay logged into the patient site and the admin dashboard.
const (
	AdminCookieName   = "adminToken"
	PatientCookieName = "patientToken"
)

var ErrInvalidToken = errors.New("invalid or expired token")

type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

type JWTService struct {
	config config.JWTConfig
}

func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{config: cfg}
}

// CookieName maps a role to its session cookie. Admin sessions get their own
// cookie; every other role shares the patient cookie, matching the clients.
func CookieName(role string) string {
	if role == "Admin" {
		return AdminCookieName
	}
	return PatientCookieName
}

func (s *JWTService) GenerateToken(userID uuid.UUID, role string) (string, error) {
	claims := Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.config.Expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Secret))
}

func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.config.Secret), nil
	})

	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// SetCookie attaches the session token under the role-specific cookie name.
func (s *JWTService) SetCookie(w http.ResponseWriter, role, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName(role),
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(s.config.CookieExpiry),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie overwrites the role's cookie with an already-expired empty
// value so the client drops it immediately.
func (s *JWTService) ClearCookie(w http.ResponseWriter, role string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName(role),
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *JWTService) GetExpiry() time.Duration {
	return s.config.Expiry
}
