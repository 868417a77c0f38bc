package middleware

import (
	"net/http"

	"hospital-management-backend/config"
)

// CORSMiddleware allows the configured frontend and dashboard origins only.
// Credentials stay on because sessions ride in cookies.
type CORSMiddleware struct {
	allowedOrigins map[string]bool
}

func NewCORSMiddleware(cfg config.CORSConfig) *CORSMiddleware {
	allowed := make(map[string]bool)
	if cfg.FrontendURL != "" {
		allowed[cfg.FrontendURL] = true
	}
	if cfg.DashboardURL != "" {
		allowed[cfg.DashboardURL] = true
	}
	return &CORSMiddleware{allowedOrigins: allowed}
}

func (m *CORSMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		origin := req.Header.Get("Origin")
		if m.allowedOrigins[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}

		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, req)
	})
}
