package jwt

import (
	"net/http/httptest"
	"testing"
	"time"

	"hospital-management-backend/config"

	"github.com/google/uuid"
)

func testService(expiry time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:       "test-secret",
		Expiry:       expiry,
		CookieExpiry: expiry,
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := testService(time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, "Patient")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("expected user id %s, got %s", userID, claims.UserID)
	}
	if claims.Role != "Patient" {
		t.Errorf("expected role Patient, got %s", claims.Role)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	userID := uuid.New()

	token, err := testService(time.Hour).GenerateToken(userID, "Admin")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	other := NewJWTService(config.JWTConfig{Secret: "another-secret", Expiry: time.Hour})
	if _, err := other.ValidateToken(token); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for foreign signature, got %v", err)
	}
}

func TestValidateTokenExpired(t *testing.T) {
	svc := testService(-time.Minute)

	token, err := svc.GenerateToken(uuid.New(), "Patient")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := svc.ValidateToken(token); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	if _, err := testService(time.Hour).ValidateToken("not-a-token"); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestCookieName(t *testing.T) {
	if got := CookieName("Admin"); got != AdminCookieName {
		t.Errorf("expected %s for Admin, got %s", AdminCookieName, got)
	}
	if got := CookieName("Patient"); got != PatientCookieName {
		t.Errorf("expected %s for Patient, got %s", PatientCookieName, got)
	}
	// doctors share the patient-facing cookie
	if got := CookieName("Doctor"); got != PatientCookieName {
		t.Errorf("expected %s for Doctor, got %s", PatientCookieName, got)
	}
}

func TestSetCookie(t *testing.T) {
	svc := testService(time.Hour)
	rec := httptest.NewRecorder()

	svc.SetCookie(rec, "Admin", "token-value")

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Name != AdminCookieName {
		t.Errorf("expected cookie name %s, got %s", AdminCookieName, cookie.Name)
	}
	if cookie.Value != "token-value" {
		t.Errorf("expected cookie value token-value, got %s", cookie.Value)
	}
	if !cookie.HttpOnly {
		t.Error("session cookie must be httpOnly")
	}
}

func TestClearCookie(t *testing.T) {
	svc := testService(time.Hour)
	rec := httptest.NewRecorder()

	svc.ClearCookie(rec, "Patient")

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	cookie := cookies[0]
	if cookie.Name != PatientCookieName {
		t.Errorf("expected cookie name %s, got %s", PatientCookieName, cookie.Name)
	}
	if cookie.Value != "" {
		t.Errorf("cleared cookie should be empty, got %s", cookie.Value)
	}
	if cookie.MaxAge >= 0 && !cookie.Expires.Before(time.Now()) {
		t.Error("cleared cookie should expire immediately")
	}
}
