package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/networkasro/backoffice/internal/core/domain"
	"github.com/networkasro/backoffice/internal/core/ports"
)

type stubAuthService struct {
	signUpFn  func(ctx context.Context, input ports.SignUpInput) (*domain.Profile, error)
	signInFn  func(ctx context.Context, email, password string) (*domain.Session, *domain.Profile, error)
	refreshFn func(ctx context.Context, refreshToken string) (*domain.Session, error)
	signOutFn func(ctx context.Context, refreshToken string) error
	profileFn func(ctx context.Context, userID string) (*domain.Profile, error)
	adminFn   func(ctx context.Context, callerRole domain.Role, input ports.SignUpInput) (*domain.Profile, error)
}

func (s *stubAuthService) SignUp(ctx context.Context, input ports.SignUpInput) (*domain.Profile, error) {
	return s.signUpFn(ctx, input)
}

func (s *stubAuthService) SignIn(ctx context.Context, email, password string) (*domain.Session, *domain.Profile, error) {
	return s.signInFn(ctx, email, password)
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (*domain.Session, error) {
	return s.refreshFn(ctx, refreshToken)
}

func (s *stubAuthService) SignOut(ctx context.Context, refreshToken string) error {
	return s.signOutFn(ctx, refreshToken)
}

func (s *stubAuthService) Profile(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.profileFn(ctx, userID)
}

func (s *stubAuthService) AdminCreateUser(ctx context.Context, callerRole domain.Role, input ports.SignUpInput) (*domain.Profile, error) {
	return s.adminFn(ctx, callerRole, input)
}

func newAuthContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_SignUp_Success(t *testing.T) {
	stub := &stubAuthService{
		signUpFn: func(ctx context.Context, input ports.SignUpInput) (*domain.Profile, error) {
			if input.Email != "budi@networkasro.id" || input.FullName != "Budi" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Profile{UserID: "u1", Email: input.Email, FullName: input.FullName, Role: domain.RoleSales}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthContext(t, http.MethodPost, "/v1/auth/signup",
		`{"email":"budi@networkasro.id","password":"rahasia-123","full_name":"Budi"}`)

	if err := h.SignUp(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["role"] != "sales" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_SignUp_UserExists(t *testing.T) {
	stub := &stubAuthService{
		signUpFn: func(ctx context.Context, input ports.SignUpInput) (*domain.Profile, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newAuthContext(t, http.MethodPost, "/v1/auth/signup",
		`{"email":"budi@networkasro.id","password":"rahasia-123","full_name":"Budi"}`)

	if err := h.SignUp(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_SignUp_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		signUpFn: func(ctx context.Context, input ports.SignUpInput) (*domain.Profile, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	for _, body := range []string{"not-json", `{"email":"not-an-email","password":"rahasia-123","full_name":"Budi"}`, `{"email":"budi@networkasro.id","password":"short","full_name":"Budi"}`} {
		c, _ := newAuthContext(t, http.MethodPost, "/v1/auth/signup", body)

		err := h.SignUp(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
			t.Fatalf("body %q: expected 400, got %v", body, err)
		}
	}
}

func TestAuthHandler_SignIn_Success(t *testing.T) {
	stub := &stubAuthService{
		signInFn: func(ctx context.Context, email, password string) (*domain.Session, *domain.Profile, error) {
			if email != "budi@networkasro.id" || password != "rahasia-123" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &domain.Session{
					AccessToken:  "access-token",
					RefreshToken: "refresh-token",
					ExpiresAt:    time.Now().Add(time.Hour),
				},
				&domain.Profile{UserID: "u1", Role: domain.RoleSales}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthContext(t, http.MethodPost, "/v1/auth/signin",
		`{"email":"budi@networkasro.id","password":"rahasia-123"}`)

	if err := h.SignIn(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] != "access-token" || resp["refresh_token"] != "refresh-token" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, ok := resp["profile"].(map[string]any); !ok {
		t.Fatalf("expected profile in response")
	}
}

func TestAuthHandler_SignIn_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		signInFn: func(ctx context.Context, email, password string) (*domain.Session, *domain.Profile, error) {
			return nil, nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newAuthContext(t, http.MethodPost, "/v1/auth/signin",
		`{"email":"budi@networkasro.id","password":"salah"}`)

	if err := h.SignIn(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Refresh_RotatesPair(t *testing.T) {
	stub := &stubAuthService{
		refreshFn: func(ctx context.Context, refreshToken string) (*domain.Session, error) {
			if refreshToken != "old-refresh" {
				t.Fatalf("unexpected token: %s", refreshToken)
			}
			return &domain.Session{AccessToken: "new-access", RefreshToken: "new-refresh", ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthContext(t, http.MethodPost, "/v1/auth/refresh", `{"refresh_token":"old-refresh"}`)

	if err := h.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["refresh_token"] != "new-refresh" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Refresh_Expired(t *testing.T) {
	stub := &stubAuthService{
		refreshFn: func(ctx context.Context, refreshToken string) (*domain.Session, error) {
			return nil, domain.ErrSessionExpired
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newAuthContext(t, http.MethodPost, "/v1/auth/refresh", `{"refresh_token":"spent"}`)

	if err := h.Refresh(c); !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}

func TestAuthHandler_SignOut(t *testing.T) {
	revoked := ""
	stub := &stubAuthService{
		signOutFn: func(ctx context.Context, refreshToken string) error {
			revoked = refreshToken
			return nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthContext(t, http.MethodPost, "/v1/auth/signout", `{"refresh_token":"tok"}`)

	if err := h.SignOut(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if revoked != "tok" {
		t.Fatalf("revoked = %q", revoked)
	}
}
