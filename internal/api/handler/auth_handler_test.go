package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/campusworks/campus-api/internal/core/domain"
	"github.com/campusworks/campus-api/internal/core/ports"
)

type stubAuthService struct {
	signupFn      func(ctx context.Context, input ports.SignupInput) (*ports.AuthResult, error)
	signupAdminFn func(ctx context.Context, input ports.SignupInput) (*ports.AuthResult, error)
	signinFn      func(ctx context.Context, email, password string) (*ports.AuthResult, error)
}

func (s *stubAuthService) Signup(ctx context.Context, input ports.SignupInput) (*ports.AuthResult, error) {
	return s.signupFn(ctx, input)
}

func (s *stubAuthService) SignupAdmin(ctx context.Context, input ports.SignupInput) (*ports.AuthResult, error) {
	return s.signupAdminFn(ctx, input)
}

func (s *stubAuthService) Signin(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.signinFn(ctx, email, password)
}

func newAuthTestContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSignupReturnsTokenAndUser(t *testing.T) {
	svc := &stubAuthService{
		signupFn: func(_ context.Context, input ports.SignupInput) (*ports.AuthResult, error) {
			if input.Email != "alice@example.com" {
				t.Fatalf("email = %q", input.Email)
			}
			return &ports.AuthResult{
				Token: "tok",
				User:  domain.PublicUser{ID: "u1", Username: input.Username, Email: input.Email, Role: domain.RoleUser},
			}, nil
		},
	}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(t, `{"username":"alice","email":"alice@example.com","password":"secret123"}`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token != "tok" {
		t.Fatalf("token = %q", resp.Token)
	}
	if resp.User.Role != domain.RoleUser {
		t.Fatalf("role = %q", resp.User.Role)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("response leaks password material: %s", rec.Body.String())
	}
}

func TestSignupAdminUsesAdminPath(t *testing.T) {
	called := false
	svc := &stubAuthService{
		signupAdminFn: func(_ context.Context, input ports.SignupInput) (*ports.AuthResult, error) {
			called = true
			return &ports.AuthResult{
				Token: "tok",
				User:  domain.PublicUser{ID: "u1", Role: domain.RoleAdmin},
			}, nil
		},
	}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(t, `{"username":"root","email":"root@example.com","password":"secret123"}`)
	if err := h.SignupAdmin(c); err != nil {
		t.Fatalf("SignupAdmin: %v", err)
	}
	if !called {
		t.Fatal("SignupAdmin service path not used")
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
}

func TestSignupInvalidPayload(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newAuthTestContext(t, `{"email":"not-an-email","password":"secret123"}`)
	err := h.Signup(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400", err)
	}
}

func TestSignupShortPassword(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newAuthTestContext(t, `{"email":"a@example.com","password":"abc"}`)
	err := h.Signup(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400", err)
	}
}

func TestSignupServiceErrorPropagates(t *testing.T) {
	svc := &stubAuthService{
		signupFn: func(context.Context, ports.SignupInput) (*ports.AuthResult, error) {
			return nil, domain.ErrUserExists
		},
	}
	h := NewAuthHandler(svc)

	c, _ := newAuthTestContext(t, `{"email":"a@example.com","password":"secret123"}`)
	if err := h.Signup(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("err = %v, want ErrUserExists", err)
	}
}

func TestSigninSuccess(t *testing.T) {
	svc := &stubAuthService{
		signinFn: func(_ context.Context, email, password string) (*ports.AuthResult, error) {
			return &ports.AuthResult{
				Token: "tok",
				User:  domain.PublicUser{ID: "u1", Email: email, Role: domain.RoleUser},
			}, nil
		},
	}
	h := NewAuthHandler(svc)

	c, rec := newAuthTestContext(t, `{"email":"a@example.com","password":"secret123"}`)
	if err := h.Signin(c); err != nil {
		t.Fatalf("Signin: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestSigninInvalidCredentialsPropagate(t *testing.T) {
	svc := &stubAuthService{
		signinFn: func(context.Context, string, string) (*ports.AuthResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(svc)

	c, _ := newAuthTestContext(t, `{"email":"a@example.com","password":"wrong"}`)
	if err := h.Signin(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}
