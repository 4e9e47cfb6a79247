package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/vistago/vistago-api/internal/domain"
	"github.com/vistago/vistago-api/internal/logger"
	"github.com/vistago/vistago-api/internal/service"
)

type failingAuthClient struct{}

func (failingAuthClient) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	return nil, errors.New("status 400")
}

func (failingAuthClient) CreateUser(ctx context.Context, reg domain.Registration) error {
	return errors.New("status 400")
}

func newAuthServer(t *testing.T, auth *service.AuthService) *echo.Echo {
	t.Helper()
	e := echo.New()
	RegisterAuth(e, auth, nil)
	return e
}

func postJSON(e *echo.Echo, target, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestLoginEndpoint(t *testing.T) {
	client := &staticAuthClient{session: domain.Session{
		User:  domain.User{ID: 1, Username: "emilys", FirstName: "Emily"},
		Token: testToken,
	}}
	auth := service.NewAuthService(context.Background(), newMemKV(), client, nil, logger.Nop())
	e := newAuthServer(t, auth)

	rec := postJSON(e, "/api/v1/auth/login", `{"username": "emilys", "password": "emilyspass"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var out AuthSessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Token != testToken {
		t.Fatalf("unexpected token %q", out.Token)
	}
	if out.User.Username != "emilys" {
		t.Fatalf("unexpected user %+v", out.User)
	}
}

func TestLoginEndpointValidation(t *testing.T) {
	auth := service.NewAuthService(context.Background(), newMemKV(), failingAuthClient{}, nil, logger.Nop())
	e := newAuthServer(t, auth)

	for name, body := range map[string]string{
		"missing username": `{"password": "pw"}`,
		"missing password": `{"username": "emilys"}`,
		"malformed body":   `{`,
	} {
		if rec := postJSON(e, "/api/v1/auth/login", body, ""); rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", name, rec.Code)
		}
	}
}

func TestLoginEndpointFailureIsGeneric(t *testing.T) {
	auth := service.NewAuthService(context.Background(), newMemKV(), failingAuthClient{}, nil, logger.Nop())
	e := newAuthServer(t, auth)

	rec := postJSON(e, "/api/v1/auth/login", `{"username": "baduser", "password": "badpass"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var out struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	// The upstream failure reason must not leak to the caller.
	if out.Error != "login failed" {
		t.Fatalf("unexpected error message %q", out.Error)
	}
}

func TestRegisterEndpoint(t *testing.T) {
	client := &staticAuthClient{session: domain.Session{
		User:  domain.User{ID: 2, Username: "traveler42"},
		Token: testToken,
	}}
	auth := service.NewAuthService(context.Background(), newMemKV(), client, nil, logger.Nop())
	e := newAuthServer(t, auth)

	body := `{"username": "traveler42", "password": "StrongPass!23", "email": "traveler@example.com"}`
	rec := postJSON(e, "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}

	var out AuthSessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.User.Username != "traveler42" || out.Token != testToken {
		t.Fatalf("unexpected session %+v", out)
	}

	if rec := postJSON(e, "/api/v1/auth/register", `{"username": "x", "password": "y"}`, ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing email: expected 400, got %d", rec.Code)
	}
}

func TestMeAndLogoutEndpoints(t *testing.T) {
	client := &staticAuthClient{session: domain.Session{
		User:  domain.User{ID: 1, Username: "emilys"},
		Token: testToken,
	}}
	auth := service.NewAuthService(context.Background(), newMemKV(), client, nil, logger.Nop())
	e := newAuthServer(t, auth)

	if _, err := auth.Login(context.Background(), "emilys", "emilyspass"); err != nil {
		t.Fatalf("seed login: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+testToken)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("me: status %d: %s", rec.Code, rec.Body.String())
	}
	var me struct {
		User AuthUser `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &me); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if me.User.Username != "emilys" {
		t.Fatalf("unexpected user %+v", me.User)
	}

	if rec := postJSON(e, "/api/v1/auth/logout", "", testToken); rec.Code != http.StatusOK {
		t.Fatalf("logout: status %d", rec.Code)
	}
	if auth.IsAuthenticated() {
		t.Fatal("session survived logout")
	}

	// The old token no longer authenticates anything.
	if rec := postJSON(e, "/api/v1/auth/logout", "", testToken); rec.Code != http.StatusUnauthorized {
		t.Fatalf("stale token: expected 401, got %d", rec.Code)
	}
}
