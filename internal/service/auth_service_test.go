package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vistago/vistago-api/internal/domain"
	"github.com/vistago/vistago-api/internal/logger"
)

type fakeAuthClient struct {
	loginUsername string
	loginPassword string
	loginResult   *domain.Session
	loginErr      error
	loginCalls    int

	createReg   domain.Registration
	createErr   error
	createCalls int
}

func (f *fakeAuthClient) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	f.loginCalls++
	f.loginUsername = username
	f.loginPassword = password
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	sess := *f.loginResult
	return &sess, nil
}

func (f *fakeAuthClient) CreateUser(ctx context.Context, reg domain.Registration) error {
	f.createCalls++
	f.createReg = reg
	return f.createErr
}

func demoSession() *domain.Session {
	return &domain.Session{
		User: domain.User{
			ID:        1,
			Username:  "emilys",
			Email:     "emily.johnson@x.dummyjson.com",
			FirstName: "Emily",
			LastName:  "Johnson",
			Gender:    "female",
			Image:     "https://dummyjson.com/icon/emilys/128",
		},
		Token: "opaque-bearer-token",
	}
}

func newAuth(t *testing.T, kv *fakeKV, client *fakeAuthClient) *AuthService {
	t.Helper()
	return NewAuthService(context.Background(), kv, client, nil, logger.Nop())
}

func TestLoginSuccessPersistsSession(t *testing.T) {
	kv := newFakeKV()
	client := &fakeAuthClient{loginResult: demoSession()}
	svc := newAuth(t, kv, client)

	user, err := svc.Login(context.Background(), "emilys", "emilyspass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Username != "emilys" {
		t.Fatalf("unexpected user %+v", user)
	}
	if got := svc.State(); got != domain.SessionAuthenticated {
		t.Fatalf("expected authenticated state, got %q", got)
	}
	if svc.Token() != "opaque-bearer-token" {
		t.Fatalf("unexpected token %q", svc.Token())
	}

	if tok, ok := kv.value(authTokenKey); !ok || tok != "opaque-bearer-token" {
		t.Fatalf("token not persisted, got %q", tok)
	}
	raw, ok := kv.value(authUserKey)
	if !ok {
		t.Fatal("user record not persisted")
	}
	var persisted domain.User
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil {
		t.Fatalf("persisted user not valid JSON: %v", err)
	}
	if persisted.ID != 1 || persisted.Username != "emilys" {
		t.Fatalf("persisted user mismatch: %+v", persisted)
	}
}

func TestLoginFailureStaysAnonymousAndPersistsNothing(t *testing.T) {
	kv := newFakeKV()
	client := &fakeAuthClient{loginErr: errors.New("status 400")}
	svc := newAuth(t, kv, client)

	_, err := svc.Login(context.Background(), "baduser", "badpass")
	if !errors.Is(err, ErrLoginFailed) {
		t.Fatalf("expected ErrLoginFailed, got %v", err)
	}
	if got := svc.State(); got != domain.SessionAnonymous {
		t.Fatalf("expected anonymous after failed login, got %q", got)
	}
	if _, ok := kv.value(authTokenKey); ok {
		t.Fatal("no token may be persisted after a failed login")
	}
	if _, ok := kv.value(authUserKey); ok {
		t.Fatal("no user may be persisted after a failed login")
	}
}

func TestLoginFailureKeepsExistingSession(t *testing.T) {
	kv := newFakeKV()
	client := &fakeAuthClient{loginResult: demoSession()}
	svc := newAuth(t, kv, client)

	if _, err := svc.Login(context.Background(), "emilys", "emilyspass"); err != nil {
		t.Fatalf("seed login: %v", err)
	}

	client.loginErr = errors.New("network down")
	if _, err := svc.Login(context.Background(), "other", "pw"); !errors.Is(err, ErrLoginFailed) {
		t.Fatalf("expected ErrLoginFailed, got %v", err)
	}

	if got := svc.State(); got != domain.SessionAuthenticated {
		t.Fatalf("failed re-login must keep the prior session, got %q", got)
	}
	if user, _ := svc.CurrentUser(); user == nil || user.Username != "emilys" {
		t.Fatalf("prior user lost: %+v", user)
	}
}

func TestLoginPersistFailureRevertsState(t *testing.T) {
	kv := newFakeKV()
	kv.setErr = errors.New("disk full")
	client := &fakeAuthClient{loginResult: demoSession()}
	svc := newAuth(t, kv, client)

	if _, err := svc.Login(context.Background(), "emilys", "emilyspass"); !errors.Is(err, ErrLoginFailed) {
		t.Fatalf("expected ErrLoginFailed, got %v", err)
	}
	if got := svc.State(); got != domain.SessionAnonymous {
		t.Fatalf("expected anonymous after persist failure, got %q", got)
	}
}

func TestRestoreRequiresBothEntries(t *testing.T) {
	user := demoSession().User
	userJSON, _ := json.Marshal(user)

	cases := []struct {
		name  string
		seed  map[string]string
		state domain.SessionState
	}{
		{"both present", map[string]string{authTokenKey: "tok", authUserKey: string(userJSON)}, domain.SessionAuthenticated},
		{"token without user", map[string]string{authTokenKey: "tok"}, domain.SessionAnonymous},
		{"user without token", map[string]string{authUserKey: string(userJSON)}, domain.SessionAnonymous},
		{"unparsable user", map[string]string{authTokenKey: "tok", authUserKey: "{broken"}, domain.SessionAnonymous},
		{"empty token", map[string]string{authTokenKey: "", authUserKey: string(userJSON)}, domain.SessionAnonymous},
		{"nothing persisted", map[string]string{}, domain.SessionAnonymous},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			kv := newFakeKV()
			for k, v := range tc.seed {
				kv.put(k, v)
			}
			svc := newAuth(t, kv, &fakeAuthClient{})
			if got := svc.State(); got != tc.state {
				t.Fatalf("expected state %q, got %q", tc.state, got)
			}
			if tc.state == domain.SessionAnonymous {
				if _, ok := svc.CurrentUser(); ok {
					t.Fatal("anonymous session must not expose a user")
				}
			}
		})
	}
}

func TestRestoreRejectsExpiredJWT(t *testing.T) {
	user := demoSession().User
	userJSON, _ := json.Marshal(user)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}).SignedString([]byte("whatever"))
	if err != nil {
		t.Fatalf("build token: %v", err)
	}

	kv := newFakeKV()
	kv.put(authTokenKey, expired)
	kv.put(authUserKey, string(userJSON))

	svc := newAuth(t, kv, &fakeAuthClient{})
	if got := svc.State(); got != domain.SessionAnonymous {
		t.Fatalf("expired token must not restore a session, got %q", got)
	}
}

func TestLogoutClearsSessionAndIsIdempotent(t *testing.T) {
	kv := newFakeKV()
	client := &fakeAuthClient{loginResult: demoSession()}
	svc := newAuth(t, kv, client)
	ctx := context.Background()

	if _, err := svc.Login(ctx, "emilys", "emilyspass"); err != nil {
		t.Fatalf("seed login: %v", err)
	}

	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if got := svc.State(); got != domain.SessionAnonymous {
		t.Fatalf("expected anonymous after logout, got %q", got)
	}
	if _, ok := kv.value(authTokenKey); ok {
		t.Fatal("token must be deleted on logout")
	}
	if _, ok := kv.value(authUserKey); ok {
		t.Fatal("user must be deleted on logout")
	}

	if err := svc.Logout(ctx); err != nil {
		t.Fatalf("logout of an anonymous session must succeed, got %v", err)
	}
}

func TestLogoutDeleteFailureKeepsSession(t *testing.T) {
	kv := newFakeKV()
	client := &fakeAuthClient{loginResult: demoSession()}
	svc := newAuth(t, kv, client)
	ctx := context.Background()

	if _, err := svc.Login(ctx, "emilys", "emilyspass"); err != nil {
		t.Fatalf("seed login: %v", err)
	}

	kv.delErr = errors.New("storage down")
	if err := svc.Logout(ctx); err == nil {
		t.Fatal("expected error when clearing storage fails")
	}
	if got := svc.State(); got != domain.SessionAuthenticated {
		t.Fatalf("failed logout must keep the session, got %q", got)
	}
}

func TestRegisterLogsInWithSubmittedCredentials(t *testing.T) {
	client := &fakeAuthClient{loginResult: demoSession()}
	svc := newAuth(t, newFakeKV(), client)

	reg := domain.Registration{
		Username:  "traveler42",
		Password:  "StrongPass!23",
		Email:     "traveler@example.com",
		FirstName: "Alex",
		LastName:  "Morgan",
	}
	if _, err := svc.Register(context.Background(), reg); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if client.createCalls != 1 || client.createReg.Username != "traveler42" {
		t.Fatalf("registration fields not forwarded: %+v", client.createReg)
	}
	if client.loginUsername != "traveler42" || client.loginPassword != "StrongPass!23" {
		t.Fatalf("expected login with submitted credentials, got %q/%q", client.loginUsername, client.loginPassword)
	}
}

func TestRegisterCreateFailureSkipsLogin(t *testing.T) {
	client := &fakeAuthClient{createErr: errors.New("status 500")}
	svc := newAuth(t, newFakeKV(), client)

	_, err := svc.Register(context.Background(), domain.Registration{Username: "x", Password: "y"})
	if !errors.Is(err, ErrRegistrationFailed) {
		t.Fatalf("expected ErrRegistrationFailed, got %v", err)
	}
	if client.loginCalls != 0 {
		t.Fatal("failed registration must not attempt a login")
	}
}

func TestAuthenticateMatchesLiveSessionOnly(t *testing.T) {
	client := &fakeAuthClient{loginResult: demoSession()}
	svc := newAuth(t, newFakeKV(), client)
	ctx := context.Background()

	if _, err := svc.Authenticate(ctx, "anything"); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated for anonymous session, got %v", err)
	}

	if _, err := svc.Login(ctx, "emilys", "emilyspass"); err != nil {
		t.Fatalf("seed login: %v", err)
	}

	if _, err := svc.Authenticate(ctx, "wrong-token"); err == nil {
		t.Fatal("expected error for mismatched token")
	}
	user, err := svc.Authenticate(ctx, "opaque-bearer-token")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user.Username != "emilys" {
		t.Fatalf("unexpected user %+v", user)
	}
}
