package service

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vistago/vistago-api/internal/domain"
	"github.com/vistago/vistago-api/internal/logger"
	"github.com/vistago/vistago-api/internal/repository/ports"
)

// Secure-store keys. User record and token live in separate entries but are
// always written and deleted together.
const (
	authTokenKey = "auth_token"
	authUserKey  = "auth_user"
)

// AvatarPrimer warms the avatar cache after a successful login. Failures are
// never fatal to the login itself.
type AvatarPrimer interface {
	Prime(ctx context.Context, user domain.User) (string, error)
}

// AuthService owns the authenticated session: anonymous, authenticating, or
// a user-plus-token pair. There is no partial state — a token without a
// parsable user (or the reverse) resolves to anonymous.
type AuthService struct {
	store   ports.KVStore // the secure store
	client  ports.AuthClient
	avatars AvatarPrimer // nil when the avatar cache is disabled
	log     logger.Logger

	// opMu serializes login/register/logout end to end, including the
	// network call and both secure-store writes.
	opMu sync.Mutex

	// stateMu guards the fields below so reads stay cheap while an
	// operation is in flight.
	stateMu sync.RWMutex
	state   domain.SessionState
	session *domain.Session
}

// NewAuthService restores any persisted session before returning. Restore
// failures of every kind resolve to anonymous and are only logged.
func NewAuthService(ctx context.Context, store ports.KVStore, client ports.AuthClient, avatars AvatarPrimer, log logger.Logger) *AuthService {
	s := &AuthService{
		store:   store,
		client:  client,
		avatars: avatars,
		log:     log,
		state:   domain.SessionAnonymous,
	}
	s.restore(ctx)
	return s
}

func (s *AuthService) restore(ctx context.Context) {
	token, err := s.store.Get(ctx, authTokenKey)
	if err != nil {
		if !errors.Is(err, ports.ErrKeyNotFound) {
			s.log.Warn("auth: token restore failed, starting anonymous", logger.Error(err))
		}
		return
	}

	userJSON, err := s.store.Get(ctx, authUserKey)
	if err != nil {
		if !errors.Is(err, ports.ErrKeyNotFound) {
			s.log.Warn("auth: user restore failed, starting anonymous", logger.Error(err))
		} else {
			s.log.Warn("auth: token present without user record, starting anonymous")
		}
		return
	}

	var user domain.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		s.log.Warn("auth: persisted user unparsable, starting anonymous", logger.Error(err))
		return
	}
	if token == "" {
		s.log.Warn("auth: persisted token empty, starting anonymous")
		return
	}
	if expired(token) {
		s.log.Info("auth: persisted token expired, starting anonymous")
		return
	}

	s.setAuthenticated(&domain.Session{User: user, Token: token})
}

// expired reports whether token is a JWT whose exp claim has passed. The
// upstream issues JWTs, but the token is otherwise treated as opaque: values
// that do not parse, or parse without exp, pass.
func expired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Now().After(exp.Time)
}

func (s *AuthService) State() domain.SessionState {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.state
}

func (s *AuthService) IsAuthenticated() bool {
	return s.State() == domain.SessionAuthenticated
}

// CurrentUser returns the authenticated user, if any.
func (s *AuthService) CurrentUser() (*domain.User, bool) {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	if s.session == nil {
		return nil, false
	}
	user := s.session.User
	return &user, true
}

// Token returns the bearer token of the live session, or "".
func (s *AuthService) Token() string {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	if s.session == nil {
		return ""
	}
	return s.session.Token
}

// Login exchanges credentials upstream and persists the session before it
// becomes visible. Any failure — network, non-success status, malformed
// response, missing token, persistence — returns ErrLoginFailed and leaves
// the prior session (authenticated or anonymous) in place.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	s.stateMu.Lock()
	prevState, prevSession := s.state, s.session
	s.state = domain.SessionAuthenticating
	s.stateMu.Unlock()

	revert := func() {
		s.stateMu.Lock()
		s.state, s.session = prevState, prevSession
		s.stateMu.Unlock()
	}

	sess, err := s.client.Login(ctx, username, password)
	if err != nil {
		revert()
		s.log.Warn("auth: upstream login failed", logger.String("username", username), logger.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}

	if err := s.persistSession(ctx, sess); err != nil {
		revert()
		s.log.Error("auth: session persist failed", logger.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrLoginFailed, err)
	}

	s.setAuthenticated(sess)

	if s.avatars != nil {
		if _, err := s.avatars.Prime(ctx, sess.User); err != nil {
			s.log.Warn("auth: avatar cache prime failed", logger.Int64("user_id", sess.User.ID), logger.Error(err))
		}
	}

	user := sess.User
	return &user, nil
}

// Register creates the account upstream, then logs in with the submitted
// credentials so the authenticated identity matches the registered one.
func (s *AuthService) Register(ctx context.Context, reg domain.Registration) (*domain.User, error) {
	if err := s.client.CreateUser(ctx, reg); err != nil {
		s.log.Warn("auth: upstream registration failed", logger.String("username", reg.Username), logger.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrRegistrationFailed, err)
	}
	return s.Login(ctx, reg.Username, reg.Password)
}

// Logout clears the persisted session and goes anonymous. Idempotent when
// already anonymous. A delete failure propagates and leaves the session live;
// persisted and in-memory state must not diverge.
func (s *AuthService) Logout(ctx context.Context) error {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	if s.State() != domain.SessionAuthenticated {
		return nil
	}

	if err := s.store.Delete(ctx, authTokenKey); err != nil {
		return fmt.Errorf("auth: clear token: %w", err)
	}
	if err := s.store.Delete(ctx, authUserKey); err != nil {
		return fmt.Errorf("auth: clear user: %w", err)
	}

	s.stateMu.Lock()
	s.state, s.session = domain.SessionAnonymous, nil
	s.stateMu.Unlock()
	return nil
}

// Authenticate validates a bearer token presented by a caller against the
// live session.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()

	if s.state != domain.SessionAuthenticated || s.session == nil {
		return nil, ErrNotAuthenticated
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.session.Token)) != 1 {
		return nil, errors.New("invalid token")
	}
	if expired(s.session.Token) {
		return nil, errors.New("token expired")
	}
	user := s.session.User
	return &user, nil
}

// persistSession writes both secure entries. If the second write fails the
// first is rolled back best-effort so a half-written session cannot be
// restored later.
func (s *AuthService) persistSession(ctx context.Context, sess *domain.Session) error {
	userJSON, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("auth: encode user: %w", err)
	}

	if err := s.store.Set(ctx, authTokenKey, sess.Token); err != nil {
		return fmt.Errorf("auth: persist token: %w", err)
	}
	if err := s.store.Set(ctx, authUserKey, string(userJSON)); err != nil {
		if delErr := s.store.Delete(ctx, authTokenKey); delErr != nil {
			s.log.Warn("auth: token rollback failed", logger.Error(delErr))
		}
		return fmt.Errorf("auth: persist user: %w", err)
	}
	return nil
}

func (s *AuthService) setAuthenticated(sess *domain.Session) {
	s.stateMu.Lock()
	s.state, s.session = domain.SessionAuthenticated, sess
	s.stateMu.Unlock()
}
