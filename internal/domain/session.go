package domain

// SessionState describes the auth lifecycle. Authenticating is only observable
// while a login call is in flight.
type SessionState string

const (
	SessionAnonymous      SessionState = "anonymous"
	SessionAuthenticating SessionState = "authenticating"
	SessionAuthenticated  SessionState = "authenticated"
)

// Session pairs the authenticated user with the bearer token issued upstream.
// User and Token are always set and cleared together.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
