package ports

import (
	"context"

	"github.com/vistago/vistago-api/internal/domain"
)

// AuthClient talks to the upstream identity API. Login exchanges credentials
// for the user record plus a bearer token; CreateUser registers a new account.
// Neither call is retried.
type AuthClient interface {
	Login(ctx context.Context, username, password string) (*domain.Session, error)
	CreateUser(ctx context.Context, reg domain.Registration) error
}
