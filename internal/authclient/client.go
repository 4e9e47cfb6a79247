// Package authclient implements the outbound REST client for the upstream
// identity API (a dummyjson-compatible service). It performs exactly one
// attempt per call; retry policy is deliberately absent.
package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vistago/vistago-api/internal/domain"
	"github.com/vistago/vistago-api/internal/repository/ports"
)

const (
	loginPath      = "/auth/login"
	createUserPath = "/users/add"

	// Responses are small JSON objects; anything bigger is garbage.
	maxResponseBytes = 1 << 20
)

type Client struct {
	baseURL    string
	tokenTTL   int
	httpClient *http.Client
}

// New builds a client for baseURL. tokenTTLMins is forwarded as the
// expiresInMins login field; timeout bounds every call end to end.
func New(baseURL string, tokenTTLMins int, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if tokenTTLMins <= 0 {
		tokenTTLMins = 30
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokenTTL:   tokenTTLMins,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type loginRequest struct {
	Username      string `json:"username"`
	Password      string `json:"password"`
	ExpiresInMins int    `json:"expiresInMins"`
}

type loginResponse struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Gender    string `json:"gender"`
	Image     string `json:"image"`

	// The API has issued the bearer token under both names over time.
	Token       string `json:"token"`
	AccessToken string `json:"accessToken"`
}

// Login exchanges credentials for the user record and bearer token. A
// response without a usable token is an error: a session must never exist
// without one.
func (c *Client) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	body, err := c.post(ctx, loginPath, loginRequest{
		Username:      username,
		Password:      password,
		ExpiresInMins: c.tokenTTL,
	})
	if err != nil {
		return nil, err
	}

	var resp loginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("authclient: decode login response: %w", err)
	}

	token := resp.Token
	if token == "" {
		token = resp.AccessToken
	}
	if token == "" {
		return nil, fmt.Errorf("authclient: login response carried no token")
	}

	return &domain.Session{
		User: domain.User{
			ID:        resp.ID,
			Username:  resp.Username,
			Email:     resp.Email,
			FirstName: resp.FirstName,
			LastName:  resp.LastName,
			Gender:    resp.Gender,
			Image:     resp.Image,
		},
		Token: token,
	}, nil
}

// CreateUser registers a new account upstream. The response body is only
// consulted for success.
func (c *Client) CreateUser(ctx context.Context, reg domain.Registration) error {
	_, err := c.post(ctx, createUserPath, reg)
	return err
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("authclient: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("authclient: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("authclient: %s: %w", path, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("authclient: read response: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("authclient: %s returned status %d", path, res.StatusCode)
	}
	return body, nil
}

var _ ports.AuthClient = (*Client)(nil)
