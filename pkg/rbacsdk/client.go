package rbacsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Client is a client for the RBAC service. It covers the public endpoints
// and creates authenticated Sessions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// AuthenticateWithPassword logs in and returns a Session bound to the
// issued access token.
func (c *Client) AuthenticateWithPassword(ctx context.Context, username, password string) (*Session, error) {
	tok, err := c.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return c.NewSession(tok.AccessToken, tok.ExpiresIn), nil
}

// NewSession wraps an existing access token.
func (c *Client) NewSession(accessToken string, expiresIn int) *Session {
	return &Session{
		client:      c,
		accessToken: accessToken,
		expiresAt:   time.Now().Add(time.Duration(expiresIn) * time.Second),
	}
}

// Session performs requests with a bearer token. Tokens are not refreshed;
// log in again once Expired reports true.
type Session struct {
	client      *Client
	accessToken string
	expiresAt   time.Time
}

func (s *Session) AccessToken() string { return s.accessToken }

func (s *Session) Expired() bool { return !time.Now().Before(s.expiresAt) }
