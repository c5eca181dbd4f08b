package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Session is the credential bundle issued by the auth service.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// ExpiresWithin reports whether the session expires within lead of now.
func (s *Session) ExpiresWithin(now time.Time, lead time.Duration) bool {
	return !s.ExpiresAt.After(now.Add(lead))
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

// Profile is the application-level record behind an authenticated user.
type Profile struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
}

// SignUpInput carries the fields for account creation.
type SignUpInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone,omitempty"`
	Role     Role   `json:"role,omitempty"`
}

// ClientConfig configures a Client. BaseURL is required.
type ClientConfig struct {
	BaseURL string
	// APIKey is sent as the X-API-Key header when set.
	APIKey string
	// HTTPClient defaults to a client with a 15s timeout.
	HTTPClient *http.Client
}

// Client is the typed HTTP handle to the auth endpoints. It holds no
// session state; the Manager owns that.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(cfg ClientConfig) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    hc,
	}
}

type sessionResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
	Profile      *Profile  `json:"profile,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// SignIn exchanges credentials for a session. The profile rides along on
// the response, so callers have it before any listener fires.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, *Profile, error) {
	var resp sessionResponse
	err := c.post(ctx, "/v1/auth/signin", "", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, nil, err
	}
	return &Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    resp.ExpiresAt,
	}, resp.Profile, nil
}

// SignUp creates an account and its profile in one transactional call.
func (c *Client) SignUp(ctx context.Context, input SignUpInput) (*Profile, error) {
	var profile Profile
	if err := c.post(ctx, "/v1/auth/signup", "", input, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Refresh rotates the refresh token. The spent token is unusable after a
// successful call.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	var resp sessionResponse
	err := c.post(ctx, "/v1/auth/refresh", "", map[string]string{
		"refresh_token": refreshToken,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    resp.ExpiresAt,
	}, nil
}

// SignOut revokes the refresh token server side.
func (c *Client) SignOut(ctx context.Context, refreshToken string) error {
	return c.post(ctx, "/v1/auth/signout", "", map[string]string{
		"refresh_token": refreshToken,
	}, nil)
}

// Profile fetches the caller's profile.
func (c *Client) Profile(ctx context.Context, accessToken string) (*Profile, error) {
	var profile Profile
	if err := c.get(ctx, "/v1/auth/profile", accessToken, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// AdminCreateUser creates another account using the caller's privileged
// token. The caller's own session is untouched.
func (c *Client) AdminCreateUser(ctx context.Context, accessToken string, input SignUpInput) (*Profile, error) {
	var profile Profile
	if err := c.post(ctx, "/v1/admin/users", accessToken, input, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) post(ctx context.Context, path, accessToken string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return &Error{Kind: KindUnknown, Message: "encode request", Cause: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return &Error{Kind: KindUnknown, Message: "build request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	return c.send(req, accessToken, out)
}

func (c *Client) get(ctx context.Context, path, accessToken string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &Error{Kind: KindUnknown, Message: "build request", Cause: err}
	}
	return c.send(req, accessToken, out)
}

func (c *Client) send(req *http.Request, accessToken string, out any) error {
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return classify(0, err.Error(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var er errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&er)
		if er.Error == "" {
			er.Error = fmt.Sprintf("http %d", resp.StatusCode)
		}
		return classify(resp.StatusCode, er.Error, nil)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindUnknown, Message: "decode response", Cause: err}
	}
	return nil
}
