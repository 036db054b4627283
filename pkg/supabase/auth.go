package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Session is the token pair GoTrue hands back on a successful password
// grant. The application treats the access token as opaque.
type Session struct {
	AccessToken  string    `json:"access_token"`
	TokenType    string    `json:"token_type"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int       `json:"expires_in"`
	ExpiresAt    time.Time `json:"-"`
}

// User identifies the authenticated admin.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SignIn exchanges email+password for a session.
func (c *Client) SignIn(ctx context.Context, email, password string) (*Session, error) {
	body, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, fmt.Errorf("encode credentials: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.baseURL+"/auth/v1/token?grant_type=password", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}
	defer drainAndClose(resp.Body)

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrInvalidCredentials
	default:
		return nil, c.apiError(resp)
	}

	var session Session
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if session.AccessToken == "" {
		return nil, fmt.Errorf("sign in: empty access token")
	}
	session.ExpiresAt = time.Now().Add(time.Duration(session.ExpiresIn) * time.Second)
	return &session, nil
}

// User resolves the identity behind an access token. ErrSessionInvalid
// means the token is expired, revoked, or malformed.
func (c *Client) User(ctx context.Context, accessToken string) (*User, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	defer drainAndClose(resp.Body)

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrSessionInvalid
	default:
		return nil, c.apiError(resp)
	}

	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &user, nil
}

// SignOut revokes the session behind the access token.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	req, err := c.newRequest(ctx, http.MethodPost, c.baseURL+"/auth/v1/logout", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return c.apiError(resp)
	}
	return nil
}
