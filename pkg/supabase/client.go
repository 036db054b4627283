// Package supabase is a thin client for the hosted backend: PostgREST for
// table operations and GoTrue for the email+password session flow. It is
// the only way the application reaches persisted state in the default
// deployment.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pid-digital/leads-backend/pkg/config"
	"github.com/pid-digital/leads-backend/pkg/logger"
)

var (
	// ErrNotFound reports a row-targeted operation that matched nothing.
	ErrNotFound = errors.New("supabase: row not found")
	// ErrInvalidCredentials reports a rejected password grant.
	ErrInvalidCredentials = errors.New("supabase: invalid credentials")
	// ErrSessionInvalid reports an access token the backend no longer accepts.
	ErrSessionInvalid = errors.New("supabase: session invalid")
)

// Client talks to one Supabase project with its public (anon) API key.
type Client struct {
	baseURL string
	anonKey string
	http    *http.Client
}

// APIError carries a backend-reported failure.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("supabase: status %d: %s", e.Status, e.Message)
}

// New validates the configuration and builds a client.
func New(ctx context.Context, cfg config.SupabaseConfig, logg *logger.Logger) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	if base == "" {
		return nil, fmt.Errorf("supabase url is required")
	}
	if strings.TrimSpace(cfg.AnonKey) == "" {
		return nil, fmt.Errorf("supabase anon key is required")
	}

	if logg != nil {
		logg.Info(ctx, "supabase client initialized")
	}

	return &Client{
		baseURL: base,
		anonKey: strings.TrimSpace(cfg.AnonKey),
		http:    &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Insert posts one record into the named table.
func (c *Client) Insert(ctx context.Context, table string, record any) error {
	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, c.restURL(table, nil), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=minimal")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return c.apiError(resp)
	}
	return nil
}

// Select reads every row of the named table, newest first, into dest.
func (c *Client) Select(ctx context.Context, table string, dest any) error {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", "created_at.desc")

	req, err := c.newRequest(ctx, http.MethodGet, c.restURL(table, query), nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("select from %s: %w", table, err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return c.apiError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode rows: %w", err)
	}
	return nil
}

// Delete removes the row with the given id. Returns ErrNotFound when no row
// matched, which PostgREST otherwise reports as a silent success.
func (c *Client) Delete(ctx context.Context, table, id string) error {
	query := url.Values{}
	query.Set("id", "eq."+id)

	req, err := c.newRequest(ctx, http.MethodDelete, c.restURL(table, query), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Prefer", "return=representation")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return c.apiError(resp)
	}

	var deleted []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&deleted); err != nil {
		return fmt.Errorf("decode deleted rows: %w", err)
	}
	if len(deleted) == 0 {
		return ErrNotFound
	}
	return nil
}

// Ping checks the GoTrue health endpoint, which answers without auth and
// proves the project URL and network path are good.
func (c *Client) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, c.baseURL+"/auth/v1/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ping supabase: %w", err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return c.apiError(resp)
	}
	return nil
}

func (c *Client) restURL(table string, query url.Values) string {
	u := c.baseURL + "/rest/v1/" + url.PathEscape(table)
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

func (c *Client) newRequest(ctx context.Context, method, target string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.anonKey)
	return req, nil
}

func (c *Client) apiError(resp *http.Response) error {
	var payload struct {
		Message          string `json:"message"`
		Msg              string `json:"msg"`
		ErrorDescription string `json:"error_description"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	_ = json.Unmarshal(raw, &payload)

	message := payload.Message
	if message == "" {
		message = payload.Msg
	}
	if message == "" {
		message = payload.ErrorDescription
	}
	if message == "" {
		message = strings.TrimSpace(string(raw))
	}
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}
	return &APIError{Status: resp.StatusCode, Message: message}
}

func drainAndClose(body io.ReadCloser) {
	io.Copy(io.Discard, body)
	body.Close()
}
