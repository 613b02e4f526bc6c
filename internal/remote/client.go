// Package remote syncs the user snapshot with a hosted Supabase-style backend.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mikeintech/budgetterrr/internal/model"
)

const (
	requestTimeout = 10 * time.Second
	maxBodySize    = 4 << 20 // 4 MB
	// expirySkew treats tokens expiring within this window as already
	// expired so a refresh happens before the backend rejects a call.
	expirySkew = 30 * time.Second
)

var (
	// ErrUnauthorized indicates the access token is expired or invalid.
	ErrUnauthorized = errors.New("remote: unauthorized (access token expired or invalid)")
	// ErrNotFound indicates no snapshot exists for this user yet.
	ErrNotFound = errors.New("remote: no remote snapshot found")
	// ErrRateLimited indicates the backend rate limit was hit.
	ErrRateLimited = errors.New("remote: rate limited")
)

// Session holds the tokens returned by the auth endpoint.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// snapshotRow is the wire shape of a user_data row.
type snapshotRow struct {
	UserID    string         `json:"user_id"`
	Payload   model.UserData `json:"payload"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Client talks to the hosted backend's REST and auth endpoints.
type Client struct {
	baseURL      string
	anonKey      string
	accessToken  string
	refreshToken string
	http         *http.Client
}

// NewClient creates a sync client. Returns nil when the base URL or
// anon key is missing, which callers treat as sync-disabled.
func NewClient(baseURL, anonKey, accessToken, refreshToken string) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" || strings.TrimSpace(anonKey) == "" {
		return nil
	}
	return &Client{
		baseURL:      baseURL,
		anonKey:      strings.TrimSpace(anonKey),
		accessToken:  strings.TrimSpace(accessToken),
		refreshToken: strings.TrimSpace(refreshToken),
		http:         &http.Client{},
	}
}

// TokenExpired reports whether the access token is missing, malformed,
// or expires within the skew window. The signature is not verified;
// only the backend can do that, this is a local pre-check.
func (c *Client) TokenExpired(now time.Time) bool {
	if c.accessToken == "" {
		return true
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(c.accessToken, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return !now.Add(expirySkew).Before(exp.Time)
}

// UserID returns the subject claim of the access token.
func (c *Client) UserID() (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(c.accessToken, claims); err != nil {
		return "", fmt.Errorf("remote: parsing access token: %w", err)
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", errors.New("remote: access token has no subject")
	}
	return sub, nil
}

// Refresh exchanges the refresh token for a new session and adopts the
// new tokens. The caller persists the returned session to config.
func (c *Client) Refresh(ctx context.Context) (Session, error) {
	if c.refreshToken == "" {
		return Session{}, ErrUnauthorized
	}
	payload, _ := json.Marshal(map[string]string{"refresh_token": c.refreshToken})
	body, err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=refresh_token", payload, nil)
	if err != nil {
		return Session{}, err
	}

	var sess Session
	if err := json.Unmarshal(body, &sess); err != nil {
		return Session{}, fmt.Errorf("remote: parsing session: %w", err)
	}
	if sess.AccessToken == "" {
		return Session{}, ErrUnauthorized
	}
	c.accessToken = sess.AccessToken
	if sess.RefreshToken != "" {
		c.refreshToken = sess.RefreshToken
	}
	return sess, nil
}

// Fetch downloads the remote snapshot for the authenticated user.
func (c *Client) Fetch(ctx context.Context) (model.UserData, time.Time, error) {
	body, err := c.do(ctx, http.MethodGet, "/rest/v1/user_data?select=user_id,payload,updated_at&limit=1", nil, nil)
	if err != nil {
		return model.UserData{}, time.Time{}, err
	}

	var rows []snapshotRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return model.UserData{}, time.Time{}, fmt.Errorf("remote: parsing snapshot: %w", err)
	}
	if len(rows) == 0 {
		return model.UserData{}, time.Time{}, ErrNotFound
	}
	return rows[0].Payload, rows[0].UpdatedAt, nil
}

// Push uploads the snapshot, replacing any existing row for this user.
func (c *Client) Push(ctx context.Context, data model.UserData, now time.Time) error {
	userID, err := c.UserID()
	if err != nil {
		return err
	}
	payload, err := json.Marshal([]snapshotRow{{UserID: userID, Payload: data, UpdatedAt: now.UTC()}})
	if err != nil {
		return fmt.Errorf("remote: encoding snapshot: %w", err)
	}

	headers := map[string]string{"Prefer": "resolution=merge-duplicates"}
	_, err = c.do(ctx, http.MethodPost, "/rest/v1/user_data?on_conflict=user_id", payload, headers)
	return err
}

// do performs an authenticated request and returns the response body.
func (c *Client) do(ctx context.Context, method, path string, payload []byte, headers map[string]string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("remote: creating request: %w", err)
	}

	req.Header.Set("apikey", c.anonKey)
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("remote: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("remote: reading response: %w", err)
	}
	return body, nil
}
