// Package remote implements the optional cloud mirror: account
// authentication and a best-effort profile/log store over HTTP. The
// remote side is a cache of local state, never the other way around.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vapetrack/vapetrack/internal/domain"
)

// Client talks to the sync backend. It implements both
// domain.AccountService and domain.ProfileStore.
type Client struct {
	baseURL string
	http    *http.Client

	mu      sync.RWMutex
	session domain.Session
	hasSess bool
}

// NewClient creates a sync client for the given backend base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// ─── Account Service ────────────────────────────────────────────────────────

type credentials struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
}

type authResponse struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	AccessToken string `json:"access_token"`
}

// SignIn authenticates and caches the returned session.
func (c *Client) SignIn(ctx context.Context, email, password string) (domain.Session, error) {
	return c.authenticate(ctx, "/auth/signin", credentials{Email: email, Password: password})
}

// SignUp registers a new account and caches the returned session.
func (c *Client) SignUp(ctx context.Context, email, password, displayName string) (domain.Session, error) {
	return c.authenticate(ctx, "/auth/signup", credentials{
		Email: email, Password: password, DisplayName: displayName,
	})
}

func (c *Client) authenticate(ctx context.Context, path string, creds credentials) (domain.Session, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, path, creds, &resp); err != nil {
		return domain.Session{}, err
	}

	sess := domain.Session{
		UserID:      resp.UserID,
		Email:       resp.Email,
		AccessToken: resp.AccessToken,
		ExpiresAt:   tokenExpiry(resp.AccessToken),
	}

	c.mu.Lock()
	c.session = sess
	c.hasSess = true
	c.mu.Unlock()
	return sess, nil
}

// SignOut invalidates the remote session and drops the local one.
// The local drop happens even when the remote call fails.
func (c *Client) SignOut(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/auth/signout", nil, nil)

	c.mu.Lock()
	c.session = domain.Session{}
	c.hasSess = false
	c.mu.Unlock()
	return err
}

// CurrentSession returns the cached session. The second return is
// false when signed out or the token has expired.
func (c *Client) CurrentSession() (domain.Session, bool) {
	sess, err := c.ActiveSession()
	return sess, err == nil
}

// ActiveSession is CurrentSession with the failure reason preserved:
// ErrNoSession when signed out, ErrSessionExpired on a dead token.
func (c *Client) ActiveSession() (domain.Session, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.hasSess {
		return domain.Session{}, domain.ErrNoSession
	}
	if c.session.Expired(time.Now()) {
		return domain.Session{}, domain.ErrSessionExpired
	}
	return c.session, nil
}

// tokenExpiry pulls the exp claim without verifying the signature.
// Verification is the server's job; the client only needs to know when
// to stop sending a dead token.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

// ─── Profile Store ──────────────────────────────────────────────────────────

// UpsertProfile mirrors the full profile snapshot.
func (c *Client) UpsertProfile(ctx context.Context, userID string, snap domain.ProfileSnapshot) error {
	return c.do(ctx, http.MethodPut, "/v1/profiles/"+userID, snap, nil)
}

// FetchProfile retrieves a mirrored snapshot. Nil when the remote
// store has nothing for the user.
func (c *Client) FetchProfile(ctx context.Context, userID string) (*domain.ProfileSnapshot, error) {
	var snap domain.ProfileSnapshot
	err := c.do(ctx, http.MethodGet, "/v1/profiles/"+userID, nil, &snap)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &snap, nil
}

// InsertLog mirrors one log entry.
func (c *Client) InsertLog(ctx context.Context, userID string, entry domain.RemoteLogEntry) error {
	return c.do(ctx, http.MethodPost, "/v1/logs/"+userID, entry, nil)
}

// ListLogs retrieves all mirrored entries for the user.
func (c *Client) ListLogs(ctx context.Context, userID string) ([]domain.RemoteLogEntry, error) {
	var out []domain.RemoteLogEntry
	if err := c.do(ctx, http.MethodGet, "/v1/logs/"+userID, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ─── HTTP Plumbing ──────────────────────────────────────────────────────────

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("remote: status %d: %s", e.code, e.body)
}

func isNotFound(err error) bool {
	se, ok := err.(*statusError)
	return ok && se.code == http.StatusNotFound
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("remote: encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if sess, ok := c.CurrentSession(); ok {
		req.Header.Set("Authorization", "Bearer "+sess.AccessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("remote: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &statusError{code: resp.StatusCode, body: strings.TrimSpace(string(b))}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("remote: decode response: %w", err)
		}
	}
	return nil
}
