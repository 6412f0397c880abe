package domain

import (
	"context"
	"time"
)

// ─── Remote Sync Types ──────────────────────────────────────────────────────
// The remote store is a cache: local state is the source of truth and
// remote writes are best-effort. A remote failure never fails the local
// operation that triggered it.

// Session is an authenticated remote session.
type Session struct {
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// ProfileSnapshot is the wire form of a profile mirrored to the remote
// store on each local mutation.
type ProfileSnapshot struct {
	Profile   Profile   `json:"profile"`
	Badges    []string  `json:"badges"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RemoteLogEntry is a log entry enriched with a stable ID for the
// remote store (local entries use rowids, which don't survive sync).
type RemoteLogEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Source    LogSource `json:"source"`
}

// ─── Remote Collaborator Interfaces ─────────────────────────────────────────
// Infrastructure implements them; the engine depends only on these.

// AccountService abstracts the remote auth provider.
type AccountService interface {
	SignIn(ctx context.Context, email, password string) (Session, error)
	SignUp(ctx context.Context, email, password, displayName string) (Session, error)
	SignOut(ctx context.Context) error

	// CurrentSession returns the active session, if any.
	CurrentSession() (Session, bool)
}

// ProfileStore abstracts the remote profile/log store.
type ProfileStore interface {
	UpsertProfile(ctx context.Context, userID string, snap ProfileSnapshot) error
	FetchProfile(ctx context.Context, userID string) (*ProfileSnapshot, error)
	InsertLog(ctx context.Context, userID string, entry RemoteLogEntry) error
	ListLogs(ctx context.Context, userID string) ([]RemoteLogEntry, error)
}
