package remote

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/vapetrack/vapetrack/internal/domain"
	"github.com/vapetrack/vapetrack/internal/infra/metrics"
)

// queueSize bounds the pending mirror writes. When full, new events
// are dropped rather than blocking a local mutation.
const queueSize = 256

type syncEvent struct {
	profile *domain.Profile
	entry   *domain.LogEntry
}

// Syncer mirrors local mutations to the remote store from a background
// worker. It satisfies the engine's Mirror interface: enqueueing never
// blocks and remote failures never reach the caller.
type Syncer struct {
	client *Client
	queue  chan syncEvent
}

// NewSyncer creates a syncer over an authenticated client.
func NewSyncer(client *Client) *Syncer {
	return &Syncer{
		client: client,
		queue:  make(chan syncEvent, queueSize),
	}
}

// ProfileChanged enqueues a profile mirror write. Non-blocking.
func (s *Syncer) ProfileChanged(p domain.Profile) {
	s.enqueue(syncEvent{profile: &p})
}

// PuffLogged enqueues a log mirror write. Non-blocking.
func (s *Syncer) PuffLogged(e domain.LogEntry) {
	s.enqueue(syncEvent{entry: &e})
}

func (s *Syncer) enqueue(ev syncEvent) {
	select {
	case s.queue <- ev:
	default:
		metrics.SyncDropped.Inc()
	}
}

// Run drains the queue until ctx is cancelled. Call in a goroutine.
func (s *Syncer) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-s.queue:
			s.flush(ctx, ev)
		}
	}
}

func (s *Syncer) flush(ctx context.Context, ev syncEvent) {
	sess, err := s.client.ActiveSession()
	if errors.Is(err, domain.ErrSessionExpired) {
		log.Printf("[sync] session expired, dropping mirror writes until re-auth")
		return
	}
	if err != nil {
		return // Signed out: nothing to mirror against
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	switch {
	case ev.profile != nil:
		snap := domain.ProfileSnapshot{Profile: *ev.profile, UpdatedAt: time.Now()}
		if err := s.client.UpsertProfile(ctx, sess.UserID, snap); err != nil {
			metrics.SyncFailures.WithLabelValues("profile").Inc()
			log.Printf("[sync] profile mirror failed: %v", err)
			return
		}
		metrics.SyncWrites.WithLabelValues("profile").Inc()

	case ev.entry != nil:
		remote := domain.RemoteLogEntry{
			ID:        uuid.NewString(),
			Timestamp: ev.entry.Timestamp,
			Source:    ev.entry.Source,
		}
		if err := s.client.InsertLog(ctx, sess.UserID, remote); err != nil {
			metrics.SyncFailures.WithLabelValues("log").Inc()
			log.Printf("[sync] log mirror failed: %v", err)
			return
		}
		metrics.SyncWrites.WithLabelValues("log").Inc()
	}
}
