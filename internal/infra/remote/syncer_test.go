package remote_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vapetrack/vapetrack/internal/domain"
	"github.com/vapetrack/vapetrack/internal/infra/remote"
)

func syncBackend(t *testing.T, logWrites *atomic.Int64, failLogs bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/signin", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"user_id": "user-1", "email": "sam@example.com",
			"access_token": signedToken(t, time.Now().Add(time.Hour)),
		})
	})
	mux.HandleFunc("POST /v1/logs/{id}", func(w http.ResponseWriter, r *http.Request) {
		if failLogs {
			http.Error(w, "backend down", http.StatusInternalServerError)
			return
		}
		logWrites.Add(1)
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("PUT /v1/profiles/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSyncer_MirrorsLogEntries(t *testing.T) {
	var writes atomic.Int64
	srv := syncBackend(t, &writes, false)

	c := remote.NewClient(srv.URL)
	_, err := c.SignIn(context.Background(), "sam@example.com", "hunter2")
	require.NoError(t, err)

	s := remote.NewSyncer(c)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	for i := 0; i < 3; i++ {
		s.PuffLogged(domain.LogEntry{ID: int64(i), Timestamp: time.Now(), Source: domain.SourceDirect})
	}

	require.Eventually(t, func() bool { return writes.Load() == 3 },
		2*time.Second, 10*time.Millisecond, "queued entries should reach the backend")
}

func TestSyncer_FailureNeverPropagates(t *testing.T) {
	var writes atomic.Int64
	srv := syncBackend(t, &writes, true)

	c := remote.NewClient(srv.URL)
	_, err := c.SignIn(context.Background(), "sam@example.com", "hunter2")
	require.NoError(t, err)

	s := remote.NewSyncer(c)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	// Enqueue against a failing backend: the calls themselves must
	// return instantly and without error.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			s.PuffLogged(domain.LogEntry{ID: int64(i), Timestamp: time.Now(), Source: domain.SourceDirect})
			s.ProfileChanged(domain.DefaultProfile())
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("enqueue blocked on a failing backend")
	}
	assert.Equal(t, int64(0), writes.Load())
}

func TestSyncer_SignedOutIsNoOp(t *testing.T) {
	var writes atomic.Int64
	srv := syncBackend(t, &writes, false)

	s := remote.NewSyncer(remote.NewClient(srv.URL))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	s.PuffLogged(domain.LogEntry{ID: 1, Timestamp: time.Now(), Source: domain.SourceDirect})
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int64(0), writes.Load(), "no session, no mirror traffic")
}
