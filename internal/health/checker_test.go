package health_test

import (
	"context"
	"testing"

	"github.com/vapetrack/vapetrack/internal/health"
	"github.com/vapetrack/vapetrack/internal/infra/sqlite"
)

func TestChecker_AllHealthy(t *testing.T) {
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	c := health.NewChecker(db, dir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // One pass, then stop
	c.Run(ctx)

	statuses := c.Statuses()
	if len(statuses) != 3 {
		t.Fatalf("got %d statuses, want 3", len(statuses))
	}
	for _, s := range statuses {
		if !s.Healthy {
			t.Errorf("check %s unhealthy: %s", s.Name, s.Error)
		}
	}
	if !c.IsHealthy() {
		t.Error("IsHealthy should be true")
	}
}

func TestChecker_MissingDataDir(t *testing.T) {
	dir := t.TempDir()
	db, err := sqlite.Open(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	c := health.NewChecker(db, dir+"/does-not-exist")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c.Run(ctx)

	if c.IsHealthy() {
		t.Error("missing data dir should fail the data_dir check")
	}
}
