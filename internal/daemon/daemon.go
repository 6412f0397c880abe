package daemon

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vapetrack/vapetrack/internal/api"
	"github.com/vapetrack/vapetrack/internal/app/badges"
	"github.com/vapetrack/vapetrack/internal/app/progression"
	"github.com/vapetrack/vapetrack/internal/app/realtime"
	"github.com/vapetrack/vapetrack/internal/app/rewards"
	"github.com/vapetrack/vapetrack/internal/app/tracker"
	"github.com/vapetrack/vapetrack/internal/health"
	_ "github.com/vapetrack/vapetrack/internal/infra/metrics" // Register Prometheus metrics
	"github.com/vapetrack/vapetrack/internal/infra/remote"
	"github.com/vapetrack/vapetrack/internal/infra/sqlite"
)

// Daemon is the core VapeTrack runtime. It wires together all services.
type Daemon struct {
	Config Config
	DB     *sqlite.DB
	Engine *tracker.Engine
	Server *api.Server
	cancel context.CancelFunc

	Badges  *badges.Service
	Rewards *rewards.Service
	Ledger  *progression.Service
	Live    *realtime.Ticker
	Health  *health.Checker

	// Remote sync (nil unless enabled)
	Remote *remote.Client
	Syncer *remote.Syncer
}

// Version is stamped by the build; the API reports it.
var Version = "dev"

// New creates and initializes a Daemon with all services wired.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config) (*Daemon, error) {
	db, err := sqlite.Open(vapetrackHome())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	d := &Daemon{
		Config:  cfg,
		DB:      db,
		Badges:  badges.NewService(db),
		Rewards: rewards.NewService(db),
		Ledger:  progression.NewService(db),
	}

	d.Engine = tracker.NewEngine(db, d.Badges, d.Ledger)
	d.Live = realtime.NewTicker(d.Engine, cfg.RefreshInterval())
	d.Health = health.NewChecker(db, vapetrackHome())

	// Optional remote mirror
	if cfg.Sync.Enabled && cfg.Sync.Endpoint != "" {
		d.Remote = remote.NewClient(cfg.Sync.Endpoint)
		d.Syncer = remote.NewSyncer(d.Remote)
		d.Engine.SetMirror(d.Syncer)
	}

	srv := api.NewServer(d.Engine, d.Badges, d.Rewards, d.Live, Version)
	srv.SetHealthChecker(d.Health)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}
	d.Server = srv

	return d, nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	// Background services
	go d.Health.Run(ctx)
	go d.Live.Run(ctx)
	if d.Syncer != nil {
		go d.Syncer.Run(ctx)
	}

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("VapeTrack serving on http://%s\n", addr)
	if d.Config.Sync.Enabled {
		fmt.Printf("  Sync: enabled (%s)\n", d.Config.Sync.Endpoint)
	}
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
