// Package api provides the local HTTP server: the JSON API the
// dashboard and CLI talk to.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vapetrack/vapetrack/internal/app/badges"
	"github.com/vapetrack/vapetrack/internal/app/realtime"
	"github.com/vapetrack/vapetrack/internal/app/rewards"
	"github.com/vapetrack/vapetrack/internal/app/tracker"
	"github.com/vapetrack/vapetrack/internal/domain"
	"github.com/vapetrack/vapetrack/internal/health"
)

// Server is the VapeTrack HTTP API server.
type Server struct {
	engine         *tracker.Engine
	badges         *badges.Service
	rewards        *rewards.Service
	live           *realtime.Ticker
	checker        *health.Checker
	version        string
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(engine *tracker.Engine, b *badges.Service, rw *rewards.Service, live *realtime.Ticker, version string) *Server {
	return &Server{engine: engine, badges: b, rewards: rw, live: live, version: version}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetHealthChecker attaches the daemon's health checker.
func (s *Server) SetHealthChecker(c *health.Checker) { s.checker = c }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{
				"status": "VapeTrack is running",
			})
		})
		r.Get("/version", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{
				"version": s.version,
			})
		})

		// Tracking
		r.Post("/puffs", s.handleLogPuff)
		r.Get("/puffs/recent", s.handleRecentPuffs)
		r.Post("/juice-level", s.handleJuiceLevel)
		r.Post("/reservoir", s.handleNewReservoir)
		r.Get("/juice-history", s.handleJuiceHistory)

		// Profile lifecycle
		r.Get("/profile", s.handleGetProfile)
		r.Put("/profile", s.handleUpdateProfile)
		r.Post("/onboard", s.handleOnboard)
		r.Post("/smoke-free", s.handleStartSmokeFree)
		r.Post("/reset", s.handleReset)

		// Derived views
		r.Get("/stats", s.handleStats)
		r.Get("/stats/live", s.handleLiveStats)
		r.Get("/trend", s.handleTrend)
		r.Get("/milestones", s.handleMilestones)
		r.Get("/devices", s.handleDevices)

		// Engagement
		r.Get("/badges", s.handleBadges)
		r.Get("/rewards", s.handleRewards)
		r.Post("/rewards/{id}/purchase", s.handlePurchaseReward)
		r.Post("/rewards/{id}/equip", s.handleEquipReward)
		r.Post("/rewards/unequip", s.handleUnequipReward)
	})

	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.checker != nil && !s.checker.IsHealthy() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "degraded",
			"checks": s.checker.Statuses(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// writeDomainError maps sentinel errors to HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrRewardNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidConfig),
		errors.Is(err, domain.ErrInvalidJuiceLevel),
		errors.Is(err, domain.ErrCategoryMismatch),
		errors.Is(err, domain.ErrNotOnboarded):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrAlreadyPurchased),
		errors.Is(err, domain.ErrAlreadySmokeFree):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInsufficientXP),
		errors.Is(err, domain.ErrNotPurchased):
		writeError(w, http.StatusPaymentRequired, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// corsMiddleware adds CORS headers for the local dashboard.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
