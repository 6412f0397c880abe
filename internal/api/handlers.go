package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vapetrack/vapetrack/internal/app/devices"
	"github.com/vapetrack/vapetrack/internal/app/milestones"
	"github.com/vapetrack/vapetrack/internal/domain"
)

// ─── Tracking ───────────────────────────────────────────────────────────────

func (s *Server) handleLogPuff(w http.ResponseWriter, r *http.Request) {
	entry, err := s.engine.LogPuff(time.Now())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleRecentPuffs(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	entries, err := s.engine.RecentPuffs(limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (s *Server) handleJuiceLevel(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LevelPct float64 `json:"level_pct"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	synthesized, err := s.engine.ApplyJuiceLevel(time.Now(), req.LevelPct)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"level_pct":   req.LevelPct,
		"synthesized": synthesized,
	})
}

func (s *Server) handleNewReservoir(w http.ResponseWriter, r *http.Request) {
	jp, err := s.engine.NewReservoir(time.Now())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, jp)
}

func (s *Server) handleJuiceHistory(w http.ResponseWriter, r *http.Request) {
	hist, err := s.engine.JuiceHistory()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"purchases": hist})
}

// ─── Profile Lifecycle ──────────────────────────────────────────────────────

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.engine.Profile()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var p domain.Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := s.engine.UpdateProfile(p); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleOnboard(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name             string         `json:"name"`
		CigarettesPerDay int            `json:"cigarettes_per_day"`
		PackCost         float64        `json:"pack_cost"`
		Device           *domain.Device `json:"device,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	p, err := s.engine.Onboard(time.Now(), req.Name, req.CigarettesPerDay, req.PackCost, req.Device)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleStartSmokeFree(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.StartSmokeFree(time.Now()); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "smoke-free attempt started"})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.Reset(); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset complete"})
}

// ─── Derived Views ──────────────────────────────────────────────────────────

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	snap, err := s.engine.Snapshot(time.Now())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleLiveStats(w http.ResponseWriter, r *http.Request) {
	if s.live != nil {
		writeJSON(w, http.StatusOK, s.live.Latest())
		return
	}
	writeError(w, http.StatusServiceUnavailable, "live counters not running")
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	trend, err := s.engine.WeeklyTrend(time.Now())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"days": trend})
}

func (s *Server) handleMilestones(w http.ResponseWriter, r *http.Request) {
	snap, err := s.engine.Snapshot(time.Now())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"smoke_free_for": snap.TimeSinceLastPuff.String(),
		"milestones":     milestones.Evaluate(snap.TimeSinceLastPuff),
	})
}

func (s *Server) handleDevices(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"devices": devices.Search(r.URL.Query().Get("q")),
	})
}

// ─── Engagement ─────────────────────────────────────────────────────────────

func (s *Server) handleBadges(w http.ResponseWriter, r *http.Request) {
	unlocked, err := s.badges.ListUnlocked()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"definitions": s.badges.Definitions(),
		"unlocked":    unlocked,
	})
}

func (s *Server) handleRewards(w http.ResponseWriter, r *http.Request) {
	purchased, err := s.rewards.Purchased()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	equipped, err := s.rewards.Equipped()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"catalog":   s.rewards.Items(),
		"purchased": purchased,
		"equipped":  equipped,
	})
}

func (s *Server) handlePurchaseReward(w http.ResponseWriter, r *http.Request) {
	item, err := s.rewards.Purchase(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleEquipReward(w http.ResponseWriter, r *http.Request) {
	// Optional body asserts the target slot. An empty body (including
	// chunked requests with no payload) means no assertion.
	var req struct {
		Category domain.RewardCategory `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	item, err := s.rewards.Equip(chi.URLParam(r, "id"), req.Category)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleUnequipReward(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category domain.RewardCategory `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	switch req.Category {
	case domain.RewardIcon, domain.RewardBorder, domain.RewardEffect:
	default:
		writeError(w, http.StatusBadRequest, "unknown reward category")
		return
	}
	if err := s.rewards.Unequip(req.Category); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "unequipped"})
}
