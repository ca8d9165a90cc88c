package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"matchwatch/internal/errorwrapper"
	"matchwatch/internal/models"

	"github.com/rs/zerolog"
)

// StateReader is the read side of the persisted state the API exposes.
type StateReader interface {
	Load() (*models.ClubSnapshot, models.Metadata, error)
	History() ([]models.HistoryEntry, error)
}

// UpdateRunner triggers and reports on pipeline runs.
type UpdateRunner interface {
	Run(ctx context.Context) (models.RunResult, error)
	LastResult() *models.RunResult
	IsRunning() bool
}

// Handler serves the JSON API over the persisted state and the runner.
type Handler struct {
	store            StateReader
	runner           UpdateRunner
	schedulerEnabled bool
	logger           zerolog.Logger
}

// NewHandler creates the API handler.
func NewHandler(store StateReader, runner UpdateRunner, schedulerEnabled bool, logger zerolog.Logger) *Handler {
	return &Handler{
		store:            store,
		runner:           runner,
		schedulerEnabled: schedulerEnabled,
		logger:           logger.With().Str("component", "API").Logger(),
	}
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"message":   "backend running",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// TeamsConfig returns the full team configuration plus metadata.
func (h *Handler) TeamsConfig(w http.ResponseWriter, r *http.Request) {
	snapshot, meta, err := h.store.Load()
	if err != nil {
		h.writeError(w, err, "failed to load state")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"config":   teamsOrEmpty(snapshot),
		"metadata": meta,
	})
}

// Config returns only the team configuration map.
func (h *Handler) Config(w http.ResponseWriter, r *http.Request) {
	snapshot, _, err := h.store.Load()
	if err != nil {
		h.writeError(w, err, "failed to load state")
		return
	}
	h.writeJSON(w, http.StatusOK, teamsOrEmpty(snapshot))
}

// Metadata returns store metadata and the outcome of the last run.
func (h *Handler) Metadata(w http.ResponseWriter, r *http.Request) {
	_, meta, err := h.store.Load()
	if err != nil {
		h.writeError(w, err, "failed to load state")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"metadata":   meta,
		"lastUpdate": h.runner.LastResult(),
	})
}

// History returns the bounded save history.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.store.History()
	if err != nil {
		h.writeError(w, err, "failed to load history")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"history": history,
	})
}

// Status reports an overview of the whole system.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	_, meta, err := h.store.Load()
	if err != nil {
		h.writeError(w, err, "failed to load state")
		return
	}
	schedulerState := "inactive"
	if h.schedulerEnabled {
		schedulerState = "active"
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"status": map[string]any{
			"server":       "running",
			"database":     "ok",
			"scheduler":    schedulerState,
			"updating":     h.runner.IsRunning(),
			"lastUpdate":   meta.LastUpdate,
			"lastCheck":    meta.LastCheck,
			"totalTeams":   meta.TotalTeams,
			"totalMatches": meta.TotalMatches,
			"season":       meta.Season,
			"lastResult":   h.runner.LastResult(),
		},
	})
}

// Update triggers one pipeline run on demand. A run already in flight is
// rejected immediately, not queued.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	h.logger.Info().Msg("Manual update requested via API")
	result, err := h.runner.Run(r.Context())
	if errors.Is(err, errorwrapper.ErrAlreadyRunning) {
		h.writeJSON(w, http.StatusConflict, map[string]any{
			"success": false,
			"error":   err.Error(),
		})
		return
	}
	// Any other failure is already captured inside the RunResult; the API
	// call itself succeeded.
	h.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"result":  result,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error, message string) {
	h.logger.Error().Err(err).Msg(message)
	h.writeJSON(w, http.StatusInternalServerError, map[string]any{
		"success": false,
		"error":   message,
	})
}

func teamsOrEmpty(snapshot *models.ClubSnapshot) map[string]models.TeamSnapshot {
	if snapshot == nil || snapshot.Teams == nil {
		return map[string]models.TeamSnapshot{}
	}
	return snapshot.Teams
}
