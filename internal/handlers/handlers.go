// Package handlers exposes the game engine over a JSON request/response
// surface: one route per transition, polling for state. Every response path
// ends in the visibility projection; an unredacted session never leaves this
// package.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"whodunit/internal/config"
	"whodunit/internal/game"
	"whodunit/internal/store"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	store   *store.MemoryStore
	catalog game.Catalog
	cfg     *config.ServerConfig
	log     *zap.SugaredLogger
}

// New creates a new handler.
func New(s *store.MemoryStore, cat game.Catalog, cfg *config.ServerConfig, log *zap.SugaredLogger) *Handler {
	return &Handler{
		store:   s,
		catalog: cat,
		cfg:     cfg,
		log:     log,
	}
}

// Store returns the handler's store (for testing).
func (h *Handler) Store() *store.MemoryStore {
	return h.store
}

type errorResponse struct {
	Error string `json:"error"`
}

// sessionResponse wraps the redacted view. PlayerID and DeviceToken are set
// only on create/join/rejoin, where the caller learns its identity.
type sessionResponse struct {
	Session     game.View `json:"session"`
	PlayerID    string    `json:"playerId,omitempty"`
	DeviceToken string    `json:"deviceToken,omitempty"`
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Errorw("encoding response", "error", err)
	}
}

// respondErr maps an error onto the right status code: rule violations are
// 422 with their stable message, a missing room is 404, anything else is a
// generic 500.
func (h *Handler) respondErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		h.respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case game.IsRuleViolation(err):
		h.respondJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	default:
		h.log.Errorw("internal error", "error", err)
		h.respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// decodeJSON fills dst from the request body. An empty body is allowed and
// leaves dst at its zero value.
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return false
	}
	return true
}
