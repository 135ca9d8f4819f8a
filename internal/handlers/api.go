package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"whodunit/internal/game"
)

type createRequest struct {
	Name string `json:"name"`
}

// CreateRoom opens a new session with the caller as its host.
func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "player name is required"})
		return
	}

	sess, err := h.store.Create()
	if err != nil {
		h.respondErr(w, err)
		return
	}

	var host game.Participant
	sess, err = h.store.Update(sess.Code, func(s game.Session) (game.Session, error) {
		next, p, err := s.Join(req.Name, time.Now())
		host = p
		return next, err
	})
	if err != nil {
		h.respondErr(w, err)
		return
	}

	h.log.Infow("room created", "room", sess.Code, "host", host.Name)
	h.respondJSON(w, http.StatusCreated, sessionResponse{
		Session:     game.Project(sess, host.ID),
		PlayerID:    host.ID,
		DeviceToken: host.DeviceToken,
	})
}

type joinRequest struct {
	Name string `json:"name"`
}

// JoinRoom admits a new player while the session is still in the lobby.
func (h *Handler) JoinRoom(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	var req joinRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		h.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "player name is required"})
		return
	}

	var joined game.Participant
	sess, err := h.store.Update(code, func(s game.Session) (game.Session, error) {
		next, p, err := s.Join(req.Name, time.Now())
		joined = p
		return next, err
	})
	if err != nil {
		h.respondErr(w, err)
		return
	}

	h.log.Infow("player joined", "room", sess.Code, "player", joined.Name)
	h.respondJSON(w, http.StatusOK, sessionResponse{
		Session:     game.Project(sess, joined.ID),
		PlayerID:    joined.ID,
		DeviceToken: joined.DeviceToken,
	})
}

type rejoinRequest struct {
	DeviceToken string `json:"deviceToken"`
	Name        string `json:"name"`
}

// RejoinRoom reconnects a returning device, matching by token first and name
// second. It works in any phase and is idempotent.
func (h *Handler) RejoinRoom(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	var req rejoinRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	var p game.Participant
	sess, err := h.store.Update(code, func(s game.Session) (game.Session, error) {
		next, found, err := s.Rejoin(req.DeviceToken, strings.TrimSpace(req.Name), time.Now())
		p = found
		return next, err
	})
	if err != nil {
		h.respondErr(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, sessionResponse{
		Session:     game.Project(sess, p.ID),
		PlayerID:    p.ID,
		DeviceToken: p.DeviceToken,
	})
}

// GetRoom returns the redacted session for the requesting viewer. Without a
// playerId the caller sees the spectator projection.
func (h *Handler) GetRoom(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	sess, err := h.store.Get(code)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	viewerID := r.URL.Query().Get("playerId")
	h.respondJSON(w, http.StatusOK, sessionResponse{Session: game.Project(sess, viewerID)})
}

type actionRequest struct {
	PlayerID string `json:"playerId"`
}

// StartGame deals roles and hands and moves the session to role reveal.
func (h *Handler) StartGame(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	h.transition(w, r, req.PlayerID, func(s game.Session) (game.Session, error) {
		if _, ok := s.Participant(req.PlayerID); !ok {
			return s, game.ErrUnknownParticipant
		}
		return s.Start(h.catalog, time.Now())
	})
}

// Proceed acknowledges the role reveal.
func (h *Handler) Proceed(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	h.transition(w, r, req.PlayerID, func(s game.Session) (game.Session, error) {
		if _, ok := s.Participant(req.PlayerID); !ok {
			return s, game.ErrUnknownParticipant
		}
		return s.Proceed(time.Now())
	})
}

type solutionRequest struct {
	PlayerID   string `json:"playerId"`
	EvidenceID string `json:"evidenceId"`
	MethodID   string `json:"methodId"`
}

// SelectSolution records the murderer's choice and opens the clue board.
func (h *Handler) SelectSolution(w http.ResponseWriter, r *http.Request) {
	var req solutionRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	h.transition(w, r, req.PlayerID, func(s game.Session) (game.Session, error) {
		return s.SelectSolution(req.PlayerID, req.EvidenceID, req.MethodID, h.catalog, time.Now())
	})
}

type tileOptionRequest struct {
	PlayerID string `json:"playerId"`
	TileID   string `json:"tileId"`
	Option   int    `json:"option"`
}

// SelectTileOption points a clue tile at one of its options.
func (h *Handler) SelectTileOption(w http.ResponseWriter, r *http.Request) {
	var req tileOptionRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	h.transition(w, r, req.PlayerID, func(s game.Session) (game.Session, error) {
		return s.SelectTileOption(req.PlayerID, req.TileID, req.Option, time.Now())
	})
}

type replaceTileRequest struct {
	PlayerID string `json:"playerId"`
	TileID   string `json:"tileId"`
}

// ReplaceTile swaps an active scene tile for one from the pool.
func (h *Handler) ReplaceTile(w http.ResponseWriter, r *http.Request) {
	var req replaceTileRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	h.transition(w, r, req.PlayerID, func(s game.Session) (game.Session, error) {
		return s.ReplaceSceneTile(req.PlayerID, req.TileID, time.Now())
	})
}

// ConfirmClues locks the board and opens discussion.
func (h *Handler) ConfirmClues(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	h.transition(w, r, req.PlayerID, func(s game.Session) (game.Session, error) {
		return s.ConfirmClues(req.PlayerID, h.cfg.Game.DiscussionWindow, time.Now())
	})
}

type accuseRequest struct {
	PlayerID   string `json:"playerId"`
	TargetID   string `json:"targetId"`
	EvidenceID string `json:"evidenceId"`
	MethodID   string `json:"methodId"`
}

type accuseResponse struct {
	Session    game.View       `json:"session"`
	Accusation game.Accusation `json:"accusation"`
}

// Accuse spends the caller's one accusation against a target.
func (h *Handler) Accuse(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	var req accuseRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	var accusation game.Accusation
	sess, err := h.store.Update(code, func(s game.Session) (game.Session, error) {
		next, acc, err := s.Accuse(req.PlayerID, req.TargetID, req.EvidenceID, req.MethodID, time.Now())
		accusation = acc
		return next, err
	})
	if err != nil {
		h.respondErr(w, err)
		return
	}

	h.log.Infow("accusation recorded",
		"room", sess.Code,
		"accuser", accusation.AccuserName,
		"target", accusation.TargetName,
		"correct", accusation.IsCorrect,
	)
	h.respondJSON(w, http.StatusOK, accuseResponse{
		Session:    game.Project(sess, req.PlayerID),
		Accusation: accusation,
	})
}

// NextRound closes the discussion and opens the next round, or finishes the
// game after the last one.
func (h *Handler) NextRound(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	h.transition(w, r, req.PlayerID, func(s game.Session) (game.Session, error) {
		return s.NextRound(req.PlayerID, time.Now())
	})
}

// ResetRoom returns the session to the lobby, keeping its participants.
func (h *Handler) ResetRoom(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	h.transition(w, r, req.PlayerID, func(s game.Session) (game.Session, error) {
		return s.Reset(req.PlayerID, time.Now())
	})
}

// transition applies fn under the room's lock and responds with the viewer's
// redacted projection.
func (h *Handler) transition(w http.ResponseWriter, r *http.Request, viewerID string, fn func(game.Session) (game.Session, error)) {
	code := chi.URLParam(r, "code")
	sess, err := h.store.Update(code, fn)
	if err != nil {
		h.respondErr(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, sessionResponse{Session: game.Project(sess, viewerID)})
}
