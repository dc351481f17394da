package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

var errMissingCoordinates = errors.New("row and col are required")

type turnRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type resetRequest struct {
	Size int `json:"size"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write ping response", "error", err)
	}
}

func (that *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.game.GetGame(r.Context(), sessionFromContext(r.Context()))
	that.respondWithGame(w, r, "handleGetGame", game, err)
}

func (that *Server) handleTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if req.Row == nil || req.Col == nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: errMissingCoordinates.Error()})
		return
	}

	game, err := that.game.PlayTurn(r.Context(), sessionFromContext(r.Context()), *req.Row, *req.Col)
	that.respondWithGame(w, r, "handleTurn", game, err)
}

func (that *Server) handleForfeit(w http.ResponseWriter, r *http.Request) {
	game, err := that.game.Forfeit(r.Context(), sessionFromContext(r.Context()))
	that.respondWithGame(w, r, "handleForfeit", game, err)
}

// handleReset - the body is optional; without it the default size is used.
func (that *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	game, err := that.game.ResetGame(r.Context(), sessionFromContext(r.Context()), req.Size)
	that.respondWithGame(w, r, "handleReset", game, err)
}

func (that *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleGetSnapshot")

	snapshot, err := that.game.GetSnapshot(r.Context(), sessionFromContext(r.Context()))
	if err != nil {
		log.Error("failed to get snapshot", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}

	that.writeJSON(w, http.StatusOK, snapshot)
}

func (that *Server) handleLoadSnapshot(w http.ResponseWriter, r *http.Request) {
	var snapshot entity.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snapshot); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid snapshot"})
		return
	}

	game, err := that.game.LoadGame(r.Context(), sessionFromContext(r.Context()), &snapshot)
	that.respondWithGame(w, r, "handleLoadSnapshot", game, err)
}

func (that *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handleEndSession")

	if err := that.game.EndSession(r.Context(), sessionFromContext(r.Context())); err != nil {
		log.Error("failed to end session", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// respondWithGame - maps game errors to client feedback. A finished game is reported,
// a taken or off-board cell is ignored and the board is sent back unchanged, an
// oversized board is a bad request.
func (that *Server) respondWithGame(w http.ResponseWriter, r *http.Request, method string, game *tictactoe.Game, err error) {
	log := that.logger.With("method", method, "sessionID", sessionFromContext(r.Context()))

	switch {
	case err == nil:
		that.writeJSON(w, http.StatusOK, newBoardView(game))
	case errors.Is(err, apperror.ErrBoardTooLarge):
		log.Debug("board size rejected", "error", err)
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case game != nil && errors.Is(err, apperror.ErrGameOver):
		view := newBoardView(game)
		view.Error = errGameOverMessage
		that.writeJSON(w, http.StatusConflict, view)
	case game != nil && (errors.Is(err, apperror.ErrPositionTaken) || errors.Is(err, apperror.ErrInvalidPosition)):
		log.Debug("move ignored", "error", err)
		that.writeJSON(w, http.StatusOK, newBoardView(game))
	default:
		log.Error("request failed", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
