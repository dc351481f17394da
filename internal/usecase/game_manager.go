package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

type snapshotRepo interface {
	Save(ctx context.Context, sessionID string, snapshot *entity.Snapshot) error
	GetByID(ctx context.Context, sessionID string) (*entity.Snapshot, error)
	DeleteByID(ctx context.Context, sessionID string) error
}

// DefaultMaxBoardSize caps client supplied sizes when no limit is configured.
const DefaultMaxBoardSize = 20

// session holds the one live game of a session. Every engine call goes through mu.
// An ended session is out of the map; holders that waited on mu must look it up again.
type session struct {
	mu    sync.Mutex
	game  *tictactoe.Game
	ended bool
}

// GameManager is the session store: one live game per session id, persisted as a
// snapshot after every change and restored from it on first access.
type GameManager struct {
	logger       *slog.Logger
	snapshotRepo snapshotRepo
	boardSize    int
	maxBoardSize int

	mu       sync.Mutex
	sessions map[string]*session
}

func NewGameManager(logger *slog.Logger, snapshotRepo snapshotRepo, boardSize, maxBoardSize int) *GameManager {
	if boardSize <= 0 {
		boardSize = tictactoe.DefaultSize
	}

	if maxBoardSize <= 0 {
		maxBoardSize = DefaultMaxBoardSize
	}

	if boardSize > maxBoardSize {
		maxBoardSize = boardSize
	}

	return &GameManager{
		logger:       logger.With("component", "game_manager"),
		snapshotRepo: snapshotRepo,
		boardSize:    boardSize,
		maxBoardSize: maxBoardSize,

		sessions: make(map[string]*session),
	}
}

// GetGame - returns a detached copy of the session's live game.
func (that *GameManager) GetGame(ctx context.Context, sessionID string) (*tictactoe.Game, error) {
	var game *tictactoe.Game

	err := that.withSession(ctx, sessionID, func(s *session) error {
		game = detach(s.game)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return game, nil
}

// PlayTurn - plays the current player's mark. On an engine error nothing is persisted and
// the unchanged game is returned together with the error.
func (that *GameManager) PlayTurn(ctx context.Context, sessionID string, row, col int) (*tictactoe.Game, error) {
	return that.mutate(ctx, sessionID, "PlayTurn", func(s *session) error {
		if err := s.game.Play(row, col); err != nil {
			return fmt.Errorf("failed to make turn: %w", err)
		}
		return nil
	})
}

func (that *GameManager) Forfeit(ctx context.Context, sessionID string) (*tictactoe.Game, error) {
	return that.mutate(ctx, sessionID, "Forfeit", func(s *session) error {
		if err := s.game.Forfeit(); err != nil {
			return fmt.Errorf("failed to forfeit: %w", err)
		}
		return nil
	})
}

// ResetGame - replaces the live game with a fresh one. A size of zero or less means
// the configured board size; sizes above the limit fail with apperror.ErrBoardTooLarge.
func (that *GameManager) ResetGame(ctx context.Context, sessionID string, size int) (*tictactoe.Game, error) {
	if size <= 0 {
		size = that.boardSize
	}

	if err := that.checkSize(size); err != nil {
		return nil, err
	}

	return that.mutate(ctx, sessionID, "ResetGame", func(s *session) error {
		s.game = tictactoe.New(size, nil)
		return nil
	})
}

// LoadGame - replaces the live game with one rebuilt from the snapshot. A nil snapshot
// leaves the session as it is.
func (that *GameManager) LoadGame(ctx context.Context, sessionID string, snapshot *entity.Snapshot) (*tictactoe.Game, error) {
	if snapshot == nil {
		return that.GetGame(ctx, sessionID)
	}

	if err := that.checkSize(snapshot.Size); err != nil {
		return nil, err
	}

	return that.mutate(ctx, sessionID, "LoadGame", func(s *session) error {
		s.game = tictactoe.New(snapshot.Size, snapshot)
		return nil
	})
}

func (that *GameManager) GetSnapshot(ctx context.Context, sessionID string) (*entity.Snapshot, error) {
	var snapshot *entity.Snapshot

	err := that.withSession(ctx, sessionID, func(s *session) error {
		snapshot = s.game.Snapshot()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return snapshot, nil
}

// EndSession - drops the live game and its persisted snapshot. It waits for the change
// in flight on the session, so nothing is saved for it afterwards.
func (that *GameManager) EndSession(ctx context.Context, sessionID string) error {
	log := that.logger.With("method", "EndSession", "sessionID", sessionID)

	s := that.lockSession(sessionID)
	defer s.mu.Unlock()

	err := that.snapshotRepo.DeleteByID(ctx, sessionID)
	if err != nil && !errors.Is(err, apperror.ErrSnapshotNotFound) {
		log.Error("failed to delete snapshot", "error", err)
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	that.mu.Lock()
	delete(that.sessions, sessionID)
	that.mu.Unlock()

	s.game = nil
	s.ended = true

	log.Debug("session ended")

	return nil
}

// mutate - runs change under the session lock and persists the result when it succeeds.
func (that *GameManager) mutate(
	ctx context.Context,
	sessionID, method string,
	change func(s *session) error,
) (*tictactoe.Game, error) {
	log := that.logger.With("method", method, "sessionID", sessionID)

	var game *tictactoe.Game

	err := that.withSession(ctx, sessionID, func(s *session) error {
		changeErr := change(s)
		game = detach(s.game)

		if changeErr != nil {
			log.Debug("game rejected the change", "error", changeErr)
			return changeErr
		}

		if err := that.snapshotRepo.Save(ctx, sessionID, s.game.Snapshot()); err != nil {
			log.Error("failed to save snapshot", "error", err)
			return fmt.Errorf("failed to save snapshot: %w", err)
		}

		return nil
	})

	return game, err
}

// withSession - locks the session and makes sure its game is loaded.
func (that *GameManager) withSession(ctx context.Context, sessionID string, fn func(s *session) error) error {
	s := that.lockSession(sessionID)
	defer s.mu.Unlock()

	if s.game == nil {
		game, err := that.restoreGame(ctx, sessionID)
		if err != nil {
			return err
		}
		s.game = game
	}

	return fn(s)
}

// lockSession - returns the live session locked. A session that ended while we waited
// for its lock is skipped in favour of a new one.
func (that *GameManager) lockSession(sessionID string) *session {
	for {
		s := that.getSession(sessionID)

		s.mu.Lock()
		if !s.ended {
			return s
		}
		s.mu.Unlock()
	}
}

func (that *GameManager) getSession(sessionID string) *session {
	that.mu.Lock()
	defer that.mu.Unlock()

	s, ok := that.sessions[sessionID]
	if !ok {
		s = &session{}
		that.sessions[sessionID] = s
	}

	return s
}

// restoreGame - rebuilds the game from the persisted snapshot, or starts a new one.
func (that *GameManager) restoreGame(ctx context.Context, sessionID string) (*tictactoe.Game, error) {
	log := that.logger.With("method", "restoreGame", "sessionID", sessionID)

	snapshot, err := that.snapshotRepo.GetByID(ctx, sessionID)
	if errors.Is(err, apperror.ErrSnapshotNotFound) {
		log.Debug("no saved game, starting a new one", "size", that.boardSize)
		return tictactoe.New(that.boardSize, nil), nil
	}

	if err != nil {
		log.Error("failed to load snapshot", "error", err)
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	if err = that.checkSize(snapshot.Size); err != nil {
		log.Warn("saved game is unusable, starting a new one", "error", err)
		return tictactoe.New(that.boardSize, nil), nil
	}

	log.Debug("restored saved game", "size", snapshot.Size)

	return tictactoe.New(snapshot.Size, snapshot), nil
}

func (that *GameManager) checkSize(size int) error {
	if size > that.maxBoardSize {
		return fmt.Errorf("%w: %d, max %d", apperror.ErrBoardTooLarge, size, that.maxBoardSize)
	}

	return nil
}

func detach(game *tictactoe.Game) *tictactoe.Game {
	return tictactoe.New(game.Size(), game.Snapshot())
}
