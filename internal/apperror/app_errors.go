package apperror

import "errors"

var (
	ErrGameOver         = errors.New("game is already over")
	ErrInvalidPosition  = errors.New("invalid position")
	ErrPositionTaken    = errors.New("position is already taken")
	ErrSnapshotNotFound = errors.New("snapshot not found")
	ErrBoardTooLarge    = errors.New("board size is too large")
)
