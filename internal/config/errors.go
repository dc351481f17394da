package config

import "errors"

var (
	ErrUnknownStorage   = errors.New("unknown storage")
	ErrInvalidBoardSize = errors.New("board size exceeds max board size")
)
