package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// DefaultSize is used when the caller does not specify a board size.
const DefaultSize = 3

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusDraw       Status = "draw"
)

// Game is an N x N tic-tac-toe state machine. It has no internal locking:
// a single caller must own it at a time.
type Game struct {
	size          int
	board         [][]entity.Player
	currentPlayer entity.Player
	winner        entity.Player
	isDraw        bool
	filled        int
}

// New - creates an empty game with X to move. A size of zero or less means DefaultSize.
// When initial is not nil the game is restored from it straight away.
func New(size int, initial *entity.Snapshot) *Game {
	if size <= 0 {
		size = DefaultSize
	}

	board := make([][]entity.Player, size)
	for i := range board {
		board[i] = make([]entity.Player, size)
	}

	game := &Game{
		size:          size,
		board:         board,
		currentPlayer: entity.PlayerX,
	}

	if initial != nil {
		game.Restore(initial)
	}

	return game
}

func (that *Game) Size() int {
	return that.size
}

func (that *Game) CurrentPlayer() entity.Player {
	return that.currentPlayer
}

// Winner returns entity.None while nobody has won.
func (that *Game) Winner() entity.Player {
	return that.winner
}

func (that *Game) IsDraw() bool {
	return that.isDraw
}

// IsOver reports whether the game reached a terminal state.
func (that *Game) IsOver() bool {
	return that.winner != entity.None || that.isDraw
}

func (that *Game) Status() Status {
	switch {
	case that.winner != entity.None:
		return StatusWon
	case that.isDraw:
		return StatusDraw
	default:
		return StatusInProgress
	}
}

// Play - places the current player's mark at (row, col), then checks for a win,
// then for a draw, and only otherwise passes the turn.
func (that *Game) Play(row, col int) error {
	if err := that.validateMove(row, col); err != nil {
		return err
	}

	that.board[row][col] = that.currentPlayer
	that.filled++

	that.updateGameStatus()

	return nil
}

// Forfeit - the current player gives up and the opponent wins. The board and the
// current player are left untouched.
func (that *Game) Forfeit() error {
	if that.IsOver() {
		return apperror.ErrGameOver
	}

	that.winner = that.currentPlayer.Opponent()

	return nil
}

// Cell returns entity.None for empty cells and for coordinates off the board.
func (that *Game) Cell(row, col int) entity.Player {
	if !that.inBounds(row, col) {
		return entity.None
	}

	return that.board[row][col]
}

// validateMove - checks are ordered: terminal state, bounds, occupancy.
func (that *Game) validateMove(row, col int) error {
	if that.IsOver() {
		return apperror.ErrGameOver
	}

	if !that.inBounds(row, col) {
		return fmt.Errorf("%w: row %d, col %d", apperror.ErrInvalidPosition, row, col)
	}

	if that.board[row][col] != entity.None {
		return fmt.Errorf("%w: row %d, col %d", apperror.ErrPositionTaken, row, col)
	}

	return nil
}

// updateGameStatus - checks the game status after a move.
func (that *Game) updateGameStatus() {
	switch {
	case that.hasWon(that.currentPlayer):
		that.winner = that.currentPlayer
	case that.filled == that.size*that.size:
		that.isDraw = true
	default:
		that.currentPlayer = that.currentPlayer.Opponent()
	}
}

// hasWon - any full row, any full column, the main diagonal or the anti-diagonal.
func (that *Game) hasWon(player entity.Player) bool {
	for i := 0; i < that.size; i++ {
		if that.lineOwnedBy(player, func(j int) entity.Player { return that.board[i][j] }) {
			return true
		}

		if that.lineOwnedBy(player, func(j int) entity.Player { return that.board[j][i] }) {
			return true
		}
	}

	if that.lineOwnedBy(player, func(j int) entity.Player { return that.board[j][j] }) {
		return true
	}

	return that.lineOwnedBy(player, func(j int) entity.Player { return that.board[j][that.size-1-j] })
}

func (that *Game) lineOwnedBy(player entity.Player, cellAt func(j int) entity.Player) bool {
	for j := 0; j < that.size; j++ {
		if cellAt(j) != player {
			return false
		}
	}

	return true
}

func (that *Game) inBounds(row, col int) bool {
	return row >= 0 && row < that.size && col >= 0 && col < that.size
}
