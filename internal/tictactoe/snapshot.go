package tictactoe

import "github.com/rocketscienceinc/tictactoe-engine/internal/entity"

// Snapshot - captures the board in row-major order plus the turn and terminal flags.
func (that *Game) Snapshot() *entity.Snapshot {
	board := make(map[string]entity.Player)

	for row := 0; row < that.size; row++ {
		for col := 0; col < that.size; col++ {
			if cell := that.board[row][col]; cell != entity.None {
				board[entity.CellKey(row, col)] = cell
			}
		}
	}

	return &entity.Snapshot{
		Board:         board,
		CurrentPlayer: that.currentPlayer,
		Winner:        that.winner,
		IsDraw:        that.isDraw,
		Size:          that.size,
	}
}

// Restore - rebuilds the board from the snapshot. Entries with a malformed key, an
// off-board coordinate or an unknown mark are skipped without an error. The turn and
// terminal flags are taken from the snapshot as they are; they are not checked against
// the rebuilt board. A nil snapshot leaves the game untouched.
func (that *Game) Restore(snapshot *entity.Snapshot) {
	if snapshot == nil {
		return
	}

	for row := range that.board {
		for col := range that.board[row] {
			that.board[row][col] = entity.None
		}
	}
	that.filled = 0

	for key, player := range snapshot.Board {
		that.restoreCell(key, player)
	}

	that.currentPlayer = snapshot.CurrentPlayer
	if !that.currentPlayer.IsValid() {
		that.currentPlayer = entity.PlayerX
	}

	that.winner = snapshot.Winner
	if !that.winner.IsValid() {
		that.winner = entity.None
	}

	that.isDraw = snapshot.IsDraw
}

func (that *Game) restoreCell(key string, player entity.Player) {
	row, col, ok := entity.ParseCellKey(key)
	if !ok || !player.IsValid() || !that.inBounds(row, col) {
		return
	}

	if that.board[row][col] == entity.None {
		that.filled++
	}
	that.board[row][col] = player
}
