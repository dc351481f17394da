package rest

import (
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

const errGameOverMessage = "game is over"

// BoardView is what the client renders.
type BoardView struct {
	Size          int               `json:"size"`
	Board         [][]entity.Player `json:"board"`
	CurrentPlayer entity.Player     `json:"current_player"`
	Winner        entity.Player     `json:"winner"`
	IsDraw        bool              `json:"is_draw"`
	Status        tictactoe.Status  `json:"status"`
	Error         string            `json:"error,omitempty"`
}

func newBoardView(game *tictactoe.Game) *BoardView {
	board := make([][]entity.Player, game.Size())
	for row := range board {
		board[row] = make([]entity.Player, game.Size())
		for col := range board[row] {
			board[row][col] = game.Cell(row, col)
		}
	}

	return &BoardView{
		Size:          game.Size(),
		Board:         board,
		CurrentPlayer: game.CurrentPlayer(),
		Winner:        game.Winner(),
		IsDraw:        game.IsDraw(),
		Status:        game.Status(),
	}
}
