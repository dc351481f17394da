package entity

import (
	"strconv"
	"strings"
)

const cellKeySeparator = ","

// Snapshot is the serializable projection of a game. Only occupied cells are present in Board.
type Snapshot struct {
	Board         map[string]Player `json:"board"`
	CurrentPlayer Player            `json:"current_player"`
	Winner        Player            `json:"winner"`
	IsDraw        bool              `json:"is_draw"`
	Size          int               `json:"size"`
}

// CellKey - builds the "row,col" board key.
func CellKey(row, col int) string {
	return strconv.Itoa(row) + cellKeySeparator + strconv.Itoa(col)
}

// ParseCellKey - splits a "row,col" key. The bool is false for anything that is not
// exactly two base-10 integers.
func ParseCellKey(key string) (int, int, bool) {
	parts := strings.Split(key, cellKeySeparator)
	if len(parts) != 2 {
		return 0, 0, false
	}

	row, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}

	col, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, false
	}

	return row, col, true
}
