package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellKey(t *testing.T) {
	assert.Equal(t, "0,0", CellKey(0, 0))
	assert.Equal(t, "2,1", CellKey(2, 1))
	assert.Equal(t, "10,3", CellKey(10, 3))
}

func TestParseCellKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantRow int
		wantCol int
		wantOK  bool
	}{
		{name: "valid key", key: "1,2", wantRow: 1, wantCol: 2, wantOK: true},
		{name: "negative values still parse", key: "-1,0", wantRow: -1, wantCol: 0, wantOK: true},
		{name: "no separator", key: "invalid", wantOK: false},
		{name: "too many parts", key: "1,2,3", wantOK: false},
		{name: "non numeric row", key: "a,1", wantOK: false},
		{name: "non numeric col", key: "1,b", wantOK: false},
		{name: "empty parts", key: ",", wantOK: false},
		{name: "empty key", key: "", wantOK: false},
		{name: "spaces are not trimmed", key: "1, 2", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, col, ok := ParseCellKey(tt.key)

			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantRow, row)
				assert.Equal(t, tt.wantCol, col)
			}
		})
	}
}

func TestSnapshot_JSON(t *testing.T) {
	// Given: a snapshot with one occupied cell and a winner
	snapshot := Snapshot{
		Board:         map[string]Player{"0,0": PlayerX},
		CurrentPlayer: PlayerX,
		Winner:        PlayerX,
		IsDraw:        false,
		Size:          3,
	}

	// When: encoding it
	data, err := json.Marshal(snapshot)
	require.NoError(t, err)

	// Then: field names follow the persisted layout
	assert.JSONEq(t, `{"board":{"0,0":"X"},"current_player":"X","winner":"X","is_draw":false,"size":3}`, string(data))
}
