package entity

// Player is a mark owner. None stands for an empty cell or an absent winner.
type Player string

const (
	None    Player = ""
	PlayerX Player = "X"
	PlayerO Player = "O"
)

// Opponent - returns the other player. None has no opponent.
func (that Player) Opponent() Player {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return None
	}
}

// IsValid reports whether the value is one of the two player marks.
func (that Player) IsValid() bool {
	return that == PlayerX || that == PlayerO
}

func (that Player) String() string {
	if that == None {
		return "-"
	}
	return string(that)
}
