package core

// Color identifies which side a piece or player belongs to.
// Light pieces start at row 0 and advance toward higher rows,
// Dark pieces start at the opposite edge and advance toward row 0.
type Color int

const (
	ColorLight Color = iota + 1
	ColorDark
)

func (c Color) String() string {
	switch c {
	case ColorLight:
		return "l"
	case ColorDark:
		return "d"
	default:
		return "-"
	}
}

func OppositeColor(c Color) Color {
	if c == ColorLight {
		return ColorDark
	}
	return ColorLight
}

// Rank is the promotion state of a piece. It transitions once,
// Regular to King, and never reverts.
type Rank int

const (
	RankRegular Rank = iota + 1
	RankKing
)

func (r Rank) String() string {
	if r == RankKing {
		return "king"
	}
	return "regular"
}

// GameStatus is the lifecycle stage of a match. Transitions move
// forward only (NotReady -> Ready -> OnGoing -> GameOver) except for
// a full reset back to NotReady.
type GameStatus int

const (
	StatusNotReady GameStatus = iota
	StatusReady
	StatusOnGoing
	StatusGameOver
)

func (s GameStatus) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusOnGoing:
		return "ongoing"
	case StatusGameOver:
		return "game_over"
	default:
		return "not_ready"
	}
}
