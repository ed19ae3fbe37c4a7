package core

// EventKind enumerates the notifications the game controller emits.
type EventKind int

const (
	EventPieceMoved EventKind = iota + 1
	EventPieceCaptured
	EventPiecePromoted
	EventPlayerAdded
	EventStatusChanged
	EventTurnChanged
)

func (k EventKind) String() string {
	switch k {
	case EventPieceMoved:
		return "piece_moved"
	case EventPieceCaptured:
		return "piece_captured"
	case EventPiecePromoted:
		return "piece_promoted"
	case EventPlayerAdded:
		return "player_added"
	case EventStatusChanged:
		return "status_changed"
	case EventTurnChanged:
		return "turn_changed"
	default:
		return "unknown"
	}
}

// Event is delivered synchronously to registered observers, in-line
// with the triggering controller call. Only the fields relevant to the
// Kind are populated.
type Event struct {
	Kind     EventKind
	Piece    *Piece
	Player   *Player
	Position Position
	Status   GameStatus
}
