package core

// Player identifies one of the two participants. Equality is by ID;
// Name is display-only. Immutable after creation.
type Player struct {
	ID   int
	Name string
}

func NewPlayer(id int, name string) *Player {
	return &Player{ID: id, Name: name}
}

func (p *Player) Equals(other *Player) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.ID == other.ID
}
