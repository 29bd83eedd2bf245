package boardgame

// Expansion represents a boxed expansion of a game
type Expansion struct {
	ID          string
	GameID      string
	Name        string
	Description string
	CreatedAt   int64
	UpdatedAt   int64
}

// Module represents an optional rules module. A module is owned by an
// expansion, or by the base game when ExpansionID is empty.
type Module struct {
	ID          string
	GameID      string
	ExpansionID string
	Name        string
	Description string
	CreatedAt   int64
	UpdatedAt   int64
}

// IsBaseGame reports whether the module belongs to the base game rather
// than an expansion
func (m *Module) IsBaseGame() bool {
	return m.ExpansionID == ""
}
