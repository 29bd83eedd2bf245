// Package boardgame defines the domain entities for board game setup
// guides: games, their expansions and modules, the conditional setup
// steps, and the selection state a guide is resolved against.
package boardgame

// Game represents one board game the service can guide setup for
type Game struct {
	ID           string
	Title        string
	Description  string
	RulesURL     string
	PlayerCounts []int32
	CreatedAt    int64
	UpdatedAt    int64
}

// SupportsPlayerCount reports whether count is in the game's supported
// player-count domain
func (g *Game) SupportsPlayerCount(count int32) bool {
	for _, c := range g.PlayerCounts {
		if c == count {
			return true
		}
	}
	return false
}

// DefaultPlayerCount returns the lowest supported player count, or 0
// when the game declares none
func (g *Game) DefaultPlayerCount() int32 {
	var min int32
	for i, c := range g.PlayerCounts {
		if i == 0 || c < min {
			min = c
		}
	}
	return min
}
