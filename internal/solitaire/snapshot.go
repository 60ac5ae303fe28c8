package solitaire

import (
	"slices"

	"github.com/lox/kosynka/internal/deck"
)

// Snapshot is a read-only view of a game, sufficient to render it. Tableau
// cards keep their orientation; renderers draw backs for face-down cards.
type Snapshot struct {
	Tableau     [TableauPiles][]deck.Card
	Foundations [FoundationPiles][]deck.Card
	StockCount  int
	WasteTop    *deck.Card // nil when the waste is empty
	WasteCount  int
	Score       int
	Status      Status
	Seed        int64
	Moves       int
}

// Snapshot returns a copy of the renderable state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		StockCount: len(g.stock),
		WasteTop:   top(g.waste),
		WasteCount: len(g.waste),
		Score:      g.score,
		Status:     g.status,
		Seed:       g.seed,
		Moves:      g.moves,
	}
	for i, p := range g.tableau {
		s.Tableau[i] = slices.Clone(p)
	}
	for i, p := range g.foundations {
		s.Foundations[i] = slices.Clone(p)
	}
	return s
}

// Layout returns a deep copy of every pile.
func (g *Game) Layout() Layout {
	return Layout{
		Tableau:     g.tableau,
		Foundations: g.foundations,
		Stock:       g.stock,
		Waste:       g.waste,
	}.Clone()
}

// PeekWaste returns the top of the waste, or false when it is empty.
func (g *Game) PeekWaste() (deck.Card, bool) {
	if c := top(g.waste); c != nil {
		return *c, true
	}
	return deck.Card{}, false
}

// HasStock reports whether any cards remain in the stock. The stock is face
// down, so its cards are not exposed.
func (g *Game) HasStock() bool {
	return len(g.stock) > 0
}

// Score returns the current score. It may be negative.
func (g *Game) Score() int { return g.score }

// Status returns Active or Won.
func (g *Game) Status() Status { return g.status }

// Seed returns the seed of the current deal.
func (g *Game) Seed() int64 { return g.seed }

// Moves returns the number of commands that changed the piles.
func (g *Game) Moves() int { return g.moves }

// Rules returns the rules in force.
func (g *Game) Rules() Rules { return g.rules }
