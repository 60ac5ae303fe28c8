package solitaire

import (
	"fmt"
	"slices"

	"github.com/lox/kosynka/internal/deck"
)

const (
	// TableauPiles is the number of tableau columns
	TableauPiles = 7
	// FoundationPiles is the number of foundations
	FoundationPiles = 4
	// DealtCards is the number of cards dealt to the tableau
	DealtCards = TableauPiles * (TableauPiles + 1) / 2
)

// Layout is the full content of every pile. The last element of each slice is
// the top of that pile.
type Layout struct {
	Tableau     [TableauPiles][]deck.Card
	Foundations [FoundationPiles][]deck.Card
	Stock       []deck.Card
	Waste       []deck.Card
}

// Deal distributes a 52-card deck: column c receives c+1 cards taken from the
// end of the deck, the last of them face up. The remaining 24 cards become the
// stock, face down, in their residual order. cards is not modified.
func Deal(cards []deck.Card) (Layout, error) {
	if !deck.Complete(cards) {
		return Layout{}, fmt.Errorf("%w: got %d cards", ErrInvalidDeckSize, len(cards))
	}

	remaining := slices.Clone(cards)
	var layout Layout
	for col := range TableauPiles {
		layout.Tableau[col] = make([]deck.Card, 0, col+1)
		for row := 0; row <= col; row++ {
			c := remaining[len(remaining)-1]
			remaining = remaining[:len(remaining)-1]
			c.SetFaceUp(row == col)
			layout.Tableau[col] = append(layout.Tableau[col], c)
		}
	}

	for i := range remaining {
		remaining[i].SetFaceUp(false)
	}
	layout.Stock = remaining
	return layout, nil
}

// Clone returns a deep copy of the layout
func (l Layout) Clone() Layout {
	var out Layout
	for i := range l.Tableau {
		out.Tableau[i] = slices.Clone(l.Tableau[i])
	}
	for i := range l.Foundations {
		out.Foundations[i] = slices.Clone(l.Foundations[i])
	}
	out.Stock = slices.Clone(l.Stock)
	out.Waste = slices.Clone(l.Waste)
	return out
}

// Equal reports whether two layouts hold the same cards, in the same order and
// orientation, in every pile.
func (l Layout) Equal(o Layout) bool {
	for i := range l.Tableau {
		if !slices.Equal(l.Tableau[i], o.Tableau[i]) {
			return false
		}
	}
	for i := range l.Foundations {
		if !slices.Equal(l.Foundations[i], o.Foundations[i]) {
			return false
		}
	}
	return slices.Equal(l.Stock, o.Stock) && slices.Equal(l.Waste, o.Waste)
}

// Cards returns every card in the layout
func (l Layout) Cards() []deck.Card {
	all := make([]deck.Card, 0, deck.DeckSize)
	for _, p := range l.Tableau {
		all = append(all, p...)
	}
	for _, p := range l.Foundations {
		all = append(all, p...)
	}
	all = append(all, l.Stock...)
	return append(all, l.Waste...)
}

// Validate checks the invariants every reachable layout satisfies: all 52
// cards present once, foundations ascending from the Ace in one suit and face
// up, stock face down, waste face up, and no face-down tableau card above a
// face-up one.
func (l Layout) Validate() error {
	if !deck.Complete(l.Cards()) {
		return fmt.Errorf("%w: piles do not hold the 52 distinct cards", ErrInvalidLayout)
	}
	for i, f := range l.Foundations {
		if !isFoundationPrefix(f) {
			return fmt.Errorf("%w: foundation %d is not an ascending single-suit run", ErrInvalidLayout, i+1)
		}
		for _, c := range f {
			if !c.FaceUp {
				return fmt.Errorf("%w: face-down %s on foundation %d", ErrInvalidLayout, c, i+1)
			}
		}
	}
	for _, c := range l.Stock {
		if c.FaceUp {
			return fmt.Errorf("%w: face-up %s in stock", ErrInvalidLayout, c)
		}
	}
	for _, c := range l.Waste {
		if !c.FaceUp {
			return fmt.Errorf("%w: face-down %s in waste", ErrInvalidLayout, c)
		}
	}
	for col, p := range l.Tableau {
		if len(p) > 0 && !p[len(p)-1].FaceUp {
			return fmt.Errorf("%w: tableau %d has a face-down top card", ErrInvalidLayout, col+1)
		}
		seenUp := false
		for _, c := range p {
			if c.FaceUp {
				seenUp = true
			} else if seenUp {
				return fmt.Errorf("%w: tableau %d has face-down %s above a face-up card", ErrInvalidLayout, col+1, c)
			}
		}
	}
	return nil
}
