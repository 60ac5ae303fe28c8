package solitaire

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/kosynka/internal/deck"
)

// layoutOf builds a layout from card codes. Tableau codes prefixed with '#'
// are face down; every other named card is face up. Cards not named anywhere
// go to the stock, face down, in deck order.
func layoutOf(t *testing.T, tableau [TableauPiles]string, foundations [FoundationPiles]string, waste string) Layout {
	t.Helper()

	var l Layout
	used := make(map[int]bool)
	parse := func(s string, allowDown bool) []deck.Card {
		var cards []deck.Card
		for _, f := range strings.Fields(s) {
			up := true
			if allowDown && strings.HasPrefix(f, "#") {
				up = false
				f = f[1:]
			}
			c, err := deck.ParseCard(f)
			require.NoError(t, err)
			require.False(t, used[c.ID()], "card %s used twice", c)
			used[c.ID()] = true
			c.SetFaceUp(up)
			cards = append(cards, c)
		}
		return cards
	}

	for i, s := range tableau {
		l.Tableau[i] = parse(s, true)
	}
	for i, s := range foundations {
		l.Foundations[i] = parse(s, false)
	}
	l.Waste = parse(waste, false)
	for _, c := range deck.NewOrderedDeck() {
		if !used[c.ID()] {
			l.Stock = append(l.Stock, c)
		}
	}

	require.NoError(t, l.Validate())
	return l
}

// suitRun returns the codes for Ace through the n-th rank of suit
func suitRun(suit deck.Suit, n int) string {
	codes := make([]string, 0, n)
	for r := deck.Ace; r < deck.Rank(n); r++ {
		codes = append(codes, deck.NewCard(suit, r).Code())
	}
	return strings.Join(codes, " ")
}

func newGameFromLayout(t *testing.T, l Layout, opts ...Option) *Game {
	t.Helper()
	g, err := New(append([]Option{WithLayout(l), WithSeed(0)}, opts...)...)
	require.NoError(t, err)
	return g
}

func mustCard(t *testing.T, code string) deck.Card {
	t.Helper()
	c, err := deck.ParseCard(code)
	require.NoError(t, err)
	return c
}

func faceUp(c deck.Card) deck.Card {
	c.SetFaceUp(true)
	return c
}
