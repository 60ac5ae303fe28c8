package deck

import (
	rand "math/rand/v2"
)

// DeckSize is the number of cards in a standard deck
const DeckSize = 52

// NewOrderedDeck returns the 52 cards suit-major, all face down
func NewOrderedDeck() []Card {
	cards := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for rank := Ace; rank <= King; rank++ {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}

// NewShuffledDeck returns a full deck permuted with rng
func NewShuffledDeck(rng *rand.Rand) []Card {
	if rng == nil {
		panic("rng is required for shuffling")
	}
	cards := NewOrderedDeck()
	Shuffle(cards, rng)
	return cards
}

// Shuffle permutes cards in place using Fisher-Yates
func Shuffle(cards []Card, rng *rand.Rand) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// Complete reports whether cards holds each of the 52 cards exactly once
func Complete(cards []Card) bool {
	if len(cards) != DeckSize {
		return false
	}
	var seen [DeckSize]bool
	for _, c := range cards {
		if !c.Rank.Valid() || c.Suit < Spades || c.Suit > Clubs {
			return false
		}
		id := c.ID()
		if seen[id] {
			return false
		}
		seen[id] = true
	}
	return true
}
