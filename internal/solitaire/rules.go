package solitaire

import (
	"fmt"

	"github.com/lox/kosynka/internal/deck"
)

// EmptyTableauRule decides which cards may start an empty tableau pile
type EmptyTableauRule int

const (
	// EmptyTableauKingOnly allows only Kings onto an empty pile
	EmptyTableauKingOnly EmptyTableauRule = iota
	// EmptyTableauAny allows any card onto an empty pile
	EmptyTableauAny
)

func (r EmptyTableauRule) String() string {
	switch r {
	case EmptyTableauKingOnly:
		return "king"
	case EmptyTableauAny:
		return "any"
	default:
		return fmt.Sprintf("EmptyTableauRule(%d)", int(r))
	}
}

// ParseEmptyTableauRule parses "king" or "any"
func ParseEmptyTableauRule(s string) (EmptyTableauRule, error) {
	switch s {
	case "king", "kings", "king-only":
		return EmptyTableauKingOnly, nil
	case "any":
		return EmptyTableauAny, nil
	default:
		return 0, fmt.Errorf("unknown empty tableau rule %q", s)
	}
}

// Rules holds the scoring constants and the empty-tableau rule
type Rules struct {
	FoundationScore int // awarded per card moved onto a foundation
	DrawScore       int // awarded per card drawn from the stock
	RevealScore     int // awarded when a face-down tableau card is turned up
	DecayPenalty    int // subtracted by DecreaseScore
	EmptyTableau    EmptyTableauRule
}

// DefaultRules returns the standard rule set
func DefaultRules() Rules {
	return Rules{
		FoundationScore: 10,
		DrawScore:       5,
		RevealScore:     5,
		DecayPenalty:    1,
		EmptyTableau:    EmptyTableauKingOnly,
	}
}

// ClassicRules returns the older scoring: a large foundation bonus, nothing
// for drawing, and any card allowed onto an empty tableau pile.
func ClassicRules() Rules {
	return Rules{
		FoundationScore: 100,
		DrawScore:       0,
		RevealScore:     5,
		DecayPenalty:    1,
		EmptyTableau:    EmptyTableauAny,
	}
}

// RulesByName returns a preset by name ("standard" or "classic")
func RulesByName(name string) (Rules, error) {
	switch name {
	case "", "standard", "default":
		return DefaultRules(), nil
	case "classic":
		return ClassicRules(), nil
	default:
		return Rules{}, fmt.Errorf("unknown rules preset %q", name)
	}
}

// CanStackOnTableau reports whether moving may be placed on a tableau pile
// whose top card is target. A nil target means the pile is empty.
func (r Rules) CanStackOnTableau(moving deck.Card, target *deck.Card) bool {
	if target == nil {
		return r.EmptyTableau == EmptyTableauAny || moving.IsKing()
	}
	return moving.Color() != target.Color() &&
		moving.Rank.Index()+1 == target.Rank.Index()
}

// CanStackOnTableau applies the standard rules
func CanStackOnTableau(moving deck.Card, target *deck.Card) bool {
	return DefaultRules().CanStackOnTableau(moving, target)
}

// CanMoveToFoundation reports whether moving may be placed on a foundation
// whose top card is top. A nil top means the foundation is empty.
func CanMoveToFoundation(moving deck.Card, top *deck.Card) bool {
	if top == nil {
		return moving.IsAce()
	}
	return moving.Suit == top.Suit &&
		moving.Rank.Index() == top.Rank.Index()+1
}

// MovableRunStart returns the index where the movable run of a tableau pile
// begins: the maximal trailing sequence of face-up cards, each one rank below
// and opposite in colour to the card beneath it. It returns len(pile) when the
// pile is empty or its top card is face down.
func MovableRunStart(pile []deck.Card) int {
	n := len(pile)
	if n == 0 || !pile[n-1].FaceUp {
		return n
	}
	i := n - 1
	for i > 0 {
		below, above := pile[i-1], pile[i]
		if !below.FaceUp || below.Color() == above.Color() ||
			above.Rank.Index()+1 != below.Rank.Index() {
			break
		}
		i--
	}
	return i
}

// isFoundationPrefix reports whether cards are A, 2, ... of a single suit
func isFoundationPrefix(cards []deck.Card) bool {
	for i, c := range cards {
		if c.Rank.Index() != i || c.Suit != cards[0].Suit {
			return false
		}
	}
	return len(cards) <= deck.NumRanks
}
