package solitaire

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/kosynka/internal/deck"
	"github.com/lox/kosynka/internal/randutil"
)

// Status is the progress state of a game
type Status int

const (
	Active Status = iota
	Won
)

func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case Won:
		return "won"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Game owns every pile and the score of one Klondike game. All commands are
// atomic: on error nothing has changed.
type Game struct {
	tableau     [TableauPiles][]deck.Card
	foundations [FoundationPiles][]deck.Card
	stock       []deck.Card
	waste       []deck.Card

	score  int
	status Status
	seed   int64
	moves  int
	gen    uint64 // bumped whenever a pile changes

	rules  Rules
	logger *log.Logger
}

// New creates a game and deals it. The deal comes from WithLayout, WithDeck or
// a shuffle of WithSeed, in that order of preference.
func New(opts ...Option) (*Game, error) {
	cfg := newGameConfig(opts)
	g := &Game{
		rules:  cfg.rules,
		logger: cfg.logger.WithPrefix("solitaire"),
	}

	switch {
	case cfg.layout != nil:
		if err := cfg.layout.Validate(); err != nil {
			return nil, err
		}
		g.load(*cfg.layout, cfg.seed)
	case cfg.deck != nil:
		layout, err := Deal(cfg.deck)
		if err != nil {
			return nil, err
		}
		g.load(layout, cfg.seed)
	default:
		g.NewGame(cfg.seed)
	}
	return g, nil
}

// NewGame discards the current game and deals a fresh one shuffled from seed.
func (g *Game) NewGame(seed int64) {
	layout, err := Deal(deck.NewShuffledDeck(randutil.New(seed)))
	if err != nil {
		// A freshly built deck always holds 52 distinct cards
		panic(err)
	}
	g.load(layout, seed)
	g.logger.Debug("New game", "seed", seed, "stock", len(g.stock))
}

func (g *Game) load(l Layout, seed int64) {
	l = l.Clone()
	g.tableau = l.Tableau
	g.foundations = l.Foundations
	g.stock = l.Stock
	g.waste = l.Waste
	g.score = 0
	g.moves = 0
	g.seed = seed
	g.gen++
	g.status = Active
	if g.CheckWin() {
		g.status = Won
	}
}

// DrawFromStock turns the top stock card onto the waste. With an empty stock it
// recycles the waste instead; with both empty it does nothing.
func (g *Game) DrawFromStock() error {
	if g.status == Won {
		return ErrGameOver
	}
	if len(g.stock) == 0 {
		if len(g.waste) == 0 {
			return nil
		}
		return g.RecycleWaste()
	}

	n := len(g.stock)
	c := g.stock[n-1]
	g.stock = g.stock[:n-1]
	c.SetFaceUp(true)
	g.waste = append(g.waste, c)
	g.score += g.rules.DrawScore
	g.commit()

	g.logger.Debug("Drew from stock", "card", c, "stock", len(g.stock), "score", g.score)
	return nil
}

// RecycleWaste turns the waste over to form the stock again, so the next draws
// repeat the same order. An empty waste is a no-op.
func (g *Game) RecycleWaste() error {
	if g.status == Won {
		return ErrGameOver
	}
	if len(g.waste) == 0 {
		return nil
	}

	recycled := make([]deck.Card, 0, len(g.waste)+len(g.stock))
	for i := len(g.waste) - 1; i >= 0; i-- {
		c := g.waste[i]
		c.SetFaceUp(false)
		recycled = append(recycled, c)
	}
	g.stock = append(recycled, g.stock...)
	g.waste = nil
	g.commit()

	g.logger.Debug("Recycled waste", "stock", len(g.stock))
	return nil
}

// MoveToFoundation moves a single card from the waste or a tableau top onto
// the first foundation that accepts it.
func (g *Game) MoveToFoundation(src Ref) error {
	return g.logged(g.moveToFoundation(src, AnyFoundation))
}

// MoveToFoundationPile moves a single card onto foundation pile.
func (g *Game) MoveToFoundationPile(src Ref, pile int) error {
	return g.logged(g.moveToFoundation(src, pile))
}

// MoveToTableau moves the waste top, a foundation top, or a tableau column's
// full movable run onto tableau column col.
func (g *Game) MoveToTableau(src Ref, col int) error {
	return g.logged(g.moveToTableau(src, col))
}

// MoveFromFoundation moves the top card of a foundation back onto a tableau
// column, giving back the foundation score.
func (g *Game) MoveFromFoundation(pile, col int) error {
	return g.logged(g.moveToTableau(FoundationTop(pile), col))
}

// DecreaseScore applies the periodic score decay. It does nothing once the
// game is won.
func (g *Game) DecreaseScore() {
	if g.status == Won {
		return
	}
	g.score -= g.rules.DecayPenalty
}

// CheckWin reports whether every foundation holds a full suit.
func (g *Game) CheckWin() bool {
	for _, f := range g.foundations {
		if len(f) != deck.NumRanks {
			return false
		}
	}
	return true
}

func (g *Game) moveToFoundation(src Ref, idx int) error {
	if g.status == Won {
		return ErrGameOver
	}
	if src.Pile == PileFoundation {
		return fmt.Errorf("%w: %s is already on a foundation", ErrIllegalMove, src)
	}
	if idx != AnyFoundation && (idx < 0 || idx >= FoundationPiles) {
		return fmt.Errorf("%w: foundation %d", ErrInvalidRef, idx+1)
	}

	pile, start, err := g.source(src)
	if err != nil {
		return err
	}
	if start != len(pile)-1 {
		return fmt.Errorf("%w: only a single card can move to a foundation", ErrIllegalMove)
	}

	card := pile[start]
	target := -1
	if idx == AnyFoundation {
		for i, f := range g.foundations {
			if CanMoveToFoundation(card, top(f)) {
				target = i
				break
			}
		}
	} else if CanMoveToFoundation(card, top(g.foundations[idx])) {
		target = idx
	}
	if target < 0 {
		return fmt.Errorf("%w: %s cannot go to %s", ErrIllegalMove, card, ToFoundation(idx))
	}

	run, revealed := g.take(src, start)
	g.foundations[target] = append(g.foundations[target], run...)
	g.score += g.rules.FoundationScore
	if revealed {
		g.score += g.rules.RevealScore
	}
	g.commit()

	g.logger.Debug("Moved to foundation",
		"from", src,
		"card", card,
		"foundation", target+1,
		"revealed", revealed,
		"score", g.score)
	return nil
}

func (g *Game) moveToTableau(src Ref, col int) error {
	if g.status == Won {
		return ErrGameOver
	}
	if col < 0 || col >= TableauPiles {
		return fmt.Errorf("%w: tableau %d", ErrInvalidRef, col+1)
	}
	if src.Pile == PileTableau && src.Index == col {
		return fmt.Errorf("%w: cannot move %s onto itself", ErrIllegalMove, src)
	}

	pile, start, err := g.source(src)
	if err != nil {
		return err
	}
	if src.Pile == PileTableau && start != MovableRunStart(pile) {
		return fmt.Errorf("%w: only the full movable run of %s can be moved", ErrIllegalMove, src)
	}

	bottom := pile[start]
	if !g.rules.CanStackOnTableau(bottom, top(g.tableau[col])) {
		return fmt.Errorf("%w: %s cannot go to %s", ErrIllegalMove, bottom, ToTableau(col))
	}

	run, revealed := g.take(src, start)
	g.tableau[col] = append(g.tableau[col], run...)
	if src.Pile == PileFoundation {
		g.score -= g.rules.FoundationScore
	}
	if revealed {
		g.score += g.rules.RevealScore
	}
	g.commit()

	g.logger.Debug("Moved to tableau",
		"from", src,
		"cards", len(run),
		"bottom", bottom,
		"tableau", col+1,
		"revealed", revealed,
		"score", g.score)
	return nil
}

// source resolves src to the pile it names and the position of the first card
// it lifts. Nothing is modified.
func (g *Game) source(src Ref) ([]deck.Card, int, error) {
	switch src.Pile {
	case PileWaste:
		n := len(g.waste)
		if n == 0 {
			return nil, 0, fmt.Errorf("%w: waste is empty", ErrIllegalMove)
		}
		if src.Card != Top && src.Card != n-1 {
			return nil, 0, fmt.Errorf("%w: only the top of the waste can move", ErrIllegalMove)
		}
		return g.waste, n - 1, nil

	case PileTableau:
		if src.Index < 0 || src.Index >= TableauPiles {
			return nil, 0, fmt.Errorf("%w: tableau %d", ErrInvalidRef, src.Index+1)
		}
		pile := g.tableau[src.Index]
		if len(pile) == 0 {
			return nil, 0, fmt.Errorf("%w: tableau %d is empty", ErrIllegalMove, src.Index+1)
		}
		start := src.Card
		switch src.Card {
		case Top:
			start = len(pile) - 1
		case Run:
			start = MovableRunStart(pile)
		}
		if start < 0 || start >= len(pile) {
			return nil, 0, fmt.Errorf("%w: %s", ErrInvalidRef, src)
		}
		if start < MovableRunStart(pile) {
			return nil, 0, fmt.Errorf("%w: %s is not in the movable run", ErrIllegalMove, src)
		}
		return pile, start, nil

	case PileFoundation:
		if src.Index < 0 || src.Index >= FoundationPiles {
			return nil, 0, fmt.Errorf("%w: foundation %d", ErrInvalidRef, src.Index+1)
		}
		pile := g.foundations[src.Index]
		n := len(pile)
		if n == 0 {
			return nil, 0, fmt.Errorf("%w: foundation %d is empty", ErrIllegalMove, src.Index+1)
		}
		if src.Card != Top && src.Card != n-1 {
			return nil, 0, fmt.Errorf("%w: only the top of a foundation can move", ErrIllegalMove)
		}
		return pile, n - 1, nil

	default:
		return nil, 0, fmt.Errorf("%w: cannot move cards from the %s", ErrInvalidRef, src.Pile)
	}
}

// take removes the cards from start upward out of the pile src names. A
// tableau card left face down on top is turned up.
func (g *Game) take(src Ref, start int) (run []deck.Card, revealed bool) {
	switch src.Pile {
	case PileWaste:
		run = slices.Clone(g.waste[start:])
		g.waste = g.waste[:start]
	case PileTableau:
		pile := g.tableau[src.Index]
		run = slices.Clone(pile[start:])
		pile = pile[:start]
		if n := len(pile); n > 0 && !pile[n-1].FaceUp {
			pile[n-1].SetFaceUp(true)
			revealed = true
		}
		g.tableau[src.Index] = pile
	case PileFoundation:
		pile := g.foundations[src.Index]
		run = slices.Clone(pile[start:])
		g.foundations[src.Index] = pile[:start]
	}
	return run, revealed
}

func (g *Game) commit() {
	g.moves++
	g.gen++
	if g.CheckWin() {
		g.status = Won
		g.logger.Info("Game won", "seed", g.seed, "score", g.score, "moves", g.moves)
	}
}

func (g *Game) logged(err error) error {
	if err != nil {
		g.logger.Debug("Rejected command", "error", err)
	}
	return err
}

func top(pile []deck.Card) *deck.Card {
	if len(pile) == 0 {
		return nil
	}
	c := pile[len(pile)-1]
	return &c
}
