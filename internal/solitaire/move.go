package solitaire

import (
	"fmt"
	"slices"

	"github.com/lox/kosynka/internal/deck"
)

// MoveHandle is a run lifted by BeginMove. It holds a copy of the cards for
// rendering while the front end drags them; the piles themselves are not
// touched until CompleteMove.
type MoveHandle struct {
	game  *Game
	src   Ref
	cards []deck.Card
	gen   uint64
	done  bool
}

// Cards returns the lifted run, bottom card first.
func (h *MoveHandle) Cards() []deck.Card {
	return slices.Clone(h.cards)
}

// Source returns the pile reference the run was lifted from, with Top and Run
// resolved to a card position.
func (h *MoveHandle) Source() Ref {
	return h.src
}

// BeginMove validates that src names a liftable run and returns a handle for
// it. Waste and foundation sources lift their top card; tableau sources lift
// from the named card to the top, which must be the full movable run unless
// the run is dropped on a foundation.
func (g *Game) BeginMove(src Ref) (*MoveHandle, error) {
	if g.status == Won {
		return nil, ErrGameOver
	}
	pile, start, err := g.source(src)
	if err != nil {
		return nil, g.logged(err)
	}

	resolved := src
	resolved.Card = start
	h := &MoveHandle{
		game:  g,
		src:   resolved,
		cards: slices.Clone(pile[start:]),
		gen:   g.gen,
	}
	g.logger.Debug("Began move", "from", resolved, "cards", len(h.cards))
	return h, nil
}

// CompleteMove drops a lifted run on dest. On success the run is committed
// exactly as the matching Move command would; on ErrIllegalMove the run stays
// where it was. Either way the handle is spent. A handle whose source changed
// since BeginMove returns ErrStaleMove.
func (g *Game) CompleteMove(h *MoveHandle, dest Dest) error {
	if err := g.checkHandle(h); err != nil {
		return g.logged(err)
	}
	h.done = true

	switch dest.Pile {
	case PileFoundation:
		return g.logged(g.moveToFoundation(h.src, dest.Index))
	case PileTableau:
		return g.logged(g.moveToTableau(h.src, dest.Index))
	default:
		return g.logged(fmt.Errorf("%w: cannot drop cards on the %s", ErrIllegalMove, dest.Pile))
	}
}

// CancelMove abandons a lifted run. The piles are unchanged.
func (g *Game) CancelMove(h *MoveHandle) {
	if h != nil && h.game == g {
		h.done = true
	}
}

func (g *Game) checkHandle(h *MoveHandle) error {
	switch {
	case h == nil || h.game != g:
		return fmt.Errorf("%w: handle belongs to another game", ErrStaleMove)
	case h.done:
		return fmt.Errorf("%w: handle already used", ErrStaleMove)
	case h.gen != g.gen:
		return fmt.Errorf("%w: piles changed since the move began", ErrStaleMove)
	}
	return nil
}
