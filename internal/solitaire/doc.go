// Package solitaire implements the rules engine for Klondike ("Kosynka") solitaire.
//
// The main type is Game, which owns the seven tableau piles, four foundations,
// the stock and the waste, and applies commands to them. Front ends issue
// commands and render from Snapshot; the engine never computes positions,
// sizes or animation.
//
// # Basic Usage
//
//	g, err := solitaire.New(solitaire.WithSeed(1))
//	if err != nil {
//	    return err
//	}
//	_ = g.DrawFromStock()
//	if err := g.MoveToFoundation(solitaire.WasteTop()); errors.Is(err, solitaire.ErrIllegalMove) {
//	    // nothing changed
//	}
//	snap := g.Snapshot()
//
// # Dragging
//
// Drag-and-drop front ends use the two-phase form. BeginMove returns a handle
// holding a copy of the lifted run for rendering; the piles are untouched until
// CompleteMove commits the run or rejects it:
//
//	h, err := g.BeginMove(solitaire.TableauRun(3))
//	// ... render h.Cards() under the pointer ...
//	err = g.CompleteMove(h, solitaire.ToTableau(5))
//
// # Rules
//
// Scoring constants and the empty-tableau rule live in Rules. DefaultRules is
// the standard set; ClassicRules reproduces the older scoring.
//
// A Game is not safe for concurrent use. Timers such as score decay belong to
// the front end, which calls DecreaseScore from its own loop.
package solitaire
