package solitaire

import "errors"

var (
	// ErrIllegalMove is returned when the rules reject a relocation. The game is unchanged.
	ErrIllegalMove = errors.New("illegal move")
	// ErrInvalidDeckSize is returned by Deal when the input is not exactly the 52 distinct cards.
	ErrInvalidDeckSize = errors.New("deck must contain exactly 52 distinct cards")
	// ErrInvalidLayout is returned when a layout breaks pile invariants.
	ErrInvalidLayout = errors.New("invalid layout")
	// ErrInvalidRef is returned for pile references that are out of range.
	ErrInvalidRef = errors.New("invalid pile reference")
	// ErrStaleMove is returned when completing a move whose source changed since BeginMove.
	ErrStaleMove = errors.New("move handle is stale")
	// ErrGameOver is returned for commands issued after the game has been won.
	ErrGameOver = errors.New("game is already won")
)
