package solitaire

import "fmt"

// PileKind identifies a class of pile
type PileKind int

const (
	PileStock PileKind = iota
	PileWaste
	PileTableau
	PileFoundation
)

func (k PileKind) String() string {
	switch k {
	case PileStock:
		return "stock"
	case PileWaste:
		return "waste"
	case PileTableau:
		return "tableau"
	case PileFoundation:
		return "foundation"
	default:
		return fmt.Sprintf("PileKind(%d)", int(k))
	}
}

// Card positions that are resolved against the pile when a command runs
const (
	// Top names the top card of a pile
	Top = -1
	// Run names the first card of a tableau pile's movable run
	Run = -2
)

// Ref names the card (and everything above it) a move lifts from a pile.
// Index selects the tableau column or foundation; Card is a position within
// the pile, or Top or Run.
type Ref struct {
	Pile  PileKind
	Index int
	Card  int
}

// WasteTop refers to the top card of the waste
func WasteTop() Ref {
	return Ref{Pile: PileWaste, Card: Top}
}

// TableauTop refers to the top card of tableau column col (0-based)
func TableauTop(col int) Ref {
	return Ref{Pile: PileTableau, Index: col, Card: Top}
}

// TableauRun refers to the whole movable run of tableau column col
func TableauRun(col int) Ref {
	return Ref{Pile: PileTableau, Index: col, Card: Run}
}

// TableauCard refers to the card at position card of column col and every
// card above it
func TableauCard(col, card int) Ref {
	return Ref{Pile: PileTableau, Index: col, Card: card}
}

// FoundationTop refers to the top card of foundation i
func FoundationTop(i int) Ref {
	return Ref{Pile: PileFoundation, Index: i, Card: Top}
}

func (r Ref) String() string {
	switch r.Pile {
	case PileWaste:
		return "waste"
	case PileTableau:
		switch r.Card {
		case Top:
			return fmt.Sprintf("tableau[%d]", r.Index+1)
		case Run:
			return fmt.Sprintf("tableau[%d]:run", r.Index+1)
		default:
			return fmt.Sprintf("tableau[%d]:%d", r.Index+1, r.Card)
		}
	case PileFoundation:
		return fmt.Sprintf("foundation[%d]", r.Index+1)
	default:
		return r.Pile.String()
	}
}

// Dest names the pile a move lands on
type Dest struct {
	Pile  PileKind
	Index int
}

// ToTableau targets tableau column col (0-based)
func ToTableau(col int) Dest {
	return Dest{Pile: PileTableau, Index: col}
}

// ToFoundation targets foundation i. AnyFoundation lets the engine choose.
func ToFoundation(i int) Dest {
	return Dest{Pile: PileFoundation, Index: i}
}

// AnyFoundation is the foundation index that selects the first accepting pile
const AnyFoundation = -1

func (d Dest) String() string {
	if d.Pile == PileFoundation && d.Index == AnyFoundation {
		return "foundation"
	}
	return fmt.Sprintf("%s[%d]", d.Pile, d.Index+1)
}
