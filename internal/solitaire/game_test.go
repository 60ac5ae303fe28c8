package solitaire

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/kosynka/internal/deck"
	"github.com/lox/kosynka/internal/randutil"
)

func TestNewGameIsDeterministic(t *testing.T) {
	t.Parallel()
	a, err := New(WithSeed(1))
	require.NoError(t, err)
	b, err := New(WithSeed(1))
	require.NoError(t, err)
	c, err := New(WithSeed(2))
	require.NoError(t, err)

	assert.True(t, a.Layout().Equal(b.Layout()))
	assert.False(t, a.Layout().Equal(c.Layout()))
	assert.Equal(t, int64(1), a.Seed())

	// Playing and redealing the same seed restores the deal
	require.NoError(t, a.DrawFromStock())
	a.NewGame(1)
	assert.True(t, a.Layout().Equal(b.Layout()))
	assert.Equal(t, 0, a.Score())
	assert.Equal(t, 0, a.Moves())
	assert.Equal(t, Active, a.Status())
}

func TestNewGameDealShape(t *testing.T) {
	t.Parallel()
	g, err := New(WithSeed(99))
	require.NoError(t, err)

	snap := g.Snapshot()
	for c, pile := range snap.Tableau {
		require.Len(t, pile, c+1)
		assert.True(t, pile[len(pile)-1].FaceUp)
	}
	assert.Equal(t, 24, snap.StockCount)
	assert.Equal(t, 0, snap.WasteCount)
	assert.Nil(t, snap.WasteTop)
	assert.Equal(t, 0, snap.Score)
	assert.Equal(t, Active, snap.Status)
}

func TestNewWithDeckAndLayoutErrors(t *testing.T) {
	t.Parallel()
	_, err := New(WithDeck(deck.NewOrderedDeck()[:40]))
	assert.ErrorIs(t, err, ErrInvalidDeckSize)

	var l Layout
	_, err = New(WithLayout(l))
	assert.ErrorIs(t, err, ErrInvalidLayout)

	g, err := New(WithDeck(deck.NewOrderedDeck()), WithSeed(5))
	require.NoError(t, err)
	assert.True(t, g.Layout().Tableau[0][0].Same(deck.NewCard(deck.Clubs, deck.King)))
}

func TestDrawFromStock(t *testing.T) {
	t.Parallel()
	g, err := New(WithSeed(3))
	require.NoError(t, err)

	require.True(t, g.HasStock())
	stock := g.Layout().Stock
	top := stock[len(stock)-1]
	_, ok := g.PeekWaste()
	assert.False(t, ok, "waste starts empty")

	require.NoError(t, g.DrawFromStock())

	drawn, ok := g.PeekWaste()
	require.True(t, ok)
	assert.True(t, drawn.Same(top))
	assert.True(t, drawn.FaceUp)
	assert.Equal(t, 5, g.Score())
	assert.Equal(t, 23, g.Snapshot().StockCount)
}

func TestDrawWithEverythingEmptyIsNoop(t *testing.T) {
	t.Parallel()
	// Every card not on the tableau sits on a foundation
	l := layoutOf(t, [TableauPiles]string{"KS", "KH", "KD", "KC"}, [FoundationPiles]string{
		suitRun(deck.Spades, 12), suitRun(deck.Hearts, 12), suitRun(deck.Diamonds, 12), suitRun(deck.Clubs, 11),
	}, "QC")
	g := newGameFromLayout(t, l)

	require.NoError(t, g.MoveToTableau(WasteTop(), 1))
	before := g.Layout()
	score := g.Score()
	assert.False(t, g.HasStock())

	require.NoError(t, g.DrawFromStock())
	assert.True(t, before.Equal(g.Layout()))
	assert.Equal(t, score, g.Score())
}

func TestRecycleRoundTrip(t *testing.T) {
	t.Parallel()
	g, err := New(WithSeed(11))
	require.NoError(t, err)

	for range 24 {
		require.NoError(t, g.DrawFromStock())
	}
	waste := g.Layout().Waste
	require.Len(t, waste, 24)
	assert.Equal(t, 120, g.Score())

	// Drawing from an empty stock recycles the waste without scoring
	require.NoError(t, g.DrawFromStock())
	l := g.Layout()
	assert.Empty(t, l.Waste)
	require.Len(t, l.Stock, 24)
	for _, c := range l.Stock {
		assert.False(t, c.FaceUp)
	}
	assert.Equal(t, 120, g.Score())

	for range 24 {
		require.NoError(t, g.DrawFromStock())
	}
	assert.Equal(t, waste, g.Layout().Waste)
}

func TestRecycleWasteExplicit(t *testing.T) {
	t.Parallel()
	g, err := New(WithSeed(12))
	require.NoError(t, err)

	require.NoError(t, g.RecycleWaste(), "empty waste is a no-op")
	assert.Equal(t, 0, g.Moves())

	require.NoError(t, g.DrawFromStock())
	require.NoError(t, g.DrawFromStock())
	drawn := g.Layout().Waste

	require.NoError(t, g.RecycleWaste())
	l := g.Layout()
	assert.Empty(t, l.Waste)
	require.Len(t, l.Stock, 24)
	// The recycled cards sit below the untouched stock, first-drawn nearest the top
	assert.True(t, l.Stock[0].Same(drawn[1]))
	assert.True(t, l.Stock[1].Same(drawn[0]))
	assert.NoError(t, l.Validate())
}

func TestAceOfSpadesToFoundation(t *testing.T) {
	t.Parallel()
	l := layoutOf(t, [TableauPiles]string{"#5H AS", "3S"}, [FoundationPiles]string{}, "")
	g := newGameFromLayout(t, l)

	require.NoError(t, g.MoveToFoundation(TableauTop(0)))

	snap := g.Snapshot()
	assert.Equal(t, []deck.Card{faceUp(mustCard(t, "AS"))}, snap.Foundations[0])
	assert.True(t, snap.Tableau[0][0].FaceUp, "5H revealed")
	assert.Equal(t, 15, snap.Score, "foundation plus reveal bonus")

	before := g.Layout()
	err := g.MoveToFoundation(TableauTop(1))
	assert.ErrorIs(t, err, ErrIllegalMove)
	assert.True(t, before.Equal(g.Layout()))
	assert.Equal(t, 15, g.Score())
}

func TestKingQueenJackScenario(t *testing.T) {
	t.Parallel()
	l := layoutOf(t, [TableauPiles]string{"", "#2C KH", "QC", "JC"}, [FoundationPiles]string{}, "")
	g := newGameFromLayout(t, l)

	require.NoError(t, g.MoveToTableau(TableauRun(1), 0))
	require.NoError(t, g.MoveToTableau(TableauTop(2), 0))

	before := g.Layout()
	err := g.MoveToTableau(TableauTop(3), 0)
	assert.ErrorIs(t, err, ErrIllegalMove)
	assert.True(t, before.Equal(g.Layout()))

	snap := g.Snapshot()
	require.Len(t, snap.Tableau[0], 2)
	assert.True(t, snap.Tableau[0][0].Same(mustCard(t, "KH")))
	assert.True(t, snap.Tableau[0][1].Same(mustCard(t, "QC")))
	assert.True(t, snap.Tableau[1][0].FaceUp, "2C revealed")
	assert.Empty(t, snap.Tableau[2])
	assert.Equal(t, 5, snap.Score)
}

func TestMoveRunRules(t *testing.T) {
	t.Parallel()
	l := layoutOf(t, [TableauPiles]string{"#2H 8S 7H", "9D", "8C", "QS"}, [FoundationPiles]string{}, "")

	t.Run("partial run is rejected", func(t *testing.T) {
		g := newGameFromLayout(t, l)
		err := g.MoveToTableau(TableauTop(0), 2)
		assert.ErrorIs(t, err, ErrIllegalMove)
		assert.True(t, l.Equal(g.Layout()))
	})

	t.Run("full run moves in order", func(t *testing.T) {
		g := newGameFromLayout(t, l)
		require.NoError(t, g.MoveToTableau(TableauCard(0, 1), 1))

		pile := g.Snapshot().Tableau[1]
		require.Len(t, pile, 3)
		assert.True(t, pile[1].Same(mustCard(t, "8S")))
		assert.True(t, pile[2].Same(mustCard(t, "7H")))
		assert.True(t, g.Snapshot().Tableau[0][0].FaceUp)
		assert.Equal(t, 5, g.Score())
	})

	t.Run("face-down card cannot be lifted", func(t *testing.T) {
		g := newGameFromLayout(t, l)
		err := g.MoveToTableau(TableauCard(0, 0), 3)
		assert.ErrorIs(t, err, ErrIllegalMove)
	})

	t.Run("run cannot go to foundation", func(t *testing.T) {
		g := newGameFromLayout(t, l)
		err := g.MoveToFoundation(TableauRun(0))
		assert.ErrorIs(t, err, ErrIllegalMove)
	})

	t.Run("onto itself", func(t *testing.T) {
		g := newGameFromLayout(t, l)
		assert.ErrorIs(t, g.MoveToTableau(TableauRun(0), 0), ErrIllegalMove)
	})

	t.Run("bad references", func(t *testing.T) {
		g := newGameFromLayout(t, l)
		assert.ErrorIs(t, g.MoveToTableau(TableauRun(0), 7), ErrInvalidRef)
		assert.ErrorIs(t, g.MoveToTableau(TableauRun(-1), 2), ErrInvalidRef)
		assert.ErrorIs(t, g.MoveToTableau(TableauCard(0, 9), 2), ErrInvalidRef)
		assert.ErrorIs(t, g.MoveToTableau(Ref{Pile: PileStock}, 2), ErrInvalidRef)
		assert.ErrorIs(t, g.MoveToFoundationPile(TableauTop(3), 4), ErrInvalidRef)
		assert.ErrorIs(t, g.MoveToTableau(WasteTop(), 2), ErrIllegalMove, "empty waste")
		assert.True(t, l.Equal(g.Layout()))
	})
}

func TestEmptyTableauRule(t *testing.T) {
	t.Parallel()
	l := layoutOf(t, [TableauPiles]string{"", "5D"}, [FoundationPiles]string{}, "")

	g := newGameFromLayout(t, l)
	assert.ErrorIs(t, g.MoveToTableau(TableauTop(1), 0), ErrIllegalMove)

	g = newGameFromLayout(t, l, WithRules(ClassicRules()))
	require.NoError(t, g.MoveToTableau(TableauTop(1), 0))
	assert.Len(t, g.Snapshot().Tableau[0], 1)
}

func TestWasteToTableauAndFoundation(t *testing.T) {
	t.Parallel()
	l := layoutOf(t, [TableauPiles]string{"9S"}, [FoundationPiles]string{"AD"}, "2D 8H")
	g := newGameFromLayout(t, l)

	require.NoError(t, g.MoveToTableau(WasteTop(), 0))
	assert.Equal(t, 0, g.Score(), "waste to tableau does not score")

	require.NoError(t, g.MoveToFoundation(WasteTop()))
	assert.Len(t, g.Snapshot().Foundations[0], 2)
	assert.Equal(t, 10, g.Score())
	assert.Equal(t, 0, g.Snapshot().WasteCount)
}

func TestFoundationSelection(t *testing.T) {
	t.Parallel()
	l := layoutOf(t, [TableauPiles]string{"AH", "AC", "2C"}, [FoundationPiles]string{"AS"}, "")
	g := newGameFromLayout(t, l)

	require.NoError(t, g.MoveToFoundation(TableauTop(0)))
	assert.Len(t, g.Snapshot().Foundations[1], 1, "first empty foundation takes the ace")

	require.NoError(t, g.MoveToFoundationPile(TableauTop(1), 3))
	assert.Len(t, g.Snapshot().Foundations[3], 1)

	assert.ErrorIs(t, g.MoveToFoundationPile(TableauTop(2), 1), ErrIllegalMove, "wrong suit")
	require.NoError(t, g.MoveToFoundation(TableauTop(2)))
	assert.Len(t, g.Snapshot().Foundations[3], 2)
}

func TestMoveFromFoundation(t *testing.T) {
	t.Parallel()
	l := layoutOf(t, [TableauPiles]string{"3S"}, [FoundationPiles]string{"AH 2H"}, "")
	g := newGameFromLayout(t, l)

	require.NoError(t, g.MoveFromFoundation(0, 0))
	snap := g.Snapshot()
	assert.Len(t, snap.Foundations[0], 1)
	assert.True(t, snap.Tableau[0][1].Same(mustCard(t, "2H")))
	assert.Equal(t, -10, snap.Score)

	assert.ErrorIs(t, g.MoveToFoundation(FoundationTop(0)), ErrIllegalMove)
	assert.ErrorIs(t, g.MoveFromFoundation(1, 0), ErrIllegalMove, "empty foundation")
}

func TestWinDetection(t *testing.T) {
	t.Parallel()
	l := layoutOf(t, [TableauPiles]string{"KS", "KH", "KD", "KC"}, [FoundationPiles]string{
		suitRun(deck.Spades, 12), suitRun(deck.Hearts, 12), suitRun(deck.Diamonds, 12), suitRun(deck.Clubs, 12),
	}, "")
	g := newGameFromLayout(t, l)

	for col := range 4 {
		assert.False(t, g.CheckWin())
		assert.Equal(t, Active, g.Status())
		require.NoError(t, g.MoveToFoundation(TableauTop(col)))
	}

	assert.True(t, g.CheckWin())
	assert.Equal(t, Won, g.Status())
	total := 0
	for _, f := range g.Snapshot().Foundations {
		assert.Len(t, f, 13)
		total += len(f)
	}
	assert.Equal(t, 52, total)

	score := g.Score()
	g.DecreaseScore()
	assert.Equal(t, score, g.Score(), "no decay after a win")
	assert.ErrorIs(t, g.DrawFromStock(), ErrGameOver)
	assert.ErrorIs(t, g.MoveFromFoundation(0, 0), ErrGameOver)
	_, err := g.BeginMove(FoundationTop(0))
	assert.ErrorIs(t, err, ErrGameOver)

	g.NewGame(4)
	assert.Equal(t, Active, g.Status())
}

func TestDecreaseScore(t *testing.T) {
	t.Parallel()
	g, err := New(WithSeed(8), WithRules(Rules{DecayPenalty: 3}))
	require.NoError(t, err)

	g.DecreaseScore()
	g.DecreaseScore()
	assert.Equal(t, -6, g.Score())
	assert.Equal(t, 0, g.Moves(), "decay is not a move")
}

// Random command sequences never break conservation, foundation order or
// tableau orientation, and rejected commands change nothing.
func TestRandomCommandsPreserveInvariants(t *testing.T) {
	t.Parallel()
	for seed := range int64(20) {
		g, err := New(WithSeed(seed))
		require.NoError(t, err)
		rng := randutil.New(seed + 1000)

		for step := range 300 {
			before := g.Layout()
			beforeScore := g.Score()

			var err error
			switch rng.IntN(4) {
			case 0:
				err = g.DrawFromStock()
			case 1:
				err = g.MoveToFoundation(randomSource(rng.IntN(12), rng.IntN(8)))
			case 2:
				err = g.MoveToTableau(randomSource(rng.IntN(12), rng.IntN(8)), rng.IntN(TableauPiles))
			case 3:
				err = g.MoveFromFoundation(rng.IntN(FoundationPiles), rng.IntN(TableauPiles))
			}

			after := g.Layout()
			require.NoError(t, after.Validate(), "seed %d step %d", seed, step)
			if err != nil {
				require.True(t, errors.Is(err, ErrIllegalMove) || errors.Is(err, ErrInvalidRef) || errors.Is(err, ErrGameOver),
					"unexpected error %v", err)
				require.True(t, before.Equal(after), "seed %d step %d: rejected command changed piles", seed, step)
				require.Equal(t, beforeScore, g.Score())
			}
		}
	}
}

func randomSource(pick, card int) Ref {
	switch {
	case pick < 7:
		if card == 7 {
			return TableauRun(pick)
		}
		return TableauCard(pick, card)
	case pick < 11:
		return FoundationTop(pick - 7)
	default:
		return WasteTop()
	}
}
