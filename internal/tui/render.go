package tui

import (
	"fmt"
	"strings"

	"github.com/lox/kosynka/internal/deck"
	"github.com/lox/kosynka/internal/solitaire"
)

const cellWidth = 6

// FormatCard renders a face-up card in its suit colour, or a card back
func FormatCard(c deck.Card) string {
	if !c.FaceUp {
		return CardBackStyle.Render("[###]")
	}
	text := fmt.Sprintf("[%2s%s]", c.Rank, c.Suit)
	if c.IsRed() {
		return RedCardStyle.Render(text)
	}
	return BlackCardStyle.Render(text)
}

func emptySlot() string {
	return EmptySlotStyle.Render("[   ]")
}

func formatTop(pile []deck.Card) string {
	if len(pile) == 0 {
		return emptySlot()
	}
	return FormatCard(pile[len(pile)-1])
}

// RenderBoard draws the stock, waste, foundations and tableau of a snapshot
func RenderBoard(s solitaire.Snapshot) string {
	var b strings.Builder

	stock := emptySlot()
	if s.StockCount > 0 {
		stock = CardBackStyle.Render("[###]")
	}
	waste := emptySlot()
	if s.WasteTop != nil {
		waste = FormatCard(*s.WasteTop)
	}

	b.WriteString(LabelStyle.Render("Stock "))
	b.WriteString(fmt.Sprintf("%s %-3d ", stock, s.StockCount))
	b.WriteString(LabelStyle.Render("Waste "))
	b.WriteString(fmt.Sprintf("%s %-3d ", waste, s.WasteCount))
	b.WriteString(LabelStyle.Render("Foundations"))
	for _, f := range s.Foundations {
		b.WriteString(" ")
		b.WriteString(formatTop(f))
	}
	b.WriteString("\n\n")

	for col := range solitaire.TableauPiles {
		b.WriteString(InfoStyle.Render(fmt.Sprintf("  %d   ", col+1)))
	}
	b.WriteString("\n")

	depth := 0
	for _, pile := range s.Tableau {
		depth = max(depth, len(pile))
	}
	if depth == 0 {
		depth = 1
	}
	for row := range depth {
		for _, pile := range s.Tableau {
			switch {
			case row < len(pile):
				b.WriteString(FormatCard(pile[row]))
			case row == 0:
				b.WriteString(emptySlot())
			default:
				b.WriteString(strings.Repeat(" ", cellWidth-1))
			}
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(RenderStatus(s))
	return b.String()
}

// RenderStatus is the one-line score and progress summary
func RenderStatus(s solitaire.Snapshot) string {
	line := fmt.Sprintf("Score %d  Moves %d  Seed %d", s.Score, s.Moves, s.Seed)
	if s.Status == solitaire.Won {
		return SuccessStyle.Render(line + "  You won!")
	}
	return WarningStyle.Render(line)
}
