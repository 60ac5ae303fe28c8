package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/kosynka/internal/solitaire"
)

func TestParseCommand(t *testing.T) {
	seed := int64(42)

	tests := []struct {
		input string
		want  Command
	}{
		{"d", Command{Kind: CmdDraw}},
		{"  DRAW ", Command{Kind: CmdDraw}},
		{"r", Command{Kind: CmdRecycle}},
		{"help", Command{Kind: CmdHelp}},
		{"q", Command{Kind: CmdQuit}},
		{"n", Command{Kind: CmdNew}},
		{"n 42", Command{Kind: CmdNew, Seed: &seed}},
		{"f w", Command{Kind: CmdFoundation, Source: solitaire.WasteTop()}},
		{"f 3", Command{Kind: CmdFoundation, Source: solitaire.TableauTop(2)}},
		{"m w 7", Command{Kind: CmdMove, Source: solitaire.WasteTop(), Column: 6}},
		{"m 3 5", Command{Kind: CmdMove, Source: solitaire.TableauRun(2), Column: 4}},
		{"m 3:2 1", Command{Kind: CmdMove, Source: solitaire.TableauCard(2, 1), Column: 0}},
		{"m f2 4", Command{Kind: CmdMove, Source: solitaire.FoundationTop(1), Column: 3}},
		{"b 1 2", Command{Kind: CmdMove, Source: solitaire.FoundationTop(0), Column: 1}},
		{"b f4 7", Command{Kind: CmdMove, Source: solitaire.FoundationTop(3), Column: 6}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCommand(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCommandErrors(t *testing.T) {
	inputs := []string{
		"",
		"jump",
		"d 1",
		"n x",
		"n 1 2",
		"f",
		"f 8",
		"f 0",
		"f f5",
		"m 3",
		"m 3 8",
		"m 3:0 1",
		"m 3:x 1",
		"b 5 1",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := ParseCommand(input)
			assert.Error(t, err)
		})
	}
}
