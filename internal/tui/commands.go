package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lox/kosynka/internal/solitaire"
)

// CommandKind identifies a typed command
type CommandKind int

const (
	CmdDraw CommandKind = iota
	CmdRecycle
	CmdFoundation
	CmdMove
	CmdNew
	CmdHelp
	CmdQuit
)

// Command is a parsed line of user input
type Command struct {
	Kind   CommandKind
	Source solitaire.Ref
	Column int    // destination tableau column, 0-based
	Seed   *int64 // only for CmdNew
}

// HelpText lists the accepted commands
const HelpText = `Commands:
  d, draw            draw from the stock (recycles an empty stock)
  r, recycle         turn the waste over onto the stock
  f <src>            move a card to a foundation (src: w, 1-7)
  m <src> <col>      move to a tableau column (src: w, 1-7, 3:2, f1-f4)
  b <fnd> <col>      move a foundation card back to a column
  n [seed]           deal a new game
  h, help            show this help
  q, quit            leave`

// ParseCommand parses a line such as "m 3 5", "f w" or "n 42". Columns and
// foundations are numbered from 1; "3:2" names the second card of column 3.
func ParseCommand(input string) (Command, error) {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("empty command, type 'help'")
	}

	verb, args := fields[0], fields[1:]
	switch verb {
	case "d", "draw":
		return Command{Kind: CmdDraw}, expectArgs(verb, args, 0)
	case "r", "recycle":
		return Command{Kind: CmdRecycle}, expectArgs(verb, args, 0)
	case "h", "help", "?":
		return Command{Kind: CmdHelp}, nil
	case "q", "quit", "exit":
		return Command{Kind: CmdQuit}, nil

	case "n", "new":
		cmd := Command{Kind: CmdNew}
		if len(args) > 1 {
			return Command{}, fmt.Errorf("usage: n [seed]")
		}
		if len(args) == 1 {
			seed, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return Command{}, fmt.Errorf("invalid seed %q", args[0])
			}
			cmd.Seed = &seed
		}
		return cmd, nil

	case "f", "foundation":
		if err := expectArgs(verb, args, 1); err != nil {
			return Command{}, err
		}
		src, err := parseSource(args[0], solitaire.Top)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CmdFoundation, Source: src}, nil

	case "m", "move":
		if err := expectArgs(verb, args, 2); err != nil {
			return Command{}, err
		}
		src, err := parseSource(args[0], solitaire.Run)
		if err != nil {
			return Command{}, err
		}
		col, err := parseIndex(args[1], solitaire.TableauPiles, "column")
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CmdMove, Source: src, Column: col}, nil

	case "b", "back":
		if err := expectArgs(verb, args, 2); err != nil {
			return Command{}, err
		}
		pile, err := parseIndex(strings.TrimPrefix(args[0], "f"), solitaire.FoundationPiles, "foundation")
		if err != nil {
			return Command{}, err
		}
		col, err := parseIndex(args[1], solitaire.TableauPiles, "column")
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: CmdMove, Source: solitaire.FoundationTop(pile), Column: col}, nil

	default:
		return Command{}, fmt.Errorf("unknown command %q, type 'help'", verb)
	}
}

// parseSource parses "w", "3", "3:2" or "f2". A bare column resolves to
// whole, which is Top for foundation moves and Run for tableau moves.
func parseSource(s string, whole int) (solitaire.Ref, error) {
	switch {
	case s == "w" || s == "waste":
		return solitaire.WasteTop(), nil
	case strings.HasPrefix(s, "f"):
		pile, err := parseIndex(s[1:], solitaire.FoundationPiles, "foundation")
		if err != nil {
			return solitaire.Ref{}, err
		}
		return solitaire.FoundationTop(pile), nil
	}

	colPart, cardPart, hasCard := strings.Cut(s, ":")
	col, err := parseIndex(colPart, solitaire.TableauPiles, "column")
	if err != nil {
		return solitaire.Ref{}, err
	}
	if !hasCard {
		return solitaire.Ref{Pile: solitaire.PileTableau, Index: col, Card: whole}, nil
	}
	card, err := strconv.Atoi(cardPart)
	if err != nil || card < 1 {
		return solitaire.Ref{}, fmt.Errorf("invalid card position %q", cardPart)
	}
	return solitaire.TableauCard(col, card-1), nil
}

// parseIndex converts a 1-based number to a 0-based index below limit
func parseIndex(s string, limit int, what string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > limit {
		return 0, fmt.Errorf("%s must be 1-%d, got %q", what, limit, s)
	}
	return n - 1, nil
}

func expectArgs(verb string, args []string, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s takes %d argument(s), got %d", verb, n, len(args))
	}
	return nil
}
