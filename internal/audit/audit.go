// Package audit plays many seeded games with random commands and checks the
// engine's invariants after every one of them.
package audit

import (
	"context"
	"errors"
	"fmt"
	rand "math/rand/v2"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/kosynka/internal/randutil"
	"github.com/lox/kosynka/internal/solitaire"
)

// Config holds configuration for an audit run
type Config struct {
	Games   int
	Steps   int // commands per game
	Workers int // defaults to GOMAXPROCS
	Seed    int64
	Rules   solitaire.Rules
	Logger  *log.Logger
}

// Report summarises an audit run
type Report struct {
	Games           int
	Commands        int
	Accepted        int
	Rejected        int
	Wins            int
	FoundationCards int // cards on foundations when each game stopped
	BestScore       int
	Duration        time.Duration
}

// Violation describes a broken invariant
type Violation struct {
	Seed    int64
	Step    int
	Command string
	Err     error
}

func (v *Violation) Error() string {
	return fmt.Sprintf("seed %d step %d (%s): %v", v.Seed, v.Step, v.Command, v.Err)
}

func (v *Violation) Unwrap() error {
	return v.Err
}

// ErrStateChanged is reported when a rejected command altered the game
var ErrStateChanged = errors.New("rejected command changed the game")

type gameResult struct {
	commands   int
	accepted   int
	rejected   int
	won        bool
	foundation int
	score      int
}

// Run plays cfg.Games games in parallel. Game i is dealt from
// randutil.Derive(cfg.Seed, i), so a run is reproducible from its seed. The
// first violation cancels the remaining games and is returned.
func Run(ctx context.Context, cfg Config) (*Report, error) {
	if cfg.Games <= 0 {
		return nil, fmt.Errorf("games must be positive, got %d", cfg.Games)
	}
	if cfg.Steps <= 0 {
		return nil, fmt.Errorf("steps must be positive, got %d", cfg.Steps)
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.WithPrefix("audit")

	start := time.Now()
	results := make([]gameResult, cfg.Games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range cfg.Games {
		seed := randutil.Derive(cfg.Seed, i)
		g.Go(func() error {
			res, err := playGame(ctx, seed, cfg.Steps, cfg.Rules)
			if err != nil {
				return err
			}
			results[i] = res
			logger.Debug("Game audited", "game", i, "seed", seed, "commands", res.commands, "won", res.won)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Games: cfg.Games, Duration: time.Since(start)}
	for i, res := range results {
		report.Commands += res.commands
		report.Accepted += res.accepted
		report.Rejected += res.rejected
		report.FoundationCards += res.foundation
		if res.won {
			report.Wins++
		}
		if i == 0 || res.score > report.BestScore {
			report.BestScore = res.score
		}
	}

	logger.Info("Audit complete",
		"games", report.Games,
		"commands", report.Commands,
		"wins", report.Wins,
		"duration", report.Duration)
	return report, nil
}

func playGame(ctx context.Context, seed int64, steps int, rules solitaire.Rules) (gameResult, error) {
	var res gameResult

	game, err := solitaire.New(solitaire.WithSeed(seed), solitaire.WithRules(rules))
	if err != nil {
		return res, err
	}
	if err := game.Layout().Validate(); err != nil {
		return res, &Violation{Seed: seed, Command: "deal", Err: err}
	}

	rng := randutil.New(commandSeed(seed))
	for step := range steps {
		if step%64 == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}

		cmd := randomCommand(rng)
		before := game.Layout()
		beforeScore := game.Score()

		cmdErr := cmd.run(game)
		res.commands++

		if err := checkStep(game, before, beforeScore, cmdErr); err != nil {
			return res, &Violation{Seed: seed, Step: step, Command: cmd.name, Err: err}
		}
		if cmdErr != nil {
			res.rejected++
		} else {
			res.accepted++
		}

		if game.Status() == solitaire.Won {
			res.won = true
			break
		}
	}

	for _, f := range game.Snapshot().Foundations {
		res.foundation += len(f)
	}
	res.score = game.Score()
	return res, nil
}

// commandSeed keeps the command stream independent of the shuffle
func commandSeed(seed int64) int64 {
	return randutil.Derive(seed, 1)
}

// checkStep verifies the game after one command: the layout must satisfy
// every pile invariant, and a rejected command must have left the piles and
// the score untouched.
func checkStep(game *solitaire.Game, before solitaire.Layout, beforeScore int, cmdErr error) error {
	after := game.Layout()
	if err := after.Validate(); err != nil {
		return err
	}
	if cmdErr == nil {
		return nil
	}
	if !expectedRejection(cmdErr) {
		return fmt.Errorf("unexpected error: %w", cmdErr)
	}
	if !before.Equal(after) || beforeScore != game.Score() {
		return fmt.Errorf("%w: %v", ErrStateChanged, cmdErr)
	}
	return nil
}

func expectedRejection(err error) bool {
	return errors.Is(err, solitaire.ErrIllegalMove) ||
		errors.Is(err, solitaire.ErrInvalidRef) ||
		errors.Is(err, solitaire.ErrGameOver)
}

type command struct {
	name string
	run  func(*solitaire.Game) error
}

func randomCommand(rng *rand.Rand) command {
	switch rng.IntN(6) {
	case 0, 1:
		return command{name: "draw", run: (*solitaire.Game).DrawFromStock}
	case 2:
		src := randomSource(rng)
		return command{
			name: fmt.Sprintf("foundation %s", src),
			run:  func(g *solitaire.Game) error { return g.MoveToFoundation(src) },
		}
	case 3:
		src, col := randomSource(rng), rng.IntN(solitaire.TableauPiles)
		return command{
			name: fmt.Sprintf("move %s -> %s", src, solitaire.ToTableau(col)),
			run:  func(g *solitaire.Game) error { return g.MoveToTableau(src, col) },
		}
	case 4:
		pile, col := rng.IntN(solitaire.FoundationPiles), rng.IntN(solitaire.TableauPiles)
		return command{
			name: fmt.Sprintf("back foundation[%d] -> tableau[%d]", pile+1, col+1),
			run:  func(g *solitaire.Game) error { return g.MoveFromFoundation(pile, col) },
		}
	default:
		src, dest := randomSource(rng), randomDest(rng)
		return command{
			name: fmt.Sprintf("drag %s -> %s", src, dest),
			run: func(g *solitaire.Game) error {
				h, err := g.BeginMove(src)
				if err != nil {
					return err
				}
				return g.CompleteMove(h, dest)
			},
		}
	}
}

func randomSource(rng *rand.Rand) solitaire.Ref {
	switch n := rng.IntN(10); {
	case n < 2:
		return solitaire.WasteTop()
	case n < 5:
		return solitaire.TableauRun(rng.IntN(solitaire.TableauPiles))
	case n < 8:
		return solitaire.TableauTop(rng.IntN(solitaire.TableauPiles))
	case n < 9:
		return solitaire.TableauCard(rng.IntN(solitaire.TableauPiles), rng.IntN(8))
	default:
		return solitaire.FoundationTop(rng.IntN(solitaire.FoundationPiles))
	}
}

func randomDest(rng *rand.Rand) solitaire.Dest {
	if rng.IntN(3) == 0 {
		return solitaire.ToFoundation(solitaire.AnyFoundation)
	}
	return solitaire.ToTableau(rng.IntN(solitaire.TableauPiles))
}
