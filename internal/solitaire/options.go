package solitaire

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/lox/kosynka/internal/deck"
	"github.com/lox/kosynka/internal/randutil"
)

// Option configures a Game during creation.
type Option func(*gameConfig)

// gameConfig holds all configuration for creating a game.
type gameConfig struct {
	rules  Rules
	logger *log.Logger
	seed   int64
	seeded bool

	// Exactly one of these may override the seeded deal
	deck   []deck.Card
	layout *Layout
}

// WithRules sets the scoring and empty-tableau rules. Default is DefaultRules.
func WithRules(r Rules) Option {
	return func(c *gameConfig) {
		c.rules = r
	}
}

// WithLogger sets the logger. Default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(c *gameConfig) {
		c.logger = l
	}
}

// WithSeed sets the seed for the first deal. Without it a seed is taken from
// the clock.
func WithSeed(seed int64) Option {
	return func(c *gameConfig) {
		c.seed = seed
		c.seeded = true
	}
}

// WithDeck deals the given deck instead of a seeded shuffle.
func WithDeck(cards []deck.Card) Option {
	return func(c *gameConfig) {
		c.deck = cards
		c.layout = nil
	}
}

// WithLayout starts from an arbitrary position. The layout must pass
// Layout.Validate.
func WithLayout(l Layout) Option {
	return func(c *gameConfig) {
		cl := l.Clone()
		c.layout = &cl
		c.deck = nil
	}
}

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func newGameConfig(opts []Option) *gameConfig {
	cfg := &gameConfig{rules: DefaultRules()}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = discardLogger()
	}
	if !cfg.seeded {
		cfg.seed = randutil.NewSeed()
	}
	return cfg
}
