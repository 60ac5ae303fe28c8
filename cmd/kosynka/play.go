package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/muesli/termenv"

	"github.com/lox/kosynka/internal/decay"
	"github.com/lox/kosynka/internal/randutil"
	"github.com/lox/kosynka/internal/solitaire"
	"github.com/lox/kosynka/internal/tui"
)

type PlayCmd struct {
	Seed     *int64 `help:"Seed for the first deal (random when unset)"`
	Rules    string `help:"Rules preset: standard or classic (overrides config)"`
	LogFile  string `help:"Log file path (overrides config)"`
	LogLevel string `help:"Log level (overrides config)"`
	NoColor  bool   `help:"Disable colours"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g, c.Rules)
	if err != nil {
		return err
	}
	if c.LogFile != "" {
		cfg.UI.LogFile = c.LogFile
	}
	if c.LogLevel != "" {
		cfg.UI.LogLevel = c.LogLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	rules, err := cfg.GameRules()
	if err != nil {
		return err
	}

	// The terminal belongs to the TUI, so logs go to a file
	logFile, err := os.OpenFile(cfg.UI.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	logger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           cfg.LogLevel(),
		Prefix:          "kosynka",
	})

	if c.NoColor || !cfg.ColorEnabled() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	seed := randutil.NewSeed()
	if c.Seed != nil {
		seed = *c.Seed
	}
	game, err := solitaire.New(
		solitaire.WithSeed(seed),
		solitaire.WithRules(rules),
		solitaire.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	logger.Info("Starting game",
		"seed", seed,
		"config", g.ConfigFile,
		"decay", cfg.DecayInterval())

	model := tui.NewModel(game, logger)
	program := tea.NewProgram(model, tea.WithAltScreen())

	// Ticks are delivered as messages so the score only changes on the UI loop
	ticker := decay.New(quartz.NewReal(), cfg.DecayInterval(), func() {
		program.Send(tui.DecayMsg{})
	}, logger)
	ticker.Start(context.Background())

	_, runErr := program.Run()
	stopErr := ticker.Stop()

	final := game.Snapshot()
	logger.Info("Game closed", "seed", final.Seed, "score", final.Score, "status", final.Status, "moves", final.Moves)
	return errors.Join(runErr, stopErr)
}
