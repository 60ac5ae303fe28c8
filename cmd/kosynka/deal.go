package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/kosynka/internal/solitaire"
	"github.com/lox/kosynka/internal/tui"
)

type DealCmd struct {
	Seed    int64  `arg:"" help:"Seed to deal"`
	Rules   string `help:"Rules preset: standard or classic (overrides config)"`
	NoColor bool   `help:"Disable colours"`
}

func (c *DealCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g, c.Rules)
	if err != nil {
		return err
	}
	rules, err := cfg.GameRules()
	if err != nil {
		return err
	}
	if c.NoColor || !cfg.ColorEnabled() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	game, err := solitaire.New(solitaire.WithSeed(c.Seed), solitaire.WithRules(rules))
	if err != nil {
		return err
	}
	fmt.Println(tui.RenderBoard(game.Snapshot()))
	return nil
}
