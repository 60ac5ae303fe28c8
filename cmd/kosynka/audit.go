package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"

	"github.com/lox/kosynka/internal/audit"
)

type AuditCmd struct {
	Games   int    `default:"1000" help:"Number of games to play"`
	Steps   int    `default:"500" help:"Random commands per game"`
	Workers int    `default:"0" help:"Parallel games (0 = GOMAXPROCS)"`
	Seed    int64  `default:"1" help:"Seed the per-game seeds are derived from"`
	Rules   string `help:"Rules preset: standard or classic (overrides config)"`
	Verbose bool   `short:"V" help:"Log every game"`
}

func (c *AuditCmd) Run(g *Globals) error {
	cfg, err := loadConfig(g, c.Rules)
	if err != nil {
		return err
	}
	rules, err := cfg.GameRules()
	if err != nil {
		return err
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "kosynka",
	})
	if c.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := audit.Run(ctx, audit.Config{
		Games:   c.Games,
		Steps:   c.Steps,
		Workers: c.Workers,
		Seed:    c.Seed,
		Rules:   rules,
		Logger:  logger,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Games:            %d\n", report.Games)
	fmt.Printf("Commands:         %d (%d accepted, %d rejected)\n", report.Commands, report.Accepted, report.Rejected)
	fmt.Printf("Wins:             %d\n", report.Wins)
	fmt.Printf("Foundation cards: %d (%.1f per game)\n", report.FoundationCards, float64(report.FoundationCards)/float64(report.Games))
	fmt.Printf("Best score:       %d\n", report.BestScore)
	fmt.Printf("Duration:         %s\n", report.Duration)
	return nil
}
