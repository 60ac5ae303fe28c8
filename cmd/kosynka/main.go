package main

import (
	"github.com/alecthomas/kong"

	"github.com/lox/kosynka/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command
type Globals struct {
	ConfigFile string `name:"config" short:"c" default:"${config_file}" help:"Path to HCL configuration file"`
}

type CLI struct {
	Globals

	Version kong.VersionFlag `short:"v" help:"Show version"`
	Play    PlayCmd          `cmd:"" default:"withargs" help:"Play in the terminal"`
	Deal    DealCmd          `cmd:"" help:"Print the opening layout for a seed"`
	Audit   AuditCmd         `cmd:"" help:"Play random games and check the rules engine"`
	Config  ConfigCmd        `cmd:"" help:"Manage the configuration file"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("kosynka"),
		kong.Description("Klondike solitaire in the terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version":     version,
			"config_file": config.DefaultFile,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// loadConfig reads the configuration file and applies a rules preset given on
// the command line.
func loadConfig(g *Globals, preset string) (*config.Config, error) {
	cfg, err := config.Load(g.ConfigFile)
	if err != nil {
		return nil, err
	}
	if preset != "" {
		cfg.Rules.Preset = preset
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
