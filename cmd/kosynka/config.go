package main

import (
	"fmt"

	"github.com/lox/kosynka/internal/config"
)

type ConfigCmd struct {
	Init ConfigInitCmd `cmd:"" help:"Write a configuration file with the defaults"`
}

type ConfigInitCmd struct {
	Path  string `arg:"" optional:"" help:"Where to write the file (defaults to --config)"`
	Force bool   `short:"f" help:"Overwrite an existing file"`
}

func (c *ConfigInitCmd) Run(g *Globals) error {
	path := c.Path
	if path == "" {
		path = g.ConfigFile
	}
	if err := config.WriteDefault(path, c.Force); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
