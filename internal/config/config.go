// Package config loads kosynka settings from an HCL file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"

	"github.com/lox/kosynka/internal/fileutil"
	"github.com/lox/kosynka/internal/solitaire"
)

// DefaultFile is the configuration file looked up when none is given
const DefaultFile = "kosynka.hcl"

// Config represents the complete configuration
type Config struct {
	Rules *RulesConfig `hcl:"rules,block"`
	UI    *UIConfig    `hcl:"ui,block"`
}

// RulesConfig selects a rules preset and optionally overrides its constants.
// Unset fields keep the preset's value.
type RulesConfig struct {
	Preset          string  `hcl:"preset,optional"`
	FoundationScore *int    `hcl:"foundation_score,optional"`
	DrawScore       *int    `hcl:"draw_score,optional"`
	RevealScore     *int    `hcl:"reveal_score,optional"`
	DecayPenalty    *int    `hcl:"decay_penalty,optional"`
	EmptyTableau    *string `hcl:"empty_tableau,optional"`
}

// UIConfig contains front-end settings
type UIConfig struct {
	DecayInterval *int   `hcl:"decay_interval,optional"` // seconds, 0 disables
	LogFile       string `hcl:"log_file,optional"`
	LogLevel      string `hcl:"log_level,optional"`
	Color         *bool  `hcl:"color,optional"`
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

// Default returns the default configuration. The rules block names only the
// preset, so a preset chosen later is not masked by per-field overrides.
func Default() *Config {
	return &Config{
		Rules: &RulesConfig{
			Preset: "standard",
		},
		UI: &UIConfig{
			DecayInterval: intPtr(10),
			LogFile:       "kosynka.log",
			LogLevel:      "info",
			Color:         boolPtr(true),
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// standard preset with default UI settings.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		cfg := &Config{}
		cfg.applyDefaults()
		return cfg, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	defaults := Default()

	if c.Rules == nil {
		c.Rules = &RulesConfig{}
	}
	if c.UI == nil {
		c.UI = &UIConfig{}
	}

	if c.Rules.Preset == "" {
		c.Rules.Preset = defaults.Rules.Preset
	}
	if c.UI.DecayInterval == nil {
		c.UI.DecayInterval = defaults.UI.DecayInterval
	}
	if c.UI.LogFile == "" {
		c.UI.LogFile = defaults.UI.LogFile
	}
	if c.UI.LogLevel == "" {
		c.UI.LogLevel = defaults.UI.LogLevel
	}
	if c.UI.Color == nil {
		c.UI.Color = defaults.UI.Color
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := c.GameRules(); err != nil {
		return err
	}
	if c.UI.DecayInterval != nil && *c.UI.DecayInterval < 0 {
		return fmt.Errorf("ui: decay_interval must not be negative, got %d", *c.UI.DecayInterval)
	}
	if _, err := log.ParseLevel(c.UI.LogLevel); err != nil {
		return fmt.Errorf("ui: invalid log_level %q", c.UI.LogLevel)
	}
	return nil
}

// GameRules resolves the preset and overrides into solitaire.Rules
func (c *Config) GameRules() (solitaire.Rules, error) {
	rc := c.Rules
	if rc == nil {
		return solitaire.DefaultRules(), nil
	}

	rules, err := solitaire.RulesByName(rc.Preset)
	if err != nil {
		return solitaire.Rules{}, fmt.Errorf("rules: %w", err)
	}
	if rc.FoundationScore != nil {
		rules.FoundationScore = *rc.FoundationScore
	}
	if rc.DrawScore != nil {
		rules.DrawScore = *rc.DrawScore
	}
	if rc.RevealScore != nil {
		rules.RevealScore = *rc.RevealScore
	}
	if rc.DecayPenalty != nil {
		if *rc.DecayPenalty < 0 {
			return solitaire.Rules{}, fmt.Errorf("rules: decay_penalty must not be negative, got %d", *rc.DecayPenalty)
		}
		rules.DecayPenalty = *rc.DecayPenalty
	}
	if rc.EmptyTableau != nil {
		rules.EmptyTableau, err = solitaire.ParseEmptyTableauRule(*rc.EmptyTableau)
		if err != nil {
			return solitaire.Rules{}, fmt.Errorf("rules: %w", err)
		}
	}
	return rules, nil
}

// DecayInterval returns how often the score decays, or 0 when disabled
func (c *Config) DecayInterval() time.Duration {
	if c.UI == nil || c.UI.DecayInterval == nil {
		return 0
	}
	return time.Duration(*c.UI.DecayInterval) * time.Second
}

// LogLevel returns the configured level, falling back to info
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.UI.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// ColorEnabled reports whether the front end should use colour
func (c *Config) ColorEnabled() bool {
	return c.UI == nil || c.UI.Color == nil || *c.UI.Color
}

// Encode renders the configuration as HCL
func (c *Config) Encode() []byte {
	f := hclwrite.NewEmptyFile()
	gohcl.EncodeIntoBody(c, f.Body())
	return append([]byte("# kosynka configuration\n\n"), f.Bytes()...)
}

// WriteDefault writes the default configuration to filename. An existing file
// is only replaced when overwrite is set.
func WriteDefault(filename string, overwrite bool) error {
	return fileutil.CreateAtomic(filename, Default().Encode(), 0o644, overwrite)
}
