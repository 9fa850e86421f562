package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete game configuration
type Config struct {
	Game   *GameSettings   `hcl:"game,block"`
	Timing *TimingSettings `hcl:"timing,block"`
	Log    *LogSettings    `hcl:"log,block"`
}

// GameSettings contains table-level configuration
type GameSettings struct {
	PlayerName    string   `hcl:"player_name,optional"`
	Opponents     []string `hcl:"opponents,optional"`
	StartingChips int      `hcl:"starting_chips,optional"`
	BetIncrement  int      `hcl:"bet_increment,optional"`
	Evaluator     string   `hcl:"evaluator,optional"`
	StatsFile     string   `hcl:"stats_file,optional"`
}

// TimingSettings controls the pacing of automated play, in
// milliseconds
type TimingSettings struct {
	DealDelayMS    int `hcl:"deal_delay_ms,optional"`
	ThinkDelayMS   int `hcl:"think_delay_ms,optional"`
	RevealDelayMS  int `hcl:"reveal_delay_ms,optional"`
	RestartDelayMS int `hcl:"restart_delay_ms,optional"`
}

// LogSettings contains logging configuration
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// Default returns the default game configuration
func Default() *Config {
	return &Config{
		Game: &GameSettings{
			PlayerName:    "Player 1",
			Opponents:     []string{"AI 1", "AI 2"},
			StartingChips: 1000,
			BetIncrement:  50,
			Evaluator:     "sevencard",
			StatsFile:     "chips-stats.json",
		},
		Timing: &TimingSettings{
			DealDelayMS:    500,
			ThinkDelayMS:   1000,
			RevealDelayMS:  700,
			RestartDelayMS: 2500,
		},
		Log: &LogSettings{
			Level: "info",
			File:  "chips.log",
		},
	}
}

// Load loads configuration from an HCL file, falling back to the
// defaults when the file does not exist
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

// applyDefaults fills in any settings the file omitted
func (c *Config) applyDefaults() {
	def := Default()

	if c.Game == nil {
		c.Game = def.Game
	}
	if c.Game.PlayerName == "" {
		c.Game.PlayerName = def.Game.PlayerName
	}
	if len(c.Game.Opponents) == 0 {
		c.Game.Opponents = def.Game.Opponents
	}
	if c.Game.StartingChips == 0 {
		c.Game.StartingChips = def.Game.StartingChips
	}
	if c.Game.BetIncrement == 0 {
		c.Game.BetIncrement = def.Game.BetIncrement
	}
	if c.Game.Evaluator == "" {
		c.Game.Evaluator = def.Game.Evaluator
	}
	if c.Game.StatsFile == "" {
		c.Game.StatsFile = def.Game.StatsFile
	}

	if c.Timing == nil {
		c.Timing = def.Timing
	}
	if c.Timing.DealDelayMS == 0 {
		c.Timing.DealDelayMS = def.Timing.DealDelayMS
	}
	if c.Timing.ThinkDelayMS == 0 {
		c.Timing.ThinkDelayMS = def.Timing.ThinkDelayMS
	}
	if c.Timing.RevealDelayMS == 0 {
		c.Timing.RevealDelayMS = def.Timing.RevealDelayMS
	}
	if c.Timing.RestartDelayMS == 0 {
		c.Timing.RestartDelayMS = def.Timing.RestartDelayMS
	}

	if c.Log == nil {
		c.Log = def.Log
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Log.File == "" {
		c.Log.File = def.Log.File
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Game.StartingChips <= 0 {
		return fmt.Errorf("starting chips must be positive, got %d", c.Game.StartingChips)
	}
	if c.Game.BetIncrement <= 0 {
		return fmt.Errorf("bet increment must be positive, got %d", c.Game.BetIncrement)
	}
	if len(c.Game.Opponents) < 1 {
		return fmt.Errorf("at least one opponent must be configured")
	}
	if len(c.Game.Opponents) > 9 {
		return fmt.Errorf("too many opponents: %d (maximum 9)", len(c.Game.Opponents))
	}

	validEvaluators := map[string]bool{
		"random":    true,
		"sevencard": true,
	}
	if !validEvaluators[c.Game.Evaluator] {
		return fmt.Errorf("invalid evaluator %q (expected random or sevencard)", c.Game.Evaluator)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}

	for name, ms := range map[string]int{
		"deal_delay_ms":    c.Timing.DealDelayMS,
		"think_delay_ms":   c.Timing.ThinkDelayMS,
		"reveal_delay_ms":  c.Timing.RevealDelayMS,
		"restart_delay_ms": c.Timing.RestartDelayMS,
	} {
		if ms < 0 {
			return fmt.Errorf("%s must not be negative, got %d", name, ms)
		}
	}
	return nil
}

// SeatNames returns the seat names in table order, human first
func (c *Config) SeatNames() []string {
	names := make([]string, 0, 1+len(c.Game.Opponents))
	names = append(names, c.Game.PlayerName)
	return append(names, c.Game.Opponents...)
}

// Deal returns the pre-deal pause as a duration
func (t *TimingSettings) Deal() time.Duration {
	return time.Duration(t.DealDelayMS) * time.Millisecond
}

// Think returns the automated-seat thinking pause as a duration
func (t *TimingSettings) Think() time.Duration {
	return time.Duration(t.ThinkDelayMS) * time.Millisecond
}

// Reveal returns the street-reveal pause as a duration
func (t *TimingSettings) Reveal() time.Duration {
	return time.Duration(t.RevealDelayMS) * time.Millisecond
}

// Restart returns the end-of-round pause as a duration
func (t *TimingSettings) Restart() time.Duration {
	return time.Duration(t.RestartDelayMS) * time.Millisecond
}
