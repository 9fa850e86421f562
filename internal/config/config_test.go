package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chips.hcl")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return path
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	def := Default()
	if cfg.Game.StartingChips != def.Game.StartingChips {
		t.Errorf("StartingChips = %d, want %d", cfg.Game.StartingChips, def.Game.StartingChips)
	}
	if cfg.Game.Evaluator != def.Game.Evaluator {
		t.Errorf("Evaluator = %q, want %q", cfg.Game.Evaluator, def.Game.Evaluator)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config failed validation: %v", err)
	}
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfig(t, `
game {
  player_name    = "Ada"
  opponents      = ["Bot A", "Bot B", "Bot C"]
  starting_chips = 2500
  bet_increment  = 25
  evaluator      = "random"
}

timing {
  deal_delay_ms    = 100
  think_delay_ms   = 200
  reveal_delay_ms  = 300
  restart_delay_ms = 400
}

log {
  level = "debug"
  file  = "/tmp/chips-test.log"
}
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Game.PlayerName != "Ada" {
		t.Errorf("PlayerName = %q, want Ada", cfg.Game.PlayerName)
	}
	if len(cfg.Game.Opponents) != 3 {
		t.Errorf("Opponents = %v, want 3 entries", cfg.Game.Opponents)
	}
	if cfg.Game.StartingChips != 2500 {
		t.Errorf("StartingChips = %d, want 2500", cfg.Game.StartingChips)
	}
	if cfg.Game.BetIncrement != 25 {
		t.Errorf("BetIncrement = %d, want 25", cfg.Game.BetIncrement)
	}
	if cfg.Game.Evaluator != "random" {
		t.Errorf("Evaluator = %q, want random", cfg.Game.Evaluator)
	}
	if cfg.Timing.Think() != 200*time.Millisecond {
		t.Errorf("Think() = %v, want 200ms", cfg.Timing.Think())
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Log.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoad_PartialFileGetsDefaults(t *testing.T) {
	path := writeConfig(t, `
game {
  player_name = "Sam"
}
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Game.PlayerName != "Sam" {
		t.Errorf("PlayerName = %q, want Sam", cfg.Game.PlayerName)
	}
	if cfg.Game.StartingChips != 1000 {
		t.Errorf("StartingChips = %d, want default 1000", cfg.Game.StartingChips)
	}
	if cfg.Timing == nil || cfg.Timing.RestartDelayMS != 2500 {
		t.Errorf("Timing not defaulted: %+v", cfg.Timing)
	}
	if cfg.Log == nil || cfg.Log.Level != "info" {
		t.Errorf("Log not defaulted: %+v", cfg.Log)
	}
}

func TestLoad_InvalidHCL(t *testing.T) {
	path := writeConfig(t, `game { player_name = `)
	if _, err := Load(path); err == nil {
		t.Error("Load() expected error for malformed HCL")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"negative starting chips", func(c *Config) { c.Game.StartingChips = -10 }, true},
		{"negative increment", func(c *Config) { c.Game.BetIncrement = -1 }, true},
		{"no opponents", func(c *Config) { c.Game.Opponents = nil }, true},
		{"too many opponents", func(c *Config) {
			c.Game.Opponents = make([]string, 10)
		}, true},
		{"unknown evaluator", func(c *Config) { c.Game.Evaluator = "psychic" }, true},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"negative delay", func(c *Config) { c.Timing.ThinkDelayMS = -5 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSeatNames_HumanFirst(t *testing.T) {
	cfg := Default()
	cfg.Game.PlayerName = "You"
	cfg.Game.Opponents = []string{"Left", "Right"}

	names := cfg.SeatNames()
	want := []string{"You", "Left", "Right"}
	if len(names) != len(want) {
		t.Fatalf("SeatNames() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("SeatNames()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
