package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded config does not parse: %v", err)
	}
	def := Default()

	if cfg.TickRate != def.TickRate || cfg.HintSeconds != def.HintSeconds || cfg.Tile != def.Tile {
		t.Errorf("embedded = %+v, hardcoded = %+v", cfg, def)
	}
	for _, m := range Modes() {
		if cfg.Mode(m) != def.Mode(m) {
			t.Errorf("mode %s: embedded %+v, hardcoded %+v", m, cfg.Mode(m), def.Mode(m))
		}
	}
}

func TestModeDefaults(t *testing.T) {
	cfg := Default()

	easy := cfg.Mode(ModeEasy)
	if easy.Grid != 2 || easy.TimeLimit != 30*time.Second {
		t.Errorf("easy = %+v", easy)
	}
	hard := cfg.Mode(ModeHard)
	if hard.Grid != 3 || hard.TimeLimit != 60*time.Second {
		t.Errorf("hard = %+v", hard)
	}
	if cfg.HintDuration() != 3*time.Second {
		t.Errorf("HintDuration() = %v", cfg.HintDuration())
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"easy", ModeEasy, false},
		{" HARD ", ModeHard, false},
		{"nightmare", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseMode(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	data := []byte("tick_rate: 60\nmodes:\n  hard:\n    grid: 4\n    time_limit: 90s\n    move_limit: 40\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.TickRate != 60 {
		t.Errorf("TickRate = %d, want 60", cfg.TickRate)
	}
	hard := cfg.Mode(ModeHard)
	if hard.Grid != 4 || hard.TimeLimit != 90*time.Second || hard.MoveLimit != 40 {
		t.Errorf("hard = %+v", hard)
	}
	// Untouched values keep their defaults.
	if cfg.Tile.Width != 12 || cfg.Mode(ModeEasy).Grid != 2 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"bad-yaml.yaml":  "tick_rate: [",
		"bad-tick.yaml":  "tick_rate: 0",
		"bad-grid.yaml":  "modes:\n  easy:\n    grid: 0\n",
		"bad-mode.yaml":  "modes:\n  insane:\n    grid: 5\n",
		"bad-limit.yaml": "modes:\n  easy:\n    grid: 2\n    move_limit: -1\n",
	}
	for name, content := range tests {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("Load(%s) should fail", name)
		}
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() should fail for a missing custom path")
	}
}

func TestExpandHome(t *testing.T) {
	got, err := ExpandHome("/abs/path.db")
	if err != nil || got != "/abs/path.db" {
		t.Errorf("ExpandHome(abs) = %q, %v", got, err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err = ExpandHome("~/x/y.db")
	if err != nil || got != filepath.Join(home, "x", "y.db") {
		t.Errorf("ExpandHome(~) = %q, %v", got, err)
	}
}
