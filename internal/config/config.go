// Package config provides YAML-based game configuration loading and the
// difficulty modes for Tile Twist.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config contains all tunable gameplay settings.
type Config struct {
	TickRate    int                 `yaml:"tick_rate"`
	HintSeconds float64             `yaml:"hint_seconds"`
	Tile        TileConfig          `yaml:"tile"`
	Modes       map[Mode]ModeConfig `yaml:"modes"`
}

// TileConfig sets how large one tile is drawn, in terminal cells.
// Each cell shows two vertical pixels, so Width = 2*Height gives square tiles.
type TileConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ModeConfig defines the board and allowances for a difficulty mode.
type ModeConfig struct {
	Grid      int           `yaml:"grid"`
	TimeLimit time.Duration `yaml:"time_limit"` // 0 = no countdown
	MoveLimit int           `yaml:"move_limit"` // 0 = unlimited
}

// Mode represents a named difficulty.
type Mode string

const (
	ModeEasy Mode = "easy"
	ModeHard Mode = "hard"
)

// Modes lists the known modes in menu order.
func Modes() []Mode {
	return []Mode{ModeEasy, ModeHard}
}

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeEasy, ModeHard:
		return m, nil
	default:
		return "", fmt.Errorf("config: unknown mode %q (want easy or hard)", s)
	}
}

// Title returns the display name of the mode.
func (m Mode) Title() string {
	switch m {
	case ModeEasy:
		return "Easy"
	case ModeHard:
		return "Hard"
	default:
		return string(m)
	}
}

// Mode returns the settings for m, falling back to the built-in defaults.
func (c Config) Mode(m Mode) ModeConfig {
	if mc, ok := c.Modes[m]; ok && mc.Grid > 0 {
		return mc
	}
	return Default().Modes[m]
}

// HintDuration returns how long the hint overlay stays up.
func (c Config) HintDuration() time.Duration {
	return time.Duration(c.HintSeconds * float64(time.Second))
}

// Validate checks the settings for values the game cannot run with.
func (c Config) Validate() error {
	if c.TickRate <= 0 || c.TickRate > 240 {
		return fmt.Errorf("config: tick_rate %d out of range 1..240", c.TickRate)
	}
	if c.HintSeconds < 0 {
		return fmt.Errorf("config: hint_seconds must not be negative")
	}
	if c.Tile.Width < 2 || c.Tile.Height < 1 {
		return fmt.Errorf("config: tile size %dx%d too small", c.Tile.Width, c.Tile.Height)
	}
	for m, mc := range c.Modes {
		if _, err := ParseMode(string(m)); err != nil {
			return err
		}
		if mc.Grid < 1 {
			return fmt.Errorf("config: mode %s: grid must be at least 1", m)
		}
		if mc.TimeLimit < 0 || mc.MoveLimit < 0 {
			return fmt.Errorf("config: mode %s: limits must not be negative", m)
		}
	}
	return nil
}
