package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/game.yaml
var defaultGameYAML []byte

// Default returns the hard-coded configuration. The embedded YAML carries
// the same values.
func Default() Config {
	return Config{
		TickRate:    30,
		HintSeconds: 3,
		Tile: TileConfig{
			Width:  12,
			Height: 6,
		},
		Modes: map[Mode]ModeConfig{
			ModeEasy: {Grid: 2, TimeLimit: 30 * time.Second},
			ModeHard: {Grid: 3, TimeLimit: 60 * time.Second},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultGameYAML
}
