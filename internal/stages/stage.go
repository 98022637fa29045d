// Package stages provides the stage catalog: which picture each stage uses,
// its difficulty mode and its time and move allowances.
package stages

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"time"

	"github.com/vovakirdan/tiletwist/internal/config"
	"github.com/vovakirdan/tiletwist/internal/imaging"
	"github.com/vovakirdan/tiletwist/internal/registry"
)

// PatternPrefix marks a procedural picture source.
const PatternPrefix = "pattern:"

// patternSize is the edge length procedural pictures are drawn at.
const patternSize = 144

// Stage is one playable picture. The engine only reads it.
type Stage struct {
	ID        string
	Name      string
	Subtitle  string
	Mode      config.Mode
	Source    string
	Grid      int
	TimeLimit time.Duration // 0 = no countdown
	MoveLimit int           // 0 = unlimited
	Custom    bool          // added by the player, stored in the database
}

// Title returns the display title with the board size.
func (s Stage) Title() string {
	return fmt.Sprintf("%s (%dx%d)", s.Name, s.Grid, s.Grid)
}

// IsPattern reports whether the stage uses a procedural picture.
func (s Stage) IsPattern() bool {
	return strings.HasPrefix(s.Source, PatternPrefix)
}

// Picture loads the stage's source picture.
func (s Stage) Picture() (image.Image, error) {
	if s.IsPattern() {
		name := strings.TrimPrefix(s.Source, PatternPrefix)
		img, err := registry.Create(name, patternSize, patternSize)
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", s.ID, err)
		}
		return img, nil
	}
	img, err := imaging.Open(s.Source)
	if err != nil {
		return nil, fmt.Errorf("stage %s: %w", s.ID, err)
	}
	return img, nil
}

// resolve fills grid and allowances from the mode settings and makes
// relative file sources absolute against baseDir.
func (s *Stage) resolve(cfg config.Config, baseDir string) {
	mc := cfg.Mode(s.Mode)
	s.Grid = mc.Grid
	if s.TimeLimit == 0 {
		s.TimeLimit = mc.TimeLimit
	}
	if s.MoveLimit == 0 {
		s.MoveLimit = mc.MoveLimit
	}
	if !s.IsPattern() && baseDir != "" && s.Source != "" && !filepath.IsAbs(s.Source) {
		s.Source = filepath.Join(baseDir, s.Source)
	}
}

// New builds a stage outside a catalog file, e.g. a custom stage.
func New(id, name string, mode config.Mode, source string, cfg config.Config) Stage {
	s := Stage{ID: id, Name: name, Mode: mode, Source: source}
	s.resolve(cfg, "")
	return s
}

// CustomID derives a stage id from a player-chosen name, e.g.
// "My Cat!" in hard mode becomes "custom-my-cat-hard".
func CustomID(name string, mode config.Mode) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		slug = "stage"
	}
	return "custom-" + slug + "-" + string(mode)
}
