package stages

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tiletwist/internal/config"
)

//go:embed defaults/stages.yaml
var defaultStagesYAML []byte

// yamlCatalog is the on-disk catalog format.
type yamlCatalog struct {
	Stages []yamlStage `yaml:"stages"`
}

type yamlStage struct {
	ID         string        `yaml:"id"`
	Name       string        `yaml:"name"`
	Subtitle   string        `yaml:"subtitle,omitempty"`
	Mode       string        `yaml:"mode"`
	Source     string        `yaml:"source"`
	TimeBudget time.Duration `yaml:"time_budget,omitempty"`
	MoveBudget int           `yaml:"move_budget,omitempty"`
}

// Catalog is an ordered, id-indexed list of stages.
type Catalog struct {
	stages []Stage
	byID   map[string]int
}

// Load loads the stage catalog.
// Search order: customPath -> ~/.tiletwist/stages.yaml -> ./configs/stages.yaml -> embedded default
func Load(customPath string, cfg config.Config) (*Catalog, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("stages: cannot read %s: %w", customPath, err)
		}
		c, err := Parse(data, filepath.Dir(customPath), cfg)
		if err != nil {
			return nil, fmt.Errorf("stages: %s: %w", customPath, err)
		}
		return c, nil
	}

	if userPath := config.UserPath("stages.yaml"); userPath != "" {
		if data, err := os.ReadFile(userPath); err == nil {
			if c, err := Parse(data, filepath.Dir(userPath), cfg); err == nil {
				return c, nil
			}
		}
	}

	localPath := filepath.Join("configs", "stages.yaml")
	if data, err := os.ReadFile(localPath); err == nil {
		if c, err := Parse(data, "configs", cfg); err == nil {
			return c, nil
		}
	}

	return Parse(defaultStagesYAML, "", cfg)
}

// Parse decodes a YAML catalog. Relative picture paths resolve against baseDir.
func Parse(data []byte, baseDir string, cfg config.Config) (*Catalog, error) {
	var yc yamlCatalog
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	c := NewCatalog()
	for i, ys := range yc.Stages {
		mode, err := config.ParseMode(ys.Mode)
		if err != nil {
			return nil, fmt.Errorf("stage %d (%s): %w", i+1, ys.ID, err)
		}
		if ys.TimeBudget < 0 || ys.MoveBudget < 0 {
			return nil, fmt.Errorf("stage %d (%s): budgets must not be negative", i+1, ys.ID)
		}
		s := Stage{
			ID:        ys.ID,
			Name:      ys.Name,
			Subtitle:  ys.Subtitle,
			Mode:      mode,
			Source:    ys.Source,
			TimeLimit: ys.TimeBudget,
			MoveLimit: ys.MoveBudget,
		}
		s.resolve(cfg, baseDir)
		if err := c.Add(s); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byID: make(map[string]int)}
}

// Add appends a stage. Ids must be unique and every stage needs a source.
func (c *Catalog) Add(s Stage) error {
	if s.ID == "" {
		return errors.New("stages: stage without id")
	}
	if _, dup := c.byID[s.ID]; dup {
		return fmt.Errorf("stages: duplicate stage id %q", s.ID)
	}
	if s.Source == "" {
		return fmt.Errorf("stages: stage %q has no source", s.ID)
	}
	if s.Grid < 1 {
		return fmt.Errorf("stages: stage %q has no grid size", s.ID)
	}
	c.byID[s.ID] = len(c.stages)
	c.stages = append(c.stages, s)
	return nil
}

// All returns every stage in catalog order.
func (c *Catalog) All() []Stage {
	return append([]Stage(nil), c.stages...)
}

// ByMode returns the stages of one mode in catalog order.
func (c *Catalog) ByMode(m config.Mode) []Stage {
	var out []Stage
	for _, s := range c.stages {
		if s.Mode == m {
			out = append(out, s)
		}
	}
	return out
}

// ByID looks a stage up.
func (c *Catalog) ByID(id string) (Stage, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Stage{}, false
	}
	return c.stages[i], true
}

// Len returns the number of stages.
func (c *Catalog) Len() int {
	return len(c.stages)
}
