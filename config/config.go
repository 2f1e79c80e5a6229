package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/hoshinonyaruko/snake-in-term/render"
	"github.com/hoshinonyaruko/snake-in-term/snake"
	"github.com/hoshinonyaruko/snake-in-term/structs"
)

// MinBoardSide is the smallest number of rows or columns a board may have.
const MinBoardSide = 3

// AppConfig holds the structure of the configuration
type AppConfig struct {
	Rows int `json:"rows" yaml:"rows" toml:"rows"`
	Cols int `json:"cols" yaml:"cols" toml:"cols"`

	BaseTickMS  int `json:"base_tick_ms" yaml:"base_tick_ms" toml:"base_tick_ms"`
	MinTickMS   int `json:"min_tick_ms" yaml:"min_tick_ms" toml:"min_tick_ms"`
	SpeedStepMS int `json:"speed_step_ms" yaml:"speed_step_ms" toml:"speed_step_ms"`
	PausePollMS int `json:"pause_poll_ms" yaml:"pause_poll_ms" toml:"pause_poll_ms"`

	// Seed 0 means seed from the clock.
	Seed uint64 `json:"seed" yaml:"seed" toml:"seed"`

	SnakeGlyph string `json:"snake_glyph" yaml:"snake_glyph" toml:"snake_glyph"`
	FoodGlyph  string `json:"food_glyph" yaml:"food_glyph" toml:"food_glyph"`
	EmptyGlyph string `json:"empty_glyph" yaml:"empty_glyph" toml:"empty_glyph"`
	BorderH    string `json:"border_h" yaml:"border_h" toml:"border_h"`
	BorderV    string `json:"border_v" yaml:"border_v" toml:"border_v"`

	LogPath      string `json:"log_path" yaml:"log_path" toml:"log_path"`
	SnapshotPath string `json:"snapshot_path" yaml:"snapshot_path" toml:"snapshot_path"`
	BlockSize    int    `json:"block_size" yaml:"block_size" toml:"block_size"`
}

// Default returns the built-in settings used when no config file is given.
func Default() AppConfig {
	return AppConfig{
		Rows:        7,
		Cols:        11,
		BaseTickMS:  400,
		MinTickMS:   200,
		SpeedStepMS: 5,
		PausePollMS: 50,
		SnakeGlyph:  "*",
		FoodGlyph:   "@",
		EmptyGlyph:  " ",
		BorderH:     "-",
		BorderV:     "|",
		BlockSize:   20,
	}
}

// LoadConfig returns the defaults overlaid with the file at filePath.
// An empty filePath reads nothing.
func LoadConfig(filePath string) (*AppConfig, error) {
	cfg := Default()
	if filePath != "" {
		if err := loadConfig(filePath, &cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %q: %w", filePath, err)
	}
	return &cfg, nil
}

// loadConfig decodes the file over cfg, picking the format from the extension
func loadConfig(filePath string, cfg *AppConfig) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(filePath)); ext {
	case ".json":
		err = json.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return fmt.Errorf("decode %s: %w", filePath, err)
	}
	return nil
}

// Validate clamps sizes and timings into range and checks the glyphs.
func (c *AppConfig) Validate() error {
	c.Rows = max(c.Rows, MinBoardSide)
	c.Cols = max(c.Cols, MinBoardSide)

	c.MinTickMS = max(c.MinTickMS, 1)
	c.BaseTickMS = max(c.BaseTickMS, c.MinTickMS)
	c.SpeedStepMS = max(c.SpeedStepMS, 0)
	c.PausePollMS = max(c.PausePollMS, 1)
	if c.BlockSize <= 0 {
		c.BlockSize = Default().BlockSize
	}

	glyphs := []struct {
		name  string
		value string
	}{
		{"snake_glyph", c.SnakeGlyph},
		{"food_glyph", c.FoodGlyph},
		{"empty_glyph", c.EmptyGlyph},
		{"border_h", c.BorderH},
		{"border_v", c.BorderV},
	}
	for _, g := range glyphs {
		if n := len([]rune(g.value)); n != 1 {
			return fmt.Errorf("%s must be a single character, got %q", g.name, g.value)
		}
		if w := runewidth.StringWidth(g.value); w != 1 {
			return fmt.Errorf("%s %q is %d columns wide, want 1", g.name, g.value, w)
		}
	}
	return nil
}

// Size returns the board size.
func (c *AppConfig) Size() structs.Size {
	return structs.Size{Rows: c.Rows, Cols: c.Cols}
}

// Timing returns the tick timing for the engine.
func (c *AppConfig) Timing() snake.Timing {
	return snake.Timing{
		Base: time.Duration(c.BaseTickMS) * time.Millisecond,
		Min:  time.Duration(c.MinTickMS) * time.Millisecond,
		Step: time.Duration(c.SpeedStepMS) * time.Millisecond,
	}
}

// PausePoll is how long the loop sleeps between input checks while paused.
func (c *AppConfig) PausePoll() time.Duration {
	return time.Duration(c.PausePollMS) * time.Millisecond
}

// Theme returns the glyphs for the renderer. Validate must have passed.
func (c *AppConfig) Theme() render.Theme {
	first := func(s string) rune { return []rune(s)[0] }
	return render.Theme{
		Snake:   first(c.SnakeGlyph),
		Food:    first(c.FoodGlyph),
		Empty:   first(c.EmptyGlyph),
		BorderH: first(c.BorderH),
		BorderV: first(c.BorderV),
	}
}
