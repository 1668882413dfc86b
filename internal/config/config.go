// Package config provides YAML-based configuration loading for the arcade:
// engine timing, terminal input tuning, difficulty presets and level data.
package config

// Config is the arcade-wide configuration read from gameflix.yaml.
type Config struct {
	Engine      EngineConfig  `yaml:"engine"`
	Input       InputConfig   `yaml:"input"`
	Minesweeper DifficultySet `yaml:"minesweeper"`
	Sudoku      DifficultySet `yaml:"sudoku"`
	Catalog     CatalogConfig `yaml:"catalog"`
	Sokoban     SokobanConfig `yaml:"-"`
}

// EngineConfig sets the fixed timestep and the host redraw rate.
type EngineConfig struct {
	FPS        int `yaml:"fps"`          // simulation ticks per second
	MaxFrameMS int `yaml:"max_frame_ms"` // clamp for one frame's elapsed time
	FrameRate  int `yaml:"frame_rate"`   // host frames per second
}

// InputConfig tunes how terminal key events become held keys. Terminals only
// report presses, so a key counts as held for HoldFirstMS after its first
// event and HoldRepeatMS after each auto-repeat.
type InputConfig struct {
	HoldFirstMS  int `yaml:"hold_first_ms"`
	HoldRepeatMS int `yaml:"hold_repeat_ms"`
}

// DifficultySet is a list of presets with a starting one.
type DifficultySet struct {
	Default      string   `yaml:"default"`
	Difficulties []Preset `yaml:"difficulties"`
}

// CatalogConfig orders the catalog.
type CatalogConfig struct {
	Categories []string `yaml:"categories"`
}

// SokobanConfig holds the puzzle levels read from sokoban.yaml.
type SokobanConfig struct {
	Levels []SokobanLevel `yaml:"levels"`
}

// SokobanLevel is one puzzle. Map rows use '#' wall, '$' box, '.' target,
// '@' player, '*' box on target and '+' player on target.
type SokobanLevel struct {
	Title string   `yaml:"title"`
	Map   []string `yaml:"map"`
}

// normalize replaces unusable values with defaults.
func (c *Config) normalize() {
	def := DefaultConfig()
	if c.Engine.FPS <= 0 {
		c.Engine.FPS = def.Engine.FPS
	}
	if c.Engine.MaxFrameMS <= 0 {
		c.Engine.MaxFrameMS = def.Engine.MaxFrameMS
	}
	if c.Engine.FrameRate <= 0 {
		c.Engine.FrameRate = def.Engine.FrameRate
	}
	if c.Input.HoldFirstMS <= 0 {
		c.Input.HoldFirstMS = def.Input.HoldFirstMS
	}
	if c.Input.HoldRepeatMS <= 0 {
		c.Input.HoldRepeatMS = def.Input.HoldRepeatMS
	}
	if len(c.Minesweeper.Difficulties) == 0 {
		c.Minesweeper = def.Minesweeper
	}
	if len(c.Sudoku.Difficulties) == 0 {
		c.Sudoku = def.Sudoku
	}
	if len(c.Catalog.Categories) == 0 {
		c.Catalog = def.Catalog
	}
	if len(c.Sokoban.Levels) == 0 {
		c.Sokoban = def.Sokoban
	}
}
