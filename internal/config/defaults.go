package config

import (
	_ "embed"
)

//go:embed defaults/gameflix.yaml
var defaultGameflixYAML []byte

//go:embed defaults/sokoban.yaml
var defaultSokobanYAML []byte

// Catalog categories in display order.
const (
	CategoryClassics = "Arcade Classics"
	CategoryPuzzle   = "Puzzle"
	CategoryAction   = "Action"
)

// DefaultConfig returns the hardcoded configuration used when no YAML can be
// read.
func DefaultConfig() Config {
	return Config{
		Engine: EngineConfig{
			FPS:        60,
			MaxFrameMS: 100,
			FrameRate:  30,
		},
		Input: InputConfig{
			HoldFirstMS:  180,
			HoldRepeatMS: 120,
		},
		Minesweeper: DifficultySet{
			Default: "beginner",
			Difficulties: []Preset{
				{Name: "beginner", Cols: 9, Rows: 9, Mines: 10},
				{Name: "intermediate", Cols: 16, Rows: 16, Mines: 40},
				{Name: "expert", Cols: 30, Rows: 16, Mines: 99},
			},
		},
		Sudoku: DifficultySet{
			Default: "medium",
			Difficulties: []Preset{
				{Name: "easy", Removals: 40},
				{Name: "medium", Removals: 50},
				{Name: "hard", Removals: 60},
			},
		},
		Catalog: CatalogConfig{
			Categories: []string{CategoryClassics, CategoryPuzzle, CategoryAction},
		},
		Sokoban: DefaultSokobanConfig(),
	}
}

// DefaultSokobanConfig returns the built-in puzzle set.
func DefaultSokobanConfig() SokobanConfig {
	return SokobanConfig{Levels: []SokobanLevel{
		{
			Title: "Level 1: Beginner",
			Map: []string{
				"    #####          ",
				"    #   #          ",
				"    #$  #          ",
				"  ###  $##         ",
				"  #  $ $ #         ",
				"### # ## #   ######",
				"#   # ## #####  ..#",
				"# $  $          ..#",
				"##### ### #@##  ..#",
				"    #     #########",
				"    #######        ",
			},
		},
		{
			Title: "Level 2: Novice",
			Map: []string{
				"############  ",
				"#..  #     ###",
				"#..  # $  $  #",
				"#..  #$####  #",
				"#..    @ ##  #",
				"#..  # #  $ ##",
				"###### ##$ $ #",
				"  # $  $ $ $ #",
				"  #    #     #",
				"  ############",
			},
		},
		{
			Title: "Level 3: Intermediate",
			Map: []string{
				"        ######## ",
				"        #     @# ",
				"        # $#$ ## ",
				"        # $  $# ",
				"        ##$ $ # ",
				"######### $ # ###",
				"#....  ## $  $  #",
				"##...    $  $   #",
				"#....  ##########",
				"########         ",
			},
		},
	}}
}

// GetDefaultYAML returns the embedded default YAML for a config file name.
func GetDefaultYAML(name string) []byte {
	switch name {
	case "gameflix":
		return defaultGameflixYAML
	case "sokoban":
		return defaultSokobanYAML
	default:
		return nil
	}
}
