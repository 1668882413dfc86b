package config

import (
	"slices"
)

// Preset is a named difficulty. Grid games read the fields they need:
// minesweeper uses Cols, Rows and Mines, sudoku uses Removals.
type Preset struct {
	Name     string `yaml:"name"`
	Cols     int    `yaml:"cols,omitempty"`
	Rows     int    `yaml:"rows,omitempty"`
	Mines    int    `yaml:"mines,omitempty"`
	Removals int    `yaml:"removals,omitempty"`
}

// Find returns the preset with the given name.
func (s DifficultySet) Find(name string) (Preset, bool) {
	i := slices.IndexFunc(s.Difficulties, func(p Preset) bool { return p.Name == name })
	if i < 0 {
		return Preset{}, false
	}
	return s.Difficulties[i], true
}

// Initial returns the default preset, or the first one when the default is
// not in the list.
func (s DifficultySet) Initial() Preset {
	if p, ok := s.Find(s.Default); ok {
		return p
	}
	if len(s.Difficulties) == 0 {
		return Preset{}
	}
	return s.Difficulties[0]
}

// Cycle returns the preset after name, wrapping to the first. An unknown
// name yields the first preset.
func (s DifficultySet) Cycle(name string) Preset {
	if len(s.Difficulties) == 0 {
		return Preset{}
	}
	i := slices.IndexFunc(s.Difficulties, func(p Preset) bool { return p.Name == name })
	return s.Difficulties[(i+1)%len(s.Difficulties)]
}
