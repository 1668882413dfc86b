package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := load("gameflix", "", DefaultConfig)
	if err != nil {
		t.Fatalf("load() failed: %v", err)
	}
	def := DefaultConfig()
	if cfg.Engine != def.Engine || cfg.Input != def.Input {
		t.Errorf("embedded engine/input = %+v %+v, expected %+v %+v", cfg.Engine, cfg.Input, def.Engine, def.Input)
	}
	if len(cfg.Minesweeper.Difficulties) != 3 || cfg.Minesweeper.Difficulties[2] != def.Minesweeper.Difficulties[2] {
		t.Errorf("minesweeper presets = %+v", cfg.Minesweeper.Difficulties)
	}

	levels, err := load("sokoban", "", DefaultSokobanConfig)
	if err != nil {
		t.Fatalf("load(sokoban) failed: %v", err)
	}
	want := DefaultSokobanConfig()
	if len(levels.Levels) != len(want.Levels) {
		t.Fatalf("embedded levels = %d, expected %d", len(levels.Levels), len(want.Levels))
	}
	for i := range want.Levels {
		for r, row := range want.Levels[i].Map {
			if levels.Levels[i].Map[r] != row {
				t.Errorf("level %d row %d = %q, expected %q", i, r, levels.Levels[i].Map[r], row)
			}
		}
	}
}

func TestLoadCustomDirOverridesFields(t *testing.T) {
	dir := t.TempDir()
	data := []byte("engine:\n  fps: 30\ninput:\n  hold_first_ms: 250\n")
	if err := os.WriteFile(filepath.Join(dir, "gameflix.yaml"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Engine.FPS != 30 || cfg.Input.HoldFirstMS != 250 {
		t.Errorf("overrides not applied: %+v %+v", cfg.Engine, cfg.Input)
	}
	if cfg.Engine.MaxFrameMS != 100 || cfg.Input.HoldRepeatMS != 120 {
		t.Errorf("unset fields should keep defaults: %+v %+v", cfg.Engine, cfg.Input)
	}
	if len(cfg.Sokoban.Levels) != 3 {
		t.Errorf("sokoban levels = %d, expected the 3 defaults", len(cfg.Sokoban.Levels))
	}
}

func TestLoadInvalidCustomFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "gameflix.yaml"), []byte("engine: [not, a, map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("Load() should report an invalid custom file")
	}
}

func TestNormalize(t *testing.T) {
	cfg := Config{Engine: EngineConfig{FPS: -5}}
	cfg.normalize()
	if cfg.Engine.FPS != 60 || len(cfg.Catalog.Categories) != 3 || len(cfg.Sokoban.Levels) != 3 {
		t.Errorf("normalize() = %+v", cfg)
	}
}

func TestDifficultyCycle(t *testing.T) {
	set := DefaultConfig().Sudoku
	if p := set.Initial(); p.Name != "medium" || p.Removals != 50 {
		t.Errorf("Initial() = %+v", p)
	}

	tests := []struct {
		from, want string
	}{
		{"easy", "medium"},
		{"medium", "hard"},
		{"hard", "easy"},
		{"unknown", "easy"},
	}
	for _, tt := range tests {
		if got := set.Cycle(tt.from); got.Name != tt.want {
			t.Errorf("Cycle(%q) = %q, expected %q", tt.from, got.Name, tt.want)
		}
	}

	if _, ok := set.Find("nightmare"); ok {
		t.Error("Find() should miss unknown presets")
	}
}
