// Package registry provides a global registry for game scenes.
// Games register themselves in init() functions, allowing the platform
// to discover and load games without hardcoded dependencies.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gameflix/internal/config"
	"github.com/vovakirdan/gameflix/internal/engine"
	"github.com/vovakirdan/gameflix/internal/storage"
)

// Info contains metadata about a registered game.
type Info struct {
	ID          string
	Title       string
	Category    string
	Description string
	Controls    string
}

// Env carries what a scene needs from its host.
type Env struct {
	Seed   int64
	Store  storage.KV
	Log    *log.Logger
	Config config.Config
}

// Factory constructs a game's scene for an engine.
type Factory func(e *engine.Engine, env Env) engine.Scene

// LoadStatus reports the outcome of Load.
type LoadStatus int

const (
	LoadReady LoadStatus = iota
	LoadUnknownGame
)

func (s LoadStatus) String() string {
	switch s {
	case LoadReady:
		return "ready"
	case LoadUnknownGame:
		return "unknown game"
	default:
		return "unknown"
	}
}

type entry struct {
	info    Info
	factory Factory
}

var (
	entries    = make(map[string]entry)
	categories = []string{config.CategoryClassics, config.CategoryPuzzle, config.CategoryAction}
	mu         sync.RWMutex
)

// Register adds a game to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered.
func Register(info Info, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[info.ID]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", info.ID))
	}
	entries[info.ID] = entry{info: info, factory: f}
}

// SetCategoryOrder changes the order List groups categories in.
func SetCategoryOrder(order []string) {
	mu.Lock()
	defer mu.Unlock()
	if len(order) > 0 {
		categories = slices.Clone(order)
	}
}

// List returns information about all registered games, grouped by category
// order and sorted by title within a category.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}

	rank := func(category string) int {
		if i := slices.Index(categories, category); i >= 0 {
			return i
		}
		return len(categories)
	}
	slices.SortFunc(result, func(a, b Info) int {
		if ra, rb := rank(a.Category), rank(b.Category); ra != rb {
			return ra - rb
		}
		return strings.Compare(a.Title, b.Title)
	})
	return result
}

// Lookup returns the metadata for a game.
func Lookup(id string) (Info, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[id]
	return e.info, ok
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}

// Load makes the game current on e and starts the engine. The scene is
// constructed on the first load and reused afterwards, so re-opening a game
// resumes it (its Enter resets a finished game).
func Load(e *engine.Engine, id string, env Env) LoadStatus {
	mu.RLock()
	ent, ok := entries[id]
	mu.RUnlock()

	if !ok {
		e.Logger().Error("game not found", "game", id)
		return LoadUnknownGame
	}

	if !e.HasScene(id) {
		if env.Log == nil {
			env.Log = e.Logger()
		}
		if env.Store == nil {
			env.Store = storage.NewMemory()
		}
		e.AddScene(id, ent.factory(e, env))
	}
	e.SetScene(id)
	e.Start()
	return LoadReady
}
