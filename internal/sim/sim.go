package sim

import (
	"context"
	"fmt"
	"io"
	"time"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/gameflix/internal/config"
	"github.com/vovakirdan/gameflix/internal/core"
	"github.com/vovakirdan/gameflix/internal/engine"
	"github.com/vovakirdan/gameflix/internal/gfx"
	"github.com/vovakirdan/gameflix/internal/registry"
	"github.com/vovakirdan/gameflix/internal/storage"
)

// Result is the outcome of one run.
type Result struct {
	RunID   string
	Game    string
	Seed    int64
	Ticks   uint64
	Frames  int
	Digest  string // xxhash of the final frame's runes and colors
	Screen  string
	Elapsed time.Duration
}

type options struct {
	config config.Config
	logger *log.Logger
}

// Option configures Run and RunAll.
type Option func(*options)

// WithConfig sets the configuration games are constructed with.
func WithConfig(c config.Config) Option {
	return func(o *options) { o.config = c }
}

// WithLogger routes engine and game logging to l.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) options {
	o := options{config: config.DefaultConfig(), logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Run plays one script on a fresh engine driven by a manual scheduler. Frames
// of the script's length are delivered until fewer ticks remain than a frame
// could run; the rest are ticked one at a time, so the final state does not
// depend on the frame length.
func Run(ctx context.Context, s Script, opts ...Option) (Result, error) {
	if err := s.Validate(); err != nil {
		return Result{}, err
	}
	o := newOptions(opts)
	res := Result{RunID: uuid.NewString(), Game: s.Game, Seed: s.Seed}
	logger := o.logger.With("run", res.RunID, "game", s.Game)

	byTick := make(map[uint64][]Event)
	for _, ev := range s.Events {
		byTick[ev.Tick] = append(byTick[ev.Tick], ev)
	}
	releases := make(map[uint64][]string)
	hook := func(tick uint64, in *engine.Input) {
		for _, code := range releases[tick] {
			in.HandleKeyUp(code)
		}
		delete(releases, tick)
		for _, ev := range byTick[tick] {
			ev.apply(in)
			if ev.Press != "" {
				releases[tick+1] = append(releases[tick+1], ev.Press)
			}
		}
	}

	sched := engine.NewManualScheduler(time.Unix(0, 0))
	canvas := gfx.New(core.NewScreen(s.Width, s.Height), gfx.DefaultWidth, gfx.DefaultHeight)
	e := engine.New(canvas,
		engine.WithScheduler(sched),
		engine.WithLogger(logger),
		engine.WithFPS(o.config.Engine.FPS),
		engine.WithMaxFrame(time.Duration(o.config.Engine.MaxFrameMS)*time.Millisecond),
		engine.WithTickHook(hook),
	)

	env := registry.Env{Seed: s.Seed, Store: storage.NewMemory(), Log: logger, Config: o.config}
	if status := registry.Load(e, s.Game, env); status != registry.LoadReady {
		return res, fmt.Errorf("sim: %s: %v", s.Game, status)
	}

	start := time.Now()
	frame := s.frame(e.Step())
	perFrame := uint64(frame/e.Step()) + 1
	for e.Ticks()+perFrame <= s.Ticks {
		if err := ctx.Err(); err != nil {
			e.Stop()
			return res, fmt.Errorf("sim: %s: %w", s.Game, err)
		}
		sched.Advance(frame)
		res.Frames++
		if err := e.Err(); err != nil {
			return res, fmt.Errorf("sim: %s at tick %d: %w", s.Game, e.Ticks(), err)
		}
	}
	e.Stop()
	for e.Ticks() < s.Ticks {
		if !e.Tick() {
			return res, fmt.Errorf("sim: %s at tick %d: %w", s.Game, e.Ticks(), e.Err())
		}
	}
	if !e.Render() {
		return res, fmt.Errorf("sim: %s render: %w", s.Game, e.Err())
	}
	res.Frames++

	res.Ticks = e.Ticks()
	res.Screen = canvas.Screen().String()
	res.Digest = Digest(canvas.Screen())
	res.Elapsed = time.Since(start)
	logger.Debug("run finished", "ticks", res.Ticks, "frames", res.Frames, "digest", res.Digest)
	return res, nil
}

// RunAll runs scripts concurrently, at most parallel at a time (0 means no
// limit). Results keep the order of scripts. The first failure cancels the
// remaining runs.
func RunAll(ctx context.Context, scripts []Script, parallel int, opts ...Option) ([]Result, error) {
	results := make([]Result, len(scripts))
	g, ctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}
	for i, s := range scripts {
		g.Go(func() error {
			r, err := Run(ctx, s, opts...)
			results[i] = r
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// Digest fingerprints a screen: every cell's rune and color, row by row.
func Digest(s *core.Screen) string {
	d := xxhash.New()
	buf := make([]byte, 0, utf8.UTFMax+1)
	for y := range s.Height() {
		for x := range s.Width() {
			c := s.GetCell(x, y)
			buf = utf8.AppendRune(buf[:0], c.Rune)
			buf = append(buf, byte(c.Color))
			//nolint:errcheck // xxhash.Digest.Write never fails
			d.Write(buf)
		}
	}
	return fmt.Sprintf("%016x", d.Sum64())
}
