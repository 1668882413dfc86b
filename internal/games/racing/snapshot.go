package racing

import "github.com/vovakirdan/gameflix/internal/core"

// Snapshot is the externally visible state of a race.
type Snapshot struct {
	Lap        int
	Checkpoint int
	Speed      float64
	Pos        core.Vec
	Angle      float64
	RaceTime   float64
	BestLap    float64
	OffTrack   bool
	Crashed    bool
	Count      int
	Started    bool
	Finished   bool
}

// Snapshot captures the current state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Lap:        g.lap,
		Checkpoint: g.checkpoint,
		Speed:      g.speed,
		Pos:        g.car.Pos,
		Angle:      g.car.Angle,
		RaceTime:   g.raceTime,
		BestLap:    g.bestLap,
		OffTrack:   g.offTrack,
		Crashed:    g.crash > 0,
		Count:      g.Count(),
		Started:    g.started,
		Finished:   g.finished,
	}
}
