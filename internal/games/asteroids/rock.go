package asteroids

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/gameflix/internal/core"
	"github.com/vovakirdan/gameflix/internal/pattern/physics"
)

// Size classes, largest first. Each hit splits a rock into two of the next
// class until Small, which just disappears.
const (
	Large = iota
	Medium
	Small
)

const (
	largeRadius  = 50
	splitFactor  = 1.5
	vertexCount  = 10
	irregularity = 0.4
)

var (
	rockSpeeds = [...]float64{30, 60, 90}
	rockScores = [...]int{20, 50, 100}
)

// Rock is one asteroid. Outline holds its vertices relative to the center,
// before rotation.
type Rock struct {
	physics.Body
	Size    int
	Outline []core.Vec
	Spin    float64
}

func newRock(rng *rand.Rand, pos core.Vec, radius float64, size int) Rock {
	outline := make([]core.Vec, vertexCount)
	for i := range outline {
		a := float64(i) / vertexCount * 2 * math.Pi
		outline[i] = core.FromAngle(a, radius*(1-irregularity+rng.Float64()*irregularity*2))
	}
	heading := rng.Float64() * 2 * math.Pi
	return Rock{
		Body: physics.Body{
			Pos:    pos,
			Vel:    core.FromAngle(heading, rockSpeeds[size]),
			Radius: radius,
		},
		Size:    size,
		Outline: outline,
		Spin:    (rng.Float64() - 0.5) * 2,
	}
}

// split returns the fragments of r: two rocks of the next size class
// scattered half a radius from its center, or none for a small rock.
func split(rng *rand.Rand, r Rock) []Rock {
	if r.Size >= Small {
		return nil
	}
	out := make([]Rock, 2)
	for i := range out {
		offset := core.FromAngle(rng.Float64()*2*math.Pi, r.Radius/2)
		out[i] = newRock(rng, r.Pos.Add(offset), r.Radius/splitFactor, r.Size+1)
	}
	return out
}
