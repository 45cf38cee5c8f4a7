package systems

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/evergreen/components"
)

// Snowflake is one flake in the bounded pool.
type Snowflake struct {
	Pos      components.Vec3
	FallRate float32
	Size     float32
	Phase    float32
}

// SnowParams configures the snowfall volume.
type SnowParams struct {
	Count     int
	Radius    float32 // horizontal extent around the tree axis
	Top       float32 // respawn height
	Floor     float32 // flakes below this respawn at the top
	MinFall   float32 // units/s
	MaxFall   float32
	WindScale float32 // spatial frequency of the wind field
	WindSpeed float32 // time frequency of the wind field
	WindAmp   float32 // horizontal drift, units/s
	FlakeSize float32
}

// Snowfall simulates a fixed pool of flakes drifting on a coherent wind
// field. Flakes respawn at the top when they cross the floor, so the pool
// never grows.
type Snowfall struct {
	Flakes []Snowflake
	params SnowParams
	wind   opensimplex.Noise
	rng    *rand.Rand
}

// NewSnowfall seeds the pool with flakes spread through the whole volume so
// the first frames are not empty at the bottom.
func NewSnowfall(rng *rand.Rand, seed int64, p SnowParams) *Snowfall {
	s := &Snowfall{
		Flakes: make([]Snowflake, p.Count),
		params: p,
		wind:   opensimplex.NewNormalized(seed),
		rng:    rng,
	}
	for i := range s.Flakes {
		s.spawn(&s.Flakes[i], p.Floor+rng.Float32()*(p.Top-p.Floor))
	}
	return s
}

func (s *Snowfall) spawn(f *Snowflake, y float32) {
	p := s.params
	f.Pos = components.Vec3{
		X: (s.rng.Float32()*2 - 1) * p.Radius,
		Y: y,
		Z: (s.rng.Float32()*2 - 1) * p.Radius,
	}
	f.FallRate = p.MinFall + s.rng.Float32()*(p.MaxFall-p.MinFall)
	f.Size = p.FlakeSize * (0.6 + s.rng.Float32()*0.8)
	f.Phase = s.rng.Float32() * 100
}

// Step advances every flake one frame.
func (s *Snowfall) Step(t, dt float32) {
	dt = ClampDT(dt)
	p := s.params
	for i := range s.Flakes {
		f := &s.Flakes[i]
		wx := float32(s.wind.Eval3(
			float64(f.Pos.X*p.WindScale),
			float64(f.Pos.Y*p.WindScale),
			float64(t*p.WindSpeed+f.Phase),
		))*2 - 1
		wz := float32(s.wind.Eval3(
			float64(f.Pos.Z*p.WindScale),
			float64(f.Pos.Y*p.WindScale),
			float64(t*p.WindSpeed-f.Phase),
		))*2 - 1
		f.Pos.X += wx * p.WindAmp * dt
		f.Pos.Z += wz * p.WindAmp * dt
		f.Pos.Y -= f.FallRate * dt
		if f.Pos.Y < p.Floor {
			s.spawn(f, p.Top)
		}
	}
}
