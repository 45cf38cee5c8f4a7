package systems

import (
	"math/rand"
	"testing"
)

func testSnowParams() SnowParams {
	return SnowParams{
		Count:     200,
		Radius:    12,
		Top:       14,
		Floor:     -0.5,
		MinFall:   0.8,
		MaxFall:   2.0,
		WindScale: 0.1,
		WindSpeed: 0.2,
		WindAmp:   0.5,
		FlakeSize: 0.08,
	}
}

func TestSnowfallStaysInVolume(t *testing.T) {
	p := testSnowParams()
	s := NewSnowfall(rand.New(rand.NewSource(5)), 5, p)

	for frame := 0; frame < 1200; frame++ {
		s.Step(float32(frame)/60, 1.0/60.0)
	}

	for i, f := range s.Flakes {
		if !f.Pos.IsFinite() {
			t.Fatalf("flake %d not finite", i)
		}
		if f.Pos.Y < p.Floor-p.MaxFall*MaxDT {
			t.Errorf("flake %d fell through the floor: y=%f", i, f.Pos.Y)
		}
		if f.Pos.Y > p.Top {
			t.Errorf("flake %d above respawn height: y=%f", i, f.Pos.Y)
		}
	}
}

func TestSnowfallPoolIsBounded(t *testing.T) {
	p := testSnowParams()
	s := NewSnowfall(rand.New(rand.NewSource(6)), 6, p)

	if len(s.Flakes) != p.Count {
		t.Fatalf("pool size %d, want %d", len(s.Flakes), p.Count)
	}
	for frame := 0; frame < 600; frame++ {
		s.Step(float32(frame)/60, 1.0/60.0)
	}
	if len(s.Flakes) != p.Count {
		t.Errorf("pool size changed to %d", len(s.Flakes))
	}
}

func TestSnowfallFalls(t *testing.T) {
	p := testSnowParams()
	p.WindAmp = 0
	s := NewSnowfall(rand.New(rand.NewSource(7)), 7, p)

	before := make([]float32, len(s.Flakes))
	for i, f := range s.Flakes {
		before[i] = f.Pos.Y
	}
	s.Step(0, 1.0/60.0)
	for i, f := range s.Flakes {
		if f.Pos.Y == p.Top {
			continue // respawned this frame
		}
		if f.Pos.Y >= before[i] {
			t.Errorf("flake %d did not fall: %f -> %f", i, before[i], f.Pos.Y)
		}
	}
}
