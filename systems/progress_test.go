package systems

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestProgressMonotone(t *testing.T) {
	p := NewProgress(2.0, ModeChaos)

	// Toward formed: non-decreasing, clamped to [0,1].
	prev := p.Value()
	for i := 0; i < 300; i++ {
		v := p.Step(ModeFormed, 1.0/60.0)
		if v < prev {
			t.Fatalf("progress decreased toward formed at frame %d: %f -> %f", i, prev, v)
		}
		if v < 0 || v > 1 {
			t.Fatalf("progress out of range: %f", v)
		}
		prev = v
	}
	if prev < 0.99 {
		t.Errorf("progress should be near 1 after 5s, got %f", prev)
	}

	// Back toward chaos: non-increasing.
	for i := 0; i < 300; i++ {
		v := p.Step(ModeChaos, 1.0/60.0)
		if v > prev {
			t.Fatalf("progress increased toward chaos at frame %d: %f -> %f", i, prev, v)
		}
		prev = v
	}
}

func TestProgressStartsAtModeEndpoint(t *testing.T) {
	if v := NewProgress(2, ModeFormed).Value(); v != 1 {
		t.Errorf("formed start: got %f, want 1", v)
	}
	if v := NewProgress(2, ModeChaos).Value(); v != 0 {
		t.Errorf("chaos start: got %f, want 0", v)
	}
}

func TestProgressFrameRateIndependent(t *testing.T) {
	// Many small steps and few large steps over the same wall time should
	// land close together.
	fine := NewProgress(3, ModeChaos)
	coarse := NewProgress(3, ModeChaos)

	for i := 0; i < 240; i++ {
		fine.Step(ModeFormed, 1.0/120.0)
	}
	for i := 0; i < 60; i++ {
		coarse.Step(ModeFormed, 1.0/30.0)
	}

	if d := math.Abs(float64(fine.Value() - coarse.Value())); d > 0.05 {
		t.Errorf("frame rate changed outcome by %f", d)
	}
}

func TestEaseOutCubicEndpoints(t *testing.T) {
	if EaseOutCubic(0) != 0 {
		t.Errorf("ease(0) = %f, want 0", EaseOutCubic(0))
	}
	if EaseOutCubic(1) != 1 {
		t.Errorf("ease(1) = %f, want 1", EaseOutCubic(1))
	}
}

func TestEaseOutCubicStrictlyIncreasing(t *testing.T) {
	prev := EaseOutCubic(0)
	for i := 1; i <= 100; i++ {
		v := EaseOutCubic(float32(i) / 100)
		if v <= prev {
			t.Fatalf("ease not strictly increasing at %d/100: %f <= %f", i, v, prev)
		}
		prev = v
	}
}

func TestEaseOutCubicMatchesGween(t *testing.T) {
	// The shader and the CPU copy must agree with the library easing the UI
	// tweens use.
	for i := 0; i <= 20; i++ {
		x := float32(i) / 20
		want := ease.OutCubic(x, 0, 1, 1)
		if got := EaseOutCubic(x); math.Abs(float64(got-want)) > 1e-5 {
			t.Errorf("ease(%f) = %f, gween OutCubic = %f", x, got, want)
		}
	}
}
