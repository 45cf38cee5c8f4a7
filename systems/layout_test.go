package systems

import (
	"math"
	"math/rand"
	"testing"
)

func TestSphereScatterBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	const radius = 9.0
	const yOffset = 4.0

	pts := SphereScatter(rng, 500, radius, yOffset)
	if len(pts) != 500 {
		t.Fatalf("expected 500 points, got %d", len(pts))
	}

	for i, p := range pts {
		if !p.IsFinite() {
			t.Fatalf("point %d not finite: %+v", i, p)
		}
		dx, dy, dz := float64(p.X), float64(p.Y-yOffset), float64(p.Z)
		r := math.Sqrt(dx*dx + dy*dy + dz*dz)
		if r > radius+1e-4 {
			t.Errorf("point %d outside sphere: r=%f", i, r)
		}
	}
}

func TestSphereScatterVolumetric(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	pts := SphereScatter(rng, 4000, 10, 0)

	// With cube-root radius scaling, half the points should fall inside
	// r = 10/cbrt(2) ~ 7.937. Surface-biased sampling would put far fewer there.
	inner := 0
	half := 10.0 / math.Cbrt(2)
	for _, p := range pts {
		if float64(p.Length()) < half {
			inner++
		}
	}
	frac := float64(inner) / float64(len(pts))
	if frac < 0.45 || frac > 0.55 {
		t.Errorf("expected ~50%% of points inside half-volume radius, got %.1f%%", frac*100)
	}
}

func TestConeSurfaceBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	const baseRadius = 5.0
	const height = 11.0

	pts := ConeSurface(rng, 300, baseRadius, height, 0.05, 0.95, true, 0.1)
	for i, p := range pts {
		if !p.IsFinite() {
			t.Fatalf("point %d not finite: %+v", i, p)
		}
		if p.Y < 0 || p.Y > height {
			t.Errorf("point %d height out of range: %f", i, p.Y)
		}
		r := math.Sqrt(float64(p.X*p.X + p.Z*p.Z))
		maxR := float64(baseRadius*(1-p.Y/height)) + 0.1 + 1e-4
		if r > maxR {
			t.Errorf("point %d radius %f exceeds cone radius %f at height %f", i, r, maxR, p.Y)
		}
	}
}

func TestConeSurfaceGoldenAzimuths(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	pts := ConeSurface(rng, 64, 5, 10, 0, 1, true, 0)

	// Consecutive golden-angle azimuths must differ by the golden angle mod 2pi.
	for i := 1; i < len(pts); i++ {
		a0 := math.Atan2(float64(pts[i-1].Z), float64(pts[i-1].X))
		a1 := math.Atan2(float64(pts[i].Z), float64(pts[i].X))
		d := math.Mod(a1-a0+4*math.Pi, 2*math.Pi)
		want := math.Mod(GoldenAngle, 2*math.Pi)
		if math.Abs(d-want) > 1e-3 {
			// Points at radius ~0 near the apex have unstable azimuths; skip them.
			r0 := math.Hypot(float64(pts[i-1].X), float64(pts[i-1].Z))
			r1 := math.Hypot(float64(pts[i].X), float64(pts[i].Z))
			if r0 > 0.05 && r1 > 0.05 {
				t.Errorf("azimuth step %d: got %f, want %f", i, d, want)
			}
		}
	}
}

func TestGenerateFoliageDeterministic(t *testing.T) {
	p := FoliageParams{Count: 200, ChaosRadius: 9, ChaosYOffset: 4, BaseRadius: 5, Height: 11}

	a := GenerateFoliage(rand.New(rand.NewSource(7)), p)
	b := GenerateFoliage(rand.New(rand.NewSource(7)), p)

	for i := 0; i < p.Count; i++ {
		if a.Chaos[i] != b.Chaos[i] || a.Target[i] != b.Target[i] {
			t.Fatalf("same seed produced different layouts at %d", i)
		}
		if a.Rand[i] < 0 || a.Rand[i] >= 1 {
			t.Errorf("rand value %d out of [0,1): %f", i, a.Rand[i])
		}
	}
}

func TestGenerateFoliageTargetInsideCone(t *testing.T) {
	p := FoliageParams{Count: 1000, ChaosRadius: 9, BaseRadius: 5, Height: 11}
	l := GenerateFoliage(rand.New(rand.NewSource(8)), p)

	for i, pt := range l.Target {
		if pt.Y < 0 || pt.Y > p.Height {
			t.Errorf("target %d height out of range: %f", i, pt.Y)
		}
		r := math.Hypot(float64(pt.X), float64(pt.Z))
		if r > float64(p.BaseRadius*(1-pt.Y/p.Height))+1e-4 {
			t.Errorf("target %d outside cone volume", i)
		}
	}
}
