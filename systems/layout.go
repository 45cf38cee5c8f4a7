package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/evergreen/components"
)

// GoldenAngle spreads azimuths so large batches show no visible spiral
// clustering on the cone.
const GoldenAngle = 2.39996322972865332

// SphereScatter samples n positions uniformly inside a sphere of the given
// radius, offset vertically by yOffset. The cube-root radius scaling gives
// volumetric uniformity rather than clustering at the center.
func SphereScatter(rng *rand.Rand, n int, radius, yOffset float32) []components.Vec3 {
	out := make([]components.Vec3, n)
	for i := range out {
		r := radius * float32(math.Cbrt(rng.Float64()))
		cosTheta := 2*rng.Float32() - 1
		sinTheta := float32(math.Sqrt(float64(1 - cosTheta*cosTheta)))
		phi := 2 * math.Pi * rng.Float64()
		out[i] = components.Vec3{
			X: r * sinTheta * float32(math.Cos(phi)),
			Y: r*cosTheta + yOffset,
			Z: r * sinTheta * float32(math.Sin(phi)),
		}
	}
	return out
}

// ConeSurface samples n positions on the surface of a cone with its base at
// y=0 and apex at y=height. The radius shrinks linearly from baseRadius at
// the base to zero at the apex. lowFrac and highFrac restrict the band of
// heights used, as fractions of the full height. When golden is true the
// azimuth follows the golden angle across the index sequence; otherwise it is
// random. jitter adds a small radial offset so surface points do not read as
// a perfect shell.
func ConeSurface(rng *rand.Rand, n int, baseRadius, height, lowFrac, highFrac float32, golden bool, jitter float32) []components.Vec3 {
	out := make([]components.Vec3, n)
	for i := range out {
		frac := lowFrac + (highFrac-lowFrac)*rng.Float32()
		y := height * frac
		r := baseRadius * (1 - frac)
		if jitter > 0 {
			r += (rng.Float32()*2 - 1) * jitter
			if r < 0 {
				r = 0
			}
		}
		var az float64
		if golden {
			az = GoldenAngle * float64(i)
		} else {
			az = 2 * math.Pi * rng.Float64()
		}
		out[i] = components.Vec3{
			X: r * float32(math.Cos(az)),
			Y: y,
			Z: r * float32(math.Sin(az)),
		}
	}
	return out
}

// FoliageLayout holds the generated per-point attributes for the foliage
// cloud. All slices are immutable after generation; the renderer uploads them
// once as vertex attributes and the device interpolates from then on.
type FoliageLayout struct {
	Chaos  []components.Vec3
	Target []components.Vec3
	Phase  []float32 // per-point time offset for wind
	Rand   []float32 // per-point random in [0,1); top fraction become tips
}

// FoliageParams configures foliage generation.
type FoliageParams struct {
	Count        int
	ChaosRadius  float32
	ChaosYOffset float32
	BaseRadius   float32
	Height       float32
}

// GenerateFoliage builds the dual-layout foliage cloud. Target positions fill
// the cone volume rather than its surface so the tree reads as solid; azimuth
// uses the golden angle since foliage counts are large.
func GenerateFoliage(rng *rand.Rand, p FoliageParams) *FoliageLayout {
	l := &FoliageLayout{
		Chaos:  SphereScatter(rng, p.Count, p.ChaosRadius, p.ChaosYOffset),
		Target: make([]components.Vec3, p.Count),
		Phase:  make([]float32, p.Count),
		Rand:   make([]float32, p.Count),
	}
	for i := 0; i < p.Count; i++ {
		frac := rng.Float32()
		y := p.Height * frac
		// Square-root depth keeps density even across the disc at each height.
		r := p.BaseRadius * (1 - frac) * float32(math.Sqrt(rng.Float64()))
		az := GoldenAngle * float64(i)
		l.Target[i] = components.Vec3{
			X: r * float32(math.Cos(az)),
			Y: y,
			Z: r * float32(math.Sin(az)),
		}
		l.Phase[i] = rng.Float32() * 2 * math.Pi
		l.Rand[i] = rng.Float32()
	}
	return l
}
