package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/evergreen/components"
)

func ringWith(n int) *PhotoRing {
	refs := make([]string, n)
	for i := range refs {
		refs[i] = string(rune('a' + i))
	}
	r := NewPhotoRing(rand.New(rand.NewSource(1)))
	r.SetRefs(refs)
	return r
}

func TestPhotoRingNextPrevRoundtrip(t *testing.T) {
	for _, n := range []int{1, 2, 5, 9} {
		r := ringWith(n)
		for start := 0; start < n; start++ {
			before := r.Offset()
			r.Next()
			r.Prev()
			if r.Offset() != before {
				t.Errorf("len %d: next+prev moved offset %d -> %d", n, before, r.Offset())
			}
			r.Next()
		}
	}
}

func TestPhotoRingWraps(t *testing.T) {
	r := ringWith(3)
	for i := 0; i < 3; i++ {
		r.Next()
	}
	if r.Offset() != 0 {
		t.Errorf("three nexts over three photos should wrap to 0, got %d", r.Offset())
	}
	r.Prev()
	if r.Offset() != 2 {
		t.Errorf("prev from 0 should wrap to 2, got %d", r.Offset())
	}
}

func TestPhotoRingSlotRotation(t *testing.T) {
	r := ringWith(4)
	ref, ok := r.Ref(1)
	if !ok || ref != "b" {
		t.Fatalf("slot 1 before rotation: got %q", ref)
	}
	r.Next()
	ref, _ = r.Ref(1)
	if ref != "c" {
		t.Errorf("slot 1 after one next: got %q, want %q", ref, "c")
	}
}

func TestPhotoRingEmptyDegrades(t *testing.T) {
	r := NewPhotoRing(rand.New(rand.NewSource(1)))

	if _, ok := r.Ref(0); ok {
		t.Error("empty ring returned a reference")
	}
	r.Next() // must not panic
	r.Prev()
	if got := r.RollFeatured(6); got != -1 {
		t.Errorf("featured roll on empty ring: got %d, want -1", got)
	}
}

func TestPhotoRingSetRefsResetsOffset(t *testing.T) {
	r := ringWith(5)
	r.Next()
	r.Next()
	r.SetRefs([]string{"x", "y"})
	if r.Offset() != 0 {
		t.Errorf("offset after replacement: got %d, want 0", r.Offset())
	}
	if r.Featured() != -1 {
		t.Errorf("featured after replacement: got %d, want -1", r.Featured())
	}
}

func TestRollFeaturedInRange(t *testing.T) {
	r := ringWith(8)
	const slots = 6
	for i := 0; i < 200; i++ {
		got := r.RollFeatured(slots)
		if got < 0 || got >= slots {
			t.Fatalf("featured index out of range: %d", got)
		}
		if got != r.Featured() {
			t.Fatalf("RollFeatured and Featured disagree: %d vs %d", got, r.Featured())
		}
	}
	r.ClearFeatured()
	if r.Featured() != -1 {
		t.Errorf("cleared featured: got %d", r.Featured())
	}
}

func TestFeaturedDestination(t *testing.T) {
	camPos := components.Vec3{X: 1, Y: 2, Z: 3}
	forward := components.Vec3{X: 0, Y: 0, Z: -2} // not unit length on purpose
	dest := FeaturedDestination(camPos, forward, 5)

	want := components.Vec3{X: 1, Y: 2, Z: -2}
	if d := dest.Sub(want).Length(); d > 1e-5 {
		t.Errorf("destination %+v, want %+v", dest, want)
	}
}
