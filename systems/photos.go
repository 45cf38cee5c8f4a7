package systems

import (
	"math/rand"

	"github.com/pthm-cable/evergreen/components"
)

// PhotoRing maps photo panel slots to an ordered list of image references
// with a rotating offset for slideshow cycling, plus the single "featured"
// slot that floats in front of the camera during chaos.
type PhotoRing struct {
	refs     []string
	offset   int
	featured int
	rng      *rand.Rand
}

// NewPhotoRing creates an empty ring. The random source drives featured
// selection and is injected for testability.
func NewPhotoRing(rng *rand.Rand) *PhotoRing {
	return &PhotoRing{featured: -1, rng: rng}
}

// SetRefs replaces the image list. The rotation offset resets and any
// featured selection is cleared.
func (r *PhotoRing) SetRefs(refs []string) {
	r.refs = refs
	r.offset = 0
	r.featured = -1
}

// Len returns the number of image references.
func (r *PhotoRing) Len() int {
	return len(r.refs)
}

// Ref returns the image reference shown in slot i after rotation. ok is
// false when the list is empty, in which case the panel renders nothing.
func (r *PhotoRing) Ref(slot int) (string, bool) {
	if len(r.refs) == 0 {
		return "", false
	}
	i := (slot + r.offset) % len(r.refs)
	if i < 0 {
		i += len(r.refs)
	}
	return r.refs[i], true
}

// RefIndex returns the index into the reference list for slot i, for callers
// that key textures by reference order. ok is false when the list is empty.
func (r *PhotoRing) RefIndex(slot int) (int, bool) {
	if len(r.refs) == 0 {
		return 0, false
	}
	i := (slot + r.offset) % len(r.refs)
	if i < 0 {
		i += len(r.refs)
	}
	return i, true
}

// Next advances the slideshow by one.
func (r *PhotoRing) Next() {
	if len(r.refs) == 0 {
		return
	}
	r.offset = (r.offset + 1) % len(r.refs)
}

// Prev steps the slideshow back by one. Prev after Next always restores the
// previous offset.
func (r *PhotoRing) Prev() {
	if len(r.refs) == 0 {
		return
	}
	r.offset = (r.offset - 1 + len(r.refs)) % len(r.refs)
}

// Offset returns the current rotation offset.
func (r *PhotoRing) Offset() int {
	return r.offset
}

// RollFeatured picks a new featured slot uniformly from the n panel slots.
// Called on every transition to chaos. Returns -1 when there are no photos.
func (r *PhotoRing) RollFeatured(n int) int {
	if n <= 0 || len(r.refs) == 0 {
		r.featured = -1
		return -1
	}
	r.featured = r.rng.Intn(n)
	return r.featured
}

// ClearFeatured drops the featured selection (transition to formed).
func (r *PhotoRing) ClearFeatured() {
	r.featured = -1
}

// Featured returns the featured slot, or -1 when none is active.
func (r *PhotoRing) Featured() int {
	return r.featured
}

// FeaturedDestination is the world-space point a fixed distance in front of
// the live camera. Recomputed every frame since the camera moves under user
// control; never cached.
func FeaturedDestination(camPos, camForward components.Vec3, distance float32) components.Vec3 {
	return camPos.Add(camForward.Normalize().Scale(distance))
}
