// Package components defines ECS components for the scene entities.
package components

// Anchors holds the two generated layout positions for an entity.
// Both are immutable after generation; only Kinetics mutates per frame.
type Anchors struct {
	Chaos  Vec3 // scattered layout position
	Target Vec3 // formed (tree) layout position
}

// Kinetics holds an entity's mutable position and velocity.
type Kinetics struct {
	Pos Vec3
	Vel Vec3
}

// Spin holds an entity's orientation and its spin rates.
// Rate drives the free tumble in the chaos layout; FormedRate is the slow
// single-axis spin once the entity has settled on the tree.
type Spin struct {
	Euler      Vec3 // current XYZ rotation in radians
	Rate       Vec3 // per-axis angular velocity (rad/s), chaos tumble
	FormedRate float32
}

// Shimmer holds the per-entity variation values assigned at build time:
// a random phase for time offsets and the base scale the breathing term
// oscillates around. Scale carries the result of the latest frame.
type Shimmer struct {
	Phase     float32
	ScaleBase float32
	Scale     float32
}

// Ornament tags an entity with its archetype and its slot in that
// archetype's transform buffer.
type Ornament struct {
	Archetype uint8
	Index     int32
	Mass      float32
}

// PhotoSlot tags a photo panel entity with its slot in the photo ring.
type PhotoSlot struct {
	Slot int32
}
