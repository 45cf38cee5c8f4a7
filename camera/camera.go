// Package camera provides an orbital 3D camera for viewing the scene.
package camera

import "math"

// Orbit circles a target point at a yaw/pitch/distance. User input adjusts
// the desired values; Update eases the live values toward them each frame so
// mouse flicks and wheel steps land smoothly. All math is package-local;
// conversion to renderer types happens in the game layer.
type Orbit struct {
	// Live orbit state
	Yaw      float32 // radians around the Y axis
	Pitch    float32 // radians above the horizon
	Distance float32

	// Desired state the live values ease toward
	targetYaw      float32
	targetPitch    float32
	targetDistance float32

	// Orbit center in world coordinates
	TargetX, TargetY, TargetZ float32

	// Constraints
	MinPitch, MaxPitch       float32
	MinDistance, MaxDistance float32

	// Smoothing rate (1/s) and idle auto-orbit rate (rad/s)
	Smoothing float32
	AutoRate  float32

	autoDelay float32
	idleFor   float32
}

// Params configures a new orbit camera.
type Params struct {
	Yaw, Pitch, Distance      float32
	TargetX, TargetY, TargetZ float32
	MinPitch, MaxPitch        float32
	MinDistance, MaxDistance  float32
	Smoothing, AutoOrbitRate  float32
	AutoOrbitDelay            float32
}

// New creates an orbit camera with the live state already at the desired state.
func New(p Params) *Orbit {
	o := &Orbit{
		Yaw:            p.Yaw,
		Pitch:          p.Pitch,
		Distance:       p.Distance,
		targetYaw:      p.Yaw,
		targetPitch:    p.Pitch,
		targetDistance: p.Distance,
		TargetX:        p.TargetX,
		TargetY:        p.TargetY,
		TargetZ:        p.TargetZ,
		MinPitch:       p.MinPitch,
		MaxPitch:       p.MaxPitch,
		MinDistance:    p.MinDistance,
		MaxDistance:    p.MaxDistance,
		Smoothing:      p.Smoothing,
		AutoRate:       p.AutoOrbitRate,
	}
	o.autoDelay = p.AutoOrbitDelay
	o.clampTargets()
	o.Pitch = o.targetPitch
	o.Distance = o.targetDistance
	return o
}

// Restore sets the live and desired state in one move, used when reapplying a
// saved session. Values pass through the usual clamps.
func (o *Orbit) Restore(yaw, pitch, distance float32) {
	o.targetYaw = yaw
	o.targetPitch = pitch
	o.targetDistance = distance
	o.clampTargets()
	o.Yaw = o.targetYaw
	o.Pitch = o.targetPitch
	o.Distance = o.targetDistance
}

// Rotate adjusts the desired yaw and pitch by the given deltas (radians) and
// resets the idle timer.
func (o *Orbit) Rotate(dYaw, dPitch float32) {
	o.targetYaw += dYaw
	o.targetPitch += dPitch
	o.clampTargets()
	o.idleFor = 0
}

// Zoom adjusts the desired distance multiplicatively; factor > 1 moves away.
func (o *Orbit) Zoom(factor float32) {
	if factor <= 0 {
		return
	}
	o.targetDistance *= factor
	o.clampTargets()
	o.idleFor = 0
}

// Update eases the live orbit toward the desired one and, after the idle
// delay, drifts the yaw at the auto-orbit rate.
func (o *Orbit) Update(dt float32) {
	if dt < 0 {
		return
	}
	o.idleFor += dt
	if o.AutoRate != 0 && o.idleFor > o.autoDelay {
		o.targetYaw += o.AutoRate * dt
	}

	k := o.Smoothing * dt
	if k > 1 {
		k = 1
	}
	o.Yaw += (o.targetYaw - o.Yaw) * k
	o.Pitch += (o.targetPitch - o.Pitch) * k
	o.Distance += (o.targetDistance - o.Distance) * k
}

// Position returns the camera's world position on the orbit sphere.
func (o *Orbit) Position() (x, y, z float32) {
	cp := float32(math.Cos(float64(o.Pitch)))
	x = o.TargetX + o.Distance*cp*float32(math.Sin(float64(o.Yaw)))
	y = o.TargetY + o.Distance*float32(math.Sin(float64(o.Pitch)))
	z = o.TargetZ + o.Distance*cp*float32(math.Cos(float64(o.Yaw)))
	return
}

// Forward returns the unit vector from the camera toward the orbit target.
func (o *Orbit) Forward() (x, y, z float32) {
	px, py, pz := o.Position()
	dx := o.TargetX - px
	dy := o.TargetY - py
	dz := o.TargetZ - pz
	l := float32(math.Sqrt(float64(dx*dx + dy*dy + dz*dz)))
	if l == 0 {
		return 0, 0, -1
	}
	return dx / l, dy / l, dz / l
}

func (o *Orbit) clampTargets() {
	o.targetPitch = clamp(o.targetPitch, o.MinPitch, o.MaxPitch)
	o.targetDistance = clamp(o.targetDistance, o.MinDistance, o.MaxDistance)
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
