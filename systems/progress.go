package systems

// Progress is the single smoothed scalar shared by the whole foliage cloud.
// The host only moves this value toward 0 or 1; the per-point interpolation
// happens on the device from this one uniform.
type Progress struct {
	Rate  float32 // exponential approach rate, 1/s
	value float32
}

// NewProgress creates a progress scalar starting at the given mode's endpoint.
func NewProgress(rate float32, mode Mode) *Progress {
	p := &Progress{Rate: rate}
	if mode == ModeFormed {
		p.value = 1
	}
	return p
}

// Step moves the value toward the mode's endpoint and returns the new value.
// The approach is exponential (current += (target-current)*rate*dt), which
// makes it frame-rate independent and monotonic for a constant mode.
func (p *Progress) Step(mode Mode, dt float32) float32 {
	dt = ClampDT(dt)
	var target float32
	if mode == ModeFormed {
		target = 1
	}
	p.value += (target - p.value) * p.Rate * dt
	p.value = clamp01(p.value)
	return p.value
}

// Value returns the current progress in [0,1].
func (p *Progress) Value() float32 {
	return p.value
}

// EaseOutCubic is the shaping applied to progress before mixing layouts:
// 1-(1-x)^3. It is 0 at 0, 1 at 1, and strictly increasing in between. The
// foliage shader carries the same expression; this copy serves the CPU side
// and the tests.
func EaseOutCubic(x float32) float32 {
	inv := 1 - x
	return 1 - inv*inv*inv
}
