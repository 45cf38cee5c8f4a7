package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated scene statistics for one time window.
type WindowStats struct {
	WindowEndTick int64   `csv:"window_end"`
	SimTimeSec    float64 `csv:"sim_time"`

	// Scene state at window end
	Mode     string  `csv:"mode"`
	Progress float64 `csv:"progress"`
	Featured int     `csv:"featured"`

	// Events during window
	Toggles    int `csv:"toggles"`
	PhotoSteps int `csv:"photo_steps"`

	// Entity counts (fixed per run, recorded for the CSV to stand alone)
	OrnamentCount int `csv:"ornaments"`
	FoliageCount  int `csv:"foliage"`
	SnowCount     int `csv:"snow"`

	// Frame time distribution over the window, milliseconds
	FrameMean float64 `csv:"frame_ms_mean"`
	FrameP10  float64 `csv:"frame_ms_p10"`
	FrameP50  float64 `csv:"frame_ms_p50"`
	FrameP90  float64 `csv:"frame_ms_p90"`
}

// Log emits the window via slog.
func (w WindowStats) Log() {
	slog.Info("window_stats",
		"window_end", w.WindowEndTick,
		"sim_time", w.SimTimeSec,
		"mode", w.Mode,
		"progress", w.Progress,
		"featured", w.Featured,
		"toggles", w.Toggles,
		"photo_steps", w.PhotoSteps,
		"frame_ms_mean", w.FrameMean,
		"frame_ms_p50", w.FrameP50,
		"frame_ms_p90", w.FrameP90,
	)
}

// Collector accumulates per-frame observations and cuts WindowStats at the
// configured interval.
type Collector struct {
	windowSec float64

	frameMs     []float64
	toggles     int
	photoSteps  int
	windowStart float64
}

// NewCollector creates a collector cutting windows every windowSec seconds.
func NewCollector(windowSec float64) *Collector {
	if windowSec <= 0 {
		windowSec = 5
	}
	return &Collector{windowSec: windowSec}
}

// RecordFrame adds one frame duration in milliseconds.
func (c *Collector) RecordFrame(ms float64) {
	c.frameMs = append(c.frameMs, ms)
}

// RecordToggle counts a mode toggle.
func (c *Collector) RecordToggle() {
	c.toggles++
}

// RecordPhotoStep counts a slideshow next/prev.
func (c *Collector) RecordPhotoStep() {
	c.photoSteps++
}

// WindowReady reports whether a window should be cut at simTime.
func (c *Collector) WindowReady(simTime float64) bool {
	return simTime-c.windowStart >= c.windowSec
}

// Cut produces the stats for the closing window and resets the accumulators.
// The caller fills in the scene-state fields.
func (c *Collector) Cut(tick int64, simTime float64) WindowStats {
	w := WindowStats{
		WindowEndTick: tick,
		SimTimeSec:    simTime,
		Toggles:       c.toggles,
		PhotoSteps:    c.photoSteps,
	}

	if len(c.frameMs) > 0 {
		sorted := make([]float64, len(c.frameMs))
		copy(sorted, c.frameMs)
		sort.Float64s(sorted)
		w.FrameMean = stat.Mean(sorted, nil)
		w.FrameP10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
		w.FrameP50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
		w.FrameP90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	}

	c.frameMs = c.frameMs[:0]
	c.toggles = 0
	c.photoSteps = 0
	c.windowStart = simTime
	return w
}
