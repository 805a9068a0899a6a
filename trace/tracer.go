package trace

import (
	"github.com/pthm-cable/plotflow/field"
	"github.com/pthm-cable/plotflow/geom"
)

// Reason records why a trace stopped. Every tracing loop is a small
// state machine that runs until one of these fires.
type Reason int

const (
	ReasonMaxSteps Reason = iota
	ReasonOutOfBounds
	ReasonProximity
	ReasonFatigue
	ReasonLowFlow
	ReasonVoid
	ReasonEnergy
	ReasonTrailCap
)

func (r Reason) String() string {
	switch r {
	case ReasonMaxSteps:
		return "max-steps"
	case ReasonOutOfBounds:
		return "out-of-bounds"
	case ReasonProximity:
		return "proximity"
	case ReasonFatigue:
		return "fatigue"
	case ReasonLowFlow:
		return "low-flow"
	case ReasonVoid:
		return "void"
	case ReasonEnergy:
		return "energy"
	case ReasonTrailCap:
		return "trail-cap"
	}
	return "unknown"
}

// Options controls a single trace.
type Options struct {
	StepLength float64
	MaxSteps   int
	Margin     float64
	MinPoints  int     // lines shorter than this are discarded
	Separation float64 // 0 disables the proximity check
	Attractors []field.Attractor
}

// step advances one step along the field. dir is +1 to follow the
// field, -1 to trace against it.
func step(f *field.VectorField, p geom.Point, dir float64, stepLength float64, attractors []field.Attractor) geom.Point {
	v := f.At(p.X, p.Y, attractors)
	return p.Add(v.Mul(dir * stepLength))
}

// Trace follows the field from start in one direction, stopping on
// max steps, leaving bounds, or (when a separation distance is set)
// coming too close to already-placed points. The returned line always
// contains at least the start point.
func Trace(f *field.VectorField, start geom.Point, dir float64, opts Options, grid *Grid) (geom.Line, Reason) {
	line := geom.Line{start}
	p := start
	reason := ReasonMaxSteps

	for i := 0; i < opts.MaxSteps; i++ {
		next := step(f, p, dir, opts.StepLength, opts.Attractors)

		if !f.InBounds(next.X, next.Y, opts.Margin) {
			reason = ReasonOutOfBounds
			break
		}
		if opts.Separation > 0 && grid != nil && grid.HasNearby(next.X, next.Y, opts.Separation) {
			reason = ReasonProximity
			break
		}

		line = append(line, next)
		p = next
	}

	return line, reason
}

// TraceBidirectional traces forward and backward from the same start
// and joins them into one continuous line (reversed backward half +
// forward half). This doubles apparent line length per seed and avoids
// biasing output toward the field's forward direction.
func TraceBidirectional(f *field.VectorField, start geom.Point, opts Options, grid *Grid) geom.Line {
	forward, _ := Trace(f, start, 1, opts, grid)
	backward, _ := Trace(f, start, -1, opts, grid)

	if len(backward) < 2 {
		return forward
	}
	// Drop the duplicated start point from the backward half
	joined := backward.Reverse()
	joined = append(joined, forward[1:]...)
	return joined
}
