package trace

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/plotflow/geom"
	"github.com/pthm-cable/plotflow/noise"
)

// HatchOptions controls contour-following form hatching.
type HatchOptions struct {
	StepLength float64
	Margin     float64
	MinPoints  int

	Contrast   float64 // density sharpening exponent, >= 1 concentrates seeds
	Deviation  float64 // max angular deviation from the contour direction
	Wobble     float64 // positional jitter amplitude
	BaseLength int     // nominal steps per hatch line
	Candidates int     // seed attempts
	MaxLines   int

	NoiseScale  float64
	Octaves     int
	Persistence float64
	Lacunarity  float64
}

// Hatcher draws short lines that follow the isolines of an implied
// height surface: the trace direction is the perpendicular of the
// form-noise gradient, so strokes wrap around the surface like
// elevation contours on a map. It runs independently of the vector
// field.
type Hatcher struct {
	width, height float64
	form          *noise.Field
	density       *noise.Field
	angle         *noise.Field
	position      *noise.Field
	rng           *rand.Rand
	opts          HatchOptions
}

// NewHatcher wires the hatching strategy from its four sub-fields.
func NewHatcher(width, height float64, form, density, angle, position *noise.Field, rng *rand.Rand, opts HatchOptions) *Hatcher {
	if opts.Contrast <= 0 {
		opts.Contrast = 1
	}
	if opts.BaseLength <= 0 {
		opts.BaseLength = 40
	}
	return &Hatcher{
		width:    width,
		height:   height,
		form:     form,
		density:  density,
		angle:    angle,
		position: position,
		rng:      rng,
		opts:     opts,
	}
}

// densityAt returns the contrast-sharpened density in [0, 1]. The power
// curve is sign-preserving so dark and light regions sharpen
// symmetrically.
func (h *Hatcher) densityAt(x, y float64) float64 {
	o := &h.opts
	n := h.density.FBM(x*o.NoiseScale, y*o.NoiseScale, o.Octaves, o.Persistence, o.Lacunarity)
	sharp := math.Copysign(math.Pow(math.Abs(n), o.Contrast), n)
	return (sharp + 1) / 2
}

// Hatch generates contour lines across the canvas.
func (h *Hatcher) Hatch() []geom.Line {
	o := &h.opts
	var lines []geom.Line

	for i := 0; i < o.Candidates; i++ {
		if o.MaxLines > 0 && len(lines) >= o.MaxLines {
			break
		}
		seed := geom.Pt(
			o.Margin+h.rng.Float64()*(h.width-2*o.Margin),
			o.Margin+h.rng.Float64()*(h.height-2*o.Margin),
		)

		// High-density regions receive dramatically more seeds
		if h.rng.Float64() >= h.densityAt(seed.X, seed.Y) {
			continue
		}

		line := h.traceContour(seed)
		if len(line) >= o.MinPoints {
			lines = append(lines, line)
		}
	}

	return lines
}

// traceContour follows the perpendicular of the form gradient from the
// seed, with noise-driven angle deviation and positional wobble.
func (h *Hatcher) traceContour(start geom.Point) geom.Line {
	o := &h.opts

	lengthMod := 1 + 0.5*h.form.FBM(start.X*o.NoiseScale, start.Y*o.NoiseScale, o.Octaves, o.Persistence, o.Lacunarity)
	target := int(float64(o.BaseLength) * lengthMod * (0.75 + 0.5*h.rng.Float64()))

	line := geom.Line{start}
	p := start

	for i := 0; i < target; i++ {
		gx, gy := h.form.Gradient(p.X*o.NoiseScale, p.Y*o.NoiseScale)
		dir := geom.Pt(-gy, gx)
		if dir.LengthSq() < 1e-18 {
			// Flat surface: pick a stable pseudo-random heading
			a := h.rng.Float64() * 2 * math.Pi
			dir = geom.Pt(math.Cos(a), math.Sin(a))
		}
		dir = dir.Normalize()

		if o.Deviation > 0 {
			a := h.angle.Sample(p.X*0.01, p.Y*0.01) * o.Deviation
			dir = dir.Rotate(a)
		}

		next := p.Add(dir.Mul(o.StepLength))
		if o.Wobble > 0 {
			j := h.position.Sample(p.X*0.05, p.Y*0.05)
			next = next.Add(dir.Perp().Mul(j * o.Wobble))
		}

		if next.X < o.Margin || next.X >= h.width-o.Margin ||
			next.Y < o.Margin || next.Y >= h.height-o.Margin {
			break
		}

		// Fade out in low-density zones instead of crossing them
		d := h.densityAt(next.X, next.Y)
		if d < 0.3 && h.rng.Float64() < (0.3-d)*o.Contrast*0.3 {
			break
		}

		line = append(line, next)
		p = next
	}

	return line
}
