// Package field builds cached directional vector fields from noise.
package field

import (
	"math"

	"github.com/pthm-cable/plotflow/geom"
	"github.com/pthm-cable/plotflow/noise"
)

// Attractor perturbs field lookups near its position. Positive strength
// pulls paths toward it, negative pushes away. Attractors are a
// caller-supplied overlay and are never owned by the field, so the base
// grid stays cacheable.
type Attractor struct {
	Pos      geom.Point
	Radius   float64
	Strength float64
}

// DensityPoint locally reduces the target inter-line separation as it
// is approached. Strength is in [0, 1].
type DensityPoint struct {
	Pos      geom.Point
	Radius   float64
	Strength float64
}

// Params holds the noise shaping knobs for field construction.
type Params struct {
	Scale          float64 // base noise frequency
	Octaves        int
	Persistence    float64
	Lacunarity     float64
	SpiralStrength float64 // spiral mode: center pull weight, sign flips direction
	WarpStrength   float64 // warped mode: domain warp distance
}

// VectorField is a precomputed grid of unit direction vectors covering
// the canvas. It is immutable after construction; attractor influence
// is applied per lookup on top of the cached base vector.
type VectorField struct {
	width      float64
	height     float64
	resolution float64
	cols, rows int
	vectors    []geom.Point
}

// New precomputes one unit vector per resolution cell using the given
// mode. The same noise field, mode, and params always produce the same
// grid.
func New(n *noise.Field, width, height, resolution float64, mode Mode, p Params) *VectorField {
	cols := int(math.Ceil(width/resolution)) + 1
	rows := int(math.Ceil(height/resolution)) + 1

	f := &VectorField{
		width:      width,
		height:     height,
		resolution: resolution,
		cols:       cols,
		rows:       rows,
		vectors:    make([]geom.Point, cols*rows),
	}

	cx := width / 2
	cy := height / 2

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			x := float64(col) * resolution
			y := float64(row) * resolution
			nx := x * p.Scale
			ny := y * p.Scale

			var v geom.Point
			switch mode {
			case ModeCurl:
				gx, gy := n.Curl(nx, ny, p.Octaves, p.Persistence, p.Lacunarity)
				v = geom.Pt(gx, gy)
			case ModeSpiral:
				gx, gy := n.Curl(nx, ny, p.Octaves, p.Persistence, p.Lacunarity)
				swirl := geom.Pt(gx, gy).Normalize()
				toCenter := geom.Pt(cx-x, cy-y).Normalize()
				w := math.Abs(p.SpiralStrength)
				if p.SpiralStrength < 0 {
					toCenter = toCenter.Mul(-1)
				}
				v = swirl.Add(toCenter.Mul(w))
			case ModeTurbulent:
				gx, gy := n.Curl(nx*2, ny*2, p.Octaves+2, p.Persistence, p.Lacunarity)
				v = geom.Pt(gx, gy)
			case ModeRidged:
				angle := n.Ridged(nx, ny, p.Octaves, p.Lacunarity, 2.0) * 2 * math.Pi
				v = geom.Pt(math.Cos(angle), math.Sin(angle))
			case ModeWarped:
				angle := n.WarpedFBM(nx, ny, p.Octaves, p.Persistence, p.Lacunarity, p.WarpStrength) * 2 * math.Pi
				v = geom.Pt(math.Cos(angle), math.Sin(angle))
			default:
				angle := n.FBM(nx, ny, p.Octaves, p.Persistence, p.Lacunarity) * 2 * math.Pi
				v = geom.Pt(math.Cos(angle), math.Sin(angle))
			}

			// Flat noise regions can yield a zero vector; fall back to
			// a fixed direction instead of propagating NaN.
			if v.LengthSq() < 1e-18 {
				v = geom.Pt(1, 0)
			}
			f.vectors[row*cols+col] = v.Normalize()
		}
	}

	return f
}

// Width returns the canvas width the field covers.
func (f *VectorField) Width() float64 { return f.width }

// Height returns the canvas height the field covers.
func (f *VectorField) Height() float64 { return f.height }

// At returns the field direction at a continuous position. The base
// vector comes from a clamped nearest-cell lookup; each attractor
// within radius then adds falloff*strength along the direction to (or
// away from) it, and the sum is renormalized.
func (f *VectorField) At(x, y float64, attractors []Attractor) geom.Point {
	col := int(x / f.resolution)
	row := int(y / f.resolution)
	if col < 0 {
		col = 0
	} else if col >= f.cols {
		col = f.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= f.rows {
		row = f.rows - 1
	}

	v := f.vectors[row*f.cols+col]
	if len(attractors) == 0 {
		return v
	}

	sum := v
	applied := false
	for _, a := range attractors {
		d := a.Pos.Distance(geom.Pt(x, y))
		if d >= a.Radius || a.Radius <= 0 {
			continue
		}
		falloff := 1 - d/a.Radius
		falloff *= falloff
		dir := a.Pos.Sub(geom.Pt(x, y)).Normalize()
		if a.Strength < 0 {
			dir = dir.Mul(-1)
		}
		sum = sum.Add(dir.Mul(falloff * math.Abs(a.Strength)))
		applied = true
	}
	if !applied || sum.LengthSq() < 1e-18 {
		return v
	}
	return sum.Normalize()
}

// InBounds reports whether (x, y) lies inside the canvas shrunk by
// margin. Containment is half-open: [margin, dim-margin).
func (f *VectorField) InBounds(x, y, margin float64) bool {
	return x >= margin && x < f.width-margin &&
		y >= margin && y < f.height-margin
}
