// Package noise provides seeded coherent noise for field generation.
//
// All randomness is derived from the permutation table built at
// construction; a Field is stateless afterwards and safe to query any
// number of times. Independent noise purposes (density, wobble, fatigue,
// form...) use separate Fields keyed by seed + a fixed offset so they do
// not correlate with the base field or each other.
package noise

import (
	"math"
	"math/rand"
)

// Fixed seed offsets for the independent sub-fields used by the tracers.
const (
	OffsetDensity  = 1000
	OffsetWobble   = 2000
	OffsetFatigue  = 3000
	OffsetForm     = 4000
	OffsetAngle    = 5000
	OffsetPosition = 6000
	OffsetWander   = 7000
)

// Skew factors for the 2D simplex lattice.
const (
	skew2   = 0.3660254037844386  // (sqrt(3)-1)/2
	unskew2 = 0.21132486540518713 // (3-sqrt(3))/6
)

// grad2 holds the per-corner gradient directions.
var grad2 = [8][2]float64{
	{1, 1}, {-1, 1}, {1, -1}, {-1, -1},
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
}

// Field generates seeded 2D gradient noise.
type Field struct {
	perm [512]int
}

// New creates a noise field. Identical seeds produce identical fields.
func New(seed int64) *Field {
	f := &Field{}
	rng := rand.New(rand.NewSource(seed))

	var perm [256]int
	for i := range perm {
		perm[i] = i
	}
	for i := len(perm) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}
	for i := 0; i < 256; i++ {
		f.perm[i] = perm[i]
		f.perm[i+256] = perm[i]
	}

	return f
}

// Sample returns a noise value in [-1, 1] for the given coordinates.
func (f *Field) Sample(x, y float64) float64 {
	// Skew input space to find the containing simplex cell
	s := (x + y) * skew2
	i := int(math.Floor(x + s))
	j := int(math.Floor(y + s))

	t := float64(i+j) * unskew2
	x0 := x - (float64(i) - t)
	y0 := y - (float64(j) - t)

	// Offsets for the middle corner depend on which triangle we are in
	var i1, j1 int
	if x0 > y0 {
		i1, j1 = 1, 0
	} else {
		i1, j1 = 0, 1
	}

	x1 := x0 - float64(i1) + unskew2
	y1 := y0 - float64(j1) + unskew2
	x2 := x0 - 1 + 2*unskew2
	y2 := y0 - 1 + 2*unskew2

	ii := i & 255
	jj := j & 255

	n := f.corner(f.perm[ii+f.perm[jj]], x0, y0)
	n += f.corner(f.perm[ii+i1+f.perm[jj+j1]], x1, y1)
	n += f.corner(f.perm[ii+1+f.perm[jj+1]], x2, y2)

	// 70 scales the summed contributions to roughly [-1, 1]
	return clamp(70*n, -1, 1)
}

// corner returns one corner's falloff-weighted gradient contribution.
func (f *Field) corner(hash int, x, y float64) float64 {
	t := 0.5 - x*x - y*y
	if t <= 0 {
		return 0
	}
	t *= t
	g := grad2[hash&7]
	return t * t * (g[0]*x + g[1]*y)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
