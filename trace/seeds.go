package trace

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/plotflow/geom"
)

// RandomPoints scatters n seeded-random start points inside the margin.
func RandomPoints(rng *rand.Rand, n int, width, height, margin float64) []geom.Point {
	pts := make([]geom.Point, 0, n)
	for i := 0; i < n; i++ {
		pts = append(pts, geom.Pt(
			margin+rng.Float64()*(width-2*margin),
			margin+rng.Float64()*(height-2*margin),
		))
	}
	return pts
}

// poissonAttempts is the candidate count per active point (Bridson's k).
const poissonAttempts = 30

// PoissonPoints generates up to n start points with Poisson-disk
// dart-throwing for even coverage without grid artifacts. The target
// minimum distance is derived from the requested density, and the
// result is shuffled and truncated so callers draw seeds in an
// unbiased, reproducible order.
func PoissonPoints(rng *rand.Rand, n int, width, height, margin float64) []geom.Point {
	if n <= 0 {
		return nil
	}
	w := width - 2*margin
	h := height - 2*margin
	if w <= 0 || h <= 0 {
		return RandomPoints(rng, n, width, height, margin)
	}

	minDist := math.Sqrt(w*h/(float64(n)*math.Pi)) * 1.5
	cellSize := minDist / math.Sqrt2
	cols := int(math.Ceil(w/cellSize)) + 1
	rows := int(math.Ceil(h/cellSize)) + 1
	// -1 marks an empty background cell
	bg := make([]int, cols*rows)
	for i := range bg {
		bg[i] = -1
	}

	var points []geom.Point
	var active []int

	cellOf := func(p geom.Point) (int, int) {
		return int((p.X - margin) / cellSize), int((p.Y - margin) / cellSize)
	}
	fits := func(p geom.Point) bool {
		if p.X < margin || p.X >= margin+w || p.Y < margin || p.Y >= margin+h {
			return false
		}
		cx, cy := cellOf(p)
		for dy := -2; dy <= 2; dy++ {
			for dx := -2; dx <= 2; dx++ {
				nx, ny := cx+dx, cy+dy
				if nx < 0 || ny < 0 || nx >= cols || ny >= rows {
					continue
				}
				idx := bg[ny*cols+nx]
				if idx >= 0 && points[idx].Distance(p) < minDist {
					return false
				}
			}
		}
		return true
	}
	place := func(p geom.Point) {
		cx, cy := cellOf(p)
		bg[cy*cols+cx] = len(points)
		points = append(points, p)
		active = append(active, len(points)-1)
	}

	place(geom.Pt(margin+rng.Float64()*w, margin+rng.Float64()*h))

	for len(active) > 0 {
		pick := rng.Intn(len(active))
		base := points[active[pick]]

		placed := false
		for a := 0; a < poissonAttempts; a++ {
			angle := rng.Float64() * 2 * math.Pi
			radius := minDist * (1 + rng.Float64())
			cand := base.Add(geom.Pt(math.Cos(angle), math.Sin(angle)).Mul(radius))
			if fits(cand) {
				place(cand)
				placed = true
				break
			}
		}
		if !placed {
			active[pick] = active[len(active)-1]
			active = active[:len(active)-1]
		}
	}

	rng.Shuffle(len(points), func(i, j int) {
		points[i], points[j] = points[j], points[i]
	})
	if len(points) > n {
		points = points[:n]
	}
	return points
}
