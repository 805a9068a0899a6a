package geom

import "math"

// Simplify reduces the point count of a polyline using the
// Ramer-Douglas-Peucker algorithm: recursively keep the point of
// maximum perpendicular deviation from the chord between the first and
// last points while that deviation exceeds epsilon, otherwise collapse
// the span to its endpoints.
func Simplify(line Line, epsilon float64) Line {
	if len(line) < 3 || epsilon <= 0 {
		return line
	}

	maxDist := 0.0
	maxIdx := 0
	first := line[0]
	last := line[len(line)-1]
	for i := 1; i < len(line)-1; i++ {
		d := perpendicularDistance(line[i], first, last)
		if d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}

	if maxDist <= epsilon {
		return Line{first, last}
	}

	left := Simplify(line[:maxIdx+1], epsilon)
	right := Simplify(line[maxIdx:], epsilon)
	// left ends with the split point that right starts with
	return append(left[:len(left)-1:len(left)-1], right...)
}

// perpendicularDistance returns the distance from p to the segment chord a-b.
func perpendicularDistance(p, a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return p.Distance(a)
	}
	// |cross(b-a, p-a)| / |b-a|
	cross := dx*(p.Y-a.Y) - dy*(p.X-a.X)
	return math.Abs(cross) / math.Sqrt(lenSq)
}
