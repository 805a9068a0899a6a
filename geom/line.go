package geom

// Line is an ordered sequence of points representing one continuous
// pen stroke. A Line is never empty once emitted by a tracer.
type Line []Point

// Length returns the total arc length of the polyline.
func (l Line) Length() float64 {
	total := 0.0
	for i := 1; i < len(l); i++ {
		total += l[i].Distance(l[i-1])
	}
	return total
}

// Reverse returns a new Line with the point order flipped.
func (l Line) Reverse() Line {
	out := make(Line, len(l))
	for i, p := range l {
		out[len(l)-1-i] = p
	}
	return out
}

// Clone returns an independent copy of the line.
func (l Line) Clone() Line {
	out := make(Line, len(l))
	copy(out, l)
	return out
}
