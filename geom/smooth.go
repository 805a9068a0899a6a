package geom

import "math"

// Smooth rounds the corners of a polyline using Chaikin corner cutting.
// strength in [0, 1] maps to ceil(strength*3) subdivision iterations;
// each iteration replaces every interior point pair with points at the
// 25% and 75% interpolation positions. The original endpoints are kept
// so traced start positions survive smoothing.
func Smooth(line Line, strength float64) Line {
	if strength <= 0 || len(line) < 3 {
		return line
	}
	iterations := int(math.Ceil(strength * 3))

	current := line
	for it := 0; it < iterations; it++ {
		out := make(Line, 0, len(current)*2)
		out = append(out, current[0])
		for i := 0; i < len(current)-1; i++ {
			a := current[i]
			b := current[i+1]
			out = append(out, a.Lerp(b, 0.25), a.Lerp(b, 0.75))
		}
		out = append(out, current[len(current)-1])
		current = out
	}
	return current
}
