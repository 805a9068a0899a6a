package noise

import "math"

// curlEps is the finite-difference step for gradient estimation.
const curlEps = 1e-4

// FBM returns fractal Brownian motion: octaves of Sample summed with
// amplitude scaled by persistence and frequency by lacunarity per
// octave, normalized back into [-1, 1].
func (f *Field) FBM(x, y float64, octaves int, persistence, lacunarity float64) float64 {
	if octaves < 1 {
		octaves = 1
	}

	sum := 0.0
	amplitude := 1.0
	frequency := 1.0
	totalAmp := 0.0
	for o := 0; o < octaves; o++ {
		sum += f.Sample(x*frequency, y*frequency) * amplitude
		totalAmp += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	return sum / totalAmp
}

// Curl returns the perpendicular gradient (dF/dy, -dF/dx) of the FBM
// scalar field, estimated with central differences. The result is
// divergence-free, so traced paths swirl without collapsing into sinks.
func (f *Field) Curl(x, y float64, octaves int, persistence, lacunarity float64) (float64, float64) {
	dx := (f.FBM(x+curlEps, y, octaves, persistence, lacunarity) -
		f.FBM(x-curlEps, y, octaves, persistence, lacunarity)) / (2 * curlEps)
	dy := (f.FBM(x, y+curlEps, octaves, persistence, lacunarity) -
		f.FBM(x, y-curlEps, octaves, persistence, lacunarity)) / (2 * curlEps)
	return dy, -dx
}

// Ridged returns multifractal ridged noise in [-1, 1]. Each octave's
// signal is (offset - |noise|)^2 scaled by a weight carried over from
// the previous octave, which sharpens creases along the zero crossings.
func (f *Field) Ridged(x, y float64, octaves int, lacunarity, gain float64) float64 {
	if octaves < 1 {
		octaves = 1
	}
	const offset = 1.0

	sum := 0.0
	frequency := 1.0
	amplitude := 0.5
	weight := 1.0
	for o := 0; o < octaves; o++ {
		signal := offset - math.Abs(f.Sample(x*frequency, y*frequency))
		signal *= signal * weight

		weight = clamp(signal*gain, 0, 1)

		sum += signal * amplitude
		frequency *= lacunarity
		amplitude *= 0.5
	}
	// Ridged sums land in roughly [0, 1.25]; recenter to [-1, 1]
	return clamp(sum*1.25*2-1, -1, 1)
}

// WarpedFBM distorts the sampling domain with two decorrelated FBM
// offsets before re-sampling, producing flowing, folded structures.
func (f *Field) WarpedFBM(x, y float64, octaves int, persistence, lacunarity, strength float64) float64 {
	warpX := f.FBM(x+5.2, y+1.3, octaves, persistence, lacunarity)
	warpY := f.FBM(x+9.7, y+8.1, octaves, persistence, lacunarity)
	return f.FBM(x+warpX*strength, y+warpY*strength, octaves, persistence, lacunarity)
}

// Gradient returns the central-difference gradient of the raw noise at
// the given point. Used for contour directions and density repulsion.
func (f *Field) Gradient(x, y float64) (float64, float64) {
	gx := (f.Sample(x+curlEps, y) - f.Sample(x-curlEps, y)) / (2 * curlEps)
	gy := (f.Sample(x, y+curlEps) - f.Sample(x, y-curlEps)) / (2 * curlEps)
	return gx, gy
}
