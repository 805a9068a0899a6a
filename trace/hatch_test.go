package trace

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/plotflow/noise"
)

func newTestHatcher(seed int64) *Hatcher {
	return NewHatcher(
		400, 400,
		noise.New(seed+noise.OffsetForm),
		noise.New(seed+noise.OffsetDensity),
		noise.New(seed+noise.OffsetAngle),
		noise.New(seed+noise.OffsetPosition),
		rand.New(rand.NewSource(seed)),
		HatchOptions{
			StepLength:  2,
			Margin:      20,
			MinPoints:   5,
			Contrast:    2,
			Deviation:   0.4,
			Wobble:      0.8,
			BaseLength:  40,
			Candidates:  500,
			MaxLines:    50,
			NoiseScale:  0.01,
			Octaves:     4,
			Persistence: 0.5,
			Lacunarity:  2,
		},
	)
}

func TestHatchProducesLines(t *testing.T) {
	lines := newTestHatcher(42).Hatch()

	if len(lines) == 0 {
		t.Fatal("hatching produced no lines")
	}
	if len(lines) > 50 {
		t.Errorf("line cap exceeded: %d", len(lines))
	}
	for i, l := range lines {
		if len(l) < 5 {
			t.Errorf("line %d has %d points, min is 5", i, len(l))
		}
	}
}

func TestHatchStaysInBounds(t *testing.T) {
	for i, l := range newTestHatcher(7).Hatch() {
		for j, p := range l {
			if p.X < 20 || p.X >= 380 || p.Y < 20 || p.Y >= 380 {
				t.Fatalf("line %d point %d out of bounds: %v", i, j, p)
			}
		}
	}
}

func TestHatchDeterministic(t *testing.T) {
	a := newTestHatcher(13).Hatch()
	b := newTestHatcher(13).Hatch()

	if len(a) != len(b) {
		t.Fatalf("line counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			t.Fatalf("line %d lengths differ", i)
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				t.Fatalf("line %d point %d differs", i, j)
			}
		}
	}
}

func TestHatchSeedsFavorDensity(t *testing.T) {
	h := newTestHatcher(99)

	// The sharpened density must actually vary, or seeding degenerates
	// to uniform scatter
	lo, hi := 1.0, 0.0
	for y := 30.0; y < 380; y += 10 {
		for x := 30.0; x < 380; x += 10 {
			d := h.densityAt(x, y)
			if d < 0 || d > 1 {
				t.Fatalf("density out of [0,1]: %v", d)
			}
			if d < lo {
				lo = d
			}
			if d > hi {
				hi = d
			}
		}
	}
	if hi-lo < 0.2 {
		t.Errorf("density range too flat: [%v, %v]", lo, hi)
	}
}
