package trace

import (
	"testing"

	"github.com/pthm-cable/plotflow/field"
	"github.com/pthm-cable/plotflow/geom"
	"github.com/pthm-cable/plotflow/noise"
)

func testField(seed int64, size float64) *field.VectorField {
	return field.New(noise.New(seed), size, size, 10, field.ModeNormal, field.Params{
		Scale:       0.01,
		Octaves:     4,
		Persistence: 0.5,
		Lacunarity:  2,
	})
}

func TestTraceStartsAtSeed(t *testing.T) {
	f := testField(42, 400)
	opts := Options{StepLength: 2, MaxSteps: 100, Margin: 20, MinPoints: 1}

	start := geom.Pt(200, 200)
	line, _ := Trace(f, start, 1, opts, nil)

	if line[0] != start {
		t.Errorf("first point %v, want %v", line[0], start)
	}
}

func TestTraceStaysInBounds(t *testing.T) {
	f := testField(42, 400)
	opts := Options{StepLength: 2, MaxSteps: 500, Margin: 20, MinPoints: 1}

	for _, start := range []geom.Point{{X: 30, Y: 30}, {X: 200, Y: 200}, {X: 370, Y: 370}} {
		line, _ := Trace(f, start, 1, opts, nil)
		for i, p := range line {
			if !f.InBounds(p.X, p.Y, opts.Margin) {
				t.Fatalf("point %d of trace from %v out of bounds: %v", i, start, p)
			}
		}
	}
}

func TestTraceRespectsMaxSteps(t *testing.T) {
	f := testField(42, 4000) // large canvas so bounds never terminate
	opts := Options{StepLength: 2, MaxSteps: 50, Margin: 20, MinPoints: 1}

	line, reason := Trace(f, geom.Pt(2000, 2000), 1, opts, nil)
	if len(line) > opts.MaxSteps+1 {
		t.Errorf("line has %d points, cap is %d steps", len(line), opts.MaxSteps)
	}
	if reason != ReasonMaxSteps {
		t.Errorf("reason = %v, want %v", reason, ReasonMaxSteps)
	}
}

func TestTraceProximityStops(t *testing.T) {
	f := testField(42, 400)
	grid := NewGrid(10)

	// Surround the start with a wall of points so any step collides
	for a := 0.0; a < 360; a += 10 {
		p := geom.Pt(200, 200).Add(geom.Pt(1, 0).Rotate(a * 3.14159 / 180).Mul(4))
		grid.Add(p)
	}

	opts := Options{StepLength: 2, MaxSteps: 100, Margin: 20, MinPoints: 1, Separation: 3}
	line, reason := Trace(f, geom.Pt(200, 200), 1, opts, grid)

	if reason != ReasonProximity {
		t.Fatalf("reason = %v, want %v", reason, ReasonProximity)
	}
	if len(line) > 3 {
		t.Errorf("trace continued %d points through the wall", len(line))
	}
}

func TestTraceBidirectionalContainsStart(t *testing.T) {
	f := testField(42, 400)
	opts := Options{StepLength: 2, MaxSteps: 50, Margin: 20, MinPoints: 1}

	start := geom.Pt(200, 200)
	line := TraceBidirectional(f, start, opts, nil)

	found := false
	for _, p := range line {
		if p == start {
			found = true
			break
		}
	}
	if !found {
		t.Error("joined line does not contain the start point")
	}

	forward, _ := Trace(f, start, 1, opts, nil)
	if len(line) < len(forward) {
		t.Errorf("bidirectional line (%d points) shorter than forward alone (%d)", len(line), len(forward))
	}
}

func TestTraceDeterministic(t *testing.T) {
	a, _ := Trace(testField(9, 400), geom.Pt(123, 321), 1, Options{StepLength: 2, MaxSteps: 200, Margin: 20, MinPoints: 1}, nil)
	b, _ := Trace(testField(9, 400), geom.Pt(123, 321), 1, Options{StepLength: 2, MaxSteps: 200, Margin: 20, MinPoints: 1}, nil)

	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("point %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}
