package geom

import "testing"

func TestSmoothKeepsEndpoints(t *testing.T) {
	line := Line{Pt(0, 0), Pt(10, 0), Pt(10, 10)}
	got := Smooth(line, 1)

	if got[0] != line[0] {
		t.Errorf("first point moved: %v", got[0])
	}
	if got[len(got)-1] != line[len(line)-1] {
		t.Errorf("last point moved: %v", got[len(got)-1])
	}
}

func TestSmoothAddsPoints(t *testing.T) {
	line := Line{Pt(0, 0), Pt(10, 0), Pt(10, 10), Pt(20, 10)}

	got := Smooth(line, 0.3) // one iteration
	if len(got) <= len(line) {
		t.Errorf("smoothing did not subdivide: %d -> %d points", len(line), len(got))
	}

	more := Smooth(line, 1) // three iterations
	if len(more) <= len(got) {
		t.Errorf("higher strength did not subdivide further: %d vs %d", len(got), len(more))
	}
}

func TestSmoothNoOp(t *testing.T) {
	tests := []struct {
		name     string
		line     Line
		strength float64
	}{
		{"zero strength", Line{Pt(0, 0), Pt(5, 5), Pt(10, 0)}, 0},
		{"two points", Line{Pt(0, 0), Pt(5, 5)}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Smooth(tt.line, tt.strength)
			if len(got) != len(tt.line) {
				t.Errorf("line changed: %d -> %d points", len(tt.line), len(got))
			}
		})
	}
}

func TestSmoothStaysInHull(t *testing.T) {
	// Chaikin only interpolates, so smoothed points stay inside the
	// original bounding box
	line := Line{Pt(10, 10), Pt(50, 80), Pt(90, 10), Pt(120, 60)}
	got := Smooth(line, 1)

	for i, p := range got {
		if p.X < 10 || p.X > 120 || p.Y < 10 || p.Y > 80 {
			t.Errorf("point %d escaped bounding box: %v", i, p)
		}
	}
}
