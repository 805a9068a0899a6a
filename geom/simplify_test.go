package geom

import (
	"math"
	"testing"
)

func TestSimplifyCollinear(t *testing.T) {
	line := Line{Pt(0, 0), Pt(1, 0), Pt(2, 0), Pt(3, 0), Pt(4, 0)}
	got := Simplify(line, 0.1)

	if len(got) != 2 {
		t.Fatalf("collinear line simplified to %d points, want 2", len(got))
	}
	if got[0] != line[0] || got[1] != line[len(line)-1] {
		t.Errorf("endpoints changed: got %v .. %v", got[0], got[1])
	}
}

func TestSimplifyKeepsDeviation(t *testing.T) {
	// The middle point deviates by 5, well above epsilon
	line := Line{Pt(0, 0), Pt(5, 5), Pt(10, 0)}
	got := Simplify(line, 1)

	if len(got) != 3 {
		t.Fatalf("got %d points, want all 3 kept", len(got))
	}
}

func TestSimplifyIdempotent(t *testing.T) {
	line := Line{
		Pt(0, 0), Pt(1, 0.2), Pt(2, 1.5), Pt(3, 0.1),
		Pt(4, 4), Pt(5, 0.3), Pt(6, 0), Pt(7, 2.2), Pt(8, 0),
	}
	const epsilon = 0.5

	once := Simplify(line, epsilon)
	twice := Simplify(once, epsilon)

	if len(once) != len(twice) {
		t.Fatalf("second pass removed points: %d -> %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("point %d changed: %v -> %v", i, once[i], twice[i])
		}
	}
}

func TestSimplifyShortLines(t *testing.T) {
	tests := []struct {
		name string
		line Line
	}{
		{"empty", Line{}},
		{"single", Line{Pt(1, 1)}},
		{"pair", Line{Pt(1, 1), Pt(2, 2)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Simplify(tt.line, 1)
			if len(got) != len(tt.line) {
				t.Errorf("short line changed length: %d -> %d", len(tt.line), len(got))
			}
		})
	}
}

func TestPerpendicularDistance(t *testing.T) {
	tests := []struct {
		name    string
		p, a, b Point
		want    float64
	}{
		{"above horizontal chord", Pt(5, 3), Pt(0, 0), Pt(10, 0), 3},
		{"on chord", Pt(5, 0), Pt(0, 0), Pt(10, 0), 0},
		{"degenerate chord", Pt(3, 4), Pt(0, 0), Pt(0, 0), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := perpendicularDistance(tt.p, tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
