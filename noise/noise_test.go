package noise

import (
	"math"
	"testing"
)

func TestSampleRange(t *testing.T) {
	f := New(42)
	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			v := f.Sample(float64(x)*0.13, float64(y)*0.13)
			if v < -1 || v > 1 {
				t.Fatalf("Sample(%d, %d) = %v out of [-1, 1]", x, y, v)
			}
		}
	}
}

func TestSampleDeterministic(t *testing.T) {
	a := New(1234)
	b := New(1234)
	for i := 0; i < 100; i++ {
		x := float64(i) * 0.37
		y := float64(i) * 0.91
		if a.Sample(x, y) != b.Sample(x, y) {
			t.Fatalf("same seed diverged at (%v, %v)", x, y)
		}
	}
}

func TestSampleSeedsDiffer(t *testing.T) {
	a := New(111)
	b := New(222)

	same := 0
	const n = 100
	for i := 0; i < n; i++ {
		x := 1.5 + float64(i)*0.37
		y := 2.5 + float64(i)*0.71
		if a.Sample(x, y) == b.Sample(x, y) {
			same++
		}
	}
	if same > n/10 {
		t.Errorf("different seeds matched on %d/%d samples", same, n)
	}
}

func TestFBMRange(t *testing.T) {
	f := New(7)
	tests := []struct {
		name    string
		octaves int
	}{
		{"single octave", 1},
		{"four octaves", 4},
		{"eight octaves", 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 200; i++ {
				v := f.FBM(float64(i)*0.21, float64(i)*0.13, tt.octaves, 0.5, 2)
				if v < -1 || v > 1 {
					t.Fatalf("FBM out of range: %v", v)
				}
			}
		})
	}
}

func TestRidgedRange(t *testing.T) {
	f := New(9)
	for i := 0; i < 200; i++ {
		v := f.Ridged(float64(i)*0.17, float64(i)*0.29, 4, 2, 2)
		if v < -1 || v > 1 {
			t.Fatalf("Ridged out of range: %v", v)
		}
	}
}

func TestWarpedFBMRange(t *testing.T) {
	f := New(11)
	for i := 0; i < 200; i++ {
		v := f.WarpedFBM(float64(i)*0.11, float64(i)*0.23, 4, 0.5, 2, 2)
		if v < -1 || v > 1 {
			t.Fatalf("WarpedFBM out of range: %v", v)
		}
	}
}

func TestCurlFinite(t *testing.T) {
	f := New(13)
	for i := 0; i < 100; i++ {
		gx, gy := f.Curl(float64(i)*0.19, float64(i)*0.31, 4, 0.5, 2)
		if math.IsNaN(gx) || math.IsNaN(gy) || math.IsInf(gx, 0) || math.IsInf(gy, 0) {
			t.Fatalf("Curl produced non-finite values: (%v, %v)", gx, gy)
		}
	}
}

func TestSubFieldsDecorrelated(t *testing.T) {
	base := New(42)
	density := New(42 + OffsetDensity)

	same := 0
	const n = 100
	for i := 0; i < n; i++ {
		x := 0.5 + float64(i)*0.41
		y := 0.5 + float64(i)*0.59
		if base.Sample(x, y) == density.Sample(x, y) {
			same++
		}
	}
	if same > n/10 {
		t.Errorf("offset sub-field matched base on %d/%d samples", same, n)
	}
}
