package swarm

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/plotflow/field"
	"github.com/pthm-cable/plotflow/noise"
)

func testOptions() Options {
	return Options{
		StepLength:        2,
		Margin:            20,
		MinPoints:         5,
		InitialAgents:     10,
		MaxAgents:         50,
		InitialEnergy:     100,
		WanderStrength:    0.8,
		ClusterRadius:     80,
		ClusterAttraction: 0.3,
		FormStrength:      0.35,
		VoidThreshold:     0.15,
		SlowWithAge:       true,
		SpawnChance:       0.01,
		SpawnEnergyFrac:   0.3,
		InheritFrac:       0.8,
		MaxLines:          100,
		MaxIterations:     2000,
		NoiseScale:        0.01,
		Octaves:           4,
		Persistence:       0.5,
		Lacunarity:        2,
	}
}

func newTestSim(seed int64, opts Options) *Sim {
	f := field.New(noise.New(seed), 400, 400, 10, field.ModeCurl, field.Params{
		Scale:       0.01,
		Octaves:     4,
		Persistence: 0.5,
		Lacunarity:  2,
	})
	return NewSim(
		f,
		noise.New(seed+noise.OffsetWander),
		noise.New(seed+noise.OffsetForm),
		noise.New(seed+noise.OffsetDensity),
		rand.New(rand.NewSource(seed)),
		opts,
	)
}

func TestSimProducesLines(t *testing.T) {
	lines := newTestSim(42, testOptions()).Run()

	if len(lines) == 0 {
		t.Fatal("simulation produced no lines")
	}
	for i, l := range lines {
		if len(l) < 5 {
			t.Errorf("line %d has %d points, min is 5", i, len(l))
		}
		if len(l) > maxTrailPoints {
			t.Errorf("line %d exceeds trail cap: %d points", i, len(l))
		}
	}
}

func TestSimStaysInBounds(t *testing.T) {
	for i, l := range newTestSim(7, testOptions()).Run() {
		for j, p := range l {
			if p.X < 20 || p.X >= 380 || p.Y < 20 || p.Y >= 380 {
				t.Fatalf("line %d point %d out of bounds: %v", i, j, p)
			}
		}
	}
}

func TestSimDeterministic(t *testing.T) {
	a := newTestSim(13, testOptions()).Run()
	b := newTestSim(13, testOptions()).Run()

	if len(a) != len(b) {
		t.Fatalf("line counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			t.Fatalf("line %d lengths differ: %d vs %d", i, len(a[i]), len(b[i]))
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				t.Fatalf("line %d point %d differs: %v vs %v", i, j, a[i][j], b[i][j])
			}
		}
	}
}

func TestSimTerminates(t *testing.T) {
	opts := testOptions()
	opts.SpawnChance = 0.5 // aggressive reproduction
	opts.MaxIterations = 500

	// Must finish despite population pressure; the ceilings bound the run
	lines := newTestSim(99, opts).Run()
	if len(lines) > opts.MaxLines+opts.MaxAgents {
		t.Errorf("unbounded output: %d lines", len(lines))
	}
}

func TestSimHonorsLineCap(t *testing.T) {
	opts := testOptions()
	opts.MaxLines = 5
	opts.InitialAgents = 30
	opts.InitialEnergy = 40

	lines := newTestSim(3, opts).Run()
	// The cap stops the loop; survivors may still flush, bounded by the
	// living population
	if len(lines) > opts.MaxLines+opts.MaxAgents {
		t.Errorf("line cap wildly exceeded: %d", len(lines))
	}
}
