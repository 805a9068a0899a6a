// Package gen runs the full generation pipeline: noise, vector field,
// tracing strategy, post-processing.
//
// A run is single-threaded and synchronous; every pseudo-random draw
// comes from the run-owned RNG or a seed-offset noise field, in a fixed
// order, so identical seed and configuration produce bit-identical
// lines.
package gen

import (
	"math/rand"
	"time"

	"github.com/pthm-cable/plotflow/config"
	"github.com/pthm-cable/plotflow/field"
	"github.com/pthm-cable/plotflow/geom"
	"github.com/pthm-cable/plotflow/noise"
	"github.com/pthm-cable/plotflow/swarm"
	"github.com/pthm-cable/plotflow/trace"
)

// Result is the output of one generation run. Seed is the resolved
// value, so callers can persist and reproduce a random-seed run.
type Result struct {
	Lines  []geom.Line
	Width  float64
	Height float64
	Seed   int64
}

// Generator owns the state of a single run. It is not safe for
// concurrent use; create one per run.
type Generator struct {
	cfg  *config.Config
	seed int64
	rng  *rand.Rand

	base *noise.Field
	vf   *field.VectorField

	attractors    []field.Attractor
	densityPoints []field.DensityPoint
}

// New prepares a generator from the given configuration, resolving a
// random 32-bit seed if none was supplied.
func New(cfg *config.Config) *Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano() & 0x7fffffff
	}

	g := &Generator{
		cfg:  cfg,
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}

	g.base = noise.New(seed)
	g.vf = field.New(g.base, cfg.Canvas.Width, cfg.Canvas.Height, cfg.Field.Resolution, g.mode(), field.Params{
		Scale:          cfg.Noise.Scale,
		Octaves:        cfg.Noise.Octaves,
		Persistence:    cfg.Noise.Persistence,
		Lacunarity:     cfg.Noise.Lacunarity,
		SpiralStrength: cfg.Field.SpiralStrength,
		WarpStrength:   cfg.Field.WarpStrength,
	})

	for _, a := range cfg.Attractors {
		g.attractors = append(g.attractors, field.Attractor{
			Pos:      geom.Pt(a.X, a.Y),
			Radius:   a.Radius,
			Strength: a.Strength,
		})
	}
	for _, d := range cfg.DensityPoints {
		g.densityPoints = append(g.densityPoints, field.DensityPoint{
			Pos:      geom.Pt(d.X, d.Y),
			Radius:   d.Radius,
			Strength: d.Strength,
		})
	}

	return g
}

// mode parses the configured field mode, falling back to normal. The
// config layer clamps rather than errors, and an unknown mode name is
// treated the same way.
func (g *Generator) mode() field.Mode {
	m, err := field.ParseMode(g.cfg.Field.Mode)
	if err != nil {
		return field.ModeNormal
	}
	return m
}

// Run executes the configured strategy and returns the result.
func (g *Generator) Run() Result {
	cfg := g.cfg

	var lines []geom.Line
	switch cfg.Strategy {
	case "fill":
		lines = g.runFill()
	case "swarm":
		lines = g.runSwarm()
	case "hatch":
		lines = g.runHatch()
	default:
		lines = g.runBasic()
	}

	if cfg.Lines.Smoothing > 0 {
		for i, l := range lines {
			lines[i] = geom.Smooth(l, cfg.Lines.Smoothing)
		}
	}
	lines = g.trimToMargin(lines)

	return Result{
		Lines:  lines,
		Width:  cfg.Canvas.Width,
		Height: cfg.Canvas.Height,
		Seed:   g.seed,
	}
}

// startPoints resolves the start-point strategy: explicit points win,
// then Poisson-disk when even distribution is requested, then seeded
// random scatter.
func (g *Generator) startPoints(n int) []geom.Point {
	cfg := g.cfg
	if len(cfg.Starts) > 0 {
		pts := make([]geom.Point, len(cfg.Starts))
		for i, s := range cfg.Starts {
			pts[i] = geom.Pt(s.X, s.Y)
		}
		return pts
	}
	if cfg.Lines.EvenDistribution {
		return trace.PoissonPoints(g.rng, n, cfg.Canvas.Width, cfg.Canvas.Height, cfg.Canvas.Margin)
	}
	return trace.RandomPoints(g.rng, n, cfg.Canvas.Width, cfg.Canvas.Height, cfg.Canvas.Margin)
}

// runBasic traces one line per start point, optionally bidirectional,
// honoring the separation distance when configured.
func (g *Generator) runBasic() []geom.Line {
	cfg := g.cfg
	opts := trace.Options{
		StepLength: cfg.Lines.StepLength,
		MaxSteps:   cfg.Lines.MaxSteps,
		Margin:     cfg.Canvas.Margin,
		MinPoints:  cfg.Lines.MinPoints,
		Separation: cfg.Lines.Separation,
		Attractors: g.attractors,
	}

	var grid *trace.Grid
	if cfg.Lines.Separation > 0 {
		grid = trace.NewGrid(cfg.Lines.Separation)
	}

	var lines []geom.Line
	for _, start := range g.startPoints(cfg.Lines.Count) {
		if !g.vf.InBounds(start.X, start.Y, cfg.Canvas.Margin) {
			continue
		}

		var line geom.Line
		if cfg.Lines.Bidirectional {
			line = trace.TraceBidirectional(g.vf, start, opts, grid)
		} else {
			line, _ = trace.Trace(g.vf, start, 1, opts, grid)
		}

		if len(line) < cfg.Lines.MinPoints {
			continue
		}
		lines = append(lines, line)
		if grid != nil {
			grid.AddLine(line)
		}
	}
	return lines
}

// runFill runs density-aware space-filling streamlines.
func (g *Generator) runFill() []geom.Line {
	cfg := g.cfg
	opts := trace.FillOptions{
		Options: trace.Options{
			StepLength: cfg.Lines.StepLength,
			MaxSteps:   cfg.Lines.MaxSteps,
			Margin:     cfg.Canvas.Margin,
			MinPoints:  cfg.Lines.MinPoints,
			Attractors: g.attractors,
		},
		BaseSeparation:   cfg.Fill.BaseSeparation,
		MinSeparation:    cfg.Fill.MinSeparation,
		DensityVariation: cfg.Fill.DensityVariation,
		DensityPoints:    g.densityPoints,
		MaxLines:         cfg.Fill.MaxLines,
		MaxIterations:    cfg.Fill.MaxIterations,
		Organic:          cfg.Fill.Organic,
		FatigueChance:    cfg.Fill.FatigueChance,
		WobbleStrength:   cfg.Fill.WobbleStrength,
		EdgeAttraction:   cfg.Fill.EdgeAttraction,
		NoiseScale:       cfg.Noise.Scale,
		Octaves:          cfg.Noise.Octaves,
		Persistence:      cfg.Noise.Persistence,
		Lacunarity:       cfg.Noise.Lacunarity,
	}

	filler := trace.NewFiller(
		g.vf,
		g.base,
		noise.New(g.seed+noise.OffsetDensity),
		noise.New(g.seed+noise.OffsetWobble),
		noise.New(g.seed+noise.OffsetFatigue),
		g.rng,
		opts,
	)
	return filler.Fill(g.startPoints(cfg.Lines.Count))
}

// runSwarm runs the agent simulation.
func (g *Generator) runSwarm() []geom.Line {
	cfg := g.cfg
	sim := swarm.NewSim(
		g.vf,
		noise.New(g.seed+noise.OffsetWander),
		noise.New(g.seed+noise.OffsetForm),
		noise.New(g.seed+noise.OffsetDensity),
		g.rng,
		swarm.Options{
			StepLength:        cfg.Lines.StepLength,
			Margin:            cfg.Canvas.Margin,
			MinPoints:         cfg.Lines.MinPoints,
			InitialAgents:     cfg.Swarm.InitialAgents,
			MaxAgents:         cfg.Swarm.MaxAgents,
			InitialEnergy:     cfg.Swarm.InitialEnergy,
			WanderStrength:    cfg.Swarm.WanderStrength,
			ClusterRadius:     cfg.Swarm.ClusterRadius,
			ClusterAttraction: cfg.Swarm.ClusterAttraction,
			FormStrength:      cfg.Swarm.FormStrength,
			VoidThreshold:     cfg.Swarm.VoidThreshold,
			SlowWithAge:       cfg.Swarm.SlowWithAge,
			SpawnChance:       cfg.Swarm.SpawnChance,
			SpawnEnergyFrac:   cfg.Swarm.SpawnEnergyFrac,
			InheritFrac:       cfg.Swarm.InheritFrac,
			MaxLines:          cfg.Swarm.MaxLines,
			MaxIterations:     cfg.Swarm.MaxIterations,
			NoiseScale:        cfg.Noise.Scale,
			Octaves:           cfg.Noise.Octaves,
			Persistence:       cfg.Noise.Persistence,
			Lacunarity:        cfg.Noise.Lacunarity,
		},
	)
	return sim.Run()
}

// runHatch runs contour-following hatching.
func (g *Generator) runHatch() []geom.Line {
	cfg := g.cfg
	hatcher := trace.NewHatcher(
		cfg.Canvas.Width,
		cfg.Canvas.Height,
		noise.New(g.seed+noise.OffsetForm),
		noise.New(g.seed+noise.OffsetDensity),
		noise.New(g.seed+noise.OffsetAngle),
		noise.New(g.seed+noise.OffsetPosition),
		g.rng,
		trace.HatchOptions{
			StepLength:  cfg.Lines.StepLength,
			Margin:      cfg.Canvas.Margin,
			MinPoints:   cfg.Lines.MinPoints,
			Contrast:    cfg.Hatch.Contrast,
			Deviation:   cfg.Hatch.Deviation,
			Wobble:      cfg.Hatch.Wobble,
			BaseLength:  cfg.Hatch.BaseLength,
			Candidates:  cfg.Lines.Count * cfg.Hatch.CandidatesPerLine,
			MaxLines:    cfg.Lines.Count,
			NoiseScale:  cfg.Noise.Scale,
			Octaves:     cfg.Noise.Octaves,
			Persistence: cfg.Noise.Persistence,
			Lacunarity:  cfg.Noise.Lacunarity,
		},
	)
	return hatcher.Hatch()
}

// trimToMargin enforces the output invariant: every emitted point lies
// in [margin, dim-margin). Lines are split around offending points and
// fragments below the minimum length are dropped.
func (g *Generator) trimToMargin(lines []geom.Line) []geom.Line {
	cfg := g.cfg
	margin := cfg.Canvas.Margin

	var out []geom.Line
	for _, line := range lines {
		var current geom.Line
		for _, p := range line {
			if g.vf.InBounds(p.X, p.Y, margin) {
				current = append(current, p)
				continue
			}
			if len(current) >= cfg.Lines.MinPoints {
				out = append(out, current)
			}
			current = nil
		}
		if len(current) >= cfg.Lines.MinPoints {
			out = append(out, current)
		}
	}
	return out
}
