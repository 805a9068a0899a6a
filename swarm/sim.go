package swarm

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/plotflow/field"
	"github.com/pthm-cable/plotflow/geom"
	"github.com/pthm-cable/plotflow/noise"
)

// maxTrailPoints is the hard per-agent trail cap. There is no external
// cancellation hook, so runaway agents must terminate on their own.
const maxTrailPoints = 5000

// Options controls the swarm simulation.
type Options struct {
	StepLength float64
	Margin     float64
	MinPoints  int

	InitialAgents int
	MaxAgents     int
	InitialEnergy float64 // lifespan budget in steps

	WanderStrength    float64 // noise-driven heading jitter scale
	ClusterRadius     float64
	ClusterAttraction float64
	FormStrength      float64 // implied-3D wrapping perturbation
	VoidThreshold     float64 // density below this repels; half of it kills
	SlowWithAge       bool    // reduce speed as energy depletes

	SpawnChance     float64 // per-tick reproduction probability scale
	SpawnEnergyFrac float64 // child's share of parent energy
	InheritFrac     float64 // personality fraction copied from parent

	MaxLines      int
	MaxIterations int

	NoiseScale  float64
	Octaves     int
	Persistence float64
	Lacunarity  float64
}

// spawnSpec is a deferred agent creation, applied between ticks.
type spawnSpec struct {
	pos         Position
	vel         Velocity
	personality Personality
	energy      Energy
}

// Sim runs a population of agents through the vector field until all
// die, the line cap is reached, or the iteration ceiling fires.
type Sim struct {
	world  *ecs.World
	mapper *ecs.Map5[Position, Velocity, Personality, Energy, Trail]
	filter *ecs.Filter5[Position, Velocity, Personality, Energy, Trail]

	field   *field.VectorField
	wander  *noise.Field
	form    *noise.Field
	density *noise.Field
	rng     *rand.Rand
	opts    Options

	alive int
	lines []geom.Line
}

// NewSim wires the simulation. wander, form, and density are the
// purpose-offset noise sub-fields.
func NewSim(f *field.VectorField, wander, form, density *noise.Field, rng *rand.Rand, opts Options) *Sim {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = 10000
	}
	if opts.MaxAgents <= 0 {
		opts.MaxAgents = 500
	}
	if opts.InitialEnergy <= 0 {
		opts.InitialEnergy = 300
	}

	world := ecs.NewWorld()
	return &Sim{
		world:   world,
		mapper:  ecs.NewMap5[Position, Velocity, Personality, Energy, Trail](world),
		filter:  ecs.NewFilter5[Position, Velocity, Personality, Energy, Trail](world),
		field:   f,
		wander:  wander,
		form:    form,
		density: density,
		rng:     rng,
		opts:    opts,
	}
}

// Run executes the simulation and returns the collected trails.
func (s *Sim) Run() []geom.Line {
	s.seedPopulation()

	for iter := 0; iter < s.opts.MaxIterations; iter++ {
		if s.alive == 0 {
			break
		}
		if s.opts.MaxLines > 0 && len(s.lines) >= s.opts.MaxLines {
			break
		}
		s.tick()
	}

	// Agents still alive at a forced stop flush their trails too
	s.flushSurvivors()
	return s.lines
}

// seedPopulation spawns the initial agents with randomized
// personalities at seeded-random positions.
func (s *Sim) seedPopulation() {
	o := &s.opts
	w := s.field.Width()
	h := s.field.Height()

	for i := 0; i < o.InitialAgents; i++ {
		pos := Position{
			X: o.Margin + s.rng.Float64()*(w-2*o.Margin),
			Y: o.Margin + s.rng.Float64()*(h-2*o.Margin),
		}
		s.spawn(spawnSpec{
			pos:         pos,
			personality: s.randomPersonality(),
			energy:      Energy{Value: o.InitialEnergy * (0.5 + s.rng.Float64()), Initial: o.InitialEnergy},
		})
	}
}

func (s *Sim) randomPersonality() Personality {
	return Personality{
		Wander:  0.5 + s.rng.Float64(),
		Speed:   0.7 + 0.6*s.rng.Float64(),
		Cluster: s.rng.Float64(),
	}
}

func (s *Sim) spawn(spec spawnSpec) {
	trail := Trail{Points: geom.Line{geom.Pt(spec.pos.X, spec.pos.Y)}}
	s.mapper.NewEntity(&spec.pos, &spec.vel, &spec.personality, &spec.energy, &trail)
	s.alive++
}

// agentSnapshot is the read-only view of the population taken before a
// tick, so steering sees a consistent state regardless of update order.
type agentSnapshot struct {
	pos geom.Point
}

// tick advances every living agent one simulation step. Deaths and
// births are collected during iteration and applied afterwards; the
// ECS forbids structural changes inside a query.
func (s *Sim) tick() {
	o := &s.opts

	snapshots := make([]agentSnapshot, 0, s.alive)
	query := s.filter.Query()
	for query.Next() {
		pos, _, _, _, _ := query.Get()
		snapshots = append(snapshots, agentSnapshot{pos: geom.Pt(pos.X, pos.Y)})
	}

	var deaths []ecs.Entity
	var deadTrails []geom.Line
	var births []spawnSpec

	idx := -1
	query = s.filter.Query()
	for query.Next() {
		idx++
		entity := query.Entity()
		pos, vel, personality, energy, trail := query.Get()

		dir := s.steer(idx, pos, personality, snapshots)

		speed := o.StepLength * personality.Speed
		if o.SlowWithAge && energy.Initial > 0 {
			speed *= 0.5 + 0.5*energy.Value/energy.Initial
		}

		nx := pos.X + dir.X*speed
		ny := pos.Y + dir.Y*speed

		// Leaving the canvas kills the agent before the move commits,
		// so emitted trails never contain out-of-margin points.
		if !s.field.InBounds(nx, ny, o.Margin) {
			deaths = append(deaths, entity)
			deadTrails = append(deadTrails, trail.Points)
			continue
		}

		pos.X = nx
		pos.Y = ny
		vel.X = dir.X
		vel.Y = dir.Y
		trail.Points = append(trail.Points, geom.Pt(pos.X, pos.Y))
		energy.Value--

		if s.checkDeath(pos, energy, trail) {
			deaths = append(deaths, entity)
			deadTrails = append(deadTrails, trail.Points)
			continue
		}

		if birth, ok := s.maybeReproduce(pos, vel, personality, energy); ok {
			births = append(births, birth)
		}
	}

	for _, e := range deaths {
		s.mapper.Remove(e)
		s.alive--
	}
	for _, t := range deadTrails {
		if len(t) >= o.MinPoints {
			s.lines = append(s.lines, t)
		}
	}
	for _, b := range births {
		if s.alive < o.MaxAgents && s.field.InBounds(b.pos.X, b.pos.Y, o.Margin) {
			s.spawn(b)
		}
	}
}

// steer computes the agent's normalized movement direction: field
// direction, rotated by noise-driven wander, blended toward the local
// swarm centroid, perturbed by the form field, and pushed out of voids.
func (s *Sim) steer(selfIdx int, pos *Position, personality *Personality, snapshots []agentSnapshot) geom.Point {
	o := &s.opts

	dir := s.field.At(pos.X, pos.Y, nil)

	// Wander: noise-driven heading jitter scaled by personality
	wanderAngle := s.wander.Sample(pos.X*0.01, pos.Y*0.01) * o.WanderStrength * personality.Wander
	dir = dir.Rotate(wanderAngle)

	// Cluster: inverse-distance-weighted centroid of nearby agents
	if o.ClusterAttraction > 0 && personality.Cluster > 0 && o.ClusterRadius > 0 {
		var cx, cy, wsum float64
		for i, snap := range snapshots {
			if i == selfIdx {
				continue
			}
			d := snap.pos.Distance(geom.Pt(pos.X, pos.Y))
			if d <= 0 || d >= o.ClusterRadius {
				continue
			}
			w := 1 / d
			cx += snap.pos.X * w
			cy += snap.pos.Y * w
			wsum += w
		}
		if wsum > 0 {
			toCentroid := geom.Pt(cx/wsum-pos.X, cy/wsum-pos.Y).Normalize()
			dir = dir.Add(toCentroid.Mul(o.ClusterAttraction * personality.Cluster))
		}
	}

	// Form: curl-like perturbation from an independent surface field,
	// giving trails an implied-3D wrapping look
	if o.FormStrength > 0 {
		gx, gy := s.form.Gradient(pos.X*o.NoiseScale, pos.Y*o.NoiseScale)
		form := geom.Pt(-gy, gx).Normalize()
		dir = dir.Add(form.Mul(o.FormStrength))
	}

	// Void repulsion: follow the density gradient back toward denser
	// territory
	if o.VoidThreshold > 0 && s.densityAt(pos.X, pos.Y) < o.VoidThreshold {
		gx, gy := s.density.Gradient(pos.X*o.NoiseScale, pos.Y*o.NoiseScale)
		repel := geom.Pt(gx, gy).Normalize()
		dir = dir.Add(repel.Mul(0.8))
	}

	if dir.LengthSq() < 1e-18 {
		a := s.rng.Float64() * 2 * math.Pi
		return geom.Pt(math.Cos(a), math.Sin(a))
	}
	return dir.Normalize()
}

// densityAt maps the density sub-field into [0, 1].
func (s *Sim) densityAt(x, y float64) float64 {
	o := &s.opts
	n := s.density.FBM(x*o.NoiseScale, y*o.NoiseScale, o.Octaves, o.Persistence, o.Lacunarity)
	return (n + 1) / 2
}

// checkDeath reports whether the agent terminates this tick: energy
// depleted, trail cap hit, or deep inside a void. Bounds exits are
// handled before the move commits.
func (s *Sim) checkDeath(pos *Position, energy *Energy, trail *Trail) bool {
	o := &s.opts
	switch {
	case energy.Value <= 0:
		return true
	case len(trail.Points) >= maxTrailPoints:
		return true
	case o.VoidThreshold > 0 && s.densityAt(pos.X, pos.Y) < o.VoidThreshold*0.5:
		return true
	}
	return false
}

// maybeReproduce spawns a child perpendicular to the parent's velocity
// with a density-biased probability. The child copies a snapshot of the
// parent's personality and takes a share of its energy; the parent pays
// the cost immediately.
func (s *Sim) maybeReproduce(pos *Position, vel *Velocity, personality *Personality, energy *Energy) (spawnSpec, bool) {
	o := &s.opts

	if o.SpawnChance <= 0 || energy.Value < energy.Initial*0.5 {
		return spawnSpec{}, false
	}
	chance := o.SpawnChance * s.densityAt(pos.X, pos.Y)
	if s.rng.Float64() >= chance {
		return spawnSpec{}, false
	}

	perp := geom.Pt(vel.X, vel.Y).Perp().Normalize()
	if perp.LengthSq() < 1e-18 {
		perp = geom.Pt(0, 1)
	}
	side := 1.0
	if s.rng.Float64() < 0.5 {
		side = -1
	}
	childPos := geom.Pt(pos.X, pos.Y).Add(perp.Mul(side * o.StepLength * 3))

	fresh := s.randomPersonality()
	inherit := o.InheritFrac
	child := Personality{
		Wander:  personality.Wander*inherit + fresh.Wander*(1-inherit),
		Speed:   personality.Speed*inherit + fresh.Speed*(1-inherit),
		Cluster: personality.Cluster*inherit + fresh.Cluster*(1-inherit),
	}

	childEnergy := energy.Value * o.SpawnEnergyFrac
	energy.Value -= childEnergy * 1.2 // parent pays the transfer plus overhead

	return spawnSpec{
		pos:         Position{X: childPos.X, Y: childPos.Y},
		vel:         Velocity{X: vel.X, Y: vel.Y},
		personality: child,
		energy:      Energy{Value: childEnergy, Initial: energy.Initial},
	}, true
}

// flushSurvivors emits trails of agents still alive when the run is
// forced to stop.
func (s *Sim) flushSurvivors() {
	query := s.filter.Query()
	for query.Next() {
		_, _, _, _, trail := query.Get()
		if len(trail.Points) >= s.opts.MinPoints {
			s.lines = append(s.lines, trail.Points)
		}
	}
}
