package trace

import (
	"container/heap"
	"math"
	"math/rand"

	"github.com/pthm-cable/plotflow/field"
	"github.com/pthm-cable/plotflow/geom"
	"github.com/pthm-cable/plotflow/noise"
)

// FillOptions controls density-aware space-filling streamline placement.
type FillOptions struct {
	Options

	BaseSeparation   float64
	MinSeparation    float64
	DensityVariation float64 // 0..1, scales the noise separation multiplier
	DensityPoints    []field.DensityPoint

	MaxLines      int
	MaxIterations int // seed-queue safety ceiling

	// Organic perturbations
	Organic        bool
	FatigueChance  float64 // per-step early-termination probability scale
	WobbleStrength float64 // perpendicular hand-drawn jitter
	EdgeAttraction float64 // pull toward the nearest edge in the outer band

	// Density noise shaping (shared with the base field's params)
	NoiseScale  float64
	Octaves     int
	Persistence float64
	Lacunarity  float64
}

// candidate is one prospective streamline seed.
type candidate struct {
	pos      geom.Point
	priority float64
	seq      int // insertion order, breaks priority ties deterministically
}

type candidateQueue []candidate

func (q candidateQueue) Len() int { return len(q) }
func (q candidateQueue) Less(i, j int) bool {
	if q[i].priority != q[j].priority {
		return q[i].priority > q[j].priority
	}
	return q[i].seq < q[j].seq
}
func (q candidateQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *candidateQueue) Push(x any)   { *q = append(*q, x.(candidate)) }
func (q *candidateQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// Filler places evenly-spaced streamlines, seeding new candidates
// perpendicular to every accepted line so coverage propagates outward
// from the initial scatter. Dense regions are processed first and may
// deliberately skip collision checks for an overlapping, wispy look.
type Filler struct {
	field   *field.VectorField
	flow    *noise.Field // base noise, reused as a flow-speed proxy
	density *noise.Field
	wobble  *noise.Field
	fatigue *noise.Field
	rng     *rand.Rand
	opts    FillOptions
	grid    *Grid

	seq     int
	skipped []bool
}

// NewFiller wires the fill strategy. flow must be the noise field the
// vector field was built from; density, wobble, and fatigue are the
// purpose-offset sub-fields.
func NewFiller(f *field.VectorField, flow, density, wobble, fatigue *noise.Field, rng *rand.Rand, opts FillOptions) *Filler {
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = 50000
	}
	if opts.MinSeparation <= 0 {
		opts.MinSeparation = opts.BaseSeparation * 0.25
	}
	return &Filler{
		field:   f,
		flow:    flow,
		density: density,
		wobble:  wobble,
		fatigue: fatigue,
		rng:     rng,
		opts:    opts,
		grid:    NewGrid(math.Max(opts.BaseSeparation, 1)),
	}
}

// LocalSeparation returns the target inter-line distance at a position:
// the base separation modulated by a density-noise multiplier and by
// the strongest manual density point, clamped to the minimum.
func (fl *Filler) LocalSeparation(x, y float64) float64 {
	o := &fl.opts

	n := fl.density.FBM(x*o.NoiseScale, y*o.NoiseScale, o.Octaves, o.Persistence, o.Lacunarity)
	t := (n + 1) / 2
	mult := 0.2 + t*2.3
	mult = 1 + (mult-1)*o.DensityVariation
	sep := o.BaseSeparation * mult

	// Manual density points: max influence wins, not the sum, so
	// overlapping zones don't collapse separation to zero.
	maxInf := 0.0
	for _, dp := range o.DensityPoints {
		if dp.Radius <= 0 {
			continue
		}
		d := dp.Pos.Distance(geom.Pt(x, y))
		if d >= dp.Radius {
			continue
		}
		f := 1 - d/dp.Radius
		inf := dp.Strength * f * f * f
		if inf > maxInf {
			maxInf = inf
		}
	}
	sep -= (sep - o.MinSeparation) * maxInf

	if sep < o.MinSeparation {
		sep = o.MinSeparation
	}
	return sep
}

// Fill runs the space-filling loop from the given initial seeds.
func (fl *Filler) Fill(seeds []geom.Point) []geom.Line {
	o := &fl.opts

	var queue candidateQueue
	heap.Init(&queue)
	for _, s := range seeds {
		fl.push(&queue, s)
	}

	var lines []geom.Line
	for iter := 0; queue.Len() > 0 && iter < o.MaxIterations; iter++ {
		if o.MaxLines > 0 && len(lines) >= o.MaxLines {
			break
		}
		c := heap.Pop(&queue).(candidate)

		localSep := fl.LocalSeparation(c.pos.X, c.pos.Y)
		ratio := localSep / o.BaseSeparation

		// Very dense zones intentionally allow overlap: skip the
		// collision check entirely below 0.5, coin-flip below 0.8.
		skipCollision := ratio < 0.5 || (ratio < 0.8 && fl.rng.Float64() < 0.5)
		if !skipCollision && fl.grid.HasNearby(c.pos.X, c.pos.Y, 0.5*localSep) {
			continue
		}

		line := fl.traceBoth(c.pos, localSep, skipCollision)
		if len(line) < o.MinPoints {
			continue
		}

		lines = append(lines, line)
		fl.skipped = append(fl.skipped, skipCollision)
		fl.grid.AddLine(line)
		fl.seedAlong(&queue, line)
	}

	return lines
}

// Skipped reports, per emitted line, whether the dense-region collision
// skip was active while tracing it. Separation is only a hard guarantee
// between lines where this is false.
func (fl *Filler) Skipped() []bool {
	return fl.skipped
}

// push enqueues a candidate prioritized by local density.
func (fl *Filler) push(queue *candidateQueue, p geom.Point) {
	if !fl.field.InBounds(p.X, p.Y, fl.opts.Margin) {
		return
	}
	heap.Push(queue, candidate{
		pos:      p,
		priority: fl.opts.BaseSeparation / fl.LocalSeparation(p.X, p.Y),
		seq:      fl.seq,
	})
	fl.seq++
}

// seedAlong samples an accepted line at a density-dependent interval
// and emits candidate seeds offset perpendicular to the local tangent
// on both sides.
func (fl *Filler) seedAlong(queue *candidateQueue, line geom.Line) {
	interval := int(fl.LocalSeparation(line[0].X, line[0].Y) / fl.opts.StepLength)
	if interval < 2 {
		interval = 2
	}
	for i := interval; i < len(line)-1; i += interval {
		tangent := line[i+1].Sub(line[i-1]).Normalize()
		perp := tangent.Perp()
		sep := fl.LocalSeparation(line[i].X, line[i].Y)
		fl.push(queue, line[i].Add(perp.Mul(sep)))
		fl.push(queue, line[i].Add(perp.Mul(-sep)))
	}
}

// traceBoth traces forward and backward with organic perturbations and
// joins the halves.
func (fl *Filler) traceBoth(start geom.Point, localSep float64, skipCollision bool) geom.Line {
	forward := fl.traceOrganic(start, 1, localSep, skipCollision)
	backward := fl.traceOrganic(start, -1, localSep, skipCollision)
	if len(backward) < 2 {
		return forward
	}
	joined := backward.Reverse()
	return append(joined, forward[1:]...)
}

// traceOrganic is the fill-mode stepping loop. On top of plain field
// following it layers velocity-based step shrinking, noise-gated line
// fatigue, edge attraction in the outer band, and two-frequency wobble.
func (fl *Filler) traceOrganic(start geom.Point, dir float64, localSep float64, skipCollision bool) geom.Line {
	o := &fl.opts
	line := geom.Line{start}
	p := start
	speed := 1.0

	for i := 0; i < o.MaxSteps; i++ {
		v := fl.field.At(p.X, p.Y, o.Attractors).Mul(dir)

		if o.Organic {
			// Slow down and eventually stop in low-flow regions
			flow := math.Abs(fl.flow.FBM(p.X*o.NoiseScale, p.Y*o.NoiseScale, o.Octaves, o.Persistence, o.Lacunarity))
			speed = speed*0.9 + (0.25+0.75*flow)*0.1
			if speed < 0.3 {
				break
			}

			if o.FatigueChance > 0 {
				gate := (fl.fatigue.Sample(p.X*0.01, p.Y*0.01) + 1) / 2
				if fl.rng.Float64() < o.FatigueChance*gate {
					break
				}
			}

			if o.EdgeAttraction > 0 {
				v = fl.pullToEdge(p, v)
			}
		}

		next := p.Add(v.Mul(o.StepLength * speed))

		if o.Organic && o.WobbleStrength > 0 {
			w := fl.wobble.Sample(p.X*0.01, p.Y*0.01) +
				0.5*fl.wobble.Sample(p.X*0.05+100, p.Y*0.05+100)
			next = next.Add(v.Perp().Mul(w * o.WobbleStrength))
		}

		if !fl.field.InBounds(next.X, next.Y, o.Margin) {
			break
		}
		if !skipCollision && fl.grid.HasNearby(next.X, next.Y, 0.5*localSep) {
			break
		}

		line = append(line, next)
		p = next
	}

	return line
}

// pullToEdge steers the direction toward the nearest canvas edge when
// inside the outer 30% band, ramping in with a pow-1.5 falloff for a
// graceful approach instead of a sharp turn.
func (fl *Filler) pullToEdge(p geom.Point, v geom.Point) geom.Point {
	o := &fl.opts
	w := fl.field.Width()
	h := fl.field.Height()
	band := 0.3 * math.Min(w, h) / 2

	dLeft := p.X - o.Margin
	dRight := w - o.Margin - p.X
	dTop := p.Y - o.Margin
	dBottom := h - o.Margin - p.Y

	d := dLeft
	edgeDir := geom.Pt(-1, 0)
	if dRight < d {
		d = dRight
		edgeDir = geom.Pt(1, 0)
	}
	if dTop < d {
		d = dTop
		edgeDir = geom.Pt(0, -1)
	}
	if dBottom < d {
		d = dBottom
		edgeDir = geom.Pt(0, 1)
	}

	if d >= band {
		return v
	}
	t := 1 - d/band
	pull := math.Pow(t, 1.5) * o.EdgeAttraction
	return v.Add(edgeDir.Mul(pull)).Normalize()
}
