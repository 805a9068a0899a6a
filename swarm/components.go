// Package swarm implements agent-based line generation on an ECS.
//
// Each agent is an entity whose components hold position, velocity,
// personality, remaining energy, and the trail it has drawn so far.
// Parent/child relations are snapshot copies made at spawn time, never
// live references, so entity removal has no ownership hazards.
package swarm

import "github.com/pthm-cable/plotflow/geom"

// Position is an agent's canvas location.
type Position struct {
	X, Y float64
}

// Velocity is the direction the agent moved last tick (unit scale).
type Velocity struct {
	X, Y float64
}

// Personality holds the per-agent behavior parameters randomized at
// spawn and partially inherited by children.
type Personality struct {
	Wander  float64 // wander angle scale
	Speed   float64 // step length multiplier
	Cluster float64 // affinity for the local swarm centroid
}

// Energy is the agent's remaining lifespan budget in steps.
type Energy struct {
	Value   float64
	Initial float64
}

// Trail accumulates the agent's path; it becomes an output line when
// the agent dies, if long enough.
type Trail struct {
	Points geom.Line
}
