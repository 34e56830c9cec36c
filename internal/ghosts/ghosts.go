// Package ghosts implements the ghost agents used as Pacman's adversaries in matches.
//
// The searchers model ghosts as minimizers (minimax, alphabeta) or as uniformly random (expectimax). The agents
// here are the actual ghosts the matches are played against.
package ghosts

import (
	"fmt"
	"github.com/janpfeifer/pacmanGo/internal/state"
	"github.com/pkg/errors"
	"math/rand/v2"
	"slices"
	"sync"
)

// Agent chooses the action for a ghost.
type Agent interface {
	// Act returns the action of the ghost with the given agent index (>= 1). If the ghost has no legal
	// actions it returns state.Stop.
	Act(s state.GameState, agentIdx int) (state.Action, error)

	// String returns the name of the agent.
	String() string
}

// Kinds of ghosts accepted by New.
var Kinds = []string{"random", "directional"}

// New creates a ghost agent of the given kind, using rng for its random choices.
func New(kind string, rng *rand.Rand) (Agent, error) {
	switch kind {
	case "random":
		return NewRandom(rng), nil
	case "directional":
		return NewDirectional(rng), nil
	}
	return nil, errors.Errorf("unknown ghost kind %q, valid values are %q", kind, Kinds)
}

// randomSource is a *rand.Rand protected by a mutex, so agents can be shared among matches.
type randomSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (r *randomSource) intN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.IntN(n)
}

func (r *randomSource) float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Float64()
}

// Random ghost chooses uniformly among its legal actions.
type Random struct {
	randomSource
}

// Assert Random is an Agent.
var _ Agent = (*Random)(nil)

// NewRandom returns a Random ghost agent.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{randomSource{rng: rng}}
}

// String implements Agent.
func (g *Random) String() string { return "random" }

// Act implements Agent.
func (g *Random) Act(s state.GameState, agentIdx int) (state.Action, error) {
	actions := s.LegalActions(agentIdx)
	if len(actions) == 0 {
		return state.Stop, nil
	}
	return actions[g.intN(len(actions))], nil
}

const (
	// DefaultProbAttack is the probability a Directional ghost moves towards Pacman.
	DefaultProbAttack = 0.8

	// DefaultProbScaredFlee is the probability a scared Directional ghost moves away from Pacman.
	DefaultProbScaredFlee = 0.8
)

// Directional ghost chases Pacman (or flees from it, when scared) most of the time: it picks
// among the actions that bring it closest (or farthest) to Pacman, and otherwise picks uniformly
// among all its legal actions.
type Directional struct {
	randomSource
	ProbAttack, ProbScaredFlee float64
}

// Assert Directional is an Agent.
var _ Agent = (*Directional)(nil)

// NewDirectional returns a Directional ghost with the default probabilities.
func NewDirectional(rng *rand.Rand) *Directional {
	return &Directional{
		randomSource:   randomSource{rng: rng},
		ProbAttack:     DefaultProbAttack,
		ProbScaredFlee: DefaultProbScaredFlee,
	}
}

// String implements Agent.
func (g *Directional) String() string {
	return fmt.Sprintf("directional(attack=%g, flee=%g)", g.ProbAttack, g.ProbScaredFlee)
}

// BestActions returns the legal actions of the ghost that minimize its distance to Pacman or, if
// the ghost is scared, that maximize it.
func BestActions(s state.GameState, agentIdx int) []state.Action {
	actions := s.LegalActions(agentIdx)
	if len(actions) == 0 {
		return nil
	}
	ghost := s.GhostStates()[agentIdx-1]
	pacman := s.PacmanPosition()
	sign := 1
	if ghost.IsScared() {
		sign = -1
	}
	distances := make([]int, len(actions))
	for ii, action := range actions {
		distances[ii] = sign * ghost.Pos.Add(action.Delta()).Distance(pacman)
	}
	bestDistance := slices.Min(distances)
	var best []state.Action
	for ii, action := range actions {
		if distances[ii] == bestDistance {
			best = append(best, action)
		}
	}
	return best
}

// Act implements Agent.
func (g *Directional) Act(s state.GameState, agentIdx int) (state.Action, error) {
	if agentIdx < 1 || agentIdx >= s.NumAgents() {
		return state.Stop, errors.Errorf("invalid ghost agent index %d for a state with %d agents", agentIdx, s.NumAgents())
	}
	actions := s.LegalActions(agentIdx)
	if len(actions) == 0 {
		return state.Stop, nil
	}
	prob := g.ProbAttack
	if s.GhostStates()[agentIdx-1].IsScared() {
		prob = g.ProbScaredFlee
	}
	if g.float64() < prob {
		best := BestActions(s, agentIdx)
		return best[g.intN(len(best))], nil
	}
	return actions[g.intN(len(actions))], nil
}
