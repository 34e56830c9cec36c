package alphabeta

import (
	"fmt"
	"github.com/janpfeifer/pacmanGo/internal/ai"
	"github.com/janpfeifer/pacmanGo/internal/searchers"
	"github.com/janpfeifer/pacmanGo/internal/state"
	"math"
	"time"
)

// Searcher implements the searchers.Searcher interface, with minimax values computed with
// alpha-beta pruning.
//
// It always chooses the same action as the minimax searcher, only visiting fewer nodes.
type Searcher struct {
	maxDepth    int
	parallelism int
	scorer      ai.ValueScorer
}

// Assert that Searcher implements searchers.Searcher.
var _ searchers.Searcher = (*Searcher)(nil)

// New returns an Alpha-Beta Pruning based searchers.Searcher implementation.
// There are other optional configurations, see methods Searcher.With...
//
// The one obligatory parameter is the scorer used to evaluate cutoff nodes.
//
// See: wikipedia.org/wiki/Alpha-beta_pruning
func New(scorer ai.ValueScorer) *Searcher {
	return &Searcher{
		maxDepth:    searchers.DefaultMaxDepth,
		parallelism: 1,
		scorer:      scorer,
	}
}

// WithMaxDepth sets the depth of the search, in rounds: each round is Pacman moving followed
// by every ghost moving once.
//
// The default is searchers.DefaultMaxDepth.
func (ab *Searcher) WithMaxDepth(maxDepth int) *Searcher {
	ab.maxDepth = maxDepth
	return ab
}

// WithParallelism sets how many of Pacman's root actions are searched concurrently.
//
// Each concurrent root action starts with its own unbounded alpha-beta window, so it prunes
// less than the sequential search (the default, parallelism=1), but it chooses the same action.
func (ab *Searcher) WithParallelism(parallelism int) *Searcher {
	ab.parallelism = parallelism
	return ab
}

// String implements searchers.Searcher.
func (ab *Searcher) String() string {
	return fmt.Sprintf("alphabeta(depth=%d, eval=%s)", ab.maxDepth, ab.scorer)
}

// Search implements the searchers.Searcher interface.
func (ab *Searcher) Search(s state.GameState) (action state.Action, score float64, err error) {
	action, score, _, err = ab.SearchWithStats(s)
	return
}

// SearchWithStats is like Search, but also returns the statistics of the search.
func (ab *Searcher) SearchWithStats(s state.GameState) (action state.Action, score float64, stats *searchers.Stats, err error) {
	start := time.Now()
	stats = &searchers.Stats{}
	r := &recursion{scorer: ab.scorer, numAgents: s.NumAgents(), stats: stats}
	nextAgent, nextDepth := searchers.NextTurn(0, ab.maxDepth, r.numAgents)
	action, score, err = searchers.SearchRoot(s, ab.scorer, ab.parallelism, stats,
		func(successor state.GameState, alpha float64) float64 {
			// The root is a maximizing node: its best value so far is alpha, and it has no beta bound.
			return r.value(successor, nextDepth, nextAgent, alpha, math.Inf(1))
		})
	stats.Log(ab, time.Since(start))
	return
}

// recursion holds what is constant during one search.
type recursion struct {
	scorer    ai.ValueScorer
	numAgents int
	stats     *searchers.Stats
}

// value of the state when it's agentIdx turn to move, with depth rounds left.
//
// alpha is the value Pacman can already guarantee on the path to this node, beta the value the ghosts
// can already guarantee. Once a node's value is proven outside of [alpha, beta], the remaining
// actions are pruned and the (bound) value returned.
func (r *recursion) value(s state.GameState, depth, agentIdx int, alpha, beta float64) float64 {
	if searchers.IsCutoff(s, depth) {
		return searchers.Evaluate(r.scorer, s, r.stats)
	}
	actions := s.LegalActions(agentIdx)
	if len(actions) == 0 {
		return searchers.Evaluate(r.scorer, s, r.stats)
	}
	nextAgent, nextDepth := searchers.NextTurn(agentIdx, depth, r.numAgents)

	if agentIdx == 0 {
		best := math.Inf(-1)
		for _, action := range actions {
			successor := searchers.Successor(s, agentIdx, action, r.stats)
			best = max(best, r.value(successor, nextDepth, nextAgent, alpha, beta))
			if best > beta {
				// Fail-high: the ghosts above will never let Pacman reach this node.
				r.stats.CountPrune()
				return best
			}
			alpha = max(alpha, best)
		}
		return best
	}

	best := math.Inf(1)
	for _, action := range actions {
		successor := searchers.Successor(s, agentIdx, action, r.stats)
		best = min(best, r.value(successor, nextDepth, nextAgent, alpha, beta))
		if best < alpha {
			// Fail-low: Pacman already has a better alternative above.
			r.stats.CountPrune()
			return best
		}
		beta = min(beta, best)
	}
	return best
}
