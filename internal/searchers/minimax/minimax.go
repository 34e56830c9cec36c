// Package minimax implements the exact minimax search: Pacman maximizes, every ghost minimizes,
// down to a fixed number of rounds.
package minimax

import (
	"fmt"
	"github.com/janpfeifer/pacmanGo/internal/ai"
	"github.com/janpfeifer/pacmanGo/internal/searchers"
	"github.com/janpfeifer/pacmanGo/internal/state"
	"math"
	"time"
)

// Searcher implements the searchers.Searcher interface.
type Searcher struct {
	maxDepth    int
	parallelism int
	scorer      ai.ValueScorer
}

// Assert that Searcher implements searchers.Searcher.
var _ searchers.Searcher = (*Searcher)(nil)

// New returns a minimax searchers.Searcher that evaluates cutoff nodes with scorer.
// See Searcher.With... methods for optional configuration.
func New(scorer ai.ValueScorer) *Searcher {
	return &Searcher{
		maxDepth:    searchers.DefaultMaxDepth,
		parallelism: 1,
		scorer:      scorer,
	}
}

// WithMaxDepth sets the depth of the search, in rounds (Pacman plus every ghost moving once).
// The default is searchers.DefaultMaxDepth.
func (mm *Searcher) WithMaxDepth(maxDepth int) *Searcher {
	mm.maxDepth = maxDepth
	return mm
}

// WithParallelism sets how many of Pacman's root actions are searched concurrently. Default is 1.
func (mm *Searcher) WithParallelism(parallelism int) *Searcher {
	mm.parallelism = parallelism
	return mm
}

// String implements searchers.Searcher.
func (mm *Searcher) String() string {
	return fmt.Sprintf("minimax(depth=%d, eval=%s)", mm.maxDepth, mm.scorer)
}

// Search implements searchers.Searcher.
func (mm *Searcher) Search(s state.GameState) (action state.Action, score float64, err error) {
	action, score, _, err = mm.SearchWithStats(s)
	return
}

// SearchWithStats is like Search, but also returns the statistics of the search.
func (mm *Searcher) SearchWithStats(s state.GameState) (action state.Action, score float64, stats *searchers.Stats, err error) {
	start := time.Now()
	stats = &searchers.Stats{}
	r := &recursion{scorer: mm.scorer, numAgents: s.NumAgents(), stats: stats}
	nextAgent, nextDepth := searchers.NextTurn(0, mm.maxDepth, r.numAgents)
	action, score, err = searchers.SearchRoot(s, mm.scorer, mm.parallelism, stats,
		func(successor state.GameState, _ float64) float64 {
			return r.value(successor, nextDepth, nextAgent)
		})
	stats.Log(mm, time.Since(start))
	return
}

// recursion holds what is constant during one search.
type recursion struct {
	scorer    ai.ValueScorer
	numAgents int
	stats     *searchers.Stats
}

// value of the state when it's agentIdx turn to move, with depth rounds left.
func (r *recursion) value(s state.GameState, depth, agentIdx int) float64 {
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
			best = max(best, r.value(searchers.Successor(s, agentIdx, action, r.stats), nextDepth, nextAgent))
		}
		return best
	}
	best := math.Inf(1)
	for _, action := range actions {
		best = min(best, r.value(searchers.Successor(s, agentIdx, action, r.stats), nextDepth, nextAgent))
	}
	return best
}
