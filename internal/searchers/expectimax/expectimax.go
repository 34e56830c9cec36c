// Package expectimax implements a search where ghosts are modeled as choosing uniformly at random
// among their legal actions: a ghost's node value is the mean of its children values.
//
// There is no pruning, the tree is always fully expanded to the depth or terminal cutoff.
package expectimax

import (
	"fmt"
	"github.com/janpfeifer/pacmanGo/internal/ai"
	"github.com/janpfeifer/pacmanGo/internal/generics"
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

// New returns an expectimax searcher that evaluates cutoff nodes with scorer.
func New(scorer ai.ValueScorer) *Searcher {
	return &Searcher{
		maxDepth:    searchers.DefaultMaxDepth,
		parallelism: 1,
		scorer:      scorer,
	}
}

// WithMaxDepth sets the depth of the search in rounds. Default is searchers.DefaultMaxDepth.
func (em *Searcher) WithMaxDepth(maxDepth int) *Searcher {
	em.maxDepth = maxDepth
	return em
}

// WithParallelism sets how many of Pacman's root actions are searched concurrently. Default is 1.
func (em *Searcher) WithParallelism(parallelism int) *Searcher {
	em.parallelism = parallelism
	return em
}

// String implements searchers.Searcher.
func (em *Searcher) String() string {
	return fmt.Sprintf("expectimax(depth=%d, eval=%s)", em.maxDepth, em.scorer)
}

// Search implements searchers.Searcher.
func (em *Searcher) Search(s state.GameState) (action state.Action, score float64, err error) {
	action, score, _, err = em.SearchWithStats(s)
	return
}

// SearchWithStats is like Search, but also returns the statistics of the search.
func (em *Searcher) SearchWithStats(s state.GameState) (action state.Action, score float64, stats *searchers.Stats, err error) {
	start := time.Now()
	stats = &searchers.Stats{}
	r := &recursion{scorer: em.scorer, numAgents: s.NumAgents(), stats: stats}
	nextAgent, nextDepth := searchers.NextTurn(0, em.maxDepth, r.numAgents)
	action, score, err = searchers.SearchRoot(s, em.scorer, em.parallelism, stats,
		func(successor state.GameState, _ float64) float64 {
			return r.value(successor, nextDepth, nextAgent)
		})
	stats.Log(em, time.Since(start))
	return
}

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
	values := make([]float64, len(actions))
	for ii, action := range actions {
		values[ii] = r.value(searchers.Successor(s, agentIdx, action, r.stats), nextDepth, nextAgent)
	}
	return generics.Mean(values)
}
