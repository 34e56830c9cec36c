// Package searchers defines the Searcher interface and the pieces shared by the adversarial search
// algorithms: turn bookkeeping, cutoff rule, root action selection and search statistics.
//
// The algorithms themselves live in the sub-packages minimax, alphabeta, expectimax and reflex.
package searchers

import (
	"fmt"
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/pacmanGo/internal/ai"
	"github.com/janpfeifer/pacmanGo/internal/state"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
	"math"
	"sync/atomic"
	"time"
)

// Searcher is the interface that any of the search algorithms must adhere to be valid.
type Searcher interface {
	// Search returns the action Pacman (agent 0) should take on the given state, and the value backed up
	// for that action.
	//
	// If the state is terminal or Pacman has no legal actions, it returns state.Stop and the evaluation
	// of the state itself.
	//
	// An error is only returned if the state misbehaves, e.g. if it refuses to generate a successor for
	// one of the actions it listed as legal.
	Search(s state.GameState) (action state.Action, score float64, err error)

	// String returns a description of the searcher and its configuration.
	String() string
}

// DefaultMaxDepth for search, in rounds: one round is a move for Pacman followed by a move for each ghost.
const DefaultMaxDepth = 2

// Stats stores running stats collected during one search: for benchmarking, monitoring and debugging purposes.
// It's safe for concurrent use.
type Stats struct {
	// Nodes counts successors generated during the search.
	Nodes int64

	// Evals counts calls to the evaluation function.
	Evals int64

	// Prunes counts alpha-beta cutoffs.
	Prunes int64
}

// CountNode increments Nodes.
func (st *Stats) CountNode() { atomic.AddInt64(&st.Nodes, 1) }

// CountEval increments Evals.
func (st *Stats) CountEval() { atomic.AddInt64(&st.Evals, 1) }

// CountPrune increments Prunes.
func (st *Stats) CountPrune() { atomic.AddInt64(&st.Prunes, 1) }

// String implements fmt.Stringer.
func (st *Stats) String() string {
	return fmt.Sprintf("nodes=%d, evals=%d, prunes=%d",
		atomic.LoadInt64(&st.Nodes), atomic.LoadInt64(&st.Evals), atomic.LoadInt64(&st.Prunes))
}

// Log the stats, if verbosity is at least 2.
func (st *Stats) Log(searcher fmt.Stringer, elapsed time.Duration) {
	if !klog.V(2).Enabled() {
		return
	}
	seconds := max(elapsed.Seconds(), 1e-9)
	klog.Infof("%s: %s", searcher, st)
	klog.Infof("  nodes/s=%.1f, evals/s=%.1f, elapsed=%s",
		float64(atomic.LoadInt64(&st.Nodes))/seconds, float64(atomic.LoadInt64(&st.Evals))/seconds, elapsed)
}

// IsCutoff returns whether the search must stop at this node and evaluate it: either the state
// is terminal or there is no depth left.
func IsCutoff(s state.GameState, depth int) bool {
	return depth <= 0 || state.IsTerminal(s)
}

// NextTurn returns which agent moves after agentIdx, and the depth left for it.
// Depth only decrements when the last agent of the round has moved, and control returns to Pacman.
func NextTurn(agentIdx, depth, numAgents int) (nextAgentIdx, nextDepth int) {
	if agentIdx+1 < numAgents {
		return agentIdx + 1, depth
	}
	return 0, depth - 1
}

// Successor generates the successor of s for the agent taking the action, and counts it in stats.
//
// An error from the state means its LegalActions and GenerateSuccessor disagree: it is raised as
// a panic (with the error), to be recovered by SearchRoot.
func Successor(s state.GameState, agentIdx int, action state.Action, stats *Stats) state.GameState {
	next, err := s.GenerateSuccessor(agentIdx, action)
	if err != nil {
		panic(errors.WithMessagef(err, "searching successor of agent %d taking %s", agentIdx, action))
	}
	if next == nil {
		exceptions.Panicf("GenerateSuccessor(%d, %s) returned a nil state", agentIdx, action)
	}
	stats.CountNode()
	return next
}

// Evaluate returns scorer's value for s, and counts it in stats.
func Evaluate(scorer ai.ValueScorer, s state.GameState, stats *Stats) float64 {
	stats.CountEval()
	return scorer.Score(s)
}

// ChildValue computes the value of one of Pacman's root actions, given its successor state.
//
// alpha is the best value found so far among the previous root actions: math.Inf(-1) for the first action, and
// for all actions when root actions are evaluated in parallel. Searchers without pruning ignore it.
type ChildValue func(successor state.GameState, alpha float64) float64

// SearchRoot enumerates Pacman's legal actions and returns the one whose childValue is the highest.
// Among actions with the same value, the first one listed by LegalActions is returned.
//
// If s is terminal or has no legal actions for Pacman, it returns state.Stop and the evaluation of s.
//
// If parallelism > 1, up to parallelism root actions are evaluated concurrently. The action chosen
// is the same as in the sequential search.
func SearchRoot(s state.GameState, scorer ai.ValueScorer, parallelism int, stats *Stats, childValue ChildValue) (
	bestAction state.Action, bestScore float64, err error) {
	if state.IsTerminal(s) {
		return state.Stop, Evaluate(scorer, s, stats), nil
	}
	actions := s.LegalActions(0)
	if len(actions) == 0 {
		if klog.V(1).Enabled() {
			klog.Infof("No legal actions for Pacman, returning %s", state.Stop)
		}
		return state.Stop, Evaluate(scorer, s, stats), nil
	}

	values := make([]float64, len(actions))
	if parallelism <= 1 || len(actions) == 1 {
		err = exceptions.TryCatch[error](func() {
			best := math.Inf(-1)
			for ii, action := range actions {
				values[ii] = childValue(Successor(s, 0, action, stats), best)
				best = max(best, values[ii])
			}
		})
	} else {
		var g errgroup.Group
		g.SetLimit(parallelism)
		for ii, action := range actions {
			g.Go(func() error {
				return exceptions.TryCatch[error](func() {
					values[ii] = childValue(Successor(s, 0, action, stats), math.Inf(-1))
				})
			})
		}
		err = g.Wait()
	}
	if err != nil {
		return state.Stop, 0, err
	}

	// Strict improvement only: the first action among ties is kept.
	bestAction, bestScore = state.Stop, math.Inf(-1)
	for ii, value := range values {
		if value > bestScore {
			bestAction, bestScore = actions[ii], value
		}
	}
	return bestAction, bestScore, nil
}
