// Package reflex implements the one-step "reflex" searcher: it scores the successor of each of Pacman's legal
// actions, and picks uniformly at random among the best ones.
//
// Unlike the deep searchers, ghosts' replies are not considered, so the scorer is expected to account for
// nearby ghosts (see ai.ShortHorizonScore, the default).
package reflex

import (
	"fmt"
	"github.com/janpfeifer/pacmanGo/internal/ai"
	"github.com/janpfeifer/pacmanGo/internal/generics"
	"github.com/janpfeifer/pacmanGo/internal/searchers"
	"github.com/janpfeifer/pacmanGo/internal/state"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
	"math/rand/v2"
	"sync"
)

// Searcher implements searchers.Searcher. It's safe for concurrent use.
type Searcher struct {
	scorer ai.ValueScorer

	// mu protects rng.
	mu  sync.Mutex
	rng *rand.Rand
}

// Assert that Searcher implements searchers.Searcher.
var _ searchers.Searcher = (*Searcher)(nil)

// New returns a reflex searcher using scorer to evaluate the successors. If scorer is nil, ai.ShortHorizon is used.
func New(scorer ai.ValueScorer) *Searcher {
	if scorer == nil {
		scorer = ai.ShortHorizon
	}
	return &Searcher{
		scorer: scorer,
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// WithRand sets the random number generator used to break ties. Use it to make the searcher reproducible.
func (r *Searcher) WithRand(rng *rand.Rand) *Searcher {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rng = rng
	return r
}

// String implements searchers.Searcher.
func (r *Searcher) String() string {
	return fmt.Sprintf("reflex(eval=%s)", r.scorer)
}

// Search implements searchers.Searcher.
func (r *Searcher) Search(s state.GameState) (action state.Action, score float64, err error) {
	if state.IsTerminal(s) {
		return state.Stop, r.scorer.Score(s), nil
	}
	actions := s.LegalActions(0)
	if len(actions) == 0 {
		return state.Stop, r.scorer.Score(s), nil
	}
	scores := make([]float64, len(actions))
	for ii, action := range actions {
		successor, err := s.GenerateSuccessor(0, action)
		if err != nil {
			return state.Stop, 0, errors.WithMessagef(err, "reflex searcher evaluating %s", action)
		}
		scores[ii] = r.scorer.Score(successor)
	}

	best := generics.ArgMax(scores)
	r.mu.Lock()
	choice := best[r.rng.IntN(len(best))]
	r.mu.Unlock()
	if klog.V(2).Enabled() {
		klog.Infof("%s: scores=%v, %d best, chose %s", r, scores, len(best), actions[choice])
	}
	return actions[choice], scores[choice], nil
}
