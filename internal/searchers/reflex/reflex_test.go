package reflex

import (
	"github.com/janpfeifer/pacmanGo/internal/ai"
	"github.com/janpfeifer/pacmanGo/internal/state"
	. "github.com/janpfeifer/pacmanGo/internal/state/statetest"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math/rand/v2"
	"testing"
)

func TestAvoidsGhost(t *testing.T) {
	maze := must.M1(state.NewMazeFromLayout(`
%%%%%%%
%. P G%
%%%%%%%`))
	searcher := New(nil)
	assert.Equal(t, "reflex(eval=short_horizon)", searcher.String())
	action, score, err := searcher.Search(maze)
	require.NoError(t, err)
	assert.Equal(t, state.West, action)
	assert.InDelta(t, 0.0, score, 1e-9)
}

func TestRandomTieBreak(t *testing.T) {
	root := NewTree(2, Inner(0, Leaf(5), Leaf(9), Leaf(9), Leaf(-3)))
	searcher := New(ai.ScoreEvaluation).WithRand(rand.New(rand.NewPCG(3, 5)))
	counts := make(map[state.Action]int)
	for range 200 {
		action, score, err := searcher.Search(root)
		require.NoError(t, err)
		assert.Equal(t, 9.0, score)
		counts[action]++
	}
	assert.Len(t, counts, 2)
	assert.Greater(t, counts[state.South], 50)
	assert.Greater(t, counts[state.East], 50)

	// Same seed, same choices.
	s1 := New(ai.ScoreEvaluation).WithRand(rand.New(rand.NewPCG(7, 7)))
	s2 := New(ai.ScoreEvaluation).WithRand(rand.New(rand.NewPCG(7, 7)))
	for range 20 {
		a1, _, _ := s1.Search(root)
		a2, _, _ := s2.Search(root)
		require.Equal(t, a1, a2)
	}
}

func TestDegenerate(t *testing.T) {
	action, score, err := New(ai.ScoreEvaluation).Search(NewTree(2, &Node{Value: -8, Lose: true}))
	require.NoError(t, err)
	assert.Equal(t, state.Stop, action)
	assert.Equal(t, -8.0, score)

	action, score, err = New(ai.ScoreEvaluation).Search(NewTree(2, Leaf(4)))
	require.NoError(t, err)
	assert.Equal(t, state.Stop, action)
	assert.Equal(t, 4.0, score)
}
