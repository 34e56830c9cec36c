package ghosts

import (
	"github.com/janpfeifer/must"
	"github.com/janpfeifer/pacmanGo/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"math/rand/v2"
	"testing"
)

const layout = `
%%%%%%%
%PoG  %
%%% %%%
%%%%%%%`

func TestBestActions(t *testing.T) {
	maze := must.M1(state.NewMazeFromLayout(layout))
	assert.Equal(t, []state.Action{state.West}, BestActions(maze, 1))

	// After eating the capsule, the ghost is scared and runs away.
	scared := must.M1(maze.GenerateSuccessor(0, state.East))
	require.True(t, scared.GhostStates()[0].IsScared())
	assert.Equal(t, []state.Action{state.South, state.East}, BestActions(scared, 1))
}

func TestDirectional(t *testing.T) {
	maze := must.M1(state.NewMazeFromLayout(layout))
	ghost := NewDirectional(rand.New(rand.NewPCG(1, 1)))
	ghost.ProbAttack = 1
	for range 10 {
		assert.Equal(t, state.West, must.M1(ghost.Act(maze, 1)))
	}

	ghost = NewDirectional(rand.New(rand.NewPCG(1, 2)))
	counts := make(map[state.Action]int)
	for range 1000 {
		counts[must.M1(ghost.Act(maze, 1))]++
	}
	// West: 0.8 + 0.2/3.
	assert.Greater(t, counts[state.West], 800)
	assert.Greater(t, counts[state.South], 20)
	assert.Greater(t, counts[state.East], 20)

	_, err := ghost.Act(maze, 0)
	require.Error(t, err)
}

func TestRandom(t *testing.T) {
	maze := must.M1(state.NewMazeFromLayout(layout))
	ghost := must.M1(New("random", rand.New(rand.NewPCG(3, 3))))
	assert.Equal(t, "random", ghost.String())
	counts := make(map[state.Action]int)
	for range 300 {
		counts[must.M1(ghost.Act(maze, 1))]++
	}
	assert.Len(t, counts, 3)
	for action, count := range counts {
		assert.Greaterf(t, count, 50, "action %s", action)
	}

	// No moves.
	trapped := must.M1(state.NewMazeFromLayout("%%%%%\n%P%G%\n%%%%%"))
	assert.Equal(t, state.Stop, must.M1(ghost.Act(trapped, 1)))

	_, err := New("pinky", nil)
	require.Error(t, err)
}
