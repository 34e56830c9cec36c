package state_test

import (
	"github.com/janpfeifer/must"
	. "github.com/janpfeifer/pacmanGo/internal/state"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func successor(t *testing.T, s GameState, agentIdx int, action Action) *Maze {
	next, err := s.GenerateSuccessor(agentIdx, action)
	require.NoError(t, err)
	return next.(*Maze)
}

func TestActions(t *testing.T) {
	assert.Equal(t, "North", North.String())
	assert.Equal(t, South, North.Reverse())
	assert.Equal(t, West, East.Reverse())
	assert.Equal(t, Stop, Stop.Reverse())
	assert.Equal(t, Pos{0, 1}, North.Delta())
	a, err := ParseAction("West")
	require.NoError(t, err)
	assert.Equal(t, West, a)
	_, err = ParseAction("Up")
	assert.Error(t, err)
}

func TestPos(t *testing.T) {
	assert.Equal(t, 5, Pos{1, 2}.Distance(Pos{-1, 5}))
	assert.Equal(t, 0, Pos{3, 3}.Distance(Pos{3, 3}))
	positions := []Pos{{2, 1}, {0, 1}, {5, 0}}
	SortPositions(positions)
	assert.Equal(t, []Pos{{5, 0}, {0, 1}, {2, 1}}, positions)
}

func TestParseLayout(t *testing.T) {
	layout := "%%%%%\n" +
		"%P.o%\n" +
		"% %G%\n" +
		"%%%%%"
	m := must.M1(NewMazeFromLayout(layout))
	assert.Equal(t, 5, m.Width())
	assert.Equal(t, 4, m.Height())
	assert.Equal(t, 2, m.NumAgents())
	assert.Equal(t, Pos{1, 2}, m.PacmanPosition())
	assert.Equal(t, []Pos{{2, 2}}, m.Food())
	assert.Equal(t, []Pos{{3, 2}}, m.Capsules())
	assert.Equal(t, []AgentState{{Pos: Pos{3, 1}}}, m.GhostStates())
	assert.True(t, m.IsWall(Pos{0, 0}))
	assert.True(t, m.IsWall(Pos{-1, 7}))
	assert.False(t, m.IsWall(Pos{1, 1}))
	assert.Equal(t, layout, m.Layout())
	assert.Equal(t, 0.0, m.Score())
	assert.False(t, IsTerminal(m))

	// Legal actions in the canonical order.
	assert.Equal(t, []Action{South, East, Stop}, m.LegalActions(0))
	assert.Equal(t, []Action{North}, m.LegalActions(1))
	assert.Empty(t, m.LegalActions(2))
}

func TestParseLayoutErrors(t *testing.T) {
	for _, layout := range []string{
		"",
		"%%%\n%P%%\n%%%",
		"%%%\n% %\n%%%",
		"%%%%\n%PP%\n%%%%",
		"%%%\n%X%\n%P%",
	} {
		_, err := NewMazeFromLayout(layout)
		assert.Errorf(t, err, "layout %q should have failed", layout)
	}
}

func TestInvalidAction(t *testing.T) {
	m := must.M1(NewMazeFromLayout("%%%%\n%P.%\n%..%\n%%%%"))
	_, err := m.GenerateSuccessor(0, North)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidAction))

	// Ghost index out of range.
	_, err = m.GenerateSuccessor(1, North)
	assert.True(t, errors.Is(err, ErrInvalidAction))
}

func TestWin(t *testing.T) {
	m := must.M1(NewMazeFromLayout("%%%%\n%P.%\n%%%%"))
	next := successor(t, m, 0, East)
	assert.True(t, next.IsWin())
	assert.Equal(t, float64(-TimePenalty+FoodScore+WinScore), next.Score())
	assert.Empty(t, next.LegalActions(0))
	_, err := next.GenerateSuccessor(0, West)
	assert.True(t, errors.Is(err, ErrInvalidAction))

	// Original state is unchanged.
	assert.False(t, m.IsWin())
	assert.Equal(t, 1, m.NumFood())
	assert.Equal(t, 0.0, m.Score())
}

func TestLose(t *testing.T) {
	m := must.M1(NewMazeFromLayout("%%%%%\n%P G%\n%...%\n%%%%%"))
	assert.Equal(t, []Action{South, West}, m.LegalActions(1))
	m = successor(t, m, 0, East)
	assert.Equal(t, -1.0, m.Score())
	m = successor(t, m, 1, West)
	assert.True(t, m.IsLose())
	assert.Equal(t, float64(-TimePenalty-LosePenalty), m.Score())
	assert.Empty(t, m.LegalActions(0))
	assert.Equal(t, 2, m.MoveNumber())
}

func TestCapsuleAndEatingGhosts(t *testing.T) {
	m := must.M1(NewMazeFromLayout(
		"%%%%%%\n" +
			"%Po..%\n" +
			"%%%%G%\n" +
			"%%%%%%"))
	m = successor(t, m, 0, East)
	assert.Empty(t, m.Capsules())
	assert.Equal(t, ScaredTime, m.GhostStates()[0].ScaredTimer)

	m = successor(t, m, 1, North)
	assert.Equal(t, AgentState{Pos: Pos{4, 2}, ScaredTimer: ScaredTime - 1}, m.GhostStates()[0])

	m = successor(t, m, 0, East)
	assert.Equal(t, float64(-2*TimePenalty+FoodScore), m.Score())

	// Ghost can't reverse, so it must run into Pacman, and gets eaten.
	assert.Equal(t, []Action{West}, m.LegalActions(1))
	m = successor(t, m, 1, West)
	assert.False(t, m.IsLose())
	assert.Equal(t, float64(-2*TimePenalty+FoodScore+GhostEatScore), m.Score())
	assert.Equal(t, AgentState{Pos: Pos{4, 1}}, m.GhostStates()[0])
}
