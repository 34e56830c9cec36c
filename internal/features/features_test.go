package features

import (
	"github.com/janpfeifer/pacmanGo/internal/state"
	"github.com/janpfeifer/pacmanGo/internal/state/statetest"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestVector(t *testing.T) {
	s := &statetest.Features{
		Pacman:         state.Pos{0, 0},
		FoodPos:        []state.Pos{{4, 0}, {1, 5}},
		CapsPos:        []state.Pos{{3, 3}},
		Ghosts:         []state.AgentState{{Pos: state.Pos{0, 2}}, {Pos: state.Pos{5, 5}, ScaredTimer: 3}},
		IntrinsicScore: 12,
	}
	f := Vector(s)
	assert.Len(t, f, int(NumFeatures))
	assert.Equal(t, 12.0, f[IdScore])
	assert.Equal(t, 4.0, f[IdNearestFoodDistance])
	assert.Equal(t, 0.5, f[IdInverseNearestGhostDistance])
	assert.Equal(t, 1.0, f[IdNumCapsules])
	assert.Contains(t, PrettyPrint(f), "NearestFoodDistance: 4")
	assert.Equal(t, "NumCapsules", IdNumCapsules.String())
}

func TestDegenerateDistances(t *testing.T) {
	// No food, ghost on top of Pacman.
	s := &statetest.Features{
		Pacman: state.Pos{2, 2},
		Ghosts: []state.AgentState{{Pos: state.Pos{2, 2}}},
	}
	f := Vector(s)
	assert.Equal(t, 0.0, f[IdNearestFoodDistance])
	assert.Equal(t, 0.0, f[IdInverseNearestGhostDistance])

	// No ghosts at all.
	s.Ghosts = nil
	_, found := NearestGhostDistance(s)
	assert.False(t, found)
	assert.Equal(t, 0.0, Vector(s)[IdInverseNearestGhostDistance])
}

func TestThreateningGhosts(t *testing.T) {
	s := &statetest.Features{
		Pacman: state.Pos{2, 2},
		Ghosts: []state.AgentState{
			{Pos: state.Pos{2, 3}},
			{Pos: state.Pos{2, 1}, ScaredTimer: 5},
			{Pos: state.Pos{4, 2}},
		},
	}
	assert.Equal(t, 1, ThreateningGhosts(s, 2))
	assert.Equal(t, 2, ThreateningGhosts(s, 3))
}
