package linear

import (
	"github.com/janpfeifer/pacmanGo/internal/features"
	"github.com/janpfeifer/pacmanGo/internal/parameters"
	"github.com/janpfeifer/pacmanGo/internal/state"
	"github.com/janpfeifer/pacmanGo/internal/state/statetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

// scenario has Pacman at the origin, with food at distance foodDist and a dangerous ghost at distance ghostDist.
func scenario(score float64, foodDist, ghostDist, numCapsules int) *statetest.Features {
	s := &statetest.Features{
		IntrinsicScore: score,
		FoodPos:        []state.Pos{{foodDist, 0}},
		Ghosts:         []state.AgentState{{Pos: state.Pos{0, ghostDist}}},
	}
	for ii := range numCapsules {
		s.CapsPos = append(s.CapsPos, state.Pos{10, ii})
	}
	return s
}

func TestFeatureWeightedScore(t *testing.T) {
	// 100*0 - 10*4 - 50*(1/2) - 20*0
	assert.InDelta(t, -65.0, FeatureWeightedScore(scenario(0, 4, 2, 0)), 1e-9)

	// 100*3 - 10*1 - 50*(1/5) - 20*2
	assert.InDelta(t, 240.0, FeatureWeightedScore(scenario(3, 1, 5, 2)), 1e-9)

	// Ghost on top of Pacman contributes 0, no food contributes 0.
	s := scenario(1, 0, 0, 0)
	s.FoodPos = nil
	assert.InDelta(t, 100.0, FeatureWeightedScore(s), 1e-9)
}

func TestMonotonicity(t *testing.T) {
	// Closer ghost: strictly lower.
	prev := FeatureWeightedScore(scenario(0, 3, 10, 1))
	for ghostDist := 9; ghostDist >= 1; ghostDist-- {
		current := FeatureWeightedScore(scenario(0, 3, ghostDist, 1))
		assert.Lessf(t, current, prev, "ghost distance %d", ghostDist)
		prev = current
	}

	// Closer food: strictly higher.
	prev = FeatureWeightedScore(scenario(0, 10, 3, 1))
	for foodDist := 9; foodDist >= 1; foodDist-- {
		current := FeatureWeightedScore(scenario(0, foodDist, 3, 1))
		assert.Greaterf(t, current, prev, "food distance %d", foodDist)
		prev = current
	}
}

func TestScoreFeaturesAndAccessors(t *testing.T) {
	model := NewWithWeights(1, 2, 3, 4, 5)
	assert.Equal(t, 5.0, model.Bias())
	assert.Equal(t, 3.0, model.Weight(features.IdInverseNearestGhostDistance))
	assert.InDelta(t, 5.0+1+4+9+16, model.ScoreFeatures([]float64{1, 2, 3, 4}), 1e-9)
	assert.Panics(t, func() { model.ScoreFeatures([]float64{1}) })
	assert.Panics(t, func() { NewWithWeights(1, 2) })
	assert.Equal(t, "linear", model.String())
	assert.Contains(t, model.AsGoCode(), "// NumCapsules\n\t4,")

	clone := Better.Clone()
	clone.weights[0] = 0
	assert.Equal(t, 100.0, Better.Weight(features.IdScore))
}

func TestNewFromParams(t *testing.T) {
	params := parameters.NewFromConfigString("w_ghost=-500,w_bias=1,depth=2")
	scorer, err := NewFromParams(params)
	require.NoError(t, err)
	assert.Equal(t, -500.0, scorer.Weight(features.IdInverseNearestGhostDistance))
	assert.Equal(t, 100.0, scorer.Weight(features.IdScore))
	assert.Equal(t, 1.0, scorer.Bias())
	assert.Equal(t, "better(custom)", scorer.String())
	assert.Equal(t, parameters.Params{"depth": "2"}, params)

	// No overrides: same weights as Better.
	scorer, err = NewFromParams(parameters.Params{})
	require.NoError(t, err)
	assert.Equal(t, "better", scorer.String())
	assert.Equal(t, Better.weights, scorer.weights)

	_, err = NewFromParams(parameters.NewFromConfigString("w_food=far"))
	assert.Error(t, err)
}
