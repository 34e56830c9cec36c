package players

import (
	"github.com/janpfeifer/must"
	"github.com/janpfeifer/pacmanGo/internal/ai"
	"github.com/janpfeifer/pacmanGo/internal/ai/linear"
	"github.com/janpfeifer/pacmanGo/internal/features"
	"github.com/janpfeifer/pacmanGo/internal/state"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestParseConfig(t *testing.T) {
	cfg := must.M1(ParseConfig(""))
	assert.Equal(t, "alphabeta,depth=2,eval=better", cfg.String())
	assert.Equal(t, linear.Better, cfg.Scorer())

	// Deep searches evaluate leaves with the game score, unless configured otherwise.
	cfg = must.M1(ParseConfig("minimax"))
	want := DefaultConfig()
	want.Variant = MiniMax
	assert.Equal(t, want, cfg)
	assert.Equal(t, EvalScore, cfg.Eval)
	assert.Equal(t, ai.ScoreEvaluation.String(), cfg.Scorer().String())

	cfg = must.M1(ParseConfig("expectimax, depth=3, parallelism=4, eval=better"))
	assert.Equal(t, ExpectiMax, cfg.Variant)
	assert.Equal(t, 3, cfg.Depth)
	assert.Equal(t, 4, cfg.Parallelism)
	assert.Equal(t, EvalBetter, cfg.Eval)
	assert.Equal(t, linear.Better, cfg.Scorer())

	cfg = must.M1(ParseConfig("minimax,eval=score"))
	assert.Equal(t, MiniMax, cfg.Variant)
	assert.Equal(t, ai.ScoreEvaluation.String(), cfg.Scorer().String())

	// Reflex defaults to the short horizon evaluation.
	cfg = must.M1(ParseConfig("reflex,seed=17"))
	assert.Equal(t, Reflex, cfg.Variant)
	assert.Equal(t, EvalShortHorizon, cfg.Eval)
	assert.Equal(t, uint64(17), cfg.Seed)
	assert.Equal(t, "short_horizon", cfg.Scorer().String())

	cfg = must.M1(ParseConfig("alphabeta,eval=better,w_ghost=-500,w_bias=3"))
	require.NotNil(t, cfg.Weights)
	assert.Equal(t, -500.0, cfg.Weights.Weight(features.IdInverseNearestGhostDistance))
	assert.Equal(t, 3.0, cfg.Weights.Bias())
	assert.Equal(t, -10.0, cfg.Weights.Weight(features.IdNearestFoodDistance))
	assert.Equal(t, "better(custom)", cfg.Scorer().String())
}

func TestParseConfigErrors(t *testing.T) {
	for _, config := range []string{
		"minimax,alphabeta",
		"minimax=1",
		"alphabeta,depth=0",
		"alphabeta,depth=-2",
		"alphabeta,depth=two",
		"expectimax,parallelism=0",
		"minimax,eval=foo",
		"alphabeta,max_depth=3",
		"alphabeta,eval=score,w_food=-1",
		"alphabeta,eval=better,w_food=many",
		"alphabeta,w_food=-1",
		"reflex,seed=-1",
		"reflex,seed=lucky",
	} {
		_, err := ParseConfig(config)
		require.Errorf(t, err, "config %q should have failed", config)
		assert.Truef(t, errors.Is(err, ErrConfiguration), "config %q: error %v doesn't wrap ErrConfiguration", config, err)
	}

	_, err := NewFromConfig(Config{Variant: MiniMax, Depth: 2, Eval: EvalScore, Parallelism: 0})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestEnums(t *testing.T) {
	for v := range NumVariants {
		assert.Equal(t, v, must.M1(ParseVariant(v.String())))
	}
	for e := range NumEvalKinds {
		assert.Equal(t, e, must.M1(ParseEvalKind(e.String())))
	}
	assert.Equal(t, "Variant(7)", Variant(7).String())
	assert.False(t, Reflex.IsDeep())
	assert.True(t, ExpectiMax.IsDeep())
}

const lastFoodLayout = `
%%%%%%%
%.P  G%
%%%%%%%`

func TestChooseAction(t *testing.T) {
	for _, config := range []string{
		"minimax,depth=1,eval=score",
		"alphabeta",
		"alphabeta,depth=3,parallelism=3",
		"expectimax,eval=short_horizon",
		"reflex,seed=1",
	} {
		player := must.M1(New(config))
		maze := must.M1(state.NewMazeFromLayout(lastFoodLayout))
		action, score, err := player.Play(maze)
		require.NoError(t, err, config)
		assert.Equalf(t, state.West, action, "config %q", config)
		assert.Greaterf(t, score, 0.0, "config %q", config)

		// Terminal state.
		next := must.M1(maze.GenerateSuccessor(0, state.West))
		require.True(t, next.IsWin())
		action, err = player.ChooseAction(next)
		require.NoError(t, err)
		assert.Equal(t, state.Stop, action)

		player.Finalize()
		assert.Nil(t, player.Searcher)
	}
}

func TestAvoidsDeath(t *testing.T) {
	// Going for the food at East gets Pacman caught: the ghost comes down the corridor.
	maze := must.M1(state.NewMazeFromLayout(`
%%%%%%%
%%%%G%%
%.  P.%
%%%%%%%`))
	for _, config := range []string{"minimax,depth=2", "alphabeta,depth=2", "expectimax,depth=2"} {
		player := must.M1(New(config))
		action, _, err := player.Play(maze)
		require.NoError(t, err)
		assert.NotEqualf(t, state.East, action, "config %q", config)
	}
}
