package parameters

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestNewFromConfigString(t *testing.T) {
	params := NewFromConfigString(" alphabeta, depth=3,,eval = better,expr=a=b")
	assert.Equal(t, Params{"alphabeta": "", "depth": "3", "eval": "better", "expr": "a=b"}, params)
	assert.Empty(t, NewFromConfigString(""))
}

func TestGetAndPop(t *testing.T) {
	params := NewFromConfigString("ab,depth=3,w=0.5,name=x,verbose=false")

	depth, err := PopParamOr(params, "depth", 2)
	require.NoError(t, err)
	assert.Equal(t, 3, depth)
	assert.NotContains(t, params, "depth")

	w, err := GetParamOr(params, "w", 1.0)
	require.NoError(t, err)
	assert.Equal(t, 0.5, w)
	assert.Contains(t, params, "w")

	ab, err := PopParamOr(params, "ab", false)
	require.NoError(t, err)
	assert.True(t, ab)

	verbose, err := PopParamOr(params, "verbose", true)
	require.NoError(t, err)
	assert.False(t, verbose)

	missing, err := GetParamOr(params, "missing", "default")
	require.NoError(t, err)
	assert.Equal(t, "default", missing)

	_, err = GetParamOr(params, "name", 1)
	assert.Error(t, err)

	err = CheckAllUsed(params)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"name", "w"`)
}

func TestPopFlags(t *testing.T) {
	params := NewFromConfigString("minimax,expectimax,depth=2")
	found, err := PopFlags(params, "alphabeta", "expectimax", "minimax")
	require.NoError(t, err)
	assert.Equal(t, []string{"expectimax", "minimax"}, found)
	assert.NoError(t, CheckAllUsed(Params{}))
	assert.Equal(t, Params{"depth": "2"}, params)

	_, err = PopFlags(NewFromConfigString("minimax=yes"), "minimax")
	assert.Error(t, err)
}
