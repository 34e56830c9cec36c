// Package players provides a factory of Pacman AI players from configuration strings.
//
// A configuration string is a comma-separated list of parameters with optional values, e.g.
// "expectimax,depth=3,eval=better,parallelism=4". See New for the accepted parameters.
package players

import (
	"fmt"
	"github.com/janpfeifer/pacmanGo/internal/ai"
	"github.com/janpfeifer/pacmanGo/internal/ai/linear"
	"github.com/janpfeifer/pacmanGo/internal/state"
	"github.com/pkg/errors"
)

// Player is anything that is able to play Pacman (agent 0).
type Player interface {
	// Play returns the action chosen for Pacman and the score the player predicts for it.
	Play(s state.GameState) (action state.Action, score float64, err error)

	// ChooseAction is like Play, but only returns the action.
	ChooseAction(s state.GameState) (state.Action, error)

	// Finalize is called at the end of a match.
	Finalize()
}

// ErrConfiguration is returned (wrapped with the details) when a player can't be created from its configuration.
var ErrConfiguration = errors.New("invalid player configuration")

// configErrorf returns an error wrapping ErrConfiguration.
func configErrorf(format string, args ...any) error {
	return errors.Wrapf(ErrConfiguration, format, args...)
}

// Variant of the search algorithm used by a player.
type Variant int

const (
	MiniMax Variant = iota
	AlphaBeta
	ExpectiMax
	Reflex
	NumVariants
)

var variantNames = []string{"minimax", "alphabeta", "expectimax", "reflex"}

// String returns the name of the variant, as used in configuration strings.
func (v Variant) String() string {
	if v < 0 || v >= NumVariants {
		return fmt.Sprintf("Variant(%d)", int(v))
	}
	return variantNames[v]
}

// ParseVariant converts a name to a Variant.
func ParseVariant(name string) (Variant, error) {
	for ii, variantName := range variantNames {
		if name == variantName {
			return Variant(ii), nil
		}
	}
	return 0, configErrorf("unknown search variant %q, valid values are %q", name, variantNames)
}

// IsDeep returns whether the variant searches beyond Pacman's next move.
func (v Variant) IsDeep() bool {
	return v != Reflex
}

// EvalKind enumerates the evaluation functions a player can use to score states.
type EvalKind int

const (
	// EvalScore uses the intrinsic score of the state, see ai.ScoreEvaluation.
	EvalScore EvalKind = iota

	// EvalShortHorizon uses ai.ShortHorizonScore.
	EvalShortHorizon

	// EvalBetter uses the feature weighted linear scorer, linear.Better, or Config.Weights if set.
	EvalBetter

	NumEvalKinds
)

var evalKindNames = []string{"score", "short_horizon", "better"}

// String returns the name of the evaluation function, as used in configuration strings.
func (e EvalKind) String() string {
	if e < 0 || e >= NumEvalKinds {
		return fmt.Sprintf("EvalKind(%d)", int(e))
	}
	return evalKindNames[e]
}

// ParseEvalKind converts a name to an EvalKind.
func ParseEvalKind(name string) (EvalKind, error) {
	for ii, evalName := range evalKindNames {
		if name == evalName {
			return EvalKind(ii), nil
		}
	}
	return 0, configErrorf("unknown evaluation function %q, valid values are %q", name, evalKindNames)
}

// Config of a player.
type Config struct {
	Variant Variant

	// Depth of the search in rounds (Pacman followed by every ghost). Ignored by the Reflex variant.
	Depth int

	Eval EvalKind

	// Parallelism is the number of Pacman's root actions searched concurrently.
	Parallelism int

	// Weights used by EvalBetter. If nil, linear.Better is used.
	Weights *linear.Scorer

	// Seed for the Reflex variant tie-break. If 0 a random seed is used.
	Seed uint64
}

// DefaultConfig returns the configuration used for parameters not given.
func DefaultConfig() Config {
	return Config{
		Variant:     AlphaBeta,
		Depth:       2,
		Eval:        EvalScore,
		Parallelism: 1,
	}
}

// Validate returns an error wrapping ErrConfiguration if the configuration is invalid.
func (c Config) Validate() error {
	if c.Variant < 0 || c.Variant >= NumVariants {
		return configErrorf("invalid variant %s", c.Variant)
	}
	if c.Eval < 0 || c.Eval >= NumEvalKinds {
		return configErrorf("invalid evaluation function %s", c.Eval)
	}
	if c.Depth <= 0 {
		return configErrorf("depth must be > 0, got %d", c.Depth)
	}
	if c.Parallelism <= 0 {
		return configErrorf("parallelism must be > 0, got %d", c.Parallelism)
	}
	if c.Weights != nil && c.Eval != EvalBetter {
		return configErrorf("weights can only be used with eval=%s, got eval=%s", EvalBetter, c.Eval)
	}
	return nil
}

// Scorer returns the evaluation function selected by the configuration.
func (c Config) Scorer() ai.ValueScorer {
	switch c.Eval {
	case EvalScore:
		return ai.ScoreEvaluation
	case EvalShortHorizon:
		return ai.ShortHorizon
	default:
		if c.Weights != nil {
			return c.Weights
		}
		return linear.Better
	}
}

// String returns the configuration in the configuration string format.
func (c Config) String() string {
	s := fmt.Sprintf("%s,depth=%d,eval=%s", c.Variant, c.Depth, c.Eval)
	if c.Parallelism != 1 {
		s += fmt.Sprintf(",parallelism=%d", c.Parallelism)
	}
	if c.Seed != 0 {
		s += fmt.Sprintf(",seed=%d", c.Seed)
	}
	return s
}
