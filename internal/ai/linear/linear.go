// Package linear implements a linear scorer over the features of package features: one weight
// per feature, plus a bias.
//
// The weights are fixed at construction time, there is no training.
package linear

import (
	"fmt"
	"github.com/janpfeifer/pacmanGo/internal/ai"
	"github.com/janpfeifer/pacmanGo/internal/features"
	"github.com/janpfeifer/pacmanGo/internal/parameters"
	"github.com/janpfeifer/pacmanGo/internal/state"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
	"log"
	"slices"
	"strings"
)

// Scorer is a linear model (one weight per feature + bias) on the feature set.
// It implements ai.ValueScorer.
type Scorer struct {
	name    string
	weights []float64
}

var (
	// Assert Scorer is an ai.ValueScorer.
	_ ai.ValueScorer = (*Scorer)(nil)

	// Better is the hand-tuned feature weighted evaluation function: the intrinsic score dominates,
	// getting close to food is mildly rewarded, getting close to a ghost strongly penalized and
	// leaving capsules uneaten mildly penalized.
	Better = NewWithWeights(
		// Score
		100,
		// NearestFoodDistance
		-10,
		// InverseNearestGhostDistance
		-50,
		// NumCapsules
		-20,
		// Bias: *Must always be last*
		0,
	).WithName("better")
)

// FeatureWeightedScore scores the state with the Better weights.
func FeatureWeightedScore(s state.GameState) float64 {
	return Better.Score(s)
}

// NewWithWeights creates a new Scorer with the given weights: one per feature, in the order of features.Specs,
// followed by the bias.
// Ownership of the weights is transferred.
func NewWithWeights(weights ...float64) *Scorer {
	if len(weights) != int(features.NumFeatures)+1 {
		log.Panicf("linear.NewWithWeights: got %d weights, wanted %d (+1 bias)", len(weights), features.NumFeatures)
	}
	return &Scorer{name: "linear", weights: weights}
}

// WithName sets the name of the scorer, returned by String. It returns itself.
func (s *Scorer) WithName(name string) *Scorer {
	s.name = name
	return s
}

// Clone returns a deep copy of the scorer.
func (s *Scorer) Clone() *Scorer {
	return &Scorer{name: s.name, weights: slices.Clone(s.weights)}
}

// String implements ai.ValueScorer.
func (s *Scorer) String() string {
	return s.name
}

// Weight returns the weight for the given feature.
func (s *Scorer) Weight(id features.Id) float64 {
	return s.weights[id]
}

// Bias returns the bias term of the model.
func (s *Scorer) Bias() float64 {
	return s.weights[len(s.weights)-1]
}

// Score implements ai.ValueScorer.
func (s *Scorer) Score(gameState state.GameState) float64 {
	return s.ScoreFeatures(features.Vector(gameState))
}

// ScoreFeatures is like Score, but it takes the raw features as input.
func (s *Scorer) ScoreFeatures(f []float64) float64 {
	if len(s.weights)-1 != len(f) {
		log.Panicf("Features dimension is %d, but weights dimension is %d (+1 bias)",
			len(f), len(s.weights)-1)
	}
	// Sum starts with bias.
	sum := s.Bias()
	for ii, feature := range f {
		sum += feature * s.weights[ii]
	}
	return sum
}

// AsGoCode outputs the model as Go code describing the weights for each feature.
func (s *Scorer) AsGoCode() string {
	parts := make([]string, 0, 2*len(s.weights)+1)
	parts = append(parts, "linear.NewWithWeights(")
	for _, spec := range features.Specs {
		parts = append(parts, fmt.Sprintf("\n\t// %s\n\t%g,", spec.Name, s.weights[spec.Id]))
	}
	parts = append(parts, fmt.Sprintf("\n\t// Bias\n\t%g,\n)", s.Bias()))
	return strings.Join(parts, "")
}

// paramKeys maps the configuration keys to the feature whose weight they override.
var paramKeys = map[string]features.Id{
	"w_score":   features.IdScore,
	"w_food":    features.IdNearestFoodDistance,
	"w_ghost":   features.IdInverseNearestGhostDistance,
	"w_capsule": features.IdNumCapsules,
}

// NewFromParams returns a copy of Better with the weights overridden by the parameters
// "w_score", "w_food", "w_ghost", "w_capsule" and "w_bias", if present. The parameters used are
// removed from params.
func NewFromParams(params parameters.Params) (*Scorer, error) {
	scorer := Better.Clone()
	customized := false
	for key, id := range paramKeys {
		if _, found := params[key]; !found {
			continue
		}
		w, err := parameters.PopParamOr(params, key, scorer.weights[id])
		if err != nil {
			return nil, errors.WithMessagef(err, "linear scorer")
		}
		scorer.weights[id] = w
		customized = true
	}
	if _, found := params["w_bias"]; found {
		bias, err := parameters.PopParamOr(params, "w_bias", scorer.Bias())
		if err != nil {
			return nil, errors.WithMessagef(err, "linear scorer")
		}
		scorer.weights[len(scorer.weights)-1] = bias
		customized = true
	}
	if customized {
		scorer.name = "better(custom)"
		klog.V(1).Infof("Customized linear scorer: %s", scorer.AsGoCode())
	}
	return scorer, nil
}
