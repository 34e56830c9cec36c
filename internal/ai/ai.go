// Package ai (Artificial Intelligence) defines the interface of evaluation functions (scorers) used
// by the searchers, and the simple scorers that don't need any configuration.
//
// Scores are from the point of view of Pacman (agent 0): higher is better.
package ai

import (
	"github.com/janpfeifer/pacmanGo/internal/features"
	"github.com/janpfeifer/pacmanGo/internal/state"
)

// ValueScorer returns a score (value) for a given state. Implementations must be pure and
// safe for concurrent use.
type ValueScorer interface {
	Score(s state.GameState) float64
	String() string
}

// ScorerFunc adapts a function to a ValueScorer.
type ScorerFunc struct {
	Name string
	Fn   func(s state.GameState) float64
}

// Assert ScorerFunc is a ValueScorer.
var _ ValueScorer = ScorerFunc{}

// Score implements ValueScorer.
func (f ScorerFunc) Score(s state.GameState) float64 { return f.Fn(s) }

// String implements ValueScorer.
func (f ScorerFunc) String() string { return f.Name }

// NewScorerFunc creates a named ValueScorer from a function.
func NewScorerFunc(name string, fn func(s state.GameState) float64) ScorerFunc {
	return ScorerFunc{Name: name, Fn: fn}
}

var (
	// ScoreEvaluation simply returns the intrinsic score of the state. It's the default evaluation function
	// for the searchers.
	ScoreEvaluation = NewScorerFunc("score", ScoreOf)

	// ShortHorizon is ShortHorizonScore as a ValueScorer.
	ShortHorizon = NewScorerFunc("short_horizon", ShortHorizonScore)
)

// ScoreOf returns the intrinsic score of the state.
func ScoreOf(s state.GameState) float64 {
	return s.Score()
}

const (
	// GhostDangerPenalty is subtracted by ShortHorizonScore when a dangerous ghost is next to Pacman.
	GhostDangerPenalty = 1000

	// GhostDangerDistance is the manhattan distance under which a dangerous ghost triggers GhostDangerPenalty.
	GhostDangerDistance = 2
)

// ShortHorizonScore is meant to score the state right after a Pacman move: the intrinsic score,
// plus 1/d for the distance d to the nearest food (if any food is left and d > 0), minus
// GhostDangerPenalty if any ghost that is not scared is closer than GhostDangerDistance.
//
// Ties between actions are not handled here: see the reflex searcher.
func ShortHorizonScore(s state.GameState) float64 {
	score := s.Score()
	if d, found := features.NearestFoodDistance(s); found && d > 0 {
		score += 1.0 / float64(d)
	}
	if features.ThreateningGhosts(s, GhostDangerDistance) > 0 {
		score -= GhostDangerPenalty
	}
	return score
}
