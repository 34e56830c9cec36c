// Package features extracts the features of a game state used by the evaluation functions.
//
// Features are organized as a table (Specs) of named entries, and concatenated in a vector by Vector.
package features

import (
	"fmt"
	"github.com/janpfeifer/pacmanGo/internal/state"
	"log"
	"math"
	"strings"
)

// Id represents an enum of state features.
type Id uint8

// Setter computes one feature of the state.
type Setter func(s state.GameState) float64

const (
	// IdScore is the intrinsic score of the state.
	IdScore Id = iota

	// IdNearestFoodDistance is the manhattan distance from Pacman to the nearest food, 0 if there is no food left.
	IdNearestFoodDistance

	// IdInverseNearestGhostDistance is 1/d, where d is the manhattan distance from Pacman to the nearest ghost.
	// It is 0 if d is 0 or if there are no ghosts. Scared ghosts are included.
	IdInverseNearestGhostDistance

	// IdNumCapsules is the number of remaining capsules.
	IdNumCapsules

	// NumFeatures defined -- this must always be the last enum.
	NumFeatures
)

// Spec includes the feature name and index in the feature vector.
type Spec struct {
	Id     Id
	Name   string
	Setter Setter
}

var (
	// Specs enumerates in order the features extracted by Vector.
	Specs = [NumFeatures]Spec{
		{IdScore, "Score", state.GameState.Score},
		{IdNearestFoodDistance, "NearestFoodDistance", fNearestFoodDistance},
		{IdInverseNearestGhostDistance, "InverseNearestGhostDistance", fInverseNearestGhostDistance},
		{IdNumCapsules, "NumCapsules", fNumCapsules},
	}
)

func init() {
	for ii := range Specs {
		if Specs[ii].Id != Id(ii) {
			log.Fatalf("features.Specs index %d for %s doesn't match constant.", ii, Specs[ii].Name)
		}
	}
}

// String returns the feature name.
func (id Id) String() string {
	if id >= NumFeatures {
		return fmt.Sprintf("Feature(%d)", id)
	}
	return Specs[id].Name
}

// Vector returns the features of the state, indexed by Id.
func Vector(s state.GameState) []float64 {
	f := make([]float64, NumFeatures)
	for ii, spec := range Specs {
		f[ii] = spec.Setter(s)
	}
	return f
}

// PrettyPrint returns a multi-line description of a feature vector.
func PrettyPrint(f []float64) string {
	var sb strings.Builder
	for ii, value := range f {
		if ii < int(NumFeatures) {
			fmt.Fprintf(&sb, "\t%s: %g\n", Specs[ii].Name, value)
		} else {
			fmt.Fprintf(&sb, "\t#%d: %g\n", ii, value)
		}
	}
	return sb.String()
}

// NearestDistance returns the smallest manhattan distance from pos to any of the targets, and
// false if targets is empty.
func NearestDistance(pos state.Pos, targets []state.Pos) (int, bool) {
	if len(targets) == 0 {
		return 0, false
	}
	best := math.MaxInt
	for _, target := range targets {
		best = min(best, pos.Distance(target))
	}
	return best, true
}

// NearestFoodDistance returns the distance from Pacman to the nearest food, and false if there is no food.
func NearestFoodDistance(s state.GameState) (int, bool) {
	return NearestDistance(s.PacmanPosition(), s.Food())
}

// NearestGhostDistance returns the distance from Pacman to the nearest ghost (scared or not), and false if
// there are no ghosts.
func NearestGhostDistance(s state.GameState) (int, bool) {
	ghosts := s.GhostStates()
	positions := make([]state.Pos, len(ghosts))
	for ii, ghost := range ghosts {
		positions[ii] = ghost.Pos
	}
	return NearestDistance(s.PacmanPosition(), positions)
}

// ThreateningGhosts counts the ghosts that are not scared and are closer than maxDistance to Pacman.
func ThreateningGhosts(s state.GameState, maxDistance int) int {
	pacman := s.PacmanPosition()
	count := 0
	for _, ghost := range s.GhostStates() {
		if !ghost.IsScared() && pacman.Distance(ghost.Pos) < maxDistance {
			count++
		}
	}
	return count
}

func fNearestFoodDistance(s state.GameState) float64 {
	d, _ := NearestFoodDistance(s)
	return float64(d)
}

func fInverseNearestGhostDistance(s state.GameState) float64 {
	d, found := NearestGhostDistance(s)
	if !found || d == 0 {
		return 0
	}
	return 1.0 / float64(d)
}

func fNumCapsules(s state.GameState) float64 {
	return float64(len(s.Capsules()))
}
