// Package state defines the game state abstraction consumed by the searchers, along with the
// Pacman maze that implements it.
//
// Agent 0 is always Pacman (the maximizing agent), agents 1 to NumAgents()-1 are the ghosts.
package state

import (
	"fmt"
	"github.com/pkg/errors"
	"sort"
)

// Action is one of the moves an agent can take. It's drawn from a small fixed alphabet.
type Action uint8

const (
	North Action = iota
	South
	East
	West

	// Stop is the no-op action. It's also what searchers return when there is nothing sensible to do.
	Stop

	// NumActions is the number of valid actions.
	NumActions
)

var (
	actionNames = [NumActions]string{"North", "South", "East", "West", "Stop"}

	// Actions enumerates all actions, in the order they are listed as legal actions.
	Actions = [NumActions]Action{North, South, East, West, Stop}

	// actionDeltas is the position change caused by each action.
	actionDeltas = [NumActions]Pos{{0, 1}, {0, -1}, {1, 0}, {-1, 0}, {0, 0}}
)

// String returns the action name.
func (a Action) String() string {
	if a >= NumActions {
		return fmt.Sprintf("Action(%d)", a)
	}
	return actionNames[a]
}

// Reverse returns the opposite direction. Stop is its own reverse.
func (a Action) Reverse() Action {
	switch a {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	}
	return a
}

// Delta returns the change in position caused by the action.
func (a Action) Delta() Pos {
	return actionDeltas[a]
}

// ParseAction converts an action name (case-sensitive, as returned by Action.String) to an Action.
func ParseAction(name string) (Action, error) {
	for ii, n := range actionNames {
		if n == name {
			return Action(ii), nil
		}
	}
	return Stop, errors.Errorf("unknown action %q", name)
}

// Pos packages x, y position. Y grows to the North.
type Pos [2]int

// Add returns the sum of two positions.
func (pos Pos) Add(delta Pos) Pos {
	return Pos{pos[0] + delta[0], pos[1] + delta[1]}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Distance returns the manhattan distance of two positions.
func (pos Pos) Distance(pos2 Pos) int {
	return absInt(pos[0]-pos2[0]) + absInt(pos[1]-pos2[1])
}

// String returns a text representation of Pos.
func (pos Pos) String() string {
	return fmt.Sprintf("(%d, %d)", pos[0], pos[1])
}

// SortPositions sorts according to y first and then x.
func SortPositions(positions []Pos) {
	sort.Slice(positions, func(i, j int) bool {
		if positions[i][1] != positions[j][1] {
			return positions[i][1] < positions[j][1]
		}
		return positions[i][0] < positions[j][0]
	})
}

// AgentState is the public view of a ghost: where it is and for how long it remains scared.
type AgentState struct {
	Pos Pos

	// ScaredTimer is the number of ghost moves during which the ghost poses no threat.
	// Zero means the ghost is dangerous.
	ScaredTimer int
}

// IsScared returns whether the ghost is currently vulnerable.
func (a AgentState) IsScared() bool {
	return a.ScaredTimer > 0
}

// ErrInvalidAction is returned (wrapped) by GameState.GenerateSuccessor when the action is not
// currently legal for the agent.
var ErrInvalidAction = errors.New("invalid action")

// GameState is the view of the game that searchers and evaluation functions use.
//
// Implementations must be immutable: GenerateSuccessor returns a new state, and the receiver
// must remain unchanged.
type GameState interface {
	// IsWin returns whether Pacman won.
	IsWin() bool

	// IsLose returns whether Pacman lost.
	IsLose() bool

	// LegalActions for the agent. Empty if the agent has no moves.
	LegalActions(agentIdx int) []Action

	// GenerateSuccessor returns the state after agentIdx takes action.
	// It returns an error wrapping ErrInvalidAction if the action is not legal.
	GenerateSuccessor(agentIdx int, action Action) (GameState, error)

	// NumAgents including Pacman. Always >= 1.
	NumAgents() int

	// PacmanPosition is the position of agent 0.
	PacmanPosition() Pos

	// Food returns the positions of the remaining food.
	Food() []Pos

	// Capsules returns the positions of the remaining capsules.
	Capsules() []Pos

	// GhostStates returns one AgentState per ghost, ghost i+1 is at index i.
	GhostStates() []AgentState

	// Score is the intrinsic score of the state.
	Score() float64
}

// IsTerminal returns whether the state is a win or a loss.
func IsTerminal(s GameState) bool {
	return s.IsWin() || s.IsLose()
}
