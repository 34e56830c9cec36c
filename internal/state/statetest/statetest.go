// Package statetest provides helper GameState implementations to test searchers and evaluators.
//
//   - Node is a hand-built (or randomly generated) game tree, where each node's Score is given explicitly.
//   - Recorder wraps any GameState and logs which agents moved, and along which path.
//   - Features is a fixed GameState, for evaluation function tests.
package statetest

import (
	"github.com/janpfeifer/pacmanGo/internal/state"
	"github.com/pkg/errors"
	"math/rand/v2"
	"sync"
)

// Node of an explicit game tree. The i-th child is reached with state.Actions[i], regardless of
// which agent is moving, so a node has at most state.NumActions children.
type Node struct {
	Value     float64
	Win, Lose bool
	Children  []*Node

	numAgents int
}

// Assert Node is a state.GameState.
var _ state.GameState = (*Node)(nil)

// Leaf creates a node without children with the given value.
func Leaf(value float64) *Node {
	return &Node{Value: value}
}

// Inner creates a node with the given children. Its own value is only used if it's evaluated at a cutoff.
func Inner(value float64, children ...*Node) *Node {
	return &Node{Value: value, Children: children}
}

// NewTree sets the number of agents on every node of the tree rooted at root, and returns root.
func NewTree(numAgents int, root *Node) *Node {
	root.numAgents = numAgents
	for _, child := range root.Children {
		NewTree(numAgents, child)
	}
	return root
}

// RandomTree generates a tree that cycles numAgents agents for depth rounds. Values are uniform in [-100, 100),
// each node has 1 to maxBranching children, and non-root nodes are terminal with probability pTerminal
// and childless (but not terminal) with probability pNoMoves.
func RandomTree(rng *rand.Rand, numAgents, depth, maxBranching int, pTerminal, pNoMoves float64) *Node {
	var build func(level int, isRoot bool) *Node
	build = func(level int, isRoot bool) *Node {
		n := &Node{Value: float64(rng.IntN(200) - 100), numAgents: numAgents}
		if level == 0 {
			return n
		}
		if !isRoot {
			if rng.Float64() < pTerminal {
				if rng.IntN(2) == 0 {
					n.Win = true
				} else {
					n.Lose = true
				}
				return n
			}
			if rng.Float64() < pNoMoves {
				return n
			}
		}
		numChildren := 1 + rng.IntN(min(maxBranching, int(state.NumActions)))
		n.Children = make([]*Node, numChildren)
		for ii := range n.Children {
			n.Children[ii] = build(level-1, false)
		}
		return n
	}
	return build(depth*numAgents, true)
}

// IsWin implements state.GameState.
func (n *Node) IsWin() bool { return n.Win }

// IsLose implements state.GameState.
func (n *Node) IsLose() bool { return n.Lose }

// NumAgents implements state.GameState.
func (n *Node) NumAgents() int { return n.numAgents }

// Score implements state.GameState.
func (n *Node) Score() float64 { return n.Value }

// LegalActions implements state.GameState.
func (n *Node) LegalActions(agentIdx int) []state.Action {
	return append([]state.Action(nil), state.Actions[:len(n.Children)]...)
}

// GenerateSuccessor implements state.GameState.
func (n *Node) GenerateSuccessor(agentIdx int, action state.Action) (state.GameState, error) {
	if int(action) >= len(n.Children) {
		return nil, errors.Wrapf(state.ErrInvalidAction, "action %s on node with %d children", action, len(n.Children))
	}
	return n.Children[action], nil
}

// PacmanPosition implements state.GameState.
func (n *Node) PacmanPosition() state.Pos { return state.Pos{} }

// Food implements state.GameState.
func (n *Node) Food() []state.Pos { return nil }

// Capsules implements state.GameState.
func (n *Node) Capsules() []state.Pos { return nil }

// GhostStates implements state.GameState.
func (n *Node) GhostStates() []state.AgentState { return nil }

// Log of the moves generated from a Recorder and its successors. It's safe for concurrent use.
type Log struct {
	mu sync.Mutex

	// Moves lists the agent index of every GenerateSuccessor call, in call order.
	Moves []int

	// PerAgent counts GenerateSuccessor calls per agent index.
	PerAgent map[int]int

	// LegalActionsCalls counts LegalActions calls per agent index.
	LegalActionsCalls map[int]int
}

// Recorder wraps a GameState and records the moves generated from it and from all its successors.
type Recorder struct {
	state.GameState

	// Log is shared by the whole recorded tree.
	Log *Log

	// Path is the sequence of agent indices that moved from the root to reach this state.
	Path []int
}

// NewRecorder wraps s with a new empty Log.
func NewRecorder(s state.GameState) *Recorder {
	return &Recorder{
		GameState: s,
		Log:       &Log{PerAgent: make(map[int]int), LegalActionsCalls: make(map[int]int)},
	}
}

// LegalActions implements state.GameState.
func (r *Recorder) LegalActions(agentIdx int) []state.Action {
	r.Log.mu.Lock()
	r.Log.LegalActionsCalls[agentIdx]++
	r.Log.mu.Unlock()
	return r.GameState.LegalActions(agentIdx)
}

// GenerateSuccessor implements state.GameState.
func (r *Recorder) GenerateSuccessor(agentIdx int, action state.Action) (state.GameState, error) {
	next, err := r.GameState.GenerateSuccessor(agentIdx, action)
	if err != nil {
		return nil, err
	}
	r.Log.mu.Lock()
	r.Log.Moves = append(r.Log.Moves, agentIdx)
	r.Log.PerAgent[agentIdx]++
	r.Log.mu.Unlock()
	path := make([]int, len(r.Path), len(r.Path)+1)
	copy(path, r.Path)
	return &Recorder{GameState: next, Log: r.Log, Path: append(path, agentIdx)}, nil
}

// Features is a fixed, move-less GameState, used to test evaluation functions.
type Features struct {
	Pacman            state.Pos
	FoodPos, CapsPos  []state.Pos
	Ghosts            []state.AgentState
	IntrinsicScore    float64
	IsWinning, Losing bool
}

// Assert Features is a state.GameState.
var _ state.GameState = (*Features)(nil)

// IsWin implements state.GameState.
func (f *Features) IsWin() bool { return f.IsWinning }

// IsLose implements state.GameState.
func (f *Features) IsLose() bool { return f.Losing }

// LegalActions implements state.GameState.
func (f *Features) LegalActions(int) []state.Action { return nil }

// GenerateSuccessor implements state.GameState.
func (f *Features) GenerateSuccessor(agentIdx int, action state.Action) (state.GameState, error) {
	return nil, errors.Wrapf(state.ErrInvalidAction, "statetest.Features has no moves (agent %d, action %s)", agentIdx, action)
}

// NumAgents implements state.GameState.
func (f *Features) NumAgents() int { return 1 + len(f.Ghosts) }

// PacmanPosition implements state.GameState.
func (f *Features) PacmanPosition() state.Pos { return f.Pacman }

// Food implements state.GameState.
func (f *Features) Food() []state.Pos { return f.FoodPos }

// Capsules implements state.GameState.
func (f *Features) Capsules() []state.Pos { return f.CapsPos }

// GhostStates implements state.GameState.
func (f *Features) GhostStates() []state.AgentState { return f.Ghosts }

// Score implements state.GameState.
func (f *Features) Score() float64 { return f.IntrinsicScore }
