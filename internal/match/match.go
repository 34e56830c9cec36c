// Package match runs Pacman matches: Pacman (a players.Player) against a set of ghost agents, on a maze.
package match

import (
	"context"
	"fmt"
	"github.com/janpfeifer/pacmanGo/internal/ghosts"
	"github.com/janpfeifer/pacmanGo/internal/players"
	"github.com/janpfeifer/pacmanGo/internal/state"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Result of a match.
type Result struct {
	// Win and Lose are both false if the match reached the max number of moves.
	Win, Lose bool

	Score float64

	// Moves is the number of agent moves played, counting Pacman and ghosts.
	Moves int

	// Final state of the maze.
	Final *state.Maze
}

// String implements fmt.Stringer.
func (r Result) String() string {
	outcome := "draw"
	if r.Win {
		outcome = "win"
	} else if r.Lose {
		outcome = "lose"
	}
	return fmt.Sprintf("%s, score=%g, moves=%d", outcome, r.Score, r.Moves)
}

// Observer is called after every move, with the agent that moved, its action and the resulting maze.
type Observer func(agentIdx int, action state.Action, maze *state.Maze)

type options struct {
	maxMoves int
	observer Observer
}

// Option configures Run.
type Option func(o *options)

// WithMaxMoves sets the maximum number of agent moves in the match. Default is state.DefaultMaxMoves.
func WithMaxMoves(maxMoves int) Option {
	return func(o *options) { o.maxMoves = maxMoves }
}

// WithObserver sets a function to be called after every move.
func WithObserver(observer Observer) Option {
	return func(o *options) { o.observer = observer }
}

// Run plays a match starting at maze until Pacman wins or loses, the maximum number of moves is reached,
// or ctx is cancelled. There must be exactly one ghost agent per ghost in the maze.
//
// The caller remains the owner of pacman: it's not finalized.
func Run(ctx context.Context, maze *state.Maze, pacman players.Player, ghostAgents []ghosts.Agent, opts ...Option) (Result, error) {
	o := &options{maxMoves: state.DefaultMaxMoves}
	for _, opt := range opts {
		opt(o)
	}
	if len(ghostAgents) != maze.NumAgents()-1 {
		return Result{}, errors.Errorf("maze has %d ghosts, but %d ghost agents were given", maze.NumAgents()-1, len(ghostAgents))
	}

	current := maze
	moves := 0
	for agentIdx := 0; !state.IsTerminal(current) && moves < o.maxMoves; agentIdx = (agentIdx + 1) % current.NumAgents() {
		if err := ctx.Err(); err != nil {
			return newResult(current, moves), errors.Wrapf(err, "match interrupted at move #%d", moves)
		}
		var action state.Action
		var err error
		if agentIdx == 0 {
			action, err = pacman.ChooseAction(current)
		} else {
			action, err = ghostAgents[agentIdx-1].Act(current, agentIdx)
		}
		if err != nil {
			return newResult(current, moves), errors.WithMessagef(err, "agent %d at move #%d", agentIdx, moves)
		}
		if len(current.LegalActions(agentIdx)) == 0 {
			// Nothing to play, the turn is skipped.
			continue
		}
		next, err := current.GenerateSuccessor(agentIdx, action)
		if err != nil {
			return newResult(current, moves), errors.WithMessagef(err, "agent %d at move #%d", agentIdx, moves)
		}
		current = next.(*state.Maze)
		moves++
		if o.observer != nil {
			o.observer(agentIdx, action, current)
		}
	}

	result := newResult(current, moves)
	if klog.V(1).Enabled() {
		klog.Infof("Match finished: %s", result)
	}
	return result, nil
}

func newResult(m *state.Maze, moves int) Result {
	return Result{
		Win:   m.IsWin(),
		Lose:  m.IsLose(),
		Score: m.Score(),
		Moves: moves,
		Final: m,
	}
}
