package state

import (
	"github.com/janpfeifer/pacmanGo/internal/generics"
	"github.com/pkg/errors"
	"maps"
	"slices"
	"strings"
)

// Scoring and timing rules of the game.
const (
	// TimePenalty is subtracted from the score on every Pacman move.
	TimePenalty = 1

	// FoodScore is earned for each food eaten.
	FoodScore = 10

	// WinScore is earned when the last food is eaten.
	WinScore = 500

	// LosePenalty is subtracted when a dangerous ghost catches Pacman.
	LosePenalty = 500

	// GhostEatScore is earned when Pacman eats a scared ghost.
	GhostEatScore = 200

	// ScaredTime is the number of ghost moves a ghost stays scared after Pacman eats a capsule.
	ScaredTime = 40

	// DefaultMaxMoves after which a match is considered over (neither won nor lost).
	DefaultMaxMoves = 1000
)

// Layout characters.
const (
	WallChar    = '%'
	FoodChar    = '.'
	CapsuleChar = 'o'
	PacmanChar  = 'P'
	GhostChar   = 'G'
	EmptyChar   = ' '
)

// walls is the static part of a maze, shared by all states derived from it.
type walls struct {
	width, height int
	isWall        []bool
	ghostStarts   []Pos
}

func (w *walls) inside(pos Pos) bool {
	return pos[0] >= 0 && pos[0] < w.width && pos[1] >= 0 && pos[1] < w.height
}

func (w *walls) at(pos Pos) bool {
	if !w.inside(pos) {
		return true
	}
	return w.isWall[pos[1]*w.width+pos[0]]
}

// Maze implements GameState for the classic Pacman game on a grid.
//
// Maze values are immutable: successors share the walls and only copy what changes.
type Maze struct {
	walls *walls

	// food and capsules are copied on write.
	food     generics.Set[Pos]
	capsules []Pos

	pacman     Pos
	ghosts     []AgentState
	ghostDirs  []Action
	score      float64
	win, lose  bool
	moveNumber int
}

// Assert that Maze is a GameState.
var _ GameState = (*Maze)(nil)

// NewMazeFromLayout parses a layout text, where '%' is a wall, '.' food, 'o' a capsule,
// 'P' Pacman, 'G' a ghost and ' ' empty space.
//
// All rows must have the same width and there must be exactly one Pacman. Ghosts are numbered
// in reading order, starting at agent index 1.
func NewMazeFromLayout(text string) (*Maze, error) {
	var rows []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			if len(rows) == 0 {
				continue
			}
			break
		}
		rows = append(rows, line)
	}
	if len(rows) == 0 {
		return nil, errors.New("empty maze layout")
	}
	w := &walls{width: len(rows[0]), height: len(rows)}
	w.isWall = make([]bool, w.width*w.height)
	m := &Maze{
		walls: w,
		food:  generics.MakeSet[Pos](),
	}
	numPacman := 0
	for rowIdx, row := range rows {
		if len(row) != w.width {
			return nil, errors.Errorf("maze layout row %d has width %d, expected %d", rowIdx, len(row), w.width)
		}
		y := w.height - 1 - rowIdx
		for x, c := range []byte(row) {
			pos := Pos{x, y}
			switch c {
			case WallChar:
				w.isWall[y*w.width+x] = true
			case FoodChar:
				m.food.Insert(pos)
			case CapsuleChar:
				m.capsules = append(m.capsules, pos)
			case PacmanChar:
				m.pacman = pos
				numPacman++
			case GhostChar:
				w.ghostStarts = append(w.ghostStarts, pos)
				m.ghosts = append(m.ghosts, AgentState{Pos: pos})
				m.ghostDirs = append(m.ghostDirs, Stop)
			case EmptyChar:
			default:
				return nil, errors.Errorf("invalid character %q in maze layout at row %d, column %d", c, rowIdx, x)
			}
		}
	}
	if numPacman != 1 {
		return nil, errors.Errorf("maze layout must have exactly one Pacman, got %d", numPacman)
	}
	return m, nil
}

// Width of the maze.
func (m *Maze) Width() int { return m.walls.width }

// Height of the maze.
func (m *Maze) Height() int { return m.walls.height }

// IsWall returns whether there is a wall at pos. Positions outside the maze are walls.
func (m *Maze) IsWall(pos Pos) bool { return m.walls.at(pos) }

// HasFood returns whether there is food at pos.
func (m *Maze) HasFood(pos Pos) bool { return m.food.Has(pos) }

// HasCapsule returns whether there is a capsule at pos.
func (m *Maze) HasCapsule(pos Pos) bool { return slices.Contains(m.capsules, pos) }

// MoveNumber is the number of agent moves since the initial state.
func (m *Maze) MoveNumber() int { return m.moveNumber }

// IsWin implements GameState.
func (m *Maze) IsWin() bool { return m.win }

// IsLose implements GameState.
func (m *Maze) IsLose() bool { return m.lose }

// NumAgents implements GameState.
func (m *Maze) NumAgents() int { return 1 + len(m.ghosts) }

// PacmanPosition implements GameState.
func (m *Maze) PacmanPosition() Pos { return m.pacman }

// Score implements GameState.
func (m *Maze) Score() float64 { return m.score }

// Food implements GameState. Positions are sorted by y and then x.
func (m *Maze) Food() []Pos {
	food := slices.Collect(maps.Keys(m.food))
	SortPositions(food)
	return food
}

// NumFood returns the amount of remaining food.
func (m *Maze) NumFood() int { return len(m.food) }

// Capsules implements GameState.
func (m *Maze) Capsules() []Pos { return slices.Clone(m.capsules) }

// GhostStates implements GameState.
func (m *Maze) GhostStates() []AgentState { return slices.Clone(m.ghosts) }

// possibleMoves lists the directions (excluding Stop) from pos that don't run into a wall.
func (m *Maze) possibleMoves(pos Pos) []Action {
	moves := make([]Action, 0, NumActions)
	for _, action := range Actions[:Stop] {
		if !m.walls.at(pos.Add(action.Delta())) {
			moves = append(moves, action)
		}
	}
	return moves
}

// LegalActions implements GameState.
//
// Pacman can always Stop. Ghosts can't stop, and can't reverse direction unless it is their only move.
func (m *Maze) LegalActions(agentIdx int) []Action {
	if m.win || m.lose || agentIdx < 0 || agentIdx >= m.NumAgents() {
		return nil
	}
	if agentIdx == 0 {
		return append(m.possibleMoves(m.pacman), Stop)
	}
	ghostIdx := agentIdx - 1
	moves := m.possibleMoves(m.ghosts[ghostIdx].Pos)
	if len(moves) > 1 {
		reverse := m.ghostDirs[ghostIdx].Reverse()
		if reverse != Stop {
			moves = slices.DeleteFunc(moves, func(a Action) bool { return a == reverse })
		}
	}
	return moves
}

// GenerateSuccessor implements GameState.
func (m *Maze) GenerateSuccessor(agentIdx int, action Action) (GameState, error) {
	if m.win || m.lose {
		return nil, errors.Wrapf(ErrInvalidAction, "can't generate successor of a terminal state (agent %d, action %s)", agentIdx, action)
	}
	if !slices.Contains(m.LegalActions(agentIdx), action) {
		return nil, errors.Wrapf(ErrInvalidAction, "action %s not legal for agent %d at move #%d", action, agentIdx, m.moveNumber)
	}
	next := m.clone()
	next.moveNumber++
	if agentIdx == 0 {
		next.movePacman(action)
	} else {
		next.moveGhost(agentIdx-1, action)
	}
	return next, nil
}

// clone makes a shallow copy, with its own agents slices. Food and capsules are shared until modified.
func (m *Maze) clone() *Maze {
	next := *m
	next.ghosts = slices.Clone(m.ghosts)
	next.ghostDirs = slices.Clone(m.ghostDirs)
	return &next
}

func (m *Maze) movePacman(action Action) {
	m.pacman = m.pacman.Add(action.Delta())
	m.score -= TimePenalty

	// Consume food or capsule at the new position.
	if m.food.Has(m.pacman) {
		m.food = m.food.Clone()
		m.food.Delete(m.pacman)
		m.score += FoodScore
		if len(m.food) == 0 && !m.lose {
			m.score += WinScore
			m.win = true
		}
	}
	if idx := slices.Index(m.capsules, m.pacman); idx >= 0 {
		m.capsules = slices.Delete(slices.Clone(m.capsules), idx, idx+1)
		for ii := range m.ghosts {
			m.ghosts[ii].ScaredTimer = ScaredTime
		}
	}

	for ghostIdx := range m.ghosts {
		m.checkCollision(ghostIdx)
	}
}

func (m *Maze) moveGhost(ghostIdx int, action Action) {
	ghost := &m.ghosts[ghostIdx]
	ghost.Pos = ghost.Pos.Add(action.Delta())
	m.ghostDirs[ghostIdx] = action
	if ghost.ScaredTimer > 0 {
		ghost.ScaredTimer--
	}
	m.checkCollision(ghostIdx)
}

// checkCollision between Pacman and the given ghost: a scared ghost is eaten and sent back
// to its start position, a dangerous one ends the game.
func (m *Maze) checkCollision(ghostIdx int) {
	ghost := &m.ghosts[ghostIdx]
	if ghost.Pos != m.pacman {
		return
	}
	if ghost.IsScared() {
		m.score += GhostEatScore
		ghost.Pos = m.walls.ghostStarts[ghostIdx]
		ghost.ScaredTimer = 0
		m.ghostDirs[ghostIdx] = Stop
		return
	}
	if !m.win {
		m.score -= LosePenalty
		m.lose = true
	}
}

// Layout returns the maze rendered in the layout text format accepted by NewMazeFromLayout.
// Ghosts are drawn over food and capsules, Pacman over everything.
func (m *Maze) Layout() string {
	var sb strings.Builder
	for y := m.walls.height - 1; y >= 0; y-- {
		for x := range m.walls.width {
			sb.WriteByte(m.CellChar(Pos{x, y}))
		}
		if y > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// CellChar returns the layout character for the given position.
func (m *Maze) CellChar(pos Pos) byte {
	if pos == m.pacman {
		return PacmanChar
	}
	for _, ghost := range m.ghosts {
		if ghost.Pos == pos {
			return GhostChar
		}
	}
	switch {
	case m.walls.at(pos):
		return WallChar
	case m.food.Has(pos):
		return FoodChar
	case m.HasCapsule(pos):
		return CapsuleChar
	}
	return EmptyChar
}
