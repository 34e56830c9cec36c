// Package cli implements a command-line UI for the game: it renders mazes and match results, and
// reads Pacman's moves from a human player.
package cli

import (
	"bufio"
	"fmt"
	"github.com/charmbracelet/lipgloss"
	"github.com/janpfeifer/pacmanGo/internal/match"
	"github.com/janpfeifer/pacmanGo/internal/players"
	"github.com/janpfeifer/pacmanGo/internal/state"
	"github.com/pkg/errors"
	"golang.org/x/term"
	"io"
	"os"
	"regexp"
	"strings"
)

var ansiFilter = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// displayWidth of s removes its color/control sequences and returns the length of what is left.
func displayWidth(s string) int {
	return len(ansiFilter.ReplaceAllString(s, ""))
}

// UI renders the game to a writer, usually os.Stdout.
type UI struct {
	color, clearScreen bool
	out                io.Writer
}

// New creates a UI that writes to os.Stdout.
func New(color bool, clearScreen bool) *UI {
	return &UI{
		color:       color,
		clearScreen: clearScreen,
		out:         os.Stdout,
	}
}

// WithWriter changes where the UI writes to.
func (ui *UI) WithWriter(w io.Writer) *UI {
	ui.out = w
	return ui
}

// terminalWidth returns the width of the terminal the UI writes to, or 0 if it's not a terminal.
func (ui *UI) terminalWidth() int {
	f, ok := ui.out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

func (ui *UI) printCentered(block string) {
	lines := strings.Split(block, "\n")
	blockWidth := 0
	for _, line := range lines {
		blockWidth = max(blockWidth, displayWidth(line))
	}
	indent := max((ui.terminalWidth()-blockWidth)/2, 0)
	for _, line := range lines {
		if len(line) == 0 {
			_, _ = fmt.Fprintln(ui.out)
			continue
		}
		_, _ = fmt.Fprintf(ui.out, "%s%s\n", strings.Repeat(" ", indent), line)
	}
}

// cellColor returns the ANSI sequence to start the color of a maze cell.
func (ui *UI) cellColor(c byte, scaredGhost bool) string {
	if !ui.color {
		return ""
	}
	switch c {
	case state.WallChar:
		return "\033[34;44m"
	case state.FoodChar:
		return "\033[37;1m"
	case state.CapsuleChar:
		return "\033[37;5;1m"
	case state.PacmanChar:
		return "\033[33;1m"
	case state.GhostChar:
		if scaredGhost {
			return "\033[36;1m"
		}
		return "\033[31;1m"
	}
	return ""
}

func (ui *UI) colorEnd() string {
	if !ui.color {
		return ""
	}
	return "\033[39;49;0m"
}

// RenderMaze returns the maze drawn with one character per cell, colored if the UI was created with color.
func (ui *UI) RenderMaze(m *state.Maze) string {
	var sb strings.Builder
	ghosts := m.GhostStates()
	for y := m.Height() - 1; y >= 0; y-- {
		for x := range m.Width() {
			pos := state.Pos{x, y}
			c := m.CellChar(pos)
			scared := false
			if c == state.GhostChar {
				for _, ghost := range ghosts {
					if ghost.Pos == pos && ghost.IsScared() {
						scared = true
					}
				}
			}
			sb.WriteString(ui.cellColor(c, scared))
			sb.WriteByte(c)
			sb.WriteString(ui.colorEnd())
		}
		if y > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Print the maze, with the move number and score.
func (ui *UI) Print(m *state.Maze) {
	if ui.clearScreen {
		_, _ = fmt.Fprint(ui.out, "\033c")
	}
	if ui.color {
		_, _ = fmt.Fprint(ui.out, "\033[37;03;1m")
	}
	_, _ = fmt.Fprintf(ui.out, "\nMove #%d, score=%g, food left=%d%s\n\n", m.MoveNumber(), m.Score(), m.NumFood(), ui.colorEnd())
	ui.printCentered(ui.RenderMaze(m))
	_, _ = fmt.Fprintln(ui.out)
}

// PrintMove prints the action taken by an agent, in one line.
func (ui *UI) PrintMove(agentIdx int, action state.Action, m *state.Maze) {
	agent := "Pacman"
	if agentIdx > 0 {
		agent = fmt.Sprintf("Ghost #%d", agentIdx)
	}
	_, _ = fmt.Fprintf(ui.out, "  move #%d: %-9s %-5s score=%g\n", m.MoveNumber(), agent, action, m.Score())
}

// PrintResult prints a banner with the result of the match.
func (ui *UI) PrintResult(result match.Result) {
	var msg, background string
	switch {
	case result.Win:
		msg, background = "*** PACMAN WINS!! ***", "10"
	case result.Lose:
		msg, background = "*** PACMAN WAS CAUGHT ***", "9"
	default:
		msg, background = "*** DRAW: max moves reached ***", "13"
	}
	msg = fmt.Sprintf("%s\nscore=%g, moves=%d", msg, result.Score, result.Moves)
	_, _ = fmt.Fprintln(ui.out)
	if ui.color {
		msg = lipgloss.NewStyle().
			Background(lipgloss.Color(background)).
			Foreground(lipgloss.Color("0")).
			Padding(1, 2).
			Align(lipgloss.Center).
			Render(msg)
	}
	ui.printCentered(msg)
	_, _ = fmt.Fprintln(ui.out)
}

// Human is a players.Player that reads Pacman's actions from a reader, usually os.Stdin.
type Human struct {
	ui     *UI
	reader *bufio.Reader
}

// Assert Human is a players.Player.
var _ players.Player = (*Human)(nil)

// NewHuman creates a human player that reads its moves from r and prompts with ui.
func (ui *UI) NewHuman(r io.Reader) *Human {
	return &Human{ui: ui, reader: bufio.NewReader(r)}
}

// errParsing is returned after too many failed attempts to read an action.
var errParsing = errors.New("failed to read action 3 times")

// shortcuts accepted for each action, in addition to its name.
var shortcuts = map[string]state.Action{
	"n": state.North, "s": state.South, "e": state.East, "w": state.West,
	"": state.Stop, ".": state.Stop, "stop": state.Stop,
}

// parseCommand converts the user input to an action.
func parseCommand(text string) (state.Action, bool) {
	text = strings.ToLower(strings.TrimSpace(text))
	if action, found := shortcuts[text]; found {
		return action, true
	}
	for _, action := range state.Actions {
		if strings.ToLower(action.String()) == text {
			return action, true
		}
	}
	return state.Stop, false
}

// ChooseAction implements players.Player.
func (h *Human) ChooseAction(s state.GameState) (state.Action, error) {
	legal := s.LegalActions(0)
	if len(legal) == 0 {
		return state.Stop, nil
	}
	legalNames := make([]string, len(legal))
	for ii, action := range legal {
		legalNames[ii] = action.String()
	}
	for range 3 {
		_, _ = fmt.Fprintf(h.ui.out, "    Pacman action [%s] > ", strings.Join(legalNames, ", "))
		text, err := h.reader.ReadString('\n')
		if err != nil && (err != io.EOF || text == "") {
			return state.Stop, errors.Wrapf(err, "reading human action")
		}
		action, ok := parseCommand(text)
		if !ok {
			_, _ = fmt.Fprintf(h.ui.out, "    * Failed to parse your input %q, please try again.\n", strings.TrimSpace(text))
			continue
		}
		for _, legalAction := range legal {
			if legalAction == action {
				return action, nil
			}
		}
		_, _ = fmt.Fprintf(h.ui.out, "    * %s is not a valid move now.\n", action)
	}
	return state.Stop, errParsing
}

// Play implements players.Player. The score is always 0.
func (h *Human) Play(s state.GameState) (state.Action, float64, error) {
	action, err := h.ChooseAction(s)
	return action, 0, err
}

// Finalize implements players.Player.
func (h *Human) Finalize() {}
