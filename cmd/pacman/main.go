// pacman plays matches of Pacman in the terminal: an AI (or a human, with -human) controls Pacman
// against random or directional ghosts.
//
// Example:
//
//	$ go run ./cmd/pacman -layout=smallClassic -config="expectimax,depth=3" -ghosts=directional
package main

import (
	"context"
	"flag"
	"fmt"
	"github.com/janpfeifer/must"
	"github.com/janpfeifer/pacmanGo/internal/ghosts"
	"github.com/janpfeifer/pacmanGo/internal/layouts"
	"github.com/janpfeifer/pacmanGo/internal/match"
	"github.com/janpfeifer/pacmanGo/internal/players"
	"github.com/janpfeifer/pacmanGo/internal/state"
	"github.com/janpfeifer/pacmanGo/internal/ui/cli"
	"github.com/janpfeifer/pacmanGo/internal/ui/spinning"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
	"math/rand/v2"
	"os"
	"time"
)

var (
	flagLayout   = flag.String("layout", "minimaxClassic", fmt.Sprintf("Built-in layout %q or path to a layout file.", layouts.Names()))
	flagAIConfig = flag.String("config", players.DefaultPlayerConfig, "Pacman AI configuration, e.g. \"expectimax,depth=3,eval=better\".")
	flagHuman    = flag.Bool("human", false, "Pacman is played by a human, reading actions from the terminal.")
	flagGhosts   = flag.String("ghosts", "random", fmt.Sprintf("Kind of ghosts, one of %q.", ghosts.Kinds))
	flagNumGames = flag.Int("num_games", 1, "Number of games to play.")
	flagMaxMoves = flag.Int("max_moves", state.DefaultMaxMoves, "Max agent moves before a game is considered a draw.")
	flagSeed     = flag.Uint64("seed", 0, "Seed for the ghosts' random choices. If 0, a random seed is used.")
	flagQuiet    = flag.Bool("quiet", false, "Quiet mode: only the result of each game is printed.")
	flagColor    = flag.Bool("color", true, "Use colors in the terminal.")
	flagDelay    = flag.Duration("delay", 0, "Delay after each Pacman move, to make it easier to watch.")

	globalCtx = context.Background()
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if *flagMaxMoves <= 0 {
		klog.Fatalf("Invalid -max_moves=%d", *flagMaxMoves)
	}
	if *flagNumGames <= 0 {
		klog.Fatalf("Invalid -num_games=%d", *flagNumGames)
	}

	// Capture Control+C
	var cancel func()
	globalCtx, cancel = context.WithCancel(context.Background())
	spinning.SafeInterrupt(cancel, 3*time.Second)
	defer cancel()

	seed := *flagSeed
	if seed == 0 {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed))
	ui := cli.New(*flagColor, false)
	spinning.Theme = spinning.ThemePac

	var wins, losses int
	var totalScore float64
	for gameIdx := range *flagNumGames {
		result, err := playGame(ui, rng)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				fmt.Printf("Interrupted: %v\n", err)
				break
			}
			klog.Exitf("Game #%d failed: %+v", gameIdx, err)
		}
		if *flagQuiet {
			fmt.Printf("Game #%d: %s\n", gameIdx, result)
		} else {
			ui.Print(result.Final)
			ui.PrintResult(result)
		}
		totalScore += result.Score
		if result.Win {
			wins++
		} else if result.Lose {
			losses++
		}
	}
	if *flagNumGames > 1 {
		fmt.Printf("\nWins: %d/%d, losses: %d, average score: %.1f\n",
			wins, *flagNumGames, losses, totalScore/float64(*flagNumGames))
	}
}

// playGame plays one game, printing the maze after each of Pacman's moves unless -quiet is set.
func playGame(ui *cli.UI, rng *rand.Rand) (match.Result, error) {
	maze := must.M1(layouts.Load(*flagLayout))
	var pacman players.Player
	if *flagHuman {
		pacman = ui.NewHuman(os.Stdin)
	} else {
		pacman = must.M1(players.New(*flagAIConfig))
		if !*flagQuiet {
			pacman = &thinkingPlayer{Player: pacman}
		}
	}
	defer pacman.Finalize()
	ghostAgents := make([]ghosts.Agent, maze.NumAgents()-1)
	for ii := range ghostAgents {
		ghostAgents[ii] = must.M1(ghosts.New(*flagGhosts, rand.New(rand.NewPCG(rng.Uint64(), rng.Uint64()))))
	}

	opts := []match.Option{match.WithMaxMoves(*flagMaxMoves)}
	if !*flagQuiet {
		ui.Print(maze)
		opts = append(opts, match.WithObserver(func(agentIdx int, action state.Action, m *state.Maze) {
			ui.PrintMove(agentIdx, action, m)
			if agentIdx != m.NumAgents()-1 || state.IsTerminal(m) {
				// Only print the maze once all agents moved.
				return
			}
			ui.Print(m)
			if *flagDelay > 0 {
				time.Sleep(*flagDelay)
			}
		}))
	}
	return match.Run(globalCtx, maze, pacman, ghostAgents, opts...)
}

// thinkingPlayer shows a spinning symbol while the wrapped AI player searches.
type thinkingPlayer struct {
	players.Player
}

func (p *thinkingPlayer) Play(s state.GameState) (state.Action, float64, error) {
	spinner := spinning.New(globalCtx)
	defer spinner.Done()
	return p.Player.Play(s)
}

func (p *thinkingPlayer) ChooseAction(s state.GameState) (state.Action, error) {
	action, _, err := p.Play(s)
	return action, err
}
