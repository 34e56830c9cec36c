// compare plays two Pacman AI configurations on the same layouts and ghosts, and reports their win
// rates and average scores.
//
// Example:
//
//	$ go run ./cmd/compare -ai1="minimax,depth=2" -ai2="expectimax,depth=2" -layout=smallClassic -num_matches=50
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
	"github.com/janpfeifer/pacmanGo/internal/profilers"
	"github.com/janpfeifer/pacmanGo/internal/state"
	"github.com/janpfeifer/pacmanGo/internal/ui/spinning"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
	"math/rand/v2"
	"runtime"
	"strings"
	"sync"
	"time"
)

var (
	flagPlayer1Config = flag.String("ai1", "", "1st player configuration.")
	flagPlayer2Config = flag.String("ai2", "", "2nd player configuration.")
	flagLayout        = flag.String("layout", "smallClassic", fmt.Sprintf("Built-in layout %q or path to a layout file.", layouts.Names()))
	flagGhosts        = flag.String("ghosts", "directional", fmt.Sprintf("Kind of ghosts, one of %q.", ghosts.Kinds))
	flagNumMatches    = flag.Int("num_matches", 20, "Number of matches to play for each configuration.")
	flagParallelism   = flag.Int("parallelism", 0, "If > 0 ignore GOMAXPROCS and play "+
		"these many matches simultaneously.")
	flagMaxMoves = flag.Int(
		"max_moves", state.DefaultMaxMoves, "Max agent moves before a match is assumed to be a draw.")
	flagSeed = flag.Uint64("seed", 1, "Seed for the ghosts: match i of both configurations uses the same ghosts' seed.")
)

// Globals
var (
	// globalCtx used everywhere. It is cancelled when the program is about to exit either by
	// an interrupt (ctrl+C) or by reaching the end.
	globalCtx = context.Background()
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if *flagPlayer1Config == "" || *flagPlayer2Config == "" {
		klog.Fatal("You must configure both players to compare with flags -ai1 and -ai2")
	}

	// Capture Control+C
	var globalCancel func()
	globalCtx, globalCancel = context.WithCancel(context.Background())
	spinning.SafeInterrupt(globalCancel, 5*time.Second)
	defer globalCancel()

	// Profilers: HTTP profiler server and CPU profile.
	onQuit := must.M1(profilers.Setup(globalCtx))
	defer onQuit()

	// Validate configurations and layout before starting.
	configs := [2]string{*flagPlayer1Config, *flagPlayer2Config}
	for _, config := range configs {
		must.M1(players.ParseConfig(config))
	}
	must.M1(layouts.Load(*flagLayout))
	must.M(runMatches(globalCtx, configs))
}

// Results of the matches of each configuration.
type Results struct {
	mu            sync.Mutex
	start         time.Time
	wins, losses  [2]int
	draws         [2]int
	scores        [2]float64
	played, total int
}

func (r *Results) String() string {
	var parts []string
	parts = append(parts, fmt.Sprintf("Played %d of %d: ", r.played, r.total))
	for playerIdx := range 2 {
		n := max(r.wins[playerIdx]+r.losses[playerIdx]+r.draws[playerIdx], 1)
		parts = append(parts,
			fmt.Sprintf("AI-%d: %d wins (%.0f%%), %d losses, %d draws, avg score %.1f / ",
				playerIdx+1, r.wins[playerIdx], 100*float64(r.wins[playerIdx])/float64(n),
				r.losses[playerIdx], r.draws[playerIdx], r.scores[playerIdx]/float64(n)))
	}
	parts = append(parts, fmt.Sprintf("%s", time.Since(r.start).Round(time.Millisecond)))
	parts = append(parts, "\033[0K")
	return strings.Join(parts, "")
}

func runMatches(ctx context.Context, configs [2]string) error {
	r := &Results{
		start: time.Now(),
		total: 2 * *flagNumMatches,
	}
	var wg errgroup.Group
	wg.SetLimit(getParallelism())
	fmt.Printf("\r%s", r)

	for matchIdx := range *flagNumMatches {
		for playerIdx, config := range configs {
			wg.Go(func() error {
				result, err := runMatch(ctx, matchIdx, config)
				if err != nil || ctx.Err() != nil {
					return err
				}
				r.mu.Lock()
				defer r.mu.Unlock()
				switch {
				case result.Win:
					r.wins[playerIdx]++
				case result.Lose:
					r.losses[playerIdx]++
				default:
					r.draws[playerIdx]++
				}
				r.scores[playerIdx] += result.Score
				r.played++
				fmt.Printf("\r%s", r)
				return nil
			})
		}
	}
	err := wg.Wait()
	fmt.Printf("\r%s", r)
	fmt.Println()
	if ctx.Err() != nil {
		fmt.Printf("Interrupted: %s\n", ctx.Err())
		return nil
	}
	return err
}

// runMatch plays one match of the player with the given config. Ghosts are seeded from matchIdx, so both
// configurations face the same ghosts' random choices.
func runMatch(ctx context.Context, matchIdx int, config string) (match.Result, error) {
	if ctx.Err() != nil {
		return match.Result{}, nil
	}
	if klog.V(1).Enabled() {
		klog.Infof("Starting match %d of %q", matchIdx, config)
		defer klog.Infof("Finished match %d of %q", matchIdx, config)
	}
	maze, err := layouts.Load(*flagLayout)
	if err != nil {
		return match.Result{}, err
	}
	player, err := players.New(config)
	if err != nil {
		return match.Result{}, err
	}
	defer player.Finalize()
	ghostAgents := make([]ghosts.Agent, maze.NumAgents()-1)
	for ii := range ghostAgents {
		rng := rand.New(rand.NewPCG(*flagSeed, uint64(matchIdx)*1000+uint64(ii)))
		if ghostAgents[ii], err = ghosts.New(*flagGhosts, rng); err != nil {
			return match.Result{}, err
		}
	}
	result, err := match.Run(ctx, maze, player, ghostAgents, match.WithMaxMoves(*flagMaxMoves))
	if err != nil && ctx.Err() != nil {
		klog.V(1).Infof("Match %d interrupted: %s", matchIdx, ctx.Err())
		return result, nil
	}
	return result, err
}

// getParallelism returns the parallelism.
func getParallelism() (parallelism int) {
	parallelism = runtime.GOMAXPROCS(0)
	if *flagParallelism > 0 {
		parallelism = *flagParallelism
	}
	return
}
