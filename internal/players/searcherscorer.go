package players

import (
	"github.com/janpfeifer/pacmanGo/internal/ai"
	"github.com/janpfeifer/pacmanGo/internal/ai/linear"
	"github.com/janpfeifer/pacmanGo/internal/parameters"
	"github.com/janpfeifer/pacmanGo/internal/searchers"
	"github.com/janpfeifer/pacmanGo/internal/searchers/alphabeta"
	"github.com/janpfeifer/pacmanGo/internal/searchers/expectimax"
	"github.com/janpfeifer/pacmanGo/internal/searchers/minimax"
	"github.com/janpfeifer/pacmanGo/internal/searchers/reflex"
	"github.com/janpfeifer/pacmanGo/internal/state"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
	"math/rand/v2"
	"strings"
)

// SearcherScorer is a standard set up for an AI: a searcher and a scorer.
// It implements the Player interface.
type SearcherScorer struct {
	Config   Config
	Searcher searchers.Searcher
	Scorer   ai.ValueScorer
}

var (
	// DefaultPlayerConfig is used if no configuration was given to the AI. The value may be changed by the
	// binaries.
	DefaultPlayerConfig = "alphabeta,depth=2,eval=better"
)

// New creates a new AI player given the configuration string.
//
// Args:
//
//   - config: a comma-separated list of parameters with optional values associated.
//     If empty, the default is given by DefaultPlayerConfig. E.g.: "expectimax,depth=3,eval=better"
//
// Parameters:
//
//   - minimax, alphabeta, expectimax or reflex: the search variant, at most one. Default is alphabeta.
//   - depth (int): depth of the search in rounds (Pacman and every ghost moving once). Default is 2.
//   - eval (string): evaluation function, one of "score", "short_horizon" or "better". Default is "score"
//     for the deep searches and "short_horizon" for reflex.
//   - parallelism (int): number of Pacman's first actions searched concurrently. Default is 1.
//   - w_score, w_food, w_ghost, w_capsule, w_bias (float): override the weights of the "better"
//     evaluation function.
//   - seed (int): seed for the reflex variant random tie-break.
//
// Errors wrap ErrConfiguration.
func New(config string) (*SearcherScorer, error) {
	cfg, err := ParseConfig(config)
	if err != nil {
		return nil, err
	}
	return NewFromConfig(cfg)
}

// ParseConfig parses a configuration string, see New for the parameters. Errors wrap ErrConfiguration.
func ParseConfig(config string) (Config, error) {
	if config == "" {
		config = DefaultPlayerConfig
	}
	params := parameters.NewFromConfigString(config)
	cfg := DefaultConfig()

	variants, err := parameters.PopFlags(params, variantNames...)
	if err != nil {
		return cfg, configErrorf("%v", err)
	}
	switch len(variants) {
	case 0:
	case 1:
		cfg.Variant, _ = ParseVariant(variants[0])
	default:
		return cfg, configErrorf("multiple search variants defined in %q: %q", config, variants)
	}
	if !cfg.Variant.IsDeep() {
		cfg.Eval = EvalShortHorizon
	}

	if cfg.Depth, err = parameters.PopParamOr(params, "depth", cfg.Depth); err != nil {
		return cfg, configErrorf("%v", err)
	}
	if cfg.Parallelism, err = parameters.PopParamOr(params, "parallelism", cfg.Parallelism); err != nil {
		return cfg, configErrorf("%v", err)
	}
	var seed int
	if seed, err = parameters.PopParamOr(params, "seed", 0); err != nil {
		return cfg, configErrorf("%v", err)
	}
	if seed < 0 {
		return cfg, configErrorf("seed must be non-negative, got seed=%d", seed)
	}
	cfg.Seed = uint64(seed)

	evalName, err := parameters.PopParamOr(params, "eval", "")
	if err != nil {
		return cfg, configErrorf("%v", err)
	}
	if evalName != "" {
		if cfg.Eval, err = ParseEvalKind(evalName); err != nil {
			return cfg, err
		}
	}

	customWeights := false
	for key := range params {
		if strings.HasPrefix(key, "w_") {
			customWeights = true
		}
	}
	if customWeights {
		if cfg.Weights, err = linear.NewFromParams(params); err != nil {
			return cfg, configErrorf("%v", err)
		}
	}

	if err = parameters.CheckAllUsed(params); err != nil {
		return cfg, configErrorf("%v in %q", err, config)
	}
	if err = cfg.Validate(); err != nil {
		return cfg, errors.WithMessagef(err, "configuration %q", config)
	}
	return cfg, nil
}

// NewFromConfig creates a new AI player from the given configuration. Errors wrap ErrConfiguration.
func NewFromConfig(cfg Config) (*SearcherScorer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	player := &SearcherScorer{Config: cfg, Scorer: cfg.Scorer()}
	switch cfg.Variant {
	case MiniMax:
		player.Searcher = minimax.New(player.Scorer).WithMaxDepth(cfg.Depth).WithParallelism(cfg.Parallelism)
	case AlphaBeta:
		player.Searcher = alphabeta.New(player.Scorer).WithMaxDepth(cfg.Depth).WithParallelism(cfg.Parallelism)
	case ExpectiMax:
		player.Searcher = expectimax.New(player.Scorer).WithMaxDepth(cfg.Depth).WithParallelism(cfg.Parallelism)
	case Reflex:
		searcher := reflex.New(player.Scorer)
		if cfg.Seed != 0 {
			searcher.WithRand(rand.New(rand.NewPCG(cfg.Seed, cfg.Seed)))
		}
		player.Searcher = searcher
	}
	if klog.V(1).Enabled() {
		klog.Infof("Created player %s", player)
	}
	return player, nil
}

// Assert that SearcherScorer is a Player.
var _ Player = &SearcherScorer{}

// String returns the searcher description.
func (p *SearcherScorer) String() string {
	if p.Searcher == nil {
		return "finalized player"
	}
	return p.Searcher.String()
}

// Play implements the Player interface: it chooses an action given a state.
func (p *SearcherScorer) Play(s state.GameState) (action state.Action, score float64, err error) {
	action, score, err = p.Searcher.Search(s)
	if err != nil {
		return state.Stop, 0, errors.WithMessagef(err, "player %s", p)
	}
	if klog.V(2).Enabled() {
		klog.Infof("AI (%s) playing %s, score=%.3f", p, action, score)
	}
	return
}

// ChooseAction implements the Player interface.
func (p *SearcherScorer) ChooseAction(s state.GameState) (state.Action, error) {
	action, _, err := p.Play(s)
	return action, err
}

// Finalize is called at the end of a match.
func (p *SearcherScorer) Finalize() {
	if klog.V(1).Enabled() {
		klog.Infof("Player (%s) finalized", p)
	}
	p.Scorer = nil
	p.Searcher = nil
}
