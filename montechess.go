package montechess

import (
	"context"
	"sync"
	"time"

	"github.com/montechess/game"
	"github.com/montechess/mcts"
	"github.com/notnil/chess"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// Engine is the top level structure and the entry point of the API.
// It builds the agents and plays the games of a match.
type Engine struct {
	conf    Config
	side    chess.Color
	start   game.State
	seed    uint64
	logger  zerolog.Logger
	metrics *mcts.Metrics

	// Statistics of the MCTS agent across games
	Wins float32
	Loss float32
	Draw float32

	sync.Mutex
	timings []*mcts.Timings
}

type Option func(e *Engine)

// WithLogger sets the logger of the engine and of every search.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithMetrics records every search into metrics.
func WithMetrics(metrics *mcts.Metrics) Option {
	return func(e *Engine) {
		e.metrics = metrics
	}
}

// New creates an Engine. The configuration is validated first.
func New(conf Config, opts ...Option) (*Engine, error) {
	if err := conf.Validate(); err != nil {
		return nil, errors.WithMessage(err, "invalid config")
	}
	side, err := conf.Side()
	if err != nil {
		return nil, err
	}
	start, err := conf.StartState()
	if err != nil {
		return nil, err
	}

	seed := conf.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	e := &Engine{
		conf:   conf,
		side:   side,
		start:  start,
		seed:   seed,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// NewArena builds the arena of the nth game. Every arena has its own agents, trees and random generators,
// so arenas can be played at the same time.
func (e *Engine) NewArena(n int) *Arena {
	base := e.seed + uint64(n)*3
	agent := NewAgent(OpponentMCTS, e.side, e.newMCTS(OpponentMCTS, rand.New(rand.NewSource(base))))

	var s Searcher
	switch e.conf.Opponent {
	case OpponentMCTS:
		s = e.newMCTS("opponent", rand.New(rand.NewSource(base+1)))
	default:
		s = NewRandomSearcher(rand.New(rand.NewSource(base + 2)))
	}
	opponent := NewAgent(e.conf.Opponent, e.side.Other(), s)

	arena := MakeArena(e.start, agent, opponent, e.conf.MaxGameMoves, e.logger, e.conf.Name)
	arena.gameNumber = n
	return &arena
}

func (e *Engine) newMCTS(name string, r *rand.Rand) *mcts.MCTS {
	conf := e.conf.MCTSConf
	m := mcts.New(conf, mcts.NewRandomPlayout(conf, r),
		mcts.WithLogger(e.logger.With().Str("agent", name).Logger()),
		mcts.WithMetrics(e.metrics),
	)
	if t := m.Timings(); t != nil {
		e.Lock()
		e.timings = append(e.timings, t)
		e.Unlock()
	}
	return m
}

// Match plays the configured number of games, Workers of them at a time.
func (e *Engine) Match(ctx context.Context) (MatchResult, error) {
	results := make([]Result, e.conf.Games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.conf.Workers)
	for i := 0; i < e.conf.Games; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			arena := e.NewArena(i)
			res, err := arena.Play()
			if err != nil {
				return errors.WithMessagef(err, "game %d", i)
			}
			results[i] = res
			e.collect(arena.agent)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return MatchResult{}, err
	}

	retVal := MatchResult{Results: results}
	for _, res := range results {
		switch {
		case res.Termination == MoveLimit:
			retVal.Unfinished++
		case res.Winner == chess.NoColor:
			retVal.Draws++
		case res.Winner == e.side:
			retVal.Wins++
		default:
			retVal.Losses++
		}
	}
	e.logger.Info().
		Int("wins", retVal.Wins).
		Int("losses", retVal.Losses).
		Int("draws", retVal.Draws).
		Int("unfinished", retVal.Unfinished).
		Msg("match over")
	return retVal, nil
}

func (e *Engine) collect(agent *Agent) {
	agent.Lock()
	wins, loss, draw := agent.Wins, agent.Loss, agent.Draw
	agent.Unlock()

	e.Lock()
	e.Wins += wins
	e.Loss += loss
	e.Draw += draw
	e.Unlock()
}

// TimeReport returns the summed step timings of every MCTS search, once the match is over.
// It reports zeros unless timing is enabled in the MCTS config.
func (e *Engine) TimeReport() string {
	e.Lock()
	defer e.Unlock()
	total := &mcts.Timings{}
	for _, t := range e.timings {
		total.Merge(t)
	}
	return total.Report()
}

// Side returns the color played by the MCTS agent.
func (e *Engine) Side() chess.Color { return e.side }
