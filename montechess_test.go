package montechess

import (
	"context"
	"testing"

	"github.com/montechess/mcts"
	"github.com/notnil/chess"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func matchConfig() Config {
	conf := DefaultConfig()
	conf.Games = 3
	conf.Workers = 2
	conf.MaxGameMoves = 1
	conf.Seed = 42
	conf.MCTSConf.Budget = 3
	conf.MCTSConf.RolloutSimulations = 1
	conf.MCTSConf.NoProgressCap = 10
	return conf
}

func TestNewEngine(t *testing.T) {
	e, err := New(matchConfig())
	require.NoError(t, err)
	require.Equal(t, chess.White, e.Side())

	conf := matchConfig()
	conf.Workers = 0
	_, err = New(conf)
	require.Error(t, err)
}

func TestEngineMatch(t *testing.T) {
	play := func(conf Config) MatchResult {
		e, err := New(conf)
		require.NoError(t, err)
		res, err := e.Match(context.Background())
		require.NoError(t, err)
		return res
	}

	t.Run("random opponent", func(t *testing.T) {
		res := play(matchConfig())
		require.Len(t, res.Results, 3)
		require.Equal(t, 3, res.Unfinished)
		require.Zero(t, res.Wins+res.Losses+res.Draws)
		for i, r := range res.Results {
			require.Equal(t, i, r.Game)
			require.Equal(t, MoveLimit, r.Termination)
			require.Equal(t, 2, r.Plies())
		}
	})

	t.Run("same seed same games", func(t *testing.T) {
		first := play(matchConfig())
		second := play(matchConfig())
		for i := range first.Results {
			require.Equal(t, first.Results[i].Moves, second.Results[i].Moves)
		}
	})

	t.Run("mcts opponent playing white", func(t *testing.T) {
		conf := matchConfig()
		conf.Opponent = OpponentMCTS
		conf.PlayerSide = "black"
		res := play(conf)
		require.Equal(t, 3, res.Unfinished)
		for _, r := range res.Results {
			require.Equal(t, 3, r.Plies())
		}
	})

	t.Run("checkmate wins", func(t *testing.T) {
		conf := matchConfig()
		conf.StartFEN = "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1"
		conf.MCTSConf.Budget = 50
		conf.MCTSConf.NoProgressCap = 1
		conf.Games = 2
		e, err := New(conf)
		require.NoError(t, err)
		res, err := e.Match(context.Background())
		require.NoError(t, err)
		require.Equal(t, 2, res.Wins)
		require.Equal(t, float32(2), e.Wins)
		for _, r := range res.Results {
			require.Equal(t, []string{"a1a8"}, r.Moves)
		}
	})
}

func TestEngineMatchCancelled(t *testing.T) {
	e, err := New(matchConfig())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.Match(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestEngineMetricsAndTiming(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := mcts.NewMetrics(reg)
	require.NoError(t, err)

	conf := matchConfig()
	conf.MCTSConf.EnableTiming = true
	e, err := New(conf, WithMetrics(metrics))
	require.NoError(t, err)
	_, err = e.Match(context.Background())
	require.NoError(t, err)

	// one decision per game by the MCTS agent
	require.Equal(t, float64(3), testutil.ToFloat64(metrics.Searches))
	report := e.TimeReport()
	require.Contains(t, report, "MCTS time report (in s):")
	require.Contains(t, report, "time spent rollouting")
}
