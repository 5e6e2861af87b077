package montechess

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/montechess/mcts"
	"github.com/notnil/chess"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	conf := DefaultConfig()
	require.NoError(t, conf.Validate())

	side, err := conf.Side()
	require.NoError(t, err)
	require.Equal(t, chess.White, side)
	require.Equal(t, zerolog.InfoLevel, conf.Level())
	require.Equal(t, mcts.DefaultConfig(), conf.MCTSConf)
}

func TestLoadConfig(t *testing.T) {
	t.Run("overrides on top of the defaults", func(t *testing.T) {
		path := writeConfig(t, `
name: bench
max_game_moves: 10
player_side: black
opponent: mcts
games: 4
workers: 2
seed: 99
log_level: debug
mcts:
  max_search_iterations: 200
  rollout_simulations_per_evaluation: 3
`)
		conf, err := LoadConfig(path)
		require.NoError(t, err)

		require.Equal(t, "bench", conf.Name)
		require.Equal(t, 10, conf.MaxGameMoves)
		require.Equal(t, OpponentMCTS, conf.Opponent)
		require.Equal(t, 4, conf.Games)
		require.Equal(t, 2, conf.Workers)
		require.Equal(t, uint64(99), conf.Seed)
		require.Equal(t, zerolog.DebugLevel, conf.Level())
		require.Equal(t, 200, conf.MCTSConf.Budget)
		require.Equal(t, 3, conf.MCTSConf.RolloutSimulations)

		// untouched keys keep their default
		defaults := mcts.DefaultConfig()
		require.Equal(t, defaults.Exploration, conf.MCTSConf.Exploration)
		require.Equal(t, defaults.NoProgressCap, conf.MCTSConf.NoProgressCap)
		require.Empty(t, conf.StartFEN)

		side, err := conf.Side()
		require.NoError(t, err)
		require.Equal(t, chess.Black, side)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		require.True(t, os.IsNotExist(errors.Cause(err)))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "games: [1, 2"))
		require.Error(t, err)
	})

	t.Run("every invalid setting is reported", func(t *testing.T) {
		path := writeConfig(t, `
max_game_moves: 0
player_side: purple
opponent: human
start_fen: not a fen
`)
		_, err := LoadConfig(path)
		require.Error(t, err)

		var merr *multierror.Error
		require.True(t, errors.As(err, &merr))
		require.Len(t, merr.Errors, 4)
	})
}

func TestConfigValidate(t *testing.T) {
	conf := DefaultConfig()
	conf.Games = 0
	conf.Workers = -1
	conf.LogLevel = "loud"
	conf.MCTSConf.Budget = 0

	err := conf.Validate()
	require.Error(t, err)
	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	require.Len(t, merr.Errors, 4)
}

func TestConfigStartState(t *testing.T) {
	conf := DefaultConfig()
	start, err := conf.StartState()
	require.NoError(t, err)
	require.Len(t, start.LegalMoves(), 20)

	conf.StartFEN = "7k/8/8/8/8/8/8/K5R1 b - - 0 1"
	start, err = conf.StartState()
	require.NoError(t, err)
	require.Equal(t, chess.Black, start.Turn())

	conf.StartFEN = "garbage"
	start, err = conf.StartState()
	require.Error(t, err)
	require.Nil(t, start)
}
