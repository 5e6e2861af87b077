package montechess

import (
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/montechess/game"
	"github.com/montechess/mcts"
	"github.com/notnil/chess"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

func DefaultConfig() Config {
	return Config{
		Name:         "montechess",
		MaxGameMoves: 100,
		PlayerSide:   "white",
		Opponent:     OpponentRandom,
		Games:        1,
		Workers:      1,
		LogLevel:     "info",
		MCTSConf:     mcts.DefaultConfig(),
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig and validates it.
func LoadConfig(path string) (Config, error) {
	conf := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return conf, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return conf, errors.Wrapf(err, "parse config %s", path)
	}
	if err := conf.Validate(); err != nil {
		return conf, errors.WithMessage(err, path)
	}
	return conf, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs *multierror.Error
	if c.MaxGameMoves <= 0 {
		errs = multierror.Append(errs, errors.Errorf("max_game_moves must be positive, got %d", c.MaxGameMoves))
	}
	if _, err := c.Side(); err != nil {
		errs = multierror.Append(errs, err)
	}
	switch c.Opponent {
	case OpponentRandom, OpponentMCTS:
	default:
		errs = multierror.Append(errs, errors.Errorf("unknown opponent %q", c.Opponent))
	}
	if c.Games <= 0 {
		errs = multierror.Append(errs, errors.Errorf("games must be positive, got %d", c.Games))
	}
	if c.Workers <= 0 {
		errs = multierror.Append(errs, errors.Errorf("workers must be positive, got %d", c.Workers))
	}
	if c.StartFEN != "" {
		if _, err := game.FromFEN(c.StartFEN); err != nil {
			errs = multierror.Append(errs, err)
		}
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = multierror.Append(errs, errors.Wrap(err, "log_level"))
	}
	if !c.MCTSConf.IsValid() {
		errs = multierror.Append(errs, errors.Errorf("mcts config is not valid: %+v", c.MCTSConf))
	}
	return errs.ErrorOrNil()
}

// Side returns the color the MCTS agent plays.
func (c Config) Side() (chess.Color, error) {
	switch strings.ToLower(c.PlayerSide) {
	case "white", "w":
		return chess.White, nil
	case "black", "b":
		return chess.Black, nil
	}
	return chess.NoColor, errors.Errorf("unknown player_side %q", c.PlayerSide)
}

// StartState returns the position the games start from.
func (c Config) StartState() (game.State, error) {
	if c.StartFEN == "" {
		return game.NewChess(), nil
	}
	g, err := game.FromFEN(c.StartFEN)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Level returns the configured log level, Info if it cannot be parsed.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
