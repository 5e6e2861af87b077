// Command play runs a match between the MCTS agent and an opponent.
//
// Usage:
//
//	go run ./cmd/play --config match.yaml
//	go run ./cmd/play --games 10 --workers 4 --seed 7 --metrics-addr :9090
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	montechess "github.com/montechess"
	"github.com/montechess/mcts"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	games       int
	workers     int
	seed        uint64
	startFEN    string
	side        string
	opponent    string
	metricsAddr string

	rootCmd = &cobra.Command{
		Use:           "play",
		Short:         "Play games between the MCTS agent and an opponent",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runPlay,
	}
)

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "YAML config file, defaults are used when empty")
	flags.IntVarP(&games, "games", "n", 1, "number of games")
	flags.IntVarP(&workers, "workers", "w", 1, "games played at the same time")
	flags.Uint64Var(&seed, "seed", 0, "random seed, 0 seeds from the clock")
	flags.StringVar(&startFEN, "fen", "", "start position, the standard one when empty")
	flags.StringVar(&side, "side", "white", "side of the MCTS agent")
	flags.StringVar(&opponent, "opponent", montechess.OpponentRandom, "opponent: random or mcts")
	flags.StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
}

func loadConfig(cmd *cobra.Command) (montechess.Config, error) {
	conf := montechess.DefaultConfig()
	if configPath != "" {
		var err error
		if conf, err = montechess.LoadConfig(configPath); err != nil {
			return conf, err
		}
	}

	// flags set on the command line win over the file
	flags := cmd.Flags()
	if flags.Changed("games") {
		conf.Games = games
	}
	if flags.Changed("workers") {
		conf.Workers = workers
	}
	if flags.Changed("seed") {
		conf.Seed = seed
	}
	if flags.Changed("fen") {
		conf.StartFEN = startFEN
	}
	if flags.Changed("side") {
		conf.PlayerSide = side
	}
	if flags.Changed("opponent") {
		conf.Opponent = opponent
	}
	return conf, conf.Validate()
}

func runPlay(cmd *cobra.Command, args []string) error {
	conf, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(conf.Level()).
		With().Timestamp().Logger()

	reg := prometheus.NewRegistry()
	metrics, err := mcts.NewMetrics(reg)
	if err != nil {
		return err
	}
	if metricsAddr != "" {
		srv := &http.Server{Addr: metricsAddr, Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{})}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error().Err(err).Msg("metrics server")
			}
		}()
		defer srv.Close()
		logger.Info().Str("addr", metricsAddr).Msg("serving metrics")
	}

	engine, err := montechess.New(conf, montechess.WithLogger(logger), montechess.WithMetrics(metrics))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	res, err := engine.Match(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, r := range res.Results {
		fmt.Fprintf(out, "game %d: %s, winner %s after %d plies\n", r.Game, r.Termination, r.Winner.Name(), r.Plies())
	}
	fmt.Fprintf(out, "wins %d, losses %d, draws %d, unfinished %d\n", res.Wins, res.Losses, res.Draws, res.Unfinished)
	if conf.MCTSConf.EnableTiming {
		fmt.Fprintln(out, engine.TimeReport())
	}
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "play: %+v\n", err)
		os.Exit(1)
	}
}
