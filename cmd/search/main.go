// Command search runs a single MCTS move decision and prints the tree it built.
//
// Usage:
//
//	go run ./cmd/search --fen "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1" --iterations 500 --timing
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/montechess/game"
	"github.com/montechess/mcts"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"
)

var (
	fen         string
	iterations  int
	simulations int
	depth       int
	timing      bool
	dotPath     string
	seed        uint64
	verbose     bool

	rootCmd = &cobra.Command{
		Use:           "search",
		Short:         "Search a position and print the best move",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runSearch,
	}
)

func init() {
	defaults := mcts.DefaultConfig()
	flags := rootCmd.Flags()
	flags.StringVar(&fen, "fen", "", "position to search, the standard start when empty")
	flags.IntVarP(&iterations, "iterations", "i", defaults.Budget, "iteration budget")
	flags.IntVar(&simulations, "simulations", defaults.RolloutSimulations, "random playouts per rollout")
	flags.IntVarP(&depth, "depth", "d", defaults.PrintDepth, "depth of the printed tree")
	flags.BoolVar(&timing, "timing", false, "print the time spent in every step")
	flags.StringVar(&dotPath, "dot", "", "write the tree as graphviz DOT into this file")
	flags.Uint64Var(&seed, "seed", 0, "random seed, 0 seeds from the clock")
	flags.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func runSearch(cmd *cobra.Command, args []string) error {
	var state game.State = game.NewChess()
	if fen != "" {
		g, err := game.FromFEN(fen)
		if err != nil {
			return err
		}
		state = g
	}

	conf := mcts.DefaultConfig()
	conf.Budget = iterations
	conf.RolloutSimulations = simulations
	conf.PrintDepth = depth
	conf.EnableTiming = timing
	if !conf.IsValid() {
		return errors.Errorf("invalid search settings: %+v", conf)
	}

	lvl := zerolog.InfoLevel
	if verbose {
		lvl = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().Timestamp().Logger()

	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	m := mcts.New(conf, mcts.NewRandomPlayout(conf, rand.New(rand.NewSource(seed))), mcts.WithLogger(logger))
	best := m.Search(state)

	out := cmd.OutOrStdout()
	if best.IsNull() {
		fmt.Fprintf(out, "no move: the position is over\n%v\n", state)
		return nil
	}
	fmt.Fprintf(out, "best move: %v after %d iterations\n\n", best, m.Iterations())
	fmt.Fprintln(out, m.Log())
	if timing {
		fmt.Fprintln(out, m.Timings().Report())
	}
	if dotPath != "" {
		dot, err := m.Tree().Dot(depth)
		if err != nil {
			return err
		}
		if err := os.WriteFile(dotPath, []byte(dot), 0o644); err != nil {
			return errors.Wrapf(err, "write %s", dotPath)
		}
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "search: %+v\n", err)
		os.Exit(1)
	}
}
