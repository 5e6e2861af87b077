package montechess

import (
	"fmt"
	"io"

	"github.com/montechess/game"
	"github.com/notnil/chess"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// treeLogger is a Searcher that can render its last search tree.
type treeLogger interface {
	Log() string
}

// Arena represents a game arena: the MCTS agent against an opponent.
type Arena struct {
	start           game.State
	game            game.State
	agent, opponent *Agent

	// state
	currentPlayer *Agent
	maxMoves      int
	logger        zerolog.Logger

	name       string
	gameNumber int // which game is this in
}

// MakeArena makes an arena given a start state.
func MakeArena(start game.State, agent, opponent *Agent, maxMoves int, logger zerolog.Logger, name string) Arena {
	if name == "" {
		name = "UNKNOWN GAME"
	}
	return Arena{
		start:    start,
		game:     start,
		agent:    agent,
		opponent: opponent,
		maxMoves: maxMoves,
		logger:   logger,
		name:     name,
	}
}

// Play plays a game from the start state, and records who is the winner.
// The game stops on checkmate, stalemate, or once the MCTS agent has made maxMoves moves.
func (a *Arena) Play() (Result, error) {
	if a.agent.Player == a.opponent.Player {
		return Result{}, errors.Errorf("both agents play %v", a.agent.Player)
	}
	a.game = a.start
	a.currentPlayer = a.agent
	if a.game.Turn() != a.agent.Player {
		a.currentPlayer = a.opponent
	}

	res := Result{Game: a.gameNumber, Winner: chess.NoColor}
	var agentMoves int
	for {
		if ended, winner := game.Ended(a.game); ended {
			res.Winner = winner
			res.Termination = Stalemate
			if a.game.IsCheckmate() {
				res.Termination = Checkmate
			}
			break
		}
		if a.currentPlayer == a.agent && agentMoves >= a.maxMoves {
			res.Termination = MoveLimit
			break
		}

		best := a.currentPlayer.Search(a.game)
		if best.IsNull() {
			return res, errors.Errorf("%s returned no move in %v", a.currentPlayer.Name(), a.game.FEN())
		}
		a.logger.Info().
			Int("game", a.gameNumber).
			Int("ply", len(res.Moves)+1).
			Str("player", a.currentPlayer.Name()).
			Str("side", a.game.Turn().Name()).
			Str("move", best.String()).
			Msg("move decided")
		if tl, ok := a.currentPlayer.Searcher.(treeLogger); ok && a.logger.GetLevel() <= zerolog.DebugLevel {
			a.logger.Debug().Msgf("--- Node tree after search ---\n%s", tl.Log())
		}
		if a.currentPlayer == a.agent {
			agentMoves++
		}

		a.game = a.game.Apply(best)
		res.Moves = append(res.Moves, best.String())
		a.switchPlayer()
	}
	res.FinalFEN = a.game.FEN()

	if res.Termination != MoveLimit {
		a.agent.record(res.Winner)
		a.opponent.record(res.Winner)
	}
	a.logger.Info().
		Int("game", a.gameNumber).
		Str("termination", string(res.Termination)).
		Str("winner", res.Winner.Name()).
		Int("plies", res.Plies()).
		Msg("game over")
	return res, nil
}

// GameNumber returns the number of the game in its match.
func (a *Arena) GameNumber() int { return a.gameNumber }

// Name of the game
func (a *Arena) Name() string { return a.name }

// State of the game
func (a *Arena) State() game.State { return a.game }

// Log the MCTS trees of both players into w
func (a *Arena) Log(w io.Writer) {
	fmt.Fprintf(w, "%s\n%s\n", a.name, a.game)
	for _, agent := range []*Agent{a.agent, a.opponent} {
		if tl, ok := agent.Searcher.(treeLogger); ok {
			fmt.Fprintf(w, "\n%s:\n\n", agent.Name())
			fmt.Fprintln(w, tl.Log())
		}
	}
}

func (a *Arena) switchPlayer() {
	switch a.currentPlayer {
	case a.agent:
		a.currentPlayer = a.opponent
	case a.opponent:
		a.currentPlayer = a.agent
	}
}
