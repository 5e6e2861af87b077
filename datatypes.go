package montechess

import (
	"github.com/montechess/game"
	"github.com/montechess/mcts"
	"github.com/notnil/chess"
)

const (
	OpponentRandom = "random"
	OpponentMCTS   = "mcts"
)

// Config for the Engine.
// It holds attributes that impact the MCTS as well as how games are played.
type Config struct {
	Name         string `json:"name" yaml:"name"`
	MaxGameMoves int    `json:"max_game_moves" yaml:"max_game_moves"` // moves the MCTS agent makes before a game is stopped
	StartFEN     string `json:"start_fen" yaml:"start_fen"`           // empty means the standard starting position
	PlayerSide   string `json:"player_side" yaml:"player_side"`       // "white" or "black"
	Opponent     string `json:"opponent" yaml:"opponent"`             // "random" or "mcts"

	Games   int `json:"games" yaml:"games"`
	Workers int `json:"workers" yaml:"workers"` // games played at the same time

	// 0 seeds from the clock
	Seed     uint64 `json:"seed" yaml:"seed"`
	LogLevel string `json:"log_level" yaml:"log_level"`

	MCTSConf mcts.Config `json:"mcts" yaml:"mcts"`
}

// Searcher is anything that picks a move for the side to move.
type Searcher interface {
	Search(g game.State) game.Move
}

// Termination is why a game stopped.
type Termination string

const (
	Checkmate Termination = "checkmate"
	Stalemate Termination = "stalemate"
	MoveLimit Termination = "move limit"
)

// Result is the record of a single game.
type Result struct {
	Game        int
	Winner      chess.Color // NoColor for a draw or an unfinished game
	Termination Termination
	Moves       []string // UCI, from the start position
	FinalFEN    string
}

// Plies returns the number of half moves played.
func (r Result) Plies() int { return len(r.Moves) }

// MatchResult aggregates the games of a match from the MCTS agent's point of view.
type MatchResult struct {
	Wins       int
	Losses     int
	Draws      int
	Unfinished int
	Results    []Result
}
