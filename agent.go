package montechess

import (
	"sync"

	"github.com/montechess/game"
	"github.com/notnil/chess"
	"golang.org/x/exp/rand"
)

// An Agent is a player, MCTS or random.
type Agent struct {
	Searcher Searcher
	Player   chess.Color

	// Statistics
	Wins float32
	Loss float32
	Draw float32
	sync.Mutex

	name string
}

// NewAgent creates an agent playing player with s.
func NewAgent(name string, player chess.Color, s Searcher) *Agent {
	return &Agent{Searcher: s, Player: player, name: name}
}

func (a *Agent) Name() string { return a.name }

// Search searches the game state and returns a suggested move.
func (a *Agent) Search(g game.State) game.Move {
	return a.Searcher.Search(g)
}

// record books the outcome of a game. winner is NoColor for draws.
func (a *Agent) record(winner chess.Color) {
	a.Lock()
	defer a.Unlock()
	switch winner {
	case chess.NoColor:
		a.Draw++
	case a.Player:
		a.Wins++
	default:
		a.Loss++
	}
}

// RandomSearcher plays a uniformly random legal move.
type RandomSearcher struct {
	r *rand.Rand
}

func NewRandomSearcher(r *rand.Rand) *RandomSearcher { return &RandomSearcher{r: r} }

func (s *RandomSearcher) Search(g game.State) game.Move {
	moves := g.LegalMoves()
	if len(moves) == 0 {
		return game.NullMove
	}
	return moves[s.r.Intn(len(moves))]
}
