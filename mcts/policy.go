package mcts

import (
	"github.com/montechess/game"
	"github.com/notnil/chess"
	"golang.org/x/exp/rand"
)

// Policy evaluates a state from side's point of view. It has no access to the tree.
type Policy interface {
	Evaluate(state game.State, side chess.Color) float32
}

// PolicyFunc is an adapter to allow the use of ordinary functions as a Policy.
type PolicyFunc func(state game.State, side chess.Color) float32

func (f PolicyFunc) Evaluate(state game.State, side chess.Color) float32 { return f(state, side) }

// ConstantPolicy always returns the same value. Useful for deterministic searches.
type ConstantPolicy float32

func (p ConstantPolicy) Evaluate(game.State, chess.Color) float32 { return float32(p) }

// RandomPlayout plays uniformly random legal moves until the game ends or NoProgressCap plies pass without a capture.
// It averages Simulations independent playouts.
type RandomPlayout struct {
	Simulations   int
	NoProgressCap int
	WinScore      float32
	DrawScore     float32

	// single shared generator. Not safe for concurrent use.
	Rand *rand.Rand
}

// NewRandomPlayout creates a random playout policy using the reward scale and limits from conf.
func NewRandomPlayout(conf Config, r *rand.Rand) *RandomPlayout {
	return &RandomPlayout{
		Simulations:   conf.RolloutSimulations,
		NoProgressCap: conf.NoProgressCap,
		WinScore:      conf.WinScore,
		DrawScore:     conf.DrawScore,
		Rand:          r,
	}
}

func (p *RandomPlayout) Evaluate(state game.State, side chess.Color) float32 {
	sims := p.Simulations
	if sims <= 0 {
		sims = 1
	}
	outcomes := make([]float64, sims)
	for i := range outcomes {
		outcomes[i] = float64(p.playout(state, side))
	}
	return mean32(outcomes)
}

func (p *RandomPlayout) playout(state game.State, side chess.Color) float32 {
	var uneventful int
	for !state.IsCheckmate() && !state.IsStalemate() && uneventful < p.NoProgressCap {
		moves := state.LegalMoves()
		if contractChecks && len(moves) == 0 {
			violated("state %v has no legal moves but is neither checkmate nor stalemate", state.FEN())
		}
		m := moves[p.Rand.Intn(len(moves))]
		state = state.Apply(m)
		if m.IsCapture() {
			uneventful = 0
		} else {
			uneventful++
		}
	}

	if state.IsCheckmate() {
		if state.Turn() == side {
			return -p.WinScore
		}
		return p.WinScore
	}
	return p.DrawScore
}
