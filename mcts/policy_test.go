package mcts

import (
	"testing"

	"github.com/montechess/game"
	"github.com/notnil/chess"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

const foolsMate = "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"

func TestConstantPolicy(t *testing.T) {
	p := ConstantPolicy(0.25)
	require.Equal(t, float32(0.25), p.Evaluate(game.NewChess(), chess.White))
	require.Equal(t, float32(0.25), p.Evaluate(game.NewChess(), chess.Black))
}

func TestPolicyFunc(t *testing.T) {
	var got chess.Color
	p := PolicyFunc(func(s game.State, side chess.Color) float32 {
		got = side
		return -1
	})
	require.Equal(t, float32(-1), p.Evaluate(game.NewChess(), chess.Black))
	require.Equal(t, chess.Black, got)
}

func TestRandomPlayout(t *testing.T) {
	conf := DefaultConfig()
	newPolicy := func(seed uint64) *RandomPlayout {
		return NewRandomPlayout(conf, rand.New(rand.NewSource(seed)))
	}

	t.Run("checkmated side loses", func(t *testing.T) {
		state := mustFEN(t, foolsMate)
		p := newPolicy(1)
		require.Equal(t, float32(-1), p.Evaluate(state, chess.White), "White is mated")
		require.Equal(t, float32(1), p.Evaluate(state, chess.Black), "Black delivered mate")
	})

	t.Run("stalemate is a draw", func(t *testing.T) {
		state := mustFEN(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
		require.True(t, state.IsStalemate())
		require.Equal(t, float32(0), newPolicy(1).Evaluate(state, chess.White))
	})

	t.Run("no progress cap is a draw", func(t *testing.T) {
		loop := newMockState(mockGame{"loop": {moves: []string{"loop"}}}, "loop")
		p := &RandomPlayout{Simulations: 3, NoProgressCap: 5, WinScore: 1, DrawScore: 0.25, Rand: rand.New(rand.NewSource(1))}
		require.Equal(t, float32(0.25), p.Evaluate(loop, chess.White))
	})

	t.Run("returns the mean of the simulations", func(t *testing.T) {
		// m mates black, d stalemates: a fair coin between 1 and 0
		coin := newMockState(mockGame{
			"r": {moves: []string{"m", "d"}},
			"m": {mate: true},
			"d": {stale: true},
		}, "r")
		p := &RandomPlayout{Simulations: 1000, NoProgressCap: 10, WinScore: 1, Rand: rand.New(rand.NewSource(7))}
		require.InDelta(t, 0.5, float64(p.Evaluate(coin, chess.White)), 0.1)
	})

	t.Run("same seed same result", func(t *testing.T) {
		state := game.NewChess()
		a := newPolicy(42)
		b := newPolicy(42)
		a.Simulations, b.Simulations = 2, 2
		require.Equal(t, a.Evaluate(state, chess.White), b.Evaluate(state, chess.White))
	})

	t.Run("reward stays in range", func(t *testing.T) {
		p := newPolicy(3)
		p.Simulations = 3
		v := p.Evaluate(game.NewChess(), chess.White)
		require.GreaterOrEqual(t, v, -conf.WinScore)
		require.LessOrEqual(t, v, conf.WinScore)
	})
}
