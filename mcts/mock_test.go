package mcts

import (
	"github.com/montechess/game"
	"github.com/notnil/chess"
)

// mockPos is a position in a hand written game tree. Move strings are the names of the resulting positions.
type mockPos struct {
	moves []string
	mate  bool
	stale bool
}

type mockGame map[string]mockPos

type mockState struct {
	name string
	turn chess.Color
	game mockGame
}

func (m mockState) Turn() chess.Color { return m.turn }

func (m mockState) LegalMoves() []game.Move {
	pos := m.game[m.name]
	moves := make([]game.Move, len(pos.moves))
	for i, name := range pos.moves {
		moves[i] = game.MakeMove(name, false)
	}
	return moves
}

func (m mockState) IsCheckmate() bool { return m.game[m.name].mate }

func (m mockState) IsStalemate() bool { return m.game[m.name].stale }

func (m mockState) Apply(move game.Move) game.State {
	return mockState{name: move.String(), turn: m.turn.Other(), game: m.game}
}

func (m mockState) FEN() string { return m.name }

func (m mockState) String() string { return m.name }

func newMockState(g mockGame, root string) mockState {
	return mockState{name: root, turn: chess.White, game: g}
}

// exhaustibleGame: a leads to white being mated, b to a stalemate.
var exhaustibleGame = mockGame{
	"r":  {moves: []string{"a", "b"}},
	"a":  {moves: []string{"a1"}},
	"b":  {moves: []string{"b1"}},
	"a1": {mate: true},
	"b1": {stale: true},
}

// countingPolicy counts its evaluations.
type countingPolicy struct {
	value float32
	calls int
}

func (p *countingPolicy) Evaluate(game.State, chess.Color) float32 {
	p.calls++
	return p.value
}
