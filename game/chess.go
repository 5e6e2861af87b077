package game

import (
	"github.com/notnil/chess"
	"github.com/pkg/errors"
)

// Chess is a State backed by a notnil/chess position.
type Chess struct {
	pos *chess.Position
}

// NewChess returns the standard starting position.
func NewChess() *Chess {
	return &Chess{pos: chess.NewGame().Position()}
}

// FromFEN returns the position described by fen.
func FromFEN(fen string) (*Chess, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, errors.Wrapf(err, "parse FEN %q", fen)
	}
	return &Chess{pos: chess.NewGame(opt).Position()}, nil
}

// Position returns the underlying position.
func (g *Chess) Position() *chess.Position { return g.pos }

func (g *Chess) Turn() chess.Color { return g.pos.Turn() }

func (g *Chess) LegalMoves() []Move {
	valid := g.pos.ValidMoves()
	retVal := make([]Move, len(valid))
	for i, m := range valid {
		retVal[i] = fromChess(m)
	}
	return retVal
}

func (g *Chess) IsCheckmate() bool { return g.pos.Status() == chess.Checkmate }

func (g *Chess) IsStalemate() bool { return g.pos.Status() == chess.Stalemate }

// Apply plays m. Moves that were not produced by LegalMoves are decoded from their UCI string first.
// Applying an illegal move panics: the caller handed in a move for another position.
func (g *Chess) Apply(m Move) State {
	raw := m.raw
	if raw == nil {
		decoded, err := DecodeMove(g, m.uci)
		if err != nil {
			panic(err)
		}
		raw = decoded.raw
	}
	return &Chess{pos: g.pos.Update(raw)}
}

func (g *Chess) FEN() string { return g.pos.String() }

func (g *Chess) String() string { return g.pos.Board().Draw() }
