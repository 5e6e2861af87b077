package game

import (
	"github.com/notnil/chess"
	"github.com/pkg/errors"
)

// Move encodes a chess move. The zero value is NullMove, the move "leading" to a root.
type Move struct {
	raw     *chess.Move
	uci     string
	capture bool
}

// NullMove is what a root holds, and what a search returns when there is nothing to play.
var NullMove = Move{}

// MakeMove creates an engine-independent move. Useful for states that are not backed by notnil/chess.
func MakeMove(uci string, capture bool) Move {
	return Move{uci: uci, capture: capture}
}

func fromChess(m *chess.Move) Move {
	return Move{raw: m, capture: m.HasTag(chess.Capture) || m.HasTag(chess.EnPassant)}
}

// String returns the move in UCI notation.
func (m Move) String() string {
	if m.raw != nil {
		return m.raw.String()
	}
	return m.uci
}

// IsNull returns true for the zero move.
func (m Move) IsNull() bool { return m.raw == nil && m.uci == "" }

// IsCapture returns true if the move took a piece. En passant counts as a capture.
func (m Move) IsCapture() bool { return m.capture }

// Eq compares moves by their UCI encoding.
func (m Move) Eq(other Move) bool { return m.String() == other.String() }

// DecodeMove parses an UCI move that is legal in s.
func DecodeMove(s *Chess, uci string) (Move, error) {
	m, err := chess.UCINotation{}.Decode(s.pos, uci)
	if err != nil {
		return NullMove, errors.Wrapf(err, "decode %q", uci)
	}
	for _, legal := range s.pos.ValidMoves() {
		if legal.S1() == m.S1() && legal.S2() == m.S2() && legal.Promo() == m.Promo() {
			return fromChess(legal), nil
		}
	}
	return NullMove, errors.Errorf("move %q is not legal in %v", uci, s.FEN())
}

// EncodeMove writes the move in UCI notation.
func EncodeMove(m Move) string {
	if m.IsNull() {
		return "0000"
	}
	return m.String()
}
