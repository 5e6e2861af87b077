package game

import "github.com/notnil/chess"

// State is any game that implements these and are able to report back.
// Implementations must be immutable: Apply returns a new State and leaves the receiver untouched.
type State interface {
	// These methods represent the game state
	Turn() chess.Color  // Turn returns the color to move next.
	LegalMoves() []Move // legal moves in generation order. Empty iff checkmate or stalemate.

	// Meta-game stuff
	IsCheckmate() bool // side to move is in check and has no legal moves
	IsStalemate() bool // side to move is not in check and has no legal moves

	// interactions
	Apply(m Move) State // should return a new State. The required side effect is the Turn has to change.

	// generics
	FEN() string
	String() string // human readable board
}

// Ended reports whether the game has ended and who won. Stalemate has no winner.
func Ended(s State) (ended bool, winner chess.Color) {
	switch {
	case s.IsCheckmate():
		return true, s.Turn().Other()
	case s.IsStalemate():
		return true, chess.NoColor
	}
	return false, chess.NoColor
}
