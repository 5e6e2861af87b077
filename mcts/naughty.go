package mcts

// Naughty is essentially *Node: an index into the Tree's node arena.
// Parent links are Naughty so that a child never owns its ancestors.
type Naughty int

func (n Naughty) isValid() bool { return n >= 0 }

const (
	nilNode Naughty = -1
)
