package mcts

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	"github.com/montechess/game"
	"github.com/notnil/chess"
)

// Node is one game state reached from the root of a Tree, plus its search statistics.
// The parent link is a non-owning arena handle; the children are owned through the Tree.
type Node struct {
	tree   *Tree
	id     Naughty
	parent Naughty

	state    game.State
	nodeSide chess.Color // side to move at state
	move     game.Move   // the move producing this node. NullMove for the root

	isRoot   bool
	terminal bool // game-terminal or search-exhausted
	expanded bool
	pending  bool // a rollout result that has not been backpropagated yet

	t float32 // accumulated reward
	n uint32  // visits
}

func (n *Node) Format(s fmt.State, c rune) {
	move := n.move.String()
	if n.isRoot {
		move = "root"
	}
	fmt.Fprintf(s, "{NodeID: %v, Move: %v, Side: %v, T: %.3f, N: %d, UCB1: %.3f, Terminal: %v}",
		n.id, move, n.nodeSide, n.t, n.n, n.UCB1(), n.IsOver())
}

func (n *Node) ID() int { return int(n.id) }

// State returns the snapshot held by the node.
func (n *Node) State() game.State { return n.state }

// Move gets the move associated with the node.
func (n *Node) Move() game.Move { return n.move }

// Side returns the side to move at this node.
func (n *Node) Side() chess.Color { return n.nodeSide }

// PlayerSide returns the side the whole tree optimizes for.
func (n *Node) PlayerSide() chess.Color { return n.tree.playerSide }

func (n *Node) IsRoot() bool { return n.isRoot }

// T returns the accumulated reward.
func (n *Node) T() float32 { return n.t }

// N returns the visit count.
func (n *Node) N() uint32 { return n.n }

// Parent returns the parent, or nil for the root.
func (n *Node) Parent() *Node { return n.tree.nodeFromNaughty(n.parent) }

// Children returns the children in insertion order.
func (n *Node) Children() []*Node {
	kids := n.tree.Children(n.id)
	retVal := make([]*Node, len(kids))
	for i, kid := range kids {
		retVal[i] = n.tree.nodeFromNaughty(kid)
	}
	return retVal
}

// HasChildren returns true if the node has children.
func (n *Node) HasChildren() bool { return len(n.tree.children[n.id]) > 0 }

// IsOver is true if the node was flagged terminal, or if its state is checkmate or stalemate.
func (n *Node) IsOver() bool {
	return n.terminal || n.state.IsCheckmate() || n.state.IsStalemate()
}

// Expand creates one child per legal move, in generation order.
// Children that are checkmate or stalemate are scored right away and backpropagated as a single rollout.
func (n *Node) Expand() {
	if contractChecks && n.expanded {
		violated("node %v expanded twice", n.id)
	}
	n.expanded = true

	tree := n.tree
	for _, m := range n.state.LegalMoves() {
		next := n.state.Apply(m)
		kid := tree.alloc(next, m, n.id)
		tree.children[n.id] = append(tree.children[n.id], kid)

		child := tree.nodeFromNaughty(kid)
		switch {
		case next.IsCheckmate():
			// the side to move has no legal moves and is in check: it has lost
			child.settle(tree.checkmateScore(next.Turn()))
		case next.IsStalemate():
			child.settle(tree.drawScore)
		}
	}
}

// settle scores a game-terminal child deterministically as one synthetic rollout.
func (n *Node) settle(score float32) {
	n.terminal = true
	n.t = score
	n.n = 1
	n.pending = true
	n.Backpropagate()
}

// UCB1 returns t/n + c*sqrt(ln(N)/n), where N is the parent's visits (1 at the root).
// Unvisited nodes, and children of an unvisited parent, return +Inf so that they are always selected.
func (n *Node) UCB1() float32 {
	if n.n == 0 {
		return math32.Inf(1)
	}
	parentVisits := float32(1)
	if parent := n.Parent(); parent != nil {
		if parent.n == 0 {
			return math32.Inf(1)
		}
		parentVisits = float32(parent.n)
	}
	visits := float32(n.n)
	return n.t/visits + n.tree.exploration*math32.Sqrt(math32.Log(parentVisits)/visits)
}

// Traverse descends from n along the strict argmax-UCB1 children and returns the frontier node:
// the first selected child that has no children yet.
//
// A node whose children are all over is flagged terminal and the descent re-enters at its parent.
// Once n itself is exhausted it is flagged terminal and its parent is returned; the root returns itself.
func (n *Node) Traverse() *Node {
	tree := n.tree
	current := n
	for {
		best := current.selectChild(false)
		if best == nilNode {
			current.terminal = true
			if current.isRoot || !current.parent.isValid() {
				return current
			}
			if current == n {
				return n.Parent()
			}
			current = current.Parent()
			continue
		}

		child := tree.nodeFromNaughty(best)
		if !child.HasChildren() {
			return child
		}
		current = child
	}
}

// selectChild returns the first child with the highest UCB1. Over children are skipped unless all is set.
func (n *Node) selectChild(all bool) Naughty {
	tree := n.tree
	kids := tree.Children(n.id)
	candidates := make([]Naughty, 0, len(kids))
	scores := make([]float32, 0, len(kids))
	for _, kid := range kids {
		child := tree.nodeFromNaughty(kid)
		if !all && child.IsOver() {
			continue
		}
		candidates = append(candidates, kid)
		scores = append(scores, child.UCB1())
	}
	if len(candidates) == 0 {
		return nilNode
	}
	return candidates[argmax(scores)]
}

// Rollout evaluates the node with the policy from the player side's point of view.
// The result overwrites t and n is incremented; it has to be followed by exactly one Backpropagate.
func (n *Node) Rollout(policy Policy) {
	n.t = policy.Evaluate(n.state, n.tree.playerSide)
	n.n++
	n.pending = true
}

// Backpropagate adds the node's t and one visit to every strict ancestor, stopping at the root.
func (n *Node) Backpropagate() {
	if contractChecks && !n.pending {
		violated("node %v backpropagated without a rollout", n.id)
	}
	n.pending = false

	tree := n.tree
	for p := n; !p.isRoot && p.parent.isValid(); {
		p = tree.nodeFromNaughty(p.parent)
		p.t += n.t
		p.n++
	}
}

// BestChild returns the child with the highest UCB1 among all children, terminal ones included.
// It returns nil when the node has no children.
func (n *Node) BestChild() *Node {
	return n.tree.nodeFromNaughty(n.selectChild(true))
}

// BestMove returns the move of BestChild, or NullMove when there are no children.
func (n *Node) BestMove() game.Move {
	best := n.BestChild()
	if best == nil {
		return game.NullMove
	}
	return best.move
}

// String renders the node and its descendants down to depth. Depth 0 renders the node alone.
// This is a debugging aid; the format is not stable.
func (n *Node) String(depth int) string {
	var buf strings.Builder
	n.render(&buf, depth, 0)
	return buf.String()
}

func (n *Node) render(buf *strings.Builder, depth, indent int) {
	pad := strings.Repeat("\t", indent)
	fmt.Fprintf(buf, "%s%v\n", pad, n)
	for _, line := range strings.Split(strings.TrimRight(n.state.String(), "\n"), "\n") {
		fmt.Fprintf(buf, "%s%s\n", pad, line)
	}
	if depth <= 0 {
		return
	}
	for _, child := range n.Children() {
		child.render(buf, depth-1, indent+1)
	}
}
