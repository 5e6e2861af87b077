package mcts

import (
	"github.com/chewxy/math32"
	"github.com/montechess/game"
	"github.com/notnil/chess"
)

// Config is the structure to configure the MCTS search.
type Config struct {
	Budget      int     `json:"max_search_iterations" yaml:"max_search_iterations"` // iteration budget per move decision
	Exploration float32 `json:"exploration" yaml:"exploration"`                     // UCB1 exploration constant

	// reward scale. Rewards lie in [-WinScore, WinScore]
	WinScore  float32 `json:"win_score" yaml:"win_score"`
	DrawScore float32 `json:"draw_score" yaml:"draw_score"`

	RolloutSimulations int `json:"rollout_simulations_per_evaluation" yaml:"rollout_simulations_per_evaluation"`
	NoProgressCap      int `json:"no_progress_cap" yaml:"no_progress_cap"` // plies without a capture before a playout is called a draw

	PrintDepth   int  `json:"print_depth" yaml:"print_depth"`
	EnableTiming bool `json:"enable_timing" yaml:"enable_timing"`
}

func DefaultConfig() Config {
	return Config{
		Budget:             1000,
		Exploration:        math32.Sqrt2,
		WinScore:           1,
		DrawScore:          0,
		RolloutSimulations: 10,
		NoProgressCap:      50,
		PrintDepth:         1,
	}
}

func (c Config) IsValid() bool {
	return c.Budget > 0 &&
		c.Exploration >= 0 &&
		c.WinScore > 0 &&
		c.DrawScore >= -c.WinScore && c.DrawScore <= c.WinScore &&
		c.RolloutSimulations > 0 &&
		c.NoProgressCap > 0 &&
		c.PrintDepth >= 0
}

// Tree is the node arena of a single move decision. It owns every node; discarding the Tree discards them all.
type Tree struct {
	playerSide  chess.Color
	exploration float32
	winScore    float32
	drawScore   float32

	nodes    []*Node
	children [][]Naughty
	root     Naughty
}

// NewTree creates a tree with a fresh root holding state. playerSide is the side the search optimizes for,
// and it is fixed for the lifetime of the tree.
func NewTree(state game.State, playerSide chess.Color, conf Config) *Tree {
	t := &Tree{
		playerSide:  playerSide,
		exploration: conf.Exploration,
		winScore:    conf.WinScore,
		drawScore:   conf.DrawScore,
		nodes:       make([]*Node, 0, 1024),
		children:    make([][]Naughty, 0, 1024),
	}
	t.root = t.alloc(state, game.NullMove, nilNode)
	t.nodes[t.root].isRoot = true
	return t
}

// alloc creates a new node in the arena.
func (t *Tree) alloc(state game.State, move game.Move, parent Naughty) Naughty {
	id := Naughty(len(t.nodes))
	t.nodes = append(t.nodes, &Node{
		tree:     t,
		id:       id,
		parent:   parent,
		state:    state,
		nodeSide: state.Turn(),
		move:     move,
	})
	t.children = append(t.children, nil)
	return id
}

// nodeFromNaughty gets the node given the handle.
func (t *Tree) nodeFromNaughty(ptr Naughty) *Node {
	if !ptr.isValid() {
		return nil
	}
	return t.nodes[int(ptr)]
}

// Children returns a list of children handles in insertion order.
func (t *Tree) Children(of Naughty) []Naughty { return t.children[of] }

// Root returns the root node.
func (t *Tree) Root() *Node { return t.nodes[t.root] }

// PlayerSide returns the side the tree optimizes for.
func (t *Tree) PlayerSide() chess.Color { return t.playerSide }

// Nodes returns the number of nodes in the tree.
func (t *Tree) Nodes() int { return len(t.nodes) }

// String renders the root and its descendants down to depth.
func (t *Tree) String(depth int) string { return t.Root().String(depth) }

// checkmateScore is the reward when checkmated is the side that got mated, seen from the player side.
func (t *Tree) checkmateScore(checkmated chess.Color) float32 {
	if checkmated == t.playerSide {
		return -t.winScore
	}
	return t.winScore
}
