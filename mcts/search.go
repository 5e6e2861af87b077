package mcts

import (
	"time"

	"github.com/montechess/game"
	"github.com/rs/zerolog"
)

/*
Here lies the search loop, while node.go and tree.go handle the data structure stuff.

Every call to Search is one complete move decision on a fresh tree:
	EXPAND the root, then repeat TRAVERSE, EXPAND (second visit only), ROLLOUT, BACKPROPAGATE.
The tree is never reused for the next move.
*/

// Phase is the state of a search.
type Phase uint32

const (
	NotStarted Phase = iota
	ExpandingRoot
	Iterating
	Done
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "NotStarted"
	case ExpandingRoot:
		return "ExpandingRoot"
	case Iterating:
		return "Iterating"
	case Done:
		return "Done"
	}
	return "UNKNOWN PHASE"
}

type Option func(m *MCTS)

// WithLogger logs a summary of every search.
func WithLogger(logger zerolog.Logger) Option {
	return func(m *MCTS) {
		m.logger = logger
	}
}

// WithMetrics records the searches into prometheus collectors.
func WithMetrics(metrics *Metrics) Option {
	return func(m *MCTS) {
		if metrics != nil {
			m.metrics = metrics
		}
	}
}

// WithTiming accumulates the time spent in every step of an iteration.
func WithTiming() Option {
	return func(m *MCTS) {
		if m.timings == nil {
			m.timings = &Timings{}
		}
	}
}

// MCTS is the single-threaded search. It is not safe for concurrent use.
type MCTS struct {
	Config
	policy Policy

	logger  zerolog.Logger
	metrics *Metrics
	timings *Timings

	// last search
	phase      Phase
	tree       *Tree
	iterations int
}

func New(conf Config, policy Policy, opts ...Option) *MCTS {
	m := &MCTS{
		Config: conf,
		policy: policy,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if conf.EnableTiming {
		WithTiming()(m)
	}
	return m
}

// Search searches the state with the configured budget and returns the move for the side to move.
func (m *MCTS) Search(state game.State) game.Move {
	return m.SearchN(state, m.Budget)
}

// SearchN runs at most budget iterations from state, optimizing for the side to move.
// It returns NullMove if state is already checkmate or stalemate.
func (m *MCTS) SearchN(state game.State, budget int) game.Move {
	begin := time.Now()
	m.phase = ExpandingRoot
	m.iterations = 0
	m.tree = NewTree(state, state.Turn(), m.Config)
	root := m.tree.Root()

	if root.IsOver() {
		m.phase = Done
		m.logger.Debug().Str("fen", state.FEN()).Msg("root is over, nothing to search")
		return game.NullMove
	}
	// the root expansion is counted but not timed
	root.Expand()
	m.metrics.expansion()

	m.phase = Iterating
	var exhausted bool
	for i := 0; i < budget; i++ {
		stop := m.timings.start(Traversing)
		current := root.Traverse()
		stop()
		if current.IsOver() {
			exhausted = true
			break
		}
		m.iterations++
		m.metrics.iteration()

		if current.N() != 0 {
			m.expand(current)
			// not an exploration choice: always the first generated child
			current = current.tree.nodeFromNaughty(current.tree.Children(current.id)[0])
		}

		stop = m.timings.start(RollingOut)
		current.Rollout(m.policy)
		stop()
		m.metrics.rollout()

		stop = m.timings.start(Backpropagating)
		current.Backpropagate()
		stop()
	}
	m.phase = Done

	best := root.BestMove()
	elapsed := time.Since(begin)
	m.metrics.searched(elapsed, m.tree.Nodes(), exhausted)
	m.logger.Debug().
		Str("fen", state.FEN()).
		Int("iterations", m.iterations).
		Int("nodes", m.tree.Nodes()).
		Bool("exhausted", exhausted).
		Dur("elapsed", elapsed).
		Str("best", best.String()).
		Msg("search done")
	return best
}

func (m *MCTS) expand(n *Node) {
	stop := m.timings.start(Expanding)
	n.Expand()
	stop()
	m.metrics.expansion()
}

// Phase returns the phase of the current or last search.
func (m *MCTS) Phase() Phase { return m.phase }

// Tree returns the tree of the last search, nil before the first one.
func (m *MCTS) Tree() *Tree { return m.tree }

// Iterations returns the number of iterations the last search performed.
func (m *MCTS) Iterations() int { return m.iterations }

// Timings returns the accumulated step timings, nil when timing is disabled.
func (m *MCTS) Timings() *Timings { return m.timings }

// Log renders the last tree down to PrintDepth.
func (m *MCTS) Log() string {
	if m.tree == nil {
		return ""
	}
	return m.tree.String(m.PrintDepth)
}
