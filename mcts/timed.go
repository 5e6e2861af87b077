package mcts

import (
	"fmt"
	"strings"
	"time"
)

// Step is one of the four steps of an iteration.
type Step int

const (
	Traversing Step = iota
	Expanding
	RollingOut
	Backpropagating
	numSteps
)

func (s Step) String() string {
	switch s {
	case Traversing:
		return "traversing"
	case Expanding:
		return "expanding"
	case RollingOut:
		return "rollouting"
	case Backpropagating:
		return "backpropping"
	}
	return "UNKNOWN STEP"
}

// Timings accumulates the time spent in each step across searches.
// Only expansions inside the iteration loop count as Expanding; the root expansion is not timed.
type Timings struct {
	spent [numSteps]time.Duration
}

// start returns the function that stops the clock for step s.
// A nil *Timings does not measure anything.
func (t *Timings) start(s Step) func() {
	if t == nil {
		return func() {}
	}
	begin := time.Now()
	return func() { t.spent[s] += time.Since(begin) }
}

// Spent returns the cumulative duration of step s.
func (t *Timings) Spent(s Step) time.Duration {
	if t == nil {
		return 0
	}
	return t.spent[s]
}

// Merge adds the durations of other.
func (t *Timings) Merge(other *Timings) {
	for s := Traversing; s < numSteps; s++ {
		t.spent[s] += other.Spent(s)
	}
}

// Report returns the cumulative, human readable time report.
func (t *Timings) Report() string {
	var buf strings.Builder
	buf.WriteString("MCTS time report (in s):")
	for s := Traversing; s < numSteps; s++ {
		fmt.Fprintf(&buf, "\ntime spent %v: %.6f", s, t.Spent(s).Seconds())
	}
	return buf.String()
}

// TimedMCTS is a MCTS that measures how long each step takes. The search outcome is the same as the untimed MCTS.
type TimedMCTS struct {
	*MCTS
}

// NewTimed creates a timed search.
func NewTimed(conf Config, policy Policy, opts ...Option) *TimedMCTS {
	return &TimedMCTS{MCTS: New(conf, policy, append(opts, WithTiming())...)}
}

// TimeReport returns the cumulative time report of every search done so far.
func (t *TimedMCTS) TimeReport() string { return t.timings.Report() }
