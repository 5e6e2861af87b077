//go:build !nocontracts

package mcts

import "fmt"

// contractChecks is turned off with the nocontracts build tag.
const contractChecks = true

// violated panics with a contract violation message. Callers guard it with contractChecks.
func violated(format string, args ...interface{}) {
	panic(fmt.Sprintf("mcts: contract violation: "+format, args...))
}
