package mcts

import (
	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/stat"
)

// argmax returns the index of the first maximum. Ties go to the lowest index.
func argmax(a []float32) int {
	var retVal int
	var max = math32.Inf(-1)
	for i := range a {
		if a[i] > max {
			max = a[i]
			retVal = i
		}
	}
	return retVal
}

// mean of a slice of float64, as float32.
func mean32(xs []float64) float32 {
	if len(xs) == 0 {
		return 0
	}
	return float32(stat.Mean(xs, nil))
}
