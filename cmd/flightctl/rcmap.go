package main

import "golang.org/x/exp/constraints"

// constrain clamps value within [min, max], same helper WingFC defines
// in helpers.go.
func constrain[T constraints.Float](value, min, max T) T {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// mapRange linearly remaps value from [fromMin, fromMax] to [toMin, toMax],
// the same generic helper WingFC defines in main.go/helpers.go.
func mapRange[T constraints.Float](value, fromMin, fromMax, toMin, toMax T) T {
	return (value-fromMin)/(fromMax-fromMin)*(toMax-toMin) + toMin
}
