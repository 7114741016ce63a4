package mathutil

import (
	"golang.org/x/exp/constraints"
)

func Limit[T constraints.Ordered](v, min, max T) T {
	if v < min {
		return min
	} else if v > max {
		return max
	}
	return v
}
