package util

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Number is any numeric type a physical quantity can be expressed in.
type Number interface {
	constraints.Integer | constraints.Float
}

// InvariantViolation signals a broken construction-time invariant,
// f.ex. a fan whose min rpm is above its max rpm.
type InvariantViolation struct {
	Message string
}

func (e *InvariantViolation) Error() string {
	return "invariant violation: " + e.Message
}

// NewInvariantViolation creates an InvariantViolation with a formatted message
func NewInvariantViolation(format string, a ...interface{}) *InvariantViolation {
	return &InvariantViolation{Message: fmt.Sprintf(format, a...)}
}

// Clamp bounds value to the inclusive range [lo, hi].
// Calling it with 0 <= lo <= hi not being satisfied is a programming error and panics.
func Clamp[T Number](value, lo, hi T) T {
	if lo < 0 || hi < lo {
		panic(NewInvariantViolation("invalid clamp bounds [%v, %v]", lo, hi))
	}
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// Avg calculates the average of all values in the given array
func Avg(values []float64) float64 {
	sum := 0.0
	for i := 0; i < len(values); i++ {
		sum += values[i]
	}
	return sum / (float64(len(values)))
}

func Min[T constraints.Ordered](s []T) T {
	var result T
	if len(s) < 1 {
		return result
	}
	result = s[0]
	for _, v := range s {
		if v < result {
			result = v
		}
	}
	return result
}

func Max[T constraints.Ordered](s []T) T {
	var result T
	if len(s) < 1 {
		return result
	}
	result = s[0]
	for _, v := range s {
		if v > result {
			result = v
		}
	}
	return result
}
