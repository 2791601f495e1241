// Package intmath holds the integer helpers shared by the analyzer.
package intmath

import (
	"errors"
	"math/bits"
)

// ErrOverflow is returned when a least common multiple does not fit in 64 bits.
var ErrOverflow = errors.New("intmath: lcm overflows uint64")

// GCD returns the greatest common divisor of a and b.
// GCD(0, x) is x.
func GCD(a, b uint64) uint64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// LCM returns the least common multiple of a and b.
// LCM(0, x) is 0.
func LCM(a, b uint64) (uint64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	hi, lo := bits.Mul64(a/GCD(a, b), b)
	if hi != 0 {
		return 0, ErrOverflow
	}
	return lo, nil
}

// LCMAll folds LCM over values, starting from 1.
// An empty argument list yields 1.
func LCMAll(values ...uint64) (uint64, error) {
	acc := uint64(1)
	for _, v := range values {
		next, err := LCM(acc, v)
		if err != nil {
			return 0, err
		}
		acc = next
	}
	return acc, nil
}
