// Package backoff provides delay strategies for retry.
package backoff

import (
	"math"
	"time"
)

// Strategy computes the amount of time to wait before the next attempt.
// Attempt counting starts at 1.
type Strategy func(attempts uint) time.Duration

// Constant waits the same interval between every attempt.
func Constant(interval time.Duration) Strategy {
	return func(attempts uint) time.Duration {
		return interval
	}
}

// Linear grows the delay linearly with the attempt count.
//
// Linear(2*time.Second) yields 2s, 4s, 6s, 8s, ...
func Linear(baseDelay time.Duration) Strategy {
	return func(attempts uint) time.Duration {
		return capOverflow(baseDelay * time.Duration(attempts))
	}
}

// Exponential grows the delay by a multiplicative factor per attempt.
//
// Exponential(2*time.Second, 3) yields 2s, 6s, 18s, 54s, ...
func Exponential(baseDelay time.Duration, base float64) Strategy {
	return func(attempts uint) time.Duration {
		return capOverflow(baseDelay * time.Duration(math.Pow(base, float64(attempts-1))))
	}
}

// BinaryExponential is Exponential with a base of 2.
//
// BinaryExponential(2*time.Second) yields 2s, 4s, 8s, 16s, ...
func BinaryExponential(baseDelay time.Duration) Strategy {
	return Exponential(baseDelay, 2)
}

// capOverflow guards against delays that wrapped negative
func capOverflow(delay time.Duration) time.Duration {
	if delay < 0 {
		return math.MaxInt64
	}
	return delay
}
