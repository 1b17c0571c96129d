// File: internal/usecase/engagement.go
package usecase

import "math/rand"

// nextLatencyAvg folds one latency sample into the running average using
// integer floor division. n is the tests-run count before this sample.
func nextLatencyAvg(avg int64, n int, sample int64) int64 {
	if n <= 0 {
		return sample
	}
	return (avg*int64(n) + sample) / int64(n+1)
}

// dwellMinutes returns the attacker-time-wasted accrual for one turn:
// a uniform draw in [1,2] minutes, but only while honeypot mode is on and
// the classifier wants the engagement to continue.
func dwellMinutes(rng *rand.Rand, honeypotMode, shouldEngage bool) int {
	if !honeypotMode || !shouldEngage {
		return 0
	}
	return 1 + rng.Intn(2)
}
