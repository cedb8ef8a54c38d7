// Package selector picks practice terms.
package selector

import (
	"math/rand"
	"time"
)

// Random picks indexes uniformly at random.
type Random struct {
	rnd *rand.Rand
}

// New returns a Random seeded with the current time.
func New() *Random {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Random with a fixed seed, for reproducible runs.
func NewSeeded(seed int64) *Random {
	return &Random{rnd: rand.New(rand.NewSource(seed))}
}

// Pick returns an index in [0, n). It returns 0 when n <= 0.
func (r *Random) Pick(n int) int {
	if n <= 0 {
		return 0
	}
	return r.rnd.Intn(n)
}

// Fixed always picks the same index, clamped to the range. Useful for scripted runs.
type Fixed int

// Pick implements practice.Selector.
func (f Fixed) Pick(n int) int {
	if n <= 0 || int(f) < 0 {
		return 0
	}
	if int(f) >= n {
		return n - 1
	}
	return int(f)
}
