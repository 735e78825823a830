// Package clock wraps time-based waits so bounded retry loops can be tested
// without sleeping.
package clock

import (
	"time"
)

// Clock provides the wait primitive used by bootstrap's wait-then-reprobe loop.
type Clock interface {
	// Sleep pauses the current goroutine for at least the duration d. A negative or zero duration causes Sleep to return immediately.
	Sleep(duration time.Duration)
}

type clock struct{}

// New returns a Clock backed by the real time package.
func New() Clock {
	return clock{}
}

func (clock) Sleep(duration time.Duration) {
	time.Sleep(duration)
}
