// Package clock abstracts blocking waits so that retry policies can be
// exercised in tests without real delays.
package clock

import "time"

// Clock provides the sleep capability used between retry attempts.
type Clock interface {
	// Sleep blocks the caller for the given duration
	Sleep(d time.Duration)
}

// Real blocks using time.Sleep. This is the production implementation.
type Real struct{}

var _ Clock = (*Real)(nil)

// NewReal creates the production clock
func NewReal() *Real {
	return &Real{}
}

func (r *Real) Sleep(d time.Duration) {
	time.Sleep(d)
}
