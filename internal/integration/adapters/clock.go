// Package adapters provides integration-layer implementations of
// application ports.
package adapters

import (
	"time"

	"github.com/billfold/backend/internal/application/adapter"
)

// systemClock implements adapter.Clock using the wall clock.
type systemClock struct{}

// NewSystemClock creates a Clock backed by time.Now.
func NewSystemClock() adapter.Clock {
	return systemClock{}
}

// Now returns the current UTC time.
func (systemClock) Now() time.Time {
	return time.Now().UTC()
}
