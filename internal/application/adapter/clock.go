// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "time"

// Clock abstracts the current time so the recurrence engine and the
// overdue sweep can be exercised at a fixed "today" in tests.
type Clock interface {
	Now() time.Time
}
