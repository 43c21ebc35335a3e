// Package clock abstracts the current-time source so scheduling
// logic can be tested against a fixed instant.
package clock

import "time"

type Clock interface {
	// Now returns the current instant in UTC.
	Now() time.Time
}

type systemClock struct{}

func New() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}
