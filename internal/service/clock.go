package service

import "time"

// systemClock is the production [Clock] backed by the time package.
type systemClock struct{}

// NewClock returns the wall clock.
func NewClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
