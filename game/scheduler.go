package game

import "time"

// Scheduler defers work onto real time. There is no cancellation: the room
// re-validates its preconditions when a callback fires, so late or superseded
// callbacks are harmless.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func())
}

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}

func NewScheduler() Scheduler {
	return timerScheduler{}
}

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func NewClock() Clock {
	return systemClock{}
}
