package utils

import "time"

// Task is a handle to a scheduled callback. Cancel stops the callback from
// firing; cancelling an already-fired or already-cancelled task is a no-op.
type Task interface {
	Cancel()
}

// Clock abstracts wall-clock time and one-shot scheduling so that timer-driven
// state machines can be exercised against a virtual clock in tests.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Task
}

type realClock struct{}

// NewRealClock returns a Clock backed by the runtime timers.
func NewRealClock() Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) AfterFunc(d time.Duration, f func()) Task {
	return timerTask{timer: time.AfterFunc(d, f)}
}

type timerTask struct {
	timer *time.Timer
}

func (t timerTask) Cancel() {
	t.timer.Stop()
}
