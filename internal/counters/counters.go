// Package counters tracks how many image tasks are waiting and how many are
// running.
//
// A Counters value is created once per process and handed to whatever
// schedules work; the image core never touches it. All methods are safe for
// concurrent use.
package counters

import "sync/atomic"

// Counters holds the queued and in-flight task counts.
type Counters struct {
	queued   atomic.Int64
	inFlight atomic.Int64
}

// New returns zeroed counters.
func New() *Counters {
	return &Counters{}
}

// Enqueue records a task that has been accepted but not started.
func (c *Counters) Enqueue() {
	c.queued.Add(1)
}

// Start moves one task from queued to in-flight.
func (c *Counters) Start() {
	c.queued.Add(-1)
	c.inFlight.Add(1)
}

// Done records the completion of an in-flight task.
func (c *Counters) Done() {
	c.inFlight.Add(-1)
}

// Queued returns the number of tasks waiting to start.
func (c *Counters) Queued() int64 {
	return c.queued.Load()
}

// InFlight returns the number of running tasks.
func (c *Counters) InFlight() int64 {
	return c.inFlight.Load()
}
