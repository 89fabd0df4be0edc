package event

import "sync"

// Queue is a FIFO of events safe for concurrent use. The zero value is an
// empty queue.
type Queue struct {
	mu     sync.Mutex
	events []Event
}

// Push appends events to the back of the queue.
func (q *Queue) Push(events ...Event) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.events = append(q.events, events...)
}

// Pop removes and returns the event at the front of the queue.
func (q *Queue) Pop() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) == 0 {
		return Event{}, false
	}

	e := q.events[0]
	q.events[0] = Event{}
	q.events = q.events[1:]

	return e, true
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.events)
}

// Drain removes and returns every queued event in order.
func (q *Queue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := q.events
	q.events = nil

	return out
}

// DrainTo moves every queued event to the back of dst.
func (q *Queue) DrainTo(dst *Queue) {
	if dst == q {
		return
	}

	dst.Push(q.Drain()...)
}
