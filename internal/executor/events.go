package executor

import (
	"log"
	"sync/atomic"
	"time"
)

// EventType identifies a progress notification.
type EventType string

const (
	EventPlanning      EventType = "planning"
	EventPlanCreated   EventType = "plan_created"
	EventTaskStarted   EventType = "task_started"
	EventTaskCompleted EventType = "task_completed"
	EventTaskFailed    EventType = "task_failed"
	EventPlanCompleted EventType = "plan_completed"
	EventPlanFailed    EventType = "plan_failed"
	EventReplanning    EventType = "replanning"
	EventSummary       EventType = "summary"
)

// Event is a fire-and-forget progress notification. There is no
// delivery guarantee and no backpressure: a full channel drops events.
type Event struct {
	Type    EventType
	PlanID  string
	TaskID  string
	Message string
	Time    time.Time
}

// EventEmitter provides a simple, thread-safe way to emit events to
// subscribers.
type EventEmitter struct {
	events       chan Event
	droppedCount atomic.Uint64
}

// NewEventEmitter creates an EventEmitter with the given buffer size.
func NewEventEmitter(bufferSize int) *EventEmitter {
	return &EventEmitter{events: make(chan Event, bufferSize)}
}

// Emit sends an event to the events channel. A full channel gets one
// short grace period before the event is dropped.
func (e *EventEmitter) Emit(event Event) {
	event.Time = time.Now()

	select {
	case e.events <- event:
		return
	default:
	}

	select {
	case e.events <- event:
	case <-time.After(100 * time.Millisecond):
		count := e.droppedCount.Add(1)
		if count%10 == 1 { // log every 10th drop to avoid spam
			log.Printf("[executor] WARNING: event channel full, dropped event (total dropped: %d): type=%s", count, event.Type)
		}
	}
}

// DroppedCount returns the total number of events that have been dropped.
func (e *EventEmitter) DroppedCount() uint64 {
	return e.droppedCount.Load()
}

// Events returns a read-only channel of events for subscribers.
func (e *EventEmitter) Events() <-chan Event {
	return e.events
}

// Close closes the events channel. Call once the executor is done.
func (e *EventEmitter) Close() {
	close(e.events)
}
