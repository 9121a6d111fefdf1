package events

import (
	"sync/atomic"

	"github.com/lixenwraith/flag-arena/constants"
)

// EventQueue is a lock-free MPSC ring buffer for arena events
// Thread-Safety:
//   - Push: Lock-free CAS, multiple producers OK
//   - Consume: Single consumer (dispatch goroutine)
//   - Published flags prevent reading partial writes
//
// Overflow: new events are rejected when full, unread slots are never overwritten
// Droppable events (collisions) are rejected earlier, keeping the last
// constants.EventReservedSlots slots for round-level events
type EventQueue struct {
	events    [constants.EventQueueSize]GameEvent
	published [constants.EventQueueSize]atomic.Bool // True = slot fully written
	head      atomic.Uint64                         // Read index
	tail      atomic.Uint64                         // Write index
	dropped   atomic.Uint64
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push adds event using lock-free CAS with published flags pattern
// Never blocks; satisfies Sink
func (eq *EventQueue) Push(event GameEvent) {
	limit := uint64(constants.EventQueueSize)
	if event.Type.Droppable() {
		limit -= constants.EventReservedSlots
	}

	for {
		currentTail := eq.tail.Load()
		// head only grows, a stale read overestimates occupancy
		if currentTail-eq.head.Load() >= limit {
			eq.dropped.Add(1)
			return
		}

		if eq.tail.CompareAndSwap(currentTail, currentTail+1) {
			idx := currentTail & constants.EventBufferMask

			eq.events[idx] = event
			eq.published[idx].Store(true) // MUST be after write
			return
		}
	}
}

// Dropped returns the number of events rejected on overflow
func (eq *EventQueue) Dropped() uint64 {
	return eq.dropped.Load()
}

// Consume returns all pending events in FIFO order and advances head
func (eq *EventQueue) Consume() []GameEvent {
	for {
		currentHead := eq.head.Load()
		currentTail := eq.tail.Load()

		if currentTail == currentHead {
			return nil
		}

		maxAvailable := currentTail - currentHead

		result := make([]GameEvent, 0, maxAvailable)
		for i := uint64(0); i < maxAvailable; i++ {
			idx := (currentHead + i) & constants.EventBufferMask

			if !eq.published[idx].Load() {
				break // Writer incomplete
			}

			result = append(result, eq.events[idx])
			eq.published[idx].Store(false)
		}

		newHead := currentHead + uint64(len(result))
		if eq.head.CompareAndSwap(currentHead, newHead) {
			if len(result) == 0 {
				return nil
			}
			return result
		}
	}
}

// Len returns the number of unread events
func (eq *EventQueue) Len() int {
	return int(eq.tail.Load() - eq.head.Load())
}
