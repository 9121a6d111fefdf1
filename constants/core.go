package constants

// Event Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 256

	// EventBufferMask is the bitmask for fast modulo operations (256 - 1)
	EventBufferMask = 255

	// EventReservedSlots stay free for round-level events; droppable events stop at EventQueueSize - EventReservedSlots
	EventReservedSlots = 32
)
