package relay

type deliveryQueue struct {
	C chan *Delivery
}

// newDeliveryQueue constructs a new delivery queue and returns a pointer
// to it. The capacity of the queue must be provided.
func newDeliveryQueue(maxCapacity int) *deliveryQueue {
	q := deliveryQueue{
		C: make(chan *Delivery, maxCapacity),
	}

	return &q
}

// Push enqueues a delivery, returning true if the operation was
// successful, and false otherwise. Push never blocks, so concurrent
// pushes at capacity all fail instead of stalling the caller.
func (q *deliveryQueue) Push(d *Delivery) bool {
	select {
	case q.C <- d:
		return true
	default:
		return false
	}
}

// Pop dequeues a delivery, blocking until the dequeue is possible.
func (q *deliveryQueue) Pop() *Delivery {
	return <-q.C
}
