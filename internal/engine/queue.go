package engine

import "github.com/roach88/pulsenet/internal/circuit"

// Pulse is one level traveling along one edge.
type Pulse struct {
	Src  circuit.NodeID
	Dst  circuit.NodeID
	High bool
}

// Level names the pulse level for logs and metric labels.
func (p Pulse) Level() string {
	if p.High {
		return "high"
	}
	return "low"
}

// pulseQueue is a FIFO queue of pulses.
//
// The queue is unbounded so a cascade can fan out arbitrarily within one
// press. Only the scheduler's loop touches it, so there is no locking.
type pulseQueue struct {
	pulses []Pulse
	head   int
}

// newPulseQueue creates an empty queue.
func newPulseQueue() *pulseQueue {
	return &pulseQueue{
		pulses: make([]Pulse, 0, 64), // Pre-allocate for typical cascades
	}
}

// Enqueue adds a pulse to the back of the queue.
func (q *pulseQueue) Enqueue(p Pulse) {
	q.pulses = append(q.pulses, p)
}

// TryDequeue removes and returns the front pulse.
// Returns (Pulse{}, false) if the queue is empty.
func (q *pulseQueue) TryDequeue() (Pulse, bool) {
	if q.head == len(q.pulses) {
		// Drained: rewind so the backing array is reused by the next press.
		q.pulses = q.pulses[:0]
		q.head = 0
		return Pulse{}, false
	}
	p := q.pulses[q.head]
	q.head++
	return p, true
}

// Len returns the number of pulses waiting.
func (q *pulseQueue) Len() int {
	return len(q.pulses) - q.head
}
