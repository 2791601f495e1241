// Package engine implements the pulse scheduler.
//
// ARCHITECTURE:
//
// Single-Threaded Event Loop:
// A press seeds one low pulse from the initiator to itself and then drains a
// FIFO queue of pulses until it is empty. This ensures:
// - Breadth-first fan-out: every pulse emitted earlier in causal order is
// delivered before any pulse emitted later
// - A press is fully quiescent before the next press is seeded
// - Identical results on every replay of the same circuit
//
// Pulse Processing Flow:
// 1. Press() enqueues (initiator, initiator, low)
// 2. Dequeue one pulse, count it as low or high
// 3. Notify observers with the press number and the pulse
// 4. Deliver it with circuit.Receive
// 5. If the destination emits, enqueue one pulse per output in declared order
//
// Pulses are counted when dequeued, never at enqueue time.
//
// CRITICAL PATTERNS:
//
// Logical Press Clock:
// Presses are numbered 1, 2, 3... by the scheduler's Clock. Observers key
// their samples on that number. Reset rewinds it together with node state.
//
// Ordering:
// The queue is strict FIFO. Conjunction outputs depend on it: depth-first or
// reordered delivery changes what a conjunction remembers when a later pulse
// arrives.
package engine
