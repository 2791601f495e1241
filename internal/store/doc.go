// Package store provides SQLite-backed history of simulation runs.
//
// Each row records the outcome of one aggregate or first-low run against a
// circuit, keyed by the circuit's fingerprint. Node state is never stored;
// a run can always be reproduced from its wiring.
//
// # Ordering
//
//   - Every run gets a seq INTEGER from a store-wide logical counter
//   - All list queries use ORDER BY seq ASC, id ASC COLLATE BINARY
//   - Wall-clock time is not recorded, so two stores fed the same runs with
//     the same IDs are identical
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Periods are stored as canonical JSON (see internal/canon).
package store
