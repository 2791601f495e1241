// Package harness runs pulse-circuit scenarios and checks their outcomes.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario checks"
//	wiring: |
//	  broadcaster -> a
//	  %a -> rx
//	# or: wiring_file: circuits/counter.txt (relative to the scenario file;
//	#     files ending in .cue are loaded as CUE)
//	initiator: broadcaster   # optional
//	mode: aggregate          # aggregate | first_low
//	presses: 1000            # aggregate only, default 1000
//	sink: rx                 # first_low only, default rx
//	samples: 16              # first_low only
//	max_presses: 1048576     # first_low only
//	expect:
//	  low: 8000
//	  high: 4000
//	  product: 32000000
//	  answer: 105            # first_low
//	  periods: [3, 5, 7]     # first_low, monitor order
//	  error: NON_PERIODIC_FEEDER
//
// Unknown fields are rejected so typos fail loudly.
//
// # Isolation
//
// Every scenario builds its own circuit from its wiring, so scenarios share
// no node state and may run concurrently.
//
// # Golden Files
//
// RunWithGolden snapshots the outcome as canonical JSON under
// testdata/golden/{name}.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
