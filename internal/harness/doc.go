// Package harness runs conformance scenarios against timelines.
//
// A scenario names a timeline file, a number of rounds and a list of
// assertions over the rounds the multitrack produced. Each run uses a fresh
// in-memory store: rounds are persisted and read back before assertions are
// evaluated, so a passing scenario also proves the round log round-trips.
//
// Example scenario:
//
//	name: gap-filling
//	description: Empty slots yield filler
//	timeline: ../timelines/gap.yaml
//	rounds: 6
//	assertions:
//	  - type: pull
//	    round: 0
//	    track: 1
//	    kind: filler
//	  - type: output
//	    round: 2
//	    track: 0
//	    resource: bg
//
// Golden traces (RunWithGolden) are the canonical JSON of every round plus
// the diagnostics reported during the run.
package harness
