// Package transcript turns raw caption cues into a rendered transcript.
//
// Implementation is split across three files by responsibility:
//   format.go     — timestamp formatting ([12.3s], [M:SS], [H:MM:SS])
//   heuristics.go — sentence-end and natural-pause breakpoint predicates
//   grouper.go    — the cue grouping state machine (Process)
//
// Everything here is pure computation over in-memory cues: no I/O, no shared
// state, safe to call concurrently for independent requests.
package transcript
