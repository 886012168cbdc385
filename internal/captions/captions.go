// Package captions fetches timed caption cues for YouTube videos.
//
// Implementation is split across four files by responsibility:
//   videoid.go   — video ID extraction from the URL formats YouTube uses
//   innertube.go — Innertube API constants, types, and low-level HTTP primitives
//   timedtext.go — caption payload parsing (timedtext XML and json3) into cues
//   fetch.go     — fetch orchestration (watch-page scrape + ANDROID player fallback)
//
// The package normalizes everything upstream into transcript.Cue values, so
// the grouping layer never sees raw YouTube payload shapes.
package captions
