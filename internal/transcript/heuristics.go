package transcript

import "strings"

// pauseThreshold is the minimum gap in seconds between one cue's end and the
// next cue's start before the gap counts as a natural pause.
const pauseThreshold = 0.5

// sentenceEndSuffixes are the punctuation marks treated as breakpoints.
// The comma is deliberate: auto-generated captions rarely carry full sentence
// punctuation, so a "sentence end" here is a heuristic breakpoint, not a
// linguistic boundary.
var sentenceEndSuffixes = []string{".", "!", "?", "...", ","}

// isSentenceEnd reports whether text looks like the end of a spoken phrase:
// it ends in breakpoint punctuation, or it is long enough (≥8 words) that a
// break is acceptable anywhere.
func isSentenceEnd(text string) bool {
	text = strings.TrimSpace(text)
	for _, suffix := range sentenceEndSuffixes {
		if strings.HasSuffix(text, suffix) {
			return true
		}
	}
	return len(strings.Fields(text)) >= 8
}

// hasNaturalPause reports whether the gap between one cue's end and the next
// cue's start exceeds the pause threshold.
func hasNaturalPause(currentEnd, nextStart float64) bool {
	return nextStart-currentEnd > pauseThreshold
}
