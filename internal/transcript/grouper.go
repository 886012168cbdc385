package transcript

import (
	"math"
	"strings"
)

// Process renders caption cues into a transcript.
//
// One Segment is produced per input cue, in order, regardless of grouping.
// The rendered text either repeats one timestamp per cue (flat), merges runs
// of consecutive cues under a shared timestamp (time/smart/sentence), or
// carries no timestamps at all when opts.IncludeTimestamps is false.
func Process(cues []Cue, opts Options) Result {
	if len(cues) == 0 {
		return Result{}
	}

	if !opts.IncludeTimestamps {
		return processPlain(cues, opts)
	}

	switch opts.GroupingStrategy {
	case StrategySmart, StrategySentence, StrategyTime:
		return processGrouped(cues, opts)
	default:
		// Flat is also the fallback for unrecognized strategies.
		return processFlat(cues, opts)
	}
}

// processPlain joins bare cue texts with no timestamp prefixes.
func processPlain(cues []Cue, opts Options) Result {
	segments := make([]Segment, 0, len(cues))
	parts := make([]string, 0, len(cues))
	var total float64

	for _, c := range cues {
		seg := newSegment(c, opts.TimestampFormat)
		segments = append(segments, seg)
		total = math.Max(total, seg.End)
		if seg.Text != "" {
			parts = append(parts, seg.Text)
		}
	}

	return Result{
		Text:          strings.Join(parts, " "),
		Segments:      segments,
		TotalDuration: total,
	}
}

// processFlat prefixes every non-empty cue with its own timestamp.
func processFlat(cues []Cue, opts Options) Result {
	segments := make([]Segment, 0, len(cues))
	parts := make([]string, 0, len(cues))
	var total float64

	for _, c := range cues {
		seg := newSegment(c, opts.TimestampFormat)
		segments = append(segments, seg)
		total = math.Max(total, seg.End)
		if seg.Text != "" {
			parts = append(parts, seg.Timestamp+" "+seg.Text)
		}
	}

	return Result{
		Text:          strings.Join(parts, " "),
		Segments:      segments,
		TotalDuration: total,
	}
}

// processGrouped runs the grouping state machine: cues accumulate into an
// open group until the strategy decides to close it, at which point the
// group's texts are emitted under one timestamp anchored at the group start.
func processGrouped(cues []Cue, opts Options) Result {
	minInterval := opts.MinInterval
	bucketWidth := minInterval
	if bucketWidth <= 0 {
		bucketWidth = defaultMinInterval
	}

	segments := make([]Segment, 0, len(cues))
	var parts []string
	var total float64

	var (
		groupOpen  bool
		groupStart float64
		buffer     []string
		// nextAnchor overrides the next group's start (time strategy aligns
		// groups to bucket boundaries rather than cue starts).
		nextAnchor    float64
		hasNextAnchor bool
	)
	lastEmitted := -minInterval

	for i, c := range cues {
		seg := newSegment(c, opts.TimestampFormat)
		segments = append(segments, seg)
		total = math.Max(total, seg.End)

		if !groupOpen {
			groupOpen = true
			buffer = buffer[:0]
			if hasNextAnchor {
				groupStart = nextAnchor
				hasNextAnchor = false
			} else {
				groupStart = seg.Start
			}
		}
		if seg.Text != "" {
			buffer = append(buffer, seg.Text)
		}

		closeGroup := false
		switch opts.GroupingStrategy {
		case StrategySmart:
			switch {
			case isSentenceEnd(seg.Text) && seg.Start-lastEmitted >= minInterval:
				closeGroup = true
			case i+1 < len(cues) && hasNaturalPause(seg.End, cues[i+1].Start):
				closeGroup = true
			case seg.Start-groupStart > groupHardCap:
				closeGroup = true
			}
		case StrategySentence:
			closeGroup = isSentenceEnd(seg.Text) && seg.Start-lastEmitted >= minInterval
		case StrategyTime:
			if i+1 < len(cues) {
				nextBucket := math.Floor(cues[i+1].Start / bucketWidth)
				if nextBucket != math.Floor(groupStart/bucketWidth) {
					closeGroup = true
					nextAnchor = nextBucket * bucketWidth
					hasNextAnchor = true
				}
			}
		}

		if closeGroup || i == len(cues)-1 {
			if len(buffer) > 0 {
				label := FormatTimestamp(groupStart, opts.TimestampFormat)
				parts = append(parts, label+" "+strings.Join(buffer, " "))
				lastEmitted = groupStart
			}
			groupOpen = false
		}
	}

	return Result{
		Text:          strings.Join(parts, " "),
		Segments:      segments,
		TotalDuration: total,
	}
}

// newSegment normalizes one cue: trimmed text, negative or NaN times coerced
// to zero, derived end time and formatted timestamp.
func newSegment(c Cue, format string) Segment {
	start := sanitize(c.Start)
	duration := sanitize(c.Duration)
	return Segment{
		Text:      strings.TrimSpace(c.Text),
		Start:     start,
		Duration:  duration,
		End:       start + duration,
		Timestamp: FormatTimestamp(start, format),
	}
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
