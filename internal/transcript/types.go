package transcript

// Timestamp formats accepted by FormatTimestamp and Options.TimestampFormat.
const (
	FormatSeconds  = "seconds"
	FormatMinutes  = "minutes"
	FormatHMS      = "hms"
	FormatTimecode = "timecode" // alias for hms
)

// Grouping strategies accepted by Options.GroupingStrategy.
const (
	StrategyFlat     = "flat"     // one timestamp per cue
	StrategyTime     = "time"     // fixed-width buckets of MinInterval seconds
	StrategySmart    = "smart"    // sentence ends + pauses + 25s hard cap
	StrategySentence = "sentence" // sentence ends only
)

// groupHardCap is the maximum span in seconds between a group's anchor and
// the start of its last cue before the smart strategy force-closes it.
const groupHardCap = 25.0

// defaultMinInterval is used when Options.MinInterval is unset or invalid.
const defaultMinInterval = 10.0

// Cue is a single caption entry as delivered by the captions source.
// Start and Duration are seconds. Cues arrive in non-decreasing Start order.
type Cue struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// Segment is a processed cue: trimmed text, derived end time, and the
// formatted timestamp for its start. Segments map 1:1 onto input cues.
type Segment struct {
	Text      string  `json:"text"`
	Start     float64 `json:"start"`
	Duration  float64 `json:"duration"`
	End       float64 `json:"end"`
	Timestamp string  `json:"timestamp"`
}

// Options controls how Process renders cues into text.
type Options struct {
	IncludeTimestamps bool
	TimestampFormat   string  // FormatSeconds, FormatMinutes, FormatHMS/FormatTimecode
	GroupingStrategy  string  // StrategyFlat, StrategyTime, StrategySmart, StrategySentence
	MinInterval       float64 // seconds between emitted timestamps (smart/sentence/time)
}

// Result is the output of Process.
type Result struct {
	Text          string
	Segments      []Segment
	TotalDuration float64
}
