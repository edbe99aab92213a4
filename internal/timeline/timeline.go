// Package timeline turns raw process/idle samples for one day into a
// classified activity timeline: merged work blocks, category breakdown,
// productivity scores and a fixed-grid chart series. The whole package is
// pure and does no I/O; the service layer feeds it from the database.
package timeline

import "time"

// Sample is one process snapshot as delivered by a collector agent.
// Category is resolved before ingestion; an empty string means the
// process could not be categorized.
type Sample struct {
	Name         string `json:"name"`
	Timestamp    string `json:"timestamp"`
	Category     string `json:"category"`
	ActiveWindow string `json:"active_window,omitempty"`
}

// IdleSample is one idle-detector snapshot. It correlates to process
// samples only through the bucket its timestamp lands in.
type IdleSample struct {
	Timestamp string `json:"timestamp"`
	IsIdle    bool   `json:"is_idle"`
}

// Bucket is a fixed-width time-of-day slot aggregating the samples whose
// timestamps fall into it. Index is derived from the time of day, so two
// samples taken in the same slot always share a bucket.
type Bucket struct {
	Index     int
	StartTime time.Time
	Duration  time.Duration
	Samples   []Sample
	Category  string
	IsIdle    bool
}

// Workblock is one or more time-contiguous, same-category, non-idle
// buckets merged into a single labeled interval. An idle bucket is always
// a singleton block.
type Workblock struct {
	StartTime time.Time `json:"startTime"`
	Duration  int       `json:"duration"` // seconds
	Category  string    `json:"category"`
	IsIdle    bool      `json:"isIdle"`

	Samples   []Sample `json:"-"`
	lastIndex int
}

// CategoryBreakdown is per-category observed time computed from the raw
// per-sample quantum, not from merged block durations.
type CategoryBreakdown struct {
	Name    string `json:"name"`
	Seconds int    `json:"seconds"`
	Percent int    `json:"percent"`
}

// Scores are the day's aggregate productivity numbers. Percentages are
// rounded independently and are not constrained to sum to 100.
type Scores struct {
	FocusPercent    int `json:"focusPercent"`
	MeetingsPercent int `json:"meetingsPercent"`
	BreaksPercent   int `json:"breaksPercent"`
	FocusSeconds    int `json:"focusSeconds"`
	MeetingsSeconds int `json:"meetingsSeconds"`
	BreakSeconds    int `json:"breakSeconds"`
}

// Series is the chart-ready projection of the day onto a fixed slot grid.
// All four value slices have the same length as Labels.
type Series struct {
	Labels   []string  `json:"labels"`
	Focus    []float64 `json:"focus"`
	Meetings []float64 `json:"meetings"`
	Other    []float64 `json:"other"`
	Breaks   []float64 `json:"breaks"`
}

// DayTimeline is the complete pipeline output for one day. It is a plain
// value recomputed in full on every invocation; nothing in it persists
// between runs.
type DayTimeline struct {
	Date           string              `json:"date"`
	Workblocks     []Workblock         `json:"workblocks"`
	Breakdown      []CategoryBreakdown `json:"breakdown"`
	Scores         Scores              `json:"scores"`
	Series         Series              `json:"series"`
	WorkSeconds    int                 `json:"workSeconds"`
	BreakSeconds   int                 `json:"breakSeconds"`
	DroppedSamples int                 `json:"droppedSamples"`
}

// Config holds the pipeline tuning knobs. SampleInterval is the nominal
// collection interval and is the single quantum shared by the breakdown
// accounting; the block-based accounting uses bucket durations.
type Config struct {
	BucketMinutes     int
	SampleInterval    time.Duration
	WindowStartHour   int
	WindowEndHour     int
	SlotMinutes       int
	FocusCategories   map[string]bool
	MeetingCategories map[string]bool
}

// OtherCategory labels buckets with no categorized samples.
const OtherCategory = "Other"

func DefaultConfig() Config {
	return Config{
		BucketMinutes:   5,
		SampleInterval:  5 * time.Second,
		WindowStartHour: 6,
		WindowEndHour:   22,
		SlotMinutes:     15,
		FocusCategories: map[string]bool{
			"Code":          true,
			"Documentation": true,
			"Development":   true,
			"Design":        true,
		},
		MeetingCategories: map[string]bool{
			"Meeting":       true,
			"Call":          true,
			"Communication": true,
		},
	}
}

// BucketDuration is the fixed width of every bucket.
func (c Config) BucketDuration() time.Duration {
	return time.Duration(c.BucketMinutes) * time.Minute
}

// BucketsPerDay bounds the valid bucket index range.
func (c Config) BucketsPerDay() int {
	return 24 * 60 / c.BucketMinutes
}
