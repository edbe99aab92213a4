package timeline

import (
	"sort"
	"time"
)

// BuildBuckets groups samples into fixed-width time-of-day buckets. The
// result is sparse: slots without samples are simply absent. Samples whose
// timestamps cannot be parsed are dropped and counted, never fatal.
func BuildBuckets(samples []Sample, cfg Config) (map[int]*Bucket, int) {
	buckets := make(map[int]*Bucket)
	dropped := 0

	for _, s := range samples {
		ts, err := parseTimestamp(s.Timestamp)
		if err != nil {
			dropped++
			continue
		}

		idx := BucketIndex(ts, cfg)
		b, ok := buckets[idx]
		if !ok {
			b = &Bucket{
				Index:     idx,
				StartTime: bucketStart(ts, cfg),
				Duration:  cfg.BucketDuration(),
			}
			buckets[idx] = b
		}
		b.Samples = append(b.Samples, s)
	}

	return buckets, dropped
}

// BucketIndex maps a timestamp to its time-of-day slot.
func BucketIndex(t time.Time, cfg Config) int {
	return t.Hour()*(60/cfg.BucketMinutes) + t.Minute()/cfg.BucketMinutes
}

// bucketStart truncates a timestamp to its bucket boundary, keeping the
// date and location.
func bucketStart(t time.Time, cfg Config) time.Time {
	minute := t.Minute() - t.Minute()%cfg.BucketMinutes
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), minute, 0, 0, t.Location())
}

// sortedIndices returns the bucket keys in ascending order. The sparse
// map itself has no iteration order, so every pass over buckets goes
// through here.
func sortedIndices(buckets map[int]*Bucket) []int {
	indices := make([]int, 0, len(buckets))
	for idx := range buckets {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	return indices
}

func parseTimestamp(value string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		// Collector agents on some platforms omit the zone suffix.
		return time.Parse("2006-01-02T15:04:05", value)
	}
	return ts, nil
}
