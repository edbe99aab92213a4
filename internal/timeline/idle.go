package timeline

// MarkIdle flags every bucket that received at least one positive idle
// sample. The flag is a boolean OR across all idle samples landing in the
// bucket; the classified category label stays untouched for display, only
// the merge and score treatment changes. Idle samples for absent buckets
// and unparsable timestamps are skipped, the latter counted.
func MarkIdle(buckets map[int]*Bucket, idleSamples []IdleSample, cfg Config) int {
	dropped := 0

	for _, is := range idleSamples {
		ts, err := parseTimestamp(is.Timestamp)
		if err != nil {
			dropped++
			continue
		}

		if !is.IsIdle {
			continue
		}

		if b, ok := buckets[BucketIndex(ts, cfg)]; ok {
			b.IsIdle = true
		}
	}

	return dropped
}
