package timeline

// Classify assigns each bucket its dominant category by majority vote
// over the bucket's samples. Samples without a resolved category do not
// vote. Ties resolve to the first category reaching the max count in
// sample-arrival order, which keeps the result deterministic for a fixed
// input order. Buckets with no categorized samples get OtherCategory.
func Classify(buckets map[int]*Bucket) {
	for _, b := range buckets {
		b.Category = dominantCategory(b.Samples)
	}
}

func dominantCategory(samples []Sample) string {
	counts := make(map[string]int)
	best := OtherCategory
	bestCount := 0

	for _, s := range samples {
		if s.Category == "" {
			continue
		}
		counts[s.Category]++
		if counts[s.Category] > bestCount {
			bestCount = counts[s.Category]
			best = s.Category
		}
	}

	return best
}
