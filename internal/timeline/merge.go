package timeline

// MergeBlocks run-length-merges adjacent buckets into workblocks, walking
// the sparse map in ascending index order. A bucket joins the current
// block only when its index directly follows the block's last bucket,
// both sides are non-idle and the categories match. Missing indices are
// gaps and always force a new block; an idle bucket is always a singleton
// block regardless of neighboring categories.
func MergeBlocks(buckets map[int]*Bucket) []Workblock {
	indices := sortedIndices(buckets)
	blocks := make([]Workblock, 0, len(indices))

	for _, idx := range indices {
		b := buckets[idx]

		if len(blocks) > 0 {
			cur := &blocks[len(blocks)-1]
			if b.Index == cur.lastIndex+1 && !b.IsIdle && !cur.IsIdle && b.Category == cur.Category {
				cur.Duration += int(b.Duration.Seconds())
				cur.Samples = append(cur.Samples, b.Samples...)
				cur.lastIndex = b.Index
				continue
			}
		}

		blocks = append(blocks, Workblock{
			StartTime: b.StartTime,
			Duration:  int(b.Duration.Seconds()),
			Category:  b.Category,
			IsIdle:    b.IsIdle,
			Samples:   append([]Sample(nil), b.Samples...),
			lastIndex: b.Index,
		})
	}

	return blocks
}
