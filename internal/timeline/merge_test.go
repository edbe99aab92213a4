package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDay is a shorthand for tests: one categorized sample per listed
// timestamp, classified and ready to merge.
func buildDay(t *testing.T, cfg Config, entries map[string]string) map[int]*Bucket {
	t.Helper()

	var samples []Sample
	for ts, category := range entries {
		samples = append(samples, sampleAt(ts, category))
	}

	buckets, dropped := BuildBuckets(samples, cfg)
	require.Zero(t, dropped)
	Classify(buckets)
	return buckets
}

func TestMergeContiguousSameCategory(t *testing.T) {
	cfg := DefaultConfig()
	buckets := buildDay(t, cfg, map[string]string{
		"2024-03-11T09:00:00Z": "Code",
		"2024-03-11T09:05:00Z": "Code",
		"2024-03-11T09:10:00Z": "Code",
	})

	blocks := MergeBlocks(buckets)
	require.Len(t, blocks, 1)

	assert.Equal(t, 900, blocks[0].Duration)
	assert.Equal(t, "Code", blocks[0].Category)
	assert.False(t, blocks[0].IsIdle)
	assert.Equal(t, "2024-03-11T09:00:00Z", blocks[0].StartTime.Format(time.RFC3339))
	assert.Len(t, blocks[0].Samples, 3)
}

func TestMergeGapBreaksBlock(t *testing.T) {
	cfg := DefaultConfig()
	buckets := buildDay(t, cfg, map[string]string{
		"2024-03-11T09:00:00Z": "Code",
		"2024-03-11T09:10:00Z": "Code", // 09:05 bucket absent
	})

	blocks := MergeBlocks(buckets)
	require.Len(t, blocks, 2)
	assert.Equal(t, 300, blocks[0].Duration)
	assert.Equal(t, 300, blocks[1].Duration)
}

func TestMergeCategoryChangeBreaksBlock(t *testing.T) {
	cfg := DefaultConfig()
	buckets := buildDay(t, cfg, map[string]string{
		"2024-03-11T09:00:00Z": "Code",
		"2024-03-11T09:05:00Z": "Meeting",
		"2024-03-11T09:10:00Z": "Meeting",
	})

	blocks := MergeBlocks(buckets)
	require.Len(t, blocks, 2)
	assert.Equal(t, "Code", blocks[0].Category)
	assert.Equal(t, "Meeting", blocks[1].Category)
	assert.Equal(t, 600, blocks[1].Duration)
}

func TestMergeIdleBucketStaysSingleton(t *testing.T) {
	cfg := DefaultConfig()
	buckets := buildDay(t, cfg, map[string]string{
		"2024-03-11T09:00:00Z": "Code",
		"2024-03-11T09:05:00Z": "Code",
		"2024-03-11T09:10:00Z": "Code",
	})

	dropped := MarkIdle(buckets, []IdleSample{
		{Timestamp: "2024-03-11T09:05:30Z", IsIdle: true},
	}, cfg)
	require.Zero(t, dropped)

	blocks := MergeBlocks(buckets)
	require.Len(t, blocks, 3)

	// Idle precedence: the flagged bucket never merges with its
	// matching-category neighbors, and keeps its category label.
	assert.False(t, blocks[0].IsIdle)
	assert.True(t, blocks[1].IsIdle)
	assert.Equal(t, "Code", blocks[1].Category)
	assert.False(t, blocks[2].IsIdle)
}

func TestMarkIdleIgnoresInactiveAndUnknownBuckets(t *testing.T) {
	cfg := DefaultConfig()
	buckets := buildDay(t, cfg, map[string]string{
		"2024-03-11T09:00:00Z": "Code",
	})

	dropped := MarkIdle(buckets, []IdleSample{
		{Timestamp: "2024-03-11T09:01:00Z", IsIdle: false}, // active signal
		{Timestamp: "2024-03-11T12:00:00Z", IsIdle: true},  // no such bucket
		{Timestamp: "garbage", IsIdle: true},
		{Timestamp: "also garbage", IsIdle: false},
	}, cfg)

	// Unparsable timestamps count as dropped regardless of the idle flag.
	assert.Equal(t, 2, dropped)
	assert.False(t, buckets[108].IsIdle)
}

func TestMergeEmptyInput(t *testing.T) {
	assert.Empty(t, MergeBlocks(map[int]*Bucket{}))
}
