package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAt(ts, category string) Sample {
	return Sample{Name: "proc", Timestamp: ts, Category: category}
}

func TestBucketIndex(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name     string
		ts       string
		expected int
	}{
		{name: "midnight", ts: "2024-03-11T00:00:00Z", expected: 0},
		{name: "end of first bucket", ts: "2024-03-11T00:04:59Z", expected: 0},
		{name: "second bucket", ts: "2024-03-11T00:05:00Z", expected: 1},
		{name: "nine o'clock", ts: "2024-03-11T09:00:00Z", expected: 108},
		{name: "last bucket of the day", ts: "2024-03-11T23:59:59Z", expected: 287},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := time.Parse(time.RFC3339, tt.ts)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, BucketIndex(ts, cfg))
		})
	}
}

func TestBuildBucketsPartition(t *testing.T) {
	cfg := DefaultConfig()

	// Two samples inside the same five-minute window share a bucket;
	// samples one window apart land in adjacent indices.
	samples := []Sample{
		sampleAt("2024-03-11T09:00:10Z", "Code"),
		sampleAt("2024-03-11T09:04:50Z", "Code"),
		sampleAt("2024-03-11T09:05:10Z", "Code"),
	}

	buckets, dropped := BuildBuckets(samples, cfg)
	require.Len(t, buckets, 2)
	assert.Zero(t, dropped)

	first := buckets[108]
	require.NotNil(t, first)
	assert.Len(t, first.Samples, 2)
	assert.Equal(t, "2024-03-11T09:00:00Z", first.StartTime.Format(time.RFC3339))
	assert.Equal(t, 5*time.Minute, first.Duration)

	second := buckets[109]
	require.NotNil(t, second)
	assert.Len(t, second.Samples, 1)
	assert.Equal(t, first.Index+1, second.Index)
}

func TestBuildBucketsDropsUnparsable(t *testing.T) {
	cfg := DefaultConfig()

	samples := []Sample{
		sampleAt("2024-03-11T09:00:10Z", "Code"),
		sampleAt("not-a-timestamp", "Code"),
		sampleAt("", "Code"),
	}

	buckets, dropped := BuildBuckets(samples, cfg)
	assert.Len(t, buckets, 1)
	assert.Equal(t, 2, dropped)
}

func TestBuildBucketsAcceptsZonelessTimestamps(t *testing.T) {
	buckets, dropped := BuildBuckets([]Sample{
		sampleAt("2024-03-11T09:02:00", "Code"),
	}, DefaultConfig())

	assert.Zero(t, dropped)
	require.Contains(t, buckets, 108)
}

func TestBuildBucketsEmptyInput(t *testing.T) {
	buckets, dropped := BuildBuckets(nil, DefaultConfig())
	assert.Empty(t, buckets)
	assert.Zero(t, dropped)
}
