package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDominantCategory(t *testing.T) {
	tests := []struct {
		name       string
		categories []string
		expected   string
	}{
		{
			name:       "clear majority",
			categories: []string{"Code", "Browser", "Code", "Code"},
			expected:   "Code",
		},
		{
			name:       "tie resolves to first reaching the max",
			categories: []string{"A", "B", "A", "B"},
			expected:   "A",
		},
		{
			name:       "later category overtakes",
			categories: []string{"A", "B", "B"},
			expected:   "B",
		},
		{
			name:       "uncategorized samples do not vote",
			categories: []string{"", "", "Media"},
			expected:   "Media",
		},
		{
			name:       "no categorized samples",
			categories: []string{"", ""},
			expected:   OtherCategory,
		},
		{
			name:       "empty bucket",
			categories: nil,
			expected:   OtherCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			samples := make([]Sample, 0, len(tt.categories))
			for _, c := range tt.categories {
				samples = append(samples, Sample{Name: "proc", Category: c})
			}
			assert.Equal(t, tt.expected, dominantCategory(samples))
		})
	}
}

func TestClassifyAssignsEveryBucket(t *testing.T) {
	cfg := DefaultConfig()
	buckets, _ := BuildBuckets([]Sample{
		sampleAt("2024-03-11T09:00:00Z", "Code"),
		sampleAt("2024-03-11T09:05:00Z", ""),
	}, cfg)

	Classify(buckets)

	assert.Equal(t, "Code", buckets[108].Category)
	assert.Equal(t, OtherCategory, buckets[109].Category)
}
