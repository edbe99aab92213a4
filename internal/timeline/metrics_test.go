package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateScores(t *testing.T) {
	cfg := DefaultConfig()
	start := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)

	blocks := []Workblock{
		{StartTime: start, Duration: 900, Category: "Code"},
		{StartTime: start.Add(15 * time.Minute), Duration: 300, Category: "Meeting"},
		{StartTime: start.Add(20 * time.Minute), Duration: 300, Category: "Browser"},
		{StartTime: start.Add(25 * time.Minute), Duration: 300, Category: "Code", IsIdle: true},
	}

	scores, workSeconds, breakSeconds := AggregateScores(blocks, cfg)

	assert.Equal(t, 1500, workSeconds)
	assert.Equal(t, 300, breakSeconds)
	assert.Equal(t, 900, scores.FocusSeconds)
	assert.Equal(t, 300, scores.MeetingsSeconds)
	assert.Equal(t, 300, scores.BreakSeconds)

	// 900/1800, 300/1800, 300/1800 rounded.
	assert.Equal(t, 50, scores.FocusPercent)
	assert.Equal(t, 17, scores.MeetingsPercent)
	assert.Equal(t, 17, scores.BreaksPercent)
}

func TestAggregateScoresZeroInput(t *testing.T) {
	scores, workSeconds, breakSeconds := AggregateScores(nil, DefaultConfig())

	assert.Zero(t, workSeconds)
	assert.Zero(t, breakSeconds)
	assert.Equal(t, Scores{}, scores)
}

func TestAggregateScoresBounds(t *testing.T) {
	cfg := DefaultConfig()
	start := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		blocks []Workblock
	}{
		{
			name:   "all focus",
			blocks: []Workblock{{StartTime: start, Duration: 3600, Category: "Code"}},
		},
		{
			name:   "all idle",
			blocks: []Workblock{{StartTime: start, Duration: 3600, IsIdle: true, Category: OtherCategory}},
		},
		{
			name: "mixed",
			blocks: []Workblock{
				{StartTime: start, Duration: 300, Category: "Design"},
				{StartTime: start.Add(5 * time.Minute), Duration: 300, Category: "Call"},
				{StartTime: start.Add(10 * time.Minute), Duration: 300, IsIdle: true, Category: "Call"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores, _, _ := AggregateScores(tt.blocks, cfg)
			for _, pct := range []int{scores.FocusPercent, scores.MeetingsPercent, scores.BreaksPercent} {
				assert.GreaterOrEqual(t, pct, 0)
				assert.LessOrEqual(t, pct, 100)
			}
		})
	}
}

func TestBuildBreakdown(t *testing.T) {
	cfg := DefaultConfig()

	samples := []Sample{
		{Name: "code", Category: "Code"},
		{Name: "code", Category: "Code"},
		{Name: "code", Category: "Code"},
		{Name: "slack", Category: "Communication"},
		{Name: "mystery", Category: ""},
	}

	breakdown := BuildBreakdown(samples, cfg)
	require.Len(t, breakdown, 2)

	// Descending by seconds, per-sample quantum of 5s each.
	assert.Equal(t, "Code", breakdown[0].Name)
	assert.Equal(t, 15, breakdown[0].Seconds)
	assert.Equal(t, 75, breakdown[0].Percent)

	assert.Equal(t, "Communication", breakdown[1].Name)
	assert.Equal(t, 5, breakdown[1].Seconds)
	assert.Equal(t, 25, breakdown[1].Percent)
}

func TestBuildBreakdownOrdering(t *testing.T) {
	cfg := DefaultConfig()

	var samples []Sample
	for i := 0; i < 5; i++ {
		samples = append(samples, Sample{Category: "Code"})
	}
	for i := 0; i < 3; i++ {
		samples = append(samples, Sample{Category: "Browser"})
	}
	samples = append(samples, Sample{Category: "Media"})

	breakdown := BuildBreakdown(samples, cfg)
	for i := 1; i < len(breakdown); i++ {
		assert.GreaterOrEqual(t, breakdown[i-1].Seconds, breakdown[i].Seconds)
	}
}

func TestBuildBreakdownEmptyInput(t *testing.T) {
	assert.Empty(t, BuildBreakdown(nil, DefaultConfig()))
	assert.Empty(t, BuildBreakdown([]Sample{{Category: ""}}, DefaultConfig()))
}
