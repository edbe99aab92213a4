package timeline

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func daySamples() ([]Sample, []IdleSample) {
	samples := []Sample{
		sampleAt("2024-03-11T09:00:10Z", "Code"),
		sampleAt("2024-03-11T09:02:00Z", "Code"),
		sampleAt("2024-03-11T09:05:30Z", "Code"),
		sampleAt("2024-03-11T09:10:15Z", "Meeting"),
		sampleAt("2024-03-11T09:15:40Z", "Browser"),
		sampleAt("2024-03-11T12:00:00Z", "Code"),
		sampleAt("2024-03-11T12:05:00Z", ""),
	}
	idleSamples := []IdleSample{
		{Timestamp: "2024-03-11T09:15:00Z", IsIdle: true},
		{Timestamp: "2024-03-11T12:00:30Z", IsIdle: false},
	}
	return samples, idleSamples
}

func TestPipelineRun(t *testing.T) {
	p := NewPipeline(DefaultConfig())
	samples, idleSamples := daySamples()

	result := p.Run(samples, idleSamples)

	// 09:00+09:05 Code merge, 09:10 Meeting, 09:15 idle Browser,
	// 12:00 Code, 12:05 Other.
	require.Len(t, result.Workblocks, 5)
	assert.Equal(t, "Code", result.Workblocks[0].Category)
	assert.Equal(t, 600, result.Workblocks[0].Duration)
	assert.Equal(t, "Meeting", result.Workblocks[1].Category)
	assert.True(t, result.Workblocks[2].IsIdle)
	assert.Equal(t, "Code", result.Workblocks[3].Category)
	assert.Equal(t, OtherCategory, result.Workblocks[4].Category)

	assert.Equal(t, 1500, result.WorkSeconds)
	assert.Equal(t, 300, result.BreakSeconds)
	assert.Zero(t, result.DroppedSamples)

	require.NotEmpty(t, result.Breakdown)
	assert.Equal(t, "Code", result.Breakdown[0].Name)
}

func TestPipelineIdempotence(t *testing.T) {
	p := NewPipeline(DefaultConfig())
	samples, idleSamples := daySamples()

	first, err := json.Marshal(p.Run(samples, idleSamples))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		next, err := json.Marshal(p.Run(samples, idleSamples))
		require.NoError(t, err)
		assert.Equal(t, string(first), string(next))
	}
}

func TestPipelineEmptyInput(t *testing.T) {
	p := NewPipeline(DefaultConfig())

	result := p.Run(nil, nil)

	assert.Empty(t, result.Workblocks)
	assert.Empty(t, result.Breakdown)
	assert.Equal(t, Scores{}, result.Scores)
	assert.Zero(t, result.WorkSeconds)
	assert.Zero(t, result.BreakSeconds)
	require.Len(t, result.Series.Labels, 64)
}

func TestPipelineCountsDroppedRecords(t *testing.T) {
	p := NewPipeline(DefaultConfig())

	result := p.Run(
		[]Sample{sampleAt("bogus", "Code"), sampleAt("2024-03-11T09:00:00Z", "Code")},
		[]IdleSample{{Timestamp: "also bogus", IsIdle: true}},
	)

	assert.Equal(t, 2, result.DroppedSamples)
	assert.Len(t, result.Workblocks, 1)
}

func TestNewPipelineFallsBackToDefaults(t *testing.T) {
	p := NewPipeline(Config{})
	assert.Equal(t, 5, p.Config().BucketMinutes)
	assert.Equal(t, 5*time.Second, p.Config().SampleInterval)
}
