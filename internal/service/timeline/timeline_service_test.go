package timeline

import (
	"context"
	"testing"
	"time"

	"github.com/dauletq/activity-timeline-backend/internal/entity"
	"github.com/dauletq/activity-timeline-backend/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	samples     []entity.ProcessSample
	idleSamples []entity.IdleSample
	queriedDays []string
}

func (r *stubRepo) BatchCreateSamples(ctx context.Context, samples []entity.ProcessSample) error {
	return nil
}

func (r *stubRepo) BatchCreateIdleSamples(ctx context.Context, samples []entity.IdleSample) error {
	return nil
}

func (r *stubRepo) GetSamplesForDay(ctx context.Context, filter entity.SampleFilter) ([]entity.ProcessSample, error) {
	r.queriedDays = append(r.queriedDays, filter.Day.Format("2006-01-02"))
	return r.samples, nil
}

func (r *stubRepo) GetIdleSamplesForDay(ctx context.Context, filter entity.SampleFilter) ([]entity.IdleSample, error) {
	return r.idleSamples, nil
}

func (r *stubRepo) GetUncategorizedNames(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (r *stubRepo) UpdateCategoryByName(ctx context.Context, name, category string) error {
	return nil
}

func category(name string) *string {
	return &name
}

func testDay() time.Time {
	return time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
}

func newTestService(repo *stubRepo) *timelineService {
	svc := NewTimelineService(repo, timeline.NewPipeline(timeline.DefaultConfig()), nil)
	return svc.(*timelineService)
}

func TestGetTimelineComputesDay(t *testing.T) {
	day := testDay()
	repo := &stubRepo{
		samples: []entity.ProcessSample{
			{Name: "code", Timestamp: day.Add(9 * time.Hour), Category: category("Code")},
			{Name: "code", Timestamp: day.Add(9*time.Hour + 5*time.Minute), Category: category("Code")},
			{Name: "slack", Timestamp: day.Add(9*time.Hour + 10*time.Minute), Category: category("Communication")},
		},
		idleSamples: []entity.IdleSample{
			{Timestamp: day.Add(9*time.Hour + 10*time.Minute), IsIdle: true},
		},
	}

	svc := newTestService(repo)

	result, err := svc.GetTimeline(context.Background(), day)
	require.NoError(t, err)

	assert.Equal(t, "2024-03-11", result.Date)
	require.Len(t, result.Workblocks, 2)
	assert.Equal(t, "Code", result.Workblocks[0].Category)
	assert.Equal(t, 600, result.Workblocks[0].Duration)
	assert.True(t, result.Workblocks[1].IsIdle)
	assert.Equal(t, 600, result.WorkSeconds)
	assert.Equal(t, 300, result.BreakSeconds)
}

func TestGetTimelineEmptyDay(t *testing.T) {
	svc := newTestService(&stubRepo{})

	result, err := svc.GetTimeline(context.Background(), testDay())
	require.NoError(t, err)

	assert.Empty(t, result.Workblocks)
	assert.Zero(t, result.WorkSeconds)
	assert.Equal(t, timeline.Scores{}, result.Scores)
}

func TestGetStatistics(t *testing.T) {
	day := testDay()
	repo := &stubRepo{
		samples: []entity.ProcessSample{
			{Name: "code", Timestamp: day.Add(10 * time.Hour), Category: category("Code")},
		},
	}

	svc := newTestService(repo)

	stats, err := svc.GetStatistics(context.Background(), day)
	require.NoError(t, err)

	assert.Equal(t, "2024-03-11", stats.Date)
	assert.Equal(t, 300, stats.WorkSeconds)
	require.Len(t, stats.Breakdown, 1)
	assert.Equal(t, "Code", stats.Breakdown[0].Name)
}

func TestCommitNewestRequestWins(t *testing.T) {
	svc := newTestService(&stubRepo{})
	date := "2024-03-11"
	ctx := context.Background()

	older := svc.begin(date)
	newer := svc.begin(date)

	newerResult := &timeline.DayTimeline{Date: date, WorkSeconds: 600}
	olderResult := &timeline.DayTimeline{Date: date, WorkSeconds: 300}

	// The newer computation lands first and is accepted.
	accepted := svc.commit(ctx, date, newer, newerResult)
	assert.Same(t, newerResult, accepted)

	// The older computation finishes late: its result is discarded and
	// the caller gets the already-accepted newer one.
	got := svc.commit(ctx, date, older, olderResult)
	assert.Same(t, newerResult, got)
	assert.Equal(t, newer, svc.accepted[date].gen)
}

func TestCommitSupersededWithoutNewerResult(t *testing.T) {
	svc := newTestService(&stubRepo{})
	date := "2024-03-11"
	ctx := context.Background()

	older := svc.begin(date)
	svc.begin(date) // newer request still in flight

	olderResult := &timeline.DayTimeline{Date: date}

	// Nothing newer has been accepted yet, so the stale result is
	// returned to its caller but never stored.
	got := svc.commit(ctx, date, older, olderResult)
	assert.Same(t, olderResult, got)
	_, stored := svc.accepted[date]
	assert.False(t, stored)
}

func TestCommitGenerationsIndependentPerDate(t *testing.T) {
	svc := newTestService(&stubRepo{})
	ctx := context.Background()

	genA := svc.begin("2024-03-11")
	genB := svc.begin("2024-03-12")

	resultA := &timeline.DayTimeline{Date: "2024-03-11"}
	resultB := &timeline.DayTimeline{Date: "2024-03-12"}

	assert.Same(t, resultA, svc.commit(ctx, "2024-03-11", genA, resultA))
	assert.Same(t, resultB, svc.commit(ctx, "2024-03-12", genB, resultB))
}

func TestExportSpansInclusiveDayRange(t *testing.T) {
	day := testDay()
	repo := &stubRepo{
		samples: []entity.ProcessSample{
			{Name: "code", Timestamp: day.Add(9 * time.Hour), Category: category("Code")},
		},
		idleSamples: []entity.IdleSample{
			{Timestamp: day.Add(10 * time.Hour), IsIdle: true},
		},
	}
	svc := newTestService(repo)

	export, err := svc.Export(context.Background(), day, day.AddDate(0, 0, 2))
	require.NoError(t, err)

	assert.Equal(t, "2024-03-11", export.Period.Start)
	assert.Equal(t, "2024-03-13", export.Period.End)
	assert.Equal(t, 3, export.Period.Days)

	// One repo query per day of the range, both ends inclusive.
	assert.Equal(t, []string{"2024-03-11", "2024-03-12", "2024-03-13"}, repo.queriedDays)
	assert.Len(t, export.Samples, 3)
	assert.Len(t, export.IdleSamples, 3)
}

func TestExportRejectsInvertedRange(t *testing.T) {
	svc := newTestService(&stubRepo{})

	_, err := svc.Export(context.Background(), testDay(), testDay().AddDate(0, 0, -1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "end date before start date")
}

func TestExportRejectsOversizedRange(t *testing.T) {
	svc := newTestService(&stubRepo{})

	_, err := svc.Export(context.Background(), testDay(), testDay().AddDate(0, 0, 120))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "range too large")
}
