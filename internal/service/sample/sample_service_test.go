package sample

import (
	"context"
	"testing"
	"time"

	"github.com/dauletq/activity-timeline-backend/internal/categorizer"
	"github.com/dauletq/activity-timeline-backend/internal/entity"
	"github.com/dauletq/activity-timeline-backend/internal/timeline"
	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	created       []entity.ProcessSample
	createdIdle   []entity.IdleSample
	uncategorized []string
	recategorized map[string]string
}

func (r *stubRepo) BatchCreateSamples(ctx context.Context, samples []entity.ProcessSample) error {
	r.created = append(r.created, samples...)
	return nil
}

func (r *stubRepo) BatchCreateIdleSamples(ctx context.Context, samples []entity.IdleSample) error {
	r.createdIdle = append(r.createdIdle, samples...)
	return nil
}

func (r *stubRepo) GetSamplesForDay(ctx context.Context, filter entity.SampleFilter) ([]entity.ProcessSample, error) {
	return nil, nil
}

func (r *stubRepo) GetIdleSamplesForDay(ctx context.Context, filter entity.SampleFilter) ([]entity.IdleSample, error) {
	return nil, nil
}

func (r *stubRepo) GetUncategorizedNames(ctx context.Context) ([]string, error) {
	return r.uncategorized, nil
}

func (r *stubRepo) UpdateCategoryByName(ctx context.Context, name, category string) error {
	if r.recategorized == nil {
		r.recategorized = make(map[string]string)
	}
	r.recategorized[name] = category
	return nil
}

type stubCache struct {
	invalidatedDays []string
	flushedAll      int
}

func (c *stubCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (c *stubCache) Get(ctx context.Context, key string, dest interface{}) error { return nil }
func (c *stubCache) Delete(ctx context.Context, key string) error                { return nil }
func (c *stubCache) Exists(ctx context.Context, key string) (bool, error)        { return false, nil }

func (c *stubCache) CacheTimeline(ctx context.Context, date string, data *timeline.DayTimeline, ttl time.Duration) error {
	return nil
}

func (c *stubCache) GetTimeline(ctx context.Context, date string) (*timeline.DayTimeline, error) {
	return nil, nil
}

func (c *stubCache) InvalidateTimeline(ctx context.Context, date string) error {
	c.invalidatedDays = append(c.invalidatedDays, date)
	return nil
}

func (c *stubCache) InvalidateAllTimelines(ctx context.Context) error {
	c.flushedAll++
	return nil
}

func (c *stubCache) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return true, nil
}

func (c *stubCache) Health(ctx context.Context) error { return nil }
func (c *stubCache) Close() error                     { return nil }

func TestIngestSamplesDropsUnparsableTimestamps(t *testing.T) {
	repo := &stubRepo{}
	cache := &stubCache{}
	srv := NewSampleService(repo, categorizer.NewWithDefaults(), cache)

	agentID := uuid.Must(uuid.NewV4())
	result, err := srv.IngestSamples(context.Background(), agentID, entity.BatchCreateSamplesRequest{
		Samples: []entity.CreateSampleRequest{
			{Name: "chrome", Timestamp: "2024-03-11T09:00:00Z"},
			{Name: "slack", Timestamp: "not a timestamp"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Accepted)
	assert.Equal(t, 1, result.Dropped)
	require.Len(t, repo.created, 1)
	assert.Equal(t, []string{"2024-03-11"}, cache.invalidatedDays)
}

func TestRecategorizeExistingFlushesTimelineCache(t *testing.T) {
	repo := &stubRepo{uncategorized: []string{"chrome", "unknown-proc"}}
	cache := &stubCache{}
	srv := NewSampleService(repo, categorizer.NewWithDefaults(), cache)

	resolved, err := srv.RecategorizeExisting(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, resolved)
	assert.Equal(t, "Browser", repo.recategorized["chrome"])

	// Recategorization rewrites stored rows on arbitrary past days, so the
	// whole timeline cache goes, same as ingest invalidates its days.
	assert.Equal(t, 1, cache.flushedAll)
}

func TestRecategorizeExistingNothingResolvedKeepsCache(t *testing.T) {
	repo := &stubRepo{uncategorized: []string{"unknown-proc"}}
	cache := &stubCache{}
	srv := NewSampleService(repo, categorizer.NewWithDefaults(), cache)

	resolved, err := srv.RecategorizeExisting(context.Background())

	require.NoError(t, err)
	assert.Zero(t, resolved)
	assert.Zero(t, cache.flushedAll)
}
