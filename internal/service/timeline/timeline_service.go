package timeline

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/dauletq/activity-timeline-backend/internal/entity"
	"github.com/dauletq/activity-timeline-backend/internal/repository"
	redisService "github.com/dauletq/activity-timeline-backend/internal/service/redis"
	"github.com/dauletq/activity-timeline-backend/internal/timeline"
)

const cacheTTL = 5 * time.Minute

type TimelineService interface {
	GetTimeline(ctx context.Context, day time.Time) (*timeline.DayTimeline, error)
	GetStatistics(ctx context.Context, day time.Time) (*entity.DayStatistics, error)
	Export(ctx context.Context, from, to time.Time) (*entity.ExportData, error)
}

// timelineService recomputes the pipeline on demand. Requests for the
// same day may overlap; a monotonic generation token makes the newest
// request win: an older computation finishing late is discarded instead
// of overwriting a newer accepted result. Only the token and the last
// accepted result are shared between invocations.
type timelineService struct {
	repo     repository.SampleRepository
	pipeline *timeline.Pipeline
	cache    redisService.ServiceInterface

	mu        sync.Mutex
	nextGen   uint64
	latestGen map[string]uint64
	accepted  map[string]acceptedEntry
}

type acceptedEntry struct {
	gen    uint64
	result *timeline.DayTimeline
}

func NewTimelineService(repo repository.SampleRepository, pipeline *timeline.Pipeline, cache redisService.ServiceInterface) TimelineService {
	return &timelineService{
		repo:      repo,
		pipeline:  pipeline,
		cache:     cache,
		latestGen: make(map[string]uint64),
		accepted:  make(map[string]acceptedEntry),
	}
}

func (s *timelineService) GetTimeline(ctx context.Context, day time.Time) (*timeline.DayTimeline, error) {
	date := day.Format("2006-01-02")

	if s.cache != nil {
		if cached, err := s.cache.GetTimeline(ctx, date); err == nil {
			return cached, nil
		}
	}

	gen := s.begin(date)

	result, err := s.compute(ctx, day, date)
	if err != nil {
		return nil, err
	}

	return s.commit(ctx, date, gen, result), nil
}

func (s *timelineService) GetStatistics(ctx context.Context, day time.Time) (*entity.DayStatistics, error) {
	result, err := s.GetTimeline(ctx, day)
	if err != nil {
		return nil, err
	}

	return &entity.DayStatistics{
		Date:         result.Date,
		WorkSeconds:  result.WorkSeconds,
		BreakSeconds: result.BreakSeconds,
		Scores:       result.Scores,
		Breakdown:    result.Breakdown,
	}, nil
}

const maxExportDays = 92

// Export collects the raw stored records over an inclusive day range.
func (s *timelineService) Export(ctx context.Context, from, to time.Time) (*entity.ExportData, error) {
	start := truncateToDay(from)
	end := truncateToDay(to)

	if end.Before(start) {
		return nil, fmt.Errorf("invalid range: end date before start date")
	}

	days := int(end.Sub(start).Hours()/24) + 1
	if days > maxExportDays {
		return nil, fmt.Errorf("range too large, maximum is %d days", maxExportDays)
	}

	export := &entity.ExportData{
		Period: entity.ExportPeriod{
			Start: start.Format("2006-01-02"),
			End:   end.Format("2006-01-02"),
			Days:  days,
		},
		ExportedAt: time.Now(),
	}

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		filter := entity.SampleFilter{Day: day}

		samples, err := s.repo.GetSamplesForDay(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to export samples for %s: %w", day.Format("2006-01-02"), err)
		}
		export.Samples = append(export.Samples, samples...)

		idle, err := s.repo.GetIdleSamplesForDay(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to export idle samples for %s: %w", day.Format("2006-01-02"), err)
		}
		export.IdleSamples = append(export.IdleSamples, idle...)
	}

	return export, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (s *timelineService) compute(ctx context.Context, day time.Time, date string) (*timeline.DayTimeline, error) {
	filter := entity.SampleFilter{Day: day}

	stored, err := s.repo.GetSamplesForDay(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load samples: %w", err)
	}

	storedIdle, err := s.repo.GetIdleSamplesForDay(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load idle samples: %w", err)
	}

	result := s.pipeline.Run(toPipelineSamples(stored), toPipelineIdleSamples(storedIdle))
	result.Date = date
	return &result, nil
}

// begin registers a new request for the date and returns its generation.
func (s *timelineService) begin(date string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextGen++
	s.latestGen[date] = s.nextGen
	return s.nextGen
}

// commit accepts the result only while it is still the newest request for
// its date. A superseded result is discarded; callers then get the last
// accepted one when a newer computation already finished.
func (s *timelineService) commit(ctx context.Context, date string, gen uint64, result *timeline.DayTimeline) *timeline.DayTimeline {
	s.mu.Lock()

	if s.latestGen[date] != gen {
		if entry, ok := s.accepted[date]; ok && entry.gen > gen {
			s.mu.Unlock()
			return entry.result
		}
		s.mu.Unlock()
		return result
	}

	s.accepted[date] = acceptedEntry{gen: gen, result: result}
	s.mu.Unlock()

	if s.cache != nil {
		if err := s.cache.CacheTimeline(ctx, date, result, cacheTTL); err != nil {
			log.Printf("failed to cache timeline for %s: %v", date, err)
		}
	}

	return result
}

func toPipelineSamples(stored []entity.ProcessSample) []timeline.Sample {
	samples := make([]timeline.Sample, 0, len(stored))
	for _, s := range stored {
		sample := timeline.Sample{
			Name:      s.Name,
			Timestamp: s.Timestamp.Format(time.RFC3339),
		}
		if s.Category != nil {
			sample.Category = *s.Category
		}
		if s.ActiveWindow != nil {
			sample.ActiveWindow = *s.ActiveWindow
		}
		samples = append(samples, sample)
	}
	return samples
}

func toPipelineIdleSamples(stored []entity.IdleSample) []timeline.IdleSample {
	samples := make([]timeline.IdleSample, 0, len(stored))
	for _, s := range stored {
		samples = append(samples, timeline.IdleSample{
			Timestamp: s.Timestamp.Format(time.RFC3339),
			IsIdle:    s.IsIdle,
		})
	}
	return samples
}
