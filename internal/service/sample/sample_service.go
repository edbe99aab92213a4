package sample

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/dauletq/activity-timeline-backend/internal/categorizer"
	"github.com/dauletq/activity-timeline-backend/internal/entity"
	"github.com/dauletq/activity-timeline-backend/internal/repository"
	redisService "github.com/dauletq/activity-timeline-backend/internal/service/redis"
	"github.com/gofrs/uuid"
)

const maxBatchSize = 1000

type SampleService interface {
	IngestSamples(ctx context.Context, agentID uuid.UUID, req entity.BatchCreateSamplesRequest) (*entity.IngestResult, error)
	IngestIdleSamples(ctx context.Context, agentID uuid.UUID, req entity.BatchCreateIdleSamplesRequest) (*entity.IngestResult, error)
	RecategorizeExisting(ctx context.Context) (int, error)
}

type sampleService struct {
	repo        repository.SampleRepository
	categorizer *categorizer.Categorizer
	cache       redisService.ServiceInterface
}

func NewSampleService(repo repository.SampleRepository, cat *categorizer.Categorizer, cache redisService.ServiceInterface) SampleService {
	return &sampleService{
		repo:        repo,
		categorizer: cat,
		cache:       cache,
	}
}

func (s *sampleService) IngestSamples(ctx context.Context, agentID uuid.UUID, req entity.BatchCreateSamplesRequest) (*entity.IngestResult, error) {
	if len(req.Samples) == 0 {
		return nil, fmt.Errorf("no samples provided")
	}
	if len(req.Samples) > maxBatchSize {
		return nil, fmt.Errorf("too many samples, maximum is %d", maxBatchSize)
	}

	var samples []entity.ProcessSample
	days := make(map[string]bool)
	dropped := 0

	for _, item := range req.Samples {
		ts, err := parseTimestamp(item.Timestamp)
		if err != nil {
			dropped++
			continue
		}

		category := item.Category
		if category == nil || *category == "" {
			if resolved := s.categorizer.Categorize(item.Name); resolved != "" {
				category = &resolved
			} else {
				category = nil
			}
		}

		samples = append(samples, entity.ProcessSample{
			AgentID:      agentID,
			Name:         item.Name,
			Timestamp:    ts,
			Category:     category,
			ActiveWindow: item.ActiveWindow,
		})
		days[ts.Format("2006-01-02")] = true
	}

	if err := s.repo.BatchCreateSamples(ctx, samples); err != nil {
		return nil, fmt.Errorf("failed to ingest samples: %w", err)
	}

	s.invalidateDays(ctx, days)

	return &entity.IngestResult{Accepted: len(samples), Dropped: dropped}, nil
}

func (s *sampleService) IngestIdleSamples(ctx context.Context, agentID uuid.UUID, req entity.BatchCreateIdleSamplesRequest) (*entity.IngestResult, error) {
	if len(req.Samples) == 0 {
		return nil, fmt.Errorf("no idle samples provided")
	}
	if len(req.Samples) > maxBatchSize {
		return nil, fmt.Errorf("too many idle samples, maximum is %d", maxBatchSize)
	}

	var samples []entity.IdleSample
	days := make(map[string]bool)
	dropped := 0

	for _, item := range req.Samples {
		ts, err := parseTimestamp(item.Timestamp)
		if err != nil {
			dropped++
			continue
		}

		samples = append(samples, entity.IdleSample{
			AgentID:   agentID,
			Timestamp: ts,
			IsIdle:    item.IsIdle,
		})
		days[ts.Format("2006-01-02")] = true
	}

	if err := s.repo.BatchCreateIdleSamples(ctx, samples); err != nil {
		return nil, fmt.Errorf("failed to ingest idle samples: %w", err)
	}

	s.invalidateDays(ctx, days)

	return &entity.IngestResult{Accepted: len(samples), Dropped: dropped}, nil
}

// RecategorizeExisting applies the current rule set to samples stored
// without a category, e.g. after a rule edit. Returns the number of
// distinct process names resolved.
func (s *sampleService) RecategorizeExisting(ctx context.Context) (int, error) {
	names, err := s.repo.GetUncategorizedNames(ctx)
	if err != nil {
		return 0, err
	}

	resolved := 0
	for _, name := range names {
		category := s.categorizer.Categorize(name)
		if category == "" {
			continue
		}
		if err := s.repo.UpdateCategoryByName(ctx, name, category); err != nil {
			return resolved, err
		}
		resolved++
	}

	// A rewritten category can change classifications on any past day, so
	// every cached timeline is stale.
	if resolved > 0 && s.cache != nil {
		if err := s.cache.InvalidateAllTimelines(ctx); err != nil {
			log.Printf("failed to invalidate timeline caches: %v", err)
		}
	}

	return resolved, nil
}

func (s *sampleService) invalidateDays(ctx context.Context, days map[string]bool) {
	if s.cache == nil {
		return
	}
	for day := range days {
		if err := s.cache.InvalidateTimeline(ctx, day); err != nil {
			log.Printf("failed to invalidate timeline cache for %s: %v", day, err)
		}
	}
}

func parseTimestamp(value string) (time.Time, error) {
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Parse("2006-01-02T15:04:05", value)
	}
	return ts, nil
}
