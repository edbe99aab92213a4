package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/dauletq/activity-timeline-backend/internal/entity"
	uuid2 "github.com/gofrs/uuid"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type SampleRepository interface {
	BatchCreateSamples(ctx context.Context, samples []entity.ProcessSample) error
	BatchCreateIdleSamples(ctx context.Context, samples []entity.IdleSample) error
	GetSamplesForDay(ctx context.Context, filter entity.SampleFilter) ([]entity.ProcessSample, error)
	GetIdleSamplesForDay(ctx context.Context, filter entity.SampleFilter) ([]entity.IdleSample, error)
	GetUncategorizedNames(ctx context.Context) ([]string, error)
	UpdateCategoryByName(ctx context.Context, name, category string) error
}

type sampleRepository struct {
	db *sqlx.DB
}

func NewSampleRepository(db *sqlx.DB) SampleRepository {
	return &sampleRepository{db: db}
}

func (r *sampleRepository) BatchCreateSamples(ctx context.Context, samples []entity.ProcessSample) error {
	if len(samples) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO process_samples (id, agent_id, process_name, timestamp, category, active_window, created_at)
		VALUES (:id, :agent_id, :process_name, :timestamp, :category, :active_window, :created_at)`

	for i := range samples {
		samples[i].ID = uuid2.UUID(uuid.New())
		samples[i].CreatedAt = time.Now()
	}

	_, err = tx.NamedExecContext(ctx, query, samples)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *sampleRepository) BatchCreateIdleSamples(ctx context.Context, samples []entity.IdleSample) error {
	if len(samples) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO idle_samples (id, agent_id, timestamp, is_idle, created_at)
		VALUES (:id, :agent_id, :timestamp, :is_idle, :created_at)`

	for i := range samples {
		samples[i].ID = uuid2.UUID(uuid.New())
		samples[i].CreatedAt = time.Now()
	}

	_, err = tx.NamedExecContext(ctx, query, samples)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *sampleRepository) GetSamplesForDay(ctx context.Context, filter entity.SampleFilter) ([]entity.ProcessSample, error) {
	query := `
		SELECT id, agent_id, process_name, timestamp, category, active_window, created_at
		FROM process_samples
		WHERE timestamp >= $1 AND timestamp < $2`

	dayStart, dayEnd := dayBounds(filter.Day)
	args := []interface{}{dayStart, dayEnd}

	if filter.AgentID != nil {
		query += " AND agent_id = $3"
		args = append(args, *filter.AgentID)
	}

	query += " ORDER BY timestamp ASC"

	var samples []entity.ProcessSample
	err := r.db.SelectContext(ctx, &samples, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get samples: %w", err)
	}

	return samples, nil
}

func (r *sampleRepository) GetIdleSamplesForDay(ctx context.Context, filter entity.SampleFilter) ([]entity.IdleSample, error) {
	query := `
		SELECT id, agent_id, timestamp, is_idle, created_at
		FROM idle_samples
		WHERE timestamp >= $1 AND timestamp < $2`

	dayStart, dayEnd := dayBounds(filter.Day)
	args := []interface{}{dayStart, dayEnd}

	if filter.AgentID != nil {
		query += " AND agent_id = $3"
		args = append(args, *filter.AgentID)
	}

	query += " ORDER BY timestamp ASC"

	var samples []entity.IdleSample
	err := r.db.SelectContext(ctx, &samples, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get idle samples: %w", err)
	}

	return samples, nil
}

func (r *sampleRepository) GetUncategorizedNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.SelectContext(ctx, &names,
		`SELECT DISTINCT process_name FROM process_samples WHERE category IS NULL`)
	if err != nil {
		return nil, fmt.Errorf("failed to get uncategorized names: %w", err)
	}
	return names, nil
}

func (r *sampleRepository) UpdateCategoryByName(ctx context.Context, name, category string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE process_samples SET category = $1 WHERE process_name = $2 AND category IS NULL`,
		category, name)
	if err != nil {
		return fmt.Errorf("failed to update category for %s: %w", name, err)
	}
	return nil
}

func dayBounds(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return start, start.AddDate(0, 0, 1)
}
