package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/dauletq/activity-timeline-backend/internal/entity"
	"github.com/jmoiron/sqlx"
)

type CategoryRepository interface {
	GetAll(ctx context.Context) ([]entity.CategoryRule, error)
	ReplaceAll(ctx context.Context, rules []entity.CategoryRule) error
}

type categoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) GetAll(ctx context.Context) ([]entity.CategoryRule, error) {
	var rules []entity.CategoryRule
	err := r.db.SelectContext(ctx, &rules,
		`SELECT id, category, kind, value, created_at FROM category_rules ORDER BY category, kind, value`)
	if err != nil {
		return nil, fmt.Errorf("failed to get category rules: %w", err)
	}
	return rules, nil
}

// ReplaceAll swaps the whole rule set in one transaction so readers never
// observe a half-applied edit.
func (r *categoryRepository) ReplaceAll(ctx context.Context, rules []entity.CategoryRule) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM category_rules`); err != nil {
		return fmt.Errorf("failed to clear category rules: %w", err)
	}

	if len(rules) > 0 {
		for i := range rules {
			rules[i].CreatedAt = time.Now()
		}

		query := `
			INSERT INTO category_rules (category, kind, value, created_at)
			VALUES (:category, :kind, :value, :created_at)`

		if _, err := tx.NamedExecContext(ctx, query, rules); err != nil {
			return fmt.Errorf("failed to insert category rules: %w", err)
		}
	}

	return tx.Commit()
}
