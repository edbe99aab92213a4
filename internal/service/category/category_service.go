package category

import (
	"context"
	"fmt"

	"github.com/dauletq/activity-timeline-backend/internal/categorizer"
	"github.com/dauletq/activity-timeline-backend/internal/entity"
	"github.com/dauletq/activity-timeline-backend/internal/repository"
)

type CategoryService interface {
	GetRules(ctx context.Context) categorizer.RuleSet
	UpdateRules(ctx context.Context, req entity.UpdateCategoriesRequest) error
	LoadFromStorage(ctx context.Context) error
}

type categoryService struct {
	repo        repository.CategoryRepository
	categorizer *categorizer.Categorizer
}

func NewCategoryService(repo repository.CategoryRepository, cat *categorizer.Categorizer) CategoryService {
	return &categoryService{
		repo:        repo,
		categorizer: cat,
	}
}

func (s *categoryService) GetRules(ctx context.Context) categorizer.RuleSet {
	return s.categorizer.Rules()
}

// UpdateRules validates the new rule set, activates it and persists it.
// Validation happens first so a broken regex never reaches storage.
func (s *categoryService) UpdateRules(ctx context.Context, req entity.UpdateCategoriesRequest) error {
	rules := categorizer.RuleSet{
		Names:    req.Categories,
		Patterns: req.Patterns,
	}

	if err := s.categorizer.Replace(rules); err != nil {
		return fmt.Errorf("invalid category rules: %w", err)
	}

	if err := s.repo.ReplaceAll(ctx, toRuleRows(rules)); err != nil {
		return fmt.Errorf("failed to persist category rules: %w", err)
	}

	return nil
}

// LoadFromStorage activates the persisted rule set. An empty table means
// first boot: the built-in defaults are seeded instead.
func (s *categoryService) LoadFromStorage(ctx context.Context) error {
	rows, err := s.repo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load category rules: %w", err)
	}

	if len(rows) == 0 {
		defaults := categorizer.DefaultRules()
		if err := s.repo.ReplaceAll(ctx, toRuleRows(defaults)); err != nil {
			return fmt.Errorf("failed to seed default category rules: %w", err)
		}
		return s.categorizer.Replace(defaults)
	}

	return s.categorizer.Replace(fromRuleRows(rows))
}

func toRuleRows(rules categorizer.RuleSet) []entity.CategoryRule {
	var rows []entity.CategoryRule
	for category, names := range rules.Names {
		for _, name := range names {
			rows = append(rows, entity.CategoryRule{
				Category: category,
				Kind:     entity.RuleKindName,
				Value:    name,
			})
		}
	}
	for category, patterns := range rules.Patterns {
		for _, pattern := range patterns {
			rows = append(rows, entity.CategoryRule{
				Category: category,
				Kind:     entity.RuleKindPattern,
				Value:    pattern,
			})
		}
	}
	return rows
}

func fromRuleRows(rows []entity.CategoryRule) categorizer.RuleSet {
	rules := categorizer.RuleSet{
		Names:    make(map[string][]string),
		Patterns: make(map[string][]string),
	}
	for _, row := range rows {
		switch row.Kind {
		case entity.RuleKindPattern:
			rules.Patterns[row.Category] = append(rules.Patterns[row.Category], row.Value)
		default:
			rules.Names[row.Category] = append(rules.Names[row.Category], row.Value)
		}
	}
	return rules
}
