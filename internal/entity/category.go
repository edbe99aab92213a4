package entity

import "time"

// CategoryRule is one stored categorization rule: an exact process name
// or a regex pattern mapped to a category.
type CategoryRule struct {
	ID        int64     `json:"id" db:"id"`
	Category  string    `json:"category" db:"category"`
	Kind      string    `json:"kind" db:"kind"` // "name" or "pattern"
	Value     string    `json:"value" db:"value"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

const (
	RuleKindName    = "name"
	RuleKindPattern = "pattern"
)

// UpdateCategoriesRequest replaces the whole rule set, mirroring the
// categorizer's persistable form.
type UpdateCategoriesRequest struct {
	Categories map[string][]string `json:"categories" binding:"required"`
	Patterns   map[string][]string `json:"patterns"`
}
