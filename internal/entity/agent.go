package entity

import (
	"time"

	"github.com/gofrs/uuid"
)

// Agent is a workstation collector authenticated by API key.
type Agent struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	Hostname   string     `json:"hostname" db:"hostname"`
	APIKey     string     `json:"apiKey" db:"api_key"`
	IsActive   bool       `json:"isActive" db:"is_active"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time  `json:"updatedAt" db:"updated_at"`
	LastSeenAt *time.Time `json:"lastSeenAt" db:"last_seen_at"`
}

// AgentPublic omits the API key for listing endpoints.
type AgentPublic struct {
	ID         uuid.UUID  `json:"id"`
	Hostname   string     `json:"hostname"`
	IsActive   bool       `json:"isActive"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	LastSeenAt *time.Time `json:"lastSeenAt"`
}

type CreateAgentRequest struct {
	Hostname string `json:"hostname" binding:"required,min=1,max=255"`
}

type UpdateAgentRequest struct {
	Hostname *string `json:"hostname,omitempty" binding:"omitempty,min=1,max=255"`
	IsActive *bool   `json:"isActive,omitempty"`
}

type RegenerateAPIKeyResponse struct {
	ID     uuid.UUID `json:"id"`
	APIKey string    `json:"apiKey"`
}

type AgentFilter struct {
	Hostname string `form:"hostname" json:"hostname"`
	IsActive *bool  `form:"isActive" json:"is_active"`
	Limit    int    `form:"limit" json:"limit"`
	Offset   int    `form:"offset" json:"offset"`
}
