package entity

import (
	"time"

	"github.com/gofrs/uuid"
)

// ProcessSample is one stored process snapshot from a collector agent.
type ProcessSample struct {
	ID           uuid.UUID `json:"id" db:"id"`
	AgentID      uuid.UUID `json:"agentId" db:"agent_id"`
	Name         string    `json:"name" db:"process_name"`
	Timestamp    time.Time `json:"timestamp" db:"timestamp"`
	Category     *string   `json:"category" db:"category"`
	ActiveWindow *string   `json:"active_window,omitempty" db:"active_window"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// IdleSample is one stored idle-detector snapshot.
type IdleSample struct {
	ID        uuid.UUID `json:"id" db:"id"`
	AgentID   uuid.UUID `json:"agentId" db:"agent_id"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	IsIdle    bool      `json:"is_idle" db:"is_idle"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type CreateSampleRequest struct {
	Name         string  `json:"name" binding:"required"`
	Timestamp    string  `json:"timestamp" binding:"required"`
	Category     *string `json:"category"`
	ActiveWindow *string `json:"active_window,omitempty"`
}

type BatchCreateSamplesRequest struct {
	Samples []CreateSampleRequest `json:"samples" binding:"required,dive"`
}

type CreateIdleSampleRequest struct {
	Timestamp string `json:"timestamp" binding:"required"`
	IsIdle    bool   `json:"is_idle"`
}

type BatchCreateIdleSamplesRequest struct {
	Samples []CreateIdleSampleRequest `json:"samples" binding:"required,dive"`
}

// IngestResult reports how a batch went. Samples with unparsable
// timestamps are dropped and counted, never a request failure.
type IngestResult struct {
	Accepted int `json:"accepted"`
	Dropped  int `json:"dropped"`
}

// SampleFilter scopes sample queries to one day and optionally one agent.
type SampleFilter struct {
	Day     time.Time
	AgentID *uuid.UUID
}
