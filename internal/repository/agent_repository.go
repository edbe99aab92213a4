package repository

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/dauletq/activity-timeline-backend/internal/entity"
	"github.com/gofrs/uuid"
	"github.com/jmoiron/sqlx"
)

type AgentRepository interface {
	Create(ctx context.Context, agent *entity.Agent) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Agent, error)
	GetByAPIKey(ctx context.Context, apiKey string) (*entity.Agent, error)
	GetByHostname(ctx context.Context, hostname string) (*entity.Agent, error)
	GetAll(ctx context.Context, filter entity.AgentFilter) ([]entity.Agent, error)
	Update(ctx context.Context, id uuid.UUID, req entity.UpdateAgentRequest) (*entity.Agent, error)
	RegenerateAPIKey(ctx context.Context, id uuid.UUID) (string, error)
	UpdateLastSeen(ctx context.Context, apiKey string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type agentRepository struct {
	db *sqlx.DB
}

func NewAgentRepository(db *sqlx.DB) AgentRepository {
	return &agentRepository{db: db}
}

func (r *agentRepository) Create(ctx context.Context, agent *entity.Agent) error {
	agent.ID = uuid.Must(uuid.NewV4())
	agent.CreatedAt = time.Now()
	agent.UpdatedAt = time.Now()
	agent.IsActive = true

	apiKey, err := r.generateAPIKey()
	if err != nil {
		return fmt.Errorf("failed to generate API key: %w", err)
	}
	agent.APIKey = apiKey

	query := `
		INSERT INTO agents (id, hostname, api_key, is_active, created_at, updated_at)
		VALUES (:id, :hostname, :api_key, :is_active, :created_at, :updated_at)`

	_, err = r.db.NamedExecContext(ctx, query, agent)
	if err != nil {
		return fmt.Errorf("failed to create agent: %w", err)
	}

	return nil
}

func (r *agentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Agent, error) {
	var agent entity.Agent
	query := `SELECT * FROM agents WHERE id = $1`

	err := r.db.GetContext(ctx, &agent, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get agent by ID: %w", err)
	}

	return &agent, nil
}

func (r *agentRepository) GetByAPIKey(ctx context.Context, apiKey string) (*entity.Agent, error) {
	var agent entity.Agent
	query := `SELECT * FROM agents WHERE api_key = $1 AND is_active = true`

	err := r.db.GetContext(ctx, &agent, query, apiKey)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get agent by API key: %w", err)
	}

	return &agent, nil
}

func (r *agentRepository) GetByHostname(ctx context.Context, hostname string) (*entity.Agent, error) {
	var agent entity.Agent
	query := `SELECT * FROM agents WHERE hostname = $1`

	err := r.db.GetContext(ctx, &agent, query, hostname)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get agent by hostname: %w", err)
	}

	return &agent, nil
}

func (r *agentRepository) GetAll(ctx context.Context, filter entity.AgentFilter) ([]entity.Agent, error) {
	query := `SELECT * FROM agents WHERE 1=1`
	args := []interface{}{}
	argIndex := 1

	if filter.Hostname != "" {
		query += fmt.Sprintf(" AND hostname ILIKE $%d", argIndex)
		args = append(args, "%"+filter.Hostname+"%")
		argIndex++
	}

	if filter.IsActive != nil {
		query += fmt.Sprintf(" AND is_active = $%d", argIndex)
		args = append(args, *filter.IsActive)
		argIndex++
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filter.Limit)
		argIndex++
	}

	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, filter.Offset)
	}

	var agents []entity.Agent
	err := r.db.SelectContext(ctx, &agents, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get agents: %w", err)
	}

	return agents, nil
}

func (r *agentRepository) Update(ctx context.Context, id uuid.UUID, req entity.UpdateAgentRequest) (*entity.Agent, error) {
	query := `UPDATE agents SET updated_at = NOW()`
	args := []interface{}{}
	argIndex := 1

	if req.Hostname != nil {
		query += fmt.Sprintf(", hostname = $%d", argIndex)
		args = append(args, *req.Hostname)
		argIndex++
	}

	if req.IsActive != nil {
		query += fmt.Sprintf(", is_active = $%d", argIndex)
		args = append(args, *req.IsActive)
		argIndex++
	}

	query += fmt.Sprintf(" WHERE id = $%d RETURNING *", argIndex)
	args = append(args, id)

	var agent entity.Agent
	err := r.db.GetContext(ctx, &agent, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update agent: %w", err)
	}

	return &agent, nil
}

func (r *agentRepository) RegenerateAPIKey(ctx context.Context, id uuid.UUID) (string, error) {
	apiKey, err := r.generateAPIKey()
	if err != nil {
		return "", fmt.Errorf("failed to generate API key: %w", err)
	}

	query := `UPDATE agents SET api_key = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, apiKey, id)
	if err != nil {
		return "", fmt.Errorf("failed to regenerate API key: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return "", err
	}
	if rows == 0 {
		return "", fmt.Errorf("agent not found")
	}

	return apiKey, nil
}

func (r *agentRepository) UpdateLastSeen(ctx context.Context, apiKey string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE agents SET last_seen_at = NOW() WHERE api_key = $1`, apiKey)
	return err
}

func (r *agentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM agents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete agent: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("agent not found")
	}

	return nil
}

func (r *agentRepository) generateAPIKey() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return "at_" + hex.EncodeToString(bytes), nil
}
