package agent

import (
	"context"
	"fmt"

	"github.com/dauletq/activity-timeline-backend/internal/entity"
	"github.com/dauletq/activity-timeline-backend/internal/repository"
	"github.com/gofrs/uuid"
)

type AgentService interface {
	CreateAgent(ctx context.Context, req entity.CreateAgentRequest) (*entity.Agent, error)
	GetAgentByID(ctx context.Context, id uuid.UUID) (*entity.Agent, error)
	GetAllAgents(ctx context.Context, filter entity.AgentFilter) ([]entity.AgentPublic, error)
	UpdateAgent(ctx context.Context, id uuid.UUID, req entity.UpdateAgentRequest) (*entity.AgentPublic, error)
	RegenerateAPIKey(ctx context.Context, id uuid.UUID) (*entity.RegenerateAPIKeyResponse, error)
	DeleteAgent(ctx context.Context, id uuid.UUID) error
	ValidateAPIKey(ctx context.Context, apiKey string) (*entity.Agent, error)
}

type agentService struct {
	repo repository.AgentRepository
}

func NewAgentService(repo repository.AgentRepository) AgentService {
	return &agentService{
		repo: repo,
	}
}

func (s *agentService) CreateAgent(ctx context.Context, req entity.CreateAgentRequest) (*entity.Agent, error) {
	existing, err := s.repo.GetByHostname(ctx, req.Hostname)
	if err != nil {
		return nil, fmt.Errorf("failed to check hostname uniqueness: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("hostname already registered")
	}

	agent := &entity.Agent{
		Hostname: req.Hostname,
	}

	err = s.repo.Create(ctx, agent)
	if err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}

	return agent, nil
}

func (s *agentService) GetAgentByID(ctx context.Context, id uuid.UUID) (*entity.Agent, error) {
	agent, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get agent by ID: %w", err)
	}
	if agent == nil {
		return nil, fmt.Errorf("agent not found")
	}

	return agent, nil
}

func (s *agentService) GetAllAgents(ctx context.Context, filter entity.AgentFilter) ([]entity.AgentPublic, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Limit > 1000 {
		filter.Limit = 1000
	}

	agents, err := s.repo.GetAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to get agents: %w", err)
	}

	public := make([]entity.AgentPublic, 0, len(agents))
	for _, a := range agents {
		public = append(public, toPublic(a))
	}

	return public, nil
}

func (s *agentService) UpdateAgent(ctx context.Context, id uuid.UUID, req entity.UpdateAgentRequest) (*entity.AgentPublic, error) {
	agent, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update agent: %w", err)
	}
	if agent == nil {
		return nil, fmt.Errorf("agent not found")
	}

	public := toPublic(*agent)
	return &public, nil
}

func (s *agentService) RegenerateAPIKey(ctx context.Context, id uuid.UUID) (*entity.RegenerateAPIKeyResponse, error) {
	apiKey, err := s.repo.RegenerateAPIKey(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to regenerate API key: %w", err)
	}

	return &entity.RegenerateAPIKeyResponse{
		ID:     id,
		APIKey: apiKey,
	}, nil
}

func (s *agentService) DeleteAgent(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete agent: %w", err)
	}

	return nil
}

func (s *agentService) ValidateAPIKey(ctx context.Context, apiKey string) (*entity.Agent, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	agent, err := s.repo.GetByAPIKey(ctx, apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get agent by API key: %w", err)
	}
	if agent == nil {
		return nil, fmt.Errorf("invalid API key")
	}

	go func() {
		s.repo.UpdateLastSeen(context.Background(), apiKey)
	}()

	return agent, nil
}

func toPublic(a entity.Agent) entity.AgentPublic {
	return entity.AgentPublic{
		ID:         a.ID,
		Hostname:   a.Hostname,
		IsActive:   a.IsActive,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
		LastSeenAt: a.LastSeenAt,
	}
}
