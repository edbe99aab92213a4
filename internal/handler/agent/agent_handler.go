package agent

import (
	"net/http"

	"github.com/dauletq/activity-timeline-backend/internal/entity"
	"github.com/dauletq/activity-timeline-backend/internal/model/response/wrapper"
	service "github.com/dauletq/activity-timeline-backend/internal/service/agent"
	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

type AgentHandler struct {
	service service.AgentService
}

func NewAgentHandler(service service.AgentService) *AgentHandler {
	return &AgentHandler{
		service: service,
	}
}

// CreateAgent godoc
// @Summary      Register a collector agent
// @Description  Register a workstation and generate its API key
// @Tags         /api/v1/admin/agents
// @Accept       json
// @Produce      json
// @Param        agent  body      entity.CreateAgentRequest  true  "Agent data"
// @Success      201    {object}  wrapper.ResponseWrapper{data=entity.Agent}
// @Failure      400    {object}  wrapper.ErrorWrapper
// @Router       /agents [post]
func (h *AgentHandler) CreateAgent(c *gin.Context) {
	var req entity.CreateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	agent, err := h.service.CreateAgent(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, wrapper.ResponseWrapper{
		Data:    agent,
		Success: true,
	})
}

// GetAllAgents godoc
// @Summary      List collector agents
// @Tags         /api/v1/admin/agents
// @Accept       json
// @Produce      json
// @Param        hostname  query     string  false  "Filter by hostname substring"
// @Param        isActive  query     bool    false  "Filter by active flag"
// @Success      200       {object}  wrapper.ResponseWrapper{data=[]entity.AgentPublic}
// @Failure      500       {object}  wrapper.ErrorWrapper
// @Router       /agents [get]
func (h *AgentHandler) GetAllAgents(c *gin.Context) {
	var filter entity.AgentFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Invalid query parameters: " + err.Error(),
		})
		return
	}

	agents, err := h.service.GetAllAgents(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    agents,
		Success: true,
	})
}

// UpdateAgent godoc
// @Summary      Update a collector agent
// @Tags         /api/v1/admin/agents
// @Accept       json
// @Produce      json
// @Param        id     path      string                     true  "Agent ID"
// @Param        agent  body      entity.UpdateAgentRequest  true  "Fields to update"
// @Success      200    {object}  wrapper.ResponseWrapper{data=entity.AgentPublic}
// @Failure      400    {object}  wrapper.ErrorWrapper
// @Failure      404    {object}  wrapper.ErrorWrapper
// @Router       /agents/{id} [put]
func (h *AgentHandler) UpdateAgent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req entity.UpdateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	agent, err := h.service.UpdateAgent(c.Request.Context(), id, req)
	if err != nil {
		if err.Error() == "agent not found" {
			c.JSON(http.StatusNotFound, wrapper.ErrorWrapper{
				Message: "Agent not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    agent,
		Success: true,
	})
}

// RegenerateAPIKey godoc
// @Summary      Regenerate an agent API key
// @Tags         /api/v1/admin/agents
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Agent ID"
// @Success      200  {object}  wrapper.ResponseWrapper{data=entity.RegenerateAPIKeyResponse}
// @Failure      400  {object}  wrapper.ErrorWrapper
// @Failure      404  {object}  wrapper.ErrorWrapper
// @Router       /agents/{id}/regenerate-key [post]
func (h *AgentHandler) RegenerateAPIKey(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.service.RegenerateAPIKey(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, wrapper.ErrorWrapper{
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    result,
		Success: true,
	})
}

// DeleteAgent godoc
// @Summary      Delete a collector agent
// @Tags         /api/v1/admin/agents
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Agent ID"
// @Success      200  {object}  wrapper.SuccessWrapper
// @Failure      400  {object}  wrapper.ErrorWrapper
// @Failure      404  {object}  wrapper.ErrorWrapper
// @Router       /agents/{id} [delete]
func (h *AgentHandler) DeleteAgent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteAgent(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, wrapper.ErrorWrapper{
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.SuccessWrapper{
		Message: "Agent deleted",
		Success: true,
	})
}

// ValidateAPIKey godoc
// @Summary      Validate an agent API key
// @Tags         /api/v1/agent
// @Accept       json
// @Produce      json
// @Success      200  {object}  wrapper.ResponseWrapper{data=entity.AgentPublic}
// @Failure      401  {object}  wrapper.ErrorWrapper
// @Router       /auth [get]
func (h *AgentHandler) ValidateAPIKey(c *gin.Context) {
	agent, exists := c.Get("agent")
	if !exists {
		c.JSON(http.StatusUnauthorized, wrapper.ErrorWrapper{
			Message: "Agent not found in context",
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    agent,
		Success: true,
	})
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Invalid UUID format",
		})
		return uuid.Nil, false
	}
	return id, true
}
