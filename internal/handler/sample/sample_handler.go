package sample

import (
	"net/http"

	"github.com/dauletq/activity-timeline-backend/internal/entity"
	"github.com/dauletq/activity-timeline-backend/internal/model/response/wrapper"
	service "github.com/dauletq/activity-timeline-backend/internal/service/sample"
	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

type SampleHandler struct {
	service service.SampleService
}

func NewSampleHandler(service service.SampleService) *SampleHandler {
	return &SampleHandler{
		service: service,
	}
}

// IngestSamples godoc
// @Summary      Ingest process samples
// @Description  Store a batch of process snapshots from a collector agent
// @Tags         /api/v1/agent/samples
// @Accept       json
// @Produce      json
// @Param        samples  body      entity.BatchCreateSamplesRequest  true  "Process samples"
// @Success      201      {object}  wrapper.ResponseWrapper{data=entity.IngestResult}
// @Failure      400      {object}  wrapper.ErrorWrapper
// @Failure      500      {object}  wrapper.ErrorWrapper
// @Router       /samples [post]
func (h *SampleHandler) IngestSamples(c *gin.Context) {
	agentID, ok := agentIDFromContext(c)
	if !ok {
		return
	}

	var req entity.BatchCreateSamplesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	result, err := h.service.IngestSamples(c.Request.Context(), agentID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, wrapper.ResponseWrapper{
		Data:    result,
		Success: true,
	})
}

// IngestIdleSamples godoc
// @Summary      Ingest idle samples
// @Description  Store a batch of idle-detector snapshots from a collector agent
// @Tags         /api/v1/agent/idle
// @Accept       json
// @Produce      json
// @Param        samples  body      entity.BatchCreateIdleSamplesRequest  true  "Idle samples"
// @Success      201      {object}  wrapper.ResponseWrapper{data=entity.IngestResult}
// @Failure      400      {object}  wrapper.ErrorWrapper
// @Failure      500      {object}  wrapper.ErrorWrapper
// @Router       /idle [post]
func (h *SampleHandler) IngestIdleSamples(c *gin.Context) {
	agentID, ok := agentIDFromContext(c)
	if !ok {
		return
	}

	var req entity.BatchCreateIdleSamplesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	result, err := h.service.IngestIdleSamples(c.Request.Context(), agentID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, wrapper.ResponseWrapper{
		Data:    result,
		Success: true,
	})
}

func agentIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("agent_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, wrapper.ErrorWrapper{
			Message: "Agent not found in context",
		})
		return uuid.Nil, false
	}

	agentID, err := uuid.FromString(value.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: "Invalid agent ID in context",
		})
		return uuid.Nil, false
	}

	return agentID, true
}
