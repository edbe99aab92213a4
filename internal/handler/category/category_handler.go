package category

import (
	"net/http"

	"github.com/dauletq/activity-timeline-backend/internal/entity"
	"github.com/dauletq/activity-timeline-backend/internal/model/response/wrapper"
	categoryService "github.com/dauletq/activity-timeline-backend/internal/service/category"
	sampleService "github.com/dauletq/activity-timeline-backend/internal/service/sample"
	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categories categoryService.CategoryService
	samples    sampleService.SampleService
}

func NewCategoryHandler(categories categoryService.CategoryService, samples sampleService.SampleService) *CategoryHandler {
	return &CategoryHandler{
		categories: categories,
		samples:    samples,
	}
}

// GetCategories godoc
// @Summary      Get categorization rules
// @Tags         /api/v1/admin/categories
// @Accept       json
// @Produce      json
// @Success      200  {object}  wrapper.ResponseWrapper
// @Router       /categories [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    h.categories.GetRules(c.Request.Context()),
		Success: true,
	})
}

// UpdateCategories godoc
// @Summary      Replace categorization rules
// @Description  Replace the full rule set and re-categorize stored samples without a category
// @Tags         /api/v1/admin/categories
// @Accept       json
// @Produce      json
// @Param        rules  body      entity.UpdateCategoriesRequest  true  "Rule set"
// @Success      200    {object}  wrapper.SuccessWrapper
// @Failure      400    {object}  wrapper.ErrorWrapper
// @Failure      500    {object}  wrapper.ErrorWrapper
// @Router       /categories [put]
func (h *CategoryHandler) UpdateCategories(c *gin.Context) {
	var req entity.UpdateCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Invalid request body: " + err.Error(),
		})
		return
	}

	if err := h.categories.UpdateRules(c.Request.Context(), req); err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: err.Error(),
		})
		return
	}

	if _, err := h.samples.RecategorizeExisting(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: "Rules saved but re-categorization failed: " + err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.SuccessWrapper{
		Message: "Category rules updated",
		Success: true,
	})
}
