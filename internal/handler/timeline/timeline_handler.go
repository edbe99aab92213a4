package timeline

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/dauletq/activity-timeline-backend/internal/entity"
	"github.com/dauletq/activity-timeline-backend/internal/model/response/wrapper"
	service "github.com/dauletq/activity-timeline-backend/internal/service/timeline"
	"github.com/gin-gonic/gin"
)

type TimelineHandler struct {
	service service.TimelineService
}

func NewTimelineHandler(service service.TimelineService) *TimelineHandler {
	return &TimelineHandler{service: service}
}

// GetTimeline godoc
// @Summary      Get the activity timeline for a day
// @Description  Workblocks, category breakdown, scores and chart series for one day
// @Tags         /api/v1/admin/timeline
// @Accept       json
// @Produce      json
// @Param        date  query     string  false  "Day in YYYY-MM-DD format, defaults to today"
// @Success      200   {object}  entity.TimelineResponse
// @Failure      400   {object}  wrapper.ErrorWrapper
// @Failure      500   {object}  wrapper.ErrorWrapper
// @Router       /timeline [get]
func (h *TimelineHandler) GetTimeline(c *gin.Context) {
	day, ok := parseDay(c)
	if !ok {
		return
	}

	result, err := h.service.GetTimeline(c.Request.Context(), day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, entity.TimelineResponse{
		Data:    result,
		Success: true,
	})
}

// GetWorkblocks godoc
// @Summary      Get merged workblocks for a day
// @Tags         /api/v1/admin/timeline
// @Accept       json
// @Produce      json
// @Param        date  query     string  false  "Day in YYYY-MM-DD format, defaults to today"
// @Success      200   {object}  wrapper.ResponseWrapper
// @Failure      400   {object}  wrapper.ErrorWrapper
// @Failure      500   {object}  wrapper.ErrorWrapper
// @Router       /workblocks [get]
func (h *TimelineHandler) GetWorkblocks(c *gin.Context) {
	day, ok := parseDay(c)
	if !ok {
		return
	}

	result, err := h.service.GetTimeline(c.Request.Context(), day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    result.Workblocks,
		Success: true,
	})
}

// GetStatistics godoc
// @Summary      Get daily statistics
// @Description  Work/break durations, productivity scores and category breakdown
// @Tags         /api/v1/admin/timeline
// @Accept       json
// @Produce      json
// @Param        date  query     string  false  "Day in YYYY-MM-DD format, defaults to today"
// @Success      200   {object}  wrapper.ResponseWrapper{data=entity.DayStatistics}
// @Failure      400   {object}  wrapper.ErrorWrapper
// @Failure      500   {object}  wrapper.ErrorWrapper
// @Router       /statistics [get]
func (h *TimelineHandler) GetStatistics(c *gin.Context) {
	day, ok := parseDay(c)
	if !ok {
		return
	}

	stats, err := h.service.GetStatistics(c.Request.Context(), day)
	if err != nil {
		c.JSON(http.StatusInternalServerError, wrapper.ErrorWrapper{
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    stats,
		Success: true,
	})
}

// ExportData godoc
// @Summary      Export raw records for a date range
// @Description  Process and idle samples over an inclusive day range, as JSON or CSV
// @Tags         /api/v1/admin/export
// @Accept       json
// @Produce      json
// @Produce      text/csv
// @Param        from    query     string  false  "Start day in YYYY-MM-DD format, defaults to today"
// @Param        to      query     string  false  "End day in YYYY-MM-DD format, defaults to the start day"
// @Param        format  query     string  false  "json or csv, defaults to json"
// @Success      200     {object}  wrapper.ResponseWrapper{data=entity.ExportData}
// @Failure      400     {object}  wrapper.ErrorWrapper
// @Failure      500     {object}  wrapper.ErrorWrapper
// @Router       /export [get]
func (h *TimelineHandler) ExportData(c *gin.Context) {
	from, ok := parseDayParam(c, "from")
	if !ok {
		return
	}

	to := from
	if c.Query("to") != "" {
		if to, ok = parseDayParam(c, "to"); !ok {
			return
		}
	}

	format := c.DefaultQuery("format", "json")
	if format != "json" && format != "csv" {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Unsupported format: " + format,
		})
		return
	}

	export, err := h.service.Export(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: err.Error(),
		})
		return
	}

	if format == "csv" {
		writeExportCSV(c, export)
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{
		Data:    export,
		Success: true,
	})
}

func writeExportCSV(c *gin.Context, export *entity.ExportData) {
	filename := fmt.Sprintf("export_%s_%s.csv", export.Period.Start, export.Period.End)
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	w.Write([]string{"type", "timestamp", "agent_id", "process_name", "category", "active_window", "is_idle"})

	for _, s := range export.Samples {
		category := ""
		if s.Category != nil {
			category = *s.Category
		}
		window := ""
		if s.ActiveWindow != nil {
			window = *s.ActiveWindow
		}
		w.Write([]string{"process", s.Timestamp.Format(time.RFC3339), s.AgentID.String(), s.Name, category, window, ""})
	}

	for _, s := range export.IdleSamples {
		w.Write([]string{"idle", s.Timestamp.Format(time.RFC3339), s.AgentID.String(), "", "", "", strconv.FormatBool(s.IsIdle)})
	}

	w.Flush()
}

func parseDayParam(c *gin.Context, name string) (time.Time, bool) {
	dateStr := c.Query(name)
	if dateStr == "" {
		return time.Now(), true
	}

	day, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, wrapper.ErrorWrapper{
			Message: "Invalid date format. Use YYYY-MM-DD",
		})
		return time.Time{}, false
	}

	return day, true
}

func parseDay(c *gin.Context) (time.Time, bool) {
	return parseDayParam(c, "date")
}
