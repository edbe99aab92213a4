package entity

import "github.com/dauletq/activity-timeline-backend/internal/timeline"

// TimelineResponse wraps the pipeline output for the dashboard.
type TimelineResponse struct {
	Data    *timeline.DayTimeline `json:"data"`
	Success bool                  `json:"success"`
	Message string                `json:"message,omitempty"`
}

// DayStatistics is the scores-plus-breakdown view, without blocks or the
// chart series.
type DayStatistics struct {
	Date         string                       `json:"date"`
	WorkSeconds  int                          `json:"workSeconds"`
	BreakSeconds int                          `json:"breakSeconds"`
	Scores       timeline.Scores              `json:"scores"`
	Breakdown    []timeline.CategoryBreakdown `json:"breakdown"`
}
