package entity

import "time"

// ExportPeriod is the inclusive day range an export covers.
type ExportPeriod struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Days  int    `json:"days"`
}

// ExportData bundles the raw stored records for a day range, for backup
// or offline analysis.
type ExportData struct {
	Period      ExportPeriod    `json:"period"`
	Samples     []ProcessSample `json:"samples"`
	IdleSamples []IdleSample    `json:"idleSamples"`
	ExportedAt  time.Time       `json:"exportedAt"`
}
