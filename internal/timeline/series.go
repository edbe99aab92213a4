package timeline

import "fmt"

// ProjectSeries resamples merged blocks onto the fixed visualization grid
// covering [WindowStartHour, WindowEndHour) in SlotMinutes steps. A block
// lands in the single slot containing its start time and contributes its
// whole duration in minutes there, even when it spans several slots; that
// coarse attribution is intentional. Blocks starting outside the window
// are left out of the series only, never out of the scores.
func ProjectSeries(blocks []Workblock, cfg Config) Series {
	slots := (cfg.WindowEndHour - cfg.WindowStartHour) * 60 / cfg.SlotMinutes

	series := Series{
		Labels:   make([]string, slots),
		Focus:    make([]float64, slots),
		Meetings: make([]float64, slots),
		Other:    make([]float64, slots),
		Breaks:   make([]float64, slots),
	}

	for i := 0; i < slots; i++ {
		minutes := cfg.WindowStartHour*60 + i*cfg.SlotMinutes
		series.Labels[i] = fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
	}

	for _, b := range blocks {
		offset := b.StartTime.Hour()*60 + b.StartTime.Minute() - cfg.WindowStartHour*60
		if offset < 0 {
			continue
		}
		slot := offset / cfg.SlotMinutes
		if slot >= slots {
			continue
		}

		minutes := float64(b.Duration) / 60
		switch {
		case b.IsIdle:
			series.Breaks[slot] += minutes
		case cfg.FocusCategories[b.Category]:
			series.Focus[slot] += minutes
		case cfg.MeetingCategories[b.Category]:
			series.Meetings[slot] += minutes
		default:
			series.Other[slot] += minutes
		}
	}

	return series
}
