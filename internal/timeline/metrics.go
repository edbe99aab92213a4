package timeline

import (
	"math"
	"sort"
)

// AggregateScores derives the day's work/break durations and percentage
// scores from merged blocks. Every percentage shares the explicit
// zero-total guard: with no observed time everything stays zero.
func AggregateScores(blocks []Workblock, cfg Config) (Scores, int, int) {
	var workSeconds, breakSeconds int
	var scores Scores

	for _, b := range blocks {
		if b.IsIdle {
			breakSeconds += b.Duration
			continue
		}

		workSeconds += b.Duration
		if cfg.FocusCategories[b.Category] {
			scores.FocusSeconds += b.Duration
		}
		if cfg.MeetingCategories[b.Category] {
			scores.MeetingsSeconds += b.Duration
		}
	}

	scores.BreakSeconds = breakSeconds

	total := workSeconds + breakSeconds
	if total > 0 {
		scores.FocusPercent = roundPercent(scores.FocusSeconds, total)
		scores.MeetingsPercent = roundPercent(scores.MeetingsSeconds, total)
		scores.BreaksPercent = roundPercent(breakSeconds, total)
	}

	return scores, workSeconds, breakSeconds
}

// BuildBreakdown tallies observed time per category over the raw samples:
// each categorized sample contributes one SampleInterval quantum. This is
// a separate accounting from the block durations above and is the answer
// to "how many raw observations fell into each category". Entries come
// back sorted descending by seconds, ties by name for stable output.
func BuildBreakdown(samples []Sample, cfg Config) []CategoryBreakdown {
	quantum := int(cfg.SampleInterval.Seconds())
	seconds := make(map[string]int)
	total := 0

	for _, s := range samples {
		if s.Category == "" {
			continue
		}
		seconds[s.Category] += quantum
		total += quantum
	}

	entries := make([]CategoryBreakdown, 0, len(seconds))
	for name, secs := range seconds {
		entry := CategoryBreakdown{Name: name, Seconds: secs}
		if total > 0 {
			entry.Percent = roundPercent(secs, total)
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Seconds != entries[j].Seconds {
			return entries[i].Seconds > entries[j].Seconds
		}
		return entries[i].Name < entries[j].Name
	})

	return entries
}

func roundPercent(part, total int) int {
	return int(math.Round(100 * float64(part) / float64(total)))
}
