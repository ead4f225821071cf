package fitness

import (
	"sort"
	"time"

	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/models"
)

const week = 7 * 24 * time.Hour

// ProgressSummary is derived from a completion log and never stored.
type ProgressSummary struct {
	Total         int        `json:"total_workouts"`
	ThisWeek      int        `json:"this_week"`
	Streak        int        `json:"streak"`
	LastCompleted *time.Time `json:"last_completed"`
}

// Summarize computes totals and the current streak as of now. Calendar days
// are taken in now's location. The input slice is not modified and may be in
// any order.
func Summarize(events []models.Completion, now time.Time) ProgressSummary {
	summary := ProgressSummary{Total: len(events)}
	if len(events) == 0 {
		return summary
	}

	times := make([]time.Time, len(events))
	for i, e := range events {
		times[i] = e.CompletedAt
	}
	sort.Slice(times, func(i, j int) bool { return times[i].After(times[j]) })

	weekAgo := now.Add(-week)
	for _, t := range times {
		if !t.Before(weekAgo) {
			summary.ThisWeek++
		}
	}

	last := times[0]
	summary.LastCompleted = &last
	summary.Streak = streak(times, now)
	return summary
}

// streak walks distinct calendar days backward from today. A streak whose
// latest day is yesterday is still current. times must be sorted newest first.
func streak(times []time.Time, now time.Time) int {
	loc := now.Location()
	today := calendarDay(now, loc)

	days := make([]time.Time, 0, len(times))
	for _, t := range times {
		d := calendarDay(t, loc)
		if d.After(today) {
			continue
		}
		if n := len(days); n > 0 && days[n-1].Equal(d) {
			continue
		}
		days = append(days, d)
	}
	if len(days) == 0 {
		return 0
	}

	cursor := today
	if days[0].Equal(today.AddDate(0, 0, -1)) {
		cursor = days[0]
	}

	count := 0
	for _, d := range days {
		if !d.Equal(cursor) {
			break
		}
		count++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return count
}

func calendarDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
