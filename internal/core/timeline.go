package core

import (
	"time"

	"github.com/buildvista/lookahead/pkg/models"
)

// dateLayout is the canonical calendar-day format. All interval membership is
// computed on whole days; time-of-day never participates.
const dateLayout = "2006-01-02"

// DateKey canonicalizes a timestamp to its calendar day in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// truncateToDay drops the time-of-day component, keeping the UTC calendar day.
func truncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the whole-day distance from a to b, negative when b is
// earlier.
func daysBetween(a, b time.Time) int {
	return int(truncateToDay(b).Sub(truncateToDay(a)).Hours() / 24)
}

// Timeline is the per-day membership index over the look-ahead window. Each
// window date maps to the activities whose [start, end] interval covers it.
type Timeline struct {
	dates   []string
	buckets map[string][]*models.Activity
}

// BuildTimeline indexes activities over the window [today, today+days-1].
// Completed activities and activities with start after end are skipped, as
// are activities entirely outside the window.
func BuildTimeline(activities []models.Activity, today time.Time, days int) *Timeline {
	start := truncateToDay(today)
	if days < 1 {
		days = 1
	}

	tl := &Timeline{
		dates:   make([]string, days),
		buckets: make(map[string][]*models.Activity, days),
	}
	for i := 0; i < days; i++ {
		tl.dates[i] = DateKey(start.AddDate(0, 0, i))
	}

	windowEnd := start.AddDate(0, 0, days-1)

	for i := range activities {
		a := &activities[i]
		if a.Status == models.StatusCompleted {
			continue
		}

		actStart := truncateToDay(a.Start)
		actEnd := truncateToDay(a.End)
		if actStart.After(actEnd) {
			continue
		}

		// Clip the activity interval to the window.
		if actStart.Before(start) {
			actStart = start
		}
		if actEnd.After(windowEnd) {
			actEnd = windowEnd
		}
		if actStart.After(actEnd) {
			continue
		}

		for d := actStart; !d.After(actEnd); d = d.AddDate(0, 0, 1) {
			key := DateKey(d)
			tl.buckets[key] = append(tl.buckets[key], a)
		}
	}

	return tl
}

// Dates returns every window date in chronological order, including empty
// days.
func (tl *Timeline) Dates() []string {
	return tl.dates
}

// ActivitiesOn returns the activities scheduled on a window date, in input
// order.
func (tl *Timeline) ActivitiesOn(date string) []*models.Activity {
	return tl.buckets[date]
}

// Activities returns each distinct activity present anywhere in the window,
// ordered by first appearance.
func (tl *Timeline) Activities() []*models.Activity {
	seen := make(map[string]bool)
	var out []*models.Activity
	for _, date := range tl.dates {
		for _, a := range tl.buckets[date] {
			if !seen[a.ID] {
				seen[a.ID] = true
				out = append(out, a)
			}
		}
	}
	return out
}
