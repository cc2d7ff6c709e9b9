package history

import (
	"sort"
	"time"
)

// Buckets groups sessions by how recently they were updated, for sidebar
// display. Every session lands in exactly one bucket.
type Buckets struct {
	Today     []Session
	Yesterday []Session
	Last7Days []Session
	Monthly   []MonthGroup
}

// MonthGroup holds sessions older than seven days, keyed "YYYY-MM".
type MonthGroup struct {
	Key      string
	Sessions []Session
}

const monthKeyLayout = "2006-01"

// Bucketize partitions sessions relative to now, first matching rule wins:
// same local calendar day as now, the day before, updated within the last
// seven days, then monthly groups ordered most recent month first. Bucketing
// uses the local calendar, matching what the user's clock shows.
func Bucketize(sessions []Session, now time.Time) Buckets {
	var b Buckets
	yesterday := now.AddDate(0, 0, -1)
	weekAgo := now.Add(-7 * 24 * time.Hour)

	months := make(map[string][]Session)
	var monthKeys []string

	for _, s := range sessions {
		switch {
		case sameDay(s.UpdatedAt, now):
			b.Today = append(b.Today, s)
		case sameDay(s.UpdatedAt, yesterday):
			b.Yesterday = append(b.Yesterday, s)
		case !s.UpdatedAt.Before(weekAgo):
			b.Last7Days = append(b.Last7Days, s)
		default:
			key := s.UpdatedAt.Format(monthKeyLayout)
			if _, seen := months[key]; !seen {
				monthKeys = append(monthKeys, key)
			}
			months[key] = append(months[key], s)
		}
	}

	// "YYYY-MM" keys sort lexically, so a reverse string sort is
	// most-recent-month-first.
	sort.Sort(sort.Reverse(sort.StringSlice(monthKeys)))
	for _, key := range monthKeys {
		b.Monthly = append(b.Monthly, MonthGroup{Key: key, Sessions: months[key]})
	}
	return b
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
