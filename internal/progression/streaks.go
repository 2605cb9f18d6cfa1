package progression

import (
	"time"

	"github.com/fasalseva/FasalSeva_Go/internal/domain"
)

// ComputeStreaks derives streak information from distinct activity dates
// sorted newest first. The current streak is the contiguous run of days
// ending today (or yesterday counts as broken).
func ComputeStreaks(dates []time.Time, today time.Time) domain.StreakInfo {
	info := domain.StreakInfo{ActiveDays: len(dates)}
	if len(dates) == 0 {
		return info
	}

	day := today.Truncate(24 * time.Hour)
	for i, date := range dates {
		expected := day.AddDate(0, 0, -i)
		if sameDay(date, expected) {
			info.CurrentStreak++
		} else {
			break
		}
	}

	longest := 1
	run := 1
	for i := 1; i < len(dates); i++ {
		if sameDay(dates[i], dates[i-1].AddDate(0, 0, -1)) {
			run++
		} else {
			if run > longest {
				longest = run
			}
			run = 1
		}
	}
	if run > longest {
		longest = run
	}
	info.LongestStreak = longest
	return info
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
