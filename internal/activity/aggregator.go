package activity

import (
	"iter"
	"time"

	"league-activity/internal/constants"
	"league-activity/internal/domain"
)

// Aggregate consumes a newest-first sequence of match summaries and
// counts ranked-solo games inside the day and week windows relative to
// now. Consumption stops at the first dated match older than the week
// window: everything behind it is guaranteed further out of window, so
// a lazy sequence never fetches more matches than needed.
//
// Matches without a creation timestamp are skipped without affecting
// the counts or the scan. The second return value is every summary
// drawn from the sequence, for the role detector to reuse.
func Aggregate(matches iter.Seq[domain.MatchSummary], now time.Time) (domain.ActivityStats, []domain.MatchSummary) {
	var stats domain.ActivityStats
	var scanned []domain.MatchSummary

	for m := range matches {
		scanned = append(scanned, m)

		if m.CreationTime.IsZero() {
			continue
		}

		age := now.Sub(m.CreationTime)
		if age > constants.WeekWindow {
			break
		}
		if m.Queue != domain.QueueRankedSolo {
			continue
		}

		if age <= constants.DayWindow {
			stats.GamesPerDay++
		}
		stats.GamesPerWeek++
	}

	return stats, scanned
}
