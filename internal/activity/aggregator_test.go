package activity

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"league-activity/internal/domain"
)

type AggregatorSuite struct {
	suite.Suite
	now time.Time
}

func TestAggregatorSuite(t *testing.T) {
	suite.Run(t, new(AggregatorSuite))
}

func (s *AggregatorSuite) SetupTest() {
	s.now = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func (s *AggregatorSuite) match(age time.Duration, queue domain.QueueCategory) domain.MatchSummary {
	return domain.MatchSummary{
		MatchID:      "m",
		CreationTime: s.now.Add(-age),
		Queue:        queue,
	}
}

func (s *AggregatorSuite) TestEmptySequence() {
	stats, scanned := Aggregate(slices.Values([]domain.MatchSummary(nil)), s.now)

	s.Equal(0, stats.GamesPerDay)
	s.Equal(0, stats.GamesPerWeek)
	s.Empty(scanned)
}

func (s *AggregatorSuite) TestDayAndWeekWindows() {
	matches := []domain.MatchSummary{
		s.match(1*time.Hour, domain.QueueRankedSolo),
		s.match(12*time.Hour, domain.QueueRankedSolo),
		s.match(2*24*time.Hour, domain.QueueRankedSolo),
		s.match(6*24*time.Hour, domain.QueueRankedSolo),
	}

	stats, _ := Aggregate(slices.Values(matches), s.now)

	s.Equal(2, stats.GamesPerDay)
	s.Equal(4, stats.GamesPerWeek)
	s.LessOrEqual(stats.GamesPerDay, stats.GamesPerWeek)
}

func (s *AggregatorSuite) TestEarlyTerminationStopsConsuming() {
	matches := []domain.MatchSummary{
		s.match(1*time.Hour, domain.QueueRankedSolo),
		s.match(2*24*time.Hour, domain.QueueRankedSolo),
		s.match(10*24*time.Hour, domain.QueueRankedSolo),
		s.match(20*24*time.Hour, domain.QueueRankedSolo),
		s.match(30*24*time.Hour, domain.QueueRankedSolo),
	}

	consumed := 0
	seq := func(yield func(domain.MatchSummary) bool) {
		for _, m := range matches {
			consumed++
			if !yield(m) {
				return
			}
		}
	}

	stats, scanned := Aggregate(seq, s.now)

	s.Equal(1, stats.GamesPerDay)
	s.Equal(2, stats.GamesPerWeek)
	// The scan stops at the first match past the week window.
	s.Equal(3, consumed)
	s.Len(scanned, 3)
}

func (s *AggregatorSuite) TestQueueFiltering() {
	matches := []domain.MatchSummary{
		s.match(1*time.Hour, domain.QueueRankedFlex),
		s.match(2*time.Hour, domain.QueueOther),
		s.match(3*time.Hour, domain.QueueRankedSolo),
	}

	stats, _ := Aggregate(slices.Values(matches), s.now)

	s.Equal(1, stats.GamesPerDay)
	s.Equal(1, stats.GamesPerWeek)
}

func (s *AggregatorSuite) TestMissingTimestampSkippedWithoutTerminating() {
	matches := []domain.MatchSummary{
		s.match(1*time.Hour, domain.QueueRankedSolo),
		{MatchID: "undated", Queue: domain.QueueRankedSolo},
		s.match(2*24*time.Hour, domain.QueueRankedSolo),
	}

	stats, scanned := Aggregate(slices.Values(matches), s.now)

	s.Equal(1, stats.GamesPerDay)
	s.Equal(2, stats.GamesPerWeek)
	s.Len(scanned, 3)
}

func (s *AggregatorSuite) TestIdempotent() {
	matches := []domain.MatchSummary{
		s.match(1*time.Hour, domain.QueueRankedSolo),
		s.match(3*24*time.Hour, domain.QueueRankedSolo),
	}

	first, _ := Aggregate(slices.Values(matches), s.now)
	second, _ := Aggregate(slices.Values(matches), s.now)

	s.Equal(first, second)
}
