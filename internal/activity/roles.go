package activity

import (
	"league-activity/internal/dependencies/random"
	"league-activity/internal/domain"
)

// Detector infers a primary role from a batch of match summaries.
//
// Ranked matches (solo + flex) carry a stronger role signal, but only
// with a minimum sample: the ranked tally is used exclusively once it
// holds at least rankedSampleThreshold contributing matches, otherwise
// detection falls back to the all-queue tally.
type Detector struct {
	rng                   random.Random
	rankedSampleThreshold int
}

func NewDetector(rng random.Random, rankedSampleThreshold int) *Detector {
	return &Detector{rng: rng, rankedSampleThreshold: rankedSampleThreshold}
}

// Detect returns the most-played role, or nil when no match in the
// batch carried a recognized role. The count computation is
// deterministic; ties are broken uniformly at random.
func (d *Detector) Detect(matches []domain.MatchSummary) *domain.Role {
	ranked := make(map[domain.Role]int)
	allQueue := make(map[domain.Role]int)
	rankedTotal := 0

	for _, m := range matches {
		if m.Role == nil {
			continue
		}
		allQueue[*m.Role]++
		if m.Queue == domain.QueueRankedSolo || m.Queue == domain.QueueRankedFlex {
			ranked[*m.Role]++
			rankedTotal++
		}
	}

	tally := allQueue
	if rankedTotal >= d.rankedSampleThreshold {
		tally = ranked
	}

	max := 0
	var tied []domain.Role
	for _, role := range domain.Roles {
		count := tally[role]
		if count == 0 {
			continue
		}
		switch {
		case count > max:
			max = count
			tied = tied[:0]
			tied = append(tied, role)
		case count == max:
			tied = append(tied, role)
		}
	}

	if len(tied) == 0 {
		return nil
	}
	winner := tied[d.rng.Intn(len(tied))]
	return &winner
}
