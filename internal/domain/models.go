package domain

import (
	"time"
)

// Role is one of the five positions a participant can play.
type Role string

const (
	RoleTop     Role = "TOP"
	RoleJungle  Role = "JUNGLE"
	RoleMid     Role = "MID"
	RoleADC     Role = "ADC"
	RoleSupport Role = "SUPPORT"
)

// Roles lists every role in tally order.
var Roles = []Role{RoleTop, RoleJungle, RoleMid, RoleADC, RoleSupport}

// QueueCategory classifies the game mode a match was played in.
type QueueCategory string

const (
	QueueRankedSolo QueueCategory = "RANKED_SOLO"
	QueueRankedFlex QueueCategory = "RANKED_FLEX"
	QueueOther      QueueCategory = "OTHER"
)

// AccountRef identifies one linked game account. Owned by the account
// registry; read-only input to the pipeline.
type AccountRef struct {
	AccountID   string
	DisplayName string
	Region      string
}

// MatchSummary is the per-match, per-account view derived from upstream
// detail. Never persisted; consumed transiently during one aggregation pass.
type MatchSummary struct {
	MatchID      string
	CreationTime time.Time
	Queue        QueueCategory

	// Role is nil when the upstream positional label could not be
	// normalized; such matches are excluded from role tallies.
	Role *Role
}

// ActivityStats holds the windowed activity counts for one account.
type ActivityStats struct {
	GamesPerDay  int
	GamesPerWeek int
	LastUpdated  time.Time
}

// LinkedAccount is one row of the account registry: the account
// reference plus its last persisted stats and the player's persisted
// role preference, if any.
type LinkedAccount struct {
	Ref   AccountRef
	Stats ActivityStats
	Role  *Role
}

// PlayerActivity is the merged, player-level result returned to the
// profile-rendering caller.
type PlayerActivity struct {
	GamesPerDay  int
	GamesPerWeek int
	Role         *Role
}
