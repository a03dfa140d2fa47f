package constants

import "time"

const (
	// ActivityRefreshTTL is how long persisted per-account stats stay
	// fresh before the next profile view triggers an upstream scan.
	ActivityRefreshTTL = 1 * time.Hour

	DayWindow  = 24 * time.Hour
	WeekWindow = 7 * 24 * time.Hour
)

const (
	// MatchBatchSize is the upstream cap on match ids per listing call.
	MatchBatchSize = 100

	// RankedSampleThreshold is the minimum number of ranked matches with
	// a recognized role before the ranked tally is trusted on its own.
	RankedSampleThreshold = 3
)

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
	CacheSweepInterval = 5 * time.Minute
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)
