package service

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"league-activity/internal/activity"
	"league-activity/internal/cache"
	"league-activity/internal/config"
	"league-activity/internal/constants"
	"league-activity/internal/dependencies/clock"
	"league-activity/internal/dependencies/random"
	"league-activity/internal/domain"
)

// MatchSource abstracts the upstream match-history provider.
type MatchSource interface {
	ResolveIdentity(ctx context.Context, account domain.AccountRef) (string, error)
	ListRecentMatchIDs(ctx context.Context, region, puuid string, count int) ([]string, error)
	FetchMatchDetail(ctx context.Context, region, matchID, puuid string) (domain.MatchSummary, error)
}

// AccountRegistry is the persisted-account collaborator: linked
// accounts in, refreshed stats and the once-only role preference out.
type AccountRegistry interface {
	LoadAccounts(ctx context.Context, playerID string) ([]domain.LinkedAccount, error)
	SaveAccountStats(ctx context.Context, accountID string, stats domain.ActivityStats) error
	SavePlayerRole(ctx context.Context, playerID string, role domain.Role) error
	LinkAccount(ctx context.Context, playerID string, ref domain.AccountRef) error
}

// HistoryRecorder receives a snapshot after each successful refresh.
type HistoryRecorder interface {
	RecordRefresh(ctx context.Context, accountID string, stats domain.ActivityStats, role *domain.Role) error
}

// ActivityService orchestrates a player's activity refresh: per
// account it decides between cached, persisted-but-fresh and a full
// upstream scan, then merges per-account stats into player totals.
// Upstream failures never surface; a failing account contributes its
// last-known stats and the other accounts proceed unaffected.
type ActivityService struct {
	source     MatchSource
	registry   AccountRegistry
	history    HistoryRecorder
	cache      *cache.Cache
	detector   *activity.Detector
	clock      clock.Clock
	refreshTTL time.Duration
	flight     singleflight.Group
	logger     zerolog.Logger
}

func NewActivityService(
	cfg *config.Config,
	source MatchSource,
	registry AccountRegistry,
	history HistoryRecorder,
	c *cache.Cache,
	clk clock.Clock,
	rng random.Random,
	logger zerolog.Logger,
) *ActivityService {
	return &ActivityService{
		source:     source,
		registry:   registry,
		history:    history,
		cache:      c,
		detector:   activity.NewDetector(rng, cfg.RankedSampleThreshold),
		clock:      clk,
		refreshTTL: cfg.RefreshTTL,
		logger:     logger,
	}
}

type accountResult struct {
	stats domain.ActivityStats
	role  *domain.Role
}

// RefreshAndGetActivity is the sole entry point for the
// profile-rendering caller. It returns merged games-per-day and
// games-per-week totals across the player's linked accounts plus the
// inferred role, if one is or becomes known.
func (s *ActivityService) RefreshAndGetActivity(ctx context.Context, playerID string) (*domain.PlayerActivity, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	accounts, err := s.registry.LoadAccounts(ctx, playerID)
	if err != nil {
		s.logger.Error().Err(err).Str("player_id", playerID).Msg("failed to load accounts")
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	var knownRole *domain.Role
	if len(accounts) > 0 {
		knownRole = accounts[0].Role
	}

	// Accounts are independent; refresh them concurrently. The closures
	// absorb their own failures, so the group itself never errors.
	results := make([]accountResult, len(accounts))
	g := new(errgroup.Group)
	for i, acct := range accounts {
		g.Go(func() error {
			results[i] = s.accountActivity(ctx, acct, knownRole == nil)
			return nil
		})
	}
	_ = g.Wait()

	merged := &domain.PlayerActivity{Role: knownRole}
	var detected *domain.Role
	for _, res := range results {
		merged.GamesPerDay += res.stats.GamesPerDay
		merged.GamesPerWeek += res.stats.GamesPerWeek

		// First eligible account wins; account order, not completion order.
		if detected == nil && res.role != nil {
			detected = res.role
		}
	}

	if knownRole == nil && detected != nil {
		if err := s.registry.SavePlayerRole(ctx, playerID, *detected); err != nil {
			s.logger.Warn().Err(err).Str("player_id", playerID).Msg("failed to save player role")
		}
		merged.Role = detected
	}

	s.logger.Info().
		Str("player_id", playerID).
		Int("accounts", len(accounts)).
		Int("games_per_day", merged.GamesPerDay).
		Int("games_per_week", merged.GamesPerWeek).
		Msg("activity refreshed")
	return merged, nil
}

// LinkAccount verifies the account exists upstream, then registers it
// under the player. The next activity request picks it up.
func (s *ActivityService) LinkAccount(ctx context.Context, playerID string, ref domain.AccountRef) error {
	if _, err := s.source.ResolveIdentity(ctx, ref); err != nil {
		return fmt.Errorf("failed to verify account %q: %w", ref.DisplayName, err)
	}

	if err := s.registry.LinkAccount(ctx, playerID, ref); err != nil {
		return err
	}

	s.logger.Info().
		Str("player_id", playerID).
		Str("account_id", ref.AccountID).
		Msg("account linked")
	return nil
}

// accountActivity resolves one account's contribution: cache hit,
// fresh persisted row, or a full upstream scan. Any scan failure falls
// back to the last-known stats, {0,0} when none exist.
func (s *ActivityService) accountActivity(ctx context.Context, acct domain.LinkedAccount, detectRole bool) accountResult {
	key := activityKey(acct.Ref.AccountID)

	if data, ok := s.cache.Get(ctx, key); ok {
		var cached domain.ActivityStats
		if err := json.Unmarshal(data, &cached); err == nil {
			return accountResult{stats: cached}
		}
		s.cache.Delete(ctx, key)
	}

	if !acct.Stats.LastUpdated.IsZero() && s.clock.Now().Sub(acct.Stats.LastUpdated) < s.refreshTTL {
		s.writeBack(ctx, acct.Ref.AccountID, acct.Stats)
		return accountResult{stats: acct.Stats}
	}

	stats, role, err := s.refreshAccount(ctx, acct, detectRole)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("account_id", acct.Ref.AccountID).
			Msg("refresh failed, falling back to last-known stats")
		return accountResult{stats: acct.Stats}
	}
	return accountResult{stats: stats, role: role}
}

// refreshAccount serializes concurrent refreshes of the same account:
// simultaneous profile views share one upstream scan instead of racing
// on the persisted row.
func (s *ActivityService) refreshAccount(ctx context.Context, acct domain.LinkedAccount, detectRole bool) (domain.ActivityStats, *domain.Role, error) {
	v, err, _ := s.flight.Do(acct.Ref.AccountID, func() (interface{}, error) {
		stats, role, err := s.scanAccount(ctx, acct, detectRole)
		if err != nil {
			return nil, err
		}
		return accountResult{stats: stats, role: role}, nil
	})
	if err != nil {
		return domain.ActivityStats{}, nil, err
	}

	res := v.(accountResult)
	return res.stats, res.role, nil
}

func (s *ActivityService) scanAccount(ctx context.Context, acct domain.LinkedAccount, detectRole bool) (domain.ActivityStats, *domain.Role, error) {
	puuid, err := s.source.ResolveIdentity(ctx, acct.Ref)
	if err != nil {
		return domain.ActivityStats{}, nil, err
	}

	ids, err := s.source.ListRecentMatchIDs(ctx, acct.Ref.Region, puuid, constants.MatchBatchSize)
	if err != nil {
		return domain.ActivityStats{}, nil, err
	}

	stats, scanned := activity.Aggregate(s.matchSummaries(ctx, acct.Ref.Region, puuid, ids), s.clock.Now())
	if ctxErr := ctx.Err(); ctxErr != nil {
		// The scan was cut short; discard partial counts rather than
		// persist them.
		return domain.ActivityStats{}, nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, ctxErr)
	}

	var role *domain.Role
	if detectRole {
		role = s.detector.Detect(scanned)
	}

	stats.LastUpdated = s.clock.Now()
	if err := s.registry.SaveAccountStats(ctx, acct.Ref.AccountID, stats); err != nil {
		return domain.ActivityStats{}, nil, err
	}
	s.writeBack(ctx, acct.Ref.AccountID, stats)

	if err := s.history.RecordRefresh(ctx, acct.Ref.AccountID, stats, role); err != nil {
		s.logger.Warn().Err(err).Str("account_id", acct.Ref.AccountID).Msg("failed to record refresh history")
	}

	s.logger.Debug().
		Str("account_id", acct.Ref.AccountID).
		Int("matches_scanned", len(scanned)).
		Int("games_per_day", stats.GamesPerDay).
		Int("games_per_week", stats.GamesPerWeek).
		Msg("account scanned")
	return stats, role, nil
}

// matchSummaries is a lazy, restartable newest-first sequence of match
// details. Per-match failures are skipped, never fatal to the batch;
// the aggregator decides how far to consume.
func (s *ActivityService) matchSummaries(ctx context.Context, region, puuid string, ids []string) iter.Seq[domain.MatchSummary] {
	return func(yield func(domain.MatchSummary) bool) {
		for _, id := range ids {
			if ctx.Err() != nil {
				return
			}
			summary, err := s.source.FetchMatchDetail(ctx, region, id, puuid)
			if err != nil {
				s.logger.Debug().Err(err).Str("match_id", id).Msg("skipping match")
				continue
			}
			if !yield(summary) {
				return
			}
		}
	}
}

// writeBack caches the stats for the remainder of their freshness
// window. A cached entry must never outlive the refresh cadence: stats
// persisted 59 minutes ago get a 1-minute cache entry, not a full TTL.
func (s *ActivityService) writeBack(ctx context.Context, accountID string, stats domain.ActivityStats) {
	ttl := s.refreshTTL - s.clock.Now().Sub(stats.LastUpdated)
	if ttl <= 0 {
		return
	}
	data, err := json.Marshal(stats)
	if err != nil {
		return
	}
	s.cache.Set(ctx, activityKey(accountID), data, ttl)
}

func activityKey(accountID string) string {
	return "activity:" + accountID
}
