package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"

	"league-activity/internal/domain"
)

// ActivityHistoryRepository keeps an append-only trail of refresh
// snapshots, one row per successful upstream scan.
type ActivityHistoryRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewActivityHistoryRepository(db *sql.DB, logger zerolog.Logger) *ActivityHistoryRepository {
	return &ActivityHistoryRepository{db: db, logger: logger}
}

// RecordRefresh appends one snapshot for the account.
func (r *ActivityHistoryRepository) RecordRefresh(ctx context.Context, accountID string, stats domain.ActivityStats, role *domain.Role) error {
	id, err := gonanoid.New()
	if err != nil {
		return fmt.Errorf("failed to generate history id: %w", err)
	}

	var roleValue sql.NullString
	if role != nil {
		roleValue = sql.NullString{String: string(*role), Valid: true}
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO activity_history (id, account_id, games_per_day, games_per_week, role, refreshed_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, accountID, stats.GamesPerDay, stats.GamesPerWeek, roleValue, stats.LastUpdated, time.Now())
	if err != nil {
		return fmt.Errorf("failed to record refresh: %w", err)
	}

	r.logger.Debug().
		Str("account_id", accountID).
		Int("games_per_day", stats.GamesPerDay).
		Int("games_per_week", stats.GamesPerWeek).
		Msg("refresh recorded")
	return nil
}
