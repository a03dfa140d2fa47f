package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"league-activity/internal/domain"
)

// AccountRepository is the persisted side of the account registry:
// linked accounts with their last activity stats, plus the per-player
// role preference.
type AccountRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewAccountRepository(db *sql.DB, logger zerolog.Logger) *AccountRepository {
	return &AccountRepository{db: db, logger: logger}
}

// LoadAccounts returns every account linked to the player, each
// carrying its persisted stats and the player's persisted role, if any.
func (r *AccountRepository) LoadAccounts(ctx context.Context, playerID string) ([]domain.LinkedAccount, error) {
	role, err := r.getPlayerRole(ctx, playerID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT account_id, display_name, region, games_per_day, games_per_week, last_updated
		FROM accounts
		WHERE player_id = ?
		ORDER BY created_at`, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.LinkedAccount
	for rows.Next() {
		var acct domain.LinkedAccount
		var lastUpdated sql.NullTime
		if err := rows.Scan(
			&acct.Ref.AccountID,
			&acct.Ref.DisplayName,
			&acct.Ref.Region,
			&acct.Stats.GamesPerDay,
			&acct.Stats.GamesPerWeek,
			&lastUpdated,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		if lastUpdated.Valid {
			acct.Stats.LastUpdated = lastUpdated.Time
		}
		acct.Role = role
		accounts = append(accounts, acct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	r.logger.Debug().Str("player_id", playerID).Int("count", len(accounts)).Msg("accounts loaded")
	return accounts, nil
}

// SaveAccountStats writes back refreshed stats for one account.
func (r *AccountRepository) SaveAccountStats(ctx context.Context, accountID string, stats domain.ActivityStats) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE accounts
		SET games_per_day = ?, games_per_week = ?, last_updated = ?, updated_at = ?
		WHERE account_id = ?`,
		stats.GamesPerDay, stats.GamesPerWeek, stats.LastUpdated, time.Now(), accountID)
	if err != nil {
		return fmt.Errorf("failed to save account stats: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrAccountNotFound, accountID)
	}
	return nil
}

// SavePlayerRole records the first detected role for a player. A role
// already on record wins; later detections are silently ignored.
func (r *AccountRepository) SavePlayerRole(ctx context.Context, playerID string, role domain.Role) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO player_roles (player_id, role, detected_at)
		VALUES (?, ?, ?)
		ON CONFLICT(player_id) DO NOTHING`,
		playerID, string(role), time.Now())
	if err != nil {
		return fmt.Errorf("failed to save player role: %w", err)
	}

	r.logger.Info().Str("player_id", playerID).Str("role", string(role)).Msg("player role saved")
	return nil
}

// LinkAccount registers a new account under a player.
func (r *AccountRepository) LinkAccount(ctx context.Context, playerID string, ref domain.AccountRef) error {
	now := time.Now()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (account_id, player_id, display_name, region, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		ref.AccountID, playerID, ref.DisplayName, ref.Region, now, now)
	if err != nil {
		return fmt.Errorf("failed to link account: %w", err)
	}

	r.logger.Info().
		Str("player_id", playerID).
		Str("account_id", ref.AccountID).
		Str("display_name", ref.DisplayName).
		Msg("account linked")
	return nil
}

func (r *AccountRepository) getPlayerRole(ctx context.Context, playerID string) (*domain.Role, error) {
	var raw string
	err := r.db.QueryRowContext(ctx,
		`SELECT role FROM player_roles WHERE player_id = ?`, playerID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load player role: %w", err)
	}

	role := domain.Role(raw)
	return &role, nil
}
