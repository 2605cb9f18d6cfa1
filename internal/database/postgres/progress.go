package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fasalseva/FasalSeva_Go/internal/domain"
	"github.com/fasalseva/FasalSeva_Go/internal/repository"
)

// ProgressRepository implements user progress counters for PostgreSQL
type ProgressRepository struct {
	db *pgxpool.Pool
}

// NewProgressRepository creates a new ProgressRepository
func NewProgressRepository(db *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// GetProgress returns the progress row, creating a zeroed one if absent
func (r *ProgressRepository) GetProgress(ctx context.Context, userID string) (*domain.UserProgress, error) {
	query := `
		INSERT INTO user_progress (user_id)
		VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING user_id, scenarios_completed, successful_harvests, updated_at
	`
	var p domain.UserProgress
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.ScenariosCompleted, &p.SuccessfulHarvests, &p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return &p, nil
}

// IncrementScenariosCompleted bumps the scenario counter
func (r *ProgressRepository) IncrementScenariosCompleted(ctx context.Context, userID string) error {
	return incrementProgressCounter(ctx, r.db, userID, "scenarios_completed")
}

// IncrementSuccessfulHarvests bumps the harvest counter
func (r *ProgressRepository) IncrementSuccessfulHarvests(ctx context.Context, userID string) error {
	return incrementProgressCounter(ctx, r.db, userID, "successful_harvests")
}

// incrementProgressCounter upserts the progress row and bumps one counter.
// The column name comes from a fixed caller-supplied constant, never user input.
func incrementProgressCounter(ctx context.Context, q querier, userID, column string) error {
	query := fmt.Sprintf(`
		INSERT INTO user_progress (user_id, %s, updated_at)
		VALUES ($1, 1, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET %s = user_progress.%s + 1, updated_at = EXCLUDED.updated_at
	`, column, column, column)
	if _, err := q.Exec(ctx, query, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to increment %s: %w", column, err)
	}
	return nil
}

var _ repository.Progress = (*ProgressRepository)(nil)

// AchievementRepository implements unlocked achievement persistence for PostgreSQL
type AchievementRepository struct {
	db *pgxpool.Pool
}

// NewAchievementRepository creates a new AchievementRepository
func NewAchievementRepository(db *pgxpool.Pool) *AchievementRepository {
	return &AchievementRepository{db: db}
}

// GetUnlocked returns a map of achievement id to unlock time for the user
func (r *AchievementRepository) GetUnlocked(ctx context.Context, userID string) (map[string]time.Time, error) {
	query := `SELECT achievement_id, unlocked_at FROM user_achievements WHERE user_id = $1`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query achievements: %w", err)
	}
	defer rows.Close()

	unlocked := make(map[string]time.Time)
	for rows.Next() {
		var id string
		var at time.Time
		if err := rows.Scan(&id, &at); err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		unlocked[id] = at
	}
	return unlocked, rows.Err()
}

// Unlock inserts the unlock row if absent. Returns true when this call
// performed the insert, false when the achievement was already unlocked.
func (r *AchievementRepository) Unlock(ctx context.Context, userID, achievementID string, at time.Time) (bool, error) {
	query := `
		INSERT INTO user_achievements (user_id, achievement_id, unlocked_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, achievement_id) DO NOTHING
	`
	tag, err := r.db.Exec(ctx, query, userID, achievementID, at)
	if err != nil {
		return false, fmt.Errorf("failed to unlock achievement: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

var _ repository.Achievement = (*AchievementRepository)(nil)
