package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fasalseva/FasalSeva_Go/internal/domain"
	"github.com/fasalseva/FasalSeva_Go/internal/repository"
)

// CareLogRepository implements care history persistence for PostgreSQL
type CareLogRepository struct {
	db *pgxpool.Pool
}

// NewCareLogRepository creates a new CareLogRepository
func NewCareLogRepository(db *pgxpool.Pool) *CareLogRepository {
	return &CareLogRepository{db: db}
}

// RecordAction appends a care log entry
func (r *CareLogRepository) RecordAction(ctx context.Context, entry *domain.CareLogEntry) error {
	return recordAction(ctx, r.db, entry)
}

func recordAction(ctx context.Context, q querier, entry *domain.CareLogEntry) error {
	query := `
		INSERT INTO crop_care_log (crop_id, user_id, action_type, quality_level,
			cost_paid, efficiency_score, xp_earned, coins_earned)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING care_log_id, created_at
	`
	err := q.QueryRow(ctx, query,
		entry.CropID, entry.UserID, entry.ActionType, entry.QualityLevel,
		entry.CostPaid, entry.EfficiencyScore, entry.XPEarned, entry.CoinsEarned,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert care log entry: %w", err)
	}
	return nil
}

// GetCropCareLog returns the newest care entries for a crop
func (r *CareLogRepository) GetCropCareLog(ctx context.Context, cropID, limit int) ([]domain.CareLogEntry, error) {
	query := `
		SELECT care_log_id, crop_id, user_id, action_type, quality_level,
			cost_paid, efficiency_score, xp_earned, coins_earned, created_at
		FROM crop_care_log
		WHERE crop_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, cropID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query care log: %w", err)
	}
	defer rows.Close()

	var entries []domain.CareLogEntry
	for rows.Next() {
		var e domain.CareLogEntry
		if err := rows.Scan(&e.ID, &e.CropID, &e.UserID, &e.ActionType, &e.QualityLevel,
			&e.CostPaid, &e.EfficiencyScore, &e.XPEarned, &e.CoinsEarned, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan care log entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CountActions counts the user's care actions of one type
func (r *CareLogRepository) CountActions(ctx context.Context, userID, actionType string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM crop_care_log WHERE user_id = $1 AND action_type = $2`
	if err := r.db.QueryRow(ctx, query, userID, actionType).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count actions: %w", err)
	}
	return count, nil
}

// CountQualityActions counts actions restricted to the given quality levels.
// An empty actionType matches every action.
func (r *CareLogRepository) CountQualityActions(ctx context.Context, userID, actionType string, qualities []string) (int, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM crop_care_log
		WHERE user_id = $1 AND ($2 = '' OR action_type = $2) AND quality_level = ANY($3)
	`
	if err := r.db.QueryRow(ctx, query, userID, actionType, qualities).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count quality actions: %w", err)
	}
	return count, nil
}

// CountEfficientSessions counts care entries at or above the efficiency threshold
func (r *CareLogRepository) CountEfficientSessions(ctx context.Context, userID string, minEfficiency float64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM crop_care_log WHERE user_id = $1 AND efficiency_score >= $2`
	if err := r.db.QueryRow(ctx, query, userID, minEfficiency).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count efficient sessions: %w", err)
	}
	return count, nil
}

// CountActionsSince counts all care actions recorded at or after the given time
func (r *CareLogRepository) CountActionsSince(ctx context.Context, userID string, since time.Time) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM crop_care_log WHERE user_id = $1 AND created_at >= $2`
	if err := r.db.QueryRow(ctx, query, userID, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count recent actions: %w", err)
	}
	return count, nil
}

// ActivityDates returns the distinct UTC dates with any care activity, newest first
func (r *CareLogRepository) ActivityDates(ctx context.Context, userID string) ([]time.Time, error) {
	query := `
		SELECT DISTINCT (created_at AT TIME ZONE 'UTC')::date AS day
		FROM crop_care_log
		WHERE user_id = $1
		ORDER BY day DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("failed to scan activity date: %w", err)
		}
		dates = append(dates, day)
	}
	return dates, rows.Err()
}

var _ repository.CareLog = (*CareLogRepository)(nil)
