package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fasalseva/FasalSeva_Go/internal/domain"
	"github.com/fasalseva/FasalSeva_Go/internal/repository"
)

// ScenarioRepository implements plant scenario persistence for PostgreSQL
type ScenarioRepository struct {
	db *pgxpool.Pool
}

// NewScenarioRepository creates a new ScenarioRepository
func NewScenarioRepository(db *pgxpool.Pool) *ScenarioRepository {
	return &ScenarioRepository{db: db}
}

const scenarioColumns = `scenario_id, crop_id, user_id, scenario_type, severity,
	description, impact_description, data_trigger, actions, auto_resolve_hours,
	active, resolution_action, resolved_at, created_at`

func scanScenario(row pgx.Row) (*domain.Scenario, error) {
	var s domain.Scenario
	var trigger, actions []byte
	err := row.Scan(
		&s.ID,
		&s.CropID,
		&s.UserID,
		&s.Type,
		&s.Severity,
		&s.Description,
		&s.ImpactDescription,
		&trigger,
		&actions,
		&s.AutoResolveHours,
		&s.Active,
		&s.ResolutionAction,
		&s.ResolvedAt,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrScenarioNotFound
		}
		return nil, fmt.Errorf("failed to scan scenario: %w", err)
	}
	if err := json.Unmarshal(trigger, &s.DataTrigger); err != nil {
		return nil, fmt.Errorf("failed to unmarshal data trigger: %w", err)
	}
	if err := json.Unmarshal(actions, &s.Actions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal actions: %w", err)
	}
	return &s, nil
}

// CreateScenario inserts a new scenario row
func (r *ScenarioRepository) CreateScenario(ctx context.Context, scenario *domain.Scenario) error {
	trigger, err := json.Marshal(scenario.DataTrigger)
	if err != nil {
		return fmt.Errorf("failed to marshal data trigger: %w", err)
	}
	actions, err := json.Marshal(scenario.Actions)
	if err != nil {
		return fmt.Errorf("failed to marshal actions: %w", err)
	}

	query := `
		INSERT INTO plant_scenarios (scenario_id, crop_id, user_id, scenario_type, severity,
			description, impact_description, data_trigger, actions, auto_resolve_hours, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, TRUE)
		RETURNING created_at
	`
	err = r.db.QueryRow(ctx, query,
		scenario.ID, scenario.CropID, scenario.UserID, scenario.Type, scenario.Severity,
		scenario.Description, scenario.ImpactDescription, trigger, actions, scenario.AutoResolveHours,
	).Scan(&scenario.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert scenario: %w", err)
	}
	scenario.Active = true
	return nil
}

// GetScenario returns the scenario with the given ID
func (r *ScenarioRepository) GetScenario(ctx context.Context, scenarioID string) (*domain.Scenario, error) {
	query := fmt.Sprintf(`SELECT %s FROM plant_scenarios WHERE scenario_id = $1`, scenarioColumns)
	return scanScenario(r.db.QueryRow(ctx, query, scenarioID))
}

// GetActiveScenarios returns all active scenarios for the user, newest first
func (r *ScenarioRepository) GetActiveScenarios(ctx context.Context, userID string) ([]domain.Scenario, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM plant_scenarios
		WHERE user_id = $1 AND active = TRUE
		ORDER BY created_at DESC
	`, scenarioColumns)
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query active scenarios: %w", err)
	}
	defer rows.Close()

	var scenarios []domain.Scenario
	for rows.Next() {
		s, err := scanScenario(rows)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, *s)
	}
	return scenarios, rows.Err()
}

// CountActiveByCrop returns a crop_id to active scenario count map for the user
func (r *ScenarioRepository) CountActiveByCrop(ctx context.Context, userID string) (map[int]int, error) {
	query := `
		SELECT crop_id, COUNT(*) FROM plant_scenarios
		WHERE user_id = $1 AND active = TRUE
		GROUP BY crop_id
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count active scenarios: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int)
	for rows.Next() {
		var cropID, count int
		if err := rows.Scan(&cropID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan scenario count: %w", err)
		}
		counts[cropID] = count
	}
	return counts, rows.Err()
}

// HasActiveScenario reports whether the crop already has an active scenario of the type
func (r *ScenarioRepository) HasActiveScenario(ctx context.Context, cropID int, scenarioType string) (bool, error) {
	var exists bool
	query := `
		SELECT EXISTS (SELECT 1 FROM plant_scenarios
			WHERE crop_id = $1 AND scenario_type = $2 AND active = TRUE)
	`
	if err := r.db.QueryRow(ctx, query, cropID, scenarioType).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check active scenario: %w", err)
	}
	return exists, nil
}

// ResolveScenario marks a scenario inactive with the action that resolved it
func (r *ScenarioRepository) ResolveScenario(ctx context.Context, scenarioID, resolutionAction string, resolvedAt time.Time) error {
	query := `
		UPDATE plant_scenarios
		SET active = FALSE, resolution_action = $2, resolved_at = $3
		WHERE scenario_id = $1 AND active = TRUE
	`
	tag, err := r.db.Exec(ctx, query, scenarioID, resolutionAction, resolvedAt)
	if err != nil {
		return fmt.Errorf("failed to resolve scenario: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrScenarioInactive
	}
	return nil
}

// ExpireScenarios marks the given scenarios inactive as auto-expired
func (r *ScenarioRepository) ExpireScenarios(ctx context.Context, scenarioIDs []string, resolvedAt time.Time) error {
	if len(scenarioIDs) == 0 {
		return nil
	}
	query := `
		UPDATE plant_scenarios
		SET active = FALSE, resolution_action = 'expired', resolved_at = $2
		WHERE scenario_id = ANY($1) AND active = TRUE
	`
	if _, err := r.db.Exec(ctx, query, scenarioIDs, resolvedAt); err != nil {
		return fmt.Errorf("failed to expire scenarios: %w", err)
	}
	return nil
}

// ExpireOverdue marks every scenario past its deadline inactive
func (r *ScenarioRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE plant_scenarios
		SET active = FALSE, resolution_action = 'expired', resolved_at = $1
		WHERE active = TRUE
		  AND created_at + (auto_resolve_hours * interval '1 hour') < $1
	`
	tag, err := r.db.Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to expire overdue scenarios: %w", err)
	}
	return tag.RowsAffected(), nil
}

var _ repository.Scenario = (*ScenarioRepository)(nil)
