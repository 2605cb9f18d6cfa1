package repository

import (
	"context"
	"time"

	"github.com/fasalseva/FasalSeva_Go/internal/domain"
)

// Scenario defines the interface for plant scenario persistence
type Scenario interface {
	CreateScenario(ctx context.Context, scenario *domain.Scenario) error
	GetScenario(ctx context.Context, scenarioID string) (*domain.Scenario, error)
	GetActiveScenarios(ctx context.Context, userID string) ([]domain.Scenario, error)
	CountActiveByCrop(ctx context.Context, userID string) (map[int]int, error)
	HasActiveScenario(ctx context.Context, cropID int, scenarioType string) (bool, error)
	ResolveScenario(ctx context.Context, scenarioID, resolutionAction string, resolvedAt time.Time) error
	ExpireScenarios(ctx context.Context, scenarioIDs []string, resolvedAt time.Time) error
	// ExpireOverdue marks every scenario past its deadline inactive,
	// regardless of owner. Used by the background sweep.
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
}

// Progress defines the interface for user progress counters
type Progress interface {
	// GetProgress returns the progress row, creating a zeroed one if absent.
	GetProgress(ctx context.Context, userID string) (*domain.UserProgress, error)
	IncrementScenariosCompleted(ctx context.Context, userID string) error
	IncrementSuccessfulHarvests(ctx context.Context, userID string) error
}

// Achievement defines the interface for unlocked achievement persistence
type Achievement interface {
	GetUnlocked(ctx context.Context, userID string) (map[string]time.Time, error)

	// Unlock inserts the unlock row if absent. Returns true when this call
	// performed the insert, false when the achievement was already unlocked.
	Unlock(ctx context.Context, userID, achievementID string, at time.Time) (bool, error)
}
