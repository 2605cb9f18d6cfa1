package repository

import (
	"context"
	"time"

	"github.com/fasalseva/FasalSeva_Go/internal/domain"
)

// Crop defines the interface for crop persistence
type Crop interface {
	CreateCrop(ctx context.Context, crop *domain.Crop) error
	GetCrop(ctx context.Context, cropID int) (*domain.Crop, error)
	GetUserCrops(ctx context.Context, userID string) ([]domain.Crop, error)
	UpdateCropState(ctx context.Context, crop *domain.Crop) error
	DeleteCrop(ctx context.Context, cropID int) error
	PositionOccupied(ctx context.Context, userID string, row, col int) (bool, error)
}

// CareLog defines the interface for crop care history
type CareLog interface {
	RecordAction(ctx context.Context, entry *domain.CareLogEntry) error
	GetCropCareLog(ctx context.Context, cropID, limit int) ([]domain.CareLogEntry, error)

	CountActions(ctx context.Context, userID, actionType string) (int, error)
	// CountQualityActions counts actions restricted to the given quality
	// levels. An empty actionType matches every action.
	CountQualityActions(ctx context.Context, userID, actionType string, qualities []string) (int, error)
	CountEfficientSessions(ctx context.Context, userID string, minEfficiency float64) (int, error)
	CountActionsSince(ctx context.Context, userID string, since time.Time) (int, error)

	// ActivityDates returns the distinct UTC dates with any care activity, newest first.
	ActivityDates(ctx context.Context, userID string) ([]time.Time, error)
}

// Farm defines the interface for farm location persistence
type Farm interface {
	CreateFarm(ctx context.Context, farm *domain.Farm) error
	GetUserFarms(ctx context.Context, userID string) ([]domain.Farm, error)
}
