package repository

import (
	"context"

	"github.com/fasalseva/FasalSeva_Go/internal/domain"
)

// Tx defines the interface for transactional operations
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// FarmTx groups the statements of a single farm operation so that the coin
// debit, crop mutation and care log row land or fail together.
type FarmTx interface {
	Tx
	AdjustBalances(ctx context.Context, userID string, coinsDelta, xpDelta int) (*domain.User, error)
	CreateCrop(ctx context.Context, crop *domain.Crop) error
	UpdateCropState(ctx context.Context, crop *domain.Crop) error
	DeleteCrop(ctx context.Context, cropID int) error
	RecordAction(ctx context.Context, entry *domain.CareLogEntry) error
	IncrementSuccessfulHarvests(ctx context.Context, userID string) error
}

// FarmTxBeginner is implemented by repositories that can open a FarmTx
type FarmTxBeginner interface {
	BeginFarmTx(ctx context.Context) (FarmTx, error)
}
