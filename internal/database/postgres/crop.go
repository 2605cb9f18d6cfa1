package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fasalseva/FasalSeva_Go/internal/domain"
	"github.com/fasalseva/FasalSeva_Go/internal/repository"
)

// CropRepository implements crop, care log and farm persistence for PostgreSQL
type CropRepository struct {
	db *pgxpool.Pool
}

// NewCropRepository creates a new CropRepository
func NewCropRepository(db *pgxpool.Pool) *CropRepository {
	return &CropRepository{db: db}
}

const cropColumns = `crop_id, user_id, name, position_row, position_col, planted_at,
	growth_stage, water_level, health, fertilizer_level, latitude, longitude,
	climate_bonus, care_score, total_investment, last_watered, last_fertilized`

func scanCrop(row pgx.Row) (*domain.Crop, error) {
	var crop domain.Crop
	err := row.Scan(
		&crop.ID,
		&crop.UserID,
		&crop.Name,
		&crop.Row,
		&crop.Col,
		&crop.PlantedAt,
		&crop.GrowthStage,
		&crop.WaterLevel,
		&crop.Health,
		&crop.FertilizerLevel,
		&crop.Latitude,
		&crop.Longitude,
		&crop.ClimateBonus,
		&crop.CareScore,
		&crop.TotalInvestment,
		&crop.LastWatered,
		&crop.LastFertilized,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCropNotFound
		}
		return nil, fmt.Errorf("failed to scan crop: %w", err)
	}
	return &crop, nil
}

// CreateCrop inserts a new crop and fills in the generated ID
func (r *CropRepository) CreateCrop(ctx context.Context, crop *domain.Crop) error {
	return createCrop(ctx, r.db, crop)
}

func createCrop(ctx context.Context, q querier, crop *domain.Crop) error {
	query := `
		INSERT INTO crops (user_id, name, position_row, position_col, planted_at,
			growth_stage, water_level, health, fertilizer_level, latitude, longitude,
			climate_bonus, care_score, total_investment)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING crop_id
	`
	err := q.QueryRow(ctx, query,
		crop.UserID, crop.Name, crop.Row, crop.Col, crop.PlantedAt,
		crop.GrowthStage, crop.WaterLevel, crop.Health, crop.FertilizerLevel,
		crop.Latitude, crop.Longitude, crop.ClimateBonus, crop.CareScore, crop.TotalInvestment,
	).Scan(&crop.ID)
	if err != nil {
		if isUniqueViolation(err, "") {
			return domain.ErrPositionOccupied
		}
		return fmt.Errorf("failed to insert crop: %w", err)
	}
	return nil
}

// GetCrop returns the crop with the given ID
func (r *CropRepository) GetCrop(ctx context.Context, cropID int) (*domain.Crop, error) {
	query := fmt.Sprintf(`SELECT %s FROM crops WHERE crop_id = $1`, cropColumns)
	return scanCrop(r.db.QueryRow(ctx, query, cropID))
}

// GetUserCrops returns all crops owned by the user, in grid order
func (r *CropRepository) GetUserCrops(ctx context.Context, userID string) ([]domain.Crop, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM crops WHERE user_id = $1
		ORDER BY position_row, position_col
	`, cropColumns)
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query crops: %w", err)
	}
	defer rows.Close()

	var crops []domain.Crop
	for rows.Next() {
		crop, err := scanCrop(rows)
		if err != nil {
			return nil, err
		}
		crops = append(crops, *crop)
	}
	return crops, rows.Err()
}

// UpdateCropState persists the mutable fields of a crop
func (r *CropRepository) UpdateCropState(ctx context.Context, crop *domain.Crop) error {
	return updateCropState(ctx, r.db, crop)
}

func updateCropState(ctx context.Context, q querier, crop *domain.Crop) error {
	query := `
		UPDATE crops
		SET growth_stage = $2, water_level = $3, health = $4, fertilizer_level = $5,
			climate_bonus = $6, care_score = $7, total_investment = $8,
			last_watered = $9, last_fertilized = $10
		WHERE crop_id = $1
	`
	tag, err := q.Exec(ctx, query,
		crop.ID, crop.GrowthStage, crop.WaterLevel, crop.Health, crop.FertilizerLevel,
		crop.ClimateBonus, crop.CareScore, crop.TotalInvestment,
		crop.LastWatered, crop.LastFertilized,
	)
	if err != nil {
		return fmt.Errorf("failed to update crop: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCropNotFound
	}
	return nil
}

// DeleteCrop removes a crop row
func (r *CropRepository) DeleteCrop(ctx context.Context, cropID int) error {
	return deleteCrop(ctx, r.db, cropID)
}

func deleteCrop(ctx context.Context, q querier, cropID int) error {
	tag, err := q.Exec(ctx, `DELETE FROM crops WHERE crop_id = $1`, cropID)
	if err != nil {
		return fmt.Errorf("failed to delete crop: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCropNotFound
	}
	return nil
}

// PositionOccupied reports whether the user already has a crop at the position
func (r *CropRepository) PositionOccupied(ctx context.Context, userID string, row, col int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM crops WHERE user_id = $1 AND position_row = $2 AND position_col = $3)`
	if err := r.db.QueryRow(ctx, query, userID, row, col).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check position: %w", err)
	}
	return exists, nil
}

// BeginFarmTx opens a transaction covering one care operation
func (r *CropRepository) BeginFarmTx(ctx context.Context) (repository.FarmTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &farmTx{tx: tx}, nil
}

// farmTx implements repository.FarmTx over a pgx transaction
type farmTx struct {
	tx pgx.Tx
}

func (t *farmTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *farmTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return errors.New(domain.ErrMsgTxClosed)
		}
		return err
	}
	return nil
}

func (t *farmTx) AdjustBalances(ctx context.Context, userID string, coinsDelta, xpDelta int) (*domain.User, error) {
	return adjustBalances(ctx, t.tx, userID, coinsDelta, xpDelta)
}

func (t *farmTx) CreateCrop(ctx context.Context, crop *domain.Crop) error {
	return createCrop(ctx, t.tx, crop)
}

func (t *farmTx) UpdateCropState(ctx context.Context, crop *domain.Crop) error {
	return updateCropState(ctx, t.tx, crop)
}

func (t *farmTx) DeleteCrop(ctx context.Context, cropID int) error {
	return deleteCrop(ctx, t.tx, cropID)
}

func (t *farmTx) RecordAction(ctx context.Context, entry *domain.CareLogEntry) error {
	return recordAction(ctx, t.tx, entry)
}

func (t *farmTx) IncrementSuccessfulHarvests(ctx context.Context, userID string) error {
	return incrementProgressCounter(ctx, t.tx, userID, "successful_harvests")
}

// FarmRepository implements farm location persistence for PostgreSQL
type FarmRepository struct {
	db *pgxpool.Pool
}

// NewFarmRepository creates a new FarmRepository
func NewFarmRepository(db *pgxpool.Pool) *FarmRepository {
	return &FarmRepository{db: db}
}

// CreateFarm inserts a new farm location
func (r *FarmRepository) CreateFarm(ctx context.Context, farm *domain.Farm) error {
	query := `
		INSERT INTO farms (user_id, name, latitude, longitude, crop_type, farm_size)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING farm_id, created_at
	`
	err := r.db.QueryRow(ctx, query,
		farm.UserID, farm.Name, farm.Latitude, farm.Longitude, farm.CropType, farm.FarmSize,
	).Scan(&farm.ID, &farm.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert farm: %w", err)
	}
	return nil
}

// GetUserFarms returns all farm locations owned by the user
func (r *FarmRepository) GetUserFarms(ctx context.Context, userID string) ([]domain.Farm, error) {
	query := `
		SELECT farm_id, user_id, name, latitude, longitude, crop_type, farm_size, created_at
		FROM farms WHERE user_id = $1 ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query farms: %w", err)
	}
	defer rows.Close()

	var farms []domain.Farm
	for rows.Next() {
		var farm domain.Farm
		if err := rows.Scan(&farm.ID, &farm.UserID, &farm.Name, &farm.Latitude, &farm.Longitude,
			&farm.CropType, &farm.FarmSize, &farm.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan farm: %w", err)
		}
		farms = append(farms, farm)
	}
	return farms, rows.Err()
}

var _ repository.Crop = (*CropRepository)(nil)
var _ repository.FarmTxBeginner = (*CropRepository)(nil)
var _ repository.Farm = (*FarmRepository)(nil)
