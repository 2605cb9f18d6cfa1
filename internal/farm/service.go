package farm

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/fasalseva/FasalSeva_Go/internal/advisor"
	"github.com/fasalseva/FasalSeva_Go/internal/clock"
	"github.com/fasalseva/FasalSeva_Go/internal/domain"
	"github.com/fasalseva/FasalSeva_Go/internal/logger"
	"github.com/fasalseva/FasalSeva_Go/internal/repository"
	"github.com/fasalseva/FasalSeva_Go/internal/utils"
	"github.com/fasalseva/FasalSeva_Go/internal/weather"
)

// WeatherSource fetches daily climate series for a location
type WeatherSource interface {
	FetchDailyWeather(ctx context.Context, lat, lon float64, start, end time.Time) (*domain.WeatherData, error)
}

// PlantParams is the input for planting a crop
type PlantParams struct {
	CropType  string
	Row       int
	Col       int
	Latitude  float64
	Longitude float64
}

// PlantResult is the outcome of a successful planting
type PlantResult struct {
	Crop         domain.Crop `json:"crop"`
	Cost         int         `json:"cost"`
	ClimateBonus float64     `json:"climate_bonus"`
	XPEarned     int         `json:"xp_earned"`
	Coins        int         `json:"coins"`
}

// CareResult is the outcome of a watering or fertilizing session
type CareResult struct {
	Action          string  `json:"action"`
	CostPaid        int     `json:"cost_paid"`
	WaterLevel      float64 `json:"water_level"`
	FertilizerLevel float64 `json:"fertilizer_level"`
	Health          float64 `json:"health"`
	CareScore       float64 `json:"care_score"`
	EfficiencyScore float64 `json:"efficiency_score"`
	QualityRating   string  `json:"quality_rating"`
	TotalInvestment int     `json:"total_investment"`
	XPEarned        int     `json:"xp_earned"`
	Coins           int     `json:"coins"`
}

// HarvestResult is the outcome of harvesting a mature crop
type HarvestResult struct {
	CropName    string `json:"crop_name"`
	XPEarned    int    `json:"xp_earned"`
	CoinsEarned int    `json:"coins_earned"`
	HealthBonus int    `json:"health_bonus"`
	Coins       int    `json:"coins"`
}

// SimulationResult reports the levels after simulated time passage
type SimulationResult struct {
	Hours           int     `json:"hours"`
	WaterLevel      float64 `json:"water_level"`
	FertilizerLevel float64 `json:"fertilizer_level"`
	Health          float64 `json:"health"`
}

// Scorecard summarizes the care performance of one crop
type Scorecard struct {
	CropID           int                   `json:"crop_id"`
	CropName         string                `json:"crop_name"`
	OverallScore     float64               `json:"overall_score"`
	CareScore        float64               `json:"care_score"`
	EfficiencyRating string                `json:"efficiency_rating"`
	TotalInvestment  int                   `json:"total_investment"`
	GrowthStage      float64               `json:"growth_stage"`
	CareActionsCount int                   `json:"care_actions_count"`
	CareHistory      []domain.CareLogEntry `json:"care_history"`
}

// FarmData bundles the raw climate series with a recommendation
type FarmData struct {
	Weather        *domain.WeatherData   `json:"weather"`
	Summary        domain.WeatherSummary `json:"summary"`
	Recommendation domain.Recommendation `json:"recommendation"`
}

// Service defines the crop lifecycle business logic
type Service interface {
	// Status returns all of the user's crops with decay and growth applied
	Status(ctx context.Context, userID string) ([]domain.CropStatus, error)
	// Plant creates a crop at a grid position, deducting its cost
	Plant(ctx context.Context, userID string, params PlantParams) (*PlantResult, error)
	// Water applies a watering tier to a crop
	Water(ctx context.Context, userID string, cropID int, quality string) (*CareResult, error)
	// Fertilize applies a fertilizer tier to a crop
	Fertilize(ctx context.Context, userID string, cropID int, fertilizerType string) (*CareResult, error)
	// Harvest collects a fully grown crop and removes it
	Harvest(ctx context.Context, userID string, cropID int) (*HarvestResult, error)
	// SimulateTime fast-forwards degradation on one crop
	SimulateTime(ctx context.Context, userID string, cropID, hours int) (*SimulationResult, error)
	// CareShop returns the static supply catalog
	CareShop() *CareShop
	// Scorecard summarizes one crop's care performance
	Scorecard(ctx context.Context, userID string, cropID int) (*Scorecard, error)
	// CreateFarm registers a named location
	CreateFarm(ctx context.Context, userID string, farm *domain.Farm) (*domain.Farm, error)
	// ListFarms returns the user's locations
	ListFarms(ctx context.Context, userID string) ([]domain.Farm, error)
	// FarmData fetches the climate series and a recommendation for a location
	FarmData(ctx context.Context, lat, lon float64, start, end time.Time, cropType string) (*FarmData, error)
}

type service struct {
	cropRepo     repository.Crop
	farmRepo     repository.Farm
	careLogRepo  repository.CareLog
	userRepo     repository.User
	scenarioRepo repository.Scenario
	txBeginner   repository.FarmTxBeginner
	weather      WeatherSource
	advisor      advisor.Advisor
	clock        clock.Clock
}

// NewService creates a new farm service
func NewService(
	cropRepo repository.Crop,
	farmRepo repository.Farm,
	careLogRepo repository.CareLog,
	userRepo repository.User,
	scenarioRepo repository.Scenario,
	txBeginner repository.FarmTxBeginner,
	weatherSource WeatherSource,
	adv advisor.Advisor,
	clk clock.Clock,
) Service {
	return &service{
		cropRepo:     cropRepo,
		farmRepo:     farmRepo,
		careLogRepo:  careLogRepo,
		userRepo:     userRepo,
		scenarioRepo: scenarioRepo,
		txBeginner:   txBeginner,
		weather:      weatherSource,
		advisor:      adv,
		clock:        clk,
	}
}

// Status returns all of the user's crops with decay and growth applied
func (s *service) Status(ctx context.Context, userID string) ([]domain.CropStatus, error) {
	log := logger.FromContext(ctx)

	crops, err := s.cropRepo.GetUserCrops(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get crops: %w", err)
	}

	activeCounts, err := s.scenarioRepo.CountActiveByCrop(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count scenarios: %w", err)
	}

	now := s.clock.Now()
	statuses := make([]domain.CropStatus, 0, len(crops))
	for i := range crops {
		crop := &crops[i]
		decayed := ApplyDecay(crop, now)
		grown := ApplyGrowth(crop, now)
		if decayed || grown {
			if err := s.cropRepo.UpdateCropState(ctx, crop); err != nil {
				log.Warn("Failed to persist crop state", "cropID", crop.ID, "error", err)
			}
		}
		statuses = append(statuses, domain.CropStatus{
			Crop:            *crop,
			ActiveScenarios: activeCounts[crop.ID],
			ReadyToHarvest:  crop.GrowthStage >= 100,
		})
	}
	return statuses, nil
}

// Plant creates a crop at a grid position, deducting its cost
func (s *service) Plant(ctx context.Context, userID string, params PlantParams) (*PlantResult, error) {
	log := logger.FromContext(ctx)
	log.Info("Plant called", "userID", userID, "cropType", params.CropType, "row", params.Row, "col", params.Col)

	occupied, err := s.cropRepo.PositionOccupied(ctx, userID, params.Row, params.Col)
	if err != nil {
		return nil, fmt.Errorf("failed to check position: %w", err)
	}
	if occupied {
		return nil, domain.ErrPositionOccupied
	}

	cost := CropCost(params.CropType)
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user.Coins < cost {
		return nil, domain.ErrInsufficientCoins
	}

	climateBonus := s.climateBonus(ctx, params.Latitude, params.Longitude)

	now := s.clock.Now()
	crop := &domain.Crop{
		UserID:          userID,
		Name:            params.CropType,
		Row:             params.Row,
		Col:             params.Col,
		PlantedAt:       now,
		GrowthStage:     0,
		WaterLevel:      StartingWaterLevel,
		Health:          StartingHealth,
		FertilizerLevel: StartingFertilizerLevel,
		Latitude:        params.Latitude,
		Longitude:       params.Longitude,
		ClimateBonus:    climateBonus,
		CareScore:       StartingCareScore,
		TotalInvestment: cost,
	}
	// Insert, debit and care log run in one transaction so a debit that
	// loses a race to a concurrent spend leaves no unpaid crop behind.
	tx, err := s.txBeginner.BeginFarmTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := tx.CreateCrop(ctx, crop); err != nil {
		return nil, fmt.Errorf("failed to create crop: %w", err)
	}

	updated, err := tx.AdjustBalances(ctx, userID, -cost, PlantXP)
	if err != nil {
		return nil, fmt.Errorf("failed to deduct planting cost: %w", err)
	}

	entry := &domain.CareLogEntry{
		CropID:     crop.ID,
		UserID:     userID,
		ActionType: domain.CareActionPlant,
		CostPaid:   cost,
		XPEarned:   PlantXP,
		CreatedAt:  now,
	}
	if err := tx.RecordAction(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record plant action: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit plant: %w", err)
	}

	return &PlantResult{
		Crop:         *crop,
		Cost:         cost,
		ClimateBonus: climateBonus,
		XPEarned:     PlantXP,
		Coins:        updated.Coins,
	}, nil
}

// climateBonus fetches recent climate data and scores the location.
// Weather failures never block planting, the bonus just stays zero.
func (s *service) climateBonus(ctx context.Context, lat, lon float64) float64 {
	log := logger.FromContext(ctx)

	end := s.clock.Now().AddDate(0, 0, -weatherLagDays)
	start := end.AddDate(0, 0, -weatherWindowDays)
	data, err := s.weather.FetchDailyWeather(ctx, lat, lon, start, end)
	if err != nil {
		log.Warn("Climate lookup failed, planting without bonus", "error", err)
		return 0
	}
	return weather.ClimateBonus(weather.Summarize(data))
}

// Water applies a watering tier to a crop
func (s *service) Water(ctx context.Context, userID string, cropID int, quality string) (*CareResult, error) {
	opt, ok := WaterOptionFor(quality)
	if !ok {
		return nil, domain.ErrInvalidQuality
	}

	crop, err := s.ownedCrop(ctx, userID, cropID)
	if err != nil {
		return nil, err
	}

	efficiency := WaterEfficiency(opt, crop.WaterLevel)
	bonusXP, rating := WaterBonusXP(efficiency)
	totalXP := WaterBaseXP + bonusXP

	now := s.clock.Now()
	crop.WaterLevel = math.Min(100, crop.WaterLevel+opt.WaterBoost)
	crop.Health = math.Min(100, crop.Health+opt.HealthBoost)
	crop.TotalInvestment += opt.Cost
	crop.CareScore = utils.EWMA(crop.CareScore, efficiency, waterCareWeight)
	crop.LastWatered = &now

	entry := &domain.CareLogEntry{
		CropID:          cropID,
		UserID:          userID,
		ActionType:      domain.CareActionWater,
		QualityLevel:    quality,
		CostPaid:        opt.Cost,
		EfficiencyScore: efficiency,
		XPEarned:        totalXP,
		CreatedAt:       now,
	}
	user, err := s.applyCare(ctx, crop, entry, -opt.Cost, totalXP)
	if err != nil {
		return nil, err
	}

	return &CareResult{
		Action:          fmt.Sprintf("%s Watering", opt.Name),
		CostPaid:        opt.Cost,
		WaterLevel:      crop.WaterLevel,
		FertilizerLevel: crop.FertilizerLevel,
		Health:          crop.Health,
		CareScore:       utils.Round2(crop.CareScore),
		EfficiencyScore: utils.Round2(efficiency),
		QualityRating:   rating,
		TotalInvestment: crop.TotalInvestment,
		XPEarned:        totalXP,
		Coins:           user.Coins,
	}, nil
}

// Fertilize applies a fertilizer tier to a crop
func (s *service) Fertilize(ctx context.Context, userID string, cropID int, fertilizerType string) (*CareResult, error) {
	opt, ok := FertilizerOptionFor(fertilizerType)
	if !ok {
		return nil, domain.ErrInvalidFertilizer
	}

	crop, err := s.ownedCrop(ctx, userID, cropID)
	if err != nil {
		return nil, err
	}

	effectiveness := FertilizerEffectiveness(crop)
	bonusXP, rating := FertilizerBonusXP(effectiveness)
	totalXP := FertilizeBaseXP + bonusXP
	qualityScore := opt.QualityScore * effectiveness

	now := s.clock.Now()
	crop.FertilizerLevel = math.Min(100, crop.FertilizerLevel+opt.NutrientBoost*effectiveness)
	crop.Health = math.Min(100, crop.Health+opt.HealthBoost*effectiveness)
	crop.TotalInvestment += opt.Cost
	crop.CareScore = utils.EWMA(crop.CareScore, qualityScore, fertilizerCareWeight)
	crop.LastFertilized = &now

	entry := &domain.CareLogEntry{
		CropID:          cropID,
		UserID:          userID,
		ActionType:      domain.CareActionFertilize,
		QualityLevel:    fertilizerType,
		CostPaid:        opt.Cost,
		EfficiencyScore: qualityScore,
		XPEarned:        totalXP,
		CreatedAt:       now,
	}
	user, err := s.applyCare(ctx, crop, entry, -opt.Cost, totalXP)
	if err != nil {
		return nil, err
	}

	return &CareResult{
		Action:          fmt.Sprintf("%s Applied", opt.Name),
		CostPaid:        opt.Cost,
		WaterLevel:      crop.WaterLevel,
		FertilizerLevel: crop.FertilizerLevel,
		Health:          crop.Health,
		CareScore:       utils.Round2(crop.CareScore),
		EfficiencyScore: utils.Round2(effectiveness),
		QualityRating:   rating,
		TotalInvestment: crop.TotalInvestment,
		XPEarned:        totalXP,
		Coins:           user.Coins,
	}, nil
}

// Harvest collects a fully grown crop and removes it
func (s *service) Harvest(ctx context.Context, userID string, cropID int) (*HarvestResult, error) {
	log := logger.FromContext(ctx)

	crop, err := s.ownedCrop(ctx, userID, cropID)
	if err != nil {
		return nil, err
	}
	ApplyGrowth(crop, s.clock.Now())
	if crop.GrowthStage < 100 {
		return nil, domain.ErrCropNotReady
	}

	xp, coins := HarvestRewards(crop.Health)
	healthBonus := xp - HarvestBaseXP
	now := s.clock.Now()

	tx, err := s.txBeginner.BeginFarmTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	user, err := tx.AdjustBalances(ctx, userID, coins, xp)
	if err != nil {
		return nil, fmt.Errorf("failed to credit harvest rewards: %w", err)
	}
	if err := tx.DeleteCrop(ctx, cropID); err != nil {
		return nil, fmt.Errorf("failed to delete crop: %w", err)
	}
	if err := tx.RecordAction(ctx, &domain.CareLogEntry{
		CropID:      cropID,
		UserID:      userID,
		ActionType:  domain.CareActionHarvest,
		XPEarned:    xp,
		CoinsEarned: coins,
		CreatedAt:   now,
	}); err != nil {
		return nil, fmt.Errorf("failed to record harvest: %w", err)
	}
	if err := tx.IncrementSuccessfulHarvests(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to bump harvest counter: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit harvest: %w", err)
	}

	log.Info("Crop harvested", "userID", userID, "cropID", cropID, "xp", xp, "coins", coins)

	return &HarvestResult{
		CropName:    crop.Name,
		XPEarned:    xp,
		CoinsEarned: coins,
		HealthBonus: healthBonus,
		Coins:       user.Coins,
	}, nil
}

// SimulateTime fast-forwards degradation on one crop
func (s *service) SimulateTime(ctx context.Context, userID string, cropID, hours int) (*SimulationResult, error) {
	if hours <= 0 || hours > MaxSimulationHours {
		return nil, domain.ErrInvalidHours
	}

	crop, err := s.ownedCrop(ctx, userID, cropID)
	if err != nil {
		return nil, err
	}

	SimulateHours(crop, float64(hours))
	if err := s.cropRepo.UpdateCropState(ctx, crop); err != nil {
		return nil, fmt.Errorf("failed to persist simulated state: %w", err)
	}

	return &SimulationResult{
		Hours:           hours,
		WaterLevel:      crop.WaterLevel,
		FertilizerLevel: crop.FertilizerLevel,
		Health:          crop.Health,
	}, nil
}

// CareShop returns the static supply catalog
func (s *service) CareShop() *CareShop {
	return Catalog()
}

// Scorecard summarizes one crop's care performance
func (s *service) Scorecard(ctx context.Context, userID string, cropID int) (*Scorecard, error) {
	crop, err := s.ownedCrop(ctx, userID, cropID)
	if err != nil {
		return nil, err
	}

	history, err := s.careLogRepo.GetCropCareLog(ctx, cropID, scorecardHistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to get care log: %w", err)
	}

	waterScore := math.Min(100, crop.WaterLevel+bonusIf(crop.WaterLevel > 70, 20))
	nutritionScore := math.Min(100, crop.FertilizerLevel+bonusIf(crop.FertilizerLevel > 60, 15))
	consistencyScore := math.Min(100, float64(len(history))*5)
	overall := (waterScore + nutritionScore + crop.Health + consistencyScore) / 4

	return &Scorecard{
		CropID:           crop.ID,
		CropName:         crop.Name,
		OverallScore:     utils.Round2(overall),
		CareScore:        utils.Round2(crop.CareScore),
		EfficiencyRating: efficiencyRating(overall),
		TotalInvestment:  crop.TotalInvestment,
		GrowthStage:      crop.GrowthStage,
		CareActionsCount: len(history),
		CareHistory:      history,
	}, nil
}

// CreateFarm registers a named location
func (s *service) CreateFarm(ctx context.Context, userID string, farm *domain.Farm) (*domain.Farm, error) {
	farm.UserID = userID
	farm.CreatedAt = s.clock.Now()
	if err := s.farmRepo.CreateFarm(ctx, farm); err != nil {
		return nil, fmt.Errorf("failed to create farm: %w", err)
	}
	return farm, nil
}

// ListFarms returns the user's locations
func (s *service) ListFarms(ctx context.Context, userID string) ([]domain.Farm, error) {
	farms, err := s.farmRepo.GetUserFarms(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get farms: %w", err)
	}
	return farms, nil
}

// FarmData fetches the climate series and a recommendation for a location.
// Unlike planting, a weather failure here is the caller's problem.
func (s *service) FarmData(ctx context.Context, lat, lon float64, start, end time.Time, cropType string) (*FarmData, error) {
	data, err := s.weather.FetchDailyWeather(ctx, lat, lon, start, end)
	if err != nil {
		return nil, err
	}
	summary := weather.Summarize(data)

	recommendation, err := s.advisor.Advise(ctx, summary, cropType)
	if err != nil {
		recommendation = weather.Recommend(summary)
	}

	return &FarmData{
		Weather:        data,
		Summary:        summary,
		Recommendation: recommendation,
	}, nil
}

// ownedCrop loads a crop and verifies ownership
func (s *service) ownedCrop(ctx context.Context, userID string, cropID int) (*domain.Crop, error) {
	crop, err := s.cropRepo.GetCrop(ctx, cropID)
	if err != nil {
		return nil, err
	}
	if crop.UserID != userID {
		return nil, domain.ErrCropNotFound
	}
	return crop, nil
}

// applyCare runs the coin debit, crop update and care log insert in one
// transaction so a failed debit leaves the crop untouched.
func (s *service) applyCare(ctx context.Context, crop *domain.Crop, entry *domain.CareLogEntry, coinsDelta, xpDelta int) (*domain.User, error) {
	tx, err := s.txBeginner.BeginFarmTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer repository.SafeRollback(ctx, tx)

	user, err := tx.AdjustBalances(ctx, crop.UserID, coinsDelta, xpDelta)
	if err != nil {
		return nil, err
	}
	if err := tx.UpdateCropState(ctx, crop); err != nil {
		return nil, fmt.Errorf("failed to update crop: %w", err)
	}
	if err := tx.RecordAction(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record care action: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit care action: %w", err)
	}
	return user, nil
}

func bonusIf(cond bool, bonus float64) float64 {
	if cond {
		return bonus
	}
	return 0
}

func efficiencyRating(overall float64) string {
	switch {
	case overall >= 90:
		return "Master Farmer"
	case overall >= 80:
		return "Expert Grower"
	case overall >= 70:
		return "Good Farmer"
	case overall >= 60:
		return "Learning Farmer"
	default:
		return "Needs Improvement"
	}
}
