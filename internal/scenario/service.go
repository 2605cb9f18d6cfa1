package scenario

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fasalseva/FasalSeva_Go/internal/clock"
	"github.com/fasalseva/FasalSeva_Go/internal/domain"
	"github.com/fasalseva/FasalSeva_Go/internal/logger"
	"github.com/fasalseva/FasalSeva_Go/internal/repository"
)

const weatherWindowDays = 7

// WeatherSource fetches daily climate series for a location
type WeatherSource interface {
	FetchDailyWeather(ctx context.Context, lat, lon float64, start, end time.Time) (*domain.WeatherData, error)
}

// Service manages weather-driven crop scenarios
type Service interface {
	// Generate evaluates current weather against the crop and persists any
	// new scenarios. Scenario types already active on the crop are skipped.
	Generate(ctx context.Context, userID string, cropID int) ([]domain.Scenario, error)

	// Active returns the user's open scenarios, expiring any past deadline.
	Active(ctx context.Context, userID string) ([]domain.Scenario, error)

	// Complete attempts a scenario action. The action cost is deducted no
	// matter the outcome; rewards are credited only on success.
	Complete(ctx context.Context, userID, scenarioID, actionID string) (*domain.ScenarioResolution, error)
}

type service struct {
	cropRepo     repository.Crop
	scenarioRepo repository.Scenario
	userRepo     repository.User
	progressRepo repository.Progress
	weather      WeatherSource
	generator    Generator
	clock        clock.Clock

	mu  sync.Mutex
	rng *rand.Rand
}

func NewService(
	cropRepo repository.Crop,
	scenarioRepo repository.Scenario,
	userRepo repository.User,
	progressRepo repository.Progress,
	weatherSource WeatherSource,
	generator Generator,
	clk clock.Clock,
	rng *rand.Rand,
) Service {
	return &service{
		cropRepo:     cropRepo,
		scenarioRepo: scenarioRepo,
		userRepo:     userRepo,
		progressRepo: progressRepo,
		weather:      weatherSource,
		generator:    generator,
		clock:        clk,
		rng:          rng,
	}
}

func (s *service) Generate(ctx context.Context, userID string, cropID int) ([]domain.Scenario, error) {
	log := logger.FromContext(ctx)

	crop, err := s.cropRepo.GetCrop(ctx, cropID)
	if err != nil {
		return nil, err
	}
	if crop.UserID != userID {
		return nil, domain.ErrCropNotFound
	}

	now := s.clock.Now()
	data, err := s.weather.FetchDailyWeather(ctx, crop.Latitude, crop.Longitude,
		now.AddDate(0, 0, -weatherWindowDays), now)
	if err != nil {
		log.Warn("weather unavailable, no scenarios generated",
			"crop_id", cropID, "error", err)
		return []domain.Scenario{}, nil
	}

	candidates, err := s.generator.Generate(ctx, Input{
		Crop:     crop,
		Weather:  data,
		Readings: LatestReadings(data),
		Now:      now,
	})
	if err != nil {
		return nil, fmt.Errorf("generating scenarios: %w", err)
	}

	saved := make([]domain.Scenario, 0, len(candidates))
	for _, sc := range candidates {
		active, err := s.scenarioRepo.HasActiveScenario(ctx, cropID, sc.Type)
		if err != nil {
			return nil, err
		}
		if active {
			continue
		}

		sc.ID = uuid.NewString()
		sc.CropID = cropID
		sc.UserID = userID
		sc.Active = true
		sc.CreatedAt = now
		if err := s.scenarioRepo.CreateScenario(ctx, &sc); err != nil {
			return nil, err
		}
		saved = append(saved, sc)
	}

	log.Info("scenarios generated", "crop_id", cropID, "count", len(saved))
	return saved, nil
}

func (s *service) Active(ctx context.Context, userID string) ([]domain.Scenario, error) {
	scenarios, err := s.scenarioRepo.GetActiveScenarios(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	open := make([]domain.Scenario, 0, len(scenarios))
	var expired []string
	for _, sc := range scenarios {
		if now.After(sc.Deadline()) {
			expired = append(expired, sc.ID)
			continue
		}
		open = append(open, sc)
	}
	if len(expired) > 0 {
		if err := s.scenarioRepo.ExpireScenarios(ctx, expired, now); err != nil {
			return nil, err
		}
		logger.FromContext(ctx).Info("expired scenarios", "count", len(expired))
	}
	return open, nil
}

func (s *service) Complete(ctx context.Context, userID, scenarioID, actionID string) (*domain.ScenarioResolution, error) {
	log := logger.FromContext(ctx)

	sc, err := s.scenarioRepo.GetScenario(ctx, scenarioID)
	if err != nil {
		return nil, err
	}
	if sc.UserID != userID {
		return nil, domain.ErrScenarioNotFound
	}
	if !sc.Active {
		return nil, domain.ErrScenarioInactive
	}

	now := s.clock.Now()
	if now.After(sc.Deadline()) {
		if err := s.scenarioRepo.ExpireScenarios(ctx, []string{sc.ID}, now); err != nil {
			return nil, err
		}
		return nil, domain.ErrScenarioInactive
	}

	action, ok := sc.FindAction(actionID)
	if !ok {
		return nil, domain.ErrInvalidAction
	}

	// The attempt costs coins whether or not it works out
	if _, err := s.userRepo.AdjustBalances(ctx, userID, -action.Cost, 0); err != nil {
		return nil, err
	}

	s.mu.Lock()
	roll := s.rng.Float64()
	s.mu.Unlock()
	success := roll < action.SuccessRate

	resolution := &domain.ScenarioResolution{
		ScenarioID: sc.ID,
		ActionID:   action.ID,
		Success:    success,
		CostPaid:   action.Cost,
	}

	if !success {
		resolution.Message = fmt.Sprintf("Action '%s' was not effective. Try another approach!", action.Name)
		log.Info("scenario action failed", "scenario_id", sc.ID, "action", action.ID)
		return resolution, nil
	}

	if _, err := s.userRepo.AdjustBalances(ctx, userID, action.Rewards.Coins, action.Rewards.XP); err != nil {
		return nil, err
	}
	if err := s.scenarioRepo.ResolveScenario(ctx, sc.ID, action.ID, now); err != nil {
		return nil, err
	}
	if err := s.progressRepo.IncrementScenariosCompleted(ctx, userID); err != nil {
		return nil, err
	}

	resolution.Rewards = action.Rewards
	resolution.Message = fmt.Sprintf("Successfully completed scenario with %s!", action.Name)
	log.Info("scenario resolved", "scenario_id", sc.ID, "action", action.ID,
		"xp", action.Rewards.XP, "coins", action.Rewards.Coins)
	return resolution, nil
}
