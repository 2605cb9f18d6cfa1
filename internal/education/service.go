package education

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/fasalseva/FasalSeva_Go/internal/clock"
	"github.com/fasalseva/FasalSeva_Go/internal/domain"
	"github.com/fasalseva/FasalSeva_Go/internal/logger"
	"github.com/fasalseva/FasalSeva_Go/internal/repository"
	"github.com/fasalseva/FasalSeva_Go/internal/weather"
)

const (
	maxContentAge        = 24 * time.Hour
	locationDriftDegrees = 0.1

	defaultCacheSize = 512
	defaultCacheTTL  = 15 * time.Minute

	weatherWindowDays = 7
)

// WeatherSource fetches daily climate series for a location
type WeatherSource interface {
	FetchDailyWeather(ctx context.Context, lat, lon float64, start, end time.Time) (*domain.WeatherData, error)
}

// GenerateResult is served by the generate endpoint
type GenerateResult struct {
	Content     json.RawMessage `json:"content"`
	ContentHash string          `json:"content_hash"`
	Cached      bool            `json:"is_cached"`
	PlantCount  int             `json:"plant_count"`
	Latitude    float64         `json:"latitude"`
	Longitude   float64         `json:"longitude"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// UpdateCheck reports whether content would be regenerated right now
type UpdateCheck struct {
	UpdateNeeded bool   `json:"update_needed"`
	Reason       string `json:"reason"`
}

// Service manages personalized educational content
type Service interface {
	// Generate returns the user's content, regenerating when the farm
	// state hash changed, the content aged out, or the farm moved.
	Generate(ctx context.Context, userID string, force bool) (*GenerateResult, error)

	// Updates checks whether a generate call would produce new content.
	Updates(ctx context.Context, userID string) (*UpdateCheck, error)

	// Complete stamps a content unit done and credits the earned XP.
	Complete(ctx context.Context, userID string, contentID, xpEarned int) error

	// Invalidate drops the user's cached content after a farm change.
	Invalidate(userID string)
}

type service struct {
	farmRepo repository.Farm
	cropRepo repository.Crop
	eduRepo  repository.Education
	userRepo repository.User
	weather  WeatherSource
	// Tried in order, the first generator to succeed wins
	generators []ContentGenerator
	cache      *contentCache
	clock      clock.Clock
}

func NewService(
	farmRepo repository.Farm,
	cropRepo repository.Crop,
	eduRepo repository.Education,
	userRepo repository.User,
	weatherSource WeatherSource,
	clk clock.Clock,
	generators ...ContentGenerator,
) Service {
	return &service{
		farmRepo:   farmRepo,
		cropRepo:   cropRepo,
		eduRepo:    eduRepo,
		userRepo:   userRepo,
		weather:    weatherSource,
		generators: generators,
		cache:      newContentCache(defaultCacheSize, defaultCacheTTL),
		clock:      clk,
	}
}

// farmState is the snapshot content generation keys off
type farmState struct {
	crops []domain.Crop
	lat   float64
	lon   float64
	hash  string
}

func (s *service) currentState(ctx context.Context, userID string) (*farmState, error) {
	farms, err := s.farmRepo.GetUserFarms(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(farms) == 0 {
		return nil, domain.ErrFarmNotFound
	}
	// GetUserFarms orders by creation time, the newest farm wins
	farm := farms[len(farms)-1]

	crops, err := s.cropRepo.GetUserCrops(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &farmState{
		crops: crops,
		lat:   farm.Latitude,
		lon:   farm.Longitude,
		hash:  ContentHash(crops, farm.Latitude, farm.Longitude),
	}, nil
}

func (s *service) Generate(ctx context.Context, userID string, force bool) (*GenerateResult, error) {
	log := logger.FromContext(ctx)

	state, err := s.currentState(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !force {
		if cached, ok := s.cache.Get(userID, state.hash); ok && s.fresh(cached, state) {
			return result(cached, state, true), nil
		}

		existing, err := s.eduRepo.GetLatestContent(ctx, userID)
		if err != nil && !errors.Is(err, domain.ErrContentNotFound) {
			return nil, err
		}
		if existing != nil && s.fresh(existing, state) {
			s.cache.Set(userID, existing)
			return result(existing, state, true), nil
		}
	}

	log.Info("regenerating educational content", "user_id", userID, "hash", state.hash)

	content, err := s.generate(ctx, state)
	if err != nil {
		return nil, err
	}
	encoded, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("encoding educational content: %w", err)
	}

	record := &domain.EducationalContent{
		UserID:      userID,
		ContentHash: state.hash,
		Content:     encoded,
		Latitude:    state.lat,
		Longitude:   state.lon,
		GeneratedAt: s.clock.Now(),
	}
	if err := s.eduRepo.SaveContent(ctx, record); err != nil {
		return nil, err
	}
	s.cache.Set(userID, record)

	return result(record, state, false), nil
}

func (s *service) generate(ctx context.Context, state *farmState) (*Content, error) {
	log := logger.FromContext(ctx)

	summary := domain.WeatherSummary{}
	now := s.clock.Now()
	data, err := s.weather.FetchDailyWeather(ctx, state.lat, state.lon,
		now.AddDate(0, 0, -weatherWindowDays), now)
	if err != nil {
		log.Warn("weather unavailable for educational content", "error", err)
	} else {
		summary = weather.Summarize(data)
	}

	in := ContentInput{
		Crops:     state.crops,
		Latitude:  state.lat,
		Longitude: state.lon,
		Summary:   summary,
	}

	var lastErr error
	for _, g := range s.generators {
		content, err := g.GenerateContent(ctx, in)
		if err != nil {
			log.Warn("content generator failed, trying next", "error", err)
			lastErr = err
			continue
		}
		return content, nil
	}
	return nil, fmt.Errorf("all content generators failed: %w", lastErr)
}

func (s *service) fresh(existing *domain.EducationalContent, state *farmState) bool {
	if existing.ContentHash != state.hash {
		return false
	}
	if s.clock.Since(existing.GeneratedAt) > maxContentAge {
		return false
	}
	if math.Abs(existing.Latitude-state.lat) > locationDriftDegrees ||
		math.Abs(existing.Longitude-state.lon) > locationDriftDegrees {
		return false
	}
	return true
}

func (s *service) Updates(ctx context.Context, userID string) (*UpdateCheck, error) {
	state, err := s.currentState(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrFarmNotFound) {
			return &UpdateCheck{UpdateNeeded: false, Reason: "no farm found"}, nil
		}
		return nil, err
	}

	existing, err := s.eduRepo.GetLatestContent(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrContentNotFound) {
			return &UpdateCheck{UpdateNeeded: true, Reason: "no content generated yet"}, nil
		}
		return nil, err
	}

	if !s.fresh(existing, state) {
		return &UpdateCheck{UpdateNeeded: true, Reason: "farm state changed"}, nil
	}
	return &UpdateCheck{UpdateNeeded: false, Reason: "content up to date"}, nil
}

func (s *service) Complete(ctx context.Context, userID string, contentID, xpEarned int) error {
	if xpEarned < 0 {
		xpEarned = 0
	}
	if err := s.eduRepo.MarkCompleted(ctx, userID, contentID, s.clock.Now()); err != nil {
		return err
	}
	if xpEarned > 0 {
		if _, err := s.userRepo.AdjustBalances(ctx, userID, 0, xpEarned); err != nil {
			return err
		}
	}
	s.cache.Invalidate(userID)
	logger.FromContext(ctx).Info("educational content completed",
		"user_id", userID, "content_id", contentID, "xp", xpEarned)
	return nil
}

func (s *service) Invalidate(userID string) {
	s.cache.Invalidate(userID)
}

func result(content *domain.EducationalContent, state *farmState, cached bool) *GenerateResult {
	return &GenerateResult{
		Content:     content.Content,
		ContentHash: content.ContentHash,
		Cached:      cached,
		PlantCount:  len(state.crops),
		Latitude:    state.lat,
		Longitude:   state.lon,
		GeneratedAt: content.GeneratedAt,
	}
}
