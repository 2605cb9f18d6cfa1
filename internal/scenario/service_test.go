package scenario

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fasalseva/FasalSeva_Go/internal/clock"
	"github.com/fasalseva/FasalSeva_Go/internal/domain"
)

type fakeCropRepo struct {
	crops map[int]domain.Crop
}

func (f *fakeCropRepo) CreateCrop(_ context.Context, crop *domain.Crop) error {
	f.crops[crop.ID] = *crop
	return nil
}

func (f *fakeCropRepo) GetCrop(_ context.Context, cropID int) (*domain.Crop, error) {
	crop, ok := f.crops[cropID]
	if !ok {
		return nil, domain.ErrCropNotFound
	}
	return &crop, nil
}

func (f *fakeCropRepo) GetUserCrops(context.Context, string) ([]domain.Crop, error) {
	return nil, nil
}

func (f *fakeCropRepo) UpdateCropState(_ context.Context, crop *domain.Crop) error {
	f.crops[crop.ID] = *crop
	return nil
}

func (f *fakeCropRepo) DeleteCrop(_ context.Context, cropID int) error {
	delete(f.crops, cropID)
	return nil
}

func (f *fakeCropRepo) PositionOccupied(context.Context, string, int, int) (bool, error) {
	return false, nil
}

type fakeScenarioRepo struct {
	scenarios map[string]domain.Scenario
	expired   []string
}

func newFakeScenarioRepo() *fakeScenarioRepo {
	return &fakeScenarioRepo{scenarios: make(map[string]domain.Scenario)}
}

func (f *fakeScenarioRepo) CreateScenario(_ context.Context, scenario *domain.Scenario) error {
	f.scenarios[scenario.ID] = *scenario
	return nil
}

func (f *fakeScenarioRepo) GetScenario(_ context.Context, scenarioID string) (*domain.Scenario, error) {
	sc, ok := f.scenarios[scenarioID]
	if !ok {
		return nil, domain.ErrScenarioNotFound
	}
	return &sc, nil
}

func (f *fakeScenarioRepo) GetActiveScenarios(_ context.Context, userID string) ([]domain.Scenario, error) {
	var out []domain.Scenario
	for _, sc := range f.scenarios {
		if sc.UserID == userID && sc.Active {
			out = append(out, sc)
		}
	}
	return out, nil
}

func (f *fakeScenarioRepo) CountActiveByCrop(_ context.Context, userID string) (map[int]int, error) {
	counts := make(map[int]int)
	for _, sc := range f.scenarios {
		if sc.UserID == userID && sc.Active {
			counts[sc.CropID]++
		}
	}
	return counts, nil
}

func (f *fakeScenarioRepo) HasActiveScenario(_ context.Context, cropID int, scenarioType string) (bool, error) {
	for _, sc := range f.scenarios {
		if sc.CropID == cropID && sc.Type == scenarioType && sc.Active {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeScenarioRepo) ResolveScenario(_ context.Context, scenarioID, resolutionAction string, resolvedAt time.Time) error {
	sc, ok := f.scenarios[scenarioID]
	if !ok {
		return domain.ErrScenarioNotFound
	}
	sc.Active = false
	sc.ResolutionAction = resolutionAction
	sc.ResolvedAt = &resolvedAt
	f.scenarios[scenarioID] = sc
	return nil
}

func (f *fakeScenarioRepo) ExpireScenarios(_ context.Context, scenarioIDs []string, resolvedAt time.Time) error {
	for _, id := range scenarioIDs {
		sc, ok := f.scenarios[id]
		if !ok {
			continue
		}
		sc.Active = false
		sc.ResolvedAt = &resolvedAt
		f.scenarios[id] = sc
		f.expired = append(f.expired, id)
	}
	return nil
}

func (f *fakeScenarioRepo) ExpireOverdue(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for id, sc := range f.scenarios {
		if sc.Active && now.After(sc.Deadline()) {
			sc.Active = false
			resolvedAt := now
			sc.ResolvedAt = &resolvedAt
			f.scenarios[id] = sc
			f.expired = append(f.expired, id)
			n++
		}
	}
	return n, nil
}

type fakeUserRepo struct {
	user domain.User
}

func (f *fakeUserRepo) CreateUser(context.Context, *domain.User) error { return nil }

func (f *fakeUserRepo) GetUserByID(_ context.Context, userID string) (*domain.User, error) {
	if userID != f.user.ID {
		return nil, domain.ErrUserNotFound
	}
	user := f.user
	return &user, nil
}

func (f *fakeUserRepo) GetUserByIdentifier(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) UsernameExists(context.Context, string) (bool, error) { return false, nil }
func (f *fakeUserRepo) EmailExists(context.Context, string) (bool, error)    { return false, nil }

func (f *fakeUserRepo) UpdateLastLogin(context.Context, string, time.Time) error { return nil }
func (f *fakeUserRepo) UpdateLanguage(context.Context, string, string) error     { return nil }

func (f *fakeUserRepo) AdjustBalances(_ context.Context, userID string, coinsDelta, xpDelta int) (*domain.User, error) {
	if userID != f.user.ID {
		return nil, domain.ErrUserNotFound
	}
	if f.user.Coins+coinsDelta < 0 {
		return nil, domain.ErrInsufficientCoins
	}
	f.user.Coins += coinsDelta
	f.user.XP += xpDelta
	user := f.user
	return &user, nil
}

func (f *fakeUserRepo) ClaimWelcomeBonus(context.Context, string, int) (bool, error) {
	return false, nil
}

func (f *fakeUserRepo) GetTopUsersByXP(context.Context, int) ([]domain.User, error) {
	return nil, nil
}

type fakeProgressRepo struct {
	scenariosCompleted int
}

func (f *fakeProgressRepo) GetProgress(context.Context, string) (*domain.UserProgress, error) {
	return &domain.UserProgress{}, nil
}

func (f *fakeProgressRepo) IncrementScenariosCompleted(context.Context, string) error {
	f.scenariosCompleted++
	return nil
}

func (f *fakeProgressRepo) IncrementSuccessfulHarvests(context.Context, string) error {
	return nil
}

type fakeWeather struct {
	data *domain.WeatherData
	err  error
}

func (f *fakeWeather) FetchDailyWeather(context.Context, float64, float64, time.Time, time.Time) (*domain.WeatherData, error) {
	return f.data, f.err
}

type fixture struct {
	svc       Service
	crops     *fakeCropRepo
	scenarios *fakeScenarioRepo
	users     *fakeUserRepo
	progress  *fakeProgressRepo
	weather   *fakeWeather
	clock     *clock.SimulatedClock
}

func newFixture(t *testing.T, coins int) *fixture {
	t.Helper()

	crops := &fakeCropRepo{crops: map[int]domain.Crop{
		1: {ID: 1, UserID: "user-1", Name: "Tomato", Latitude: 28.6, Longitude: 77.2},
	}}
	scenarios := newFakeScenarioRepo()
	users := &fakeUserRepo{user: domain.User{ID: "user-1", Coins: coins}}
	progress := &fakeProgressRepo{}
	weather := &fakeWeather{err: errors.New("nasa power unreachable")}
	clk := clock.NewSimulatedClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	svc := NewService(crops, scenarios, users, progress, weather,
		NewPipeline(NewRulesGenerator()), clk, rand.New(rand.NewSource(1)))

	return &fixture{
		svc:       svc,
		crops:     crops,
		scenarios: scenarios,
		users:     users,
		progress:  progress,
		weather:   weather,
		clock:     clk,
	}
}

func droughtWeather() *domain.WeatherData {
	return &domain.WeatherData{
		Parameters: map[string]map[string]float64{
			domain.ParamTemperature:   {"20260227": 31.0, "20260228": 34.0},
			domain.ParamPrecipitation: {"20260227": 0.4, "20260228": 0.2},
			domain.ParamHumidity:      {"20260228": 40.0},
			domain.ParamSolar:         {"20260228": 22.0},
			domain.ParamWindSpeed:     {"20260228": 3.0},
		},
	}
}

func TestGeneratePersistsScenarios(t *testing.T) {
	f := newFixture(t, 500)
	f.weather.data, f.weather.err = droughtWeather(), nil

	generated, err := f.svc.Generate(context.Background(), "user-1", 1)
	require.NoError(t, err)
	require.Len(t, generated, 1)

	sc := generated[0]
	assert.Equal(t, domain.ScenarioDrought, sc.Type)
	assert.NotEmpty(t, sc.ID)
	assert.Equal(t, 1, sc.CropID)
	assert.Equal(t, "user-1", sc.UserID)
	assert.True(t, sc.Active)
	assert.Equal(t, f.clock.Now(), sc.CreatedAt)

	stored, err := f.scenarios.GetScenario(context.Background(), sc.ID)
	require.NoError(t, err)
	assert.True(t, stored.Active)
}

func TestGenerateSkipsAlreadyActiveTypes(t *testing.T) {
	f := newFixture(t, 500)
	f.weather.data, f.weather.err = droughtWeather(), nil

	first, err := f.svc.Generate(context.Background(), "user-1", 1)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := f.svc.Generate(context.Background(), "user-1", 1)
	require.NoError(t, err)
	assert.Empty(t, second)
	assert.Len(t, f.scenarios.scenarios, 1)
}

func TestGenerateWeatherFailureYieldsNoScenarios(t *testing.T) {
	f := newFixture(t, 500)

	generated, err := f.svc.Generate(context.Background(), "user-1", 1)
	require.NoError(t, err)
	assert.Empty(t, generated)
}

func TestGenerateCropOwnership(t *testing.T) {
	f := newFixture(t, 500)

	_, err := f.svc.Generate(context.Background(), "someone-else", 1)
	assert.ErrorIs(t, err, domain.ErrCropNotFound)

	_, err = f.svc.Generate(context.Background(), "user-1", 99)
	assert.ErrorIs(t, err, domain.ErrCropNotFound)
}

func seedScenario(f *fixture, id string, createdAt time.Time) domain.Scenario {
	sc := domain.Scenario{
		ID:     id,
		CropID: 1, UserID: "user-1",
		Type:     domain.ScenarioDrought,
		Severity: domain.SeverityMedium,
		Actions: []domain.ScenarioAction{
			{
				ID: "install_drip_irrigation", Name: "Install Drip Irrigation",
				Cost: 200, SuccessRate: 0.9,
				Rewards: domain.ScenarioRewards{XP: 100, Coins: 50},
			},
			{
				ID: "deep_watering", Name: "Deep Watering Schedule",
				Cost: 80, SuccessRate: 0.5,
				Rewards: domain.ScenarioRewards{XP: 40, Coins: 10},
			},
		},
		AutoResolveHours: 48,
		Active:           true,
		CreatedAt:        createdAt,
	}
	f.scenarios.scenarios[id] = sc
	return sc
}

func TestActiveExpiresPastDeadline(t *testing.T) {
	f := newFixture(t, 500)
	now := f.clock.Now()
	seedScenario(f, "fresh", now.Add(-time.Hour))
	seedScenario(f, "stale", now.Add(-49*time.Hour))

	active, err := f.svc.Active(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "fresh", active[0].ID)
	assert.Equal(t, []string{"stale"}, f.scenarios.expired)
}

func TestCompleteSuccess(t *testing.T) {
	f := newFixture(t, 500)
	seedScenario(f, "sc-1", f.clock.Now().Add(-time.Hour))

	// First draw from seed 1 is ~0.60, under the 0.9 success rate
	res, err := f.svc.Complete(context.Background(), "user-1", "sc-1", "install_drip_irrigation")
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, 200, res.CostPaid)
	assert.Equal(t, domain.ScenarioRewards{XP: 100, Coins: 50}, res.Rewards)
	assert.Contains(t, res.Message, "Install Drip Irrigation")

	assert.Equal(t, 350, f.users.user.Coins)
	assert.Equal(t, 100, f.users.user.XP)
	assert.Equal(t, 1, f.progress.scenariosCompleted)

	stored := f.scenarios.scenarios["sc-1"]
	assert.False(t, stored.Active)
	assert.Equal(t, "install_drip_irrigation", stored.ResolutionAction)
	require.NotNil(t, stored.ResolvedAt)
}

func TestCompleteFailureKeepsScenarioOpen(t *testing.T) {
	f := newFixture(t, 500)
	seedScenario(f, "sc-1", f.clock.Now().Add(-time.Hour))

	// First draw from seed 1 is ~0.60, over the 0.5 success rate
	res, err := f.svc.Complete(context.Background(), "user-1", "sc-1", "deep_watering")
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.Equal(t, 80, res.CostPaid)
	assert.Equal(t, domain.ScenarioRewards{}, res.Rewards)
	assert.Contains(t, res.Message, "not effective")

	assert.Equal(t, 420, f.users.user.Coins, "cost is lost on failure")
	assert.Equal(t, 0, f.users.user.XP)
	assert.Equal(t, 0, f.progress.scenariosCompleted)
	assert.True(t, f.scenarios.scenarios["sc-1"].Active)
}

func TestCompleteInsufficientCoins(t *testing.T) {
	f := newFixture(t, 50)
	seedScenario(f, "sc-1", f.clock.Now().Add(-time.Hour))

	_, err := f.svc.Complete(context.Background(), "user-1", "sc-1", "install_drip_irrigation")
	assert.ErrorIs(t, err, domain.ErrInsufficientCoins)
	assert.Equal(t, 50, f.users.user.Coins)
	assert.True(t, f.scenarios.scenarios["sc-1"].Active)
}

func TestCompleteInvalidAction(t *testing.T) {
	f := newFixture(t, 500)
	seedScenario(f, "sc-1", f.clock.Now().Add(-time.Hour))

	_, err := f.svc.Complete(context.Background(), "user-1", "sc-1", "sacrifice_to_rain_gods")
	assert.ErrorIs(t, err, domain.ErrInvalidAction)
	assert.Equal(t, 500, f.users.user.Coins)
}

func TestCompleteExpiredScenario(t *testing.T) {
	f := newFixture(t, 500)
	seedScenario(f, "sc-1", f.clock.Now().Add(-50*time.Hour))

	_, err := f.svc.Complete(context.Background(), "user-1", "sc-1", "install_drip_irrigation")
	assert.ErrorIs(t, err, domain.ErrScenarioInactive)
	assert.Equal(t, []string{"sc-1"}, f.scenarios.expired)
	assert.Equal(t, 500, f.users.user.Coins)
}

func TestCompleteOwnershipAndState(t *testing.T) {
	f := newFixture(t, 500)
	sc := seedScenario(f, "sc-1", f.clock.Now().Add(-time.Hour))

	_, err := f.svc.Complete(context.Background(), "someone-else", "sc-1", "deep_watering")
	assert.ErrorIs(t, err, domain.ErrScenarioNotFound)

	sc.Active = false
	f.scenarios.scenarios["sc-1"] = sc
	_, err = f.svc.Complete(context.Background(), "user-1", "sc-1", "deep_watering")
	assert.ErrorIs(t, err, domain.ErrScenarioInactive)
}
