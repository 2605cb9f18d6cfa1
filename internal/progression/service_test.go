package progression

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fasalseva/FasalSeva_Go/internal/clock"
	"github.com/fasalseva/FasalSeva_Go/internal/domain"
)

type fakeUserRepo struct {
	user *domain.User
	top  []domain.User
}

func (f *fakeUserRepo) CreateUser(context.Context, *domain.User) error { return nil }

func (f *fakeUserRepo) GetUserByID(_ context.Context, userID string) (*domain.User, error) {
	if f.user == nil || f.user.ID != userID {
		return nil, domain.ErrUserNotFound
	}
	copied := *f.user
	return &copied, nil
}

func (f *fakeUserRepo) GetUserByIdentifier(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) UsernameExists(context.Context, string) (bool, error) { return false, nil }
func (f *fakeUserRepo) EmailExists(context.Context, string) (bool, error)    { return false, nil }
func (f *fakeUserRepo) UpdateLastLogin(context.Context, string, time.Time) error {
	return nil
}
func (f *fakeUserRepo) UpdateLanguage(context.Context, string, string) error { return nil }

func (f *fakeUserRepo) AdjustBalances(_ context.Context, userID string, coinsDelta, xpDelta int) (*domain.User, error) {
	if f.user == nil || f.user.ID != userID {
		return nil, domain.ErrUserNotFound
	}
	if f.user.Coins+coinsDelta < 0 {
		return nil, domain.ErrInsufficientCoins
	}
	f.user.Coins += coinsDelta
	f.user.XP += xpDelta
	copied := *f.user
	return &copied, nil
}

func (f *fakeUserRepo) ClaimWelcomeBonus(context.Context, string, int) (bool, error) {
	return false, nil
}

func (f *fakeUserRepo) GetTopUsersByXP(context.Context, int) ([]domain.User, error) {
	return f.top, nil
}

type fakeCareLog struct {
	actionCounts  map[string]int
	qualityCounts map[string]int
	efficient     int
	sinceCounts   map[time.Time]int
	dates         []time.Time
}

func (f *fakeCareLog) RecordAction(context.Context, *domain.CareLogEntry) error { return nil }
func (f *fakeCareLog) GetCropCareLog(context.Context, int, int) ([]domain.CareLogEntry, error) {
	return nil, nil
}

func (f *fakeCareLog) CountActions(_ context.Context, _, actionType string) (int, error) {
	return f.actionCounts[actionType], nil
}

func (f *fakeCareLog) CountQualityActions(_ context.Context, _, actionType string, qualities []string) (int, error) {
	count := 0
	for _, q := range qualities {
		count += f.qualityCounts[actionType+"/"+q]
	}
	return count, nil
}

func (f *fakeCareLog) CountEfficientSessions(context.Context, string, float64) (int, error) {
	return f.efficient, nil
}

func (f *fakeCareLog) CountActionsSince(_ context.Context, _ string, since time.Time) (int, error) {
	return f.sinceCounts[since], nil
}

func (f *fakeCareLog) ActivityDates(context.Context, string) ([]time.Time, error) {
	return f.dates, nil
}

type fakeAchievementRepo struct {
	unlocked map[string]time.Time
}

func (f *fakeAchievementRepo) GetUnlocked(context.Context, string) (map[string]time.Time, error) {
	return f.unlocked, nil
}

func (f *fakeAchievementRepo) Unlock(_ context.Context, _, achievementID string, at time.Time) (bool, error) {
	if _, ok := f.unlocked[achievementID]; ok {
		return false, nil
	}
	f.unlocked[achievementID] = at
	return true, nil
}

type fakeProgressRepo struct {
	progress domain.UserProgress
}

func (f *fakeProgressRepo) GetProgress(context.Context, string) (*domain.UserProgress, error) {
	copied := f.progress
	return &copied, nil
}

func (f *fakeProgressRepo) IncrementScenariosCompleted(context.Context, string) error {
	f.progress.ScenariosCompleted++
	return nil
}

func (f *fakeProgressRepo) IncrementSuccessfulHarvests(context.Context, string) error {
	f.progress.SuccessfulHarvests++
	return nil
}

type progressionFixture struct {
	svc          Service
	users        *fakeUserRepo
	careLog      *fakeCareLog
	achievements *fakeAchievementRepo
	progress     *fakeProgressRepo
	clock        *clock.SimulatedClock
}

func newProgressionFixture(t *testing.T) *progressionFixture {
	t.Helper()
	users := &fakeUserRepo{user: &domain.User{ID: "user-1", Username: "kisan", Coins: 100, XP: 0}}
	careLog := &fakeCareLog{
		actionCounts:  make(map[string]int),
		qualityCounts: make(map[string]int),
		sinceCounts:   make(map[time.Time]int),
	}
	achievements := &fakeAchievementRepo{unlocked: make(map[string]time.Time)}
	progress := &fakeProgressRepo{}
	clk := clock.NewSimulatedClock(time.Date(2026, 3, 11, 15, 0, 0, 0, time.UTC))

	return &progressionFixture{
		svc:          NewService(users, careLog, achievements, progress, clk),
		users:        users,
		careLog:      careLog,
		achievements: achievements,
		progress:     progress,
		clock:        clk,
	}
}

func TestCheckAchievementsUnlocksAndRewards(t *testing.T) {
	f := newProgressionFixture(t)
	f.careLog.actionCounts[domain.CareActionPlant] = 1

	unlocked, err := f.svc.CheckAchievements(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, unlocked, 1)
	assert.Equal(t, "first_plant", unlocked[0].ID)

	// Rewards credited: 25 coins, 50 XP
	assert.Equal(t, 125, f.users.user.Coins)
	assert.Equal(t, 50, f.users.user.XP)

	// Second check is a no-op
	unlocked, err = f.svc.CheckAchievements(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, unlocked)
	assert.Equal(t, 125, f.users.user.Coins)
}

func TestCheckAchievementsCascadingRewards(t *testing.T) {
	f := newProgressionFixture(t)
	f.users.user.XP = 380
	f.careLog.actionCounts[domain.CareActionWater] = 1

	// first_water pays 25 XP, pushing the user from level 4 to 5,
	// so level_five unlocks in the same pass
	unlocked, err := f.svc.CheckAchievements(context.Background(), "user-1")
	require.NoError(t, err)

	ids := make([]string, 0, len(unlocked))
	for _, a := range unlocked {
		ids = append(ids, a.ID)
	}
	assert.Contains(t, ids, "first_water")
	assert.Contains(t, ids, "level_five")
}

func TestAchievementsProgress(t *testing.T) {
	f := newProgressionFixture(t)
	f.careLog.actionCounts[domain.CareActionWater] = 25
	f.achievements.unlocked["first_water"] = f.clock.Now()

	list, err := f.svc.Achievements(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 17, list.Total)
	assert.Equal(t, 1, list.Unlocked)

	byID := make(map[string]domain.AchievementStatus)
	for _, a := range list.Achievements {
		byID[a.ID] = a
	}
	assert.True(t, byID["first_water"].Unlocked)
	assert.Equal(t, 100.0, byID["first_water"].Progress)
	assert.Equal(t, 50.0, byID["water_master"].Progress)
	assert.False(t, byID["water_master"].Unlocked)
}

func TestAchievementStats(t *testing.T) {
	f := newProgressionFixture(t)
	f.achievements.unlocked["first_plant"] = f.clock.Now().Add(-2 * time.Hour)
	f.achievements.unlocked["first_water"] = f.clock.Now().Add(-time.Hour)

	stats, err := f.svc.AchievementStats(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Unlocked)
	assert.Equal(t, 17, stats.Total)
	assert.Equal(t, 75, stats.TotalXP)
	assert.Equal(t, 35, stats.TotalCoins)
	require.Len(t, stats.Recent, 2)
	assert.Equal(t, "first_water", stats.Recent[0])
}

func TestChallenges(t *testing.T) {
	f := newProgressionFixture(t)
	f.careLog.actionCounts[domain.CareActionPlant] = 5
	f.careLog.actionCounts[domain.CareActionWater] = 1
	f.careLog.sinceCounts[weekStart(f.clock.Now())] = 10
	f.careLog.sinceCounts[dayStart(f.clock.Now())] = 3

	list, err := f.svc.Challenges(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, list.Active, 4)

	byID := make(map[string]domain.Challenge)
	for _, c := range list.All() {
		byID[c.ID] = c
	}

	assert.True(t, byID["plant_growth"].Completed)
	assert.Equal(t, 2, byID["plant_growth"].Current)
	assert.False(t, byID["water_conservation"].Completed)
	assert.Equal(t, 1, byID["water_conservation"].Current)
	assert.Equal(t, 10, byID["weekly_activity"].Current)
	assert.False(t, byID["weekly_activity"].Completed)
	assert.True(t, byID["daily_activity"].Completed)
}

func TestCompleteChallenge(t *testing.T) {
	f := newProgressionFixture(t)
	f.careLog.actionCounts[domain.CareActionPlant] = 2

	result, err := f.svc.CompleteChallenge(context.Background(), "user-1", "plant_growth")
	require.NoError(t, err)
	assert.Equal(t, 100, result.XPEarned)
	assert.Equal(t, 150, result.Coins)
	assert.Equal(t, 100, f.users.user.XP)
}

func TestCompleteChallengeNotCompleted(t *testing.T) {
	f := newProgressionFixture(t)

	_, err := f.svc.CompleteChallenge(context.Background(), "user-1", "plant_growth")
	assert.ErrorIs(t, err, domain.ErrChallengeNotCompleted)

	_, err = f.svc.CompleteChallenge(context.Background(), "user-1", "no_such_challenge")
	assert.ErrorIs(t, err, domain.ErrChallengeNotFound)
}

func TestProgressReport(t *testing.T) {
	f := newProgressionFixture(t)
	f.users.user.XP = 250
	f.progress.progress = domain.UserProgress{ScenariosCompleted: 4, SuccessfulHarvests: 2}
	f.careLog.dates = []time.Time{
		day(2026, 3, 11), day(2026, 3, 10),
	}

	report, err := f.svc.Progress(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, report.Level)
	assert.Equal(t, 250, report.XP)
	assert.Equal(t, 50, report.XPToNextLevel)
	assert.Equal(t, 4, report.ScenariosCompleted)
	assert.Equal(t, 2, report.SuccessfulHarvests)
	assert.Equal(t, 2, report.Streak.CurrentStreak)
}

func TestLeaderboard(t *testing.T) {
	f := newProgressionFixture(t)
	f.users.top = []domain.User{
		{Username: "asha", XP: 520, Coins: 900},
		{Username: "ravi", XP: 130, Coins: 40},
	}

	entries, err := f.svc.Leaderboard(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "asha", entries[0].Username)
	assert.Equal(t, 6, entries[0].Level)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, 2, entries[1].Level)
}
