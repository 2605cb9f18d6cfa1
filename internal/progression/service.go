package progression

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/fasalseva/FasalSeva_Go/internal/clock"
	"github.com/fasalseva/FasalSeva_Go/internal/domain"
	"github.com/fasalseva/FasalSeva_Go/internal/logger"
	"github.com/fasalseva/FasalSeva_Go/internal/repository"
	"github.com/fasalseva/FasalSeva_Go/internal/utils"
)

// Efficiency threshold for "perfect" care sessions
const perfectSessionEfficiency = 95.0

// Quality levels that count as premium usage
var premiumQualities = []string{"premium", "expert"}

// AchievementList is the catalog with per-user unlock state
type AchievementList struct {
	Achievements []domain.AchievementStatus `json:"achievements"`
	Unlocked     int                        `json:"unlocked_count"`
	Total        int                        `json:"total_count"`
	Completion   float64                    `json:"completion_percentage"`
}

// AchievementStats summarizes unlock totals and rewards earned
type AchievementStats struct {
	Unlocked   int      `json:"unlocked_count"`
	Total      int      `json:"total_count"`
	Completion float64  `json:"completion_percentage"`
	Recent     []string `json:"recent_unlocks"`
	TotalXP    int      `json:"total_achievement_xp"`
	TotalCoins int      `json:"total_achievement_coins"`
}

// ChallengeCompletion is the result of claiming a completed challenge
type ChallengeCompletion struct {
	Challenge domain.Challenge `json:"challenge"`
	XPEarned  int              `json:"xp_earned"`
	Coins     int              `json:"coins"`
}

// ProgressReport is the per-user progression snapshot
type ProgressReport struct {
	Level              int               `json:"level"`
	XP                 int               `json:"xp"`
	XPToNextLevel      int               `json:"xp_to_next_level"`
	Coins              int               `json:"coins"`
	ScenariosCompleted int               `json:"scenarios_completed"`
	SuccessfulHarvests int               `json:"successful_harvests"`
	Streak             domain.StreakInfo `json:"streak"`
}

// Service defines the progression business logic
type Service interface {
	// Achievements returns the catalog with unlock state and progress
	Achievements(ctx context.Context, userID string) (*AchievementList, error)
	// AchievementStats summarizes the user's unlocks
	AchievementStats(ctx context.Context, userID string) (*AchievementStats, error)
	// CheckAchievements unlocks every newly earned achievement and credits its rewards
	CheckAchievements(ctx context.Context, userID string) ([]domain.Achievement, error)
	// Challenges derives the current challenge state
	Challenges(ctx context.Context, userID string) (*ChallengeList, error)
	// CompleteChallenge re-derives a challenge and claims its rewards
	CompleteChallenge(ctx context.Context, userID, challengeID string) (*ChallengeCompletion, error)
	// Progress returns the level, balances and counters
	Progress(ctx context.Context, userID string) (*ProgressReport, error)
	// Leaderboard ranks users by XP
	Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}

type service struct {
	userRepo        repository.User
	careLogRepo     repository.CareLog
	achievementRepo repository.Achievement
	progressRepo    repository.Progress
	clock           clock.Clock
}

// NewService creates a new progression service
func NewService(
	userRepo repository.User,
	careLogRepo repository.CareLog,
	achievementRepo repository.Achievement,
	progressRepo repository.Progress,
	clk clock.Clock,
) Service {
	return &service{
		userRepo:        userRepo,
		careLogRepo:     careLogRepo,
		achievementRepo: achievementRepo,
		progressRepo:    progressRepo,
		clock:           clk,
	}
}

// Achievements returns the catalog with unlock state and progress
func (s *service) Achievements(ctx context.Context, userID string) (*AchievementList, error) {
	unlocked, err := s.achievementRepo.GetUnlocked(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get unlocks: %w", err)
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	streak, err := s.streaks(ctx, userID)
	if err != nil {
		return nil, err
	}

	list := &AchievementList{Total: len(achievementCatalog)}
	for _, def := range achievementCatalog {
		status := domain.AchievementStatus{Achievement: def}
		if at, ok := unlocked[def.ID]; ok {
			unlockedAt := at
			status.Unlocked = true
			status.UnlockedAt = &unlockedAt
			status.Progress = 100
			list.Unlocked++
		} else {
			current, err := s.conditionValue(ctx, userID, def.Condition, user, streak)
			if err != nil {
				return nil, err
			}
			status.Progress = progressPercent(current, def.Condition.Target)
		}
		list.Achievements = append(list.Achievements, status)
	}
	list.Completion = utils.Round2(float64(list.Unlocked) / float64(list.Total) * 100)
	return list, nil
}

// AchievementStats summarizes the user's unlocks
func (s *service) AchievementStats(ctx context.Context, userID string) (*AchievementStats, error) {
	unlocked, err := s.achievementRepo.GetUnlocked(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get unlocks: %w", err)
	}

	stats := &AchievementStats{
		Unlocked: len(unlocked),
		Total:    len(achievementCatalog),
	}
	stats.Completion = utils.Round2(float64(stats.Unlocked) / float64(stats.Total) * 100)

	recent := make([]string, 0, len(unlocked))
	for _, def := range achievementCatalog {
		if _, ok := unlocked[def.ID]; !ok {
			continue
		}
		stats.TotalXP += def.RewardXP
		stats.TotalCoins += def.RewardCoins
		recent = append(recent, def.ID)
	}
	sort.Slice(recent, func(i, j int) bool {
		return unlocked[recent[i]].After(unlocked[recent[j]])
	})
	if len(recent) > 3 {
		recent = recent[:3]
	}
	stats.Recent = recent
	return stats, nil
}

// CheckAchievements unlocks every newly earned achievement and credits its rewards
func (s *service) CheckAchievements(ctx context.Context, userID string) ([]domain.Achievement, error) {
	log := logger.FromContext(ctx)

	unlocked, err := s.achievementRepo.GetUnlocked(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get unlocks: %w", err)
	}
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	streak, err := s.streaks(ctx, userID)
	if err != nil {
		return nil, err
	}

	var newlyUnlocked []domain.Achievement
	for _, def := range achievementCatalog {
		if _, ok := unlocked[def.ID]; ok {
			continue
		}
		current, err := s.conditionValue(ctx, userID, def.Condition, user, streak)
		if err != nil {
			return nil, err
		}
		if current < def.Condition.Target {
			continue
		}

		inserted, err := s.achievementRepo.Unlock(ctx, userID, def.ID, s.clock.Now())
		if err != nil {
			return nil, fmt.Errorf("failed to unlock achievement: %w", err)
		}
		if !inserted {
			// Lost a race with a concurrent check, rewards were already paid
			continue
		}
		user, err = s.userRepo.AdjustBalances(ctx, userID, def.RewardCoins, def.RewardXP)
		if err != nil {
			return nil, fmt.Errorf("failed to credit achievement rewards: %w", err)
		}
		log.Info("Achievement unlocked", "userID", userID, "achievementID", def.ID)
		newlyUnlocked = append(newlyUnlocked, def)
	}
	return newlyUnlocked, nil
}

// Challenges derives the current challenge state
func (s *service) Challenges(ctx context.Context, userID string) (*ChallengeList, error) {
	plants, err := s.careLogRepo.CountActions(ctx, userID, domain.CareActionPlant)
	if err != nil {
		return nil, err
	}
	waters, err := s.careLogRepo.CountActions(ctx, userID, domain.CareActionWater)
	if err != nil {
		return nil, err
	}
	harvests, err := s.careLogRepo.CountActions(ctx, userID, domain.CareActionHarvest)
	if err != nil {
		return nil, err
	}

	streak, err := s.streaks(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	weekly, err := s.careLogRepo.CountActionsSince(ctx, userID, weekStart(now))
	if err != nil {
		return nil, err
	}
	daily, err := s.careLogRepo.CountActionsSince(ctx, userID, dayStart(now))
	if err != nil {
		return nil, err
	}

	return &ChallengeList{
		Active: activeChallenges(plants, waters, harvests, streak.CurrentStreak),
		Weekly: []domain.Challenge{weeklyChallenge(weekly)},
		Daily:  []domain.Challenge{dailyChallenge(daily)},
		Streak: streak,
	}, nil
}

// CompleteChallenge re-derives a challenge and claims its rewards
func (s *service) CompleteChallenge(ctx context.Context, userID, challengeID string) (*ChallengeCompletion, error) {
	list, err := s.Challenges(ctx, userID)
	if err != nil {
		return nil, err
	}

	var found *domain.Challenge
	for _, c := range list.All() {
		if c.ID == challengeID {
			challenge := c
			found = &challenge
			break
		}
	}
	if found == nil {
		return nil, domain.ErrChallengeNotFound
	}
	if !found.Completed {
		return nil, domain.ErrChallengeNotCompleted
	}

	user, err := s.userRepo.AdjustBalances(ctx, userID, found.RewardCoins, found.RewardXP)
	if err != nil {
		return nil, fmt.Errorf("failed to credit challenge rewards: %w", err)
	}

	return &ChallengeCompletion{
		Challenge: *found,
		XPEarned:  found.RewardXP,
		Coins:     user.Coins,
	}, nil
}

// Progress returns the level, balances and counters
func (s *service) Progress(ctx context.Context, userID string) (*ProgressReport, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	progress, err := s.progressRepo.GetProgress(ctx, userID)
	if err != nil {
		return nil, err
	}
	streak, err := s.streaks(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ProgressReport{
		Level:              Level(user.XP),
		XP:                 user.XP,
		XPToNextLevel:      XPToNextLevel(user.XP),
		Coins:              user.Coins,
		ScenariosCompleted: progress.ScenariosCompleted,
		SuccessfulHarvests: progress.SuccessfulHarvests,
		Streak:             streak,
	}, nil
}

// Leaderboard ranks users by XP
func (s *service) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	users, err := s.userRepo.GetTopUsersByXP(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	entries := make([]domain.LeaderboardEntry, 0, len(users))
	for i, user := range users {
		entries = append(entries, domain.LeaderboardEntry{
			Rank:     i + 1,
			Username: user.Username,
			XP:       user.XP,
			Level:    Level(user.XP),
			Coins:    user.Coins,
		})
	}
	return entries, nil
}

func (s *service) streaks(ctx context.Context, userID string) (domain.StreakInfo, error) {
	dates, err := s.careLogRepo.ActivityDates(ctx, userID)
	if err != nil {
		return domain.StreakInfo{}, fmt.Errorf("failed to get activity dates: %w", err)
	}
	return ComputeStreaks(dates, s.clock.Now().UTC()), nil
}

// conditionValue computes the current value for an unlock condition
func (s *service) conditionValue(ctx context.Context, userID string, cond domain.AchievementCondition, user *domain.User, streak domain.StreakInfo) (float64, error) {
	switch cond.Type {
	case domain.ConditionAction:
		count, err := s.careLogRepo.CountActions(ctx, userID, cond.Action)
		return float64(count), err
	case domain.ConditionQuality:
		count, err := s.careLogRepo.CountQualityActions(ctx, userID, cond.Action, []string{cond.Quality})
		return float64(count), err
	case domain.ConditionStreak:
		return float64(streak.CurrentStreak), nil
	case domain.ConditionTotalCoins:
		return float64(user.Coins), nil
	case domain.ConditionTotalXP:
		return float64(user.XP), nil
	case domain.ConditionLevel:
		return float64(Level(user.XP)), nil
	case domain.ConditionPremiumUsage:
		count, err := s.careLogRepo.CountQualityActions(ctx, userID, "", premiumQualities)
		return float64(count), err
	case domain.ConditionEfficiency:
		count, err := s.careLogRepo.CountEfficientSessions(ctx, userID, perfectSessionEfficiency)
		return float64(count), err
	default:
		return 0, nil
	}
}

func progressPercent(current, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return math.Min(100, utils.Round2(current/target*100))
}
