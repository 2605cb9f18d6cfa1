package progression

import (
	"fmt"
	"time"

	"github.com/fasalseva/FasalSeva_Go/internal/domain"
)

// Challenge targets and rewards
const (
	plantChallengeTarget   = 2
	waterChallengeTarget   = 3
	harvestChallengeTarget = 5
	streakChallengeTarget  = 7
	weeklyChallengeTarget  = 15
	dailyChallengeTarget   = 3
)

// ChallengeList groups the derived challenges for one user
type ChallengeList struct {
	Active []domain.Challenge `json:"active_challenges"`
	Weekly []domain.Challenge `json:"weekly_challenges"`
	Daily  []domain.Challenge `json:"daily_challenges"`
	Streak domain.StreakInfo  `json:"streak"`
}

// All returns every challenge in one slice
func (l *ChallengeList) All() []domain.Challenge {
	out := make([]domain.Challenge, 0, len(l.Active)+len(l.Weekly)+len(l.Daily))
	out = append(out, l.Active...)
	out = append(out, l.Weekly...)
	out = append(out, l.Daily...)
	return out
}

func activeChallenges(plants, waters, harvests, streak int) []domain.Challenge {
	return []domain.Challenge{
		challenge("plant_growth", domain.ChallengeKindActive, "Plant Growth Master",
			fmt.Sprintf("Plant %d crops to unlock farming expertise", plantChallengeTarget),
			plantChallengeTarget, plants, 100, 50),
		challenge("water_conservation", domain.ChallengeKindActive, "Water Conservation Expert",
			fmt.Sprintf("Water plants %d times efficiently", waterChallengeTarget),
			waterChallengeTarget, waters, 75, 25),
		challenge("harvest_success", domain.ChallengeKindActive, "Harvest Master",
			fmt.Sprintf("Successfully harvest %d crops", harvestChallengeTarget),
			harvestChallengeTarget, harvests, 1000, 200),
		challenge("activity_streak", domain.ChallengeKindActive, "Consistency Champion",
			fmt.Sprintf("Maintain %d day activity streak", streakChallengeTarget),
			streakChallengeTarget, streak, 800, 300),
	}
}

func weeklyChallenge(count int) domain.Challenge {
	return challenge("weekly_activity", domain.ChallengeKindWeekly, "Weekly Activity Goal",
		fmt.Sprintf("Complete %d farming activities this week", weeklyChallengeTarget),
		weeklyChallengeTarget, count, 300, 75)
}

func dailyChallenge(count int) domain.Challenge {
	return challenge("daily_activity", domain.ChallengeKindDaily, "Daily Farm Check",
		fmt.Sprintf("Complete %d farming activities today", dailyChallengeTarget),
		dailyChallengeTarget, count, 100, 25)
}

func challenge(id, kind, title, description string, target, current, xp, coins int) domain.Challenge {
	if current > target {
		current = target
	}
	return domain.Challenge{
		ID:          id,
		Kind:        kind,
		Title:       title,
		Description: description,
		Target:      target,
		Current:     current,
		Completed:   current >= target,
		RewardXP:    xp,
		RewardCoins: coins,
	}
}

// weekStart returns midnight UTC of the ISO week's Monday
func weekStart(now time.Time) time.Time {
	now = now.UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(midnight.Weekday()) + 6) % 7
	return midnight.AddDate(0, 0, -offset)
}

// dayStart returns midnight UTC of the given day
func dayStart(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
