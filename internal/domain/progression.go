package domain

import "time"

// Achievement condition types
const (
	ConditionAction       = "action_count"
	ConditionQuality      = "quality_action_count"
	ConditionStreak       = "streak_days"
	ConditionTotalCoins   = "total_coins"
	ConditionTotalXP      = "total_xp"
	ConditionLevel        = "level"
	ConditionPremiumUsage = "premium_usage"
	ConditionEfficiency   = "efficiency_sessions"
)

// AchievementCondition describes when an achievement unlocks
type AchievementCondition struct {
	Type    string  `json:"type"`
	Action  string  `json:"action,omitempty"`
	Quality string  `json:"quality,omitempty"`
	Target  float64 `json:"target"`
}

// Achievement is a catalog entry
type Achievement struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Icon        string               `json:"icon"`
	Category    string               `json:"category"`
	Condition   AchievementCondition `json:"condition"`
	RewardXP    int                  `json:"reward_xp"`
	RewardCoins int                  `json:"reward_coins"`
}

// AchievementStatus is a catalog entry with per-user progress
type AchievementStatus struct {
	Achievement
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
	Progress   float64    `json:"progress"`
}

// Challenge kinds
const (
	ChallengeKindActive = "active"
	ChallengeKindWeekly = "weekly"
	ChallengeKindDaily  = "daily"
)

// Challenge is a derived goal with current progress
type Challenge struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Target      int    `json:"target"`
	Current     int    `json:"current"`
	Completed   bool   `json:"completed"`
	RewardXP    int    `json:"reward_xp"`
	RewardCoins int    `json:"reward_coins"`
}

// StreakInfo summarises consecutive-day activity
type StreakInfo struct {
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
	ActiveDays    int `json:"active_days"`
}
