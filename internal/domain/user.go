package domain

import "time"

// User represents a registered player
type User struct {
	ID                  string     `json:"id"`
	Email               string     `json:"email"`
	Username            string     `json:"username"`
	PasswordHash        string     `json:"-"`
	FullName            string     `json:"full_name,omitempty"`
	Language            string     `json:"language"`
	Coins               int        `json:"coins"`
	XP                  int        `json:"xp"`
	WelcomeBonusClaimed bool       `json:"welcome_bonus_claimed"`
	CreatedAt           time.Time  `json:"created_at"`
	LastLogin           *time.Time `json:"last_login,omitempty"`
}

// UserProgress tracks counters that cannot be derived from the care log
type UserProgress struct {
	UserID             string    `json:"user_id"`
	ScenariosCompleted int       `json:"scenarios_completed"`
	SuccessfulHarvests int       `json:"successful_harvests"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// LeaderboardEntry is one row of the XP leaderboard
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	Username string `json:"username"`
	XP       int    `json:"xp"`
	Level    int    `json:"level"`
	Coins    int    `json:"coins"`
}
