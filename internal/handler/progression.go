package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fasalseva/FasalSeva_Go/internal/domain"
	"github.com/fasalseva/FasalSeva_Go/internal/logger"
	"github.com/fasalseva/FasalSeva_Go/internal/metrics"
	"github.com/fasalseva/FasalSeva_Go/internal/progression"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

// AchievementCheckResponse lists achievements unlocked by a check call
type AchievementCheckResponse struct {
	Message     string               `json:"message"`
	NewUnlocks  []domain.Achievement `json:"new_unlocks"`
	UnlockCount int                  `json:"unlock_count"`
}

// LeaderboardResponse wraps the ranked entries
type LeaderboardResponse struct {
	Leaderboard []domain.LeaderboardEntry `json:"leaderboard"`
	Count       int                       `json:"count"`
}

// HandleAchievements returns the achievement catalog with unlock state
// @Summary List achievements
// @Tags progression
// @Produce json
// @Security BearerAuth
// @Success 200 {object} progression.AchievementList
// @Router /api/v1/achievements [get]
func HandleAchievements(progressionService progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		result, err := progressionService.Achievements(r.Context(), user.ID)
		if err != nil {
			respondServiceError(w, r, "List achievements", err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// HandleAchievementStats summarizes the user's unlocks
// @Summary Achievement stats
// @Tags progression
// @Produce json
// @Security BearerAuth
// @Success 200 {object} progression.AchievementStats
// @Router /api/v1/achievements/stats [get]
func HandleAchievementStats(progressionService progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		result, err := progressionService.AchievementStats(r.Context(), user.ID)
		if err != nil {
			respondServiceError(w, r, "Achievement stats", err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// HandleCheckAchievements unlocks every newly earned achievement
// @Summary Check achievements
// @Tags progression
// @Produce json
// @Security BearerAuth
// @Success 200 {object} AchievementCheckResponse
// @Router /api/v1/achievements/check [post]
func HandleCheckAchievements(progressionService progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		unlocked, err := progressionService.CheckAchievements(r.Context(), user.ID)
		if err != nil {
			respondServiceError(w, r, "Check achievements", err)
			return
		}

		message := "No new achievements"
		if len(unlocked) > 0 {
			message = "New achievements unlocked!"
			metrics.AchievementsUnlocked.Add(float64(len(unlocked)))
			log.Info("Achievements unlocked", "user_id", user.ID, "count", len(unlocked))
		}

		respondJSON(w, http.StatusOK, AchievementCheckResponse{
			Message:     message,
			NewUnlocks:  unlocked,
			UnlockCount: len(unlocked),
		})
	}
}

// HandleChallenges derives the current challenge state
// @Summary List challenges
// @Tags progression
// @Produce json
// @Security BearerAuth
// @Success 200 {object} progression.ChallengeList
// @Router /api/v1/challenges [get]
func HandleChallenges(progressionService progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		result, err := progressionService.Challenges(r.Context(), user.ID)
		if err != nil {
			respondServiceError(w, r, "List challenges", err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// HandleCompleteChallenge claims a completed challenge's rewards
// @Summary Complete a challenge
// @Tags progression
// @Produce json
// @Security BearerAuth
// @Param id path string true "Challenge ID"
// @Success 200 {object} progression.ChallengeCompletion
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/challenges/{id}/complete [post]
func HandleCompleteChallenge(progressionService progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		challengeID := chi.URLParam(r, "id")

		result, err := progressionService.CompleteChallenge(r.Context(), user.ID, challengeID)
		if err != nil {
			respondServiceError(w, r, "Complete challenge", err)
			return
		}

		metrics.CoinsEarned.Add(float64(result.Challenge.RewardCoins))

		log.Info("Challenge completed",
			"user_id", user.ID,
			"challenge_id", challengeID,
			"xp", result.XPEarned)
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleProgress returns the level, balances and counters
// @Summary User progress
// @Tags progression
// @Produce json
// @Security BearerAuth
// @Success 200 {object} progression.ProgressReport
// @Router /api/v1/progress [get]
func HandleProgress(progressionService progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		result, err := progressionService.Progress(r.Context(), user.ID)
		if err != nil {
			respondServiceError(w, r, "User progress", err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// HandleLeaderboard ranks users by XP
// @Summary Leaderboard
// @Tags progression
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max entries (default 10)"
// @Success 200 {object} LeaderboardResponse
// @Router /api/v1/leaderboard [get]
func HandleLeaderboard(progressionService progression.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := strconv.Atoi(GetOptionalQueryParam(r, "limit", strconv.Itoa(defaultLeaderboardLimit)))
		if err != nil || limit < 1 {
			respondError(w, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		if limit > maxLeaderboardLimit {
			limit = maxLeaderboardLimit
		}

		entries, err := progressionService.Leaderboard(r.Context(), limit)
		if err != nil {
			respondServiceError(w, r, "Leaderboard", err)
			return
		}

		respondJSON(w, http.StatusOK, LeaderboardResponse{Leaderboard: entries, Count: len(entries)})
	}
}
