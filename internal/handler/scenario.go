package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fasalseva/FasalSeva_Go/internal/domain"
	"github.com/fasalseva/FasalSeva_Go/internal/logger"
	"github.com/fasalseva/FasalSeva_Go/internal/metrics"
	"github.com/fasalseva/FasalSeva_Go/internal/scenario"
)

// CompleteScenarioRequest is the request body for attempting a scenario action
type CompleteScenarioRequest struct {
	ActionID string `json:"action_id" validate:"required"`
}

// ScenarioListResponse wraps generated or active scenarios
type ScenarioListResponse struct {
	Scenarios []domain.Scenario `json:"scenarios"`
	Count     int               `json:"count"`
}

// HandleGenerateScenarios evaluates current weather against a crop
// @Summary Generate scenarios for a crop
// @Tags scenarios
// @Produce json
// @Security BearerAuth
// @Param cropID path int true "Crop ID"
// @Success 200 {object} ScenarioListResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/scenarios/generate/{cropID} [post]
func HandleGenerateScenarios(scenarioService scenario.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		cropIDRaw := chi.URLParam(r, "cropID")
		cropID, err := strconv.Atoi(cropIDRaw)
		if err != nil || cropID < 1 {
			log.Warn("Invalid crop id", "value", cropIDRaw)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidCropID)
			return
		}

		scenarios, err := scenarioService.Generate(r.Context(), user.ID, cropID)
		if err != nil {
			respondServiceError(w, r, "Generate scenarios", err)
			return
		}

		for _, s := range scenarios {
			metrics.ScenariosGenerated.WithLabelValues(s.Type).Inc()
		}
		if len(scenarios) > 0 {
			log.Info("Scenarios generated", "user_id", user.ID, "crop_id", cropID, "count", len(scenarios))
		}

		respondJSON(w, http.StatusOK, ScenarioListResponse{Scenarios: scenarios, Count: len(scenarios)})
	}
}

// HandleActiveScenarios returns the user's open scenarios
// @Summary Active scenarios
// @Tags scenarios
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ScenarioListResponse
// @Router /api/v1/scenarios/active [get]
func HandleActiveScenarios(scenarioService scenario.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		scenarios, err := scenarioService.Active(r.Context(), user.ID)
		if err != nil {
			respondServiceError(w, r, "Active scenarios", err)
			return
		}

		respondJSON(w, http.StatusOK, ScenarioListResponse{Scenarios: scenarios, Count: len(scenarios)})
	}
}

// HandleCompleteScenario attempts a scenario action
// @Summary Complete a scenario
// @Tags scenarios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Scenario ID"
// @Param request body CompleteScenarioRequest true "Action payload"
// @Success 200 {object} domain.ScenarioResolution
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/scenarios/{id}/complete [post]
func HandleCompleteScenario(scenarioService scenario.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		scenarioID := chi.URLParam(r, "id")

		var req CompleteScenarioRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Complete scenario"); err != nil {
			return
		}

		result, err := scenarioService.Complete(r.Context(), user.ID, scenarioID, req.ActionID)
		if err != nil {
			respondServiceError(w, r, "Complete scenario", err)
			return
		}

		outcome := "failure"
		if result.Success {
			outcome = "success"
			metrics.CoinsEarned.Add(float64(result.Rewards.Coins))
		}
		metrics.ScenariosResolved.WithLabelValues(outcome).Inc()
		metrics.CoinsSpent.Add(float64(result.CostPaid))

		log.Info("Scenario action attempted",
			"user_id", user.ID,
			"scenario_id", scenarioID,
			"action_id", req.ActionID,
			"success", result.Success)
		respondJSON(w, http.StatusOK, result)
	}
}
