package handler

import (
	"net/http"
	"strconv"

	"github.com/fasalseva/FasalSeva_Go/internal/education"
	"github.com/fasalseva/FasalSeva_Go/internal/logger"
)

// CompleteContentRequest is the request body for finishing a content unit
type CompleteContentRequest struct {
	ContentID int `json:"content_id" validate:"required,gte=1"`
	XPEarned  int `json:"xp_earned" validate:"gte=0,lte=500"`
}

// HandleGenerateContent returns personalized educational content
// @Summary Generate educational content
// @Tags education
// @Produce json
// @Security BearerAuth
// @Param force query bool false "Force regeneration"
// @Success 200 {object} education.GenerateResult
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/educational/generate [post]
func HandleGenerateContent(educationService education.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		force, _ := strconv.ParseBool(GetOptionalQueryParam(r, "force", "false"))

		result, err := educationService.Generate(r.Context(), user.ID, force)
		if err != nil {
			respondServiceError(w, r, "Generate content", err)
			return
		}

		if !result.Cached {
			log.Info("Educational content generated", "user_id", user.ID, "plants", result.PlantCount)
		}
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleContentUpdates checks whether a generate call would produce new content
// @Summary Check for content updates
// @Tags education
// @Produce json
// @Security BearerAuth
// @Success 200 {object} education.UpdateCheck
// @Router /api/v1/educational/updates [get]
func HandleContentUpdates(educationService education.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		result, err := educationService.Updates(r.Context(), user.ID)
		if err != nil {
			respondServiceError(w, r, "Content updates", err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// HandleCompleteContent stamps a content unit done and credits the XP
// @Summary Complete educational content
// @Tags education
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CompleteContentRequest true "Completion payload"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/educational/complete [post]
func HandleCompleteContent(educationService education.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req CompleteContentRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Complete content"); err != nil {
			return
		}

		if err := educationService.Complete(r.Context(), user.ID, req.ContentID, req.XPEarned); err != nil {
			respondServiceError(w, r, "Complete content", err)
			return
		}

		log.Info("Educational content completed",
			"user_id", user.ID,
			"content_id", req.ContentID,
			"xp", req.XPEarned)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: "Content completed!"})
	}
}
