package handler

import (
	"errors"
	"net/http"

	"github.com/fasalseva/FasalSeva_Go/internal/domain"
	"github.com/fasalseva/FasalSeva_Go/internal/logger"
)

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidQueryParam = "Invalid %s query parameter"

	// Path parameter error messages
	ErrMsgInvalidCropID = "Invalid crop id"

	// Generic messages
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"
)

// User-facing error messages for service errors
// These messages are derived from domain errors and provide helpful guidance to users
const (
	// Account messages
	ErrMsgUserNotFoundError  = "User not found"
	ErrMsgEmailTakenError    = "An account with that email already exists"
	ErrMsgUsernameTakenError = "That username is already taken"
	ErrMsgBadCredentialsErr  = "Invalid username/email or password"
	ErrMsgBonusClaimedError  = "Welcome bonus has already been claimed"
	ErrMsgTokenExpiredError  = "Session expired. Please log in again"
	ErrMsgTokenInvalidError  = "Invalid authentication token"

	// Economy messages
	ErrMsgNotEnoughCoinsError = "Not enough coins"

	// Farm messages
	ErrMsgCropNotFoundError     = "Crop not found"
	ErrMsgPositionOccupiedError = "That grid position is already planted"
	ErrMsgCropNotReadyError     = "Crop is not ready for harvest yet"
	ErrMsgInvalidQualityError   = "Invalid water quality. Valid options: basic, premium, expert"
	ErrMsgInvalidFertilizerErr  = "Invalid fertilizer type. Valid options: basic, organic, premium"
	ErrMsgInvalidHoursError     = "Hours must be between 1 and 48"
	ErrMsgFarmNotFoundError     = "No farm found. Create a farm first"

	// Scenario messages
	ErrMsgScenarioNotFoundError = "Scenario not found"
	ErrMsgScenarioInactiveError = "Scenario is no longer active"
	ErrMsgInvalidActionError    = "That action does not apply to this scenario"

	// Challenge messages
	ErrMsgChallengeNotFoundErr   = "Challenge not found"
	ErrMsgChallengeIncompleteErr = "Challenge is not completed yet"

	// Shop messages
	ErrMsgShopItemNotFoundError = "Shop item not found"

	// Education messages
	ErrMsgContentNotFoundError = "Educational content not found"

	// External service messages
	ErrMsgWeatherUnavailableErr = "Weather data is temporarily unavailable. Please try again later"
	ErrMsgModelUnavailableError = "Advisor model is not available"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
// This function converts internal service errors to appropriate HTTP status codes and messages
// that users can understand and act upon.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	// Check for specific domain errors
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, ErrMsgEmailTakenError
	case errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusConflict, ErrMsgUsernameTakenError
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrMsgBadCredentialsErr
	case errors.Is(err, domain.ErrBonusClaimed):
		return http.StatusBadRequest, ErrMsgBonusClaimedError
	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, ErrMsgTokenExpiredError
	case errors.Is(err, domain.ErrTokenInvalid):
		return http.StatusUnauthorized, ErrMsgTokenInvalidError
	case errors.Is(err, domain.ErrInsufficientCoins):
		return http.StatusBadRequest, ErrMsgNotEnoughCoinsError
	case errors.Is(err, domain.ErrCropNotFound):
		return http.StatusNotFound, ErrMsgCropNotFoundError
	case errors.Is(err, domain.ErrPositionOccupied):
		return http.StatusConflict, ErrMsgPositionOccupiedError
	case errors.Is(err, domain.ErrCropNotReady):
		return http.StatusBadRequest, ErrMsgCropNotReadyError
	case errors.Is(err, domain.ErrInvalidQuality):
		return http.StatusBadRequest, ErrMsgInvalidQualityError
	case errors.Is(err, domain.ErrInvalidFertilizer):
		return http.StatusBadRequest, ErrMsgInvalidFertilizerErr
	case errors.Is(err, domain.ErrInvalidHours):
		return http.StatusBadRequest, ErrMsgInvalidHoursError
	case errors.Is(err, domain.ErrFarmNotFound):
		return http.StatusNotFound, ErrMsgFarmNotFoundError
	case errors.Is(err, domain.ErrScenarioNotFound):
		return http.StatusNotFound, ErrMsgScenarioNotFoundError
	case errors.Is(err, domain.ErrScenarioInactive):
		return http.StatusBadRequest, ErrMsgScenarioInactiveError
	case errors.Is(err, domain.ErrInvalidAction):
		return http.StatusBadRequest, ErrMsgInvalidActionError
	case errors.Is(err, domain.ErrChallengeNotFound):
		return http.StatusNotFound, ErrMsgChallengeNotFoundErr
	case errors.Is(err, domain.ErrChallengeNotCompleted):
		return http.StatusBadRequest, ErrMsgChallengeIncompleteErr
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgShopItemNotFoundError
	case errors.Is(err, domain.ErrContentNotFound):
		return http.StatusNotFound, ErrMsgContentNotFoundError
	case errors.Is(err, domain.ErrWeatherUnavailable):
		return http.StatusBadGateway, ErrMsgWeatherUnavailableErr
	case errors.Is(err, domain.ErrModelNotAvailable):
		return http.StatusServiceUnavailable, ErrMsgModelUnavailableError
	case errors.Is(err, domain.ErrDatabaseError):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError logs a failed service call and writes the mapped
// HTTP status and user-facing message.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	log := logger.FromContext(r.Context())

	status, message := mapServiceErrorToUserMessage(err)
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Warn(opName+" rejected", "error", err)
	}

	respondError(w, status, message)
}
