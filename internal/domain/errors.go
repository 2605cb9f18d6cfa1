package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User errors
	ErrMsgUserNotFound       = "user not found"
	ErrMsgEmailTaken         = "email already registered"
	ErrMsgUsernameTaken      = "username already taken"
	ErrMsgInvalidCredentials = "invalid credentials"
	ErrMsgBonusClaimed       = "welcome bonus already claimed"

	// Token errors
	ErrMsgTokenInvalid = "invalid token"
	ErrMsgTokenExpired = "token expired"

	// Economy errors
	ErrMsgInsufficientCoins = "insufficient coins"

	// Crop errors
	ErrMsgCropNotFound      = "crop not found"
	ErrMsgPositionOccupied  = "position already occupied"
	ErrMsgCropNotReady      = "crop is not ready for harvest"
	ErrMsgInvalidQuality    = "invalid water quality"
	ErrMsgInvalidFertilizer = "invalid fertilizer type"
	ErrMsgInvalidHours      = "hours must be between 1 and 48"

	// Farm errors
	ErrMsgFarmNotFound = "farm not found"

	// Scenario errors
	ErrMsgScenarioNotFound = "scenario not found"
	ErrMsgScenarioInactive = "scenario is no longer active"
	ErrMsgInvalidAction    = "invalid scenario action"

	// Challenge errors
	ErrMsgChallengeNotFound     = "challenge not found"
	ErrMsgChallengeNotCompleted = "challenge is not completed yet"

	// Shop errors
	ErrMsgItemNotFound = "shop item not found"

	// Education errors
	ErrMsgContentNotFound = "educational content not found"

	// External service errors
	ErrMsgWeatherUnavailable = "weather data unavailable"
	ErrMsgModelNotAvailable  = "model not available"

	// Database/System errors
	ErrMsgDatabaseError = "database error"
	ErrMsgTxClosed      = "tx is closed"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// User errors
	ErrUserNotFound       = errors.New(ErrMsgUserNotFound)
	ErrEmailTaken         = errors.New(ErrMsgEmailTaken)
	ErrUsernameTaken      = errors.New(ErrMsgUsernameTaken)
	ErrInvalidCredentials = errors.New(ErrMsgInvalidCredentials)
	ErrBonusClaimed       = errors.New(ErrMsgBonusClaimed)

	// Token errors
	ErrTokenInvalid = errors.New(ErrMsgTokenInvalid)
	ErrTokenExpired = errors.New(ErrMsgTokenExpired)

	// Economy errors
	ErrInsufficientCoins = errors.New(ErrMsgInsufficientCoins)

	// Crop errors
	ErrCropNotFound      = errors.New(ErrMsgCropNotFound)
	ErrPositionOccupied  = errors.New(ErrMsgPositionOccupied)
	ErrCropNotReady      = errors.New(ErrMsgCropNotReady)
	ErrInvalidQuality    = errors.New(ErrMsgInvalidQuality)
	ErrInvalidFertilizer = errors.New(ErrMsgInvalidFertilizer)
	ErrInvalidHours      = errors.New(ErrMsgInvalidHours)

	// Farm errors
	ErrFarmNotFound = errors.New(ErrMsgFarmNotFound)

	// Scenario errors
	ErrScenarioNotFound = errors.New(ErrMsgScenarioNotFound)
	ErrScenarioInactive = errors.New(ErrMsgScenarioInactive)
	ErrInvalidAction    = errors.New(ErrMsgInvalidAction)

	// Challenge errors
	ErrChallengeNotFound     = errors.New(ErrMsgChallengeNotFound)
	ErrChallengeNotCompleted = errors.New(ErrMsgChallengeNotCompleted)

	// Shop errors
	ErrItemNotFound = errors.New(ErrMsgItemNotFound)

	// Education errors
	ErrContentNotFound = errors.New(ErrMsgContentNotFound)

	// External service errors
	ErrWeatherUnavailable = errors.New(ErrMsgWeatherUnavailable)
	ErrModelNotAvailable  = errors.New(ErrMsgModelNotAvailable)

	// Database/System errors
	ErrDatabaseError = errors.New(ErrMsgDatabaseError)
)
