package handler

import (
	"net/http"

	"github.com/fasalseva/FasalSeva_Go/internal/auth"
	"github.com/fasalseva/FasalSeva_Go/internal/domain"
	"github.com/fasalseva/FasalSeva_Go/internal/logger"
)

// SignupRequest is the request body for registering an account
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	FullName string `json:"full_name" validate:"omitempty,max=100"`
	Language string `json:"language" validate:"omitempty,oneof=en hi es pt"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	UsernameOrEmail string `json:"username_or_email" validate:"required"`
	Password        string `json:"password" validate:"required"`
}

// LanguageUpdateRequest is the request body for changing the UI language
type LanguageUpdateRequest struct {
	Language string `json:"language" validate:"required,oneof=en hi es pt"`
}

// UsernameAvailableResponse reports whether a username can be registered
type UsernameAvailableResponse struct {
	Username  string `json:"username"`
	Available bool   `json:"available"`
}

// WelcomeBonusResponse is the response for an explicit bonus claim
type WelcomeBonusResponse struct {
	Message      string `json:"message"`
	CoinsAwarded int    `json:"coins_awarded"`
	TotalCoins   int    `json:"total_coins"`
}

// currentUser returns the authenticated user injected by the auth middleware.
// When the user is missing the route is misconfigured; respond 401 and
// return false so the handler can bail out.
func currentUser(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		logger.FromContext(r.Context()).Error("No authenticated user in request context")
		respondError(w, http.StatusUnauthorized, ErrMsgTokenInvalidError)
		return nil, false
	}
	return user, true
}

// HandleSignup registers a new account and issues a token
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup payload"
// @Success 201 {object} auth.AuthResult
// @Failure 400 {object} ValidationErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/auth/signup [post]
func HandleSignup(authService auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req SignupRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Signup"); err != nil {
			return
		}

		result, err := authService.Signup(r.Context(), auth.SignupParams{
			Email:    req.Email,
			Username: req.Username,
			Password: req.Password,
			FullName: req.FullName,
			Language: req.Language,
		})
		if err != nil {
			respondServiceError(w, r, "Signup", err)
			return
		}

		log.Info("User signed up", "user_id", result.User.ID, "username", result.User.Username)
		respondJSON(w, http.StatusCreated, result)
	}
}

// HandleLogin authenticates a user and issues a token
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} auth.AuthResult
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/auth/login [post]
func HandleLogin(authService auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req LoginRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Login"); err != nil {
			return
		}

		result, err := authService.Login(r.Context(), req.UsernameOrEmail, req.Password)
		if err != nil {
			respondServiceError(w, r, "Login", err)
			return
		}

		log.Info("User logged in", "user_id", result.User.ID)
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleUsernameAvailable checks whether a username can still be registered
// @Summary Check username availability
// @Tags auth
// @Produce json
// @Param username query string true "Username to check"
// @Success 200 {object} UsernameAvailableResponse
// @Router /api/v1/auth/username-available [get]
func HandleUsernameAvailable(authService auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, ok := GetQueryParam(r, w, "username")
		if !ok {
			return
		}

		available, err := authService.UsernameAvailable(r.Context(), username)
		if err != nil {
			respondServiceError(w, r, "Username availability", err)
			return
		}

		respondJSON(w, http.StatusOK, UsernameAvailableResponse{
			Username:  username,
			Available: available,
		})
	}
}

// HandleMe returns the authenticated user's profile
// @Summary Current user profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.User
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/auth/me [get]
func HandleMe(authService auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		profile, err := authService.Me(r.Context(), user.ID)
		if err != nil {
			respondServiceError(w, r, "Get profile", err)
			return
		}

		respondJSON(w, http.StatusOK, profile)
	}
}

// HandleUpdateLanguage changes the user's preferred language
// @Summary Update language
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body LanguageUpdateRequest true "Language payload"
// @Success 200 {object} domain.User
// @Router /api/v1/auth/language [put]
func HandleUpdateLanguage(authService auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req LanguageUpdateRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Update language"); err != nil {
			return
		}

		updated, err := authService.UpdateLanguage(r.Context(), user.ID, req.Language)
		if err != nil {
			respondServiceError(w, r, "Update language", err)
			return
		}

		respondJSON(w, http.StatusOK, updated)
	}
}

// HandleClaimWelcomeBonus explicitly claims the one-time welcome bonus
// @Summary Claim welcome bonus
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} WelcomeBonusResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/auth/claim-welcome-bonus [post]
func HandleClaimWelcomeBonus(authService auth.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		result, err := authService.ClaimWelcomeBonus(r.Context(), user.ID)
		if err != nil {
			respondServiceError(w, r, "Claim welcome bonus", err)
			return
		}

		log.Info("Welcome bonus claimed", "user_id", user.ID, "coins", result.CoinsAwarded)
		respondJSON(w, http.StatusOK, WelcomeBonusResponse{
			Message:      "Welcome bonus claimed!",
			CoinsAwarded: result.CoinsAwarded,
			TotalCoins:   result.TotalCoins,
		})
	}
}
