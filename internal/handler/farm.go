package handler

import (
	"net/http"
	"strconv"

	"github.com/fasalseva/FasalSeva_Go/internal/domain"
	"github.com/fasalseva/FasalSeva_Go/internal/education"
	"github.com/fasalseva/FasalSeva_Go/internal/farm"
	"github.com/fasalseva/FasalSeva_Go/internal/logger"
	"github.com/fasalseva/FasalSeva_Go/internal/metrics"
)

// PlantCropRequest is the request body for planting a crop
type PlantCropRequest struct {
	CropType  string  `json:"crop_type" validate:"required,max=50"`
	Row       int     `json:"position_row" validate:"gte=0"`
	Col       int     `json:"position_col" validate:"gte=0"`
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

// CreateFarmRequest is the request body for registering a farm location
type CreateFarmRequest struct {
	Name      string  `json:"name" validate:"required,max=100"`
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
	CropType  string  `json:"crop_type" validate:"omitempty,max=50"`
	FarmSize  float64 `json:"farm_size" validate:"omitempty,gte=0"`
}

// FarmStatusResponse wraps the user's crops
type FarmStatusResponse struct {
	Crops []domain.CropStatus `json:"crops"`
	Count int                 `json:"count"`
}

// FarmListResponse wraps the user's farm locations
type FarmListResponse struct {
	Farms []domain.Farm `json:"farms"`
	Count int           `json:"count"`
}

// HandleFarmStatus returns all crops with decay and growth applied
// @Summary Farm status
// @Tags farm
// @Produce json
// @Security BearerAuth
// @Success 200 {object} FarmStatusResponse
// @Router /api/v1/farm/status [get]
func HandleFarmStatus(farmService farm.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		crops, err := farmService.Status(r.Context(), user.ID)
		if err != nil {
			respondServiceError(w, r, "Farm status", err)
			return
		}

		respondJSON(w, http.StatusOK, FarmStatusResponse{Crops: crops, Count: len(crops)})
	}
}

// HandlePlantCrop plants a crop at a grid position. A new plant changes the
// farm state, so the user's educational content cache is invalidated.
// @Summary Plant a crop
// @Tags farm
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PlantCropRequest true "Plant payload"
// @Success 201 {object} farm.PlantResult
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/farm/plant [post]
func HandlePlantCrop(farmService farm.Service, educationService education.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req PlantCropRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Plant crop"); err != nil {
			return
		}

		result, err := farmService.Plant(r.Context(), user.ID, farm.PlantParams{
			CropType:  req.CropType,
			Row:       req.Row,
			Col:       req.Col,
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
		})
		if err != nil {
			respondServiceError(w, r, "Plant crop", err)
			return
		}

		metrics.CropsPlanted.WithLabelValues(result.Crop.Name).Inc()
		metrics.CoinsSpent.Add(float64(result.Cost))
		educationService.Invalidate(user.ID)

		log.Info("Crop planted",
			"user_id", user.ID,
			"crop", result.Crop.Name,
			"row", req.Row,
			"col", req.Col)
		respondJSON(w, http.StatusCreated, result)
	}
}

// HandleWaterCrop applies a watering tier to a crop
// @Summary Water a crop
// @Tags farm
// @Produce json
// @Security BearerAuth
// @Param id path int true "Crop ID"
// @Param quality query string false "Watering tier" Enums(basic, premium, expert)
// @Success 200 {object} farm.CareResult
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/farm/water/{id} [post]
func HandleWaterCrop(farmService farm.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		cropID, ok := GetCropIDParam(r, w)
		if !ok {
			return
		}
		quality := GetOptionalQueryParam(r, "quality", "basic")

		result, err := farmService.Water(r.Context(), user.ID, cropID, quality)
		if err != nil {
			respondServiceError(w, r, "Water crop", err)
			return
		}

		metrics.CropsWatered.WithLabelValues(quality).Inc()
		metrics.CoinsSpent.Add(float64(result.CostPaid))

		respondJSON(w, http.StatusOK, result)
	}
}

// HandleFertilizeCrop applies a fertilizer tier to a crop
// @Summary Fertilize a crop
// @Tags farm
// @Produce json
// @Security BearerAuth
// @Param id path int true "Crop ID"
// @Param type query string false "Fertilizer tier" Enums(basic, organic, premium)
// @Success 200 {object} farm.CareResult
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/farm/fertilize/{id} [post]
func HandleFertilizeCrop(farmService farm.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		cropID, ok := GetCropIDParam(r, w)
		if !ok {
			return
		}
		fertilizerType := GetOptionalQueryParam(r, "type", "basic")

		result, err := farmService.Fertilize(r.Context(), user.ID, cropID, fertilizerType)
		if err != nil {
			respondServiceError(w, r, "Fertilize crop", err)
			return
		}

		metrics.CropsFertilized.WithLabelValues(fertilizerType).Inc()
		metrics.CoinsSpent.Add(float64(result.CostPaid))

		respondJSON(w, http.StatusOK, result)
	}
}

// HandleHarvestCrop collects a fully grown crop
// @Summary Harvest a crop
// @Tags farm
// @Produce json
// @Security BearerAuth
// @Param id path int true "Crop ID"
// @Success 200 {object} farm.HarvestResult
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/farm/harvest/{id} [post]
func HandleHarvestCrop(farmService farm.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		cropID, ok := GetCropIDParam(r, w)
		if !ok {
			return
		}

		result, err := farmService.Harvest(r.Context(), user.ID, cropID)
		if err != nil {
			respondServiceError(w, r, "Harvest crop", err)
			return
		}

		metrics.CropsHarvested.WithLabelValues(result.CropName).Inc()
		metrics.CoinsEarned.Add(float64(result.CoinsEarned))

		log.Info("Crop harvested",
			"user_id", user.ID,
			"crop", result.CropName,
			"xp", result.XPEarned,
			"coins", result.CoinsEarned)
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleSimulateTime fast-forwards degradation on one crop
// @Summary Simulate time passage
// @Tags farm
// @Produce json
// @Security BearerAuth
// @Param id path int true "Crop ID"
// @Param hours query int false "Hours to simulate (1-48)"
// @Success 200 {object} farm.SimulationResult
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/farm/simulate-time/{id} [post]
func HandleSimulateTime(farmService farm.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		cropID, ok := GetCropIDParam(r, w)
		if !ok {
			return
		}

		hours, err := strconv.Atoi(GetOptionalQueryParam(r, "hours", "24"))
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidHoursError)
			return
		}

		result, err := farmService.SimulateTime(r.Context(), user.ID, cropID, hours)
		if err != nil {
			respondServiceError(w, r, "Simulate time", err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// HandleCareShop returns the static supply catalog
// @Summary Care shop catalog
// @Tags farm
// @Produce json
// @Security BearerAuth
// @Success 200 {object} farm.CareShop
// @Router /api/v1/farm/care-shop [get]
func HandleCareShop(farmService farm.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, farmService.CareShop())
	}
}

// HandleScorecard summarizes one crop's care performance
// @Summary Crop scorecard
// @Tags farm
// @Produce json
// @Security BearerAuth
// @Param id path int true "Crop ID"
// @Success 200 {object} farm.Scorecard
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/farm/scorecard/{id} [get]
func HandleScorecard(farmService farm.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		cropID, ok := GetCropIDParam(r, w)
		if !ok {
			return
		}

		result, err := farmService.Scorecard(r.Context(), user.ID, cropID)
		if err != nil {
			respondServiceError(w, r, "Crop scorecard", err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// HandleListFarms returns the user's registered farm locations
// @Summary List farms
// @Tags farm
// @Produce json
// @Security BearerAuth
// @Success 200 {object} FarmListResponse
// @Router /api/v1/farms [get]
func HandleListFarms(farmService farm.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		farms, err := farmService.ListFarms(r.Context(), user.ID)
		if err != nil {
			respondServiceError(w, r, "List farms", err)
			return
		}

		respondJSON(w, http.StatusOK, FarmListResponse{Farms: farms, Count: len(farms)})
	}
}

// HandleCreateFarm registers a named farm location
// @Summary Create a farm
// @Tags farm
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateFarmRequest true "Farm payload"
// @Success 201 {object} domain.Farm
// @Failure 400 {object} ValidationErrorResponse
// @Router /api/v1/farms [post]
func HandleCreateFarm(farmService farm.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req CreateFarmRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create farm"); err != nil {
			return
		}

		created, err := farmService.CreateFarm(r.Context(), user.ID, &domain.Farm{
			Name:      req.Name,
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
			CropType:  req.CropType,
			FarmSize:  req.FarmSize,
		})
		if err != nil {
			respondServiceError(w, r, "Create farm", err)
			return
		}

		log.Info("Farm created", "user_id", user.ID, "farm_id", created.ID, "name", created.Name)
		respondJSON(w, http.StatusCreated, created)
	}
}
