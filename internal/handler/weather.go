package handler

import (
	"net/http"
	"time"

	"github.com/fasalseva/FasalSeva_Go/internal/clock"
	"github.com/fasalseva/FasalSeva_Go/internal/farm"
	"github.com/fasalseva/FasalSeva_Go/internal/logger"
	"github.com/fasalseva/FasalSeva_Go/internal/weather"
)

// DateRangesResponse lists suggested query windows for the farm data endpoint
type DateRangesResponse struct {
	MaxEndDate string              `json:"max_end_date"`
	Ranges     []weather.DateRange `json:"ranges"`
	Note       string              `json:"note"`
}

const dateRangesNote = "NASA POWER data has a 2-3 day lag. Use dates ending before the max_end_date."

// HandleFarmData fetches the raw climate series and a recommendation for a location
// @Summary Farm climate data
// @Tags farm-data
// @Produce json
// @Security BearerAuth
// @Param lat query number true "Latitude"
// @Param lon query number true "Longitude"
// @Param start query string true "Start date (YYYYMMDD)"
// @Param end query string true "End date (YYYYMMDD)"
// @Param crop_type query string false "Crop type for personalization"
// @Success 200 {object} farm.FarmData
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /api/v1/farm-data [get]
func HandleFarmData(farmService farm.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		lat, ok := GetFloatQueryParam(r, w, "lat")
		if !ok {
			return
		}
		lon, ok := GetFloatQueryParam(r, w, "lon")
		if !ok {
			return
		}
		if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
			respondError(w, http.StatusBadRequest, "Coordinates out of range")
			return
		}

		startRaw, ok := GetQueryParam(r, w, "start")
		if !ok {
			return
		}
		endRaw, ok := GetQueryParam(r, w, "end")
		if !ok {
			return
		}

		start, err := time.Parse(weather.DateFormat, startRaw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid start date. Use YYYYMMDD")
			return
		}
		end, err := time.Parse(weather.DateFormat, endRaw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid end date. Use YYYYMMDD")
			return
		}
		if end.Before(start) {
			respondError(w, http.StatusBadRequest, "End date must not be earlier than start date")
			return
		}

		cropType := GetOptionalQueryParam(r, "crop_type", "")

		log.Info("Fetching farm data", "lat", lat, "lon", lon, "start", startRaw, "end", endRaw)

		result, err := farmService.FarmData(r.Context(), lat, lon, start, end, cropType)
		if err != nil {
			respondServiceError(w, r, "Farm data", err)
			return
		}

		respondJSON(w, http.StatusOK, result)
	}
}

// HandleDateRanges returns suggested query windows that respect the POWER reporting lag
// @Summary Suggested date ranges
// @Tags farm-data
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DateRangesResponse
// @Router /api/v1/farm-data/date-ranges [get]
func HandleDateRanges(clk clock.Clock) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		maxEnd, ranges := weather.SuggestedDateRanges(clk.Now())
		respondJSON(w, http.StatusOK, DateRangesResponse{
			MaxEndDate: maxEnd,
			Ranges:     ranges,
			Note:       dateRangesNote,
		})
	}
}
