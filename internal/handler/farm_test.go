package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fasalseva/FasalSeva_Go/internal/domain"
	"github.com/fasalseva/FasalSeva_Go/internal/farm"
)

type fakeFarmService struct {
	statusResult   []domain.CropStatus
	statusErr      error
	plantResult    *farm.PlantResult
	plantErr       error
	careResult     *farm.CareResult
	careErr        error
	harvestResult  *farm.HarvestResult
	harvestErr     error
	simResult      *farm.SimulationResult
	simErr         error
	scorecard      *farm.Scorecard
	scorecardErr   error
	farms          []domain.Farm
	listErr        error
	createdFarm    *domain.Farm
	createErr      error
	farmData       *farm.FarmData
	farmDataErr    error

	lastPlant    farm.PlantParams
	lastQuality  string
	lastType     string
	lastCropID   int
	lastHours    int
	lastCropType string
}

func (f *fakeFarmService) Status(ctx context.Context, userID string) ([]domain.CropStatus, error) {
	return f.statusResult, f.statusErr
}

func (f *fakeFarmService) Plant(ctx context.Context, userID string, params farm.PlantParams) (*farm.PlantResult, error) {
	f.lastPlant = params
	return f.plantResult, f.plantErr
}

func (f *fakeFarmService) Water(ctx context.Context, userID string, cropID int, quality string) (*farm.CareResult, error) {
	f.lastCropID = cropID
	f.lastQuality = quality
	return f.careResult, f.careErr
}

func (f *fakeFarmService) Fertilize(ctx context.Context, userID string, cropID int, fertilizerType string) (*farm.CareResult, error) {
	f.lastCropID = cropID
	f.lastType = fertilizerType
	return f.careResult, f.careErr
}

func (f *fakeFarmService) Harvest(ctx context.Context, userID string, cropID int) (*farm.HarvestResult, error) {
	f.lastCropID = cropID
	return f.harvestResult, f.harvestErr
}

func (f *fakeFarmService) SimulateTime(ctx context.Context, userID string, cropID, hours int) (*farm.SimulationResult, error) {
	f.lastCropID = cropID
	f.lastHours = hours
	return f.simResult, f.simErr
}

func (f *fakeFarmService) CareShop() *farm.CareShop {
	return farm.Catalog()
}

func (f *fakeFarmService) Scorecard(ctx context.Context, userID string, cropID int) (*farm.Scorecard, error) {
	f.lastCropID = cropID
	return f.scorecard, f.scorecardErr
}

func (f *fakeFarmService) CreateFarm(ctx context.Context, userID string, fm *domain.Farm) (*domain.Farm, error) {
	return f.createdFarm, f.createErr
}

func (f *fakeFarmService) ListFarms(ctx context.Context, userID string) ([]domain.Farm, error) {
	return f.farms, f.listErr
}

func (f *fakeFarmService) FarmData(ctx context.Context, lat, lon float64, start, end time.Time, cropType string) (*farm.FarmData, error) {
	f.lastCropType = cropType
	return f.farmData, f.farmDataErr
}

func TestHandleFarmStatus(t *testing.T) {
	svc := &fakeFarmService{
		statusResult: []domain.CropStatus{
			{Crop: domain.Crop{ID: 1, Name: "Tomato"}},
			{Crop: domain.Crop{ID: 2, Name: "Wheat"}},
		},
	}

	req := newAuthedRequest(t, "GET", "/farm/status", nil)
	w := httptest.NewRecorder()
	HandleFarmStatus(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":2`)
	assert.Contains(t, w.Body.String(), "Tomato")
}

func TestHandlePlantCrop(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeFarmService{
			plantResult: &farm.PlantResult{
				Crop:     domain.Crop{ID: 3, Name: "Tomato"},
				Cost:     10,
				XPEarned: 20,
			},
		}

		req := newAuthedRequest(t, "POST", "/farm/plant", PlantCropRequest{
			CropType:  "Tomato",
			Row:       1,
			Col:       2,
			Latitude:  28.6,
			Longitude: 77.2,
		})
		edu := &fakeEducationService{}
		w := httptest.NewRecorder()
		HandlePlantCrop(svc, edu).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"xp_earned":20`)
		assert.Equal(t, "Tomato", svc.lastPlant.CropType)
		assert.Equal(t, 1, svc.lastPlant.Row)
		// New plant invalidates the user's educational content
		assert.Equal(t, []string{"user-1"}, edu.invalidated)
	})

	t.Run("missing crop type", func(t *testing.T) {
		svc := &fakeFarmService{}

		req := newAuthedRequest(t, "POST", "/farm/plant", PlantCropRequest{Row: 1, Col: 2})
		w := httptest.NewRecorder()
		HandlePlantCrop(svc, &fakeEducationService{}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"croptype"`)
	})

	t.Run("position occupied", func(t *testing.T) {
		svc := &fakeFarmService{plantErr: domain.ErrPositionOccupied}

		req := newAuthedRequest(t, "POST", "/farm/plant", PlantCropRequest{
			CropType: "Tomato",
			Row:      1,
			Col:      2,
		})
		edu := &fakeEducationService{}
		w := httptest.NewRecorder()
		HandlePlantCrop(svc, edu).ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgPositionOccupiedError)
		assert.Empty(t, edu.invalidated)
	})

	t.Run("insufficient coins", func(t *testing.T) {
		svc := &fakeFarmService{plantErr: domain.ErrInsufficientCoins}

		req := newAuthedRequest(t, "POST", "/farm/plant", PlantCropRequest{
			CropType: "Corn",
			Row:      0,
			Col:      0,
		})
		w := httptest.NewRecorder()
		HandlePlantCrop(svc, &fakeEducationService{}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgNotEnoughCoinsError)
	})
}

func TestHandleWaterCrop(t *testing.T) {
	t.Run("success with quality", func(t *testing.T) {
		svc := &fakeFarmService{careResult: &farm.CareResult{Action: "water", CostPaid: 12}}

		req := newAuthedRequest(t, "POST", "/farm/water/5?quality=premium", nil)
		w := serveWithParams("/farm/water/{id}", HandleWaterCrop(svc), req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 5, svc.lastCropID)
		assert.Equal(t, "premium", svc.lastQuality)
	})

	t.Run("defaults to basic", func(t *testing.T) {
		svc := &fakeFarmService{careResult: &farm.CareResult{Action: "water", CostPaid: 5}}

		req := newAuthedRequest(t, "POST", "/farm/water/5", nil)
		w := serveWithParams("/farm/water/{id}", HandleWaterCrop(svc), req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "basic", svc.lastQuality)
	})

	t.Run("bad crop id", func(t *testing.T) {
		svc := &fakeFarmService{}

		req := newAuthedRequest(t, "POST", "/farm/water/abc", nil)
		w := serveWithParams("/farm/water/{id}", HandleWaterCrop(svc), req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInvalidCropID)
	})

	t.Run("crop not found", func(t *testing.T) {
		svc := &fakeFarmService{careErr: domain.ErrCropNotFound}

		req := newAuthedRequest(t, "POST", "/farm/water/9", nil)
		w := serveWithParams("/farm/water/{id}", HandleWaterCrop(svc), req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgCropNotFoundError)
	})
}

func TestHandleFertilizeCrop(t *testing.T) {
	svc := &fakeFarmService{careResult: &farm.CareResult{Action: "fertilize", CostPaid: 25}}

	req := newAuthedRequest(t, "POST", "/farm/fertilize/7?type=organic", nil)
	w := serveWithParams("/farm/fertilize/{id}", HandleFertilizeCrop(svc), req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 7, svc.lastCropID)
	assert.Equal(t, "organic", svc.lastType)
}

func TestHandleHarvestCrop(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeFarmService{
			harvestResult: &farm.HarvestResult{
				CropName:    "Tomato",
				XPEarned:    85,
				CoinsEarned: 170,
			},
		}

		req := newAuthedRequest(t, "POST", "/farm/harvest/3", nil)
		w := serveWithParams("/farm/harvest/{id}", HandleHarvestCrop(svc), req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"coins_earned":170`)
	})

	t.Run("not ready", func(t *testing.T) {
		svc := &fakeFarmService{harvestErr: domain.ErrCropNotReady}

		req := newAuthedRequest(t, "POST", "/farm/harvest/3", nil)
		w := serveWithParams("/farm/harvest/{id}", HandleHarvestCrop(svc), req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgCropNotReadyError)
	})
}

func TestHandleSimulateTime(t *testing.T) {
	t.Run("custom hours", func(t *testing.T) {
		svc := &fakeFarmService{simResult: &farm.SimulationResult{Hours: 12}}

		req := newAuthedRequest(t, "POST", "/farm/simulate-time/4?hours=12", nil)
		w := serveWithParams("/farm/simulate-time/{id}", HandleSimulateTime(svc), req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 12, svc.lastHours)
	})

	t.Run("out of range hours rejected by service", func(t *testing.T) {
		svc := &fakeFarmService{simErr: domain.ErrInvalidHours}

		req := newAuthedRequest(t, "POST", "/farm/simulate-time/4?hours=99", nil)
		w := serveWithParams("/farm/simulate-time/{id}", HandleSimulateTime(svc), req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInvalidHoursError)
	})
}

func TestHandleCareShop(t *testing.T) {
	req := newAuthedRequest(t, "GET", "/farm/care-shop", nil)
	w := httptest.NewRecorder()
	HandleCareShop(&fakeFarmService{}).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"water_supplies"`)
	assert.Contains(t, w.Body.String(), `"fertilizers"`)
	assert.Contains(t, w.Body.String(), `"crop_costs"`)
}

func TestHandleFarms(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		svc := &fakeFarmService{farms: []domain.Farm{{ID: 1, Name: "North Field"}}}

		req := newAuthedRequest(t, "GET", "/farms", nil)
		w := httptest.NewRecorder()
		HandleListFarms(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "North Field")
	})

	t.Run("create", func(t *testing.T) {
		svc := &fakeFarmService{
			createdFarm: &domain.Farm{ID: 2, Name: "South Field", Latitude: 28.6, Longitude: 77.2},
		}

		req := newAuthedRequest(t, "POST", "/farms", CreateFarmRequest{
			Name:      "South Field",
			Latitude:  28.6,
			Longitude: 77.2,
		})
		w := httptest.NewRecorder()
		HandleCreateFarm(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "South Field")
	})

	t.Run("create requires name", func(t *testing.T) {
		svc := &fakeFarmService{}

		req := newAuthedRequest(t, "POST", "/farms", CreateFarmRequest{Latitude: 28.6, Longitude: 77.2})
		w := httptest.NewRecorder()
		HandleCreateFarm(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
