package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fasalseva/FasalSeva_Go/internal/domain"
)

type fakeScenarioService struct {
	generated  []domain.Scenario
	genErr     error
	active     []domain.Scenario
	activeErr  error
	resolution *domain.ScenarioResolution
	completeErr error

	lastCropID   int
	lastScenario string
	lastAction   string
}

func (f *fakeScenarioService) Generate(ctx context.Context, userID string, cropID int) ([]domain.Scenario, error) {
	f.lastCropID = cropID
	return f.generated, f.genErr
}

func (f *fakeScenarioService) Active(ctx context.Context, userID string) ([]domain.Scenario, error) {
	return f.active, f.activeErr
}

func (f *fakeScenarioService) Complete(ctx context.Context, userID, scenarioID, actionID string) (*domain.ScenarioResolution, error) {
	f.lastScenario = scenarioID
	f.lastAction = actionID
	return f.resolution, f.completeErr
}

func TestHandleGenerateScenarios(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeScenarioService{
			generated: []domain.Scenario{
				{ID: "scn-1", Type: domain.ScenarioDrought, Severity: domain.SeverityHigh},
			},
		}

		req := newAuthedRequest(t, "POST", "/scenarios/generate/12", nil)
		w := serveWithParams("/scenarios/generate/{cropID}", HandleGenerateScenarios(svc), req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 12, svc.lastCropID)
		assert.Contains(t, w.Body.String(), `"scenario_type":"drought"`)
		assert.Contains(t, w.Body.String(), `"count":1`)
	})

	t.Run("invalid crop id", func(t *testing.T) {
		svc := &fakeScenarioService{}

		req := newAuthedRequest(t, "POST", "/scenarios/generate/zero", nil)
		w := serveWithParams("/scenarios/generate/{cropID}", HandleGenerateScenarios(svc), req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("crop not owned", func(t *testing.T) {
		svc := &fakeScenarioService{genErr: domain.ErrCropNotFound}

		req := newAuthedRequest(t, "POST", "/scenarios/generate/44", nil)
		w := serveWithParams("/scenarios/generate/{cropID}", HandleGenerateScenarios(svc), req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandleActiveScenarios(t *testing.T) {
	svc := &fakeScenarioService{
		active: []domain.Scenario{
			{ID: "scn-1", Type: domain.ScenarioFlood},
			{ID: "scn-2", Type: domain.ScenarioPest},
		},
	}

	req := newAuthedRequest(t, "GET", "/scenarios/active", nil)
	w := httptest.NewRecorder()
	HandleActiveScenarios(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":2`)
}

func TestHandleCompleteScenario(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeScenarioService{
			resolution: &domain.ScenarioResolution{
				ScenarioID: "scn-1",
				ActionID:   "install_drip_irrigation",
				Success:    true,
				CostPaid:   200,
				Rewards:    domain.ScenarioRewards{XP: 100, Coins: 50},
			},
		}

		req := newAuthedRequest(t, "POST", "/scenarios/scn-1/complete", CompleteScenarioRequest{
			ActionID: "install_drip_irrigation",
		})
		w := serveWithParams("/scenarios/{id}/complete", HandleCompleteScenario(svc), req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "scn-1", svc.lastScenario)
		assert.Equal(t, "install_drip_irrigation", svc.lastAction)
		assert.Contains(t, w.Body.String(), `"success":true`)
	})

	t.Run("missing action id", func(t *testing.T) {
		svc := &fakeScenarioService{}

		req := newAuthedRequest(t, "POST", "/scenarios/scn-1/complete", CompleteScenarioRequest{})
		w := serveWithParams("/scenarios/{id}/complete", HandleCompleteScenario(svc), req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("inactive scenario", func(t *testing.T) {
		svc := &fakeScenarioService{completeErr: domain.ErrScenarioInactive}

		req := newAuthedRequest(t, "POST", "/scenarios/scn-1/complete", CompleteScenarioRequest{
			ActionID: "deep_watering",
		})
		w := serveWithParams("/scenarios/{id}/complete", HandleCompleteScenario(svc), req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgScenarioInactiveError)
	})

	t.Run("insufficient coins", func(t *testing.T) {
		svc := &fakeScenarioService{completeErr: domain.ErrInsufficientCoins}

		req := newAuthedRequest(t, "POST", "/scenarios/scn-1/complete", CompleteScenarioRequest{
			ActionID: "deep_watering",
		})
		w := serveWithParams("/scenarios/{id}/complete", HandleCompleteScenario(svc), req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgNotEnoughCoinsError)
	})
}
