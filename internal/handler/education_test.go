package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fasalseva/FasalSeva_Go/internal/domain"
	"github.com/fasalseva/FasalSeva_Go/internal/education"
)

type fakeEducationService struct {
	generateResult *education.GenerateResult
	generateErr    error
	updates        *education.UpdateCheck
	updatesErr     error
	completeErr    error

	lastForce     bool
	lastContentID int
	lastXP        int
	invalidated   []string
}

func (f *fakeEducationService) Generate(ctx context.Context, userID string, force bool) (*education.GenerateResult, error) {
	f.lastForce = force
	return f.generateResult, f.generateErr
}

func (f *fakeEducationService) Updates(ctx context.Context, userID string) (*education.UpdateCheck, error) {
	return f.updates, f.updatesErr
}

func (f *fakeEducationService) Complete(ctx context.Context, userID string, contentID, xpEarned int) error {
	f.lastContentID = contentID
	f.lastXP = xpEarned
	return f.completeErr
}

func (f *fakeEducationService) Invalidate(userID string) {
	f.invalidated = append(f.invalidated, userID)
}

func TestHandleGenerateContent(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEducationService{
			generateResult: &education.GenerateResult{
				Content:     json.RawMessage(`{"facts":[]}`),
				ContentHash: "abc123",
				PlantCount:  2,
			},
		}

		req := newAuthedRequest(t, "POST", "/educational/generate", nil)
		w := httptest.NewRecorder()
		HandleGenerateContent(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.False(t, svc.lastForce)
		assert.Contains(t, w.Body.String(), `"content_hash":"abc123"`)
	})

	t.Run("force regeneration", func(t *testing.T) {
		svc := &fakeEducationService{
			generateResult: &education.GenerateResult{Content: json.RawMessage(`{}`)},
		}

		req := newAuthedRequest(t, "POST", "/educational/generate?force=true", nil)
		w := httptest.NewRecorder()
		HandleGenerateContent(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, svc.lastForce)
	})

	t.Run("no farm", func(t *testing.T) {
		svc := &fakeEducationService{generateErr: domain.ErrFarmNotFound}

		req := newAuthedRequest(t, "POST", "/educational/generate", nil)
		w := httptest.NewRecorder()
		HandleGenerateContent(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgFarmNotFoundError)
	})
}

func TestHandleContentUpdates(t *testing.T) {
	svc := &fakeEducationService{
		updates: &education.UpdateCheck{UpdateNeeded: true, Reason: "farm state changed"},
	}

	req := newAuthedRequest(t, "GET", "/educational/updates", nil)
	w := httptest.NewRecorder()
	HandleContentUpdates(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"update_needed":true`)
	assert.Contains(t, w.Body.String(), "farm state changed")
}

func TestHandleCompleteContent(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeEducationService{}

		req := newAuthedRequest(t, "POST", "/educational/complete", CompleteContentRequest{
			ContentID: 7,
			XPEarned:  25,
		})
		w := httptest.NewRecorder()
		HandleCompleteContent(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 7, svc.lastContentID)
		assert.Equal(t, 25, svc.lastXP)
	})

	t.Run("missing content id", func(t *testing.T) {
		svc := &fakeEducationService{}

		req := newAuthedRequest(t, "POST", "/educational/complete", CompleteContentRequest{XPEarned: 25})
		w := httptest.NewRecorder()
		HandleCompleteContent(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown content", func(t *testing.T) {
		svc := &fakeEducationService{completeErr: domain.ErrContentNotFound}

		req := newAuthedRequest(t, "POST", "/educational/complete", CompleteContentRequest{
			ContentID: 99,
			XPEarned:  25,
		})
		w := httptest.NewRecorder()
		HandleCompleteContent(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgContentNotFoundError)
	})
}
