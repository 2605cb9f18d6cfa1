package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/fasalseva/FasalSeva_Go/internal/auth"
	"github.com/fasalseva/FasalSeva_Go/internal/domain"
)

// testUser is the authenticated user injected into handler test requests
func testUser() *domain.User {
	return &domain.User{
		ID:       "user-1",
		Email:    "ravi@example.com",
		Username: "ravifarmer",
		Language: "en",
		Coins:    500,
		XP:       120,
	}
}

// newAuthedRequest builds a request carrying the test user in its context
func newAuthedRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	return req.WithContext(auth.WithUser(req.Context(), testUser()))
}

// serveWithParams routes the request through chi so URL parameters resolve
func serveWithParams(pattern string, handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Handle(pattern, handler)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
