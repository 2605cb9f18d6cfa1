package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fasalseva/FasalSeva_Go/internal/domain"
	"github.com/fasalseva/FasalSeva_Go/internal/metrics"
)

const samplePowerResponse = `{
	"properties": {
		"parameter": {
			"T2M": {"20250101": 25.5, "20250102": 27.0, "20250103": -999},
			"PRECTOTCORR": {"20250101": 2.1, "20250102": 0.0},
			"RH2M": {"20250101": 65.0}
		}
	}
}`

func TestFetchDailyWeather(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"parameters": r.URL.Query().Get("parameters"),
			"community":  r.URL.Query().Get("community"),
			"latitude":   r.URL.Query().Get("latitude"),
			"start":      r.URL.Query().Get("start"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(samplePowerResponse))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)

	data, err := client.FetchDailyWeather(context.Background(), 28.6139, 77.2090, start, end)
	require.NoError(t, err)

	assert.Equal(t, "AG", gotQuery["community"])
	assert.Equal(t, "28.6139", gotQuery["latitude"])
	assert.Equal(t, "20250101", gotQuery["start"])
	assert.Contains(t, gotQuery["parameters"], "T2M")
	assert.Contains(t, gotQuery["parameters"], "WS2M")

	// -999 sentinel filtered out
	assert.Len(t, data.Parameters[domain.ParamTemperature], 2)
	assert.Equal(t, 25.5, data.Parameters[domain.ParamTemperature]["20250101"])
	assert.Len(t, data.Parameters[domain.ParamPrecipitation], 2)
}

func TestFetchDailyWeatherServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	errorsBefore := testutil.ToFloat64(metrics.WeatherFetchErrors)

	client := NewClient(server.URL, 5*time.Second)
	_, err := client.FetchDailyWeather(context.Background(), 0, 0, time.Now(), time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrWeatherUnavailable)
	assert.Equal(t, errorsBefore+1, testutil.ToFloat64(metrics.WeatherFetchErrors))
}

func TestFetchDailyWeatherUnreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 500*time.Millisecond)
	_, err := client.FetchDailyWeather(context.Background(), 0, 0, time.Now(), time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrWeatherUnavailable)
}
