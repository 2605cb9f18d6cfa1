package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fasalseva/FasalSeva_Go/internal/domain"
	"github.com/fasalseva/FasalSeva_Go/internal/logger"
	"github.com/fasalseva/FasalSeva_Go/internal/metrics"
)

const (
	// DateFormat is the YYYYMMDD format the POWER API uses for daily keys
	DateFormat = "20060102"

	// missingValue is the sentinel the POWER API returns for absent readings
	missingValue = -999.0

	community = "AG"
)

// defaultParameters are the daily series requested from the POWER API
var defaultParameters = []string{
	domain.ParamTemperature,
	domain.ParamPrecipitation,
	domain.ParamHumidity,
	domain.ParamSolar,
	domain.ParamWindSpeed,
}

// Client fetches daily agro-climate data from the NASA POWER API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a NASA POWER client. baseURL points at the daily point
// endpoint; timeout bounds the whole request, there is no retry.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// powerResponse mirrors the slice of the POWER JSON payload we consume
type powerResponse struct {
	Properties struct {
		Parameter map[string]map[string]float64 `json:"parameter"`
	} `json:"properties"`
}

// FetchDailyWeather returns daily parameter series for the location and date
// range. Missing readings (the API's -999 sentinel) are dropped from the maps.
func (c *Client) FetchDailyWeather(ctx context.Context, lat, lon float64, start, end time.Time) (*domain.WeatherData, error) {
	log := logger.FromContext(ctx)

	params := url.Values{}
	params.Set("parameters", strings.Join(defaultParameters, ","))
	params.Set("community", community)
	params.Set("latitude", fmt.Sprintf("%.4f", lat))
	params.Set("longitude", fmt.Sprintf("%.4f", lon))
	params.Set("start", start.Format(DateFormat))
	params.Set("end", end.Format(DateFormat))
	params.Set("format", "JSON")

	reqURL := c.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build request: %v", domain.ErrWeatherUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("NASA POWER request failed", "error", err)
		metrics.WeatherFetchErrors.Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrWeatherUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn("NASA POWER returned non-OK status", "status", resp.StatusCode)
		metrics.WeatherFetchErrors.Inc()
		return nil, fmt.Errorf("%w: status %d", domain.ErrWeatherUnavailable, resp.StatusCode)
	}

	var power powerResponse
	if err := json.NewDecoder(resp.Body).Decode(&power); err != nil {
		metrics.WeatherFetchErrors.Inc()
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrWeatherUnavailable, err)
	}

	data := &domain.WeatherData{
		Latitude:   lat,
		Longitude:  lon,
		Parameters: make(map[string]map[string]float64, len(power.Properties.Parameter)),
	}
	for param, series := range power.Properties.Parameter {
		clean := make(map[string]float64, len(series))
		for date, value := range series {
			if value == missingValue {
				continue
			}
			clean[date] = value
		}
		data.Parameters[param] = clean
	}

	log.Debug("Fetched NASA POWER data",
		"lat", lat, "lon", lon,
		"start", start.Format(DateFormat), "end", end.Format(DateFormat),
		"parameters", len(data.Parameters))

	return data, nil
}
