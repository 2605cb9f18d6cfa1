package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fasalseva/FasalSeva_Go/internal/domain"
)

func dataWith(temp, precip, solar float64) *domain.WeatherData {
	return &domain.WeatherData{
		Parameters: map[string]map[string]float64{
			domain.ParamTemperature:   {"20250101": temp, "20250102": temp},
			domain.ParamPrecipitation: {"20250101": precip, "20250102": precip},
			domain.ParamSolar:         {"20250101": solar, "20250102": solar},
		},
	}
}

func TestSummarize(t *testing.T) {
	data := &domain.WeatherData{
		Parameters: map[string]map[string]float64{
			domain.ParamTemperature:   {"20250101": 20, "20250102": 30},
			domain.ParamPrecipitation: {"20250101": 1, "20250102": 5},
			domain.ParamHumidity:      {"20250101": 60},
		},
	}

	s := Summarize(data)
	assert.Equal(t, 2, s.Days)
	assert.InDelta(t, 25.0, s.AvgTemperature, 1e-9)
	assert.Equal(t, 20.0, s.MinTemperature)
	assert.Equal(t, 30.0, s.MaxTemperature)
	assert.InDelta(t, 3.0, s.AvgPrecipitation, 1e-9)
	assert.Equal(t, 5.0, s.MaxPrecipitation)
	assert.InDelta(t, 60.0, s.AvgHumidity, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.Days)
	assert.Equal(t, 0.0, s.MinTemperature)
	assert.Equal(t, 0.0, s.MaxTemperature)

	s = Summarize(&domain.WeatherData{Parameters: map[string]map[string]float64{}})
	assert.Equal(t, 0, s.Days)
}

func TestClimateBonusBands(t *testing.T) {
	tests := []struct {
		name     string
		temp     float64
		precip   float64
		solar    float64
		expected float64
	}{
		{"ideal everything", 25, 3, 20, 0.45},
		{"good temp only", 25, 0, 0, 0.2},
		{"marginal temp", 16, 0, 0, 0.1},
		{"marginal precip", 1.5, 1.5, 0, 0.05},
		{"moderate solar", 25, 0, 12, 0.25},
		{"hostile", 45, 20, 1, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(dataWith(tt.temp, tt.precip, tt.solar))
			assert.InDelta(t, tt.expected, ClimateBonus(s), 1e-9)
		})
	}
}

func TestClimateBonusNoData(t *testing.T) {
	assert.Equal(t, 0.0, ClimateBonus(domain.WeatherSummary{}))
}

func TestRecommend(t *testing.T) {
	dry := Summarize(dataWith(25, 1, 10))
	assert.Equal(t, RecommendationIrrigation, Recommend(dry).Type)
	assert.InDelta(t, 0.8, Recommend(dry).Confidence, 1e-9)

	hot := Summarize(dataWith(35, 4, 10))
	assert.Equal(t, RecommendationHeatTolerant, Recommend(hot).Type)

	fine := Summarize(dataWith(25, 4, 10))
	assert.Equal(t, RecommendationFavourable, Recommend(fine).Type)

	none := Recommend(domain.WeatherSummary{})
	assert.Equal(t, RecommendationNoData, none.Type)
	assert.InDelta(t, 0.2, none.Confidence, 1e-9)
}

func TestSuggestedDateRanges(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	maxEnd, ranges := SuggestedDateRanges(now)

	assert.Equal(t, "20250612", maxEnd)
	assert.Len(t, ranges, 3)
	assert.Equal(t, "20250605", ranges[0].Start)
	for _, r := range ranges {
		assert.Equal(t, maxEnd, r.End)
	}
}
