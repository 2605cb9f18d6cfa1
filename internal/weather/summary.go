package weather

import (
	"math"

	"github.com/fasalseva/FasalSeva_Go/internal/domain"
)

// Summarize aggregates a weather window into averages and extremes.
// Days counts the dates with at least one temperature reading.
func Summarize(data *domain.WeatherData) domain.WeatherSummary {
	summary := domain.WeatherSummary{
		MinTemperature: math.Inf(1),
		MaxTemperature: math.Inf(-1),
	}
	if data == nil {
		summary.MinTemperature, summary.MaxTemperature = 0, 0
		return summary
	}

	temps := data.Parameters[domain.ParamTemperature]
	for _, v := range temps {
		summary.AvgTemperature += v
		summary.MinTemperature = math.Min(summary.MinTemperature, v)
		summary.MaxTemperature = math.Max(summary.MaxTemperature, v)
		summary.Days++
	}
	if summary.Days > 0 {
		summary.AvgTemperature /= float64(summary.Days)
	} else {
		summary.MinTemperature, summary.MaxTemperature = 0, 0
	}

	summary.AvgPrecipitation, summary.MaxPrecipitation = avgAndMax(data.Parameters[domain.ParamPrecipitation])
	summary.AvgHumidity, _ = avgAndMax(data.Parameters[domain.ParamHumidity])
	summary.AvgSolar, _ = avgAndMax(data.Parameters[domain.ParamSolar])
	summary.AvgWindSpeed, _ = avgAndMax(data.Parameters[domain.ParamWindSpeed])

	return summary
}

func avgAndMax(series map[string]float64) (avg, max float64) {
	if len(series) == 0 {
		return 0, 0
	}
	max = math.Inf(-1)
	for _, v := range series {
		avg += v
		max = math.Max(max, v)
	}
	return avg / float64(len(series)), max
}

// ClimateBonus converts a weather summary into a growth multiplier bonus.
// Each band contributes independently and the contributions add up.
func ClimateBonus(summary domain.WeatherSummary) float64 {
	if summary.Days == 0 {
		return 0
	}

	var bonus float64

	switch {
	case summary.AvgTemperature >= 20 && summary.AvgTemperature <= 30:
		bonus += 0.2
	case summary.AvgTemperature >= 15 && summary.AvgTemperature <= 35:
		bonus += 0.1
	}

	switch {
	case summary.AvgPrecipitation >= 2 && summary.AvgPrecipitation <= 5:
		bonus += 0.15
	case summary.AvgPrecipitation >= 1 && summary.AvgPrecipitation <= 7:
		bonus += 0.05
	}

	switch {
	case summary.AvgSolar > 15:
		bonus += 0.1
	case summary.AvgSolar > 10:
		bonus += 0.05
	}

	return bonus
}
