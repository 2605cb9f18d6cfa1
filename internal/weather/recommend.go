package weather

import (
	"time"

	"github.com/fasalseva/FasalSeva_Go/internal/domain"
)

// Recommendation types
const (
	RecommendationIrrigation   = "irrigation"
	RecommendationHeatTolerant = "heat_tolerant_crops"
	RecommendationFavourable   = "favourable"
	RecommendationNoData       = "no_data"
)

// Recommend derives rule-based farming advice from a weather summary
func Recommend(summary domain.WeatherSummary) domain.Recommendation {
	if summary.Days == 0 {
		return domain.Recommendation{
			Type:       RecommendationNoData,
			Message:    "Not enough weather data to make a recommendation. Try a wider date range.",
			Confidence: 0.2,
		}
	}

	if summary.AvgPrecipitation < 3 {
		return domain.Recommendation{
			Type:       RecommendationIrrigation,
			Message:    "Low rainfall in this period. Plan supplemental irrigation to protect yields.",
			Confidence: 0.8,
		}
	}

	if summary.AvgTemperature > 32 {
		return domain.Recommendation{
			Type:       RecommendationHeatTolerant,
			Message:    "High temperatures detected. Prefer heat-tolerant varieties and shade-sensitive crops.",
			Confidence: 0.75,
		}
	}

	return domain.Recommendation{
		Type:       RecommendationFavourable,
		Message:    "Conditions look favourable for most crops. Maintain your regular care schedule.",
		Confidence: 0.7,
	}
}

// ReportingLagDays is how far behind real time the POWER daily data runs
const ReportingLagDays = 3

// DateRange is a suggested query window for the farm data endpoint
type DateRange struct {
	Label string `json:"label"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// SuggestedDateRanges returns query windows that respect the reporting lag
func SuggestedDateRanges(now time.Time) (maxEnd string, ranges []DateRange) {
	end := now.AddDate(0, 0, -ReportingLagDays)
	maxEnd = end.Format(DateFormat)

	ranges = []DateRange{
		{Label: "last_week", Start: end.AddDate(0, 0, -7).Format(DateFormat), End: maxEnd},
		{Label: "last_month", Start: end.AddDate(0, -1, 0).Format(DateFormat), End: maxEnd},
		{Label: "last_quarter", Start: end.AddDate(0, -3, 0).Format(DateFormat), End: maxEnd},
	}
	return maxEnd, ranges
}
