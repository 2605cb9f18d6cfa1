package scenario

import (
	"fmt"
	"sort"

	"github.com/fasalseva/FasalSeva_Go/internal/domain"
)

// Weather thresholds that trigger scenarios
const (
	droughtPrecipMax = 0.5
	droughtTempMin   = 30.0
	floodPrecipMin   = 15.0
	heatTempMin      = 40.0
	coldTempMax      = 10.0
	pestHumidityMin  = 80.0
	pestTempMin      = 25.0
	lowLightSolarMax = 3.0
	windSpeedMin     = 15.0
)

// Auto-resolve windows in hours per scenario type
var autoResolveHours = map[string]int{
	domain.ScenarioDrought:  48,
	domain.ScenarioFlood:    24,
	domain.ScenarioPest:     36,
	domain.ScenarioHeat:     12,
	domain.ScenarioCold:     18,
	domain.ScenarioLowLight: 72,
	domain.ScenarioWind:     6,
}

// Readings are the most recent values of each NASA parameter
type Readings struct {
	Temperature   float64
	Precipitation float64
	Humidity      float64
	Solar         float64
	WindSpeed     float64
}

// LatestReadings extracts the newest value of each parameter from the
// date-keyed series. Dates sort lexicographically in YYYYMMDD form.
func LatestReadings(data *domain.WeatherData) Readings {
	return Readings{
		Temperature:   latestValue(data.Parameters[domain.ParamTemperature]),
		Precipitation: latestValue(data.Parameters[domain.ParamPrecipitation]),
		Humidity:      latestValue(data.Parameters[domain.ParamHumidity]),
		Solar:         latestValue(data.Parameters[domain.ParamSolar]),
		WindSpeed:     latestValue(data.Parameters[domain.ParamWindSpeed]),
	}
}

func latestValue(series map[string]float64) float64 {
	if len(series) == 0 {
		return 0
	}
	dates := make([]string, 0, len(series))
	for date := range series {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return series[dates[len(dates)-1]]
}

// EvaluateRules builds a scenario for every threshold the readings cross
func EvaluateRules(r Readings, cropName string) []domain.Scenario {
	var scenarios []domain.Scenario

	if r.Precipitation < droughtPrecipMax && r.Temperature > droughtTempMin {
		scenarios = append(scenarios, droughtScenario(r, cropName))
	}
	if r.Precipitation > floodPrecipMin {
		scenarios = append(scenarios, floodScenario(r, cropName))
	}
	if r.Temperature > heatTempMin {
		scenarios = append(scenarios, heatScenario(r, cropName))
	}
	if r.Temperature < coldTempMax {
		scenarios = append(scenarios, coldScenario(r, cropName))
	}
	if r.Humidity > pestHumidityMin && r.Temperature > pestTempMin {
		scenarios = append(scenarios, pestScenario(r, cropName))
	}
	if r.Solar < lowLightSolarMax {
		scenarios = append(scenarios, lowLightScenario(r, cropName))
	}
	if r.WindSpeed > windSpeedMin {
		scenarios = append(scenarios, windScenario(r, cropName))
	}
	return scenarios
}

func droughtScenario(r Readings, cropName string) domain.Scenario {
	severity := domain.SeverityMedium
	if r.Precipitation < 0.1 && r.Temperature > 35 {
		severity = domain.SeverityHigh
	}
	return domain.Scenario{
		Type:              domain.ScenarioDrought,
		Severity:          severity,
		Description:       fmt.Sprintf("Severe drought conditions detected (Temp: %.1f°C, Rain: %.1fmm/day)", r.Temperature, r.Precipitation),
		ImpactDescription: fmt.Sprintf("Your %s are at risk of water stress and reduced yield", cropName),
		DataTrigger:       map[string]float64{"temperature": r.Temperature, "precipitation": r.Precipitation},
		Actions: []domain.ScenarioAction{
			{
				ID: "install_drip_irrigation", Name: "Install Drip Irrigation",
				Description: "Efficient water delivery system",
				Cost:        200, SuccessRate: 0.9,
				Rewards: domain.ScenarioRewards{XP: 100, Coins: 50},
			},
			{
				ID: "apply_mulch", Name: "Apply Organic Mulch",
				Description: "Retain soil moisture",
				Cost:        50, SuccessRate: 0.7,
				Rewards: domain.ScenarioRewards{XP: 60, Coins: 20},
			},
			{
				ID: "deep_watering", Name: "Deep Watering Schedule",
				Description: "Intensive watering program",
				Cost:        80, SuccessRate: 0.6,
				Rewards: domain.ScenarioRewards{XP: 40, Coins: 10},
			},
		},
		AutoResolveHours: autoResolveHours[domain.ScenarioDrought],
	}
}

func floodScenario(r Readings, cropName string) domain.Scenario {
	severity := domain.SeverityMedium
	if r.Precipitation > 25 {
		severity = domain.SeverityHigh
	}
	return domain.Scenario{
		Type:              domain.ScenarioFlood,
		Severity:          severity,
		Description:       fmt.Sprintf("Excessive rainfall detected (%.1fmm/day)", r.Precipitation),
		ImpactDescription: fmt.Sprintf("Risk of waterlogging and root damage to %s", cropName),
		DataTrigger:       map[string]float64{"precipitation": r.Precipitation},
		Actions: []domain.ScenarioAction{
			{
				ID: "improve_drainage", Name: "Improve Drainage System",
				Description: "Install better drainage to prevent waterlogging",
				Cost:        300, SuccessRate: 0.95,
				Rewards: domain.ScenarioRewards{XP: 120, Coins: 80},
			},
			{
				ID: "raised_beds", Name: "Create Raised Beds",
				Description: "Elevate crops above flood level",
				Cost:        150, SuccessRate: 0.8,
				Rewards: domain.ScenarioRewards{XP: 80, Coins: 40},
			},
			{
				ID: "fungicide_treatment", Name: "Apply Fungicide",
				Description: "Prevent root rot and fungal diseases",
				Cost:        100, SuccessRate: 0.7,
				Rewards: domain.ScenarioRewards{XP: 50, Coins: 20},
			},
		},
		AutoResolveHours: autoResolveHours[domain.ScenarioFlood],
	}
}

func pestScenario(r Readings, cropName string) domain.Scenario {
	severity := domain.SeverityMedium
	if r.Humidity > 90 && r.Temperature > 28 {
		severity = domain.SeverityHigh
	}
	return domain.Scenario{
		Type:              domain.ScenarioPest,
		Severity:          severity,
		Description:       fmt.Sprintf("High pest risk conditions (Humidity: %.1f%%, Temp: %.1f°C)", r.Humidity, r.Temperature),
		ImpactDescription: fmt.Sprintf("Increased risk of pest damage to %s", cropName),
		DataTrigger:       map[string]float64{"humidity": r.Humidity, "temperature": r.Temperature},
		Actions: []domain.ScenarioAction{
			{
				ID: "beneficial_insects", Name: "Release Beneficial Insects",
				Description: "Natural pest control with predator insects",
				Cost:        180, SuccessRate: 0.85,
				Rewards: domain.ScenarioRewards{XP: 90, Coins: 60},
			},
			{
				ID: "organic_spray", Name: "Organic Pesticide Spray",
				Description: "Eco-friendly pest control treatment",
				Cost:        120, SuccessRate: 0.75,
				Rewards: domain.ScenarioRewards{XP: 70, Coins: 30},
			},
			{
				ID: "companion_planting", Name: "Companion Planting",
				Description: "Plant pest-repelling companion crops",
				Cost:        80, SuccessRate: 0.6,
				Rewards: domain.ScenarioRewards{XP: 50, Coins: 25},
			},
		},
		AutoResolveHours: autoResolveHours[domain.ScenarioPest],
	}
}

func heatScenario(r Readings, cropName string) domain.Scenario {
	return domain.Scenario{
		Type:              domain.ScenarioHeat,
		Severity:          domain.SeverityHigh,
		Description:       fmt.Sprintf("Extreme heat warning (%.1f°C)", r.Temperature),
		ImpactDescription: fmt.Sprintf("Heat stress may damage %s", cropName),
		DataTrigger:       map[string]float64{"temperature": r.Temperature},
		Actions: []domain.ScenarioAction{
			{
				ID: "shade_cloth", Name: "Install Shade Cloth",
				Description: "Provide protection from intense heat",
				Cost:        120, SuccessRate: 0.8,
				Rewards: domain.ScenarioRewards{XP: 70, Coins: 35},
			},
			{
				ID: "misting_system", Name: "Misting System",
				Description: "Cool the air around plants",
				Cost:        200, SuccessRate: 0.9,
				Rewards: domain.ScenarioRewards{XP: 100, Coins: 50},
			},
		},
		AutoResolveHours: autoResolveHours[domain.ScenarioHeat],
	}
}

func coldScenario(r Readings, cropName string) domain.Scenario {
	return domain.Scenario{
		Type:              domain.ScenarioCold,
		Severity:          domain.SeverityMedium,
		Description:       fmt.Sprintf("Cold weather alert (%.1f°C)", r.Temperature),
		ImpactDescription: fmt.Sprintf("Low temperature may slow growth of %s", cropName),
		DataTrigger:       map[string]float64{"temperature": r.Temperature},
		Actions: []domain.ScenarioAction{
			{
				ID: "frost_protection", Name: "Frost Protection Cover",
				Description: "Protect plants from cold damage",
				Cost:        100, SuccessRate: 0.85,
				Rewards: domain.ScenarioRewards{XP: 60, Coins: 30},
			},
			{
				ID: "heating_system", Name: "Greenhouse Heating",
				Description: "Maintain optimal temperature",
				Cost:        250, SuccessRate: 0.95,
				Rewards: domain.ScenarioRewards{XP: 120, Coins: 70},
			},
		},
		AutoResolveHours: autoResolveHours[domain.ScenarioCold],
	}
}

func lowLightScenario(r Readings, cropName string) domain.Scenario {
	return domain.Scenario{
		Type:              domain.ScenarioLowLight,
		Severity:          domain.SeverityMedium,
		Description:       fmt.Sprintf("Low solar radiation detected (%.1f kWh/m²)", r.Solar),
		ImpactDescription: fmt.Sprintf("Reduced photosynthesis may affect %s growth", cropName),
		DataTrigger:       map[string]float64{"solar_radiation": r.Solar},
		Actions: []domain.ScenarioAction{
			{
				ID: "led_grow_lights", Name: "LED Grow Lights",
				Description: "Supplement natural sunlight",
				Cost:        300, SuccessRate: 0.9,
				Rewards: domain.ScenarioRewards{XP: 110, Coins: 80},
			},
			{
				ID: "reflective_mulch", Name: "Reflective Mulch",
				Description: "Increase light reflection to plants",
				Cost:        80, SuccessRate: 0.6,
				Rewards: domain.ScenarioRewards{XP: 40, Coins: 20},
			},
		},
		AutoResolveHours: autoResolveHours[domain.ScenarioLowLight],
	}
}

func windScenario(r Readings, cropName string) domain.Scenario {
	return domain.Scenario{
		Type:              domain.ScenarioWind,
		Severity:          domain.SeverityMedium,
		Description:       fmt.Sprintf("High wind speeds detected (%.1f m/s)", r.WindSpeed),
		ImpactDescription: fmt.Sprintf("Strong winds may damage %s", cropName),
		DataTrigger:       map[string]float64{"wind_speed": r.WindSpeed},
		Actions: []domain.ScenarioAction{
			{
				ID: "windbreak", Name: "Install Windbreak",
				Description: "Protect crops from strong winds",
				Cost:        180, SuccessRate: 0.85,
				Rewards: domain.ScenarioRewards{XP: 80, Coins: 40},
			},
			{
				ID: "crop_support", Name: "Crop Support Stakes",
				Description: "Provide structural support",
				Cost:        60, SuccessRate: 0.7,
				Rewards: domain.ScenarioRewards{XP: 40, Coins: 15},
			},
		},
		AutoResolveHours: autoResolveHours[domain.ScenarioWind],
	}
}
