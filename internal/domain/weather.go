package domain

// NASA POWER parameter names
const (
	ParamTemperature   = "T2M"
	ParamPrecipitation = "PRECTOTCORR"
	ParamHumidity      = "RH2M"
	ParamSolar         = "ALLSKY_SFC_SW_DWN"
	ParamWindSpeed     = "WS2M"
)

// WeatherData holds raw daily values keyed by parameter then date (YYYYMMDD)
type WeatherData struct {
	Latitude   float64                       `json:"latitude"`
	Longitude  float64                       `json:"longitude"`
	Parameters map[string]map[string]float64 `json:"parameters"`
}

// WeatherSummary aggregates a WeatherData window for decision making
type WeatherSummary struct {
	AvgTemperature   float64 `json:"avg_temperature"`
	MaxTemperature   float64 `json:"max_temperature"`
	MinTemperature   float64 `json:"min_temperature"`
	AvgPrecipitation float64 `json:"avg_precipitation"`
	MaxPrecipitation float64 `json:"max_precipitation"`
	AvgHumidity      float64 `json:"avg_humidity"`
	AvgSolar         float64 `json:"avg_solar"`
	AvgWindSpeed     float64 `json:"avg_wind_speed"`
	Days             int     `json:"days"`
}

// Recommendation is farming advice derived from weather data
type Recommendation struct {
	Type       string  `json:"type"`
	Message    string  `json:"message"`
	Confidence float64 `json:"confidence"`
}
