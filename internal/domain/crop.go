package domain

import "time"

// Crop represents a planted crop on the user's grid
type Crop struct {
	ID              int        `json:"id"`
	UserID          string     `json:"user_id"`
	Name            string     `json:"name"`
	Row             int        `json:"position_row"`
	Col             int        `json:"position_col"`
	PlantedAt       time.Time  `json:"planted_at"`
	GrowthStage     float64    `json:"growth_stage"`
	WaterLevel      float64    `json:"water_level"`
	Health          float64    `json:"health"`
	FertilizerLevel float64    `json:"fertilizer_level"`
	Latitude        float64    `json:"latitude"`
	Longitude       float64    `json:"longitude"`
	ClimateBonus    float64    `json:"climate_bonus"`
	CareScore       float64    `json:"care_score"`
	TotalInvestment int        `json:"total_investment"`
	LastWatered     *time.Time `json:"last_watered,omitempty"`
	LastFertilized  *time.Time `json:"last_fertilized,omitempty"`
}

// CropStatus is a crop with derived presentation fields
type CropStatus struct {
	Crop
	ActiveScenarios int  `json:"active_scenarios"`
	ReadyToHarvest  bool `json:"ready_to_harvest"`
}

// Care action types recorded in the care log
const (
	CareActionPlant     = "plant"
	CareActionWater     = "water"
	CareActionFertilize = "fertilize"
	CareActionHarvest   = "harvest"
)

// CareLogEntry records a single care action against a crop
type CareLogEntry struct {
	ID              int       `json:"id"`
	CropID          int       `json:"crop_id"`
	UserID          string    `json:"user_id"`
	ActionType      string    `json:"action_type"`
	QualityLevel    string    `json:"quality_level,omitempty"`
	CostPaid        int       `json:"cost_paid"`
	EfficiencyScore float64   `json:"efficiency_score"`
	XPEarned        int       `json:"xp_earned"`
	CoinsEarned     int       `json:"coins_earned"`
	CreatedAt       time.Time `json:"created_at"`
}

// Farm is a named, immutable location owned by a user
type Farm struct {
	ID        int       `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CropType  string    `json:"crop_type,omitempty"`
	FarmSize  float64   `json:"farm_size,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
