package domain

import "time"

// Scenario types triggered by weather conditions
const (
	ScenarioDrought  = "drought"
	ScenarioFlood    = "flood"
	ScenarioPest     = "pest"
	ScenarioHeat     = "heat_stress"
	ScenarioCold     = "cold_snap"
	ScenarioLowLight = "low_light"
	ScenarioWind     = "wind_damage"
)

// Scenario severities
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// ScenarioRewards is what a successful action pays out
type ScenarioRewards struct {
	XP    int `json:"xp"`
	Coins int `json:"coins"`
}

// ScenarioAction is one way a user can respond to a scenario
type ScenarioAction struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Cost        int             `json:"cost"`
	SuccessRate float64         `json:"success_rate"`
	Rewards     ScenarioRewards `json:"rewards"`
}

// Scenario is an adverse event attached to a crop
type Scenario struct {
	ID                string             `json:"id"`
	CropID            int                `json:"crop_id"`
	UserID            string             `json:"user_id"`
	Type              string             `json:"scenario_type"`
	Severity          string             `json:"severity"`
	Description       string             `json:"description"`
	ImpactDescription string             `json:"impact_description"`
	DataTrigger       map[string]float64 `json:"data_trigger,omitempty"`
	Actions           []ScenarioAction   `json:"actions"`
	AutoResolveHours  int                `json:"auto_resolve_hours"`
	Active            bool               `json:"active"`
	ResolutionAction  string             `json:"resolution_action,omitempty"`
	ResolvedAt        *time.Time         `json:"resolved_at,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
}

// Deadline returns the time after which the scenario auto-expires
func (s *Scenario) Deadline() time.Time {
	return s.CreatedAt.Add(time.Duration(s.AutoResolveHours) * time.Hour)
}

// FindAction returns the action with the given id, if any
func (s *Scenario) FindAction(actionID string) (*ScenarioAction, bool) {
	for i := range s.Actions {
		if s.Actions[i].ID == actionID {
			return &s.Actions[i], true
		}
	}
	return nil, false
}

// ScenarioResolution is the outcome of attempting a scenario action
type ScenarioResolution struct {
	ScenarioID string          `json:"scenario_id"`
	ActionID   string          `json:"action_id"`
	Success    bool            `json:"success"`
	CostPaid   int             `json:"cost_paid"`
	Rewards    ScenarioRewards `json:"rewards"`
	Message    string          `json:"message"`
}
