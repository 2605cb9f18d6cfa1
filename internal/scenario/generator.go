package scenario

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/fasalseva/FasalSeva_Go/internal/advisor"
	"github.com/fasalseva/FasalSeva_Go/internal/domain"
	"github.com/fasalseva/FasalSeva_Go/internal/logger"
	"github.com/fasalseva/FasalSeva_Go/internal/weather"
)

// Input carries everything a generation strategy needs
type Input struct {
	Crop     *domain.Crop
	Weather  *domain.WeatherData
	Readings Readings
	Now      time.Time
}

// Generator produces weather-driven scenarios for a crop
type Generator interface {
	Generate(ctx context.Context, in Input) ([]domain.Scenario, error)
}

// RulesGenerator applies fixed weather thresholds
type RulesGenerator struct{}

func NewRulesGenerator() *RulesGenerator {
	return &RulesGenerator{}
}

func (g *RulesGenerator) Generate(_ context.Context, in Input) ([]domain.Scenario, error) {
	return EvaluateRules(in.Readings, in.Crop.Name), nil
}

// Pipeline tries each generator in order and returns the first non-empty
// result. A stage error is logged and the next stage is tried.
type Pipeline struct {
	stages []Generator
}

func NewPipeline(stages ...Generator) *Pipeline {
	return &Pipeline{stages: stages}
}

func (p *Pipeline) Generate(ctx context.Context, in Input) ([]domain.Scenario, error) {
	log := logger.FromContext(ctx)
	for _, stage := range p.stages {
		scenarios, err := stage.Generate(ctx, in)
		if err != nil {
			log.Warn("scenario generator stage failed, trying next", "error", err)
			continue
		}
		if len(scenarios) > 0 {
			return scenarios, nil
		}
	}
	return nil, nil
}

// AIGenerator asks the LLM for scenarios grounded in the weather window
type AIGenerator struct {
	llm advisor.Generator
}

func NewAIGenerator(llm advisor.Generator) *AIGenerator {
	return &AIGenerator{llm: llm}
}

type aiAction struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	CostCoins   float64                 `json:"cost_coins"`
	SuccessRate float64                 `json:"success_rate"`
	Rewards     *domain.ScenarioRewards `json:"rewards"`
}

type aiScenario struct {
	ID                string     `json:"id"`
	Type              string     `json:"scenario_type"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	ImpactDescription string     `json:"impact_description"`
	Severity          string     `json:"severity"`
	Actions           []aiAction `json:"actions"`
}

func (g *AIGenerator) Generate(ctx context.Context, in Input) ([]domain.Scenario, error) {
	if in.Weather == nil {
		return nil, fmt.Errorf("no weather data for ai generation")
	}
	raw, err := g.llm.GenerateJSON(ctx, buildPrompt(in))
	if err != nil {
		return nil, fmt.Errorf("generating scenarios: %w", err)
	}

	var parsed []aiScenario
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		// Some models wrap the list in an object
		var wrapper struct {
			Scenarios []aiScenario `json:"scenarios"`
		}
		if err2 := json.Unmarshal([]byte(raw), &wrapper); err2 != nil || len(wrapper.Scenarios) == 0 {
			return nil, fmt.Errorf("parsing ai scenarios: %w", err)
		}
		parsed = wrapper.Scenarios
	}

	var scenarios []domain.Scenario
	for _, raw := range parsed {
		if raw.ID == "" || raw.Type == "" || raw.Title == "" || raw.Description == "" {
			continue
		}
		scenarios = append(scenarios, normalizeScenario(raw))
	}
	return scenarios, nil
}

func buildPrompt(in Input) string {
	summary := weather.Summarize(in.Weather)
	return fmt.Sprintf(`You are an expert agricultural advisor and climate scientist. Based on real NASA weather data and crop conditions, generate 1-3 realistic farming scenarios that a farmer might face.

CURRENT WEATHER DATA:
- Latest temperature: %.1f°C (7-day avg %.1f, min %.1f, max %.1f)
- Latest precipitation: %.1fmm/day (7-day avg %.1f)
- Latest humidity: %.1f%%
- Latest solar radiation: %.1f kWh/m²
- Latest wind speed: %.1f m/s

CROP INFORMATION:
- Crop: %s
- Growth Stage: %.0f%%
- Current Health: %.0f%%
- Water Level: %.0f%%
- Fertilizer Level: %.0f%%

LOCATION CONTEXT:
- Climate Region: %s
- Current Season: %s
- Coordinates: (%.4f, %.4f)

Return your response as a JSON array with this exact structure:
[
  {
    "id": "unique_scenario_id",
    "scenario_type": "drought|flood|pest|heat_stress|cold_snap|low_light|wind_damage",
    "title": "Brief scenario title",
    "description": "Detailed description of the farming challenge",
    "impact_description": "How this affects the specific crop",
    "severity": "low|medium|high",
    "actions": [
      {
        "id": "action_id",
        "name": "Action Name",
        "description": "Detailed action description",
        "cost_coins": 50,
        "success_rate": 0.85,
        "rewards": {"xp": 60, "coins": 30}
      }
    ]
  }
]

Generate scenarios that are scientifically grounded for the current weather, appropriate for %s, and educational for the farmer.`,
		in.Readings.Temperature, summary.AvgTemperature, summary.MinTemperature, summary.MaxTemperature,
		in.Readings.Precipitation, summary.AvgPrecipitation,
		in.Readings.Humidity,
		in.Readings.Solar,
		in.Readings.WindSpeed,
		in.Crop.Name,
		in.Crop.GrowthStage, in.Crop.Health, in.Crop.WaterLevel, in.Crop.FertilizerLevel,
		climateRegion(in.Crop.Latitude), season(in.Crop.Latitude, in.Now),
		in.Crop.Latitude, in.Crop.Longitude,
		in.Crop.Name)
}

func normalizeScenario(raw aiScenario) domain.Scenario {
	severity := raw.Severity
	switch severity {
	case domain.SeverityLow, domain.SeverityMedium, domain.SeverityHigh:
	default:
		severity = domain.SeverityMedium
	}
	impact := raw.ImpactDescription
	if impact == "" {
		impact = raw.Description
	}
	hours, ok := autoResolveHours[raw.Type]
	if !ok {
		hours = 24
	}

	actions := make([]domain.ScenarioAction, 0, len(raw.Actions))
	for i, a := range raw.Actions {
		rewards := domain.ScenarioRewards{XP: 50, Coins: 25}
		if a.Rewards != nil {
			rewards = *a.Rewards
		}
		id := a.ID
		if id == "" {
			id = fmt.Sprintf("action_%d", i)
		}
		name := a.Name
		if name == "" {
			name = fmt.Sprintf("Action %d", i+1)
		}
		actions = append(actions, domain.ScenarioAction{
			ID:          id,
			Name:        name,
			Description: a.Description,
			Cost:        int(math.Max(1, a.CostCoins)),
			SuccessRate: math.Min(1.0, math.Max(0.1, a.SuccessRate)),
			Rewards:     rewards,
		})
	}
	if len(actions) == 0 {
		actions = []domain.ScenarioAction{defaultAction(raw.Type)}
	}

	return domain.Scenario{
		Type:              raw.Type,
		Severity:          severity,
		Description:       raw.Description,
		ImpactDescription: impact,
		Actions:           actions,
		AutoResolveHours:  hours,
	}
}

func defaultAction(scenarioType string) domain.ScenarioAction {
	switch scenarioType {
	case domain.ScenarioDrought:
		return domain.ScenarioAction{
			ID: "water_management", Name: "Implement Water Conservation",
			Description: "Apply water-saving techniques to help crops survive dry conditions",
			Cost:        100, SuccessRate: 0.8,
			Rewards: domain.ScenarioRewards{XP: 50, Coins: 25},
		}
	case domain.ScenarioFlood:
		return domain.ScenarioAction{
			ID: "drainage_improvement", Name: "Improve Drainage",
			Description: "Install better drainage systems to handle excess water",
			Cost:        150, SuccessRate: 0.7,
			Rewards: domain.ScenarioRewards{XP: 60, Coins: 30},
		}
	case domain.ScenarioPest:
		return domain.ScenarioAction{
			ID: "pest_control", Name: "Integrated Pest Management",
			Description: "Apply sustainable pest control methods",
			Cost:        80, SuccessRate: 0.85,
			Rewards: domain.ScenarioRewards{XP: 55, Coins: 35},
		}
	default:
		return domain.ScenarioAction{
			ID: "general_care", Name: "General Crop Care",
			Description: "Apply appropriate farming techniques for this situation",
			Cost:        75, SuccessRate: 0.75,
			Rewards: domain.ScenarioRewards{XP: 45, Coins: 20},
		}
	}
}

func climateRegion(latitude float64) string {
	abs := math.Abs(latitude)
	switch {
	case abs >= 66.5:
		return "polar"
	case abs >= 23.5:
		return "temperate"
	default:
		return "tropical"
	}
}

func season(latitude float64, now time.Time) string {
	month := now.Month()
	north := latitude >= 0
	switch month {
	case time.December, time.January, time.February:
		if north {
			return "winter"
		}
		return "summer"
	case time.March, time.April, time.May:
		if north {
			return "spring"
		}
		return "autumn"
	case time.June, time.July, time.August:
		if north {
			return "summer"
		}
		return "winter"
	default:
		if north {
			return "autumn"
		}
		return "spring"
	}
}
