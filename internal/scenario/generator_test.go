package scenario

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fasalseva/FasalSeva_Go/internal/domain"
)

type fakeLLM struct {
	response string
	err      error
	prompt   string
}

func (f *fakeLLM) GenerateJSON(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func generatorInput() Input {
	return Input{
		Crop: &domain.Crop{
			ID: 1, UserID: "user-1", Name: "Tomato",
			GrowthStage: 40, Health: 80, WaterLevel: 55, FertilizerLevel: 45,
			Latitude: 28.6, Longitude: 77.2,
		},
		Weather: &domain.WeatherData{
			Parameters: map[string]map[string]float64{
				domain.ParamTemperature:   {"20260301": 33.0},
				domain.ParamPrecipitation: {"20260301": 0.2},
			},
		},
		Readings: Readings{Temperature: 33, Precipitation: 0.2, Humidity: 40, Solar: 20, WindSpeed: 3},
		Now:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestAIGeneratorParsesAndNormalizes(t *testing.T) {
	llm := &fakeLLM{response: `[
		{
			"id": "ai_drought_1",
			"scenario_type": "drought",
			"title": "Dry Spell Ahead",
			"description": "An extended dry period threatens the crop.",
			"severity": "extreme",
			"actions": [
				{"id": "mulch", "name": "Mulch Beds", "cost_coins": 0, "success_rate": 1.8}
			]
		},
		{"id": "missing_fields", "scenario_type": "flood"}
	]`}

	scenarios, err := NewAIGenerator(llm).Generate(context.Background(), generatorInput())
	require.NoError(t, err)
	require.Len(t, scenarios, 1)

	sc := scenarios[0]
	assert.Equal(t, domain.ScenarioDrought, sc.Type)
	assert.Equal(t, domain.SeverityMedium, sc.Severity, "unknown severity falls back to medium")
	assert.Equal(t, "An extended dry period threatens the crop.", sc.ImpactDescription)
	assert.Equal(t, 48, sc.AutoResolveHours)

	require.Len(t, sc.Actions, 1)
	assert.Equal(t, 1, sc.Actions[0].Cost, "cost floored at 1")
	assert.Equal(t, 1.0, sc.Actions[0].SuccessRate, "success rate clamped to 1.0")
	assert.Equal(t, domain.ScenarioRewards{XP: 50, Coins: 25}, sc.Actions[0].Rewards)

	assert.Contains(t, llm.prompt, "Tomato")
	assert.Contains(t, llm.prompt, "temperate")
	assert.Contains(t, llm.prompt, "spring")
}

func TestAIGeneratorSynthesizesDefaultAction(t *testing.T) {
	llm := &fakeLLM{response: `[
		{
			"id": "ai_pest_1",
			"scenario_type": "pest",
			"title": "Aphid Outbreak",
			"description": "Humid conditions favour aphids.",
			"severity": "high",
			"actions": []
		}
	]`}

	scenarios, err := NewAIGenerator(llm).Generate(context.Background(), generatorInput())
	require.NoError(t, err)
	require.Len(t, scenarios, 1)
	require.Len(t, scenarios[0].Actions, 1)

	action := scenarios[0].Actions[0]
	assert.Equal(t, "pest_control", action.ID)
	assert.Equal(t, 80, action.Cost)
	assert.Equal(t, 0.85, action.SuccessRate)
	assert.Equal(t, domain.ScenarioRewards{XP: 55, Coins: 35}, action.Rewards)
}

func TestAIGeneratorUnwrapsObjectResponse(t *testing.T) {
	llm := &fakeLLM{response: `{"scenarios": [
		{"id": "s1", "scenario_type": "wind_damage", "title": "Gale Warning", "description": "Strong winds expected."}
	]}`}

	scenarios, err := NewAIGenerator(llm).Generate(context.Background(), generatorInput())
	require.NoError(t, err)
	require.Len(t, scenarios, 1)
	assert.Equal(t, domain.ScenarioWind, scenarios[0].Type)
	assert.Equal(t, 6, scenarios[0].AutoResolveHours)
}

func TestAIGeneratorMalformedResponse(t *testing.T) {
	llm := &fakeLLM{response: "sorry, I cannot help with that"}
	_, err := NewAIGenerator(llm).Generate(context.Background(), generatorInput())
	assert.Error(t, err)
}

type stubGenerator struct {
	scenarios []domain.Scenario
	err       error
	calls     int
}

func (g *stubGenerator) Generate(_ context.Context, _ Input) ([]domain.Scenario, error) {
	g.calls++
	return g.scenarios, g.err
}

func TestPipelineFallsBackOnError(t *testing.T) {
	ai := &stubGenerator{err: errors.New("model unreachable")}
	rules := &stubGenerator{scenarios: []domain.Scenario{{Type: domain.ScenarioDrought}}}

	scenarios, err := NewPipeline(ai, rules).Generate(context.Background(), generatorInput())
	require.NoError(t, err)
	require.Len(t, scenarios, 1)
	assert.Equal(t, 1, ai.calls)
	assert.Equal(t, 1, rules.calls)
}

func TestPipelineFirstNonEmptyWins(t *testing.T) {
	ai := &stubGenerator{scenarios: []domain.Scenario{{Type: domain.ScenarioPest}}}
	rules := &stubGenerator{scenarios: []domain.Scenario{{Type: domain.ScenarioDrought}}}

	scenarios, err := NewPipeline(ai, rules).Generate(context.Background(), generatorInput())
	require.NoError(t, err)
	require.Len(t, scenarios, 1)
	assert.Equal(t, domain.ScenarioPest, scenarios[0].Type)
	assert.Equal(t, 0, rules.calls)
}

func TestClimateRegionAndSeason(t *testing.T) {
	assert.Equal(t, "tropical", climateRegion(10))
	assert.Equal(t, "temperate", climateRegion(-45))
	assert.Equal(t, "polar", climateRegion(70))

	july := time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "summer", season(40, july))
	assert.Equal(t, "winter", season(-35, july))

	december := time.Date(2026, 12, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "winter", season(40, december))
	assert.Equal(t, "summer", season(-35, december))
}
