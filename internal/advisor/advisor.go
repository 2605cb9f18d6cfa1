package advisor

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fasalseva/FasalSeva_Go/internal/domain"
	"github.com/fasalseva/FasalSeva_Go/internal/logger"
	"github.com/fasalseva/FasalSeva_Go/internal/utils"
	"github.com/fasalseva/FasalSeva_Go/internal/weather"
)

// Advisor produces a farming recommendation from a weather summary
type Advisor interface {
	Advise(ctx context.Context, summary domain.WeatherSummary, cropName string) (domain.Recommendation, error)
}

// Pipeline tries each advisor in order and returns the first success.
// The final stage should be infallible so callers always get an answer.
type Pipeline struct {
	stages []Advisor
}

// NewPipeline creates an advisor pipeline from ordered stages
func NewPipeline(stages ...Advisor) *Pipeline {
	return &Pipeline{stages: stages}
}

// Advise runs the stages in order, falling through on error
func (p *Pipeline) Advise(ctx context.Context, summary domain.WeatherSummary, cropName string) (domain.Recommendation, error) {
	log := logger.FromContext(ctx)

	var lastErr error
	for i, stage := range p.stages {
		rec, err := stage.Advise(ctx, summary, cropName)
		if err == nil {
			return rec, nil
		}
		lastErr = err
		log.Warn("Advisor stage failed, falling through", "stage", i, "error", err)
	}
	return domain.Recommendation{}, fmt.Errorf("all advisor stages failed: %w", lastErr)
}

// HeuristicAdvisor applies the rule-based recommendation. It never fails.
type HeuristicAdvisor struct{}

// NewHeuristicAdvisor creates a HeuristicAdvisor
func NewHeuristicAdvisor() *HeuristicAdvisor {
	return &HeuristicAdvisor{}
}

// Advise returns the rule-based recommendation for the summary
func (a *HeuristicAdvisor) Advise(_ context.Context, summary domain.WeatherSummary, _ string) (domain.Recommendation, error) {
	return weather.Recommend(summary), nil
}

// Generator is the LLM surface the AI advisor needs
type Generator interface {
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// AIAdvisor asks the LLM for advice and validates the shape of its answer
type AIAdvisor struct {
	llm Generator
}

// NewAIAdvisor creates an AIAdvisor over the given generator
func NewAIAdvisor(llm Generator) *AIAdvisor {
	return &AIAdvisor{llm: llm}
}

type aiRecommendation struct {
	Type       string  `json:"type"`
	Message    string  `json:"message"`
	Confidence float64 `json:"confidence"`
}

// Advise prompts the LLM with the weather aggregates and parses its JSON reply
func (a *AIAdvisor) Advise(ctx context.Context, summary domain.WeatherSummary, cropName string) (domain.Recommendation, error) {
	prompt := fmt.Sprintf(`You are an agronomy assistant for small farmers.
Weather over the last %d days: average temperature %.1fC (min %.1f, max %.1f),
average daily rainfall %.1fmm, average humidity %.0f%%, average solar radiation
%.1f MJ/m2, average wind speed %.1f m/s. Crop: %s.
Reply with a single JSON object: {"type": "<short_category>", "message": "<one or two sentences of practical advice>", "confidence": <0.0-1.0>}`,
		summary.Days, summary.AvgTemperature, summary.MinTemperature, summary.MaxTemperature,
		summary.AvgPrecipitation, summary.AvgHumidity, summary.AvgSolar, summary.AvgWindSpeed, cropName)

	raw, err := a.llm.GenerateJSON(ctx, prompt)
	if err != nil {
		return domain.Recommendation{}, fmt.Errorf("ai advice failed: %w", err)
	}

	var rec aiRecommendation
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return domain.Recommendation{}, fmt.Errorf("ai advice was not valid JSON: %w", err)
	}
	if rec.Type == "" || rec.Message == "" {
		return domain.Recommendation{}, fmt.Errorf("ai advice missing required fields")
	}

	return domain.Recommendation{
		Type:       rec.Type,
		Message:    rec.Message,
		Confidence: utils.Clamp(rec.Confidence, 0.1, 1.0),
	}, nil
}
