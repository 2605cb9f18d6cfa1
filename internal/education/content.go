package education

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fasalseva/FasalSeva_Go/internal/advisor"
	"github.com/fasalseva/FasalSeva_Go/internal/domain"
)

// Fact is a single personalized learning item
type Fact struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Content      string `json:"content"`
	Category     string `json:"category"`
	XP           int    `json:"xp"`
	Personalized bool   `json:"is_personalized"`
}

// Mission is a hands-on activity tied to the user's plants
type Mission struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	XP          int    `json:"xp"`
}

// Content is the full learning unit served to the client
type Content struct {
	Facts               []Fact            `json:"facts"`
	InteractiveMissions []Mission         `json:"interactive_missions"`
	ClimateInsights     map[string]string `json:"climate_insights"`
	SustainabilityTips  []string          `json:"sustainability_tips"`
}

// ContentInput describes the farm state content is generated from
type ContentInput struct {
	Crops     []domain.Crop
	Latitude  float64
	Longitude float64
	Summary   domain.WeatherSummary
}

// ContentGenerator produces a learning unit for a farm state
type ContentGenerator interface {
	GenerateContent(ctx context.Context, in ContentInput) (*Content, error)
}

// StaticGenerator builds content from templates. It never fails and
// serves as the fallback when no model is reachable.
type StaticGenerator struct{}

func NewStaticGenerator() *StaticGenerator {
	return &StaticGenerator{}
}

func (g *StaticGenerator) GenerateContent(_ context.Context, in ContentInput) (*Content, error) {
	avgHealth := 50.0
	if len(in.Crops) > 0 {
		total := 0.0
		for _, c := range in.Crops {
			total += c.Health
		}
		avgHealth = total / float64(len(in.Crops))
	}

	climateType := "extreme"
	if in.Summary.AvgTemperature >= 10 && in.Summary.AvgTemperature <= 30 {
		climateType = "temperate"
	}
	waterStatus := "moderate"
	switch {
	case in.Summary.AvgPrecipitation > 3:
		waterStatus = "wet"
	case in.Summary.AvgPrecipitation < 1:
		waterStatus = "dry"
	}

	facts := []Fact{
		{
			ID:    "location_climate",
			Title: "Your Local Climate",
			Content: fmt.Sprintf(
				"Your location shows %s temperatures (%.1f°C) with %s conditions (%.1fmm/day). NASA satellites monitor these conditions globally to help farmers optimize their growing strategies.",
				climateType, in.Summary.AvgTemperature, waterStatus, in.Summary.AvgPrecipitation),
			Category:     "Personal",
			XP:           20,
			Personalized: true,
		},
	}

	if len(in.Crops) > 0 {
		names := make([]string, 0, 3)
		for _, c := range in.Crops {
			names = append(names, c.Name)
			if len(names) == 3 {
				break
			}
		}
		healthStatus := "developing"
		switch {
		case avgHealth > 80:
			healthStatus = "thriving"
		case avgHealth < 50:
			healthStatus = "struggling"
		}
		facts = append(facts, Fact{
			ID:    "user_plants",
			Title: fmt.Sprintf("Your %s Analysis", strings.Join(names, ", ")),
			Content: fmt.Sprintf(
				"Your plants are currently %s (avg health: %.0f%%). NASA data shows this correlates with local temperature and moisture patterns. Learn how satellite monitoring helps predict plant stress before it's visible!",
				healthStatus, avgHealth),
			Category:     "Personal",
			XP:           25,
			Personalized: true,
		})
	}

	return &Content{
		Facts:               facts,
		InteractiveMissions: []Mission{},
		ClimateInsights:     map[string]string{"summary": "Keep monitoring your plant health levels."},
		SustainabilityTips:  []string{"Water plants regularly", "Use fertilizer wisely"},
	}, nil
}

// AIGenerator asks the LLM for personalized content
type AIGenerator struct {
	llm advisor.Generator
}

func NewAIGenerator(llm advisor.Generator) *AIGenerator {
	return &AIGenerator{llm: llm}
}

func (g *AIGenerator) GenerateContent(ctx context.Context, in ContentInput) (*Content, error) {
	raw, err := g.llm.GenerateJSON(ctx, buildContentPrompt(in))
	if err != nil {
		return nil, fmt.Errorf("generating educational content: %w", err)
	}

	var content Content
	if err := json.Unmarshal([]byte(raw), &content); err != nil {
		return nil, fmt.Errorf("parsing educational content: %w", err)
	}
	if len(content.Facts) == 0 {
		return nil, fmt.Errorf("model returned no facts")
	}
	if content.ClimateInsights == nil {
		content.ClimateInsights = map[string]string{}
	}
	if content.SustainabilityTips == nil {
		content.SustainabilityTips = []string{}
	}
	if content.InteractiveMissions == nil {
		content.InteractiveMissions = []Mission{}
	}
	return &content, nil
}

func buildContentPrompt(in ContentInput) string {
	var plants strings.Builder
	for i, c := range in.Crops {
		if i == 5 {
			break
		}
		fmt.Fprintf(&plants, "- %s: %.0f%% health, %.0f%% water, %.0f%% fertilizer\n",
			c.Name, c.Health, c.WaterLevel, c.FertilizerLevel)
	}
	plantText := plants.String()
	if plantText == "" {
		plantText = "No plants currently growing"
	}

	return fmt.Sprintf(`You are a NASA Earth science educator creating personalized learning content. Generate educational content that connects the user's real farming data with NASA satellite observations.

USER'S LOCATION: Lat %.4f, Lon %.4f

NASA DATA FOR THIS LOCATION:
- Temperature: %.1f°C
- Precipitation: %.1f mm/day
- Humidity: %.1f%%
- Solar Radiation: %.1f kWh/m²

USER'S PLANTS:
%s
User level: %d

Create educational content in JSON format with:
1. "facts": Array of 3-4 personalized learning facts that connect NASA data to their specific plants and location
2. "interactive_missions": Array of 2-3 hands-on activities using their plant data
3. "climate_insights": Location-specific climate patterns and how they affect the user's crops
4. "sustainability_tips": Actionable advice based on their current plant health and local conditions

Make it engaging, scientifically accurate, and directly relevant to their farming experience. Include XP rewards (15-30 points per item).`,
		in.Latitude, in.Longitude,
		in.Summary.AvgTemperature, in.Summary.AvgPrecipitation,
		in.Summary.AvgHumidity, in.Summary.AvgSolar,
		plantText, len(in.Crops))
}
