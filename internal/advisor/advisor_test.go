package advisor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fasalseva/FasalSeva_Go/internal/domain"
	"github.com/fasalseva/FasalSeva_Go/internal/weather"
)

// fakeGenerator returns canned responses for testing the AI advisor
type fakeGenerator struct {
	response string
	err      error
}

func (f *fakeGenerator) GenerateJSON(_ context.Context, _ string) (string, error) {
	return f.response, f.err
}

func drySummary() domain.WeatherSummary {
	return domain.WeatherSummary{Days: 7, AvgTemperature: 25, AvgPrecipitation: 1}
}

func TestAIAdvisorParsesResponse(t *testing.T) {
	gen := &fakeGenerator{response: `{"type":"mulching","message":"Apply mulch to retain moisture.","confidence":0.9}`}
	a := NewAIAdvisor(gen)

	rec, err := a.Advise(context.Background(), drySummary(), "Tomato")
	require.NoError(t, err)
	assert.Equal(t, "mulching", rec.Type)
	assert.Equal(t, 0.9, rec.Confidence)
}

func TestAIAdvisorClampsConfidence(t *testing.T) {
	gen := &fakeGenerator{response: `{"type":"x","message":"y","confidence":4.2}`}
	a := NewAIAdvisor(gen)

	rec, err := a.Advise(context.Background(), drySummary(), "Wheat")
	require.NoError(t, err)
	assert.Equal(t, 1.0, rec.Confidence)

	gen.response = `{"type":"x","message":"y","confidence":-1}`
	rec, err = a.Advise(context.Background(), drySummary(), "Wheat")
	require.NoError(t, err)
	assert.Equal(t, 0.1, rec.Confidence)
}

func TestAIAdvisorRejectsBadJSON(t *testing.T) {
	a := NewAIAdvisor(&fakeGenerator{response: `not json`})
	_, err := a.Advise(context.Background(), drySummary(), "Corn")
	assert.Error(t, err)

	a = NewAIAdvisor(&fakeGenerator{response: `{"confidence":0.5}`})
	_, err = a.Advise(context.Background(), drySummary(), "Corn")
	assert.Error(t, err)
}

func TestPipelineFallsBackToHeuristic(t *testing.T) {
	failing := NewAIAdvisor(&fakeGenerator{err: errors.New("connection refused")})
	pipeline := NewPipeline(failing, NewHeuristicAdvisor())

	rec, err := pipeline.Advise(context.Background(), drySummary(), "Tomato")
	require.NoError(t, err)
	assert.Equal(t, weather.RecommendationIrrigation, rec.Type)
	assert.Equal(t, 0.8, rec.Confidence)
}

func TestPipelinePrefersFirstStage(t *testing.T) {
	ai := NewAIAdvisor(&fakeGenerator{response: `{"type":"custom","message":"do the thing","confidence":0.6}`})
	pipeline := NewPipeline(ai, NewHeuristicAdvisor())

	rec, err := pipeline.Advise(context.Background(), drySummary(), "Tomato")
	require.NoError(t, err)
	assert.Equal(t, "custom", rec.Type)
}
