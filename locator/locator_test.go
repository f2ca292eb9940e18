package locator_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripwise/tripwise/llm"
	"github.com/tripwise/tripwise/locator"
)

type stubVision struct {
	lastModel string
	lastHint  string
	result    *llm.VisionResult
	err       error
}

func (s *stubVision) LocateCityFromImage(_ context.Context, model string, _ []byte, hint string) (*llm.VisionResult, error) {
	s.lastModel, s.lastHint = model, hint
	return s.result, s.err
}

func TestAnalyzeRecognizedCity(t *testing.T) {
	vision := &stubVision{result: &llm.VisionResult{
		Parsed: &llm.CityGuess{
			City:       "Paris",
			Country:    "France",
			Confidence: 0.91,
			Reasoning:  "Eiffel Tower",
		},
		AssistantText: `{"city":"Paris"}`,
	}}
	svc := locator.New(vision, "vision-model")

	analysis, err := svc.Analyze(context.Background(), []byte("img"), "a hint")
	require.NoError(t, err)

	assert.Equal(t, "vision-model", vision.lastModel)
	assert.Equal(t, "a hint", vision.lastHint)
	assert.Equal(t, "Paris", analysis.City)
	assert.Equal(t, "France", analysis.Country)
	assert.Equal(t, 0.91, analysis.Confidence)
	assert.False(t, analysis.Fallback)
}

func TestAnalyzeFallback(t *testing.T) {
	vision := &stubVision{result: &llm.VisionResult{
		AssistantText: llm.CityFallbackPhrase,
		Fallback:      true,
	}}
	svc := locator.New(vision, "vision-model")

	analysis, err := svc.Analyze(context.Background(), []byte("img"), "")
	require.NoError(t, err)

	assert.True(t, analysis.Fallback)
	assert.Empty(t, analysis.City)
	assert.Equal(t, llm.CityFallbackPhrase, analysis.RawText)
}

func TestAnalyzePropagatesError(t *testing.T) {
	vision := &stubVision{err: fmt.Errorf("upstream unavailable")}
	svc := locator.New(vision, "vision-model")

	_, err := svc.Analyze(context.Background(), []byte("img"), "")
	assert.Error(t, err)
}
