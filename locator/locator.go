// Package locator identifies the city shown in a photo through a
// single-shot vision call.
package locator

import (
	"context"

	"github.com/tripwise/tripwise/llm"
)

// Vision is the single-shot image capability of the completion provider.
type Vision interface {
	LocateCityFromImage(ctx context.Context, model string, image []byte, hint string) (*llm.VisionResult, error)
}

// Analysis is the city recognition outcome served to clients. On fallback
// the identification fields are empty and only RawText carries the model's
// literal reply.
type Analysis struct {
	City       string  `json:"city"`
	Country    string  `json:"country"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
	Fallback   bool    `json:"fallback"`
	RawText    string  `json:"raw_text"`
}

// Service wraps the vision capability.
type Service struct {
	vision Vision
	model  string
}

// New creates a locator service using the given vision model.
func New(vision Vision, model string) *Service {
	return &Service{vision: vision, model: model}
}

// Analyze submits the image and interprets the model's reply.
func (s *Service) Analyze(ctx context.Context, image []byte, hint string) (*Analysis, error) {
	result, err := s.vision.LocateCityFromImage(ctx, s.model, image, hint)
	if err != nil {
		return nil, err
	}

	if result.Fallback || result.Parsed == nil {
		return &Analysis{
			Fallback: true,
			RawText:  result.AssistantText,
		}, nil
	}

	return &Analysis{
		City:       result.Parsed.City,
		Country:    result.Parsed.Country,
		Confidence: result.Parsed.Confidence,
		Reasoning:  result.Parsed.Reasoning,
		Fallback:   false,
		RawText:    result.AssistantText,
	}, nil
}
