package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// CityFallbackPhrase is the exact reply the vision prompt instructs the
// model to produce when it is not confident enough to name a city.
const CityFallbackPhrase = "I could not identify the city, please try another photo."

const cityLocatorPrompt = "You are an AI that recognizes cities. Analyze the image and identify the most likely city and country. " +
	"If you are not at least 60% sure of your prediction, reply EXACTLY with: " + CityFallbackPhrase + " " +
	"If you are confident enough (>=0.60), reply STRICTLY with a single JSON object with the keys: city, country, confidence (0-1), reasoning."

// CityGuess is the structured result parsed from the vision response.
type CityGuess struct {
	City       string  `json:"city"`
	Country    string  `json:"country"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// VisionResult carries the parsed guess plus the raw assistant text.
// Parsed is nil when the model declined or returned no usable JSON.
type VisionResult struct {
	Parsed        *CityGuess
	AssistantText string
	Fallback      bool
}

// Multimodal messages carry content as a list of typed parts rather than a
// plain string, so they get their own request types.
type visionMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type visionRequest struct {
	Model    string          `json:"model"`
	Messages []visionMessage `json:"messages"`
}

// Response content may come back as a string or as a list of parts
// depending on the upstream model.
type visionResponse struct {
	Choices []struct {
		Message struct {
			Content json.RawMessage `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// LocateCityFromImage submits one image plus an instruction prompt and
// interprets the reply: either the fixed fallback phrase, or a JSON object
// describing the recognized city. Junk output is treated as fallback.
func (c *Client) LocateCityFromImage(ctx context.Context, model string, image []byte, hint string) (*VisionResult, error) {
	userText := hint
	if userText == "" {
		userText = "Please identify the city in this photo."
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", sniffImageMime(image), base64.StdEncoding.EncodeToString(image))

	req := visionRequest{
		Model: model,
		Messages: []visionMessage{
			{Role: "system", Content: []contentPart{{Type: "text", Text: cityLocatorPrompt}}},
			{Role: "user", Content: []contentPart{
				{Type: "text", Text: userText},
				{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
			}},
		},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal vision request: %w", err)
	}

	respBody, err := c.post(ctx, body)
	if err != nil {
		return nil, err
	}

	var resp visionResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal vision response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices in vision response")
	}

	content := flattenContent(resp.Choices[0].Message.Content)

	if strings.TrimSpace(content) == CityFallbackPhrase {
		return &VisionResult{AssistantText: content, Fallback: true}, nil
	}

	parsed := parseCityGuess(content)
	return &VisionResult{
		Parsed:        parsed,
		AssistantText: content,
		Fallback:      parsed == nil,
	}, nil
}

// flattenContent accepts either a JSON string or a list of content parts
// and returns the concatenated text.
func flattenContent(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var parts []contentPart
	if err := json.Unmarshal(raw, &parts); err == nil {
		texts := make([]string, 0, len(parts))
		for _, p := range parts {
			if p.Text != "" {
				texts = append(texts, p.Text)
			}
		}
		return strings.Join(texts, "\n")
	}

	return ""
}

// parseCityGuess locates the first top-level JSON object in the text and
// decodes it. Returns nil when no parseable object is present.
func parseCityGuess(content string) *CityGuess {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil
	}

	var guess CityGuess
	dec := json.NewDecoder(bytes.NewReader([]byte(content[start : end+1])))
	if err := dec.Decode(&guess); err != nil {
		return nil
	}
	return &guess
}

func sniffImageMime(image []byte) string {
	switch {
	case bytes.HasPrefix(image, []byte("\x89PNG")):
		return "image/png"
	case bytes.HasPrefix(image, []byte("GIF")):
		return "image/gif"
	default:
		return "image/jpeg"
	}
}
