package generate

import (
	"context"
	"fmt"
	"strings"

	"github.com/wikideck-hq/wikideck-forge/internal/logger"
	"google.golang.org/genai"
)

// GeminiGenerator implements Generator over the Gemini API. The client is
// constructed once at startup and owned by the app; there is no lazy
// first-use loading.
type GeminiGenerator struct {
	client *genai.Client
	model  string
	log    logger.Logger
}

// NewGeminiGenerator builds a generator for the named model.
func NewGeminiGenerator(ctx context.Context, apiKey, model string, log logger.Logger) (*GeminiGenerator, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: gemini api key cannot be empty", ErrInvalidConfig)
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", ErrInvalidConfig)
	}
	if log == nil {
		log = logger.NopLogger{}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create gemini client: %v", ErrInvalidConfig, err)
	}

	return &GeminiGenerator{client: client, model: model, log: log}, nil
}

// ModelName returns the configured model identifier.
func (g *GeminiGenerator) ModelName() string { return g.model }

// Generate sends one prompt and returns the decoded candidate text.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string, params Sampling) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", ErrEmptyPrompt
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(params.Temperature),
		TopP:            genai.Ptr(params.TopP),
		MaxOutputTokens: params.MaxOutputTokens,
	}

	g.log.DebugObj("model call starting", "generation_request", map[string]any{
		"model":         g.model,
		"prompt_length": len(prompt),
		"temperature":   params.Temperature,
	})

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", ErrInvalidResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: finish reason safety", ErrContentBlocked)
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("%w: empty content in response", ErrInvalidResponse)
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	text := b.String()
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: candidate carried no text parts", ErrInvalidResponse)
	}

	return text, nil
}
