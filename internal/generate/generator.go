// Package generate turns article text into flashcards through a pretrained
// generative model. The model is a black box: prompt text in, decoded text
// out, under a sampling configuration.
package generate

import (
	"context"
	"errors"
)

// Sampling bounds one generation call. Output is stochastic; there is no
// seeding contract.
type Sampling struct {
	Temperature     float32
	TopP            float32
	MaxOutputTokens int32
}

// Sampling profiles for the two prompt kinds.
var (
	ContentSampling = Sampling{Temperature: 0.7, TopP: 0.9, MaxOutputTokens: 500}
	SummarySampling = Sampling{Temperature: 0.6, TopP: 0.9, MaxOutputTokens: 600}
)

// Generator is the boundary to the language model.
type Generator interface {
	ModelName() string
	Generate(ctx context.Context, prompt string, params Sampling) (string, error)
}

// Common errors returned by the generate package.
var (
	// ErrGenerationFailed is returned when the model call fails outright.
	ErrGenerationFailed = errors.New("failed to generate cards from text")

	// ErrInvalidResponse is returned when the model response is empty or malformed.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the model blocks the content on safety grounds.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrInvalidConfig is returned when the generator configuration is invalid.
	ErrInvalidConfig = errors.New("invalid generator configuration")

	// ErrEmptyPrompt is returned when a prompt is empty after trimming.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")
)
