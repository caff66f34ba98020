package ai

import (
	"context"
	"errors"
)

// Provider names accepted in configuration.
const (
	ProviderGemini = "gemini"
	ProviderGroq   = "groq"
	ProviderNone   = "none"
)

// ErrUnavailable is returned by generators that have no backing service.
var ErrUnavailable = errors.New("text generation service is not configured")

// Request is a single prompt sent to a text-generation service.
type Request struct {
	// Model overrides the generator's default model when set.
	Model       string
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// TextGenerator turns a prompt into one text blob.
type TextGenerator interface {
	Generate(ctx context.Context, req Request) (string, error)
	Model() string
}

// Unavailable is a TextGenerator that always fails; consumers fall back to
// static content.
type Unavailable struct{}

func (Unavailable) Generate(context.Context, Request) (string, error) {
	return "", ErrUnavailable
}

func (Unavailable) Model() string { return "" }
