package ports

import (
	"context"

	"github.com/randomtoy/horoscope-go/internal/domain"
)

// Prompt is the rendered instruction pair sent to the LLM.
type Prompt struct {
	System string
	User   string
}

// GenerateOutput is the horoscope returned by the LLM plus the model that produced it.
type GenerateOutput struct {
	Horoscope domain.Horoscope
	Model     string
}

// Generator produces a horoscope from a prompt via an LLM.
type Generator interface {
	Generate(ctx context.Context, p Prompt) (GenerateOutput, error)
}
