package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/randomtoy/horoscope-go/internal/domain"
	"github.com/randomtoy/horoscope-go/internal/ports"
)

// GenerateResponse is the application-level output.
type GenerateResponse struct {
	Horoscope domain.Horoscope
	Model     string
	LatencyMS int64
}

// HoroscopeService renders the prompt for a request and asks the LLM for a reading.
type HoroscopeService struct {
	prompts   ports.PromptBuilder
	generator ports.Generator
	clock     domain.Clock
	model     string
	timeout   time.Duration
	logger    *slog.Logger
}

func NewHoroscopeService(pb ports.PromptBuilder, gen ports.Generator, clock domain.Clock, model string, timeout time.Duration, logger *slog.Logger) *HoroscopeService {
	return &HoroscopeService{
		prompts:   pb,
		generator: gen,
		clock:     clock,
		model:     model,
		timeout:   timeout,
		logger:    logger,
	}
}

// NewRequest validates parsed body fields against the service clock.
func (s *HoroscopeService) NewRequest(fields map[string]string) (domain.Request, error) {
	return domain.NewRequest(fields, s.clock)
}

func (s *HoroscopeService) Generate(ctx context.Context, req domain.Request) (GenerateResponse, error) {
	prompt, err := s.prompts.Build(req)
	if err != nil {
		return GenerateResponse{}, fmt.Errorf("build prompt: %w", err)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := s.generator.Generate(ctx, prompt)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return GenerateResponse{}, fmt.Errorf("generate: %w", err)
	}

	model := generatedModel(out.Model, s.model)
	s.logger.InfoContext(ctx, "horoscope generated",
		"sign", req.Sign,
		"date", req.Date,
		"model", model,
		"latency_ms", latency,
	)

	return GenerateResponse{
		Horoscope: out.Horoscope,
		Model:     model,
		LatencyMS: latency,
	}, nil
}

func generatedModel(fromLLM, fallback string) string {
	if fromLLM != "" {
		return fromLLM
	}
	return fallback
}
