package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/randomtoy/horoscope-go/internal/domain"
	"github.com/randomtoy/horoscope-go/internal/ports"
)

const schemaName = "horoscope"

// horoscopeSchema is sent with strict mode: four required strings, nothing else.
var horoscopeSchema = func() *jsonschema.Definition {
	props := make(map[string]jsonschema.Definition, len(domain.HoroscopeFields))
	for _, name := range domain.HoroscopeFields {
		props[name] = jsonschema.Definition{Type: jsonschema.String}
	}
	return &jsonschema.Definition{
		Type:                 jsonschema.Object,
		Properties:           props,
		Required:             domain.HoroscopeFields,
		AdditionalProperties: false,
	}
}()

// Client implements ports.Generator via the OpenAI chat completions API.
type Client struct {
	api         *goopenai.Client
	model       string
	temperature float32
	logger      *slog.Logger
}

// NewClient builds a client against baseURL. httpClient's transport is wrapped
// so upstream error bodies can be relayed verbatim.
func NewClient(httpClient *http.Client, apiKey, baseURL, model string, temperature float32, logger *slog.Logger) *Client {
	hc := *httpClient
	hc.Transport = &captureTransport{Base: httpClient.Transport}

	cfg := goopenai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimRight(baseURL, "/")
	cfg.HTTPClient = &hc

	return &Client{
		api:         goopenai.NewClientWithConfig(cfg),
		model:       model,
		temperature: temperature,
		logger:      logger,
	}
}

func (c *Client) Generate(ctx context.Context, p ports.Prompt) (ports.GenerateOutput, error) {
	ctx, sink := withErrorBody(ctx)

	resp, err := c.api.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: c.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: p.System},
			{Role: goopenai.ChatMessageRoleUser, Content: p.User},
		},
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &goopenai.ChatCompletionResponseFormatJSONSchema{
				Name:   schemaName,
				Schema: horoscopeSchema,
				Strict: true,
			},
		},
		Temperature: c.temperature,
	})
	if err != nil {
		return ports.GenerateOutput{}, upstreamError(err, sink.raw)
	}

	if len(resp.Choices) == 0 {
		return ports.GenerateOutput{}, &domain.ModelOutputError{Err: errors.New("no choices in response")}
	}

	msg := resp.Choices[0].Message
	if msg.Refusal != "" {
		return ports.GenerateOutput{}, &domain.ModelOutputError{Raw: msg.Refusal, Err: errors.New("model refused")}
	}

	h, err := decodeHoroscope(msg.Content)
	if err != nil {
		c.logger.WarnContext(ctx, "LLM returned unusable JSON", "model", c.model, "error", err)
		return ports.GenerateOutput{}, &domain.ModelOutputError{Raw: msg.Content, Err: err}
	}

	return ports.GenerateOutput{Horoscope: h, Model: resp.Model}, nil
}

func upstreamError(err error, raw []byte) error {
	status := 0
	var apiErr *goopenai.APIError
	var reqErr *goopenai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}
	return &domain.UpstreamError{StatusCode: status, Body: string(raw), Err: err}
}

// decodeHoroscope parses the model reply, rejecting unknown keys, trailing
// data and empty sections.
func decodeHoroscope(content string) (domain.Horoscope, error) {
	dec := json.NewDecoder(strings.NewReader(strings.TrimSpace(content)))
	dec.DisallowUnknownFields()

	var h domain.Horoscope
	if err := dec.Decode(&h); err != nil {
		return domain.Horoscope{}, fmt.Errorf("decode: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return domain.Horoscope{}, errors.New("decode: trailing data after JSON object")
	}
	if err := h.Validate(); err != nil {
		return domain.Horoscope{}, err
	}
	return h, nil
}
