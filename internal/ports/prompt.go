package ports

import "github.com/randomtoy/horoscope-go/internal/domain"

// PromptBuilder renders the prompt for a validated request.
type PromptBuilder interface {
	Build(req domain.Request) (Prompt, error)
}
