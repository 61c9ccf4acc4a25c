package domain

import (
	"fmt"
	"time"
)

// Clock abstracts the current time for deterministic testing.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// DateLayout is the calendar date format accepted and produced by the service.
const DateLayout = "2006-01-02"

// Horoscope is the four-section daily reading relayed to callers.
type Horoscope struct {
	Relacionamentos string `json:"relacionamentos"`
	Sorte           string `json:"sorte"`
	Trabalho        string `json:"trabalho"`
	Astral          string `json:"astral"`
}

// HoroscopeFields lists the section keys in the order they are requested.
var HoroscopeFields = []string{"relacionamentos", "sorte", "trabalho", "astral"}

// Validate reports the first empty section.
func (h Horoscope) Validate() error {
	sections := map[string]string{
		"relacionamentos": h.Relacionamentos,
		"sorte":           h.Sorte,
		"trabalho":        h.Trabalho,
		"astral":          h.Astral,
	}
	for _, name := range HoroscopeFields {
		if sections[name] == "" {
			return fmt.Errorf("missing section %q", name)
		}
	}
	return nil
}
