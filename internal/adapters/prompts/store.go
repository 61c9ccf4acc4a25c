package prompts

import (
	"embed"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/randomtoy/horoscope-go/internal/domain"
	"github.com/randomtoy/horoscope-go/internal/ports"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const (
	horoscopeTemplate = "templates/horoscope.tmpl"
	systemPrompt      = "Retorne SOMENTE JSON válido conforme o schema."
)

// EmbeddedStore renders prompts from templates compiled into the binary.
type EmbeddedStore struct {
	once sync.Once
	tmpl *template.Template
	err  error
}

func NewEmbeddedStore() *EmbeddedStore {
	return &EmbeddedStore{}
}

func (s *EmbeddedStore) init() {
	raw, err := templateFS.ReadFile(horoscopeTemplate)
	if err != nil {
		s.err = fmt.Errorf("read embedded template %s: %w", horoscopeTemplate, err)
		return
	}
	s.tmpl, err = template.New("horoscope").
		Funcs(template.FuncMap{"join": strings.Join}).
		Parse(string(raw))
	if err != nil {
		s.err = fmt.Errorf("parse embedded template %s: %w", horoscopeTemplate, err)
	}
}

type promptData struct {
	Label  string
	Date   string
	Fields []string
}

func (s *EmbeddedStore) Build(req domain.Request) (ports.Prompt, error) {
	s.once.Do(s.init)
	if s.err != nil {
		return ports.Prompt{}, s.err
	}

	var b strings.Builder
	err := s.tmpl.Execute(&b, promptData{
		Label:  req.Label(),
		Date:   req.Date,
		Fields: domain.HoroscopeFields,
	})
	if err != nil {
		return ports.Prompt{}, fmt.Errorf("render prompt: %w", err)
	}

	return ports.Prompt{System: systemPrompt, User: b.String()}, nil
}
