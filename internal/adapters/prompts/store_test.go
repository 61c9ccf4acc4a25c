package prompts_test

import (
	"strings"
	"testing"

	"github.com/randomtoy/horoscope-go/internal/adapters/prompts"
	"github.com/randomtoy/horoscope-go/internal/domain"
)

func TestEmbeddedStore_Build_UsesLabelAndDate(t *testing.T) {
	store := prompts.NewEmbeddedStore()

	p, err := store.Build(domain.Request{Sign: "aries", SignLabel: "Áries", Date: "2024-01-01"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"Áries", "2024-01-01", "relacionamentos, sorte, trabalho, astral"} {
		if !strings.Contains(p.User, want) {
			t.Errorf("prompt missing %q:\n%s", want, p.User)
		}
	}
	if strings.Contains(p.User, "aries,") {
		t.Errorf("prompt should use the label, not the sign code:\n%s", p.User)
	}
	if p.System == "" {
		t.Error("expected a system instruction")
	}
}

func TestEmbeddedStore_Build_FallsBackToSign(t *testing.T) {
	store := prompts.NewEmbeddedStore()

	p, err := store.Build(domain.Request{Sign: "leao", Date: "2025-07-20"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(p.User, "signo leao, data 2025-07-20") {
		t.Errorf("unexpected prompt:\n%s", p.User)
	}
}

func TestEmbeddedStore_Build_Deterministic(t *testing.T) {
	store := prompts.NewEmbeddedStore()
	req := domain.Request{Sign: "virgo", Date: "2024-02-29"}

	a, _ := store.Build(req)
	b, _ := store.Build(req)
	if a != b {
		t.Error("expected identical prompts for identical requests")
	}
}
