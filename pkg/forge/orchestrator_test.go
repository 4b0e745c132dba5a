package forge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/theideaforge/forge/pkg/ai"
)

// stubAIClient answers every generation request through generate,
// which receives the resolved system prompt.
type stubAIClient struct {
	generate func(system, prompt string) (string, error)
}

func (s *stubAIClient) GenerateCompletion(_ context.Context, prompt string, opts ...ai.GenerateOption) (string, error) {
	var cfg ai.GenerateOptions
	for _, opt := range opts {
		opt(&cfg)
	}
	return s.generate(cfg.SystemPrompt, prompt)
}

func (s *stubAIClient) GenerateEmbeddings(context.Context, []string) ([][]float32, error) {
	return nil, errors.New("not implemented")
}

func (s *stubAIClient) LoadModels(context.Context) error { return nil }
func (s *stubAIClient) ResetMetrics()                    {}
func (s *stubAIClient) GetMetrics() ai.ModelMetrics      { return ai.ModelMetrics{} }

func pickFirst(int) int { return 0 }

func wantCategories() []string {
	return []string{
		CategoryExploreLink,
		CategoryDeconstruct,
		CategoryCrossPollinate,
		CategoryChallengeAssume,
		CategoryShiftPerspective,
	}
}

func TestGeneratePromptsNoTerms(t *testing.T) {
	o := NewOrchestrator(NewOrchestratorParams{
		Client: &stubAIClient{generate: func(string, string) (string, error) {
			t.Error("client must not be called without terms")
			return "", nil
		}},
		Pick: pickFirst,
	})

	got := o.GeneratePrompts(context.Background(), nil, "")
	if len(got) != 1 {
		t.Fatalf("got %d prompts, want 1", len(got))
	}
	if got[0].Source != SourceNotice {
		t.Errorf("source = %q, want %q", got[0].Source, SourceNotice)
	}
	if !strings.Contains(got[0].Text, "more descriptive text") {
		t.Errorf("notice text = %q", got[0].Text)
	}
}

func TestGeneratePromptsSingleTerm(t *testing.T) {
	o := NewOrchestrator(NewOrchestratorParams{
		Client: &stubAIClient{generate: func(string, string) (string, error) {
			return "generated question", nil
		}},
		Pick: pickFirst,
	})

	got := o.GeneratePrompts(context.Background(), []string{"jazz improvisation"}, "jazz improvisation as a practice")
	if len(got) != 5 {
		t.Fatalf("got %d prompts, want 5", len(got))
	}

	if got[0].Category != CategoryExploreLink || got[0].Source != SourceNotice {
		t.Errorf("first slot = %+v, want link notice", got[0])
	}
	if !strings.Contains(got[0].Text, "Not enough distinct concepts") {
		t.Errorf("link notice text = %q", got[0].Text)
	}

	for i, category := range wantCategories() {
		if got[i].Category != category {
			t.Errorf("slot %d category = %q, want %q", i, got[i].Category, category)
		}
	}
	for _, p := range got[1:] {
		if p.Source != SourceGenerated || p.Text != "generated question" {
			t.Errorf("prompt %+v, want generated text", p)
		}
	}
}

func TestGeneratePromptsFixedOrder(t *testing.T) {
	// Later categories answer faster than earlier ones; the output
	// order must not depend on completion order.
	markers := map[string]string{
		"lateral thinking":         "link",
		"radical deconstruction":   "deconstruct",
		"cross-domain pollination": "pollinate",
		"hidden biases":            "assumptions",
		"radical empathy":          "perspective",
	}
	delays := map[string]time.Duration{
		"link":        50 * time.Millisecond,
		"deconstruct": 40 * time.Millisecond,
		"pollinate":   30 * time.Millisecond,
		"assumptions": 20 * time.Millisecond,
		"perspective": 0,
	}

	o := NewOrchestrator(NewOrchestratorParams{
		Client: &stubAIClient{generate: func(system, _ string) (string, error) {
			for marker, tag := range markers {
				if strings.Contains(system, marker) {
					time.Sleep(delays[tag])
					return tag, nil
				}
			}
			return "", fmt.Errorf("unrecognized system prompt: %q", system)
		}},
		Pick: pickFirst,
	})

	got := o.GeneratePrompts(context.Background(), []string{"alpha", "beta"}, "alpha and beta together")
	if len(got) != 5 {
		t.Fatalf("got %d prompts, want 5", len(got))
	}

	wantTexts := []string{"link", "deconstruct", "pollinate", "assumptions", "perspective"}
	for i, want := range wantTexts {
		if got[i].Text != want {
			t.Errorf("slot %d text = %q, want %q", i, got[i].Text, want)
		}
		if got[i].Category != wantCategories()[i] {
			t.Errorf("slot %d category = %q, want %q", i, got[i].Category, wantCategories()[i])
		}
		if got[i].Source != SourceGenerated {
			t.Errorf("slot %d source = %q, want %q", i, got[i].Source, SourceGenerated)
		}
	}
}

func TestGeneratePromptsFallbacks(t *testing.T) {
	var calls atomic.Int64
	o := NewOrchestrator(NewOrchestratorParams{
		Client: &stubAIClient{generate: func(string, string) (string, error) {
			calls.Add(1)
			return "", ai.ErrUnavailable
		}},
		Pick:       pickFirst,
		MaxRetries: 2,
	})

	originalText := "alpha and beta together"
	got := o.GeneratePrompts(context.Background(), []string{"alpha", "beta"}, originalText)
	if len(got) != 5 {
		t.Fatalf("got %d prompts, want 5", len(got))
	}

	domain := unrelatedDomains[0]
	persona := perspectives[0]
	wantTexts := []string{
		linkFallback("alpha", "beta"),
		deconstructFallback("alpha"),
		crossPollinateFallback("alpha", domain),
		assumptionsFallback("alpha"),
		perspectiveFallback(originalText, persona),
	}

	for i, want := range wantTexts {
		if got[i].Source != SourceTemplate {
			t.Errorf("slot %d source = %q, want %q", i, got[i].Source, SourceTemplate)
		}
		if got[i].Text != want {
			t.Errorf("slot %d text = %q, want %q", i, got[i].Text, want)
		}
	}

	// 5 categories, 2 tries each.
	if got := calls.Load(); got != 10 {
		t.Errorf("client called %d times, want 10", got)
	}
}

func TestGeneratePromptsFallbackContent(t *testing.T) {
	o := NewOrchestrator(NewOrchestratorParams{
		Client: &stubAIClient{generate: func(string, string) (string, error) {
			return "", ai.ErrMalformedResponse
		}},
		Pick: pickFirst,
	})

	got := o.GeneratePrompts(context.Background(), []string{"alpha", "beta"}, "alpha and beta")

	if want := "Consider an unexpected connection between 'alpha' and 'beta'. How might 'alpha' lead to 'beta' if conventional logic was suspended?"; got[0].Text != want {
		t.Errorf("link fallback = %q, want %q", got[0].Text, want)
	}
	if want := "Let's deconstruct 'alpha'. What are its absolute core components? If you removed one essential part, would it still be 'alpha'? What would it become?"; got[1].Text != want {
		t.Errorf("deconstruct fallback = %q, want %q", got[1].Text, want)
	}
	if !strings.Contains(got[2].Text, "Imagine 'alpha' in the context of '") {
		t.Errorf("cross-pollination fallback = %q", got[2].Text)
	}
	if !strings.Contains(got[3].Text, "What core assumptions are you making about 'alpha'") {
		t.Errorf("assumptions fallback = %q", got[3].Text)
	}
	if !strings.Contains(got[4].Text, "perceived, approached, or solved by") {
		t.Errorf("perspective fallback = %q", got[4].Text)
	}
}

func TestGeneratePromptsDeterministicPick(t *testing.T) {
	pickLast := func(n int) int { return n - 1 }
	o := NewOrchestrator(NewOrchestratorParams{
		Client: &stubAIClient{generate: func(string, string) (string, error) {
			return "", ai.ErrUnavailable
		}},
		Pick: pickLast,
	})

	got := o.GeneratePrompts(context.Background(), []string{"alpha", "beta"}, "alpha and beta")

	domain := unrelatedDomains[len(unrelatedDomains)-1]
	persona := perspectives[len(perspectives)-1]
	if !strings.Contains(got[2].Text, domain) {
		t.Errorf("cross-pollination text %q does not mention domain %q", got[2].Text, domain)
	}
	if !strings.Contains(got[4].Text, persona) {
		t.Errorf("perspective text %q does not mention persona %q", got[4].Text, persona)
	}
}
