package llm

import (
	"context"
	"errors"
	"testing"
)

func TestGemini_DisabledWithoutKey(t *testing.T) {
	g, err := NewGemini(context.Background(), "  ", "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Enabled() {
		t.Fatalf("expected disabled client")
	}
	if g.model != DefaultModel {
		t.Fatalf("expected default model, got %s", g.model)
	}
	if _, err := g.Generate(context.Background(), "job_match", "hi"); !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}

func TestGemini_NilSafe(t *testing.T) {
	var g *Gemini
	if _, err := g.Generate(context.Background(), "job_match", "hi"); !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}
