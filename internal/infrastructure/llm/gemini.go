package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"jobboard/internal/metrics"

	"github.com/cenkalti/backoff/v4"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.0-flash"

var (
	ErrDisabled      = errors.New("llm not configured")
	ErrEmptyResponse = errors.New("llm returned an empty response")
)

// Generator is the narrow text-in, text-out contract the usecases need.
type Generator interface {
	Generate(ctx context.Context, operation, prompt string) (string, error)
}

type Gemini struct {
	client     *genai.Client
	model      string
	maxRetries uint64
	logger     *log.Logger
}

// NewGemini returns a client that reports ErrDisabled on every call when
// apiKey is empty.
func NewGemini(ctx context.Context, apiKey, model string, logger *log.Logger) (*Gemini, error) {
	if strings.TrimSpace(model) == "" {
		model = DefaultModel
	}
	g := &Gemini{model: model, maxRetries: 2, logger: logger}
	if strings.TrimSpace(apiKey) == "" {
		return g, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	g.client = client
	return g, nil
}

func (g *Gemini) Enabled() bool {
	return g != nil && g.client != nil
}

func (g *Gemini) Generate(ctx context.Context, operation, prompt string) (string, error) {
	if !g.Enabled() {
		return "", ErrDisabled
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0.3),
		ResponseMIMEType: "application/json",
	}

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = 500 * time.Millisecond
	expo.MaxInterval = 4 * time.Second
	expo.MaxElapsedTime = 0
	b := backoff.WithContext(backoff.WithMaxRetries(expo, g.maxRetries), ctx)

	var text string
	err := backoff.Retry(func() error {
		res, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
		if err != nil {
			if g.logger != nil {
				g.logger.Printf("[LLM] %s model=%s error=%v", operation, g.model, err)
			}
			return err
		}
		text = strings.TrimSpace(res.Text())
		if text == "" {
			return backoff.Permanent(ErrEmptyResponse)
		}
		return nil
	}, b)
	if err != nil {
		metrics.LLMRequestsTotal.WithLabelValues(operation, "error").Inc()
		return "", err
	}
	metrics.LLMRequestsTotal.WithLabelValues(operation, "ok").Inc()
	return text, nil
}

var _ Generator = (*Gemini)(nil)
