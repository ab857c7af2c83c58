// Package gemini is the secondary provider. It is preferred for adaptation and
// scoring while available and signals quota or overload with ai.ErrUnavailable.
package gemini

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"

	"github.com/spigell/jobassist/internal/ai"
	"github.com/spigell/jobassist/internal/ai/prompts"
)

// Name identifies the provider in logs and results.
const Name = "gemini"

const (
	generateTimeout = 120 * time.Second
	scoreTimeout    = 60 * time.Second
	pingTimeout     = 10 * time.Second
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error)
	GenerateText(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error)
	Ping(ctx context.Context) (ai.Probe, error)
	Model() string
}

// Provider implements ai.Adapter on top of a Generator.
type Provider struct {
	generator contentGenerator
}

func NewProvider(generator contentGenerator) *Provider {
	return &Provider{generator: generator}
}

func (p *Provider) Name() string { return Name }

func (p *Provider) Model() string { return p.generator.Model() }

// Adapt rewrites the résumé. Quota (429) and overload (503) responses return
// ai.ErrUnavailable; other failures are returned as regular errors.
func (p *Provider) Adapt(ctx context.Context, req ai.AdaptRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	prompt := prompts.Adapt(req.Resume, req.JobOffer, req.Analysis, req.Instructions)
	out, err := p.generator.GenerateContent(ctx, prompt, &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.7),
		MaxOutputTokens: 3000,
	})
	if err != nil {
		return "", classify(err)
	}

	return out, nil
}

// Score rates the adapted résumé. Every failed call is reported as ai.ErrUnavailable.
func (p *Provider) Score(ctx context.Context, adaptedResume, jobOffer string) (ai.Score, error) {
	ctx, cancel := context.WithTimeout(ctx, scoreTimeout)
	defer cancel()

	prompt := prompts.Score(ai.TruncateInput(adaptedResume), ai.TruncateInput(jobOffer))
	// A reply without digits, empty ones included, scores 0.
	out, err := p.generator.GenerateText(ctx, prompt, &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.3),
		MaxOutputTokens: 10,
	})
	if err != nil {
		return ai.Score{}, fmt.Errorf("%w: %v", ai.ErrUnavailable, err)
	}

	return ai.NewScore(ai.ParseScore(out)), nil
}

func (p *Provider) Ping(ctx context.Context) (ai.Probe, error) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	return p.generator.Ping(ctx)
}

func classify(err error) error {
	apiErr, ok := asAPIError(err)
	if !ok {
		return err
	}

	switch apiErr.Code {
	case http.StatusTooManyRequests, http.StatusServiceUnavailable:
		return fmt.Errorf("%w: gemini (%d): %s", ai.ErrUnavailable, apiErr.Code, apiErr.Message)
	default:
		return fmt.Errorf("gemini (%d): %s", apiErr.Code, apiErr.Message)
	}
}
