package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/jobassist/internal/ai"
	"github.com/spigell/jobassist/internal/logger"
)

const (
	defaultModel        = "gemini-2.0-flash"
	defaultMaxLogLength = 200
)

type modelsAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Generator wraps the Google GenAI client to provide simple prompt-based interactions.
type Generator struct {
	models    modelsAPI
	modelName string
	logger    *zap.Logger
	maxLogLen int
}

// GeneratorOptions configures NewGenerator.
type GeneratorOptions struct {
	APIKey       string
	Model        string
	BaseURL      string
	HTTPClient   *http.Client
	MaxLogLength int
	Logger       *zap.Logger
}

// NewGenerator creates a new Generator configured for the Gemini API backend.
func NewGenerator(ctx context.Context, opts GeneratorOptions) (*Generator, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if baseURL := strings.TrimSpace(opts.BaseURL); baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newGenerator(client.Models, opts.Model, opts.MaxLogLength, opts.Logger), nil
}

func newGenerator(models modelsAPI, model string, maxLogLength int, log *zap.Logger) *Generator {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Generator{
		models:    models,
		modelName: model,
		logger:    logger.WithProvider(log, Name, model),
		maxLogLen: maxLogLength,
	}
}

// GenerateContent sends the prompt to Gemini and returns the textual response.
// A reply without any text is an error.
func (g *Generator) GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	output, err := g.GenerateText(ctx, prompt, config)
	if err != nil {
		return "", err
	}
	if output == "" {
		return "", errors.New("gemini api returned empty response")
	}
	return output, nil
}

// GenerateText is like GenerateContent but a successful reply without
// candidates or text yields "" instead of an error.
func (g *Generator) GenerateText(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	if g == nil || g.models == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	g.logger.Debug("gemini generate content request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, g.maxLogLen)),
	)

	resp, err := g.models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if resp == nil {
		return "", nil
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
		// only the first usable candidate is used
		if builder.Len() > 0 {
			break
		}
	}

	output := strings.TrimSpace(builder.String())

	g.logger.Debug("gemini generate content response",
		zap.Int("response_length", utf8.RuneCountInString(output)),
		zap.String("response_preview", logger.TruncateForLog(output, g.maxLogLen)),
	)

	return output, nil
}

// Ping sends a trivial prompt without any generation config. API errors are
// reported in the probe; other failures are returned.
func (g *Generator) Ping(ctx context.Context) (ai.Probe, error) {
	if g == nil || g.models == nil {
		return ai.Probe{}, errors.New("gemini generator is not initialized")
	}

	_, err := g.models.GenerateContent(ctx, g.modelName, genai.Text("test"), nil)
	if err == nil {
		return ai.Probe{StatusCode: http.StatusOK}, nil
	}

	if apiErr, ok := asAPIError(err); ok {
		return ai.Probe{StatusCode: apiErr.Code, Status: apiErr.Status, Message: apiErr.Message}, nil
	}

	return ai.Probe{}, err
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}

func asAPIError(err error) (genai.APIError, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}

	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return *apiErrPtr, true
	}

	return genai.APIError{}, false
}
