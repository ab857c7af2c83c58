// Package perplexity is the primary provider: an OpenAI-compatible chat
// completions API used for analysis and as the adapt/score fallback.
package perplexity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"

	"github.com/spigell/jobassist/internal/ai"
	"github.com/spigell/jobassist/internal/ai/prompts"
	"github.com/spigell/jobassist/internal/logger"
)

const (
	// Name identifies the provider in logs and results.
	Name = "perplexity"

	defaultBaseURL = "https://api.perplexity.ai/"
	defaultModel   = "sonar-pro"

	generateTimeout = 120 * time.Second
	scoreTimeout    = 60 * time.Second
	pingTimeout     = 10 * time.Second

	errorBodyLimit      = 200
	defaultMaxLogLength = 200
)

// Options configures the client.
type Options struct {
	APIKey       string
	Model        string
	BaseURL      string
	HTTPClient   *http.Client
	MaxLogLength int
	Logger       *zap.Logger
}

// Client calls the chat completions endpoint.
type Client struct {
	client    openai.Client
	model     string
	logger    *zap.Logger
	maxLogLen int
}

// New builds a client. SDK retries are disabled: each call is tried once and
// the pipeline decides about fallbacks.
func New(opts Options) (*Client, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, errors.New("perplexity api key is required")
	}

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}

	baseURL := strings.TrimSpace(opts.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithMaxRetries(0),
	}
	if opts.HTTPClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(opts.HTTPClient))
	}

	maxLogLen := opts.MaxLogLength
	if maxLogLen <= 0 {
		maxLogLen = defaultMaxLogLength
	}

	return &Client{
		client:    openai.NewClient(reqOpts...),
		model:     model,
		logger:    logger.WithProvider(opts.Logger, Name, model),
		maxLogLen: maxLogLen,
	}, nil
}

func (c *Client) Name() string { return Name }

func (c *Client) Model() string { return c.model }

// Analyze extracts the key requirements of the job offer. Any failure is returned.
func (c *Client) Analyze(ctx context.Context, jobOffer string) (string, error) {
	return c.complete(ctx, generateTimeout, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompts.AnalystSystem),
			openai.UserMessage(prompts.Analyze(jobOffer)),
		},
		Temperature: openai.Float(0.7),
		MaxTokens:   openai.Int(2000),
	})
}

// Adapt rewrites the résumé. Any failure is returned.
func (c *Client) Adapt(ctx context.Context, req ai.AdaptRequest) (string, error) {
	return c.complete(ctx, generateTimeout, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompts.WriterSystem),
			openai.UserMessage(prompts.Adapt(req.Resume, req.JobOffer, req.Analysis, req.Instructions)),
		},
		Temperature: openai.Float(0.7),
		MaxTokens:   openai.Int(3000),
	})
}

// Score rates the adapted résumé. It is best effort: every failure is
// reported as ai.ErrUnavailable.
func (c *Client) Score(ctx context.Context, adaptedResume, jobOffer string) (ai.Score, error) {
	text, err := c.send(ctx, scoreTimeout, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompts.Score(ai.TruncateInput(adaptedResume), ai.TruncateInput(jobOffer))),
		},
		Temperature: openai.Float(0.3),
		MaxTokens:   openai.Int(10),
	})
	if err != nil {
		return ai.Score{}, fmt.Errorf("%w: %v", ai.ErrUnavailable, err)
	}

	return ai.NewScore(ai.ParseScore(text)), nil
}

// Ping sends a trivial request. HTTP level failures are reported in the probe;
// only transport failures are returned as errors.
func (c *Client) Ping(ctx context.Context) (ai.Probe, error) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	_, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{openai.UserMessage("test")},
	})
	if err == nil {
		return ai.Probe{StatusCode: http.StatusOK}, nil
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return ai.Probe{
			StatusCode: apiErr.StatusCode,
			Message:    logger.TruncateForLog(apiErr.Error(), errorBodyLimit),
		}, nil
	}

	return ai.Probe{}, err
}

// complete is send for calls that need actual text back.
func (c *Client) complete(ctx context.Context, timeout time.Duration, params openai.ChatCompletionNewParams) (string, error) {
	content, err := c.send(ctx, timeout, params)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(content) == "" {
		return "", errors.New("perplexity: empty response")
	}
	return content, nil
}

// send returns the content of the first choice, possibly empty. Only
// transport and HTTP failures are errors.
func (c *Client) send(ctx context.Context, timeout time.Duration, params openai.ChatCompletionNewParams) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	params.Model = openai.ChatModel(c.model)

	c.logger.Debug("perplexity chat completion request",
		zap.Int("messages", len(params.Messages)),
		zap.Duration("timeout", timeout),
	)

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("perplexity (%d): %s", apiErr.StatusCode, logger.TruncateForLog(apiErr.Error(), errorBodyLimit))
		}
		return "", fmt.Errorf("perplexity request: %w", err)
	}

	var content string
	if len(resp.Choices) > 0 {
		content = resp.Choices[0].Message.Content
	}

	c.logger.Debug("perplexity chat completion response",
		zap.Int("response_length", utf8.RuneCountInString(content)),
		zap.String("response_preview", logger.TruncateForLog(content, c.maxLogLen)),
	)

	return content, nil
}
