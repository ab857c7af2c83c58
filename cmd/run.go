package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spigell/jobassist/internal/ai/gemini"
	"github.com/spigell/jobassist/internal/ai/perplexity"
	"github.com/spigell/jobassist/internal/console"
	"github.com/spigell/jobassist/internal/logger"
	"github.com/spigell/jobassist/internal/pipeline"
	"github.com/spigell/jobassist/internal/progress"
	"github.com/spigell/jobassist/internal/render"
	"github.com/spigell/jobassist/internal/resume"
	"github.com/spigell/jobassist/internal/secrets"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var errMissingArguments = errors.New("missing arguments: both --cv and --job-offer are required")

// runOptions are the flags of the root command.
type runOptions struct {
	Interactive  bool
	ResumePath   string
	JobOfferPath string
	TemplatePath string
	OutputPath   string
	Instructions string
}

func (o runOptions) interactive() bool {
	return o.Interactive || (o.ResumePath == "" && o.JobOfferPath == "")
}

func optionsFromFlags(cmd *cobra.Command) runOptions {
	flags := cmd.Flags()
	get := func(name string) string {
		v, _ := flags.GetString(name)
		return strings.TrimSpace(v)
	}
	interactive, _ := flags.GetBool("interactive")

	return runOptions{
		Interactive:  interactive,
		ResumePath:   get("cv"),
		JobOfferPath: get("job-offer"),
		TemplatePath: get("template"),
		OutputPath:   get("output"),
		Instructions: get("instructions"),
	}
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the jobassist", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(redacted(config), "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	opts := optionsFromFlags(cmd)

	var req pipeline.Request
	if !opts.interactive() {
		// Inputs are checked before any provider is contacted.
		req, err = requestFromOptions(opts)
		if err != nil {
			logger.Fatal("invalid arguments", zap.Error(err))
		}
	}

	runner := newRunner(config)

	primary, secondary, err := newProviders(ctx, config, logger)
	if err != nil {
		logger.Fatal("creating ai providers", zap.Error(err))
	}

	avail, err := pipeline.CheckHealth(ctx, primary, secondary, runner, logger)
	if err != nil {
		logger.Fatal("health check failed", zap.Error(err))
	}

	if opts.interactive() {
		req, err = interactiveRequest()
		if err != nil {
			if errors.Is(err, console.ErrInterrupted) {
				logger.Info("exiting", zap.String("reason", "interrupted"))
				os.Exit(1)
			}
			logger.Fatal("reading interactive input", zap.Error(err))
		}
	}

	p, err := pipeline.New(pipeline.Deps{
		Analyzer:     primary,
		Primary:      primary,
		Secondary:    secondary,
		Progress:     runner,
		Logger:       logger,
		Availability: avail,
	})
	if err != nil {
		logger.Fatal("building the pipeline", zap.Error(err))
	}

	res, err := p.Run(ctx, req)
	if err != nil {
		logger.Fatal("adapting the résumé", zap.Error(err))
	}

	logger.Info("résumé adapted",
		zap.String("output", res.OutputPath),
		zap.String("mode", string(res.Mode)),
		zap.String("adapted_by", res.AdaptedBy),
		zap.String("scored_by", res.ScoredBy),
	)

	printResult(os.Stdout, res)
}

// requestFromOptions validates file mode arguments and reads the job offer.
func requestFromOptions(opts runOptions) (pipeline.Request, error) {
	if opts.ResumePath == "" || opts.JobOfferPath == "" {
		return pipeline.Request{}, errMissingArguments
	}

	for _, path := range []string{opts.ResumePath, opts.JobOfferPath} {
		if _, err := os.Stat(path); err != nil {
			return pipeline.Request{}, fmt.Errorf("file not found: %s", path)
		}
	}

	if _, err := resume.DetectFormat(opts.ResumePath); err != nil {
		return pipeline.Request{}, err
	}

	if opts.TemplatePath != "" {
		if _, err := os.Stat(opts.TemplatePath); err != nil {
			return pipeline.Request{}, fmt.Errorf("template not found: %s", opts.TemplatePath)
		}
	}

	offer, err := os.ReadFile(opts.JobOfferPath)
	if err != nil {
		return pipeline.Request{}, fmt.Errorf("reading job offer: %w", err)
	}

	output := opts.OutputPath
	if output == "" {
		output = render.DefaultOutputPath(opts.TemplatePath)
	}

	return pipeline.Request{
		ResumePath:   opts.ResumePath,
		JobOffer:     string(offer),
		Instructions: opts.Instructions,
		TemplatePath: opts.TemplatePath,
		OutputPath:   output,
	}, nil
}

func interactiveRequest() (pipeline.Request, error) {
	reader, err := console.NewLineReader(nil, os.Stdout)
	if err != nil {
		return pipeline.Request{}, err
	}
	defer reader.Close()

	session := console.Session{
		Prompter:      reader,
		DefaultOutput: render.DefaultOutputPath,
	}

	answers, err := session.Collect()
	if err != nil {
		return pipeline.Request{}, err
	}

	return pipeline.Request{
		ResumePath:   answers.ResumePath,
		JobOffer:     answers.JobOffer,
		Instructions: answers.Instructions,
		TemplatePath: answers.TemplatePath,
		OutputPath:   answers.OutputPath,
	}, nil
}

func newRunner(config *Config) progress.Runner {
	enabled := !config.NoSpinner && !viper.GetBool("json")
	return progress.NewSpinner(os.Stderr, enabled)
}

func newProviders(ctx context.Context, config *Config, log *zap.Logger) (*perplexity.Client, *gemini.Provider, error) {
	perplexityKey, err := secrets.Load(secrets.Source{
		Name:  "perplexity api key",
		Value: config.Perplexity.APIKey,
		File:  config.Perplexity.APIKeyFile,
		Hint:  "set PERPLEXITY_KEY (or PERPLEXITY_KEY_FILE) in the environment or the .env file",
	})
	if err != nil {
		return nil, nil, err
	}

	geminiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		Value: config.Gemini.APIKey,
		File:  config.Gemini.APIKeyFile,
		Hint:  "set GEMINI_KEY (or GEMINI_KEY_FILE) in the environment or the .env file",
	})
	if err != nil {
		return nil, nil, err
	}

	primary, err := perplexity.New(perplexity.Options{
		APIKey:       perplexityKey,
		Model:        config.Perplexity.Model,
		BaseURL:      config.Perplexity.BaseURL,
		MaxLogLength: config.MaxLogLength,
		Logger:       log,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("perplexity client: %w", err)
	}

	generator, err := gemini.NewGenerator(ctx, gemini.GeneratorOptions{
		APIKey:       geminiKey,
		Model:        config.Gemini.Model,
		BaseURL:      config.Gemini.BaseURL,
		MaxLogLength: config.MaxLogLength,
		Logger:       log,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("gemini client: %w", err)
	}

	return primary, gemini.NewProvider(generator), nil
}

func printResult(w io.Writer, res *pipeline.Result) {
	fmt.Fprintf(w, "\nAdapted résumé: %s\n", res.OutputPath)
	fmt.Fprintf(w, "Relevance score: %s\n", res.Score)
	fmt.Fprintf(w, "\nAnalysis:\n%s\n", res.Analysis)
}

// redacted returns a copy of config safe to log.
func redacted(config *Config) *Config {
	out := *config
	mask := func(p *ProviderConfig) *ProviderConfig {
		if p == nil {
			return nil
		}
		c := *p
		if c.APIKey != "" {
			c.APIKey = "***"
		}
		return &c
	}
	out.Perplexity = mask(config.Perplexity)
	out.Gemini = mask(config.Gemini)
	return &out
}
