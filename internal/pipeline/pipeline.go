// Package pipeline runs the résumé adaptation stages in order and decides
// which provider serves each of them.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spigell/jobassist/internal/ai"
	"github.com/spigell/jobassist/internal/progress"
	"github.com/spigell/jobassist/internal/render"
	"github.com/spigell/jobassist/internal/resume"
	"go.uber.org/zap"
)

// Stage is a single step of the run.
type Stage interface {
	Name() string
	Run(ctx context.Context, st *State) error
}

// Loader reads the résumé document.
type Loader interface {
	Load(path string) (resume.Document, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(path string) (resume.Document, error)

func (f LoaderFunc) Load(path string) (resume.Document, error) { return f(path) }

// Renderer writes the output file.
type Renderer interface {
	Render(req render.Request) error
}

// Deps aggregates dependencies shared across all stages.
type Deps struct {
	Loader    Loader
	Analyzer  ai.Analyzer
	Primary   ai.Adapter
	Secondary ai.Adapter
	Renderer  Renderer
	Progress  progress.Runner
	Logger    *zap.Logger

	Availability Availability
}

// Request holds the inputs of one run.
type Request struct {
	ResumePath   string
	JobOffer     string
	Instructions string
	TemplatePath string
	OutputPath   string
}

// Result is what a completed run produced.
type Result struct {
	Analysis   string
	Adapted    string
	Score      ai.Score
	OutputPath string
	Mode       render.Mode

	// AdaptedBy and ScoredBy name the providers that served those stages.
	AdaptedBy string
	ScoredBy  string

	Steps []Step
}

// Step describes the execution of a stage.
type Step struct {
	Name     string
	Duration time.Duration
}

// State is passed from stage to stage.
type State struct {
	Request  Request
	Document resume.Document
	Result   Result
}

// Pipeline is the ordered list of stages with their dependencies.
type Pipeline struct {
	deps   Deps
	stages []Stage
}

// New returns a pipeline with the default stages:
// load, analyze, adapt, score, render.
func New(deps Deps) (*Pipeline, error) {
	if deps.Analyzer == nil || deps.Primary == nil {
		return nil, errors.New("analyzer and primary provider are required")
	}
	if deps.Loader == nil {
		deps.Loader = LoaderFunc(resume.Load)
	}
	if deps.Renderer == nil {
		deps.Renderer = render.Renderer{}
	}
	if deps.Progress == nil {
		deps.Progress = progress.Nop{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	return &Pipeline{
		deps: deps,
		stages: []Stage{
			&loadStage{deps: deps},
			&analyzeStage{deps: deps},
			&adaptStage{deps: deps},
			&scoreStage{deps: deps},
			&renderStage{deps: deps},
		},
	}, nil
}

// Stages returns the stage names in execution order.
func (p *Pipeline) Stages() []string {
	names := make([]string, 0, len(p.stages))
	for _, s := range p.stages {
		names = append(names, s.Name())
	}
	return names
}

// Run executes the stages sequentially. The first failing stage stops the run.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	st := &State{Request: req}
	st.Result.OutputPath = req.OutputPath
	if st.Result.OutputPath == "" {
		st.Result.OutputPath = render.DefaultOutputPath(req.TemplatePath)
	}

	for _, stage := range p.stages {
		started := time.Now()
		if err := stage.Run(ctx, st); err != nil {
			return nil, fmt.Errorf("%s: %w", stage.Name(), err)
		}

		step := Step{Name: stage.Name(), Duration: time.Since(started)}
		st.Result.Steps = append(st.Result.Steps, step)

		p.deps.Logger.Info("stage done",
			zap.String("name", step.Name),
			zap.Duration("took", step.Duration),
		)
	}

	return &st.Result, nil
}
