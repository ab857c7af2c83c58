package pipeline

import (
	"context"
	"errors"
	"strings"

	"github.com/spigell/jobassist/internal/ai"
	"github.com/spigell/jobassist/internal/logger"
	"github.com/spigell/jobassist/internal/progress"
	"github.com/spigell/jobassist/internal/render"
	"go.uber.org/zap"
)

type loadStage struct{ deps Deps }

func (s *loadStage) Name() string { return "load" }

func (s *loadStage) Run(_ context.Context, st *State) error {
	doc, err := s.deps.Loader.Load(st.Request.ResumePath)
	if err != nil {
		return err
	}
	if strings.TrimSpace(doc.Text) == "" {
		s.deps.Logger.Warn("résumé has no extractable text", zap.String("path", doc.Path))
	}

	st.Document = doc
	s.deps.Logger.Debug("résumé loaded",
		zap.String("format", string(doc.Format)),
		zap.Int("chars", len([]rune(doc.Text))),
	)
	return nil
}

type analyzeStage struct{ deps Deps }

func (s *analyzeStage) Name() string { return "analyze" }

func (s *analyzeStage) Run(ctx context.Context, st *State) error {
	analysis, err := progress.Do(s.deps.Progress, "Analyzing the job offer...", func() (string, error) {
		return s.deps.Analyzer.Analyze(ctx, st.Request.JobOffer)
	})
	if err != nil {
		return err
	}

	st.Result.Analysis = analysis
	return nil
}

type adaptStage struct{ deps Deps }

func (s *adaptStage) Name() string { return "adapt" }

func (s *adaptStage) Run(ctx context.Context, st *State) error {
	req := ai.AdaptRequest{
		Resume:       st.Document.Text,
		JobOffer:     st.Request.JobOffer,
		Analysis:     st.Result.Analysis,
		Instructions: st.Request.Instructions,
	}

	adapted, by, err := Fallback(ctx, logger.WithStage(s.deps.Logger, s.Name()), s.deps.Availability, s.deps.Secondary, s.deps.Primary,
		func(ctx context.Context, p ai.Adapter) (string, error) {
			return progress.Do(s.deps.Progress, "Adapting the résumé with "+p.Name()+"...", func() (string, error) {
				return p.Adapt(ctx, req)
			})
		})
	if err != nil {
		return err
	}

	st.Result.Adapted = adapted
	st.Result.AdaptedBy = by
	return nil
}

// scoreStage never fails: a missing score is reported, not fatal.
type scoreStage struct{ deps Deps }

func (s *scoreStage) Name() string { return "score" }

func (s *scoreStage) Run(ctx context.Context, st *State) error {
	log := logger.WithStage(s.deps.Logger, s.Name())

	score, by, err := Fallback(ctx, log, s.deps.Availability, s.deps.Secondary, s.deps.Primary,
		func(ctx context.Context, p ai.Adapter) (ai.Score, error) {
			return progress.Do(s.deps.Progress, "Computing the relevance score with "+p.Name()+"...", func() (ai.Score, error) {
				return p.Score(ctx, st.Result.Adapted, st.Request.JobOffer)
			})
		})
	if err != nil {
		fields := []zap.Field{zap.Error(err)}
		if !errors.Is(err, ai.ErrUnavailable) {
			fields = append(fields, zap.Bool("unexpected", true))
		}
		log.Warn("relevance score unavailable", fields...)

		st.Result.Score = ai.Score{}
		return nil
	}

	st.Result.Score = score
	st.Result.ScoredBy = by
	return nil
}

type renderStage struct{ deps Deps }

func (s *renderStage) Name() string { return "render" }

func (s *renderStage) Run(_ context.Context, st *State) error {
	mode := render.SelectMode(st.Request.TemplatePath, st.Result.OutputPath)

	err := s.deps.Progress.Run("Writing "+st.Result.OutputPath+"...", func() error {
		return s.deps.Renderer.Render(render.Request{
			Mode:         mode,
			Text:         st.Result.Adapted,
			TemplatePath: st.Request.TemplatePath,
			OutputPath:   st.Result.OutputPath,
		})
	})
	if err != nil {
		return err
	}

	st.Result.Mode = mode
	return nil
}
