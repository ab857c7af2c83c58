package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spigell/jobassist/internal/ai"
	"github.com/spigell/jobassist/internal/render"
	"github.com/spigell/jobassist/internal/resume"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fixture struct {
	analyzer  *fakeAnalyzer
	primary   *fakeAdapter
	secondary *fakeAdapter
	renderer  *fakeRenderer
	runner    *countingRunner
	logs      *observer.ObservedLogs
}

func newFixture() *fixture {
	return &fixture{
		analyzer:  &fakeAnalyzer{analysis: "needs Go and Kubernetes"},
		primary:   &fakeAdapter{name: "perplexity", adapted: "PRIMARY CV", score: ai.NewScore(72)},
		secondary: &fakeAdapter{name: "gemini", adapted: "SECONDARY CV", score: ai.NewScore(88)},
		renderer:  &fakeRenderer{},
		runner:    &countingRunner{},
	}
}

func (f *fixture) pipeline(t *testing.T, avail Availability) *Pipeline {
	t.Helper()

	core, logs := observer.New(zapcore.InfoLevel)
	f.logs = logs

	p, err := New(Deps{
		Loader:       textLoader("Jane Doe\nGo developer"),
		Analyzer:     f.analyzer,
		Primary:      f.primary,
		Secondary:    f.secondary,
		Renderer:     f.renderer,
		Progress:     f.runner,
		Logger:       zap.New(core),
		Availability: avail,
	})
	require.NoError(t, err)
	return p
}

var request = Request{ResumePath: "cv.txt", JobOffer: "Senior Go engineer", Instructions: "keep it short"}

func TestNewRequiresProviders(t *testing.T) {
	_, err := New(Deps{})
	require.Error(t, err)
}

func TestStagesOrder(t *testing.T) {
	p := newFixture().pipeline(t, Availability{})
	assert.Equal(t, []string{"load", "analyze", "adapt", "score", "render"}, p.Stages())
}

func TestRunPrimaryOnly(t *testing.T) {
	f := newFixture()

	res, err := f.pipeline(t, Availability{Reason: "quota reached"}).Run(context.Background(), request)
	require.NoError(t, err)

	assert.Equal(t, "needs Go and Kubernetes", res.Analysis)
	assert.Equal(t, "PRIMARY CV", res.Adapted)
	assert.Equal(t, ai.NewScore(72), res.Score)
	assert.Equal(t, "perplexity", res.AdaptedBy)
	assert.Equal(t, "perplexity", res.ScoredBy)
	assert.Equal(t, render.DefaultPDFOutput, res.OutputPath)
	assert.Equal(t, render.ModePDF, res.Mode)
	assert.Len(t, res.Steps, 5)

	assert.Zero(t, f.secondary.adaptCalls, "unavailable secondary must never be called")
	assert.Zero(t, f.secondary.scoreCalls, "unavailable secondary must never be called")
	assert.Equal(t, 1, f.analyzer.calls)

	assert.Equal(t, ai.AdaptRequest{
		Resume:       "Jane Doe\nGo developer",
		JobOffer:     "Senior Go engineer",
		Analysis:     "needs Go and Kubernetes",
		Instructions: "keep it short",
	}, f.primary.lastReq)

	require.Len(t, f.renderer.requests, 1)
	assert.Equal(t, render.Request{Mode: render.ModePDF, Text: "PRIMARY CV", OutputPath: render.DefaultPDFOutput}, f.renderer.requests[0])
	assert.Equal(t, 5, f.logs.FilterMessage("stage done").Len())
}

func TestRunPrefersSecondary(t *testing.T) {
	f := newFixture()

	res, err := f.pipeline(t, Availability{Secondary: true}).Run(context.Background(), request)
	require.NoError(t, err)

	assert.Equal(t, "SECONDARY CV", res.Adapted)
	assert.Equal(t, ai.NewScore(88), res.Score)
	assert.Equal(t, "gemini", res.AdaptedBy)
	assert.Zero(t, f.primary.adaptCalls)
	assert.Zero(t, f.primary.scoreCalls)
}

func TestRunSecondaryQuotaMidRunFallsBack(t *testing.T) {
	f := newFixture()
	f.secondary.adaptErr = fmt.Errorf("%w: gemini (429): quota", ai.ErrUnavailable)

	res, err := f.pipeline(t, Availability{Secondary: true}).Run(context.Background(), request)
	require.NoError(t, err)

	assert.Equal(t, "PRIMARY CV", res.Adapted)
	assert.Equal(t, "perplexity", res.AdaptedBy)
	assert.Equal(t, 1, f.secondary.adaptCalls)
	assert.Equal(t, 1, f.primary.adaptCalls)
}

func TestRunScoreFailureIsNotFatal(t *testing.T) {
	f := newFixture()
	f.primary.scoreErr = fmt.Errorf("%w: timeout", ai.ErrUnavailable)

	res, err := f.pipeline(t, Availability{}).Run(context.Background(), request)
	require.NoError(t, err)

	assert.Equal(t, ai.Score{}, res.Score)
	assert.Equal(t, "unavailable", res.Score.String())
	assert.Empty(t, res.ScoredBy)
	assert.Equal(t, 1, f.logs.FilterMessage("relevance score unavailable").Len())
	require.Len(t, f.renderer.requests, 1)
}

func TestRunAdaptFailureStops(t *testing.T) {
	f := newFixture()
	f.primary.adaptErr = errors.New("perplexity (500): internal")

	_, err := f.pipeline(t, Availability{}).Run(context.Background(), request)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "adapt: perplexity (500)")
	assert.Zero(t, f.primary.scoreCalls)
	assert.Empty(t, f.renderer.requests)
}

func TestRunTemplateMode(t *testing.T) {
	f := newFixture()
	req := request
	req.TemplatePath = "tpl.docx"

	res, err := f.pipeline(t, Availability{}).Run(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, render.ModeTemplate, res.Mode)
	assert.Equal(t, render.DefaultDocxOutput, res.OutputPath)
	assert.Equal(t, "tpl.docx", f.renderer.requests[0].TemplatePath)
}

func TestRunUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.rtf")
	require.NoError(t, os.WriteFile(path, []byte("{\\rtf1}"), 0o600))

	f := newFixture()
	p, err := New(Deps{Analyzer: f.analyzer, Primary: f.primary, Renderer: f.renderer})
	require.NoError(t, err)

	_, err = p.Run(context.Background(), Request{ResumePath: path, JobOffer: "offer"})

	var formatErr *resume.UnsupportedFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, ".rtf", formatErr.Ext)
	assert.Zero(t, f.analyzer.calls)
	assert.Empty(t, f.renderer.requests)
}

func TestRunShowsProgress(t *testing.T) {
	f := newFixture()

	_, err := f.pipeline(t, Availability{}).Run(context.Background(), request)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Analyzing the job offer...",
		"Adapting the résumé with perplexity...",
		"Computing the relevance score with perplexity...",
		"Writing CV_Adapte.pdf...",
	}, f.runner.messages)
}
