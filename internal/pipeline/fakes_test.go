package pipeline

import (
	"context"

	"github.com/spigell/jobassist/internal/ai"
	"github.com/spigell/jobassist/internal/render"
	"github.com/spigell/jobassist/internal/resume"
)

type fakeAdapter struct {
	name string

	adapted  string
	adaptErr error
	score    ai.Score
	scoreErr error

	adaptCalls int
	scoreCalls int
	lastReq    ai.AdaptRequest
}

func (f *fakeAdapter) Name() string { return f.name }

func (f *fakeAdapter) Adapt(_ context.Context, req ai.AdaptRequest) (string, error) {
	f.adaptCalls++
	f.lastReq = req
	return f.adapted, f.adaptErr
}

func (f *fakeAdapter) Score(_ context.Context, _, _ string) (ai.Score, error) {
	f.scoreCalls++
	return f.score, f.scoreErr
}

type fakeAnalyzer struct {
	analysis string
	err      error
	calls    int
}

func (f *fakeAnalyzer) Analyze(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.analysis, f.err
}

type fakePinger struct {
	name  string
	probe ai.Probe
	err   error
	calls int
}

func (f *fakePinger) Name() string { return f.name }

func (f *fakePinger) Ping(context.Context) (ai.Probe, error) {
	f.calls++
	return f.probe, f.err
}

type fakeRenderer struct {
	requests []render.Request
	err      error
}

func (f *fakeRenderer) Render(req render.Request) error {
	f.requests = append(f.requests, req)
	return f.err
}

func textLoader(text string) LoaderFunc {
	return func(path string) (resume.Document, error) {
		return resume.Document{Path: path, Format: resume.FormatText, Text: text}, nil
	}
}

type countingRunner struct {
	messages []string
}

func (c *countingRunner) Run(message string, fn func() error) error {
	c.messages = append(c.messages, message)
	return fn()
}
