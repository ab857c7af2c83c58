package console

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedPrompter struct {
	answers []string
	labels  []string
	defs    []string
}

func (s *scriptedPrompter) Ask(label, def string, validate func(string) error) (string, error) {
	s.labels = append(s.labels, label)
	s.defs = append(s.defs, def)
	if len(s.answers) == 0 {
		return "", io.EOF
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	if validate != nil {
		if err := validate(answer); err != nil {
			return "", err
		}
	}
	return answer, nil
}

func lines(in ...string) func() (string, error) {
	return func() (string, error) {
		if len(in) == 0 {
			return "", io.EOF
		}
		line := in[0]
		in = in[1:]
		return line, nil
	}
}

func TestReadJobOffer(t *testing.T) {
	tests := []struct {
		name   string
		input  []string
		expect string
	}{
		{name: "two blank lines end input", input: []string{"Go developer", "", "Remote", "", "", "ignored"}, expect: "Go developer\n\nRemote"},
		{name: "eof ends input", input: []string{"Go developer", "Paris"}, expect: "Go developer\nParis"},
		{name: "trailing blank before eof dropped", input: []string{"Go developer", ""}, expect: "Go developer"},
		{name: "nothing entered", input: nil, expect: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadJobOffer(lines(tt.input...))
			require.NoError(t, err)
			assert.Equal(t, tt.expect, got)
		})
	}
}

func TestReadJobOfferPropagatesErrors(t *testing.T) {
	_, err := ReadJobOffer(func() (string, error) { return "", ErrInterrupted })
	assert.ErrorIs(t, err, ErrInterrupted)
}

func writeFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	return path
}

func TestCollect(t *testing.T) {
	cv := writeFile(t, "cv.txt")
	tpl := writeFile(t, "tpl.docx")

	p := &scriptedPrompter{answers: []string{
		cv,
		"Senior Go engineer", "Kubernetes", "", "",
		" keep it short ",
		tpl,
		"",
	}}
	s := Session{Prompter: p, DefaultOutput: func(template string) string {
		if template != "" {
			return "CV_Adapte.docx"
		}
		return "CV_Adapte.pdf"
	}}

	answers, err := s.Collect()
	require.NoError(t, err)

	assert.Equal(t, Answers{
		ResumePath:   cv,
		JobOffer:     "Senior Go engineer\nKubernetes",
		Instructions: "keep it short",
		TemplatePath: tpl,
		OutputPath:   "CV_Adapte.docx",
	}, answers)
	assert.Equal(t, "CV_Adapte.docx", p.defs[len(p.defs)-1])
}

func TestCollectRejectsMissingResume(t *testing.T) {
	p := &scriptedPrompter{answers: []string{filepath.Join(t.TempDir(), "missing.pdf")}}

	_, err := Session{Prompter: p}.Collect()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}

func TestCollectRejectsEmptyOffer(t *testing.T) {
	cv := writeFile(t, "cv.pdf")
	p := &scriptedPrompter{answers: []string{cv, "", ""}}

	_, err := Session{Prompter: p}.Collect()
	assert.True(t, errors.Is(err, ErrEmptyJobOffer))
}

func TestCollectRejectsMissingTemplate(t *testing.T) {
	cv := writeFile(t, "cv.pdf")
	p := &scriptedPrompter{answers: []string{cv, "offer", "", "", "", filepath.Join(t.TempDir(), "nope.docx")}}

	_, err := Session{Prompter: p}.Collect()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading template path")
}
