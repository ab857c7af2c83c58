// Package prompts renders the model prompts used by both providers.
package prompts

import (
	_ "embed"
	"strings"
)

const (
	// AnalystSystem is the system message of the analyze call.
	AnalystSystem = "You are an expert assistant in human resources and résumés."
	// WriterSystem is the system message of the adapt call.
	WriterSystem = "You are a résumé expert."
)

var (
	//go:embed analyze.md
	analyzeTemplate string
	//go:embed adapt.md
	adaptTemplate string
	//go:embed score.md
	scoreTemplate string
)

// Analyze builds the job offer analysis prompt.
func Analyze(jobOffer string) string {
	return render(analyzeTemplate, "{{JOB_OFFER}}", jobOffer)
}

// Adapt builds the résumé adaptation prompt. Empty instructions leave no trace in the prompt.
func Adapt(resume, jobOffer, analysis, instructions string) string {
	block := ""
	if instructions = strings.TrimSpace(instructions); instructions != "" {
		block = "\nAdditional instructions:\n" + instructions + "\n"
	}

	return render(adaptTemplate,
		"{{RESUME}}", resume,
		"{{JOB_OFFER}}", jobOffer,
		"{{ANALYSIS}}", analysis,
		"{{INSTRUCTIONS}}", block,
	)
}

// Score builds the relevance scoring prompt. Callers truncate the inputs.
func Score(adaptedResume, jobOffer string) string {
	return render(scoreTemplate,
		"{{RESUME}}", adaptedResume,
		"{{JOB_OFFER}}", jobOffer,
	)
}

// render substitutes all placeholders in a single pass so that values
// containing placeholder-like text are never expanded twice.
func render(template string, pairs ...string) string {
	return strings.TrimSpace(strings.NewReplacer(pairs...).Replace(template))
}
