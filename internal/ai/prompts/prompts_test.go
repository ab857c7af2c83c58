package prompts

import (
	"strings"
	"testing"
)

func TestAdaptIncludesInputs(t *testing.T) {
	prompt := Adapt("RESUME BODY", "OFFER BODY", "ANALYSIS BODY", "  focus on Go  ")

	for _, want := range []string{"RESUME BODY", "OFFER BODY", "ANALYSIS BODY", "Additional instructions:\nfocus on Go"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("expected prompt to contain %q, got:\n%s", want, prompt)
		}
	}

	if strings.Contains(prompt, "{{") {
		t.Fatalf("unreplaced placeholder in prompt:\n%s", prompt)
	}
}

func TestAdaptWithoutInstructions(t *testing.T) {
	prompt := Adapt("r", "o", "a", "   ")
	if strings.Contains(prompt, "Additional instructions") {
		t.Fatalf("expected no instructions block, got:\n%s", prompt)
	}
}

func TestValuesAreNotExpandedTwice(t *testing.T) {
	prompt := Adapt("mentions {{JOB_OFFER}} literally", "OFFER", "a", "")
	if !strings.Contains(prompt, "mentions {{JOB_OFFER}} literally") {
		t.Fatalf("placeholder inside a value was expanded:\n%s", prompt)
	}
}

func TestAnalyzeAndScore(t *testing.T) {
	if p := Analyze("Senior Go engineer"); !strings.Contains(p, "Senior Go engineer") || strings.Contains(p, "{{") {
		t.Fatalf("unexpected analyze prompt:\n%s", p)
	}

	p := Score("adapted", "offer")
	if !strings.Contains(p, "adapted") || !strings.Contains(p, "offer") || !strings.Contains(p, "between 0 and 100") {
		t.Fatalf("unexpected score prompt:\n%s", p)
	}
}
