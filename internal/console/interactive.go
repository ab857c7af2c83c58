package console

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	// ErrInterrupted is returned when the user aborts a prompt.
	ErrInterrupted = errors.New("interrupted")
	// ErrEmptyJobOffer is returned when no job offer text was entered.
	ErrEmptyJobOffer = errors.New("job offer is empty")
)

const jobOfferLabel = "Job offer (finish with two empty lines)"

// Answers holds everything asked in interactive mode.
type Answers struct {
	ResumePath   string
	JobOffer     string
	Instructions string
	TemplatePath string
	OutputPath   string
}

// Session runs the interactive questionnaire.
type Session struct {
	Prompter Prompter
	// DefaultOutput returns the output proposed for the chosen template.
	DefaultOutput func(templatePath string) string
}

// Collect asks for the résumé, the job offer, optional instructions, an
// optional template and the output path, in that order.
func (s Session) Collect() (Answers, error) {
	var answers Answers

	resumePath, err := s.Prompter.Ask("Résumé file (.pdf or .txt)", "", fileExists)
	if err != nil {
		return answers, fmt.Errorf("reading résumé path: %w", err)
	}
	answers.ResumePath = strings.TrimSpace(resumePath)

	label := jobOfferLabel
	offer, err := ReadJobOffer(func() (string, error) {
		line, err := s.Prompter.Ask(label, "", nil)
		label = ""
		return line, err
	})
	if err != nil {
		return answers, fmt.Errorf("reading job offer: %w", err)
	}
	if strings.TrimSpace(offer) == "" {
		return answers, ErrEmptyJobOffer
	}
	answers.JobOffer = offer

	instructions, err := s.Prompter.Ask("Additional instructions (optional)", "", nil)
	if err != nil {
		return answers, fmt.Errorf("reading instructions: %w", err)
	}
	answers.Instructions = strings.TrimSpace(instructions)

	templatePath, err := s.Prompter.Ask("Word template (optional)", "", optionalFileExists)
	if err != nil {
		return answers, fmt.Errorf("reading template path: %w", err)
	}
	answers.TemplatePath = strings.TrimSpace(templatePath)

	def := ""
	if s.DefaultOutput != nil {
		def = s.DefaultOutput(answers.TemplatePath)
	}
	output, err := s.Prompter.Ask("Output file", def, nil)
	if err != nil {
		return answers, fmt.Errorf("reading output path: %w", err)
	}
	answers.OutputPath = strings.TrimSpace(output)
	if answers.OutputPath == "" {
		answers.OutputPath = def
	}

	return answers, nil
}

// ReadJobOffer collects lines from next until two consecutive empty lines
// or the end of input. The terminating empty line is not part of the text.
func ReadJobOffer(next func() (string, error)) (string, error) {
	var lines []string
	blank := false

	for {
		line, err := next()
		if errors.Is(err, io.EOF) {
			if line != "" {
				lines = append(lines, line)
			}
			break
		}
		if err != nil {
			return "", err
		}

		if strings.TrimSpace(line) == "" {
			if blank {
				break
			}
			blank = true
		} else {
			blank = false
		}
		lines = append(lines, line)
	}

	if blank && len(lines) > 0 {
		lines = lines[:len(lines)-1]
	}

	return strings.Join(lines, "\n"), nil
}

func fileExists(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("a file is required")
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("file not found: %s", path)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

func optionalFileExists(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	return fileExists(path)
}
