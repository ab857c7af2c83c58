// Package render writes the adapted résumé to its output file.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Mode selects how the output file is produced.
type Mode string

const (
	// ModePDF lays out the sanitized text as a PDF.
	ModePDF Mode = "pdf"
	// ModeTemplate injects the raw text into a Word template.
	ModeTemplate Mode = "docx-template"
	// ModeText writes the raw text as is.
	ModeText Mode = "text"
)

// SelectMode picks the output mode. A template always wins; without one only
// .txt and .md outputs skip the PDF layout.
func SelectMode(templatePath, outputPath string) Mode {
	if strings.TrimSpace(templatePath) != "" {
		return ModeTemplate
	}

	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".txt", ".md":
		return ModeText
	default:
		return ModePDF
	}
}

// Default output names, chosen by whether a Word template is used.
const (
	DefaultPDFOutput  = "CV_Adapte.pdf"
	DefaultDocxOutput = "CV_Adapte.docx"
)

// DefaultOutputPath returns the output file used when none is given.
func DefaultOutputPath(templatePath string) string {
	if strings.TrimSpace(templatePath) != "" {
		return DefaultDocxOutput
	}
	return DefaultPDFOutput
}

// Request describes one render.
type Request struct {
	Mode         Mode
	Text         string
	TemplatePath string
	OutputPath   string
}

// Renderer dispatches a Request to the matching output writer.
type Renderer struct{}

func (Renderer) Render(req Request) error {
	if strings.TrimSpace(req.OutputPath) == "" {
		return &RenderError{Message: "output path is required"}
	}

	switch req.Mode {
	case ModePDF:
		return PDFFile(req.OutputPath, req.Text)
	case ModeTemplate:
		return Template(req.TemplatePath, req.OutputPath, req.Text)
	case ModeText:
		if err := os.WriteFile(req.OutputPath, []byte(req.Text), 0o644); err != nil {
			return &RenderError{Message: "write text output", Cause: err}
		}
		return nil
	default:
		return &RenderError{Message: fmt.Sprintf("unknown render mode %q", req.Mode)}
	}
}
