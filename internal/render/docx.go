package render

import (
	"errors"
	"os"
	"strings"

	"github.com/lukasjarosch/go-docx"
)

// Placeholder is the template variable replaced by the adapted résumé.
// Templates reference it as {cv_content}.
const Placeholder = "cv_content"

// Template fills the Word template with the adapted text, keeping the
// template's own layout and styles, and writes the result to outputPath.
func Template(templatePath, outputPath, text string) error {
	templatePath = strings.TrimSpace(templatePath)
	if templatePath == "" {
		return &TemplateError{Message: "template path is required"}
	}

	if _, err := os.Stat(templatePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &TemplateError{Message: "template " + templatePath + " does not exist", Cause: err}
		}
		return &TemplateError{Message: "stat template", Cause: err}
	}

	doc, err := docx.Open(templatePath)
	if err != nil {
		return &TemplateError{Message: "open template", Cause: err}
	}
	defer doc.Close()

	if err := doc.ReplaceAll(docx.PlaceholderMap{Placeholder: text}); err != nil {
		return &TemplateError{Message: "fill placeholder {" + Placeholder + "}", Cause: err}
	}

	if err := doc.WriteToFile(outputPath); err != nil {
		return &RenderError{Message: "write docx output", Cause: err}
	}

	return nil
}
