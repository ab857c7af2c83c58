package render

import (
	"io"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"

	"github.com/spigell/jobassist/internal/sanitize"
)

// Layout in points.
const (
	pageMargin = 56.69 // 2cm

	bodyFontSize = 11
	bodyLeading  = 14
	bodyAfter    = 6

	headingFontSize = 14
	headingLeading  = 18
	headingAround   = 12

	blankLineSpace = 6

	headingMaxRunes = 50
	headingMaxWords = 8
)

// PDFFile sanitizes the text and writes it as a PDF to path.
func PDFFile(path, text string) error {
	f, err := os.Create(path)
	if err != nil {
		return &RenderError{Message: "create pdf output", Cause: err}
	}

	if err := PDF(f, text); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return &RenderError{Message: "close pdf output", Cause: err}
	}
	return nil
}

// PDF sanitizes the text and writes an A4 document to w. Lines classified by
// IsHeading use the bold heading style.
func PDF(w io.Writer, text string) error {
	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(true, pageMargin)
	doc.AddPage()

	encode := doc.UnicodeTranslatorFromDescriptor("")

	lines := strings.Split(sanitize.Clean(text), "\n")
	for i := range lines {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			doc.Ln(blankLineSpace)
			continue
		}

		if IsHeading(lines, i) {
			doc.Ln(headingAround)
			doc.SetFont("Helvetica", "B", headingFontSize)
			doc.MultiCell(0, headingLeading, encode(line), "", "L", false)
			doc.Ln(headingAround)
			continue
		}

		doc.SetFont("Helvetica", "", bodyFontSize)
		doc.MultiCell(0, bodyLeading, encode(line), "", "L", false)
		doc.Ln(bodyAfter)
	}

	if err := doc.Output(w); err != nil {
		return &RenderError{Message: "write pdf", Cause: err}
	}
	return nil
}

// IsHeading reports whether lines[i] is a section title: shorter than 50
// characters, not ending in '.', ',' or ':', and either fully upper-case,
// followed by a blank line, or under 8 words.
func IsHeading(lines []string, i int) bool {
	if i < 0 || i >= len(lines) {
		return false
	}

	line := strings.TrimSpace(lines[i])
	if line == "" || utf8.RuneCountInString(line) >= headingMaxRunes {
		return false
	}

	if strings.HasSuffix(line, ".") || strings.HasSuffix(line, ",") || strings.HasSuffix(line, ":") {
		return false
	}

	if isUpper(line) {
		return true
	}

	if i+1 < len(lines) && strings.TrimSpace(lines[i+1]) == "" {
		return true
	}

	return len(strings.Fields(line)) < headingMaxWords
}

// isUpper is true when the line has at least one cased letter and no lower-case one.
func isUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			cased = true
		}
	}
	return cased
}
