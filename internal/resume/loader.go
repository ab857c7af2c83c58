// Package resume loads the source résumé text.
package resume

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Format is the source format of a résumé.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatText Format = "txt"
)

// Document is the extracted résumé. It is not modified after Load.
type Document struct {
	Path   string
	Format Format
	Text   string
}

// UnsupportedFormatError is returned for résumé files that are neither PDF nor text.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format: %q (use a .pdf or .txt résumé)", e.Ext)
}

// DetectFormat maps a file extension to a Format.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		return FormatPDF, nil
	case ".txt":
		return FormatText, nil
	default:
		return "", &UnsupportedFormatError{Ext: ext}
	}
}

// Load extracts the text of a PDF or plain text résumé.
func Load(path string) (Document, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return Document{}, err
	}

	var text string
	switch format {
	case FormatPDF:
		text, err = extractPDF(path)
	case FormatText:
		text, err = readText(path)
	}
	if err != nil {
		return Document{}, err
	}

	return Document{Path: path, Format: format, Text: text}, nil
}

func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read résumé: %w", err)
	}
	return string(data), nil
}

// extractPDF returns the plain text of every page, each followed by a line break.
func extractPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf résumé: %w", err)
	}
	defer f.Close()

	var builder strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			builder.WriteString("\n")
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("extract text of page %d: %w", pageNum, err)
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}

	return builder.String(), nil
}
