// Package extract provides text extraction from various document formats.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format identifies an extraction policy, derived from a lowercased filename
// extension. The set is closed: anything else is rejected before extraction.
type Format string

const (
	FormatTXT  Format = "txt"
	FormatCSV  Format = "csv"
	FormatRTF  Format = "rtf"
	FormatDOCX Format = "docx"
	FormatDOC  Format = "doc"
)

// ParseFormat derives the format tag from the trailing filename extension.
// Returns an *UnsupportedFormatError for files with no extension or an
// extension outside the supported set.
func ParseFormat(filename string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch f := Format(ext); f {
	case FormatTXT, FormatCSV, FormatRTF, FormatDOCX, FormatDOC:
		return f, nil
	default:
		return "", &UnsupportedFormatError{Format: ext}
	}
}

// Extractor extracts plain text from document files.
type Extractor struct{}

// NewExtractor returns a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract reads the file at path and returns its text content, dispatching
// on the format derived from the filename extension.
func (e *Extractor) Extract(path string) (string, error) {
	format, err := ParseFormat(path)
	if err != nil {
		return "", err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return e.ExtractBytes(content, format)
}

// ExtractBytes extracts text from content according to format.
// Plain text and CSV decode as UTF-8 with an ISO 8859-1 fallback, RTF is
// stripped to its visible text runs, and DOCX/DOC yield paragraph text joined
// by newlines. The input slice is never retained or modified.
func (e *Extractor) ExtractBytes(content []byte, format Format) (string, error) {
	switch format {
	case FormatTXT:
		return decodeText(content), nil
	case FormatCSV:
		return extractCSV(content)
	case FormatRTF:
		return extractRTF(content)
	case FormatDOCX, FormatDOC:
		return extractDOCX(content)
	default:
		return "", &UnsupportedFormatError{Format: string(format)}
	}
}
