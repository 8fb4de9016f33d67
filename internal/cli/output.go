// Package cli provides CLI output utilities for Kazoeru.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hyperjump/kazoeru/internal/models"
	"github.com/hyperjump/kazoeru/pkg/utils"
)

// OutputFormat is the format for analysis result output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// WriteResult writes one analysis result to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteResult(w io.Writer, result *models.AnalysisResult, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	default:
		fmt.Fprintf(w, "%s\n", utils.Truncate(result.Filename, 60))
		fmt.Fprintf(w, "  words:      %d\n", result.WordCount)
		fmt.Fprintf(w, "  characters: %d\n", result.CharacterCount)
		fmt.Fprintf(w, "  whitespace: %d\n", result.WhitespaceCount)
		fmt.Fprintf(w, "  lines:      %d\n", result.LineCount)
		return nil
	}
}
