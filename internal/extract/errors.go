package extract

import (
	"errors"
	"fmt"
)

// ErrExtraction marks failures where a format-specific parser rejected the
// content (corrupt archive, invalid delimited structure). The underlying
// parser error is wrapped alongside it and reachable via errors.Unwrap.
var ErrExtraction = errors.New("extraction failed")

// UnsupportedFormatError reports a format tag outside the supported set.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format: %s", e.Format)
}

// extractionError wraps err so callers can match it with
// errors.Is(err, ErrExtraction) while keeping the parser error in the chain.
func extractionError(format Format, err error) error {
	return fmt.Errorf("%w: extract %s: %w", ErrExtraction, format, err)
}
