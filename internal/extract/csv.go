package extract

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// extractCSV flattens every cell of every row, in row-then-column order, into
// a single space-joined string. Content is decoded with the same UTF-8 /
// ISO 8859-1 strategy as plain text before parsing. Rows may have varying
// widths; empty cells are kept as empty tokens so column positions stay
// visible in the output.
func extractCSV(content []byte) (string, error) {
	r := csv.NewReader(strings.NewReader(decodeText(content)))
	r.FieldsPerRecord = -1

	var cells []string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", extractionError(FormatCSV, err)
		}
		cells = append(cells, row...)
	}
	return strings.Join(cells, " "), nil
}
