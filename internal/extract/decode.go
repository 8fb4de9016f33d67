package extract

import (
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// decodeText decodes content as UTF-8, falling back to ISO 8859-1 when the
// bytes are not valid UTF-8. The fallback maps every byte to a code point,
// so decoding is total over arbitrary input and never fails.
func decodeText(content []byte) string {
	if utf8.Valid(content) {
		return string(content)
	}
	return decodeLatin1(content)
}

// decodeLatin1 decodes content as ISO 8859-1. Every byte sequence is valid
// in this encoding, so the decoder error is unreachable.
func decodeLatin1(content []byte) string {
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(content)
	if err != nil {
		return string(content)
	}
	return string(decoded)
}
