package extract

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// rtfDestinations are group destinations whose content is formatting or
// metadata, never visible text. The whole group is skipped.
var rtfDestinations = map[string]bool{
	"fonttbl":    true,
	"colortbl":   true,
	"stylesheet": true,
	"info":       true,
	"pict":       true,
	"themedata":  true,
}

// rtfSpecial maps control words to the visible text they produce.
var rtfSpecial = map[string]string{
	"par":       "\n",
	"line":      "\n",
	"sect":      "\n",
	"page":      "\n",
	"tab":       "\t",
	"cell":      " ",
	"emdash":    "—",
	"endash":    "–",
	"emspace":   " ",
	"enspace":   " ",
	"bullet":    "•",
	"lquote":    "‘",
	"rquote":    "’",
	"ldblquote": "“",
	"rdblquote": "”",
}

// extractRTF strips RTF control syntax from content and returns the visible
// text runs in reading order. Content that carries no RTF syntax passes
// through unchanged, mirroring the tolerance of the usual RTF-to-text tools.
func extractRTF(content []byte) (string, error) {
	src := decodeText(content)
	var out strings.Builder

	depth := 0
	skipUntil := -1 // group depth above which content is discarded
	ucSkip := 1     // chars to ignore after \uN, set by \ucN
	pending := 0    // fallback chars still to ignore after a \uN

	i := 0
	for i < len(src) {
		c := src[i]
		skipping := skipUntil >= 0 && depth > skipUntil

		switch c {
		case '{':
			depth++
			i++
		case '}':
			depth--
			if skipUntil >= 0 && depth <= skipUntil {
				skipUntil = -1
			}
			i++
		case '\r', '\n':
			// Raw newlines in RTF source are not text.
			i++
		case '\\':
			i++
			if i >= len(src) {
				break
			}
			switch n := src[i]; {
			case n == '\\' || n == '{' || n == '}':
				i++
				if !skipping {
					if pending > 0 {
						pending--
					} else {
						out.WriteByte(n)
					}
				}
			case n == '~':
				i++
				if !skipping && pending == 0 {
					out.WriteRune(0x00a0) // \~ is a non-breaking space
				}
			case n == '*':
				// \* introduces a destination we do not understand; drop it.
				i++
				if skipUntil < 0 {
					skipUntil = depth - 1
				}
			case n == '\'':
				i++
				if i+1 < len(src) {
					b, err := strconv.ParseUint(src[i:i+2], 16, 8)
					i += 2
					if err == nil && !skipping {
						if pending > 0 {
							pending--
						} else {
							out.WriteRune(decodeANSIByte(byte(b)))
						}
					}
				}
			case isASCIILetter(n):
				word, param, hasParam, next := readControlWord(src, i)
				i = next
				switch {
				case skipping:
				case word == "u" && hasParam:
					r := param
					if r < 0 {
						r += 0x10000
					}
					out.WriteRune(rune(r))
					pending = ucSkip
				case word == "uc" && hasParam:
					ucSkip = param
				case word == "bin" && hasParam:
					// Binary payload follows, skip it wholesale.
					if param > 0 && i+param <= len(src) {
						i += param
					}
				case rtfDestinations[word]:
					skipUntil = depth - 1
				default:
					if s, ok := rtfSpecial[word]; ok {
						out.WriteString(s)
					}
				}
			default:
				// Unknown control symbol, no text value.
				i++
			}
		default:
			i++
			if !skipping {
				if pending > 0 {
					pending--
				} else {
					out.WriteByte(c)
				}
			}
		}
	}
	return out.String(), nil
}

// readControlWord reads the control word starting at src[i] (the first
// letter), with its optional signed decimal parameter and one optional
// trailing space delimiter. Returns the word, the parameter, whether a
// parameter was present, and the index of the first unconsumed byte.
func readControlWord(src string, i int) (word string, param int, hasParam bool, next int) {
	start := i
	for i < len(src) && isASCIILetter(src[i]) {
		i++
	}
	word = src[start:i]

	numStart := i
	digitsStart := i
	if i < len(src) && src[i] == '-' {
		i++
		digitsStart = i
	}
	for i < len(src) && src[i] >= '0' && src[i] <= '9' {
		i++
	}
	if i > digitsStart {
		if v, err := strconv.Atoi(src[numStart:i]); err == nil {
			param, hasParam = v, true
		}
	} else {
		i = numStart
	}
	if i < len(src) && src[i] == ' ' {
		i++
	}
	return word, param, hasParam, i
}

// decodeANSIByte decodes an \'hh escape using the RTF default ANSI code page
// (Windows-1252), falling back to the raw byte value for the few bytes that
// code page leaves undefined.
func decodeANSIByte(b byte) rune {
	if r := charmap.Windows1252.DecodeByte(b); r != utf8.RuneError {
		return r
	}
	return rune(b)
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
