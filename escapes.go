package toml

import (
	"strconv"
	"strings"
)

// processBasicEscapes decodes the escape sequences of a basic (double
// quoted) string body, adapted from the teacher's parser.go
// unquoteBasicStr/parserProcessBasicEscapes. It assumes body is already
// free of its surrounding quotes.
func processBasicEscapes(body string) string {
	var b strings.Builder
	i := 0
	for i < len(body) {
		if body[i] != '\\' {
			b.WriteByte(body[i])
			i++
			continue
		}
		if i+1 >= len(body) {
			b.WriteByte('\\')
			i++
			continue
		}
		n, next := decodeSingleEscape(body, i+1)
		b.WriteString(n)
		i = next
	}
	return b.String()
}

func decodeSingleEscape(body string, i int) (string, int) {
	switch body[i] {
	case 'b':
		return "\b", i + 1
	case 't':
		return "\t", i + 1
	case 'n':
		return "\n", i + 1
	case 'f':
		return "\f", i + 1
	case 'e':
		return "\x1b", i + 1
	case 'r':
		return "\r", i + 1
	case '"':
		return "\"", i + 1
	case '\\':
		return "\\", i + 1
	case 'x':
		return decodeHexEscape(body, i+1, 2)
	case 'u':
		return decodeHexEscape(body, i+1, 4)
	case 'U':
		return decodeHexEscape(body, i+1, 8)
	default:
		return "\\" + string(body[i]), i + 1
	}
}

func decodeHexEscape(body string, start, width int) (string, int) {
	if start+width > len(body) {
		return "", len(body)
	}
	hex := body[start : start+width]
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return "", start + width
	}
	return string(rune(n)), start + width
}

// processMultiLineBasicEscapes decodes a multi-line basic string body,
// additionally honoring the line-ending backslash that swallows
// following whitespace and newlines (spec.md §4.3).
func processMultiLineBasicEscapes(body string) string {
	var b strings.Builder
	i := 0
	for i < len(body) {
		if body[i] != '\\' {
			b.WriteByte(body[i])
			i++
			continue
		}
		if i+1 >= len(body) {
			b.WriteByte('\\')
			i++
			continue
		}
		if j := skipLineEndingBackslash(body, i+1); j >= 0 {
			i = j
			continue
		}
		n, next := decodeSingleEscape(body, i+1)
		b.WriteString(n)
		i = next
	}
	return b.String()
}

// skipLineEndingBackslash recognizes `\` followed only by whitespace up
// to and across at least one newline, and returns the index past all
// swallowed whitespace, or -1 if this is not that form.
func skipLineEndingBackslash(body string, i int) int {
	j := i
	sawNewline := false
	for j < len(body) {
		switch body[j] {
		case ' ', '\t', '\r':
			j++
		case '\n':
			sawNewline = true
			j++
		default:
			if sawNewline {
				return j
			}
			return -1
		}
	}
	if sawNewline {
		return j
	}
	return -1
}

// decodeStringLiteral decodes a verbatim, still-quoted TOML string
// (as captured in StringItem.Original) back to its host value.
func decodeStringLiteral(raw string) string {
	switch {
	case strings.HasPrefix(raw, `"""`) && strings.HasSuffix(raw, `"""`):
		body := raw[3 : len(raw)-3]
		body = strings.TrimPrefix(body, "\n")
		return processMultiLineBasicEscapes(body)
	case strings.HasPrefix(raw, `'''`) && strings.HasSuffix(raw, `'''`):
		body := raw[3 : len(raw)-3]
		return strings.TrimPrefix(body, "\n")
	case strings.HasPrefix(raw, `"`) && strings.HasSuffix(raw, `"`):
		return processBasicEscapes(raw[1 : len(raw)-1])
	case strings.HasPrefix(raw, `'`) && strings.HasSuffix(raw, `'`):
		return raw[1 : len(raw)-1]
	default:
		return raw
	}
}
