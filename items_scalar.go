package toml

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/golang-sql/civil"
)

// IntegerItem is a TOML integer. Value is its two's-complement 64-bit
// representation; Raw preserves the exact source form (base prefix,
// underscores, sign) so unmodified documents re-emit byte for byte.
type IntegerItem struct {
	trivialItem
	Value int64
	Raw   string
}

func (n *IntegerItem) ItemKind() ItemKind { return ItemInteger }
func (n *IntegerItem) Text() string       { return n.Raw }
func (n *IntegerItem) clone() Item {
	c := *n
	return &c
}

// NewInteger constructs an Integer item with standard decimal rendering.
func NewInteger(v int64) *IntegerItem {
	return &IntegerItem{trivialItem: trivialItem{trivia: defaultTrivia()}, Value: v, Raw: strconv.FormatInt(v, 10)}
}

// Int64 parses the preserved raw text, honoring base prefixes and
// underscore separators (spec.md §4.2).
func (n *IntegerItem) Int64() (int64, error) {
	return parseIntegerRaw(n.Raw)
}

func parseIntegerRaw(raw string) (int64, error) {
	clean := strings.ReplaceAll(raw, "_", "")
	switch {
	case strings.HasPrefix(clean, "0x") || strings.HasPrefix(clean, "+0x") || strings.HasPrefix(clean, "-0x"):
		return strconv.ParseInt(stripBasePrefix(clean, "0x"), 16, 64)
	case strings.HasPrefix(clean, "0o"):
		return strconv.ParseInt(stripBasePrefix(clean, "0o"), 8, 64)
	case strings.HasPrefix(clean, "0b"):
		return strconv.ParseInt(stripBasePrefix(clean, "0b"), 2, 64)
	}
	clean = strings.TrimPrefix(clean, "+")
	return strconv.ParseInt(clean, 10, 64)
}

func stripBasePrefix(clean, prefix string) string {
	if idx := strings.Index(clean, prefix); idx >= 0 {
		return clean[idx+len(prefix):]
	}
	return clean
}

// FloatItem is a TOML float, including the special inf/nan forms.
type FloatItem struct {
	trivialItem
	Value float64
	Raw   string
	IsNaN bool
	IsInf bool
	Sign  int8 // -1, 0, or +1 as written
}

func (n *FloatItem) ItemKind() ItemKind { return ItemFloat }
func (n *FloatItem) Text() string       { return n.Raw }
func (n *FloatItem) clone() Item {
	c := *n
	return &c
}

// NewFloat constructs a Float item, choosing inf/nan/decimal rendering.
func NewFloat(v float64) *FloatItem {
	item := &FloatItem{trivialItem: trivialItem{trivia: defaultTrivia()}, Value: v}
	switch {
	case math.IsInf(v, 1):
		item.Raw, item.IsInf, item.Sign = "inf", true, 1
	case math.IsInf(v, -1):
		item.Raw, item.IsInf, item.Sign = "-inf", true, -1
	case math.IsNaN(v):
		item.Raw, item.IsNaN = "nan", true
	default:
		text := strconv.FormatFloat(v, 'g', -1, 64)
		if !strings.ContainsAny(text, ".eE") {
			text += ".0"
		}
		item.Raw = text
	}
	return item
}

// Float64 parses the preserved raw text into a float64.
func (n *FloatItem) Float64() (float64, error) {
	clean := strings.ReplaceAll(n.Raw, "_", "")
	switch clean {
	case "inf", "+inf":
		return math.Inf(1), nil
	case "-inf":
		return math.Inf(-1), nil
	case "nan", "+nan", "-nan":
		return math.NaN(), nil
	}
	clean = strings.TrimPrefix(clean, "+")
	return strconv.ParseFloat(clean, 64)
}

// BoolItem is a TOML boolean.
type BoolItem struct {
	trivialItem
	Value bool
}

func (n *BoolItem) ItemKind() ItemKind { return ItemBool }
func (n *BoolItem) Text() string {
	if n.Value {
		return "true"
	}
	return "false"
}
func (n *BoolItem) clone() Item {
	c := *n
	return &c
}

// NewBool constructs a Bool item.
func NewBool(v bool) *BoolItem {
	return &BoolItem{trivialItem: trivialItem{trivia: defaultTrivia()}, Value: v}
}

// DateItem is a TOML local date (no time-of-day, no offset).
type DateItem struct {
	trivialItem
	Value civil.Date
	Raw   string
}

func (n *DateItem) ItemKind() ItemKind { return ItemDate }
func (n *DateItem) Text() string       { return n.Raw }
func (n *DateItem) clone() Item {
	c := *n
	return &c
}

// NewDate constructs a local-date item.
func NewDate(v civil.Date) *DateItem {
	return &DateItem{trivialItem: trivialItem{trivia: defaultTrivia()}, Value: v, Raw: v.String()}
}

// TimeItem is a TOML local time (no date, no offset).
type TimeItem struct {
	trivialItem
	Value civil.Time
	Raw   string
}

func (n *TimeItem) ItemKind() ItemKind { return ItemTime }
func (n *TimeItem) Text() string       { return n.Raw }
func (n *TimeItem) clone() Item {
	c := *n
	return &c
}

// NewTime constructs a local-time item, truncated to microsecond
// precision per spec.md §4.2.
func NewTime(v civil.Time) *TimeItem {
	v.Nanosecond = (v.Nanosecond / 1000) * 1000
	return &TimeItem{trivialItem: trivialItem{trivia: defaultTrivia()}, Value: v, Raw: v.String()}
}

// DateTimeItem is a TOML offset or local datetime. HasOffset distinguishes
// "1979-05-27T07:32:00Z" from the offset-less local form, since both
// decode to the same wall-clock fields.
type DateTimeItem struct {
	trivialItem
	Value     time.Time
	Raw       string
	HasOffset bool
}

func (n *DateTimeItem) ItemKind() ItemKind { return ItemDateTime }
func (n *DateTimeItem) Text() string       { return n.Raw }
func (n *DateTimeItem) clone() Item {
	c := *n
	return &c
}

// NewDateTime constructs an offset datetime item rendered in RFC 3339
// form with microsecond truncation.
func NewDateTime(v time.Time) *DateTimeItem {
	v = v.Truncate(time.Microsecond)
	raw := v.Format("2006-01-02T15:04:05.999999Z07:00")
	return &DateTimeItem{trivialItem: trivialItem{trivia: defaultTrivia()}, Value: v, Raw: raw, HasOffset: true}
}

// StringKind identifies the four TOML string delimiter styles.
type StringKind int

const (
	StringBasicSingle StringKind = iota
	StringBasicMulti
	StringLiteralSingle
	StringLiteralMulti
)

// StringItem stores both the decoded Value and the verbatim Original so
// the emitter reproduces exact quoting and escape sequences when the
// string is unmodified (spec.md §4.3).
type StringItem struct {
	trivialItem
	Kind     StringKind
	Value    string
	Original string // empty when constructed fresh (no source to preserve)
}

func (n *StringItem) ItemKind() ItemKind { return ItemString }

func (n *StringItem) Text() string {
	if n.Original != "" {
		return n.Original
	}
	return renderString(n.Kind, n.Value)
}

func (n *StringItem) clone() Item {
	c := *n
	return &c
}

// StringOptions controls how NewStringOpts renders a host string, per
// spec.md §6: literal rejects newlines and the matching quote; multiline
// uses triple delimiters. Basic (non-literal) strings are always rendered
// with escapes: Escape must be true for them, and NewStringOpts rejects
// Escape=false with a KindInvalidString error. Escape has no effect on literal
// strings. NewString sets Escape to true; the zero value leaves it false.
type StringOptions struct {
	Literal   bool
	Multiline bool
	Escape    bool
}

// NewString constructs a basic single-line string with standard escaping,
// matching the teacher's NewString constructor.
func NewString(s string) *StringItem {
	item, err := NewStringOpts(s, StringOptions{Escape: true})
	if err != nil {
		// s contains no newline/quote combination that basic-single
		// escaping cannot represent, so this constructor cannot fail.
		panic(err)
	}
	return item
}

// NewStringOpts constructs a string item honoring the literal/multiline/
// escape option combination, returning a *ParseError of KindInvalidString
// (matching ErrInvalidString under errors.Is) on an
// impossible combination (e.g. literal with escape=false and content
// containing the delimiter with no multiline room to avoid it).
func NewStringOpts(s string, opts StringOptions) (*StringItem, error) {
	kind := stringKindOf(opts)
	if opts.Literal && !opts.Multiline && strings.ContainsAny(s, "'\n") {
		return nil, &ParseError{Kind: KindInvalidString, Message: "single-line literal string cannot contain a newline or a single quote"}
	}
	if opts.Literal && opts.Multiline && strings.Contains(s, "'''") {
		return nil, &ParseError{Kind: KindInvalidString, Message: "multi-line literal string cannot contain '''"}
	}
	if !opts.Escape && !opts.Literal {
		return nil, &ParseError{Kind: KindInvalidString, Message: "non-literal strings with escape=false are not representable"}
	}
	return &StringItem{
		trivialItem: trivialItem{trivia: defaultTrivia()},
		Kind:        kind,
		Value:       s,
	}, nil
}

func stringKindOf(opts StringOptions) StringKind {
	switch {
	case opts.Literal && opts.Multiline:
		return StringLiteralMulti
	case opts.Literal:
		return StringLiteralSingle
	case opts.Multiline:
		return StringBasicMulti
	default:
		return StringBasicSingle
	}
}

func renderString(kind StringKind, value string) string {
	switch kind {
	case StringLiteralSingle:
		return "'" + value + "'"
	case StringLiteralMulti:
		return "'''" + value + "'''"
	case StringBasicMulti:
		return `"""` + escapeBasicString(value) + `"""`
	default:
		return `"` + escapeBasicString(value) + `"`
	}
}

// decodedValue decodes the string to its Go representation, unescaping and
// trimming multi-line delimiter artifacts as needed.
func (n *StringItem) decodedValue() string {
	if n.Original == "" {
		return n.Value
	}
	return decodeStringLiteral(n.Original)
}

// Decoded returns the string's unescaped Go value, regardless of which
// of the four quoting styles produced it.
func (n *StringItem) Decoded() (string, error) {
	return n.decodedValue(), nil
}

// escapeBasicString escapes a Go string for use inside TOML double
// quotes, adapted from the teacher's mutate.go escapeBasicString.
func escapeBasicString(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\b':
			b.WriteString(`\b`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			b.WriteString(`\n`)
		case '\f':
			b.WriteString(`\f`)
		case '\r':
			b.WriteString(`\r`)
		default:
			escapeDefaultRune(&b, r)
		}
	}
	return b.String()
}

func escapeDefaultRune(b *strings.Builder, r rune) {
	switch {
	case r < 0x20 || r == 0x7F:
		fmt.Fprintf(b, `\u%04X`, r)
	case r > 0xFFFF:
		fmt.Fprintf(b, `\U%08X`, r)
	default:
		b.WriteRune(r)
	}
}
