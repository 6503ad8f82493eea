package toml

import (
	"strings"
	"time"

	"github.com/golang-sql/civil"
)

// parseDateTimeLiteral classifies and parses a token already accepted by
// validateDateTimeText into the right one of Date/Time/DateTime, per
// spec.md §4.2's three datetime forms. Raw is always kept verbatim so
// Text() reproduces the source exactly regardless of parse fidelity.
func parseDateTimeLiteral(raw string) Item {
	hasDateShape := len(raw) >= 10 && isDigit(raw[0]) && raw[4] == '-' && raw[7] == '-'
	rest := raw
	if hasDateShape {
		rest = raw[10:]
	}
	hasTimeShape := hasDateShape && len(rest) > 0 && (rest[0] == 'T' || rest[0] == 't' || rest[0] == ' ')
	if !hasDateShape {
		hasTimeShape = strings.ContainsRune(raw, ':')
	}

	switch {
	case hasDateShape && hasTimeShape:
		return parseFullDateTime(raw)
	case hasDateShape:
		d, err := civil.ParseDate(raw)
		if err != nil {
			d = civil.Date{}
		}
		return &DateItem{Value: d, Raw: raw}
	default:
		t, err := civil.ParseTime(raw)
		if err != nil {
			t = civil.Time{}
		}
		return &TimeItem{Value: t, Raw: raw}
	}
}

func parseFullDateTime(raw string) Item {
	hasOffset := strings.HasSuffix(raw, "Z") || strings.HasSuffix(raw, "z") || hasTrailingOffsetSign(raw)

	norm := raw
	if len(norm) > 10 && (norm[10] == 't' || norm[10] == ' ') {
		norm = norm[:10] + "T" + norm[11:]
	}
	if !hasOffset {
		norm += "Z"
	}
	t, err := time.Parse("2006-01-02T15:04:05.999999999Z07:00", norm)
	if err != nil {
		t = time.Time{}
	}
	return &DateTimeItem{Value: t, Raw: raw, HasOffset: hasOffset}
}

// hasTrailingOffsetSign reports whether raw ends in a numeric UTC offset
// like "+01:00" or "-05:30", as distinct from the hyphens inside the
// date portion.
func hasTrailingOffsetSign(raw string) bool {
	if len(raw) < 6 {
		return false
	}
	tail := raw[len(raw)-6:]
	return (tail[0] == '+' || tail[0] == '-') && tail[3] == ':'
}
