package match

import (
	"strings"
	"time"
)

// isoLayouts cover ISO-like inputs after the fractional-second suffix and 'T'
// separator are stripped.
var isoLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDate parses the date/time formats seen in medical-spa exports. It never
// returns an error: unparseable input reports ok=false and the caller degrades
// the date feature to zero.
func ParseDate(s string, formats []string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	// ISO-like: "2024-08-15T14:30:00.123" and friends. Fractional seconds
	// and anything after the first '.' are dropped.
	if strings.ContainsAny(s, "T ") {
		iso := strings.ReplaceAll(s, "T", " ")
		if i := strings.IndexByte(iso, '.'); i >= 0 {
			iso = iso[:i]
		}
		for _, layout := range isoLayouts {
			if t, err := time.Parse(layout, iso); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	}

	for _, layout := range formats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
