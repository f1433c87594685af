package util

import "time"

// WireTimeLayout is the timestamp format used on every provider output line.
const WireTimeLayout = "2006-01-02T15:04:05Z"

// ParseWireTime parses a strict wire-format timestamp. Returns (t, true) if it worked.
func ParseWireTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(WireTimeLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// FormatWireTime renders a time in the wire format (always UTC).
func FormatWireTime(t time.Time) string {
	return t.UTC().Format(WireTimeLayout)
}
