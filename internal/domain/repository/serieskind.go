package repository

// SeriesKind selects which line grammar a raw series is parsed with.
type SeriesKind string

const (
	// KindOHLC matches "<ts> | O: <f> | H: <f> | L: <f> | C: <f>" lines.
	KindOHLC SeriesKind = "ohlc"
	// KindDominance matches "<ts> | Open: <f>%, ... Close: <f>%" lines.
	KindDominance SeriesKind = "dominance"
)

// IsValidSeriesKind returns true if k is a supported series kind.
func IsValidSeriesKind(k SeriesKind) bool {
	switch k {
	case KindOHLC, KindDominance:
		return true
	default:
		return false
	}
}
