package marketdata

import (
	"fmt"

	"btcwave/internal/domain/models"
)

// ValidateContinuity walks consecutive pairs and fails on the first pair
// whose gap exceeds maxGapHours (fractional hours permitted). A series of
// fewer than two points is trivially valid. The series is never mutated
// or reordered.
func ValidateContinuity(points []models.DataPoint, maxGapHours float64) error {
	if len(points) < 2 {
		return nil
	}

	for i := 1; i < len(points); i++ {
		gap := points[i].Timestamp.Sub(points[i-1].Timestamp).Hours()
		if gap > maxGapHours {
			return fmt.Errorf("%w: gap of %.1fh between entries %d and %d exceeds %.1fh ceiling",
				models.ErrTimestampDiscontinuity, gap, i-1, i, maxGapHours)
		}
	}
	return nil
}
