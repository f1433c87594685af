package marketdata

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"btcwave/internal/domain/models"
	"btcwave/internal/domain/repository"
	"btcwave/pkg/util"
)

// MinPoints is the minimum number of usable points a series must yield.
const MinPoints = 7

var (
	ohlcPattern      = regexp.MustCompile(`(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z) \| O: ([\d.]+) \| H: [\d.]+ \| L: [\d.]+ \| C: ([\d.]+)`)
	dominancePattern = regexp.MustCompile(`(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z) \| Open: ([\d.]+)%,.*Close: ([\d.]+)%`)
	recordPrefix     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z \|`)
)

// ParseResult carries the points extracted from one raw payload plus the
// count of record-shaped lines that failed the grammar. Skipped lines are
// never an error here; the orchestrator reports them as warnings.
type ParseResult struct {
	Points  []models.DataPoint
	Skipped int
}

// ParseSeries extracts every line matching the kind's grammar into a
// DataPoint, preserving input order. Fewer than MinPoints matches is a
// hard failure.
func ParseSeries(raw string, kind repository.SeriesKind) (*ParseResult, error) {
	pattern := ohlcPattern
	if kind == repository.KindDominance {
		pattern = dominancePattern
	}

	res := &ParseResult{}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		m := pattern.FindStringSubmatch(line)
		if m == nil {
			// Record-shaped lines with the wrong token layout are
			// skipped; everything else (debug chatter, headers) is
			// ignored outright.
			if recordPrefix.MatchString(line) {
				res.Skipped++
			}
			continue
		}

		ts, ok := util.ParseWireTime(m[1])
		if !ok {
			res.Skipped++
			continue
		}
		open, err1 := strconv.ParseFloat(m[2], 64)
		closing, err2 := strconv.ParseFloat(m[3], 64)
		if err1 != nil || err2 != nil {
			res.Skipped++
			continue
		}

		res.Points = append(res.Points, models.DataPoint{
			Timestamp: ts,
			Open:      open,
			Close:     closing,
		})
	}

	if len(res.Points) < MinPoints {
		return nil, fmt.Errorf("%w: less than %d data points found in %s data", models.ErrIncompleteData, MinPoints, kind)
	}

	return res, nil
}
