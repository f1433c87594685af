package coinstats

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"btcwave/internal/domain/repository"
	"btcwave/pkg/http"
	"btcwave/pkg/util"
)

const (
	DominanceSourceName = "coinstats_dominance"
	ChartsSourceName    = "coinstats_monthly"

	apiKeyHeader = "X-API-KEY"
)

// DominanceClient fetches the BTC dominance series from CoinStats.
// The API returns one dominance value per point, so consecutive values
// are paired into open/close records for the wire format.
type DominanceClient struct {
	http    *http.Client
	baseURL string
	apiKey  string
	period  string
}

type DominanceOption func(*DominanceClient)

func WithDominanceAPIKey(key string) DominanceOption {
	return func(c *DominanceClient) { c.apiKey = key }
}

func WithDominancePeriod(period string) DominanceOption {
	return func(c *DominanceClient) { c.period = period }
}

func NewDominanceClient(httpClient *http.Client, baseURL string, opts ...DominanceOption) *DominanceClient {
	c := &DominanceClient{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		period:  "24h",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *DominanceClient) Name() string { return DominanceSourceName }

func (c *DominanceClient) Kind() repository.SeriesKind { return repository.KindDominance }

// Fetch pulls /insights/btc-dominance and emits one line per
// consecutive pair of points:
//
//	<ts> | Open: <prev>%, High: <max>%, Low: <min>%, Close: <cur>%
func (c *DominanceClient) Fetch(ctx context.Context) (string, error) {
	opts := &http.RequestOptions{
		Method:      http.MethodGet,
		URL:         c.baseURL + "/insights/btc-dominance",
		QueryParams: map[string][]string{"type": {c.period}},
	}
	if c.apiKey != "" {
		opts.Headers = map[string]string{apiKeyHeader: c.apiKey}
	}

	// each point is [timestamp_sec, dominance_pct]
	var body struct {
		Data [][]float64 `json:"data"`
	}
	if err := c.http.SendAndParse(ctx, opts, &body); err != nil {
		return "", fmt.Errorf("coinstats dominance: %w", err)
	}

	return renderPairs(body.Data, renderDominanceLine), nil
}

// ChartsClient fetches the monthly price chart for one coin from
// CoinStats. Chart points carry a single price, paired into open/close
// candles the same way dominance points are.
type ChartsClient struct {
	http    *http.Client
	baseURL string
	apiKey  string
	coinID  string
	period  string
}

type ChartsOption func(*ChartsClient)

func WithChartsAPIKey(key string) ChartsOption {
	return func(c *ChartsClient) { c.apiKey = key }
}

func WithChartsCoinID(id string) ChartsOption {
	return func(c *ChartsClient) { c.coinID = id }
}

func WithChartsPeriod(period string) ChartsOption {
	return func(c *ChartsClient) { c.period = period }
}

func NewChartsClient(httpClient *http.Client, baseURL string, opts ...ChartsOption) *ChartsClient {
	c := &ChartsClient{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		coinID:  "bitcoin",
		period:  "1m",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *ChartsClient) Name() string { return ChartsSourceName }

func (c *ChartsClient) Kind() repository.SeriesKind { return repository.KindOHLC }

// Fetch pulls /coins/{id}/charts and emits one OHLC line per
// consecutive pair of chart points.
func (c *ChartsClient) Fetch(ctx context.Context) (string, error) {
	opts := &http.RequestOptions{
		Method:      http.MethodGet,
		URL:         fmt.Sprintf("%s/coins/%s/charts", c.baseURL, c.coinID),
		QueryParams: map[string][]string{"period": {c.period}},
	}
	if c.apiKey != "" {
		opts.Headers = map[string]string{apiKeyHeader: c.apiKey}
	}

	// each point is [timestamp_sec, price_usd, ...]
	var points [][]float64
	if err := c.http.SendAndParse(ctx, opts, &points); err != nil {
		return "", fmt.Errorf("coinstats charts: %w", err)
	}

	return renderPairs(points, renderOHLCLine), nil
}

// renderPairs turns a [timestamp, value, ...] point series into wire
// lines, one per consecutive pair, stamped with the later timestamp.
func renderPairs(points [][]float64, line func(ts time.Time, open, close float64) string) string {
	var sb strings.Builder
	for i := 1; i < len(points); i++ {
		if len(points[i-1]) < 2 || len(points[i]) < 2 {
			continue
		}
		ts := time.Unix(int64(points[i][0]), 0).UTC()
		sb.WriteString(line(ts, points[i-1][1], points[i][1]))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func renderDominanceLine(ts time.Time, open, close float64) string {
	high, low := open, close
	if close > high {
		high = close
	}
	if open < low {
		low = open
	}
	return fmt.Sprintf("%s | Open: %s%%, High: %s%%, Low: %s%%, Close: %s%%",
		util.FormatWireTime(ts), formatValue(open), formatValue(high), formatValue(low), formatValue(close))
}

func renderOHLCLine(ts time.Time, open, close float64) string {
	high, low := open, close
	if close > high {
		high = close
	}
	if open < low {
		low = open
	}
	return fmt.Sprintf("%s | O: %s | H: %s | L: %s | C: %s",
		util.FormatWireTime(ts), formatValue(open), formatValue(high), formatValue(low), formatValue(close))
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
