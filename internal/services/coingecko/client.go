package coingecko

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

const SourceName = "coingecko_daily"

// Client fetches hourly OHLC candles for one coin from the CoinGecko
// public API and renders them as wire-format lines.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	coinID  string
	days    int
}

type Option func(*Client)

func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

func WithCoinID(id string) Option {
	return func(c *Client) { c.coinID = id }
}

func WithDays(days int) Option {
	return func(c *Client) { c.days = days }
}

func NewClient(httpClient *http.Client, baseURL string, opts ...Option) *Client {
	c := &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(baseURL, "/"),
		coinID:  "bitcoin",
		days:    1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Name() string { return SourceName }

func (c *Client) Kind() repository.SeriesKind { return repository.KindOHLC }

// Fetch pulls /coins/{id}/ohlc and emits one line per candle:
//
//	<ts> | O: <open> | H: <high> | L: <low> | C: <close>
func (c *Client) Fetch(ctx context.Context) (string, error) {
	opts := &http.RequestOptions{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("%s/coins/%s/ohlc", c.baseURL, c.coinID),
		QueryParams: map[string][]string{
			"vs_currency": {"usd"},
			"days":        {strconv.Itoa(c.days)},
		},
	}
	if c.apiKey != "" {
		opts.Headers = map[string]string{"x-cg-demo-api-key": c.apiKey}
	}

	// each candle is [timestamp_ms, open, high, low, close]
	var candles [][]float64
	if err := c.http.SendAndParse(ctx, opts, &candles); err != nil {
		return "", fmt.Errorf("coingecko ohlc: %w", err)
	}

	var sb strings.Builder
	for _, candle := range candles {
		if len(candle) < 5 {
			continue
		}
		ts := time.UnixMilli(int64(candle[0])).UTC()
		fmt.Fprintf(&sb, "%s | O: %s | H: %s | L: %s | C: %s\n",
			util.FormatWireTime(ts),
			formatPrice(candle[1]),
			formatPrice(candle[2]),
			formatPrice(candle[3]),
			formatPrice(candle[4]),
		)
	}
	return sb.String(), nil
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
