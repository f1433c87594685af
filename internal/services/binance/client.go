package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"btcwave/internal/domain/repository"
	"btcwave/pkg/http"
	"btcwave/pkg/util"
)

const SourceName = "binance_klines"

// Client fetches daily klines for one symbol from the Binance public API.
type Client struct {
	http     *http.Client
	baseURL  string
	symbol   string
	interval string
	limit    int
}

type Option func(*Client)

func WithSymbol(symbol string) Option {
	return func(c *Client) { c.symbol = symbol }
}

func WithInterval(interval string) Option {
	return func(c *Client) { c.interval = interval }
}

func WithLimit(limit int) Option {
	return func(c *Client) { c.limit = limit }
}

func NewClient(httpClient *http.Client, baseURL string, opts ...Option) *Client {
	c := &Client{
		http:     httpClient,
		baseURL:  strings.TrimRight(baseURL, "/"),
		symbol:   "BTCUSDT",
		interval: "1d",
		limit:    30,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Name() string { return SourceName }

func (c *Client) Kind() repository.SeriesKind { return repository.KindOHLC }

// Fetch pulls /api/v3/klines and emits one OHLC line per candle.
// Binance mixes types within a kline (open time is a number, prices
// are strings), so each candle decodes as raw JSON values.
func (c *Client) Fetch(ctx context.Context) (string, error) {
	opts := &http.RequestOptions{
		Method: http.MethodGet,
		URL:    c.baseURL + "/api/v3/klines",
		QueryParams: map[string][]string{
			"symbol":   {c.symbol},
			"interval": {c.interval},
			"limit":    {strconv.Itoa(c.limit)},
		},
	}

	var klines [][]json.RawMessage
	if err := c.http.SendAndParse(ctx, opts, &klines); err != nil {
		return "", fmt.Errorf("binance klines: %w", err)
	}

	var sb strings.Builder
	for _, k := range klines {
		if len(k) < 5 {
			continue
		}
		var openTimeMs int64
		if err := json.Unmarshal(k[0], &openTimeMs); err != nil {
			continue
		}
		prices := make([]string, 4)
		ok := true
		for i := 1; i <= 4; i++ {
			if err := json.Unmarshal(k[i], &prices[i-1]); err != nil {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		ts := time.UnixMilli(openTimeMs).UTC()
		fmt.Fprintf(&sb, "%s | O: %s | H: %s | L: %s | C: %s\n",
			util.FormatWireTime(ts), prices[0], prices[1], prices[2], prices[3])
	}
	return sb.String(), nil
}
