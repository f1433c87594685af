package coinstats

import (
	"context"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"btcwave/internal/domain/repository"
	"btcwave/pkg/http"
)

func TestDominanceFetchPairsPoints(t *testing.T) {
	var gotPath, gotType, gotKey string
	srv := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		gotPath = r.URL.Path
		gotType = r.URL.Query().Get("type")
		gotKey = r.Header.Get("X-API-KEY")
		w.Header().Set("Content-Type", "application/json")
		// 2025-08-29T12:00:00Z, 13:00:00Z, 14:00:00Z
		w.Write([]byte(`{"data":[[1756468800,48.5],[1756472400,48.8],[1756476000,48.6]]}`))
	}))
	defer srv.Close()

	c := NewDominanceClient(http.NewClient(), srv.URL,
		WithDominanceAPIKey("cs-key"), WithDominancePeriod("24h"))

	if c.Name() != DominanceSourceName {
		t.Errorf("name = %q", c.Name())
	}
	if c.Kind() != repository.KindDominance {
		t.Errorf("kind = %q", c.Kind())
	}

	raw, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if gotPath != "/insights/btc-dominance" {
		t.Errorf("path = %q", gotPath)
	}
	if gotType != "24h" {
		t.Errorf("type = %q", gotType)
	}
	if gotKey != "cs-key" {
		t.Errorf("api key header = %q", gotKey)
	}

	lines := strings.Split(strings.TrimSpace(raw), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2 from 3 points: %q", len(lines), raw)
	}
	want := "2025-08-29T13:00:00Z | Open: 48.5%, High: 48.8%, Low: 48.5%, Close: 48.8%"
	if lines[0] != want {
		t.Errorf("line = %q, want %q", lines[0], want)
	}
	// falling pair flips high and low
	want = "2025-08-29T14:00:00Z | Open: 48.8%, High: 48.8%, Low: 48.6%, Close: 48.6%"
	if lines[1] != want {
		t.Errorf("line = %q, want %q", lines[1], want)
	}
}

func TestChartsFetchPairsPoints(t *testing.T) {
	var gotPath, gotPeriod string
	srv := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		gotPath = r.URL.Path
		gotPeriod = r.URL.Query().Get("period")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[[1756468800,47000,0,0],[1756472400,47500,0,0]]`))
	}))
	defer srv.Close()

	c := NewChartsClient(http.NewClient(), srv.URL,
		WithChartsCoinID("bitcoin"), WithChartsPeriod("1m"))

	if c.Kind() != repository.KindOHLC {
		t.Errorf("kind = %q", c.Kind())
	}

	raw, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if gotPath != "/coins/bitcoin/charts" {
		t.Errorf("path = %q", gotPath)
	}
	if gotPeriod != "1m" {
		t.Errorf("period = %q", gotPeriod)
	}

	want := "2025-08-29T13:00:00Z | O: 47000 | H: 47500 | L: 47000 | C: 47500"
	if got := strings.TrimSpace(raw); got != want {
		t.Errorf("line = %q, want %q", got, want)
	}
}

func TestDominanceFetchTooFewPoints(t *testing.T) {
	srv := httptest.NewServer(stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		w.Write([]byte(`{"data":[[1756468800,48.5]]}`))
	}))
	defer srv.Close()

	c := NewDominanceClient(http.NewClient(), srv.URL)
	raw, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if raw != "" {
		t.Errorf("single point should render no lines, got %q", raw)
	}
}
