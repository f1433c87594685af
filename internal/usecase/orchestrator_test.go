package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"btcwave/internal/domain/models"
	"btcwave/internal/domain/repository"
	"btcwave/pkg/cache"
)

type fakeSource struct {
	name  string
	kind  repository.SeriesKind
	raw   string
	err   error
	fails int // fail this many calls before succeeding
	calls int
}

func (f *fakeSource) Name() string                { return f.name }
func (f *fakeSource) Kind() repository.SeriesKind { return f.kind }

func (f *fakeSource) Fetch(ctx context.Context) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if f.calls <= f.fails {
		return "", errors.New("upstream unavailable")
	}
	return f.raw, nil
}

func TestFetchFirstAttemptSucceeds(t *testing.T) {
	src := &fakeSource{name: "daily", kind: repository.KindOHLC, raw: "payload"}
	o := NewFetchOrchestrator(WithRetryPolicy(RetryPolicy{MaxAttempts: 2, Timeout: time.Second}))

	raw, err := o.Fetch(context.Background(), src)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if raw != "payload" {
		t.Errorf("raw = %q", raw)
	}
	if src.calls != 1 {
		t.Errorf("calls = %d, want 1", src.calls)
	}
}

func TestFetchRetriesOnceThenSucceeds(t *testing.T) {
	src := &fakeSource{name: "daily", kind: repository.KindOHLC, raw: "payload", fails: 1}
	o := NewFetchOrchestrator(WithRetryPolicy(RetryPolicy{MaxAttempts: 2, Timeout: time.Second}))

	raw, err := o.Fetch(context.Background(), src)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if raw != "payload" {
		t.Errorf("raw = %q", raw)
	}
	if src.calls != 2 {
		t.Errorf("calls = %d, want 2", src.calls)
	}
}

func TestFetchExhaustsBudget(t *testing.T) {
	src := &fakeSource{name: "daily", kind: repository.KindOHLC, err: errors.New("boom")}
	o := NewFetchOrchestrator(WithRetryPolicy(RetryPolicy{MaxAttempts: 2, Timeout: time.Second}))

	_, err := o.Fetch(context.Background(), src)
	if !errors.Is(err, models.ErrExecutionFailure) {
		t.Fatalf("err = %v, want ErrExecutionFailure", err)
	}
	if src.calls != 2 {
		t.Errorf("calls = %d, want exactly the retry budget", src.calls)
	}
}

func TestFetchServesFromCache(t *testing.T) {
	src := &fakeSource{name: "daily", kind: repository.KindOHLC, raw: "payload"}
	o := NewFetchOrchestrator(
		WithRetryPolicy(RetryPolicy{MaxAttempts: 2, Timeout: time.Second}),
		WithPayloadCache(cache.NewMemoryCache(), 5*time.Minute),
	)

	for i := 0; i < 3; i++ {
		raw, err := o.Fetch(context.Background(), src)
		if err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
		if raw != "payload" {
			t.Errorf("raw = %q", raw)
		}
	}
	if src.calls != 1 {
		t.Errorf("calls = %d, want 1 with warm cache", src.calls)
	}
}

func TestFetchCanceledContext(t *testing.T) {
	src := &fakeSource{name: "daily", kind: repository.KindOHLC, raw: "payload"}
	o := NewFetchOrchestrator()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := o.Fetch(ctx, src)
	if !errors.Is(err, models.ErrExecutionFailure) {
		t.Fatalf("err = %v, want ErrExecutionFailure", err)
	}
	if src.calls != 0 {
		t.Errorf("calls = %d, want 0 after cancellation", src.calls)
	}
}
