package util

import (
	"testing"
	"time"
)

func TestParseWireTime(t *testing.T) {
	s := "2025-08-29T12:00:00Z"
	got, ok := ParseWireTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if FormatWireTime(got) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseWireTimeRejectsOffsets(t *testing.T) {
	if _, ok := ParseWireTime("2025-08-29T12:00:00+02:00"); ok {
		t.Fatalf("offset timestamps must not parse")
	}
	if _, ok := ParseWireTime(""); ok {
		t.Fatalf("empty string must not parse")
	}
}

func TestFormatWireTimeUTC(t *testing.T) {
	loc := time.FixedZone("X", 3600)
	in := time.Date(2025, 8, 29, 13, 0, 0, 0, loc)
	if got := FormatWireTime(in); got != "2025-08-29T12:00:00Z" {
		t.Fatalf("expected UTC rendering, got %s", got)
	}
}
