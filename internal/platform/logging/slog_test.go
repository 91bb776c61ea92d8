package logging

import (
	"log/slog"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedSlog(level Level) (*slog.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	handler := &slogZapHandler{logger: FromZap(zap.New(core)), level: level}
	return slog.New(handler), logs
}

func TestSlogBridge_WritesThroughZap(t *testing.T) {
	logger, logs := newObservedSlog(LevelDebug)

	logger.Info("entry created", "entry_id", int64(7), "player", "Pat")

	all := logs.All()
	if len(all) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(all))
	}
	if all[0].Message != "entry created" {
		t.Fatalf("unexpected message: %s", all[0].Message)
	}

	fields := all[0].ContextMap()
	if fields["entry_id"] != int64(7) {
		t.Fatalf("unexpected entry_id field: %v", fields["entry_id"])
	}
	if fields["player"] != "Pat" {
		t.Fatalf("unexpected player field: %v", fields["player"])
	}
}

func TestSlogBridge_LevelFiltering(t *testing.T) {
	logger, logs := newObservedSlog(LevelWarn)

	logger.Info("below threshold")
	logger.Warn("at threshold")

	all := logs.All()
	if len(all) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(all))
	}
	if all[0].Message != "at threshold" {
		t.Fatalf("unexpected message: %s", all[0].Message)
	}
}

func TestSlogBridge_WithAttrsAndGroup(t *testing.T) {
	logger, logs := newObservedSlog(LevelDebug)

	logger.With("service", "scoring").WithGroup("bulk").Info("teams scored", "count", 4)

	all := logs.All()
	if len(all) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(all))
	}

	fields := all[0].ContextMap()
	if fields["service"] != "scoring" {
		t.Fatalf("unexpected service field: %v", fields["service"])
	}
	if fields["bulk.count"] != int64(4) {
		t.Fatalf("unexpected grouped field: %v", fields["bulk.count"])
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		in   Level
		want slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarn, slog.LevelWarn},
		{LevelError, slog.LevelError},
	}

	for _, tc := range tests {
		if got := SlogLevel(tc.in); got != tc.want {
			t.Fatalf("SlogLevel(%s) = %s, want %s", tc.in, got, tc.want)
		}
	}
}
