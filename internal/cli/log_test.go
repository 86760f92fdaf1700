package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerWritesToSink(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)

	l.Info("realized circuit", "instances", 3)

	if !strings.Contains(buf.String(), "realized circuit") {
		t.Errorf("log output = %q, want the message in it", buf.String())
	}
}

func TestNewLoggerLevelFilter(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		emit  func(*log.Logger)
		want  bool
	}{
		{"debug suppressed at info", log.InfoLevel, func(l *log.Logger) { l.Debug("resolving transition") }, false},
		{"debug shown at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("resolving transition") }, true},
		{"warn shown at info", log.InfoLevel, func(l *log.Logger) { l.Warn("cache entry expired") }, true},
		{"info suppressed at error", log.ErrorLevel, func(l *log.Logger) { l.Info("exported layout") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(newLogger(&buf, tt.level))

			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("wrote output = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProgressReportsElapsed(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)

	p := newProgress(l)
	time.Sleep(5 * time.Millisecond)
	p.done("Realized 3 instances")

	out := buf.String()
	if !strings.Contains(out, "Realized 3 instances") {
		t.Errorf("progress output = %q, want the completion message", out)
	}
	// The elapsed duration is appended in parentheses.
	if !strings.Contains(out, "s)") {
		t.Errorf("progress output = %q, want an elapsed duration", out)
	}
}

func TestLoggerContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, log.DebugLevel)

	ctx := withLogger(context.Background(), l)
	if got := loggerFromContext(ctx); got != l {
		t.Fatal("context should return the logger attached to it")
	}

	loggerFromContext(ctx).Debug("splicing transition", "from", "xs_sc", "to", "xs_rc")
	if buf.Len() == 0 {
		t.Error("the retrieved logger should write to the attached sink")
	}
}

func TestLoggerFromContextFallsBack(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Error("a bare context should fall back to the default logger")
	}
}
