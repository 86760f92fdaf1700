package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

// testSpinner returns a fast spinner drawing into buf instead of stderr.
func testSpinner(ctx context.Context, message string, buf *bytes.Buffer) *Spinner {
	s := newSpinnerWithContext(ctx, message)
	s.w = buf
	s.interval = time.Millisecond
	return s
}

func TestSpinnerDrawsMessage(t *testing.T) {
	var buf bytes.Buffer
	s := testSpinner(context.Background(), "Realizing circuit", &buf)
	s.Start()
	time.Sleep(30 * time.Millisecond)
	s.Stop()

	out := buf.String()
	if !strings.Contains(out, "Realizing circuit") {
		t.Errorf("spinner output %q should carry its message", out)
	}
	// Frames redraw in place rather than scrolling.
	if !strings.Contains(out, "\r") {
		t.Error("spinner should redraw with carriage returns")
	}
}

func TestSpinnerStopClearsLine(t *testing.T) {
	var buf bytes.Buffer
	s := testSpinner(context.Background(), "Exporting layout", &buf)
	s.Start()
	time.Sleep(10 * time.Millisecond)
	s.Stop()

	if out := buf.String(); !strings.HasSuffix(out, "\r") {
		t.Errorf("output should end with the line erased, got %q", out)
	}
}

func TestSpinnerContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var buf bytes.Buffer
	s := testSpinner(ctx, "Planning route", &buf)
	s.Start()

	cancel()
	time.Sleep(20 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("spinner should report cancellation after its context ends")
	}
}

func TestSpinnerTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	var buf bytes.Buffer
	s := testSpinner(ctx, "Building pair.toml", &buf)
	s.Start()
	time.Sleep(30 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("spinner should report cancellation after its context times out")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	s := testSpinner(context.Background(), "Realizing circuit", &buf)
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopVariants(t *testing.T) {
	var buf bytes.Buffer

	s := testSpinner(context.Background(), "Building chain.toml", &buf)
	s.Start()
	s.StopWithSuccess("Built chain")

	s = testSpinner(context.Background(), "Building broken.toml", &buf)
	s.Start()
	s.StopWithError("Build failed")
}
