package observe

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	buf := &bytes.Buffer{}
	obs := New(buf, true)

	obs.Log().Info().Str("component", "store").Msg("slot loaded")
	if !strings.Contains(buf.String(), "slot loaded") {
		t.Errorf("expected output to contain message, got %q", buf.String())
	}
}

func TestNew_VerboseGate(t *testing.T) {
	buf := &bytes.Buffer{}
	obs := New(buf, false)

	obs.Log().Info().Msg("quiet info")
	if strings.Contains(buf.String(), "quiet info") {
		t.Error("info should be suppressed without verbose")
	}

	obs.Log().Warn().Msg("loud warning")
	if !strings.Contains(buf.String(), "loud warning") {
		t.Error("warnings should always be emitted")
	}
}

func TestNewJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	obs := NewJSON(buf, true)

	obs.Log().Info().Msg("json message")
	if !strings.Contains(buf.String(), "json message") {
		t.Errorf("expected output to contain message, got %q", buf.String())
	}
}

func TestNop(t *testing.T) {
	obs := Nop()
	// Must not panic and must accept logging calls.
	obs.Log().Error().Msg("discarded")
}

func TestStartSpan(t *testing.T) {
	obs := Nop()
	ctx, span := obs.StartSpan(context.Background(), "test-span")
	if ctx == nil || span == nil {
		t.Fatal("expected context and span")
	}
	span.End()
}
