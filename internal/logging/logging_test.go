package logging

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func fixedLogger(buf *bytes.Buffer, level Level) *logfmtLogger {
	l := newLogfmt(&sink{w: buf}, level)
	l.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return l
}

func TestLoggerWritesLogfmt(t *testing.T) {
	var buf bytes.Buffer
	log := fixedLogger(&buf, Debug).With(F("resource", "products"))
	log.Info("page loaded", F("page", 2), F("query", "starts_with=steel"), Err(errors.New("boom now")))

	got := strings.TrimSpace(buf.String())
	want := `ts=2026-01-02T03:04:05Z level=info msg="page loaded" resource=products page=2 query="starts_with=steel" error="boom now"`
	if got != want {
		t.Fatalf("unexpected line:\n got=%s\nwant=%s", got, want)
	}
}

func TestLoggerFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := fixedLogger(&buf, Warn)
	log.Info("hidden")
	log.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
	if log.Enabled(Info) {
		t.Fatalf("info should be disabled at warn level")
	}
	log.Error("shown")
	if !strings.Contains(buf.String(), "level=error") {
		t.Fatalf("expected error line, got %q", buf.String())
	}
}

func TestNopDiscardsEverything(t *testing.T) {
	log := Nop()
	if log.Enabled(Error) {
		t.Fatalf("nop logger should not enable any level")
	}
	log.Error("ignored")
}

func TestWithDoesNotLeakIntoParent(t *testing.T) {
	var buf bytes.Buffer
	parent := fixedLogger(&buf, Info)
	parent.With(F("resource", "products")).Info("child")
	parent.Info("parent", F("took", 1500*time.Millisecond), F("ok", true))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected two lines, got %q", buf.String())
	}
	if !strings.HasSuffix(lines[0], "msg=child resource=products") {
		t.Fatalf("unexpected child line %q", lines[0])
	}
	if strings.Contains(lines[1], "resource=") || !strings.HasSuffix(lines[1], "msg=parent took=1.5s ok=true") {
		t.Fatalf("unexpected parent line %q", lines[1])
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   Debug,
		" WARN ":  Warn,
		"warning": Warn,
		"error":   Error,
		"":        Info,
		"bogus":   Info,
	}
	for raw, want := range cases {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestOpenFileCreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ui.log")
	log, closer, err := OpenFile(path, Info)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer closer.Close()
	log.Info("hello")
}
