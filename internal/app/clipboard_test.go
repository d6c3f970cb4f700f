package app

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"catalogadmin/internal/types"
)

func stubClipboard(t *testing.T, system, osc func(string) error) {
	t.Helper()
	orig := clipboardBackends
	t.Cleanup(func() { clipboardBackends = orig })
	clipboardBackends = []clipboardBackend{
		{name: "system", write: system},
		{name: "OSC52", write: osc},
	}
}

func TestCopyTextPrefersSystemClipboard(t *testing.T) {
	fallbackCalled := false
	stubClipboard(t, func(string) error { return nil }, func(string) error {
		fallbackCalled = true
		return nil
	})

	backend, err := copyText("42")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if backend != "system" || fallbackCalled {
		t.Fatalf("expected system backend only, got %q fallback=%v", backend, fallbackCalled)
	}
}

func TestCopyTextFallsBackToOSC52(t *testing.T) {
	var copied string
	stubClipboard(t, func(string) error { return errors.New("exit status 1") }, func(text string) error {
		copied = text
		return nil
	})

	backend, err := copyText("42")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if backend != "OSC52" || copied != "42" {
		t.Fatalf("expected OSC52 copy of 42, got %q copied %q", backend, copied)
	}
}

func TestCopyTextExplainsMissingDisplay(t *testing.T) {
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "")
	stubClipboard(t,
		func(string) error { return errors.New("exit status 1") },
		func(string) error { return errors.New("open /dev/tty: no such device") },
	)

	_, err := copyText("42")
	if err == nil {
		t.Fatalf("expected copy error")
	}
	msg := err.Error()
	for _, want := range []string{"no GUI clipboard", "system: clipboard helper exited", "OSC52: open /dev/tty"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in %q", want, msg)
		}
	}
}

func TestCopyIDShowsErrorNotice(t *testing.T) {
	stubClipboard(t,
		func(string) error { return errors.New("boom") },
		func(string) error { return errors.New("no tty") },
	)
	m := NewModel(Options{})
	if m.copyID(types.ResourceProducts, "42") {
		t.Fatalf("expected copy to fail")
	}
	if m.notice.severity != noticeError || !strings.HasPrefix(m.notice.text, "copy failed: ") {
		t.Fatalf("unexpected notice %q level %v", m.notice.text, m.notice.severity)
	}
	if m.copyID(types.ResourceProducts, "") {
		t.Fatalf("expected empty id to be ignored")
	}
}

func TestOSC52DisabledByEnvironment(t *testing.T) {
	t.Setenv("TERM", "xterm-256color")
	t.Setenv(envDisableOSC52, "1")
	if osc52Enabled() {
		t.Fatalf("expected OSC52 disabled")
	}
	t.Setenv(envDisableOSC52, "")
	if !osc52Enabled() {
		t.Fatalf("expected OSC52 enabled for xterm")
	}
	t.Setenv("TERM", "dumb")
	if osc52Enabled() {
		t.Fatalf("expected OSC52 disabled for dumb terminal")
	}
}

func TestWriteOSC52SequenceWrapsForTmux(t *testing.T) {
	t.Setenv("TMUX", "/tmp/tmux-0/default,1,0")
	t.Setenv("TERM", "screen-256color")
	var buf bytes.Buffer
	if err := writeOSC52Sequence(&buf, "42"); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "\x1b]52;") {
		t.Fatalf("expected plain OSC52 sequence, got %q", out)
	}
	if !strings.Contains(out, "\x1bPtmux;") {
		t.Fatalf("expected tmux passthrough sequence, got %q", out)
	}
}
