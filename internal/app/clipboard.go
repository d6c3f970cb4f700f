package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"

	"catalogadmin/internal/logging"
	"catalogadmin/internal/types"
)

const envDisableOSC52 = "CATALOGADMIN_DISABLE_OSC52"

// clipboardBackend is one way of getting text onto the user's clipboard.
type clipboardBackend struct {
	name  string
	write func(string) error
}

// clipboardBackends are tried in order: the desktop clipboard first, then
// an OSC52 escape written to the controlling terminal for SSH sessions.
var clipboardBackends = []clipboardBackend{
	{name: "system", write: clipboard.WriteAll},
	{name: "OSC52", write: writeTerminalClipboard},
}

// copyText returns the name of the backend that took the text.
func copyText(text string) (string, error) {
	failures := make([]string, 0, len(clipboardBackends))
	for _, backend := range clipboardBackends {
		err := backend.write(text)
		if err == nil {
			return backend.name, nil
		}
		failures = append(failures, backend.name+": "+describeClipboardFailure(err))
	}
	if noDisplay() {
		failures = append([]string{"no GUI clipboard (DISPLAY and WAYLAND_DISPLAY unset)"}, failures...)
	}
	return "", errors.New(strings.Join(failures, "; "))
}

// copyID puts a record id on the clipboard and reports the outcome as a
// notice.
func (m *Model) copyID(res types.Resource, id types.ID) bool {
	if id.IsZero() {
		return false
	}
	backend, err := copyText(id.String())
	if err != nil {
		m.logger.Warn("clipboard_copy_failed", logging.F("resource", res.Name), logging.Err(err))
		m.showErrorToast("copy failed: " + err.Error())
		return false
	}
	m.logger.Debug("clipboard_copied", logging.F("resource", res.Name), logging.F("backend", backend))
	m.showInfoToast(fmt.Sprintf("Copied %s id %s", singularLabel(res), id))
	return true
}

func writeTerminalClipboard(text string) error {
	if !osc52Enabled() {
		return errors.New("disabled for this terminal")
	}
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	defer tty.Close()
	return writeOSC52Sequence(tty, text)
}

// writeOSC52Sequence wraps the escape for the multiplexer in use. Inside tmux
// the bare sequence goes out too, since passthrough may be off.
func writeOSC52Sequence(w io.Writer, text string) error {
	seq := osc52.New(text)
	if os.Getenv("TMUX") != "" {
		if _, err := seq.WriteTo(w); err != nil {
			return err
		}
		seq = seq.Tmux()
	} else if strings.HasPrefix(strings.ToLower(os.Getenv("TERM")), "screen") {
		seq = seq.Screen()
	}
	_, err := seq.WriteTo(w)
	return err
}

func osc52Enabled() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(envDisableOSC52))) {
	case "1", "true", "yes", "on":
		return false
	}
	term := strings.TrimSpace(os.Getenv("TERM"))
	return term != "" && !strings.EqualFold(term, "dumb")
}

func describeClipboardFailure(err error) string {
	msg := strings.TrimSpace(err.Error())
	if msg == "exit status 1" {
		return "clipboard helper exited with status 1"
	}
	return msg
}

func noDisplay() bool {
	return os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == ""
}
