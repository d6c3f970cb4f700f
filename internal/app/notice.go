package app

import (
	"strings"
	"time"

	"charm.land/lipgloss/v2"
)

const noticeLifetime = 4 * time.Second

type noticeSeverity int

const (
	noticeInfo noticeSeverity = iota
	noticeWarning
	noticeError
)

// notice is the single transient message drawn above the status line.
// A newer notice replaces the old one; nothing is queued.
type notice struct {
	text     string
	severity noticeSeverity
	expires  time.Time
}

func (n notice) visible(at time.Time) bool {
	if n.text == "" {
		return false
	}
	return n.expires.IsZero() || at.Before(n.expires)
}

func (n notice) style() lipgloss.Style {
	switch n.severity {
	case noticeWarning:
		return noticeWarningStyle
	case noticeError:
		return noticeErrorStyle
	}
	return noticeInfoStyle
}

func (n notice) render(width int, at time.Time) string {
	if width <= 0 || !n.visible(at) {
		return ""
	}
	label := truncateToWidth(n.text, max(1, width-4))
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, n.style().Render(" "+label+" "))
}

func (m *Model) notify(severity noticeSeverity, message string) {
	message = strings.TrimSpace(message)
	if message == "" {
		return
	}
	m.notice = notice{text: message, severity: severity, expires: m.now().Add(noticeLifetime)}
}

func (m *Model) showInfoToast(message string)    { m.notify(noticeInfo, message) }
func (m *Model) showWarningToast(message string) { m.notify(noticeWarning, message) }
func (m *Model) showErrorToast(message string)   { m.notify(noticeError, message) }

func (m *Model) clearToast() { m.notice = notice{} }
