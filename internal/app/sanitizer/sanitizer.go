// Package sanitizer makes backend-provided record text safe to draw in a
// terminal: escape sequences and control characters never reach the screen.
package sanitizer

import (
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

// escapeSequences covers CSI (colors, cursor moves), OSC (titles,
// hyperlinks, clipboard writes) and charset switches.
var escapeSequences = regexp.MustCompile(
	`\x1b\[[<>?=]?[0-9;]*[A-Za-z@^` + "`" + `~{|}!]` +
		`|\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)` +
		`|\x1b[()][AB012]`,
)

type Config struct {
	AllowNewlines      bool
	ReplaceNewlineWith string
	// MaxWidth truncates the result to this many terminal cells. Zero keeps
	// the full text.
	MaxWidth int
}

type TerminalSanitizer struct {
	config Config
}

func New(config Config) *TerminalSanitizer {
	return &TerminalSanitizer{config: config}
}

// CellConfig is for table cells: one line, tabs and newlines become spaces.
func CellConfig() Config {
	return Config{ReplaceNewlineWith: " "}
}

// TextConfig keeps line breaks, for detail panes and descriptions.
func TextConfig() Config {
	return Config{AllowNewlines: true}
}

var (
	cellSanitizer = New(CellConfig())
	textSanitizer = New(TextConfig())
)

func Cell(input string) string {
	return cellSanitizer.Sanitize(input)
}

func Text(input string) string {
	return textSanitizer.Sanitize(input)
}

func (s *TerminalSanitizer) Sanitize(input string) string {
	if input == "" {
		return input
	}
	input = escapeSequences.ReplaceAllString(input, "")
	input = strings.ReplaceAll(input, "\r\n", "\n")

	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		switch {
		case r == '\n':
			if s.config.AllowNewlines {
				b.WriteRune(r)
			} else {
				b.WriteString(s.config.ReplaceNewlineWith)
			}
		case r == '\t':
			b.WriteByte(' ')
		case r < 32 || r == 127 || (r >= 0x80 && r < 0xa0):
		default:
			b.WriteRune(r)
		}
	}
	out := b.String()
	if s.config.MaxWidth > 0 && runewidth.StringWidth(out) > s.config.MaxWidth {
		out = runewidth.Truncate(out, s.config.MaxWidth, "…")
	}
	return out
}
