package app

import (
	"strings"

	"github.com/charmbracelet/glamour"
	glamouransi "github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	xansi "github.com/charmbracelet/x/ansi"
)

// descriptionRenderer turns record descriptions into styled terminal text.
// Glamour renderers are expensive to build, so one is kept per wrap width
// until the terminal background flips.
type descriptionRenderer struct {
	dark     bool
	byWidth  map[int]*glamour.TermRenderer
	disabled bool
}

func newDescriptionRenderer() *descriptionRenderer {
	return &descriptionRenderer{dark: true}
}

// SetDark reports whether the palette changed.
func (r *descriptionRenderer) SetDark(dark bool) bool {
	if r.dark == dark {
		return false
	}
	r.dark = dark
	r.byWidth = nil
	return true
}

// Render falls back to the plain text whenever glamour fails.
func (r *descriptionRenderer) Render(description string, width int) string {
	description = strings.TrimRight(description, "\n")
	if description == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	tr := r.renderer(width)
	if tr == nil {
		return description
	}
	out, err := tr.Render(description)
	if err != nil {
		return description
	}
	return strings.TrimRight(xansi.Hardwrap(strings.TrimRight(out, "\n"), width, true), "\n")
}

func (r *descriptionRenderer) renderer(width int) *glamour.TermRenderer {
	if r.disabled {
		return nil
	}
	if tr, ok := r.byWidth[width]; ok {
		return tr
	}
	tr, err := glamour.NewTermRenderer(
		glamour.WithStyles(descriptionStyle(r.dark)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		r.disabled = true
		return nil
	}
	if r.byWidth == nil {
		r.byWidth = map[int]*glamour.TermRenderer{}
	}
	r.byWidth[width] = tr
	return tr
}

// descriptionStyle strips the document margins; the detail pane lays out
// its own gutter. Headings stay bold but lose the leading hashes.
func descriptionStyle(dark bool) glamouransi.StyleConfig {
	cfg := styles.LightStyleConfig
	if dark {
		cfg = styles.DarkStyleConfig
	}
	none := uint(0)
	cfg.Document.Margin = &none
	cfg.Document.StylePrimitive.BlockPrefix = ""
	cfg.Document.StylePrimitive.BlockSuffix = ""
	cfg.H2.StylePrimitive.Prefix = ""
	cfg.H3.StylePrimitive.Prefix = ""
	return cfg
}
