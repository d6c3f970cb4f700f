package app

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"catalogadmin/internal/app/sanitizer"
	"catalogadmin/internal/filter"
)

type filterAction int

const (
	filterActionNone filterAction = iota
	filterActionApply
	filterActionClear
	filterActionClose
)

// FilterBar edits a Holder's draft. Typing only touches the draft; the list
// changes when the bar reports Apply or Clear and the caller acts on it.
type FilterBar struct {
	fields []filter.Field
	holder *filter.Holder
	focus  int
	input  textinput.Model
	open   bool
}

func NewFilterBar() *FilterBar {
	input := newTextInput()
	input.CharLimit = 120
	return &FilterBar{input: input}
}

// newTextInput returns an input with a steady cursor; a blinking one would
// keep the event loop ticking while a form sits idle.
func newTextInput() textinput.Model {
	input := textinput.New()
	input.Prompt = ""
	styles := textinput.DefaultDarkStyles()
	styles.Cursor.Blink = false
	input.SetStyles(styles)
	return input
}

func (b *FilterBar) IsOpen() bool {
	return b != nil && b.open
}

func (b *FilterBar) Open(fields []filter.Field, holder *filter.Holder) tea.Cmd {
	if b == nil || holder == nil || len(fields) == 0 {
		return nil
	}
	b.fields = fields
	b.holder = holder
	b.open = true
	return b.setFocus(0)
}

func (b *FilterBar) Close() {
	if b == nil {
		return
	}
	b.open = false
	b.input.Blur()
}

func (b *FilterBar) Focused() filter.Field {
	if b == nil || len(b.fields) == 0 {
		return filter.Field{}
	}
	return b.fields[b.focus]
}

func (b *FilterBar) setFocus(index int) tea.Cmd {
	b.focus = (index + len(b.fields)) % len(b.fields)
	field := b.fields[b.focus]
	if field.Kind != filter.FieldText {
		b.input.Blur()
		return nil
	}
	b.input.SetValue(b.holder.DraftField(field.Key))
	b.input.CursorEnd()
	return b.input.Focus()
}

func (b *FilterBar) HandleKey(msg tea.KeyPressMsg) (filterAction, tea.Cmd) {
	if !b.IsOpen() {
		return filterActionNone, nil
	}
	field := b.Focused()
	switch msg.String() {
	case "esc":
		return filterActionClose, nil
	case "enter":
		return filterActionApply, nil
	case "ctrl+x":
		return filterActionClear, nil
	case "tab", "down":
		return filterActionNone, b.setFocus(b.focus + 1)
	case "shift+tab", "up":
		return filterActionNone, b.setFocus(b.focus - 1)
	}
	if field.Kind == filter.FieldChoice {
		current := b.holder.DraftField(field.Key)
		switch msg.String() {
		case "space", " ", "right", "l":
			b.holder.SetDraftField(field.Key, field.NextOption(current))
		case "left", "h":
			b.holder.SetDraftField(field.Key, previousOption(field, current))
		}
		return filterActionNone, nil
	}
	var cmd tea.Cmd
	b.input, cmd = b.input.Update(msg)
	b.holder.SetDraftField(field.Key, b.input.Value())
	return filterActionNone, cmd
}

// Reload re-reads the focused text field after the holder was cleared.
func (b *FilterBar) Reload() {
	if !b.IsOpen() {
		return
	}
	if field := b.Focused(); field.Kind == filter.FieldText {
		b.input.SetValue(b.holder.DraftField(field.Key))
		b.input.CursorEnd()
	}
}

func (b *FilterBar) View(width int) string {
	if !b.IsOpen() {
		return ""
	}
	parts := make([]string, 0, len(b.fields)+1)
	for i, field := range b.fields {
		label := field.Label + ": "
		var value string
		switch {
		case i == b.focus && field.Kind == filter.FieldText:
			b.input.SetWidth(max(8, min(30, width/3)))
			value = b.input.View()
		case field.Kind == filter.FieldChoice:
			value = "‹" + choiceLabel(b.holder.DraftField(field.Key)) + "›"
		default:
			value = sanitizer.Cell(b.holder.DraftField(field.Key))
			if value == "" {
				value = "…"
			}
		}
		if i == b.focus {
			parts = append(parts, filterFocusStyle.Render(label)+value)
		} else {
			parts = append(parts, filterLabelStyle.Render(label)+value)
		}
	}
	if b.holder.Dirty() {
		parts = append(parts, filterDirtyStyle.Render("*"))
	}
	return truncateToWidth(strings.Join(parts, "  "), width)
}

// filterSummary describes the applied filter as chips, with a marker when
// the draft holds edits that were not applied.
func filterSummary(fields []filter.Field, holder *filter.Holder, width int) string {
	if holder == nil {
		return ""
	}
	applied := holder.Applied()
	chips := make([]string, 0, len(fields))
	for _, field := range fields {
		value := strings.TrimSpace(applied[field.Key])
		if value == "" {
			continue
		}
		chips = append(chips, filterChipStyle.Render(field.Label+": "+sanitizer.Cell(value)))
	}
	line := filterLabelStyle.Render("no filter")
	if len(chips) > 0 {
		line = strings.Join(chips, " ")
	}
	if holder.Dirty() {
		line += " " + filterDirtyStyle.Render("* unapplied")
	}
	return truncateToWidth(line, width)
}

func choiceLabel(value string) string {
	if value == "" {
		return "any"
	}
	return value
}

func previousOption(field filter.Field, current string) string {
	if len(field.Options) == 0 {
		return current
	}
	for i, option := range field.Options {
		if option == current {
			return field.Options[(i-1+len(field.Options))%len(field.Options)]
		}
	}
	return field.Options[0]
}
