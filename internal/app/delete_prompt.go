package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	xansi "github.com/charmbracelet/x/ansi"

	"catalogadmin/internal/types"
)

type promptAnswer int

const (
	promptUndecided promptAnswer = iota
	promptDelete
	promptKeep
)

const (
	promptMinWidth = 24
	promptMaxWidth = 60
)

// deleteTarget is the record a delete prompt asks about.
type deleteTarget struct {
	res types.Resource
	id  types.ID
}

// DeletePrompt asks before a record is deleted. "Delete" starts focused.
type DeletePrompt struct {
	target      *deleteTarget
	keepFocused bool
}

func NewDeletePrompt() *DeletePrompt {
	return &DeletePrompt{}
}

func (p *DeletePrompt) IsOpen() bool {
	return p != nil && p.target != nil
}

func (p *DeletePrompt) Open(res types.Resource, id types.ID) {
	p.target = &deleteTarget{res: res, id: id}
	p.keepFocused = false
}

// Close dismisses the prompt and hands back what it was asking about.
func (p *DeletePrompt) Close() *deleteTarget {
	target := p.target
	*p = DeletePrompt{}
	return target
}

// HandleKey reports whether the key belonged to the prompt and, if the user
// decided, which way.
func (p *DeletePrompt) HandleKey(msg tea.KeyPressMsg) (bool, promptAnswer) {
	if !p.IsOpen() {
		return false, promptUndecided
	}
	switch msg.String() {
	case "y":
		return true, promptDelete
	case "n", "q", "esc":
		return true, promptKeep
	case "left", "h":
		p.keepFocused = false
	case "right", "l":
		p.keepFocused = true
	case "tab", "shift+tab":
		p.keepFocused = !p.keepFocused
	case "enter":
		if p.keepFocused {
			return true, promptKeep
		}
		return true, promptDelete
	default:
		return false, promptUndecided
	}
	return true, promptUndecided
}

func (p *DeletePrompt) title() string {
	return "Delete " + singularLabel(p.target.res)
}

func (p *DeletePrompt) question() string {
	return fmt.Sprintf("Delete %s #%s? This cannot be undone.", singularLabel(p.target.res), p.target.id)
}

// View draws the prompt centred in an areaWidth by areaHeight body and
// returns the row it starts on.
func (p *DeletePrompt) View(areaWidth, areaHeight int) (string, int) {
	if !p.IsOpen() {
		return "", 0
	}
	title, question := p.title(), p.question()
	width := clamp(max(xansi.StringWidth(title), xansi.StringWidth(question))+4, promptMinWidth, promptMaxWidth)
	if areaWidth > 0 {
		width = min(width, areaWidth)
	}
	inner := max(1, width-4)

	rows := []string{contextMenuHeaderStyle.Render(" " + fitToWidth(title, inner) + " ")}
	for _, line := range strings.Split(xansi.Hardwrap(question, inner, true), "\n") {
		rows = append(rows, menuDropStyle.Render(" "+fitToWidth(line, inner)+" "))
	}
	rows = append(rows, " "+p.buttons(inner)+" ")

	box := confirmDialogBorderStyle.Render(strings.Join(rows, "\n"))
	left, top := 0, 0
	if areaWidth > 0 {
		left = max(0, (areaWidth-width)/2)
	}
	if areaHeight > 0 {
		top = max(0, (areaHeight-len(rows)-2)/2)
	}
	return indentBlock(box, left), top
}

func (p *DeletePrompt) buttons(width int) string {
	half := width / 2
	del := fitToWidth("[Delete]", half)
	keep := fitToWidth("[Keep]", width-half)
	if p.keepFocused {
		return menuDropStyle.Render(del) + selectedStyle.Render(keep)
	}
	return selectedStyle.Render(del) + menuDropStyle.Render(keep)
}
