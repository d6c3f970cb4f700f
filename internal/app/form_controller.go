package app

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"catalogadmin/internal/listing"
	"catalogadmin/internal/types"
	"catalogadmin/internal/validate"
)

// FormController edits one record. Submit validates locally and only hands
// back a record that passed; field errors render inline.
type FormController struct {
	res       types.Resource
	id        types.ID
	base      any
	fields    []validate.FormField
	inputs    []textinput.Model
	focus     int
	errors    map[string]string
	general   []string
	submitted bool
	open      bool
}

func NewFormController() *FormController {
	return &FormController{}
}

func (f *FormController) IsOpen() bool {
	return f != nil && f.open
}

// Open starts editing record, or a blank record of res when record is nil.
func (f *FormController) Open(res types.Resource, record any) (tea.Cmd, error) {
	if record == nil {
		blank, err := validate.NewRecord(res)
		if err != nil {
			return nil, err
		}
		record = blank
	}
	fields := validate.FormFields(res)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%s cannot be edited", res.Label)
	}
	values := validate.Values(record)
	inputs := make([]textinput.Model, len(fields))
	for i, field := range fields {
		input := newTextInput()
		input.CharLimit = 4000
		if field.Kind == validate.FieldMultiline {
			input.Placeholder = "markdown"
		}
		input.SetValue(values[field.Key])
		inputs[i] = input
	}
	*f = FormController{
		res:    res,
		base:   record,
		fields: fields,
		inputs: inputs,
		errors: map[string]string{},
		open:   true,
	}
	if item, ok := record.(listing.Item); ok {
		f.id = item.ItemID()
	}
	return f.setFocus(0), nil
}

func (f *FormController) Close() {
	if f == nil {
		return
	}
	*f = FormController{}
}

func (f *FormController) Resource() types.Resource { return f.res }

func (f *FormController) ID() types.ID { return f.id }

func (f *FormController) Creating() bool { return f.id.IsZero() }

func (f *FormController) Submitted() bool { return f.submitted }

func (f *FormController) setFocus(index int) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	f.inputs[f.focus].Blur()
	f.focus = (index + len(f.inputs)) % len(f.inputs)
	if f.fields[f.focus].Kind == validate.FieldBool {
		return nil
	}
	f.inputs[f.focus].CursorEnd()
	return f.inputs[f.focus].Focus()
}

// HandleKey reports whether the key asked to submit or to cancel the form.
func (f *FormController) HandleKey(msg tea.KeyPressMsg) (submit bool, cancel bool, cmd tea.Cmd) {
	if !f.IsOpen() || f.submitted {
		if msg.String() == "esc" {
			return false, true, nil
		}
		return false, false, nil
	}
	switch msg.String() {
	case "esc":
		return false, true, nil
	case "enter", "ctrl+s":
		return true, false, nil
	case "tab", "down":
		return false, false, f.setFocus(f.focus + 1)
	case "shift+tab", "up":
		return false, false, f.setFocus(f.focus - 1)
	}
	if f.fields[f.focus].Kind == validate.FieldBool {
		switch msg.String() {
		case "space", " ", "left", "right", "t", "f":
			current, _ := strconv.ParseBool(f.inputs[f.focus].Value())
			f.inputs[f.focus].SetValue(strconv.FormatBool(!current))
		}
		return false, false, nil
	}
	var next tea.Cmd
	f.inputs[f.focus], next = f.inputs[f.focus].Update(msg)
	delete(f.errors, f.fields[f.focus].Key)
	return false, false, next
}

// Build assembles the edited record. The original record is never touched;
// a copy is filled in and validated.
func (f *FormController) Build() (any, error) {
	record, err := validate.NewRecord(f.res)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(f.base)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, record); err != nil {
		return nil, err
	}
	values := make(map[string]string, len(f.fields))
	for i, field := range f.fields {
		values[field.Key] = f.inputs[i].Value()
	}
	if err := validate.Assign(record, values); err != nil {
		f.setErrors(err)
		return nil, err
	}
	if err := validate.Record(record); err != nil {
		f.setErrors(err)
		return nil, err
	}
	f.errors = map[string]string{}
	f.general = nil
	return record, nil
}

func (f *FormController) setErrors(err error) {
	f.errors = map[string]string{}
	f.general = nil
	if verr, ok := validate.AsValidationError(err); ok {
		for key, msg := range verr.Fields {
			f.errors[key] = msg
		}
		return
	}
	f.general = []string{err.Error()}
}

// MarkSubmitted freezes the form while the save is in flight.
func (f *FormController) MarkSubmitted() {
	f.submitted = true
}

// Rejected reopens the form for editing with the backend's messages.
func (f *FormController) Rejected(messages []string) {
	f.submitted = false
	f.general = nil
	for _, msg := range messages {
		if msg = strings.TrimSpace(msg); msg != "" {
			f.general = append(f.general, msg)
		}
	}
}

func (f *FormController) FieldError(key string) string {
	if f == nil {
		return ""
	}
	return f.errors[key]
}

func (f *FormController) View(width int) string {
	if !f.IsOpen() {
		return ""
	}
	title := "New " + strings.ReplaceAll(f.res.Singular, "_", " ")
	if !f.Creating() {
		title = "Edit " + strings.ReplaceAll(f.res.Singular, "_", " ") + " #" + f.id.String()
	}
	lines := []string{headerStyle.Render(title), ""}
	labelWidth := 0
	for _, field := range f.fields {
		labelWidth = max(labelWidth, len(field.Label)+2)
	}
	inputWidth := max(10, width-labelWidth-4)
	for i, field := range f.fields {
		label := field.Label
		if field.Required {
			label += "*"
		}
		label = padToWidth(label, labelWidth)
		marker := "  "
		if i == f.focus {
			marker = "> "
			label = filterFocusStyle.Render(label)
		} else {
			label = formLabelStyle.Render(label)
		}
		var value string
		if field.Kind == validate.FieldBool {
			value = "[" + f.inputs[i].Value() + "]"
		} else {
			f.inputs[i].SetWidth(inputWidth)
			value = f.inputs[i].View()
		}
		lines = append(lines, marker+label+value)
		if msg := f.errors[field.Key]; msg != "" {
			lines = append(lines, strings.Repeat(" ", labelWidth+2)+formErrorStyle.Render(field.Label+" "+msg))
		}
	}
	if len(f.general) > 0 {
		lines = append(lines, "")
		for _, msg := range f.general {
			lines = append(lines, formErrorStyle.Render(truncateToWidth(msg, width)))
		}
	}
	if f.submitted {
		lines = append(lines, "", activityStyle.Render("Saving…"))
	}
	return strings.Join(lines, "\n")
}
