package form

import (
	"net/url"
)

// Field is one rendered form control bound to a State entry. Bind pulls the
// field's value out of posted form data and writes it back into the state;
// View snapshots what the template needs to draw the control.
type Field interface {
	Bind(posted url.Values, st State)
	View(st State) FieldView
}

// FieldView is the template data for one control.
type FieldView struct {
	Kind     string // "text" | "radio" | "checkbox"
	Name     string
	Label    string
	HelpText string
	Required bool
	Disabled bool
	Value    string
	Options  []ChoiceView
	Error    string
}

type ChoiceView struct {
	ID       string
	Label    string
	Selected bool
}

// TextField is a single-line text input.
type TextField struct {
	Name     string
	Label    string
	HelpText string
	Required bool
	Disabled bool
}

func (f *TextField) Bind(posted url.Values, st State) {
	if f.Disabled {
		return
	}
	st.SetValue(f.Name, posted.Get(f.Name))
}

func (f *TextField) View(st State) FieldView {
	value, _ := st.Value(f.Name).(string)
	_, msg := st.Status(f.Name)
	return FieldView{
		Kind:     "text",
		Name:     f.Name,
		Label:    f.Label,
		HelpText: f.HelpText,
		Required: f.Required,
		Disabled: f.Disabled,
		Value:    value,
		Error:    msg,
	}
}

// RadioGroup is a mutually-exclusive choice over a question's options. The
// bound value is the selected option's id, not its label, so answers stay
// stable under label edits.
type RadioGroup struct {
	Name     string
	Label    string
	HelpText string
	Required bool
	Disabled bool
	Options  []ChoiceView
}

func (f *RadioGroup) Bind(posted url.Values, st State) {
	if f.Disabled {
		return
	}
	st.SetValue(f.Name, posted.Get(f.Name))
}

func (f *RadioGroup) View(st State) FieldView {
	selected, _ := st.Value(f.Name).(string)
	_, msg := st.Status(f.Name)

	options := make([]ChoiceView, len(f.Options))
	copy(options, f.Options)
	for i := range options {
		options[i].Selected = options[i].ID == selected
	}

	return FieldView{
		Kind:     "radio",
		Name:     f.Name,
		Label:    f.Label,
		HelpText: f.HelpText,
		Required: f.Required,
		Disabled: f.Disabled,
		Value:    selected,
		Options:  options,
		Error:    msg,
	}
}

// CheckboxGroup is an independent multi-select over a question's options;
// the bound value is the sequence of selected option ids in posted order.
type CheckboxGroup struct {
	Name     string
	Label    string
	HelpText string
	Required bool
	Disabled bool
	Options  []ChoiceView
}

func (f *CheckboxGroup) Bind(posted url.Values, st State) {
	if f.Disabled {
		return
	}
	selected := posted[f.Name]
	if selected == nil {
		selected = []string{}
	}
	st.SetValue(f.Name, selected)
}

func (f *CheckboxGroup) View(st State) FieldView {
	selected, _ := st.Value(f.Name).([]string)
	_, msg := st.Status(f.Name)

	chosen := make(map[string]bool, len(selected))
	for _, id := range selected {
		chosen[id] = true
	}

	options := make([]ChoiceView, len(f.Options))
	copy(options, f.Options)
	for i := range options {
		options[i].Selected = chosen[options[i].ID]
	}

	return FieldView{
		Kind:     "checkbox",
		Name:     f.Name,
		Label:    f.Label,
		HelpText: f.HelpText,
		Required: f.Required,
		Disabled: f.Disabled,
		Options:  options,
		Error:    msg,
	}
}
