package form

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/abellini/survey-front/model"
)

type Status int

const (
	Untouched Status = iota
	Valid
	Invalid
)

// State is the live form state of one survey-taking session: the mapping
// from question id to current answer value, plus per-field validation
// status. Both form bindings of the old client reduce to this contract.
type State interface {
	// Value returns the current value for a question id: string for text
	// and single-choice, []string for multiple-choice.
	Value(name string) any
	// SetValue writes a new value and revalidates that field only.
	SetValue(name string, value any)
	// Status reports the field's validation status and, when Invalid, its
	// message.
	Status(name string) (Status, string)
	// Validate checks every field, marking each as Valid or Invalid, and
	// returns the accumulated violations (nil if the form passes).
	Validate() error
	// Reset restores every field to its initial value, untouched.
	Reset()
}

// FieldError is one field's validation failure.
type FieldError struct {
	Name    string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Message)
}

type fieldState struct {
	value   any
	status  Status
	message string
}

type formState struct {
	order   []string
	initial map[string]any
	rules   map[string]Rule
	fields  map[string]*fieldState
}

// NewState builds the form state for a survey's questions, one entry per
// question id, initialized per type.
func NewState(questions []model.Question) State {
	initial, rules := Schema(questions)

	st := &formState{
		order:   make([]string, 0, len(questions)),
		initial: initial,
		rules:   rules,
		fields:  make(map[string]*fieldState, len(questions)),
	}
	for _, q := range questions {
		st.order = append(st.order, q.ID)
		st.fields[q.ID] = &fieldState{value: initial[q.ID]}
	}
	return st
}

func (st *formState) Value(name string) any {
	if f, ok := st.fields[name]; ok {
		return f.value
	}
	return nil
}

func (st *formState) SetValue(name string, value any) {
	f, ok := st.fields[name]
	if !ok {
		return
	}
	f.value = value
	st.check(name, f)
}

func (st *formState) Status(name string) (Status, string) {
	if f, ok := st.fields[name]; ok {
		return f.status, f.message
	}
	return Untouched, ""
}

func (st *formState) Validate() error {
	var errs *multierror.Error
	for _, name := range st.order {
		f := st.fields[name]
		st.check(name, f)
		if f.status == Invalid {
			errs = multierror.Append(errs, &FieldError{Name: name, Message: f.message})
		}
	}
	return errs.ErrorOrNil()
}

func (st *formState) Reset() {
	for name, f := range st.fields {
		f.value = st.initial[name]
		f.status = Untouched
		f.message = ""
	}
}

func (st *formState) check(name string, f *fieldState) {
	if msg := st.rules[name].Check(f.value); msg != "" {
		f.status, f.message = Invalid, msg
	} else {
		f.status, f.message = Valid, ""
	}
}
