// Package form turns a survey's question list into a typed form: initial
// values, per-field validation rules, field controls bound to a shared
// state, and the answer payload built from that state at submit time.
package form

import (
	"github.com/abellini/survey-front/model"
)

const (
	msgRequired      = "This question is required"
	msgRequiredMulti = "Select at least one option"
	msgUnknownOption = "Unknown option"
)

// Rule is the validation rule derived for one question. The zero Rule
// accepts anything.
type Rule struct {
	Required bool
	Multiple bool
	// allowed option ids; nil for free-text questions
	Options map[string]bool
}

// Check returns the violation message for a value, or "" if it passes.
func (r Rule) Check(value any) string {
	if r.Multiple {
		vs, _ := value.([]string)
		if r.Required && len(vs) == 0 {
			return msgRequiredMulti
		}
		for _, v := range vs {
			if !r.Options[v] {
				return msgUnknownOption
			}
		}
		return ""
	}

	v, _ := value.(string)
	if r.Required && v == "" {
		return msgRequired
	}
	if r.Options != nil && v != "" && !r.Options[v] {
		return msgUnknownOption
	}
	return ""
}

// Schema derives initial values and validation rules from a question list.
// Pure function of its input; recomputed whenever the survey is reloaded.
// Values are "" for text and single-choice questions, an empty sequence for
// multiple-choice.
func Schema(questions []model.Question) (initial map[string]any, rules map[string]Rule) {
	initial = make(map[string]any, len(questions))
	rules = make(map[string]Rule, len(questions))

	for _, q := range questions {
		rule := Rule{Required: q.Required}
		if q.Type.Choice() {
			rule.Options = make(map[string]bool, len(q.Options))
			for _, o := range q.Options {
				rule.Options[o.ID] = true
			}
		}

		switch q.Type {
		case model.TypeMultipleChoice:
			initial[q.ID] = []string{}
			rule.Multiple = true
		default:
			initial[q.ID] = ""
		}
		rules[q.ID] = rule
	}
	return
}
