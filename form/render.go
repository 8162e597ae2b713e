package form

import (
	"fmt"
	"net/url"

	"github.com/abellini/survey-front/model"
)

// FieldFor selects the one control that renders a question. QuestionType is
// a closed set rejected at decode time, so the error branch only fires on a
// survey that bypassed validation.
func FieldFor(q model.Question) (Field, error) {
	switch q.Type {
	case model.TypeText:
		return &TextField{
			Name:     q.ID,
			Label:    q.Label,
			HelpText: q.HelpText,
			Required: q.Required,
		}, nil
	case model.TypeSingleChoice:
		return &RadioGroup{
			Name:     q.ID,
			Label:    q.Label,
			HelpText: q.HelpText,
			Required: q.Required,
			Options:  choices(q.Options),
		}, nil
	case model.TypeMultipleChoice:
		return &CheckboxGroup{
			Name:     q.ID,
			Label:    q.Label,
			HelpText: q.HelpText,
			Required: q.Required,
			Options:  choices(q.Options),
		}, nil
	}
	return nil, fmt.Errorf("unsupported question type %q", q.Type)
}

// Fields maps every question to its control, in survey order.
func Fields(questions []model.Question) ([]Field, error) {
	fields := make([]Field, 0, len(questions))
	for _, q := range questions {
		f, err := FieldFor(q)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// BindAll writes every field's posted value into the form state.
func BindAll(fields []Field, posted url.Values, st State) {
	for _, f := range fields {
		f.Bind(posted, st)
	}
}

// Views snapshots template data for every field.
func Views(fields []Field, st State) []FieldView {
	views := make([]FieldView, 0, len(fields))
	for _, f := range fields {
		views = append(views, f.View(st))
	}
	return views
}

func choices(options []model.Option) []ChoiceView {
	cs := make([]ChoiceView, 0, len(options))
	for _, o := range options {
		cs = append(cs, ChoiceView{ID: o.ID, Label: o.Label})
	}
	return cs
}
