package model

import (
	"encoding/json"
	"fmt"
	"sort"
)

type QuestionType string

const (
	TypeText           QuestionType = "text"
	TypeSingleChoice   QuestionType = "single-choice"
	TypeMultipleChoice QuestionType = "multiple-choice"
)

func (t QuestionType) Choice() bool {
	return t == TypeSingleChoice || t == TypeMultipleChoice
}

// UnmarshalJSON rejects unknown question types when a survey document is
// decoded, so downstream code can treat QuestionType as a closed set.
func (t *QuestionType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch qt := QuestionType(s); qt {
	case TypeText, TypeSingleChoice, TypeMultipleChoice:
		*t = qt
		return nil
	}
	return fmt.Errorf("unknown question type %q", s)
}

type Option struct {
	ID    string `json:"_id"`
	Label string `json:"option"`
	Order int    `json:"order"`
}

type Question struct {
	ID       string       `json:"_id"`
	Type     QuestionType `json:"type"`
	Label    string       `json:"question"`
	HelpText string       `json:"helpText,omitempty"`
	Required bool         `json:"required"`
	Options  []Option     `json:"options,omitempty"`
}

type Survey struct {
	ID          string     `json:"_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Questions   []Question `json:"questions"`
}

// Validate checks the structural invariants of a fetched survey: choice
// questions carry at least one option, text questions carry none, and no
// question id repeats. Options are sorted into display order as a side
// effect, since the server does not guarantee their order in the document.
func (s *Survey) Validate() error {
	seen := make(map[string]bool, len(s.Questions))
	for i := range s.Questions {
		q := &s.Questions[i]
		if q.ID == "" {
			return fmt.Errorf("question %d: missing id", i)
		}
		if seen[q.ID] {
			return fmt.Errorf("question %q: duplicate id", q.ID)
		}
		seen[q.ID] = true

		switch {
		case q.Type.Choice() && len(q.Options) == 0:
			return fmt.Errorf("question %q: %s question without options", q.ID, q.Type)
		case !q.Type.Choice() && len(q.Options) > 0:
			return fmt.Errorf("question %q: %s question with options", q.ID, q.Type)
		}

		sort.SliceStable(q.Options, func(a, b int) bool {
			return q.Options[a].Order < q.Options[b].Order
		})
	}
	return nil
}

func (q Question) HasOption(id string) bool {
	for _, o := range q.Options {
		if o.ID == id {
			return true
		}
	}
	return false
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Token string `json:"token"`
}

type Answer struct {
	QuestionID   string       `json:"questionId"`
	Answer       any          `json:"answer"`
	QuestionType QuestionType `json:"questionType"`
}

type Submission struct {
	Anonymous bool     `json:"anonymous"`
	Answers   []Answer `json:"answers"`
}
