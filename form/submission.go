package form

import (
	"github.com/abellini/survey-front/model"
)

// BuildSubmission serializes the form state into the answer payload: one
// entry per question, in survey order, each tagged with the originating
// question's type so the server knows the answer's shape.
func BuildSubmission(survey model.Survey, st State, anonymous bool) model.Submission {
	answers := make([]model.Answer, 0, len(survey.Questions))
	for _, q := range survey.Questions {
		answers = append(answers, model.Answer{
			QuestionID:   q.ID,
			Answer:       st.Value(q.ID),
			QuestionType: q.Type,
		})
	}
	return model.Submission{Anonymous: anonymous, Answers: answers}
}
