package form

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abellini/survey-front/model"
)

func TestBuildSubmissionRoundTrip(t *testing.T) {
	survey := model.Survey{ID: "s1", Questions: questions()}
	st := NewState(survey.Questions)
	fields, err := Fields(survey.Questions)
	require.NoError(t, err)

	BindAll(fields, url.Values{
		"q1": {"hello"},
		"q2": {"o2"},
		"q3": {"c1", "c3"},
	}, st)
	require.NoError(t, st.Validate())

	sub := BuildSubmission(survey, st, false)

	assert.False(t, sub.Anonymous)
	require.Len(t, sub.Answers, len(survey.Questions))

	// answers come out in survey order, each tagged with its question's type
	assert.Equal(t, model.Answer{QuestionID: "q1", Answer: "hello", QuestionType: model.TypeText}, sub.Answers[0])
	assert.Equal(t, model.Answer{QuestionID: "q2", Answer: "o2", QuestionType: model.TypeSingleChoice}, sub.Answers[1])
	assert.Equal(t, model.Answer{QuestionID: "q3", Answer: []string{"c1", "c3"}, QuestionType: model.TypeMultipleChoice}, sub.Answers[2])
}

func TestBuildSubmissionAnonymous(t *testing.T) {
	survey := model.Survey{ID: "s1", Questions: questions()[:1]}
	st := NewState(survey.Questions)
	st.SetValue("q1", "hi")

	sub := BuildSubmission(survey, st, true)
	assert.True(t, sub.Anonymous)
	require.Len(t, sub.Answers, 1)
}
