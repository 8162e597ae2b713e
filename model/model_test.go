package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionTypeDecode(t *testing.T) {
	var q Question
	err := json.Unmarshal([]byte(`{"_id":"q1","type":"text","question":"Name?"}`), &q)
	require.NoError(t, err)
	assert.Equal(t, TypeText, q.Type)

	err = json.Unmarshal([]byte(`{"_id":"q1","type":"rating","question":"Stars?"}`), &q)
	assert.ErrorContains(t, err, `unknown question type "rating"`)
}

func TestSurveyValidate(t *testing.T) {
	survey := Survey{Questions: []Question{
		{ID: "q1", Type: TypeText},
		{ID: "q2", Type: TypeSingleChoice, Options: []Option{
			{ID: "o2", Label: "No", Order: 2},
			{ID: "o1", Label: "Yes", Order: 1},
		}},
	}}
	require.NoError(t, survey.Validate())

	// options sorted into display order
	assert.Equal(t, "o1", survey.Questions[1].Options[0].ID)
	assert.Equal(t, "o2", survey.Questions[1].Options[1].ID)
}

func TestSurveyValidateRejectsChoiceWithoutOptions(t *testing.T) {
	survey := Survey{Questions: []Question{
		{ID: "q1", Type: TypeMultipleChoice},
	}}
	assert.ErrorContains(t, survey.Validate(), "without options")
}

func TestSurveyValidateRejectsTextWithOptions(t *testing.T) {
	survey := Survey{Questions: []Question{
		{ID: "q1", Type: TypeText, Options: []Option{{ID: "o1"}}},
	}}
	assert.ErrorContains(t, survey.Validate(), "with options")
}

func TestSurveyValidateRejectsDuplicateIds(t *testing.T) {
	survey := Survey{Questions: []Question{
		{ID: "q1", Type: TypeText},
		{ID: "q1", Type: TypeText},
	}}
	assert.ErrorContains(t, survey.Validate(), "duplicate id")
}

func TestHasOption(t *testing.T) {
	q := Question{Options: []Option{{ID: "o1"}, {ID: "o2"}}}
	assert.True(t, q.HasOption("o2"))
	assert.False(t, q.HasOption("o3"))
}
