package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abellini/survey-front/model"
)

func questions() []model.Question {
	return []model.Question{
		{ID: "q1", Type: model.TypeText, Label: "Your thoughts", Required: true},
		{ID: "q2", Type: model.TypeSingleChoice, Label: "Recommend us?", Required: true, Options: []model.Option{
			{ID: "o1", Label: "Yes", Order: 1},
			{ID: "o2", Label: "No", Order: 2},
		}},
		{ID: "q3", Type: model.TypeMultipleChoice, Label: "Contact channels", Options: []model.Option{
			{ID: "c1", Label: "Email", Order: 1},
			{ID: "c2", Label: "Phone", Order: 2},
			{ID: "c3", Label: "Chat", Order: 3},
		}},
	}
}

func TestSchemaInitialValues(t *testing.T) {
	initial, _ := Schema(questions())

	require.Len(t, initial, 3)
	assert.Equal(t, "", initial["q1"])
	assert.Equal(t, "", initial["q2"])
	assert.Equal(t, []string{}, initial["q3"])
}

func TestSchemaRules(t *testing.T) {
	_, rules := Schema(questions())

	assert.True(t, rules["q1"].Required)
	assert.Nil(t, rules["q1"].Options)

	assert.True(t, rules["q2"].Required)
	assert.False(t, rules["q2"].Multiple)
	assert.Equal(t, map[string]bool{"o1": true, "o2": true}, rules["q2"].Options)

	assert.False(t, rules["q3"].Required)
	assert.True(t, rules["q3"].Multiple)
}

func TestRuleCheck(t *testing.T) {
	_, rules := Schema(questions())

	assert.Equal(t, msgRequired, rules["q1"].Check(""))
	assert.Equal(t, "", rules["q1"].Check("hello"))

	assert.Equal(t, msgRequired, rules["q2"].Check(""))
	assert.Equal(t, "", rules["q2"].Check("o2"))
	assert.Equal(t, msgUnknownOption, rules["q2"].Check("nope"))

	assert.Equal(t, "", rules["q3"].Check([]string{}))
	assert.Equal(t, "", rules["q3"].Check([]string{"c1", "c3"}))
	assert.Equal(t, msgUnknownOption, rules["q3"].Check([]string{"c1", "zz"}))
}

func TestRuleCheckRequiredMultiple(t *testing.T) {
	rule := Rule{Required: true, Multiple: true, Options: map[string]bool{"c1": true}}
	assert.Equal(t, msgRequiredMulti, rule.Check([]string{}))
	assert.Equal(t, "", rule.Check([]string{"c1"}))
}

func TestSchemaIsPure(t *testing.T) {
	qs := questions()
	i1, r1 := Schema(qs)
	i2, r2 := Schema(qs)
	assert.Equal(t, i1, i2)
	assert.Equal(t, r1, r2)
}
