package form

import (
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStateStartsUntouched(t *testing.T) {
	st := NewState(questions())

	for _, name := range []string{"q1", "q2", "q3"} {
		status, msg := st.Status(name)
		assert.Equal(t, Untouched, status)
		assert.Empty(t, msg)
	}
	assert.Equal(t, "", st.Value("q1"))
	assert.Equal(t, []string{}, st.Value("q3"))
}

func TestSetValueRevalidatesThatFieldOnly(t *testing.T) {
	st := NewState(questions())

	st.SetValue("q1", "")
	status, msg := st.Status("q1")
	assert.Equal(t, Invalid, status)
	assert.Equal(t, msgRequired, msg)

	// q2 is required too, but was not touched
	status, _ = st.Status("q2")
	assert.Equal(t, Untouched, status)

	st.SetValue("q1", "hello")
	status, msg = st.Status("q1")
	assert.Equal(t, Valid, status)
	assert.Empty(t, msg)
}

func TestSetValueIgnoresUnknownField(t *testing.T) {
	st := NewState(questions())
	st.SetValue("bogus", "x")
	assert.Nil(t, st.Value("bogus"))
}

func TestValidateCollectsAllViolations(t *testing.T) {
	st := NewState(questions())

	err := st.Validate()
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	require.Len(t, merr.Errors, 2) // q1 and q2 required, q3 optional

	var ferr *FieldError
	require.ErrorAs(t, merr.Errors[0], &ferr)
	assert.Equal(t, "q1", ferr.Name)
	assert.Equal(t, msgRequired, ferr.Message)
}

func TestValidatePassesWhenComplete(t *testing.T) {
	st := NewState(questions())
	st.SetValue("q1", "hello")
	st.SetValue("q2", "o2")

	assert.NoError(t, st.Validate())

	status, _ := st.Status("q3")
	assert.Equal(t, Valid, status)
}

func TestReset(t *testing.T) {
	st := NewState(questions())
	st.SetValue("q1", "hello")
	st.SetValue("q3", []string{"c1"})

	st.Reset()

	assert.Equal(t, "", st.Value("q1"))
	assert.Equal(t, []string{}, st.Value("q3"))
	status, _ := st.Status("q1")
	assert.Equal(t, Untouched, status)
}
