package casjobs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileEmptyFilter(t *testing.T) {
	s, err := Filter{}.Compile()
	require.NoError(t, err)
	assert.Equal(t, "", s)
}

func TestCompileConditionForms(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"equality", "123", "jobid:123"},
		{"at least", "123,", "jobid:123,"},
		{"at most", ",123", "jobid:,123"},
		{"range", "120,123", "jobid:120,123"},
		{"alternatives", "123|321|132", "jobid:123|321|132"},
		{"range alternatives", "123,|,122", "jobid:123,|,122"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Filter{JobID: tt.value}.Compile()
			require.NoError(t, err)
			assert.Equal(t, tt.want, s)
		})
	}
}

func TestCompileIntersection(t *testing.T) {
	s, err := Filter{JobID: "123|321", Status: "5"}.Compile()
	require.NoError(t, err)
	assert.Equal(t, "jobid:123|321;status:5", s)
}

func TestCompileFixedFieldOrder(t *testing.T) {
	f := Filter{
		WebServicesID: "42",
		Type:          "1",
		Status:        "5",
		TimeEnd:       "2008-04-05,",
		JobID:         "7",
	}
	s, err := f.Compile()
	require.NoError(t, err)
	assert.Equal(t, "jobid:7;timeend:2008-04-05,;status:5;type:1;wsid:42", s)
}

func TestCompileDeterministic(t *testing.T) {
	f := Filter{JobID: "1|2|3", TaskName: "nightly", Context: "DR7"}
	first, err := f.Compile()
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := f.Compile()
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestCompileRejectsReservedCharacters(t *testing.T) {
	for _, value := range []string{"a:b", "a;b", ";", ":"} {
		_, err := Filter{TaskName: value}.Compile()
		require.Error(t, err, "value %q", value)
		assert.Equal(t, KindInvalidFilterInput, KindOf(err))
	}
}

func TestConditionHelpers(t *testing.T) {
	assert.Equal(t, "1|2|3", AnyOf("1", "2", "3"))
	assert.Equal(t, "123,", AtLeast("123"))
	assert.Equal(t, ",123", AtMost("123"))
	assert.Equal(t, "120,123", Between("120", "123"))

	s, err := Filter{JobID: AnyOf(AtLeast("123"), AtMost("122"))}.Compile()
	require.NoError(t, err)
	assert.Equal(t, "jobid:123,|,122", s)
}
