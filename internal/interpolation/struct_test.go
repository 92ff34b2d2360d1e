package interpolation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nested struct {
	URL string `env_interpolation:"yes"`
}

type sample struct {
	Token   string `env_interpolation:"yes"`
	Script  string `env_interpolation:"no"`
	Plain   string
	Count   int
	Nested  nested
	Pointer *nested
	private string
}

func TestStruct(t *testing.T) {
	t.Parallel()

	e := New(lookupMap(map[string]string{"TOKEN": "abc", "HOST": "ghe.example.com"}))

	s := &sample{
		Token:   "${TOKEN}",
		Script:  "${TOKEN}",
		Plain:   "${TOKEN}",
		Nested:  nested{URL: "https://${HOST}/api/v3"},
		Pointer: &nested{URL: "${MISSING:https://api.github.com}"},
		private: "${TOKEN}",
	}
	require.NoError(t, e.Struct(s))

	assert.Equal(t, "abc", s.Token)
	assert.Equal(t, "${TOKEN}", s.Script)
	assert.Equal(t, "${TOKEN}", s.Plain)
	assert.Equal(t, "https://ghe.example.com/api/v3", s.Nested.URL)
	assert.Equal(t, "https://api.github.com", s.Pointer.URL)
	assert.Equal(t, "${TOKEN}", s.private)
}

func TestStructErrors(t *testing.T) {
	t.Parallel()

	e := New(lookupMap(nil))

	err := e.Struct(&sample{Token: "${MISSING}"})
	require.ErrorIs(t, err, ErrUndefinedVariable)
	assert.Contains(t, err.Error(), "field Token")

	require.Error(t, e.Struct(sample{}))
	require.Error(t, e.Struct((*sample)(nil)))

	str := "x"
	require.Error(t, e.Struct(&str))
}
