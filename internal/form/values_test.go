package form

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadValues(t *testing.T) {
	tests := map[string]string{
		"values.yaml": "email: a@b.co\nage: 21\n",
		"values.json": `{"email": "a@b.co", "age": 21}`,
		"values.toml": "email = 'a@b.co'\nage = 21\n",
	}

	for file, content := range tests {
		t.Run(file, func(t *testing.T) {
			v, err := LoadValues(writeFile(t, t.TempDir(), file, content))
			require.NoError(t, err)
			assert.Equal(t, []string{"age", "email"}, v.Names())
			assert.Equal(t, "a@b.co", v.Get("email"))
			assert.EqualValues(t, 21, v.Get("age"))
		})
	}
}

func TestValues_SaveRoundTrip(t *testing.T) {
	v := Values{"email": "a@b.co", "zip": "12345"}
	path := filepath.Join(t.TempDir(), "answers.yaml")
	require.NoError(t, v.Save(path))

	back, err := LoadValues(path)
	require.NoError(t, err)
	assert.Equal(t, v, back)
}

func TestValues_Missing(t *testing.T) {
	_, err := LoadValues(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
