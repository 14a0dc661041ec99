package frontmatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/fieldcheck/internal/errors"
)

type formMeta struct {
	Name   string   `yaml:"name"`
	Mode   string   `yaml:"mode"`
	Fields []string `yaml:"fields"`
}

func TestMustParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantMeta formMeta
		wantBody string
		wantErr  error
	}{
		{
			name:     "header and body",
			input:    "---\nname: signup\nfields:\n  - email\n---\n\n# Signup\n",
			wantMeta: formMeta{Name: "signup", Fields: []string{"email"}},
			wantBody: "# Signup\n",
		},
		{
			name:     "crlf",
			input:    "---\r\nname: signup\r\nmode: manual\r\n---\r\nbody\r\n",
			wantMeta: formMeta{Name: "signup", Mode: "manual"},
			wantBody: "body\r\n",
		},
		{
			name:     "empty header",
			input:    "---\n---\nbody",
			wantBody: "body",
		},
		{
			name:     "no body",
			input:    "---\nname: x\n---\n",
			wantMeta: formMeta{Name: "x"},
		},
		{
			name:    "no header",
			input:   "# Just markdown\n",
			wantErr: ErrMissingFrontmatter,
		},
		{
			name:    "unclosed",
			input:   "---\nname: x\n",
			wantErr: ErrUnclosedFrontmatter,
		},
		{
			name:    "dashes inside a line do not close",
			input:   "---\nname: a---b\n",
			wantErr: ErrUnclosedFrontmatter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var meta formMeta
			body, err := MustParse(strings.NewReader(tt.input), &meta)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMeta, meta)
			assert.Equal(t, tt.wantBody, string(body))
		})
	}
}

func TestParse_OptionalHeader(t *testing.T) {
	input := "plain text\n---\n"
	var meta formMeta
	body, err := Parse(strings.NewReader(input), &meta)
	require.NoError(t, err)
	assert.Equal(t, input, string(body))
	assert.Equal(t, formMeta{}, meta)
}

func TestParse_InvalidYAML(t *testing.T) {
	var meta formMeta
	_, err := Parse(strings.NewReader("---\nname: [unterminated\n---\n"), &meta)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing frontmatter")
}

func TestParseHeader(t *testing.T) {
	t.Run("stops at the closing delimiter", func(t *testing.T) {
		var meta formMeta
		err := ParseHeader(strings.NewReader("---\nname: signup\n---\nname: ignored\n"), &meta)
		require.NoError(t, err)
		assert.Equal(t, "signup", meta.Name)
	})

	t.Run("no header", func(t *testing.T) {
		var meta formMeta
		require.NoError(t, ParseHeader(strings.NewReader("text"), &meta))
		assert.Empty(t, meta.Name)
	})

	t.Run("unclosed", func(t *testing.T) {
		var meta formMeta
		err := ParseHeader(strings.NewReader("---\nname: x\n"), &meta)
		assert.True(t, errors.Is(err, ErrUnclosedFrontmatter))
	})
}

func TestFormat_RoundTripsThroughParse(t *testing.T) {
	meta := formMeta{Name: "signup", Mode: "auto", Fields: []string{"email", "age"}}

	out, err := Format(meta, "Collects account details.")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "---\nname: signup\n"))
	assert.True(t, strings.HasSuffix(string(out), "---\n\nCollects account details.\n"))

	var back formMeta
	body, err := MustParse(strings.NewReader(string(out)), &back)
	require.NoError(t, err)
	assert.Equal(t, meta, back)
	assert.Equal(t, "Collects account details.\n", string(body))
}
