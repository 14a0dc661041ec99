package prompt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/fieldcheck/internal/errors"
	"github.com/thoreinstein/fieldcheck/internal/form"
)

func TestAsk(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		current    string
		want       string
		wantPrompt string
		wantErr    error
	}{
		{"answer", "a@b.co\n", "", "a@b.co", "Email: ", nil},
		{"keeps current", "\n", "old", "old", "Email [old]: ", nil},
		{"replaces current", "new\r\n", "old", "new", "Email [old]: ", nil},
		{"last line without newline", "tail", "", "tail", "Email: ", nil},
		{"eof", "", "old", "", "Email [old]: ", ErrCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewWithIO(strings.NewReader(tt.input), &out)

			got, err := p.Ask("Email", tt.current)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantPrompt, out.String())
		})
	}
}

func TestAsk_KeepsBufferedInput(t *testing.T) {
	p := NewWithIO(strings.NewReader("first\nsecond\n"), &bytes.Buffer{})

	a, err := p.Ask("one", "")
	require.NoError(t, err)
	b, err := p.Ask("two", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, []string{a, b})
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input   string
		def     bool
		want    bool
		wantErr bool
	}{
		{"y\n", false, true, false},
		{"YES\n", false, true, false},
		{"n\n", true, false, false},
		{"\n", true, true, false},
		{"\n", false, false, false},
		{"maybe\n", false, false, true},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			p := NewWithIO(strings.NewReader(tt.input), &bytes.Buffer{})
			got, err := p.Confirm("Save?", tt.def)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidSelection))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectForm(t *testing.T) {
	entries := []form.Entry{
		{Name: "signup", Description: "Create an account"},
		{Name: "signup-lite"},
	}

	t.Run("empty", func(t *testing.T) {
		_, err := NewWithIO(strings.NewReader(""), &bytes.Buffer{}).SelectForm("x", nil)
		assert.True(t, errors.Is(err, ErrNoForms))
	})

	t.Run("single entry does not prompt", func(t *testing.T) {
		var out bytes.Buffer
		got, err := NewWithIO(strings.NewReader(""), &out).SelectForm("signup", entries[:1])
		require.NoError(t, err)
		assert.Equal(t, "signup", got.Name)
		assert.Zero(t, out.Len())
	})

	t.Run("menu and choice", func(t *testing.T) {
		var out bytes.Buffer
		got, err := NewWithIO(strings.NewReader("2\n"), &out).SelectForm("signup", entries)
		require.NoError(t, err)
		assert.Equal(t, "signup-lite", got.Name)
		assert.Equal(t, "Multiple forms match \"signup\":\n  [1] signup - Create an account\n  [2] signup-lite\nSelect [1]: ", out.String())
	})

	t.Run("default", func(t *testing.T) {
		got, err := NewWithIO(strings.NewReader("\n"), &bytes.Buffer{}).SelectForm("signup", entries)
		require.NoError(t, err)
		assert.Equal(t, "signup", got.Name)
	})

	for _, input := range []string{"abc\n", "0\n", "3\n"} {
		t.Run("invalid "+strings.TrimSpace(input), func(t *testing.T) {
			_, err := NewWithIO(strings.NewReader(input), &bytes.Buffer{}).SelectForm("signup", entries)
			assert.True(t, errors.Is(err, ErrInvalidSelection))
		})
	}

	t.Run("cancelled", func(t *testing.T) {
		_, err := NewWithIO(strings.NewReader(""), &bytes.Buffer{}).SelectForm("signup", entries)
		assert.True(t, errors.Is(err, ErrCancelled))
	})
}
