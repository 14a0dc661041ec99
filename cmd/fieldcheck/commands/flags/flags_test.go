package flags

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thoreinstein/fieldcheck/internal/config"
)

func reset(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		SetConfig(nil)
		SetFormsDirFlag("")
		SetColorFlag("")
	})
}

func TestConfig_DefaultsBeforeLoad(t *testing.T) {
	reset(t)
	SetConfig(nil)
	assert.Equal(t, config.Default(), Config())
}

func TestFormsDir_Precedence(t *testing.T) {
	reset(t)

	assert.Empty(t, FormsDir())

	c := config.Default()
	c.FormsDir = "/from/config"
	SetConfig(c)
	assert.Equal(t, "/from/config", FormsDir())

	SetFormsDirFlag("/from/flag")
	assert.Equal(t, "/from/flag", FormsDir())
}

func TestColorMode_Precedence(t *testing.T) {
	reset(t)

	assert.Equal(t, "auto", ColorMode())
	SetColorFlag("never")
	assert.Equal(t, "never", ColorMode())
}
