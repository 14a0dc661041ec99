package tags

import (
	"context"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/fieldcheck/pkg/validation"
)

type signup struct {
	Username string `validate:"required,min=3" label:"User name"`
	Email    string `validate:"required,email"`
	Nickname string
}

func newSource(t *testing.T, opts ...Option) *Source {
	t.Helper()
	s, err := New(opts...)
	require.NoError(t, err)
	return s
}

func TestSource_StructModel(t *testing.T) {
	t.Parallel()

	src := newSource(t)
	model := &signup{Username: "ab", Email: "nope"}
	ctx := context.Background()

	tests := []struct {
		field string
		want  []string
	}{
		{"Username", []string{"User name must be at least 3 characters in length"}},
		{"Email", []string{"Email must be a valid email address"}},
		{"Nickname", nil},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			got, err := src.FieldErrors(ctx, validation.FieldIdentifier{Model: model, Name: tt.field}, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	model.Username = "ada"
	got, err := src.FieldErrors(ctx, validation.FieldIdentifier{Model: model, Name: "Username"}, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSource_FieldTags(t *testing.T) {
	t.Parallel()

	src := newSource(t,
		WithFieldTag("email", "required,email"),
		WithFieldTag("age", "omitempty,numeric"),
		WithLabel("email", "Email address"),
	)
	ctx := context.Background()
	values := map[string]string{}

	got, err := src.FieldErrors(ctx, validation.FieldIdentifier{Model: values, Name: "email"}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Email address is a required field"}, got)

	got, err = src.FieldErrors(ctx, validation.FieldIdentifier{Model: values, Name: "age"}, "ten")
	require.NoError(t, err)
	assert.Equal(t, []string{"age must be a valid numeric value"}, got)

	got, err = src.FieldErrors(ctx, validation.FieldIdentifier{Model: values, Name: "age"}, "")
	require.NoError(t, err)
	assert.Empty(t, got)

	assert.True(t, src.HasRules("email"))
	assert.False(t, src.HasRules("unknown"))

	got, err = src.FieldErrors(ctx, validation.FieldIdentifier{Model: values, Name: "unknown"}, "x")
	require.NoError(t, err)
	assert.Empty(t, got, "fields without rules have no messages")
}

func TestSource_CustomValidation(t *testing.T) {
	t.Parallel()

	noSpaces := func(fl validator.FieldLevel) bool {
		return !strings.Contains(fl.Field().String(), " ")
	}
	src := newSource(t,
		WithValidation("nospace", noSpaces, "{0} must not contain spaces"),
		WithFieldTag("handle", "nospace"),
		WithLabel("handle", "Handle"),
	)

	got, err := src.FieldErrors(context.Background(), validation.FieldIdentifier{Name: "handle"}, "ada lovelace")
	require.NoError(t, err)
	assert.Equal(t, []string{"Handle must not contain spaces"}, got)
}

func TestSource_InvalidModel(t *testing.T) {
	t.Parallel()

	src := newSource(t)
	var nilModel *signup

	_, err := src.FieldErrors(context.Background(), validation.FieldIdentifier{Model: nilModel, Name: "Email"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `checking tags for field "Email"`)
}

func TestSource_DrivesAnnotationUnits(t *testing.T) {
	t.Parallel()

	model := &signup{Username: "ada", Email: "ada@example.com"}
	src := newSource(t)
	form, err := validation.New(
		validation.WithModel(model),
		validation.WithAnnotationSource(src),
		validation.WithMode(validation.ModeManual),
	)
	require.NoError(t, err)

	for _, name := range []string{"Username", "Email"} {
		u, err := validation.NewUnit(name, validation.WithHandler(validation.HandlerAnnotation))
		require.NoError(t, err)
		require.NoError(t, form.Attach(context.Background(), u))
	}

	ok, err := form.ValidateAll(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)

	model.Email = ""
	ok, err = form.ValidateAll(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []string{"Email is a required field"}, form.Messages())

	store := form.Binding().Store.(*validation.MemoryStore)
	assert.Equal(t, []string{"Email"}, store.Fields())
}
