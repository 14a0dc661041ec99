package cli

import (
	"fmt"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/thoreinstein/fieldcheck/internal/errors"
	"github.com/thoreinstein/fieldcheck/internal/form"
)

// ErrNoForms is returned by PickForm when there is nothing to choose from.
var ErrNoForms = errors.New("no forms found")

// ErrPickAborted is returned by PickForm when the user leaves the finder.
var ErrPickAborted = errors.New("form selection aborted")

// findFunc matches fuzzyfinder.Find; tests replace it.
type findFunc func(slice any, itemFunc func(int) string, opts ...fuzzyfinder.Option) (int, error)

var find findFunc = fuzzyfinder.Find

// PickForm opens a fuzzy finder over entries and returns the chosen one.
func PickForm(entries []form.Entry) (*form.Entry, error) {
	if len(entries) == 0 {
		return nil, errors.WithHint(ErrNoForms, "Run: fieldcheck form init <name>")
	}

	idx, err := find(
		entries,
		func(i int) string {
			return entries[i].Name
		},
		fuzzyfinder.WithPromptString("form> "),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			return preview(entries[i])
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil, ErrPickAborted
		}
		return nil, errors.Wrap(err, "interactive selection failed")
	}
	return &entries[idx], nil
}

func preview(e form.Entry) string {
	return fmt.Sprintf("Name:   %s\nFields: %d\nPath:   %s\n\n%s", e.Name, e.Fields, e.Path, e.Description)
}
