package form

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/fieldcheck/internal/errors"
)

func TestCatalog_List(t *testing.T) {
	project := t.TempDir()
	user := t.TempDir()

	writeFile(t, project, "signup.yaml", "name: signup\ndescription: Project signup\nfields:\n  - name: email\n")
	writeFile(t, user, "signup.toml", "name = 'signup'\ndescription = 'User signup'\n")
	writeFile(t, user, "contact.md", "---\nname: contact\n---\n\nReach us\nsecond line\n")
	writeFile(t, user, "broken.json", "{")
	writeFile(t, user, "README.txt", "not a form")

	var skipped []string
	c := NewCatalog(project, user, filepath.Join(user, "missing"))
	entries, err := c.List(func(path string, _ error) { skipped = append(skipped, filepath.Base(path)) })
	require.NoError(t, err)

	assert.Equal(t, []Entry{
		{Name: "contact", Description: "", Path: filepath.Join(user, "contact.md")},
		{Name: "signup", Description: "Project signup", Path: filepath.Join(project, "signup.yaml"), Fields: 1},
	}, entries)
	assert.Equal(t, []string{"broken.json"}, skipped)
}

func TestCatalog_Find(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "signup.yaml", "name: signup\n")
	writeFile(t, dir, "other-file.toml", "name = 'renamed'\n")

	c := NewCatalog(dir)

	t.Run("by file name", func(t *testing.T) {
		def, err := c.Find("signup")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "signup.yaml"), def.Path)
	})

	t.Run("by declared name", func(t *testing.T) {
		def, err := c.Find("renamed")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "other-file.toml"), def.Path)
	})

	t.Run("by path", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "elsewhere.json", `{"name":"elsewhere"}`)
		def, err := c.Find(path)
		require.NoError(t, err)
		assert.Equal(t, "elsewhere", def.Name)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := c.Find("nothing")
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrNotFound))
		assert.Contains(t, errors.GetAllHints(err), "Run: fieldcheck form list")
	})
}

func TestSearch(t *testing.T) {
	entries := []Entry{
		{Name: "newsletter", Description: "Mailing list signup"},
		{Name: "signup-short"},
		{Name: "signup"},
		{Name: "user-signup"},
		{Name: "contact"},
	}

	got := Search(entries, "SIGNUP")
	var names []string
	for _, e := range got {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"signup", "signup-short", "user-signup", "newsletter"}, names)

	assert.Len(t, Search(entries, ""), len(entries))
	assert.Empty(t, Search(entries, "zzz"))
}
