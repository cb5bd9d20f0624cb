package vault

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-navtree/pkg/frontmatter"
)

func TestCheckReportsIssues(t *testing.T) {
	dir := t.TempDir()
	writeNote(t, dir, "lang.go", &frontmatter.Frontmatter{ID: "go", Title: "Go"})
	writeNote(t, dir, "daily", nil)

	issues, err := Check(dir)
	require.NoError(t, err)

	assert.Equal(t, []Issue{
		{Kind: IssueNoRoot},
		{Kind: IssueMissingID, Fname: "daily", Fixable: true},
		{Kind: IssueMissingTitle, Fname: "daily", Fixable: true},
		{Kind: IssueStub, Fname: "lang"},
	}, issues)
	assert.Equal(t, "lang: hierarchy level has no note file", issues[3].String())
}

func TestCheckCleanVault(t *testing.T) {
	dir := t.TempDir()
	writeNote(t, dir, "root", &frontmatter.Frontmatter{ID: "root", Title: "Home"})
	writeNote(t, dir, "lang", &frontmatter.Frontmatter{ID: "lang", Title: "Languages"})

	issues, err := Check(dir)
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestFixKeepsDerivedIDs(t *testing.T) {
	dir := t.TempDir()
	writeNote(t, dir, "root", &frontmatter.Frontmatter{ID: "root", Title: "Home"})
	writeNote(t, dir, "proj.go-modules", nil)

	before, err := Load(dir, WithVaultName("main"))
	require.NoError(t, err)
	derived := before.Notes.FindByFname("proj.go-modules").ID

	fixed, err := Fix(dir, WithVaultName("main"))
	require.NoError(t, err)
	assert.Equal(t, 1, fixed)

	content, err := os.ReadFile(filepath.Join(dir, "proj.go-modules.md"))
	require.NoError(t, err)
	fm, body, err := frontmatter.Parse(string(content))
	require.NoError(t, err)
	require.NotNil(t, fm)
	assert.Equal(t, derived, fm.ID)
	assert.Equal(t, "Go Modules", fm.Title)
	assert.NotZero(t, fm.Created)
	assert.Contains(t, body, "# proj.go-modules")

	// A second run has nothing left to do.
	fixed, err = Fix(dir, WithVaultName("main"))
	require.NoError(t, err)
	assert.Zero(t, fixed)

	after, err := Load(dir, WithVaultName("main"))
	require.NoError(t, err)
	assert.Equal(t, derived, after.Notes.FindByFname("proj.go-modules").ID)
}

func TestFixKeepsOtherFrontmatterKeys(t *testing.T) {
	dir := t.TempDir()
	writeNote(t, dir, "root", &frontmatter.Frontmatter{ID: "root", Title: "Home"})
	original := "---\ntitle: Lang\nauthor: alice\nconfig:\n  global:\n    enableChildLinks: false\n---\nbody\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lang.md"), []byte(original), 0644))

	fixed, err := Fix(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, fixed)

	content, err := os.ReadFile(filepath.Join(dir, "lang.md"))
	require.NoError(t, err)
	text := string(content)
	assert.Contains(t, text, "author: alice")
	assert.Contains(t, text, "enableChildLinks: false")
	assert.Contains(t, text, "title: Lang")
	assert.True(t, strings.HasSuffix(text, "\n---\nbody\n"), "body must follow the closing delimiter unchanged: %q", text)

	fm, body, err := frontmatter.Parse(text)
	require.NoError(t, err)
	require.NotNil(t, fm)
	assert.Equal(t, DeriveID(filepath.Base(dir), "lang"), fm.ID)
	assert.Equal(t, "body\n", body)
}

func TestFixKeepsVaultLoadable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "root.md"), []byte("---\nid: \"a: b\"\n---\n"), 0644))

	fixed, err := Fix(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, fixed)

	data, err := Load(dir)
	require.NoError(t, err)
	root := data.Notes.Get("a: b")
	require.NotNil(t, root)
	assert.Equal(t, "Root", root.Title)
}
