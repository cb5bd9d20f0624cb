package search

import (
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-navtree/pkg/models"
)

func sortedIDs(notes models.NoteDict) []string {
	ids := make([]string, 0, len(notes))
	for id := range notes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := NewIndex(filepath.Join(t.TempDir(), "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })
	return idx
}

func sampleData() *models.NoteData {
	order := 1
	updated := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	return &models.NoteData{
		Notes: models.NoteDict{
			"root":    {ID: "root", Fname: "root", Title: "Home", Children: []string{"lang", "daily"}},
			"lang":    {ID: "lang", Parent: "root", Fname: "lang", Title: "Languages", Children: []string{"lang.go"}, NavOrder: &order},
			"lang.go": {ID: "lang.go", Parent: "lang", Fname: "lang.go", Title: "Go", Stub: true, Updated: updated},
			"daily":   {ID: "daily", Parent: "root", Fname: "daily", Title: "Daily Journal", NavExclude: true, Vault: "main"},
		},
		Domains:   []string{"lang", "daily"},
		NoteIndex: "root",
	}
}

func TestIndexRoundTrip(t *testing.T) {
	idx := newTestIndex(t)
	require.NoError(t, idx.ReplaceAll(sampleData()))

	data, err := idx.Load()
	require.NoError(t, err)
	require.True(t, data.Verify())

	assert.Equal(t, []string{"daily", "lang", "lang.go", "root"}, sortedIDs(data.Notes))
	assert.Equal(t, []string{"lang", "daily"}, data.Domains)
	assert.Equal(t, "root", data.NoteIndex)

	assert.Equal(t, []string{"daily", "lang"}, data.Notes["root"].Children)
	assert.Equal(t, []string{"lang.go"}, data.Notes["lang"].Children)
	require.NotNil(t, data.Notes["lang"].NavOrder)
	assert.Equal(t, 1, *data.Notes["lang"].NavOrder)
	assert.Nil(t, data.Notes["daily"].NavOrder)
	assert.True(t, data.Notes["daily"].NavExclude)
	assert.Equal(t, "main", data.Notes["daily"].Vault)
	assert.True(t, data.Notes["lang.go"].Stub)
	assert.True(t, data.Notes["lang.go"].Updated.Equal(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)))
	assert.True(t, data.Notes["root"].Created.IsZero())
}

func TestIndexReplaceAllDropsOldNotes(t *testing.T) {
	idx := newTestIndex(t)
	require.NoError(t, idx.ReplaceAll(sampleData()))

	smaller := &models.NoteData{
		Notes:   models.NoteDict{"solo": {ID: "solo", Fname: "solo", Title: "Solo"}},
		Domains: []string{"solo"},
	}
	require.NoError(t, idx.ReplaceAll(smaller))

	count, err := idx.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	data, err := idx.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"solo"}, data.Domains)
	assert.Equal(t, "", data.NoteIndex)
}

func TestIndexReplaceAllRejectsUnavailableData(t *testing.T) {
	idx := newTestIndex(t)
	assert.Error(t, idx.ReplaceAll(nil))
	assert.Error(t, idx.ReplaceAll(&models.NoteData{}))
}

func TestIndexLoadEmpty(t *testing.T) {
	idx := newTestIndex(t)
	data, err := idx.Load()
	require.NoError(t, err)
	assert.True(t, data.Verify())
	assert.Empty(t, data.Notes)
	assert.Equal(t, []string{}, data.Domains)
}

func TestSearchTitles(t *testing.T) {
	idx := newTestIndex(t)
	require.NoError(t, idx.ReplaceAll(sampleData()))

	results, err := idx.SearchTitles("JOURNAL", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "daily", results[0].ID)

	// Stubs are not searchable.
	results, err = idx.SearchTitles("go", 10)
	require.NoError(t, err)
	assert.Empty(t, results)

	results, err = idx.SearchTitles("", 0)
	require.NoError(t, err)
	assert.Len(t, results, 3)

	results, err = idx.SearchTitles("", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestSearchTitlesMatchesWildcardsLiterally(t *testing.T) {
	idx := newTestIndex(t)
	data := &models.NoteData{
		Notes: models.NoteDict{
			"snake":   {ID: "snake", Fname: "a_b", Title: "Snake"},
			"plain":   {ID: "plain", Fname: "axb", Title: "Plain"},
			"percent": {ID: "percent", Fname: "rates", Title: "100% Done"},
			"slash":   {ID: "slash", Fname: "paths", Title: `C:\Temp`},
		},
		Domains: []string{"snake", "plain", "percent", "slash"},
	}
	require.NoError(t, idx.ReplaceAll(data))

	results, err := idx.SearchTitles("a_b", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "snake", results[0].ID)

	results, err = idx.SearchTitles("100%", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "percent", results[0].ID)

	results, err = idx.SearchTitles(`c:\t`, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "slash", results[0].ID)
}
