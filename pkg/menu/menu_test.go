package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-navtree/pkg/models"
)

func vaultData() *models.NoteData {
	return &models.NoteData{
		Notes: models.NoteDict{
			"root":  {ID: "root", Title: "Root", Children: []string{"child", "other"}},
			"child": {ID: "child", Parent: "root", Title: "Child", Children: []string{"grand"}},
			"grand": {ID: "grand", Parent: "child", Title: "Grand"},
			"other": {ID: "other", Parent: "root", Title: "Other"},
		},
		Domains:   []string{"root"},
		NoteIndex: "root",
	}
}

func TestViewUnavailable(t *testing.T) {
	m := New(nil)
	m.SetRoute("grand")
	m.Toggle("grand")

	v := m.View()
	assert.False(t, v.Available)
	assert.Empty(t, v.OpenKeys)
	assert.Nil(t, Flatten(v))
}

func TestActiveNoteFallsBackToNoteIndex(t *testing.T) {
	m := New(nil)
	m.SetData(vaultData())
	assert.Equal(t, "root", m.ActiveNoteID())
	assert.Equal(t, []string{"root"}, m.View().OpenKeys)

	m.SetRoute("grand")
	assert.Equal(t, "grand", m.ActiveNoteID())
	assert.Equal(t, []string{"root", "child", "grand"}, m.View().OpenKeys)

	m.SetRoute("")
	assert.Equal(t, []string{"root"}, m.View().OpenKeys)
}

func TestRouteBeforeData(t *testing.T) {
	m := New(nil)
	m.SetRoute("grand")
	m.SetData(vaultData())

	v := m.View()
	require.True(t, v.Available)
	assert.Equal(t, "grand", v.ActiveNote)
	assert.Equal(t, []string{"root", "child", "grand"}, v.OpenKeys)
	assert.Equal(t, v.OpenKeys, v.SelectedKeys)
}

func TestActiveNoteChangeScenario(t *testing.T) {
	m := New(nil)
	m.SetData(vaultData())
	m.SetRoute("grand")
	require.Equal(t, []string{"root", "child", "grand"}, m.View().OpenKeys)

	m.SetRoute("root")
	assert.Equal(t, []string{"root"}, m.View().OpenKeys)
}

func TestToggleKeepsActiveNotePresented(t *testing.T) {
	m := New(nil)
	m.SetData(vaultData())
	m.SetRoute("grand")

	m.Toggle("child")
	v := m.View()
	assert.Equal(t, []string{"root", "grand"}, v.OpenKeys)
	assert.True(t, v.IsOpen("root"))
	assert.False(t, v.IsOpen("child"))
	assert.True(t, v.IsSelected("grand"))
}

func TestSelectCollapsesAndNavigates(t *testing.T) {
	var navigated []string
	m := New(func(id string) { navigated = append(navigated, id) })
	m.SetData(vaultData())

	m.Select("other")
	assert.Equal(t, []string{"other"}, navigated)
	assert.True(t, m.Collapsed())

	v := m.View()
	assert.True(t, v.Collapsed)
	assert.Empty(t, v.OpenKeys)
	assert.Empty(t, v.SelectedKeys)

	// The router reports the new location back.
	m.SetRoute("other")
	m.SetCollapsed(false)
	assert.Equal(t, []string{"root", "other"}, m.View().OpenKeys)
}

func TestSelectWithoutCollapse(t *testing.T) {
	var navigated []string
	m := New(func(id string) { navigated = append(navigated, id) }, WithCollapseOnSelect(false))
	m.SetData(vaultData())
	m.SetRoute("grand")

	m.Select("other")
	assert.Equal(t, []string{"other"}, navigated)
	assert.False(t, m.Collapsed())
	assert.Equal(t, []string{"root", "child", "grand"}, m.View().OpenKeys)
}

func TestDataReloadRecomputes(t *testing.T) {
	m := New(nil)
	m.SetData(vaultData())
	m.SetRoute("grand")

	reloaded := vaultData()
	reloaded.Notes["grand"] = &models.Note{ID: "grand", Parent: "other", Title: "Grand"}
	reloaded.Notes["child"].Children = nil
	reloaded.Notes["other"].Children = []string{"grand"}
	m.SetData(reloaded)

	assert.Equal(t, []string{"root", "other", "grand"}, m.View().OpenKeys)
}

func TestFlatten(t *testing.T) {
	m := New(nil)
	m.SetData(vaultData())
	m.SetRoute("grand")

	rows := Flatten(m.View())
	var ids []string
	for _, r := range rows {
		ids = append(ids, r.Node.ID)
	}
	assert.Equal(t, []string{"root", "child", "grand", "other"}, ids)
	assert.Equal(t, 2, rows[2].Depth)
	assert.True(t, rows[2].Active)
	assert.True(t, rows[1].Open)
	assert.False(t, rows[3].HasChildren)
	assert.True(t, rows[1].Selected)
	assert.False(t, rows[3].Selected)

	m.Toggle("child")
	rows = Flatten(m.View())
	require.Len(t, rows, 3)
	assert.False(t, rows[1].Open)

	m.SetCollapsed(true)
	rows = Flatten(m.View())
	require.Len(t, rows, 1)
	assert.Equal(t, "root", rows[0].Node.ID)
}
