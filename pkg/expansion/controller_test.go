package expansion

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/mattsolo1/grove-navtree/pkg/models"
	"github.com/mattsolo1/grove-navtree/pkg/tree"
)

func sampleNotes() models.NoteDict {
	return models.NoteDict{
		"root":  {ID: "root"},
		"child": {ID: "child", Parent: "root"},
		"grand": {ID: "grand", Parent: "child"},
		"other": {ID: "other", Parent: "root"},
	}
}

func TestOnActiveNoteChanged(t *testing.T) {
	notes := sampleNotes()
	c := New()
	assert.Empty(t, c.Stored())

	c.OnActiveNoteChanged(notes, "grand")
	assert.Equal(t, []string{"root", "child", "grand"}, c.Stored())

	c.OnActiveNoteChanged(notes, "root")
	assert.Equal(t, []string{"root"}, c.Stored())
}

func TestOnActiveNoteChangedIdempotent(t *testing.T) {
	notes := sampleNotes()
	c := New()
	c.OnActiveNoteChanged(notes, "grand")
	first := c.Stored()
	c.OnActiveNoteChanged(notes, "grand")
	assert.Equal(t, first, c.Stored())
}

func TestOnActiveNoteChangedEmptyOrUnknown(t *testing.T) {
	notes := sampleNotes()
	c := New()

	c.OnActiveNoteChanged(notes, "grand")
	c.OnActiveNoteChanged(notes, "")
	assert.Equal(t, []string{}, c.Stored())

	c.OnActiveNoteChanged(notes, "grand")
	c.OnActiveNoteChanged(notes, "deleted")
	assert.Equal(t, []string{}, c.Stored())
}

func TestOnActiveNoteChangedUnavailableData(t *testing.T) {
	c := New()
	c.OnActiveNoteChanged(sampleNotes(), "grand")
	c.OnActiveNoteChanged(nil, "root")
	assert.Equal(t, []string{"root", "child", "grand"}, c.Stored(), "nil dictionary is a no-op")
}

func TestOnActiveNoteChangedDictionaryReplaced(t *testing.T) {
	c := New()
	c.OnActiveNoteChanged(sampleNotes(), "grand")

	// grand moved under other
	reloaded := sampleNotes()
	reloaded["grand"] = &models.Note{ID: "grand", Parent: "other"}
	c.OnActiveNoteChanged(reloaded, "grand")
	assert.Equal(t, []string{"root", "other", "grand"}, c.Stored())
}

func TestOnToggleCollapse(t *testing.T) {
	notes := sampleNotes()
	c := New()
	c.OnActiveNoteChanged(notes, "grand")

	c.OnToggle(notes, "child")
	assert.Equal(t, []string{"root"}, c.Stored())
}

func TestOnToggleExpand(t *testing.T) {
	notes := sampleNotes()
	c := New()
	c.OnActiveNoteChanged(notes, "root")

	c.OnToggle(notes, "other")
	assert.Equal(t, []string{"root", "other"}, c.Stored())

	// Expanding a deep node opens the whole path, dropping unrelated branches.
	c.OnToggle(notes, "grand")
	assert.Equal(t, []string{"root", "child", "grand"}, c.Stored())
}

func TestOnToggleNoOps(t *testing.T) {
	notes := sampleNotes()
	c := New()
	c.OnActiveNoteChanged(notes, "child")

	c.OnToggle(nil, "child")
	c.OnToggle(models.NoteDict{}, "child")
	c.OnToggle(notes, "deleted")
	assert.Equal(t, []string{"root", "child"}, c.Stored())
}

func TestOnSelectLeavesStateAlone(t *testing.T) {
	notes := sampleNotes()
	c := New()
	c.OnActiveNoteChanged(notes, "grand")
	c.OnSelect("other")
	assert.Equal(t, []string{"root", "child", "grand"}, c.Stored())
}

func TestExpandedIncludesActiveNote(t *testing.T) {
	notes := sampleNotes()
	c := New()
	c.OnActiveNoteChanged(notes, "grand")
	c.OnToggle(notes, "grand")
	require.Equal(t, []string{"root", "child"}, c.Stored())

	assert.Equal(t, []string{"root", "child", "grand"}, c.Expanded("grand"))
	assert.Equal(t, []string{"root", "child"}, c.Stored(), "presentation must not change stored state")

	assert.Equal(t, []string{"root", "child"}, c.Expanded("child"), "no duplicate when already present")
	assert.Equal(t, []string{"root", "child"}, c.Expanded(""))
}

func TestStoredReturnsCopy(t *testing.T) {
	c := New()
	c.OnActiveNoteChanged(sampleNotes(), "grand")
	s := c.Stored()
	s[0] = "mutated"
	assert.Equal(t, "root", c.Stored()[0])
}

func TestLoggerHook(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetLevel(logrus.DebugLevel)

	c := New(WithLogger(logger.WithField("component", "expansion")))
	c.OnActiveNoteChanged(sampleNotes(), "grand")
	c.OnToggle(sampleNotes(), "child")

	out := buf.String()
	assert.Contains(t, out, "ctx=onActiveNoteChanged")
	assert.Contains(t, out, "ctx=onToggle")
	assert.Contains(t, out, "component=expansion")
}

func TestToggleInverseLaw(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 30).Draw(t, "size")
		notes := make(models.NoteDict, n)
		for i := 0; i < n; i++ {
			id := fmt.Sprintf("n%d", i)
			note := &models.Note{ID: id}
			if i > 0 {
				if p := rapid.IntRange(-1, i-1).Draw(t, "parent-"+id); p >= 0 {
					note.Parent = fmt.Sprintf("n%d", p)
				}
			}
			notes[id] = note
		}
		target := fmt.Sprintf("n%d", rapid.IntRange(0, n-1).Draw(t, "target"))
		chain := tree.ResolveAncestorChain(notes, target)

		c := New()
		// Start from some active note that does not have target expanded.
		active := fmt.Sprintf("n%d", rapid.IntRange(0, n-1).Draw(t, "active"))
		c.OnActiveNoteChanged(notes, active)
		if c.IsExpanded(target) {
			c.OnToggle(notes, target)
		}

		c.OnToggle(notes, target)
		expanded := c.Stored()
		set := map[string]bool{}
		for _, id := range expanded {
			if set[id] {
				t.Fatalf("duplicate %s in %v", id, expanded)
			}
			set[id] = true
		}
		for _, id := range chain {
			if !set[id] {
				t.Fatalf("expand of %s left ancestor %s closed: %v", target, id, expanded)
			}
		}

		c.OnToggle(notes, target)
		want := chain[:len(chain)-1]
		got := c.Stored()
		if len(got) != len(want) {
			t.Fatalf("collapse of %s: want %v, got %v", target, want, got)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("collapse of %s: want %v, got %v", target, want, got)
			}
		}
	})
}
