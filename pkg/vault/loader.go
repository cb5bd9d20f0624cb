// Package vault reads a directory of dotted-name markdown notes into a note
// dictionary.
package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mattsolo1/grove-navtree/pkg/frontmatter"
	"github.com/mattsolo1/grove-navtree/pkg/models"
)

// RootFname is the fname of a vault's home note.
const RootFname = "root"

// noteIDNamespace seeds ids of notes whose frontmatter has none.
var noteIDNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/mattsolo1/grove-navtree/note"))

type loadOptions struct {
	vaultName string
}

// LoadOption configures Load.
type LoadOption func(*loadOptions)

// WithVaultName overrides the vault name, which defaults to the directory name.
func WithVaultName(name string) LoadOption {
	return func(o *loadOptions) {
		if name != "" {
			o.vaultName = name
		}
	}
}

// Load reads every *.md file directly under dir. The parent of "a.b.c" is
// "a.b"; hierarchy levels without a file are filled in with stub notes, and
// top-level notes hang off the root note when the vault has one.
func Load(dir string, opts ...LoadOption) (*models.NoteData, error) {
	o := &loadOptions{vaultName: filepath.Base(filepath.Clean(dir))}
	for _, opt := range opts {
		opt(o)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read vault: %w", err)
	}

	b := &builder{
		vault:   o.vaultName,
		byFname: make(map[string]*models.Note),
		notes:   make(models.NoteDict),
		paths:   make(map[string]string),
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		note, err := parseNoteFile(path, o.vaultName)
		if err != nil {
			return nil, err
		}
		if err := b.add(note, path); err != nil {
			return nil, err
		}
	}

	return b.finish(), nil
}

func parseNoteFile(path, vaultName string) (*models.Note, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read note %s: %w", path, err)
	}
	fm, _, err := frontmatter.Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parse note %s: %w", path, err)
	}

	fname := strings.TrimSuffix(filepath.Base(path), ".md")
	note := &models.Note{
		Fname: fname,
		Vault: vaultName,
	}
	if fm != nil {
		note.ID = fm.ID
		note.Title = fm.Title
		note.Desc = fm.Desc
		note.NavExclude = fm.NavExclude
		note.NavOrder = fm.NavOrder
		note.Created = frontmatter.FromEpochMillis(fm.Created)
		note.Updated = frontmatter.FromEpochMillis(fm.Updated)
	}
	if note.ID == "" {
		note.ID = DeriveID(vaultName, fname)
	}
	if note.Title == "" {
		note.Title = TitleFromFname(fname)
	}
	return note, nil
}

// DeriveID returns the stable id used for a note without an id of its own.
func DeriveID(vaultName, fname string) string {
	return uuid.NewSHA1(noteIDNamespace, []byte(vaultName+"/"+fname)).String()
}

// TitleFromFname turns the last hierarchy level of fname into a title, e.g.
// "lang.go-modules" becomes "Go Modules".
func TitleFromFname(fname string) string {
	last := fname
	if i := strings.LastIndex(fname, "."); i >= 0 {
		last = fname[i+1:]
	}
	last = strings.NewReplacer("-", " ", "_", " ").Replace(last)
	return cases.Title(language.English).String(last)
}

type builder struct {
	vault   string
	byFname map[string]*models.Note
	notes   models.NoteDict
	paths   map[string]string // id -> file, for duplicate reporting
}

func (b *builder) add(note *models.Note, path string) error {
	if other, ok := b.paths[note.ID]; ok {
		return fmt.Errorf("duplicate note id %q in %s and %s", note.ID, other, path)
	}
	b.paths[note.ID] = path
	b.byFname[note.Fname] = note
	b.notes[note.ID] = note
	return nil
}

// ensure returns the note for fname, creating a stub when no file defines it.
func (b *builder) ensure(fname string) *models.Note {
	if n, ok := b.byFname[fname]; ok {
		return n
	}
	stub := &models.Note{
		ID:    DeriveID(b.vault, fname),
		Fname: fname,
		Title: TitleFromFname(fname),
		Vault: b.vault,
		Stub:  true,
	}
	b.byFname[fname] = stub
	b.notes[stub.ID] = stub
	b.link(stub)
	return stub
}

// link sets the parent of note, creating stubs for missing levels.
func (b *builder) link(note *models.Note) {
	if note.Fname == RootFname {
		return
	}
	i := strings.LastIndex(note.Fname, ".")
	if i <= 0 {
		if root, ok := b.byFname[RootFname]; ok {
			note.Parent = root.ID
		}
		return
	}
	note.Parent = b.ensure(note.Fname[:i]).ID
}

func (b *builder) finish() *models.NoteData {
	fnames := make([]string, 0, len(b.byFname))
	for fname := range b.byFname {
		fnames = append(fnames, fname)
	}
	sort.Strings(fnames)
	for _, fname := range fnames {
		b.link(b.byFname[fname])
	}

	// Stubs created while linking are picked up here too.
	fnames = fnames[:0]
	for fname := range b.byFname {
		fnames = append(fnames, fname)
	}
	sort.Strings(fnames)

	var orphans []string
	for _, fname := range fnames {
		note := b.byFname[fname]
		if note.Parent == "" {
			if fname != RootFname {
				orphans = append(orphans, note.ID)
			}
			continue
		}
		parent := b.notes[note.Parent]
		parent.Children = append(parent.Children, note.ID)
	}

	data := &models.NoteData{Notes: b.notes}
	if root, ok := b.byFname[RootFname]; ok {
		data.NoteIndex = root.ID
		data.Domains = append([]string(nil), root.Children...)
	} else {
		data.Domains = orphans
		if len(orphans) > 0 {
			data.NoteIndex = orphans[0]
		}
	}
	if data.Domains == nil {
		data.Domains = []string{}
	}
	return data
}
