package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mattsolo1/grove-navtree/pkg/frontmatter"
)

// IssueKind classifies a vault problem found by Check.
type IssueKind string

const (
	// IssueMissingID: the note has no frontmatter id, so its id is derived from
	// the fname and changes when the note is renamed.
	IssueMissingID IssueKind = "missing-id"
	// IssueMissingTitle: the title is derived from the fname.
	IssueMissingTitle IssueKind = "missing-title"
	// IssueStub: a hierarchy level has no file of its own.
	IssueStub IssueKind = "stub"
	// IssueNoRoot: the vault has no root note.
	IssueNoRoot IssueKind = "no-root"
)

// Issue is one problem in a vault.
type Issue struct {
	Kind  IssueKind
	Fname string
	// Fixable is true when Fix can repair the issue.
	Fixable bool
}

func (i Issue) String() string {
	switch i.Kind {
	case IssueMissingID:
		return fmt.Sprintf("%s: no id in frontmatter", i.Fname)
	case IssueMissingTitle:
		return fmt.Sprintf("%s: no title in frontmatter", i.Fname)
	case IssueStub:
		return fmt.Sprintf("%s: hierarchy level has no note file", i.Fname)
	case IssueNoRoot:
		return fmt.Sprintf("vault has no %s.md", RootFname)
	}
	return fmt.Sprintf("%s: %s", i.Fname, i.Kind)
}

// Check reports problems in the vault at dir, ordered by fname.
func Check(dir string, opts ...LoadOption) ([]Issue, error) {
	data, err := Load(dir, opts...)
	if err != nil {
		return nil, err
	}

	var issues []Issue
	for _, note := range data.Notes {
		if note.Stub {
			issues = append(issues, Issue{Kind: IssueStub, Fname: note.Fname})
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read vault: %w", err)
	}
	hasRoot := false
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		fname := strings.TrimSuffix(entry.Name(), ".md")
		if fname == RootFname {
			hasRoot = true
		}
		fm, err := readFrontmatter(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		if fm.ID == "" {
			issues = append(issues, Issue{Kind: IssueMissingID, Fname: fname, Fixable: true})
		}
		if fm.Title == "" {
			issues = append(issues, Issue{Kind: IssueMissingTitle, Fname: fname, Fixable: true})
		}
	}
	if !hasRoot {
		issues = append(issues, Issue{Kind: IssueNoRoot})
	}

	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Fname != issues[j].Fname {
			return issues[i].Fname < issues[j].Fname
		}
		return issues[i].Kind < issues[j].Kind
	})
	return issues, nil
}

// Fix writes the derived id and title into every note file missing them, so
// the ids the loader already uses become permanent. Only id, title, created
// and updated are set; other frontmatter keys and the body are kept. It
// returns the number of files rewritten.
func Fix(dir string, opts ...LoadOption) (int, error) {
	o := &loadOptions{vaultName: filepath.Base(filepath.Clean(dir))}
	for _, opt := range opts {
		opt(o)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read vault: %w", err)
	}

	fixed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		fname := strings.TrimSuffix(entry.Name(), ".md")

		content, err := os.ReadFile(path)
		if err != nil {
			return fixed, fmt.Errorf("read note %s: %w", path, err)
		}
		fm, _, err := frontmatter.Parse(string(content))
		if err != nil {
			return fixed, fmt.Errorf("parse note %s: %w", path, err)
		}
		if fm == nil {
			fm = &frontmatter.Frontmatter{}
		}
		if fm.ID != "" && fm.Title != "" {
			continue
		}

		var fields []frontmatter.Field
		if fm.ID == "" {
			fields = append(fields, frontmatter.Field{Key: "id", Value: DeriveID(o.vaultName, fname)})
		}
		if fm.Title == "" {
			fields = append(fields, frontmatter.Field{Key: "title", Value: TitleFromFname(fname)})
		}
		if info, err := entry.Info(); err == nil {
			modified := frontmatter.ToEpochMillis(info.ModTime())
			if fm.Created == 0 {
				fields = append(fields, frontmatter.Field{Key: "created", Value: modified})
			}
			if fm.Updated == 0 {
				fields = append(fields, frontmatter.Field{Key: "updated", Value: modified})
			}
		}

		updated, err := frontmatter.UpdateFields(content, fields)
		if err != nil {
			return fixed, fmt.Errorf("update note %s: %w", path, err)
		}
		if err := os.WriteFile(path, updated, 0644); err != nil {
			return fixed, fmt.Errorf("write note %s: %w", path, err)
		}
		fixed++
	}
	return fixed, nil
}

func readFrontmatter(path string) (*frontmatter.Frontmatter, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read note %s: %w", path, err)
	}
	fm, _, err := frontmatter.Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("parse note %s: %w", path, err)
	}
	if fm == nil {
		return &frontmatter.Frontmatter{}, nil
	}
	return fm, nil
}
