package frontmatter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var frontmatterPattern = regexp.MustCompile(`(?s)^---\r?\n(.*?)\r?\n---\r?\n?(.*)`)

// Frontmatter represents the structured metadata at the beginning of a vault note
type Frontmatter struct {
	ID         string   `yaml:"id"`
	Title      string   `yaml:"title"`
	Desc       string   `yaml:"desc,omitempty"`
	Updated    int64    `yaml:"updated,omitempty"` // Epoch milliseconds
	Created    int64    `yaml:"created,omitempty"` // Epoch milliseconds
	Tags       []string `yaml:"tags,flow,omitempty"`
	NavExclude bool     `yaml:"nav_exclude,omitempty"`
	NavOrder   *int     `yaml:"nav_order,omitempty"`
}

// Parse extracts frontmatter from content and returns the parsed data and body
func Parse(content string) (*Frontmatter, string, error) {
	matches := frontmatterPattern.FindStringSubmatch(content)
	if len(matches) != 3 {
		// No frontmatter found
		return nil, content, nil
	}

	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(matches[1]), &fm); err != nil {
		return nil, content, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	return &fm, matches[2], nil
}

// Build creates the YAML frontmatter string from a Frontmatter struct
func Build(fm *Frontmatter) string {
	var sb strings.Builder

	sb.WriteString("---\n")

	// Always include these fields in a consistent order
	sb.WriteString(fmt.Sprintf("id: %s\n", quoteIfNeeded(fm.ID)))
	sb.WriteString(fmt.Sprintf("title: %s\n", quoteIfNeeded(fm.Title)))
	if fm.Desc != "" {
		sb.WriteString(fmt.Sprintf("desc: %s\n", quoteIfNeeded(fm.Desc)))
	}
	if fm.Updated != 0 {
		sb.WriteString(fmt.Sprintf("updated: %d\n", fm.Updated))
	}
	if fm.Created != 0 {
		sb.WriteString(fmt.Sprintf("created: %d\n", fm.Created))
	}
	if len(fm.Tags) > 0 {
		sb.WriteString(fmt.Sprintf("tags: %s\n", formatYAMLArray(fm.Tags)))
	}

	// Navigation fields
	if fm.NavExclude {
		sb.WriteString("nav_exclude: true\n")
	}
	if fm.NavOrder != nil {
		sb.WriteString(fmt.Sprintf("nav_order: %d\n", *fm.NavOrder))
	}

	sb.WriteString("---")

	return sb.String()
}

// BuildContent combines frontmatter and body content into a complete document
func BuildContent(fm *Frontmatter, bodyContent string) string {
	// The body starts on the line after the closing delimiter, so Parse
	// returns it unchanged.
	return Build(fm) + "\n" + bodyContent
}

// FromEpochMillis converts a frontmatter timestamp into time.Time. Zero stays zero.
func FromEpochMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

// ToEpochMillis converts a time.Time into the frontmatter timestamp format
func ToEpochMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// formatYAMLArray formats a string slice as a YAML flow-style array
func formatYAMLArray(items []string) string {
	quotedItems := make([]string, len(items))
	for i, item := range items {
		quotedItems[i] = quoteIfNeeded(item)
	}
	return fmt.Sprintf("[%s]", strings.Join(quotedItems, ", "))
}

func quoteIfNeeded(s string) string {
	if needsQuoting(s) {
		return strconv.Quote(s)
	}
	return s
}

// needsQuoting checks if a string needs to be quoted in YAML
func needsQuoting(s string) bool {
	return s == "" || strings.ContainsAny(s, ",:[]{}#&*!|>%@`\"'") || strings.TrimSpace(s) != s
}
