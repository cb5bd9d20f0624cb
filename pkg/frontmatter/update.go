package frontmatter

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Field is one key to set by UpdateFields.
type Field struct {
	Key   string
	Value interface{}
}

// UpdateFields sets the given keys in the frontmatter of content and leaves
// every other key, and the body, as it was. Keys that are missing are added
// after the existing ones in the order given. Content without frontmatter
// gets a new block holding just the fields.
func UpdateFields(content []byte, fields []Field) ([]byte, error) {
	yamlStr, body, found, err := splitFrontmatter(string(content))
	if err != nil {
		return nil, err
	}

	var root yaml.Node
	if found && strings.TrimSpace(yamlStr) != "" {
		if err := yaml.Unmarshal([]byte(yamlStr), &root); err != nil {
			return nil, fmt.Errorf("unmarshaling YAML: %w", err)
		}
	}
	if len(root.Content) == 0 {
		root = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}},
		}
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("frontmatter is not a mapping")
	}

	for _, f := range fields {
		updateNodeValue(doc, f.Key, f.Value)
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&root); err != nil {
		return nil, fmt.Errorf("encoding YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("encoding YAML: %w", err)
	}

	var result bytes.Buffer
	result.WriteString("---\n")
	result.WriteString(strings.TrimSpace(buf.String()))
	result.WriteString("\n---\n")
	result.WriteString(body)
	return result.Bytes(), nil
}

// updateNodeValue sets key in a mapping node, appending it when absent.
func updateNodeValue(node *yaml.Node, key string, value interface{}) {
	for i := 0; i < len(node.Content)-1; i += 2 {
		if node.Content[i].Value == key {
			valueNode := node.Content[i+1]
			valueNode.Kind = yaml.ScalarNode
			valueNode.Style = 0
			valueNode.Content = nil
			valueNode.Value = fmt.Sprint(value)
			valueNode.Tag = resolveYAMLTag(value)
			return
		}
	}

	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key, Tag: "!!str"},
		&yaml.Node{Kind: yaml.ScalarNode, Value: fmt.Sprint(value), Tag: resolveYAMLTag(value)},
	)
}

// resolveYAMLTag determines the appropriate YAML tag for a value.
func resolveYAMLTag(value interface{}) string {
	switch value.(type) {
	case int, int64, int32:
		return "!!int"
	case float64, float32:
		return "!!float"
	case bool:
		return "!!bool"
	default:
		return "!!str"
	}
}

// splitFrontmatter returns the raw YAML between the delimiters and the body
// that follows the closing delimiter line. found is false when content does
// not open with a delimiter.
func splitFrontmatter(content string) (yamlStr, body string, found bool, err error) {
	var rest string
	switch {
	case strings.HasPrefix(content, "---\n"):
		rest = content[4:]
	case strings.HasPrefix(content, "---\r\n"):
		rest = content[5:]
	default:
		return "", content, false, nil
	}

	offset := 0
	for {
		end := strings.IndexByte(rest[offset:], '\n')
		line, next := rest[offset:], len(rest)
		if end >= 0 {
			line, next = rest[offset:offset+end], offset+end+1
		}
		if strings.TrimSuffix(line, "\r") == "---" {
			return rest[:offset], rest[next:], true, nil
		}
		if end < 0 {
			return "", "", false, fmt.Errorf("invalid frontmatter: no closing delimiter found")
		}
		offset = next
	}
}
