package aggregate

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/linkhub-io/linkhub/app/record"
)

// templateFiles are the issue forms whose category checkbox options track
// the published category collection.
var templateFiles = []string{
	".github/ISSUE_TEMPLATE/site_submission.yml",
	".github/ISSUE_TEMPLATE/site_correction.yml",
}

// SyncTemplates rewrites the categories checkbox options of the issue form
// templates to match the published category collection. Missing template
// files are skipped; a repo without forms is not an error.
func SyncTemplates(repoRoot string, categories []record.CategoryRecord) error {
	labels := make([]string, 0, len(categories))
	for _, c := range categories {
		labels = append(labels, fmt.Sprintf("%s (%s)", c.ID, c.Name))
	}

	for _, relPath := range templateFiles {
		fullPath := filepath.Join(repoRoot, relPath)
		if _, err := os.Stat(fullPath); os.IsNotExist(err) {
			continue
		}

		if err := syncTemplate(fullPath, labels); err != nil {
			return fmt.Errorf("failed to update template %s: %w", relPath, err)
		}
		slog.Info("Updated issue template", "template", relPath)
	}

	return nil
}

// syncTemplate edits the parsed YAML tree in place: only the options node of
// the categories checkbox block is replaced, so dropdowns, unknown
// attributes, and everything else in the form survive untouched.
func syncTemplate(path string, labels []string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read template: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil
	}

	body := mappingValue(doc.Content[0], "body")
	if body == nil || body.Kind != yaml.SequenceNode {
		return nil
	}

	updated := false
	for _, item := range body.Content {
		if mappingScalar(item, "id") != "categories" || mappingScalar(item, "type") != "checkboxes" {
			continue
		}
		attrs := mappingValue(item, "attributes")
		if attrs == nil || attrs.Kind != yaml.MappingNode {
			continue
		}
		setMappingValue(attrs, "options", optionsNode(labels))
		updated = true
	}
	if !updated {
		return nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("failed to encode template: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode template: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write template: %w", err)
	}

	return nil
}

func optionsNode(labels []string) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, label := range labels {
		seq.Content = append(seq.Content, &yaml.Node{
			Kind: yaml.MappingNode,
			Content: []*yaml.Node{
				{Kind: yaml.ScalarNode, Value: "label"},
				{Kind: yaml.ScalarNode, Value: label},
			},
		})
	}
	return seq
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

func mappingScalar(node *yaml.Node, key string) string {
	v := mappingValue(node, key)
	if v == nil || v.Kind != yaml.ScalarNode {
		return ""
	}
	return v.Value
}

func setMappingValue(m *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content[i+1] = value
			return
		}
	}
	m.Content = append(m.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key}, value)
}
