package render

import (
	"bytes"
	"fmt"

	"github.com/gaurav-prasanna/wikitables/core"
	"gopkg.in/yaml.v3"
)

// YAMLRenderer writes the same document as JSONRenderer in YAML.
type YAMLRenderer struct{}

// NewYAMLRenderer creates a YAMLRenderer.
func NewYAMLRenderer() *YAMLRenderer {
	return &YAMLRenderer{}
}

// Render encodes t and meta as a YAML document. The document is assembled
// from nodes so that row mappings keep column order.
func (r *YAMLRenderer) Render(t *core.CleanedTable, meta core.TableMetadata) ([]byte, error) {
	if meta.CSSClasses == nil {
		meta.CSSClasses = []string{}
	}
	metaNode, err := valueNode(meta)
	if err != nil {
		return nil, fmt.Errorf("encoding metadata: %w", err)
	}

	data := &yaml.Node{Kind: yaml.SequenceNode}
	for i := 0; i < t.RowCount; i++ {
		row := &yaml.Node{Kind: yaml.MappingNode}
		for _, c := range t.Columns {
			key, err := valueNode(c.Header())
			if err != nil {
				return nil, err
			}
			value, err := valueNode(c.Value(i))
			if err != nil {
				return nil, fmt.Errorf("row %d, column %q: %w", i+1, c.Header(), err)
			}
			row.Content = append(row.Content, key, value)
		}
		data.Content = append(data.Content, row)
	}

	doc := &yaml.Node{
		Kind: yaml.MappingNode,
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Value: "metadata"}, metaNode,
			{Kind: yaml.ScalarNode, Value: "data"}, data,
		},
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("marshaling YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshaling YAML: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for YAML output.
func (r *YAMLRenderer) Extension() string {
	return ".yaml"
}

// valueNode encodes v into a node, letting yaml.v3 pick tag and quoting.
func valueNode(v any) (*yaml.Node, error) {
	n := &yaml.Node{}
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	return n, nil
}
