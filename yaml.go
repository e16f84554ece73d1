package csvtab

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAML renders the table as a YAML sequence, parsing first if needed. The
// structure mirrors [Table.JSON]: mappings in named mode, sequences in
// positional mode. Rows are built as yaml.Node trees so named-mode keys
// keep the header order.
func (t *Table) YAML() (string, error) {
	if err := t.Parse(); err != nil {
		return "", err
	}
	doc := &yaml.Node{Kind: yaml.SequenceNode}
	for _, idx := range t.order {
		node, err := yamlRow(t.rows[idx])
		if err != nil {
			return "", err
		}
		doc.Content = append(doc.Content, node)
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func yamlRow(row Row) (*yaml.Node, error) {
	if !row.Named() {
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, v := range row.Values() {
			node, err := yamlValue(v)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, node)
		}
		return seq, nil
	}
	m := &yaml.Node{Kind: yaml.MappingNode}
	for i, name := range row.Columns() {
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: name}
		val, err := yamlValue(row.Values()[i])
		if err != nil {
			return nil, err
		}
		m.Content = append(m.Content, key, val)
	}
	return m, nil
}

func yamlValue(v any) (*yaml.Node, error) {
	node := &yaml.Node{}
	if err := node.Encode(v); err != nil {
		return nil, fmt.Errorf("yaml value: %w", err)
	}
	return node, nil
}
