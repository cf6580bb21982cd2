package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Section is a recursive node of a page's content tree. Type names either an
// HTML tag ("div", "h1") or a block kind ("markdown", "badge"). Children mix
// nested sections with literal text.
type Section struct {
	Type     string         `yaml:"type"`
	Props    map[string]any `yaml:"props,omitempty"`
	Children []Node         `yaml:"children,omitempty"`
}

// Node is a tagged variant: exactly one of Text or Section is set. Text nodes
// may contain $t:<key> i18n placeholders resolved at render time.
type Node struct {
	Text    string
	Section *Section
}

// IsText reports whether the node is a literal text child.
func (n Node) IsText() bool { return n.Section == nil }

// TextNode wraps a literal string child.
func TextNode(s string) Node { return Node{Text: s} }

// SectionNode wraps a nested section child.
func SectionNode(s Section) Node { return Node{Section: &s} }

// UnmarshalYAML decodes a child as either a bare scalar (text) or a mapping
// (nested section).
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		n.Section = nil
		return value.Decode(&n.Text)
	case yaml.MappingNode:
		var s Section
		if err := value.Decode(&s); err != nil {
			return err
		}
		n.Text = ""
		n.Section = &s
		return nil
	default:
		return fmt.Errorf("section child must be a string or a mapping (line %d)", value.Line)
	}
}

// MarshalYAML renders the variant back to its compact YAML form.
func (n Node) MarshalYAML() (any, error) {
	if n.IsText() {
		return n.Text, nil
	}
	return n.Section, nil
}

// Walk visits the section and every descendant section depth-first in
// document order.
func (s *Section) Walk(visit func(*Section)) {
	visit(s)
	for _, child := range s.Children {
		if child.Section != nil {
			child.Section.Walk(visit)
		}
	}
}
