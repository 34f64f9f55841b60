// Package view builds declarative node trees for the archive list and the
// conversation transcript, and realizes them as HTML, Markdown or styled
// terminal text.
package view

import "strings"

// Attr is a single node attribute.
type Attr struct {
	Key string
	Val string
}

// Node is an immutable description of one rendered element. Text is the
// element's own text content and precedes its children.
type Node struct {
	tag      string
	text     string
	attrs    []Attr
	children []Node
}

// Element returns a node with the given tag, text and children.
func Element(tag, text string, attrs []Attr, children ...Node) Node {
	n := Node{tag: tag, text: text}
	if len(attrs) > 0 {
		n.attrs = append([]Attr(nil), attrs...)
	}
	if len(children) > 0 {
		n.children = append([]Node(nil), children...)
	}
	return n
}

func (n Node) Tag() string  { return n.tag }
func (n Node) Text() string { return n.text }

// Attrs returns a copy of the node's attributes.
func (n Node) Attrs() []Attr { return append([]Attr(nil), n.attrs...) }

// Children returns a copy of the node's children.
func (n Node) Children() []Node { return append([]Node(nil), n.children...) }

// Attr returns the value of the named attribute.
func (n Node) Attr(key string) (string, bool) {
	for _, a := range n.attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// HasClass reports whether the node's class attribute lists class.
func (n Node) HasClass(class string) bool {
	v, _ := n.Attr("class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// Find returns the first descendant (depth-first, including n) carrying class.
func (n Node) Find(class string) (Node, bool) {
	if n.HasClass(class) {
		return n, true
	}
	for _, c := range n.children {
		if found, ok := c.Find(class); ok {
			return found, true
		}
	}
	return Node{}, false
}

// TextContent concatenates the text of n and all its descendants.
func (n Node) TextContent() string {
	var b strings.Builder
	n.writeText(&b)
	return b.String()
}

func (n Node) writeText(b *strings.Builder) {
	b.WriteString(n.text)
	for _, c := range n.children {
		c.writeText(b)
	}
}

// Equal reports whether a and b describe identical trees.
func Equal(a, b Node) bool {
	if a.tag != b.tag || a.text != b.text || len(a.attrs) != len(b.attrs) || len(a.children) != len(b.children) {
		return false
	}
	for i := range a.attrs {
		if a.attrs[i] != b.attrs[i] {
			return false
		}
	}
	for i := range a.children {
		if !Equal(a.children[i], b.children[i]) {
			return false
		}
	}
	return true
}
