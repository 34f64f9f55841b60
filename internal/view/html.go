package view

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLNode converts n into a detached *html.Node tree.
func HTMLNode(n Node) *html.Node {
	el := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Lookup([]byte(n.tag)),
		Data:     n.tag,
	}
	for _, a := range n.attrs {
		el.Attr = append(el.Attr, html.Attribute{Key: a.Key, Val: a.Val})
	}
	if n.text != "" {
		el.AppendChild(&html.Node{Type: html.TextNode, Data: n.text})
	}
	for _, c := range n.children {
		el.AppendChild(HTMLNode(c))
	}
	return el
}

// WriteHTML renders nodes in order, one per line.
func WriteHTML(w io.Writer, nodes []Node) error {
	for _, n := range nodes {
		if err := html.Render(w, HTMLNode(n)); err != nil {
			return fmt.Errorf("render html: %w", err)
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// RenderHTML is WriteHTML into a string.
func RenderHTML(nodes []Node) (string, error) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, nodes); err != nil {
		return "", err
	}
	return buf.String(), nil
}
