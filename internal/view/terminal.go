package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("242"))

	previewStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Underline(true)

	firstRoleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	secondRoleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	contentStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	placeholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("242")).
				Italic(true)
)

// Terminal realizes node trees as styled text for a terminal of the given
// width. A zero width disables wrapping.
type Terminal struct {
	Width int
}

// Render lays out each top-level node as a block separated by a blank line.
func (t Terminal) Render(nodes []Node) string {
	blocks := make([]string, 0, len(nodes))
	for _, n := range nodes {
		var lines []string
		t.collect(n, &lines)
		blocks = append(blocks, strings.Join(lines, "\n"))
	}
	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

func (t Terminal) collect(n Node, lines *[]string) {
	if n.text != "" || n.HasClass(ClassMessageContent) {
		*lines = append(*lines, t.style(n).Render(n.text))
	}
	for _, c := range n.children {
		t.collect(c, lines)
	}
	if href, ok := n.Attr("href"); ok {
		*lines = append(*lines, linkStyle.Render(href))
	}
}

func (t Terminal) style(n Node) lipgloss.Style {
	var s lipgloss.Style
	switch {
	case n.HasClass(ClassMeta):
		s = metaStyle
	case n.HasClass(ClassPreview):
		s = previewStyle
	case n.HasClass(ClassMessageRole):
		s = firstRoleStyle
		if strings.HasPrefix(n.text, "ai-2") {
			s = secondRoleStyle
		}
	case n.HasClass(ClassMessageContent):
		s = contentStyle
	case n.HasClass(ClassLogEntry):
		s = placeholderStyle
	default:
		s = lipgloss.NewStyle()
	}
	if t.Width > 0 {
		s = s.Width(t.Width)
	}
	return s
}
