package view

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// RenderMarkdown realizes nodes through their HTML form and converts the
// result to Markdown.
func RenderMarkdown(nodes []Node) (string, error) {
	if len(nodes) == 0 {
		return "", nil
	}
	doc, err := RenderHTML(nodes)
	if err != nil {
		return "", err
	}
	md, err := htmltomarkdown.ConvertString(doc)
	if err != nil {
		return "", fmt.Errorf("convert to markdown: %w", err)
	}
	return strings.TrimSpace(md) + "\n", nil
}
