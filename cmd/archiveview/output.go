package main

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/user/archiveview/internal/config"
	"github.com/user/archiveview/internal/controller"
	"github.com/user/archiveview/internal/view"
)

// renderNodes realizes nodes in the configured format.
func renderNodes(format string, nodes []view.Node) (string, error) {
	switch format {
	case "html":
		return view.RenderHTML(nodes)
	case "markdown":
		return view.RenderMarkdown(nodes)
	default:
		return view.Terminal{Width: terminalWidth()}.Render(nodes), nil
	}
}

func writeNodes(w io.Writer, format string, nodes []view.Node) error {
	out, err := renderNodes(format, nodes)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	w, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return w
}

func controllerOptions(cfg *config.Config) []controller.Option {
	if cfg.StaleGuard {
		return nil
	}
	return []controller.Option{controller.WithoutStaleGuard()}
}
