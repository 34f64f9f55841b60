// Package controller holds the archive list and conversation detail
// controllers. Each resolves its inputs from a page.Page, fetches from an
// archive.Source, and writes the resulting nodes and status text back into
// the page. Failures are reported through the status sink and never returned.
package controller

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/user/archiveview/internal/page"
	"github.com/user/archiveview/internal/types"
	"github.com/user/archiveview/internal/view"
	"github.com/user/archiveview/pkg/archive"
)

const (
	StatusRetrievingArchive  = "Retrieving archive..."
	StatusArchiveUnreachable = "Archive unreachable."
	PlaceholderNoMatches     = "no matches found."
	PlaceholderEmptyArchive  = "no archived conversations yet."
)

// KeyEnter is the key name that triggers a search from inside the input.
const KeyEnter = "Enter"

// List renders the archive index into the page's list mount.
type List struct {
	source archive.Source
	page   *page.Page
	status *page.Status
	guard  *guard
}

// NewList creates a List controller.
func NewList(source archive.Source, p *page.Page, status *page.Status, opts ...Option) *List {
	return &List{source: source, page: p, status: status, guard: newGuard(opts)}
}

// Attach binds the page's search controls: submit reloads, clear empties the
// search input and reloads, and Enter inside the input reloads with the
// default action suppressed. Absent controls are skipped.
func (l *List) Attach(ctx context.Context) {
	if l.page.SearchSubmit != nil {
		l.page.SearchSubmit.OnActivate(func() { l.Load(ctx) })
	}
	if l.page.SearchClear != nil {
		l.page.SearchClear.OnActivate(func() { l.Clear(ctx) })
	}
	if keys, ok := l.page.Search.(page.KeySource); ok {
		keys.OnKey(func(key string) bool {
			if key != KeyEnter {
				return false
			}
			l.Load(ctx)
			return true
		})
	}
}

// Clear resets the search input to empty, then reloads.
func (l *List) Clear(ctx context.Context) {
	if l.page.Search != nil {
		l.page.Search.SetValue("")
	}
	l.Load(ctx)
}

// Query returns the trimmed search input value, or "" without an input.
func (l *List) Query() string {
	if l.page.Search == nil {
		return ""
	}
	return strings.TrimSpace(l.page.Search.Value())
}

// Load fetches the archive index and replaces the list. The list is only
// touched after a successful response, so a failed load leaves prior content
// in place.
func (l *List) Load(ctx context.Context) {
	if l.page.List == nil {
		return
	}

	query := l.Query()
	token := l.guard.next()
	requestID := types.NewRequestID()
	log := slog.With("request_id", string(requestID), "query", query)

	defer func() {
		if r := recover(); r != nil {
			log.Error("archive load panicked", "panic", r)
			l.guard.commit(token, func() { l.status.Set(StatusArchiveUnreachable) })
		}
	}()

	l.guard.commit(token, func() { l.status.Set(StatusRetrievingArchive) })

	ctx = archive.WithRequestID(ctx, string(requestID))
	items, err := l.source.Index(ctx, query)
	committed := l.guard.commit(token, func() {
		if err != nil {
			log.Warn("archive load failed", "error", err)
			l.status.Set(StatusArchiveUnreachable)
			return
		}
		l.page.List.Replace(archiveNodes(items, query))
		l.status.Set(fmt.Sprintf("Loaded %d sessions.", len(items)))
	})
	if !committed {
		log.Debug("discarding stale archive response")
	}
}

// archiveNodes renders items newest-first: the backend sends oldest-first.
func archiveNodes(items []archive.Summary, query string) []view.Node {
	if len(items) == 0 {
		if query != "" {
			return []view.Node{view.Placeholder(PlaceholderNoMatches)}
		}
		return []view.Node{view.Placeholder(PlaceholderEmptyArchive)}
	}
	nodes := make([]view.Node, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		nodes = append(nodes, view.RenderArchiveItem(items[i]))
	}
	return nodes
}
