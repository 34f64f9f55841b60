package controller

import (
	"context"
	"log/slog"

	"github.com/user/archiveview/internal/page"
	"github.com/user/archiveview/internal/types"
	"github.com/user/archiveview/internal/view"
	"github.com/user/archiveview/pkg/archive"
)

const (
	StatusMissingEntryID     = "missing entry id."
	StatusLoadingSession     = "loading session..."
	StatusSessionUnreachable = "session unreachable."
	StatusSessionNotFound    = "session not found."
	PlaceholderNoMessages    = "no messages found."
)

// Detail renders one session's transcript into the page's transcript mount.
type Detail struct {
	source archive.Source
	page   *page.Page
	status *page.Status
	guard  *guard
}

// NewDetail creates a Detail controller.
func NewDetail(source archive.Source, p *page.Page, status *page.Status, opts ...Option) *Detail {
	return &Detail{source: source, page: p, status: status, guard: newGuard(opts)}
}

// SessionID derives the session id from the last segment of the page
// location.
func (d *Detail) SessionID() types.SessionID {
	if d.page.Location == nil {
		return ""
	}
	return types.SessionIDFromPath(d.page.Location.Path())
}

// Load fetches the session named by the page location and renders its
// messages in their original order.
func (d *Detail) Load(ctx context.Context) {
	if d.page.Transcript == nil {
		return
	}

	token := d.guard.next()
	id := d.SessionID()
	if id == "" {
		d.guard.commit(token, func() { d.status.Set(StatusMissingEntryID) })
		return
	}

	requestID := types.NewRequestID()
	log := slog.With("request_id", string(requestID), "session_id", string(id))

	defer func() {
		if r := recover(); r != nil {
			log.Error("session load panicked", "panic", r)
			d.guard.commit(token, func() { d.status.Set(StatusSessionUnreachable) })
		}
	}()

	d.guard.commit(token, func() { d.status.Set(StatusLoadingSession) })

	ctx = archive.WithRequestID(ctx, string(requestID))
	record, err := d.source.Conversation(ctx, string(id))
	committed := d.guard.commit(token, func() {
		switch {
		case err != nil:
			log.Warn("session load failed", "error", err)
			d.status.Set(StatusSessionUnreachable)
		case record == nil || record.NotFound():
			log.Info("session not found")
			d.status.Set(StatusSessionNotFound)
		default:
			if d.page.Meta != nil {
				d.page.Meta.SetText(view.LoggedLabel(record.CreatedAt))
			}
			d.page.Transcript.Replace(transcriptNodes(record.Messages))
		}
	})
	if !committed {
		log.Debug("discarding stale session response")
	}
}

func transcriptNodes(messages []archive.Message) []view.Node {
	if len(messages) == 0 {
		return []view.Node{view.Placeholder(PlaceholderNoMessages)}
	}
	nodes := make([]view.Node, len(messages))
	for i, m := range messages {
		nodes[i] = view.RenderConversationMessage(m, i)
	}
	return nodes
}
