package view

import (
	"net/url"

	"github.com/user/archiveview/pkg/archive"
)

const (
	ClassLogEntry       = "log-entry"
	ClassArchiveEntry   = "archive-entry"
	ClassMeta           = "meta"
	ClassPreview        = "preview"
	ClassMessageLine    = "message-line"
	ClassMessageRole    = "message-role"
	ClassMessageContent = "message-content"
)

const noPreview = "No preview available."

// LoggedLabel returns "Logged <createdAt>", or "Logged" when createdAt is empty.
func LoggedLabel(createdAt string) string {
	if createdAt == "" {
		return "Logged"
	}
	return "Logged " + createdAt
}

// ArchiveHref returns the detail page path for a session.
func ArchiveHref(id string) string {
	return "/archive/" + url.PathEscape(id)
}

// RenderArchiveItem builds the list entry for one summary: a link to the
// session carrying a meta line and a preview line.
func RenderArchiveItem(s archive.Summary) Node {
	preview := s.Preview
	if preview == "" {
		preview = noPreview
	}
	return Element("a", "", []Attr{
		{Key: "class", Val: ClassLogEntry + " " + ClassArchiveEntry},
		{Key: "href", Val: ArchiveHref(s.ID)},
	},
		Element("div", LoggedLabel(s.CreatedAt), []Attr{{Key: "class", Val: ClassMeta}}),
		Element("div", preview, []Attr{{Key: "class", Val: ClassPreview}}),
	)
}

// RoleLabel alternates ai-1/ai-2 by index parity and appends the speaker
// when one is present.
func RoleLabel(index int, speaker string) string {
	label := "ai-1"
	if index%2 != 0 {
		label = "ai-2"
	}
	if speaker != "" {
		label += " " + speaker
	}
	return label
}

// RenderConversationMessage builds one transcript line.
func RenderConversationMessage(m archive.Message, index int) Node {
	return Element("div", "", []Attr{{Key: "class", Val: ClassMessageLine}},
		Element("div", RoleLabel(index, m.Speaker), []Attr{{Key: "class", Val: ClassMessageRole}}),
		Element("div", m.Content, []Attr{{Key: "class", Val: ClassMessageContent}}),
	)
}

// Placeholder builds the single node shown in place of an empty list or
// transcript.
func Placeholder(text string) Node {
	return Element("div", text, []Attr{{Key: "class", Val: ClassLogEntry}})
}
