// internal/state/archive.go
package state

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/user/archiveview/internal/types"
	"github.com/user/archiveview/pkg/archive"
)

const maxPreviewRunes = 160

// Entry is one archived session as stored on disk.
type Entry struct {
	ID        types.SessionID   `json:"id"`
	CreatedAt time.Time         `json:"created_at"`
	Messages  []archive.Message `json:"messages"`
	Preview   string            `json:"preview"`
}

// Summary returns the list projection of the entry.
func (e *Entry) Summary() archive.Summary {
	return archive.Summary{
		ID:        string(e.ID),
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
		Preview:   e.Preview,
	}
}

// Record returns the detail projection of the entry.
func (e *Entry) Record() *archive.Record {
	messages := make([]archive.Message, len(e.Messages))
	copy(messages, e.Messages)
	return &archive.Record{
		ID:        string(e.ID),
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
		Messages:  messages,
	}
}

// Matches reports whether query occurs, case-insensitively, in the preview or
// in any message content.
func (e *Entry) Matches(query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(e.Preview), q) {
		return true
	}
	for _, m := range e.Messages {
		if strings.Contains(strings.ToLower(m.Content), q) {
			return true
		}
	}
	return false
}

// ArchiveStore is a JSONL-backed append-only archive.
// Each line of the file holds one Entry, oldest first.
type ArchiveStore struct {
	path string
	mu   sync.Mutex
}

// NewArchiveStore creates an ArchiveStore backed by the file at path.
func NewArchiveStore(path string) *ArchiveStore {
	return &ArchiveStore{path: path}
}

// Append stores a new session built from messages and returns it.
func (s *ArchiveStore) Append(_ context.Context, messages []archive.Message) (*Entry, error) {
	entry := &Entry{
		ID:        types.NewSessionID(),
		CreatedAt: time.Now().UTC(),
		Messages:  messages,
		Preview:   preview(messages),
	}
	if err := s.Put(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Put appends entry as-is.
func (s *ArchiveStore) Put(entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create archive dir: %w", err)
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open archive file: %w", err)
	}
	defer f.Close()

	data = append(data, '\n')
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write entry: %w", err)
	}
	return nil
}

// List returns stored entries oldest first. A limit >= 0 keeps only the last
// limit entries; a negative limit returns everything.
func (s *ArchiveStore) List(_ context.Context, limit int) ([]*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readAll()
	if err != nil {
		return nil, err
	}
	if limit >= 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	return entries, nil
}

// Get returns the entry with the given id, or nil if none exists.
func (s *ArchiveStore) Get(_ context.Context, id types.SessionID) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.readAll()
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}

// readAll skips blank and malformed lines. Caller must hold the lock.
func (s *ArchiveStore) readAll() ([]*Entry, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open archive file: %w", err)
	}
	defer f.Close()

	var entries []*Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 8<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var entry Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			slog.Warn("skipping malformed archive line", "path", s.path, "error", err)
			continue
		}
		entries = append(entries, &entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan archive file: %w", err)
	}
	return entries, nil
}

func preview(messages []archive.Message) string {
	for _, m := range messages {
		text := strings.TrimSpace(m.Content)
		if text == "" {
			continue
		}
		if utf8.RuneCountInString(text) > maxPreviewRunes {
			text = string([]rune(text)[:maxPreviewRunes])
		}
		return text
	}
	return ""
}
