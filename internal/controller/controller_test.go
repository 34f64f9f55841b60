package controller

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/user/archiveview/internal/page"
	"github.com/user/archiveview/internal/view"
	"github.com/user/archiveview/pkg/archive"
)

// fakeSource answers from fixed values and records what it was asked.
type fakeSource struct {
	mu       sync.Mutex
	items    []archive.Summary
	record   *archive.Record
	err      error
	queries  []string
	ids      []string
	panicked bool
}

func (f *fakeSource) Index(_ context.Context, query string) ([]archive.Summary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	if f.panicked {
		panic("boom")
	}
	if f.err != nil {
		return nil, f.err
	}
	return append([]archive.Summary(nil), f.items...), nil
}

func (f *fakeSource) Conversation(_ context.Context, id string) (*archive.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids = append(f.ids, id)
	if f.panicked {
		panic("boom")
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.record, nil
}

func (f *fakeSource) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries) + len(f.ids)
}

// gatedSource blocks each call until released, so tests can finish
// overlapping invocations in a chosen order.
type gatedSource struct {
	started chan string
	release map[string]chan []archive.Summary
}

func newGatedSource(queries ...string) *gatedSource {
	g := &gatedSource{started: make(chan string, len(queries)), release: map[string]chan []archive.Summary{}}
	for _, q := range queries {
		g.release[q] = make(chan []archive.Summary)
	}
	return g
}

func (g *gatedSource) Index(ctx context.Context, query string) ([]archive.Summary, error) {
	g.started <- query
	select {
	case items := <-g.release[query]:
		return items, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (g *gatedSource) Conversation(context.Context, string) (*archive.Record, error) {
	return nil, errors.New("not used")
}

func listPage(query string) (*page.Page, *page.NodeMount, *page.TextBox, *page.TextInput) {
	list := page.NewNodeMount()
	status := page.NewTextBox()
	input := page.NewTextInput(query)
	return &page.Page{List: list, Status: status, Search: input}, list, status, input
}

func detailPage(path string) (*page.Page, *page.NodeMount, *page.TextBox) {
	transcript := page.NewNodeMount()
	meta := page.NewTextBox()
	return &page.Page{Transcript: transcript, Meta: meta, Location: page.StaticLocation(path)}, transcript, meta
}

func ids(nodes []view.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		href, _ := n.Attr("href")
		out = append(out, href)
	}
	return out
}

func texts(nodes []view.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.TextContent())
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// captureLogs routes the default logger into a buffer for the rest of the
// test.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

// loggedRequestID returns the request_id of the first record with msg.
func loggedRequestID(t *testing.T, buf *bytes.Buffer, msg string) string {
	t.Helper()
	scanner := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	for scanner.Scan() {
		var rec map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			t.Fatalf("decode log line %q: %v", scanner.Text(), err)
		}
		if rec["msg"] == msg {
			id, _ := rec["request_id"].(string)
			return id
		}
	}
	t.Fatalf("no %q record in logs:\n%s", msg, buf.String())
	return ""
}
