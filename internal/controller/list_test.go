package controller

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/user/archiveview/internal/archivetest"
	"github.com/user/archiveview/internal/page"
	"github.com/user/archiveview/internal/view"
	"github.com/user/archiveview/pkg/archive"
	"github.com/user/archiveview/pkg/archive/rest"
)

func TestListRendersReverseOrder(t *testing.T) {
	src := &fakeSource{items: []archive.Summary{{ID: "1"}, {ID: "2"}, {ID: "3"}}}
	p, list, status, _ := listPage("")
	NewList(src, p, page.StatusFor(p)).Load(context.Background())

	want := []string{"/archive/3", "/archive/2", "/archive/1"}
	if got := ids(list.Nodes()); !equalStrings(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if status.Text() != "Loaded 3 sessions." {
		t.Errorf("unexpected status %q", status.Text())
	}
}

func TestListEmptyPlaceholders(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"", "no archived conversations yet."},
		{"   ", "no archived conversations yet."},
		{"neon", "no matches found."},
	}
	for _, tt := range tests {
		src := &fakeSource{items: []archive.Summary{}}
		p, list, status, _ := listPage(tt.query)
		NewList(src, p, page.StatusFor(p)).Load(context.Background())

		nodes := list.Nodes()
		if len(nodes) != 1 || nodes[0].Text() != tt.want {
			t.Errorf("query %q: expected single placeholder %q, got %v", tt.query, tt.want, texts(nodes))
		}
		if status.Text() != "Loaded 0 sessions." {
			t.Errorf("query %q: unexpected status %q", tt.query, status.Text())
		}
	}
}

func TestListTrimsQuery(t *testing.T) {
	src := &fakeSource{}
	p, _, _, _ := listPage("  neon rain  ")
	NewList(src, p, page.StatusFor(p)).Load(context.Background())
	if len(src.queries) != 1 || src.queries[0] != "neon rain" {
		t.Errorf("expected trimmed query, got %q", src.queries)
	}
}

func TestListWithoutMountIsNoop(t *testing.T) {
	src := &fakeSource{}
	status := page.NewTextBox()
	status.SetText("untouched")
	p := &page.Page{Status: status}
	NewList(src, p, page.StatusFor(p)).Load(context.Background())

	if src.calls() != 0 {
		t.Errorf("expected no requests, got %d", src.calls())
	}
	if status.Text() != "untouched" {
		t.Errorf("expected no status change, got %q", status.Text())
	}
}

func TestListFailureKeepsPriorContent(t *testing.T) {
	src := &fakeSource{items: []archive.Summary{{ID: "1"}}}
	p, list, status, _ := listPage("")
	c := NewList(src, p, page.StatusFor(p))
	c.Load(context.Background())

	src.err = errors.New("connection refused")
	c.Load(context.Background())

	if status.Text() != "Archive unreachable." {
		t.Errorf("unexpected status %q", status.Text())
	}
	if got := ids(list.Nodes()); !equalStrings(got, []string{"/archive/1"}) {
		t.Errorf("expected prior content kept, got %v", got)
	}
	if list.Replacements() != 1 {
		t.Errorf("expected one replacement, got %d", list.Replacements())
	}
}

func TestListRecoversFromPanic(t *testing.T) {
	src := &fakeSource{panicked: true}
	p, list, status, _ := listPage("")
	NewList(src, p, page.StatusFor(p)).Load(context.Background())

	if status.Text() != "Archive unreachable." {
		t.Errorf("unexpected status %q", status.Text())
	}
	if list.Replacements() != 0 {
		t.Error("expected list untouched")
	}
}

func TestListIdempotent(t *testing.T) {
	srv := archivetest.NewServer(t,
		[]archive.Message{{Speaker: "a", Content: "first"}},
		[]archive.Message{{Speaker: "b", Content: "second"}},
	)
	p, list, _, _ := listPage("")
	c := NewList(rest.New(&archive.Config{BaseURL: srv.URL}), p, page.StatusFor(p))

	c.Load(context.Background())
	first, err := view.RenderHTML(list.Nodes())
	if err != nil {
		t.Fatal(err)
	}
	c.Load(context.Background())
	second, err := view.RenderHTML(list.Nodes())
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("expected identical output:\n%s\n%s", first, second)
	}
	if list.Replacements() != 2 {
		t.Errorf("expected two replacements, got %d", list.Replacements())
	}
}

func TestListAgainstBackendShapes(t *testing.T) {
	for _, shape := range []archivetest.Shape{archivetest.ShapeWrapped, archivetest.ShapeBare} {
		srv := archivetest.NewServer(t,
			[]archive.Message{{Content: "oldest"}},
			[]archive.Message{{Content: "middle"}},
			[]archive.Message{{Content: "newest"}},
		)
		srv.SetShape(shape)
		p, list, status, _ := listPage("")
		NewList(rest.New(&archive.Config{BaseURL: srv.URL}), p, page.StatusFor(p)).Load(context.Background())

		var previews []string
		for _, n := range list.Nodes() {
			preview, _ := n.Find(view.ClassPreview)
			previews = append(previews, preview.Text())
		}
		if want := []string{"newest", "middle", "oldest"}; !equalStrings(previews, want) {
			t.Errorf("shape %d: expected %v, got %v", shape, want, previews)
		}
		if status.Text() != "Loaded 3 sessions." {
			t.Errorf("shape %d: unexpected status %q", shape, status.Text())
		}
	}
}

func TestListSearchAgainstBackend(t *testing.T) {
	srv := archivetest.NewServer(t,
		[]archive.Message{{Content: "neon rain"}},
		[]archive.Message{{Content: "dry desert"}},
	)
	p, list, _, input := listPage("neon")
	c := NewList(rest.New(&archive.Config{BaseURL: srv.URL}), p, page.StatusFor(p))
	c.Load(context.Background())

	if n := len(list.Nodes()); n != 1 {
		t.Fatalf("expected 1 match, got %d", n)
	}

	input.SetValue("snow")
	c.Load(context.Background())
	nodes := list.Nodes()
	if len(nodes) != 1 || nodes[0].Text() != "no matches found." {
		t.Errorf("expected no-match placeholder, got %v", texts(nodes))
	}

	queries := srv.Queries()
	if len(queries) != 2 || queries[0] != "search=neon" || queries[1] != "search=snow" {
		t.Errorf("unexpected queries %q", queries)
	}
}

func TestListBackendFailure(t *testing.T) {
	srv := archivetest.NewServer(t)
	srv.FailWith(http.StatusServiceUnavailable)
	p, list, status, _ := listPage("")
	NewList(rest.New(&archive.Config{BaseURL: srv.URL}), p, page.StatusFor(p)).Load(context.Background())

	if status.Text() != "Archive unreachable." {
		t.Errorf("unexpected status %q", status.Text())
	}
	if list.Replacements() != 0 {
		t.Error("expected list untouched")
	}
}

func TestListFailureLogsWireRequestID(t *testing.T) {
	logs := captureLogs(t)
	srv := archivetest.NewServer(t)
	srv.FailWith(http.StatusInternalServerError)
	p, _, _, _ := listPage("")
	NewList(rest.New(&archive.Config{BaseURL: srv.URL}), p, page.StatusFor(p)).Load(context.Background())

	sent := srv.RequestIDs()
	if len(sent) != 1 || sent[0] == "" {
		t.Fatalf("expected one request carrying an id, got %q", sent)
	}
	if got := loggedRequestID(t, logs, "archive load failed"); got != sent[0] {
		t.Errorf("logged request_id %q, sent %q", got, sent[0])
	}
}

func TestListTriggers(t *testing.T) {
	src := &fakeSource{items: []archive.Summary{{ID: "1"}}}
	p, _, _, input := listPage("neon")
	submit, clear := page.NewButton(), page.NewButton()
	p.SearchSubmit, p.SearchClear = submit, clear

	c := NewList(src, p, page.StatusFor(p))
	c.Attach(context.Background())

	submit.Press()
	if input.Press("a") {
		t.Error("expected ordinary keys not to be suppressed")
	}
	if !input.Press(KeyEnter) {
		t.Error("expected Enter to suppress the default action")
	}
	clear.Press()

	want := []string{"neon", "neon", ""}
	if !equalStrings(src.queries, want) {
		t.Errorf("expected queries %q, got %q", want, src.queries)
	}
	if input.Value() != "" {
		t.Errorf("expected clear to reset input, got %q", input.Value())
	}
}

func TestListStaleResponseDiscarded(t *testing.T) {
	src := newGatedSource("old", "new")
	p, list, status, input := listPage("old")
	c := NewList(src, p, page.StatusFor(p))

	ctx := context.Background()
	done := make(chan struct{}, 2)
	go func() { c.Load(ctx); done <- struct{}{} }()
	<-src.started

	input.SetValue("new")
	go func() { c.Load(ctx); done <- struct{}{} }()
	<-src.started

	src.release["new"] <- []archive.Summary{{ID: "new"}}
	<-done
	src.release["old"] <- []archive.Summary{{ID: "old-1"}, {ID: "old-2"}}
	<-done

	if got := ids(list.Nodes()); !equalStrings(got, []string{"/archive/new"}) {
		t.Errorf("expected newest invocation to win, got %v", got)
	}
	if status.Text() != "Loaded 1 sessions." {
		t.Errorf("unexpected status %q", status.Text())
	}
}

func TestListWithoutStaleGuardLastCompletedWins(t *testing.T) {
	src := newGatedSource("old", "new")
	p, list, _, input := listPage("old")
	c := NewList(src, p, page.StatusFor(p), WithoutStaleGuard())

	ctx := context.Background()
	done := make(chan struct{}, 2)
	go func() { c.Load(ctx); done <- struct{}{} }()
	<-src.started

	input.SetValue("new")
	go func() { c.Load(ctx); done <- struct{}{} }()
	<-src.started

	src.release["new"] <- []archive.Summary{{ID: "new"}}
	<-done
	src.release["old"] <- []archive.Summary{{ID: "old"}}
	<-done

	if got := ids(list.Nodes()); !equalStrings(got, []string{"/archive/old"}) {
		t.Errorf("expected last completion to win, got %v", got)
	}
}
