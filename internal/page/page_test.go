package page

import (
	"sync"
	"testing"

	"github.com/user/archiveview/internal/view"
)

func TestStatusWritesEveryPresentRegion(t *testing.T) {
	list, meta := NewTextBox(), NewTextBox()
	s := StatusFor(&Page{Status: list, Meta: meta})

	s.Set("loading session...")
	s.Set("session not found.")

	if list.Text() != "session not found." || meta.Text() != "session not found." {
		t.Errorf("expected both regions overwritten, got %q and %q", list.Text(), meta.Text())
	}
	if s.Text() != "session not found." {
		t.Errorf("unexpected last text %q", s.Text())
	}
}

func TestStatusWithoutRegions(t *testing.T) {
	s := StatusFor(&Page{})
	s.Set("Archive unreachable.")
	if s.Text() != "Archive unreachable." {
		t.Errorf("unexpected text %q", s.Text())
	}
}

func TestNodeMountReplace(t *testing.T) {
	m := NewNodeMount()
	nodes := []view.Node{view.Placeholder("one"), view.Placeholder("two")}
	m.Replace(nodes)
	nodes[0] = view.Placeholder("changed")

	got := m.Nodes()
	if len(got) != 2 || got[0].Text() != "one" {
		t.Errorf("expected mount to keep its own copy, got %v", got)
	}
	m.Replace(nil)
	if len(m.Nodes()) != 0 || m.Replacements() != 2 {
		t.Errorf("expected empty mount after two replacements")
	}
}

func TestNodeMountConcurrent(t *testing.T) {
	m := NewNodeMount()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Replace([]view.Node{view.Placeholder("x")})
			_ = m.Nodes()
		}()
	}
	wg.Wait()
	if m.Replacements() != 20 {
		t.Errorf("expected 20 replacements, got %d", m.Replacements())
	}
}

func TestTextInputPress(t *testing.T) {
	in := NewTextInput("query")
	var keys []string
	in.OnKey(func(key string) bool {
		keys = append(keys, key)
		return key == "Enter"
	})

	if in.Press("a") {
		t.Error("expected default action kept for a")
	}
	if !in.Press("Enter") {
		t.Error("expected default action suppressed for Enter")
	}
	if len(keys) != 2 {
		t.Errorf("expected 2 keys delivered, got %v", keys)
	}
}

func TestButtonPress(t *testing.T) {
	b := NewButton()
	var order []int
	b.OnActivate(func() { order = append(order, 1) })
	b.OnActivate(func() { order = append(order, 2) })
	b.Press()
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("expected handlers in registration order, got %v", order)
	}
}

func TestLocations(t *testing.T) {
	if StaticLocation("/archive/abc").Path() != "/archive/abc" {
		t.Error("unexpected static path")
	}
	a := NewAddress("/archive/")
	a.Go("/archive/xyz")
	if a.Path() != "/archive/xyz" {
		t.Errorf("unexpected address %q", a.Path())
	}
}
