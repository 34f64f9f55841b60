package page

import (
	"sync"

	"github.com/user/archiveview/internal/view"
)

// NodeMount is an in-memory Mount, safe for concurrent use.
type NodeMount struct {
	mu       sync.RWMutex
	nodes    []view.Node
	replaced int
}

func NewNodeMount() *NodeMount {
	return &NodeMount{}
}

func (m *NodeMount) Replace(nodes []view.Node) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nodes = append([]view.Node(nil), nodes...)
	m.replaced++
}

// Nodes returns a copy of the current children.
func (m *NodeMount) Nodes() []view.Node {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]view.Node(nil), m.nodes...)
}

// Replacements counts calls to Replace.
func (m *NodeMount) Replacements() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.replaced
}

// TextBox is an in-memory TextRegion.
type TextBox struct {
	mu   sync.RWMutex
	text string
}

func NewTextBox() *TextBox {
	return &TextBox{}
}

func (b *TextBox) SetText(text string) {
	b.mu.Lock()
	b.text = text
	b.mu.Unlock()
}

func (b *TextBox) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}

// TextInput is an in-memory Input that also delivers key presses.
type TextInput struct {
	mu       sync.RWMutex
	value    string
	handlers []KeyHandler
}

func NewTextInput(value string) *TextInput {
	return &TextInput{value: value}
}

func (i *TextInput) Value() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.value
}

func (i *TextInput) SetValue(value string) {
	i.mu.Lock()
	i.value = value
	i.mu.Unlock()
}

func (i *TextInput) OnKey(h KeyHandler) {
	i.mu.Lock()
	i.handlers = append(i.handlers, h)
	i.mu.Unlock()
}

// Press delivers key to every handler and reports whether any of them
// suppressed the default action.
func (i *TextInput) Press(key string) bool {
	i.mu.RLock()
	handlers := append([]KeyHandler(nil), i.handlers...)
	i.mu.RUnlock()

	suppressed := false
	for _, h := range handlers {
		if h(key) {
			suppressed = true
		}
	}
	return suppressed
}

// Button is an in-memory Control.
type Button struct {
	mu       sync.RWMutex
	handlers []func()
}

func NewButton() *Button {
	return &Button{}
}

func (b *Button) OnActivate(fn func()) {
	b.mu.Lock()
	b.handlers = append(b.handlers, fn)
	b.mu.Unlock()
}

// Press runs every activation handler in registration order.
func (b *Button) Press() {
	b.mu.RLock()
	handlers := append([]func(){}, b.handlers...)
	b.mu.RUnlock()
	for _, fn := range handlers {
		fn()
	}
}

// StaticLocation is a fixed Location.
type StaticLocation string

func (l StaticLocation) Path() string { return string(l) }

// Address is a Location that can be moved to another path.
type Address struct {
	mu   sync.RWMutex
	path string
}

func NewAddress(path string) *Address {
	return &Address{path: path}
}

func (a *Address) Path() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.path
}

// Go moves the address to path.
func (a *Address) Go(path string) {
	a.mu.Lock()
	a.path = path
	a.mu.Unlock()
}
