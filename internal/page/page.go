// Package page models the regions of a page that the list and detail
// controllers read from and write into. Every region is an optional handle:
// a nil handle means the region is absent from the page.
package page

import "github.com/user/archiveview/internal/view"

// Mount is a container whose rendered children a controller replaces as a
// whole.
type Mount interface {
	Replace(nodes []view.Node)
}

// TextRegion holds a single piece of text, overwritten on every write.
type TextRegion interface {
	SetText(text string)
}

// Input is a text control.
type Input interface {
	Value() string
	SetValue(value string)
}

// KeyHandler receives a key pressed inside an input and reports whether the
// default action for that key was suppressed.
type KeyHandler func(key string) (suppressDefault bool)

// KeySource is implemented by inputs that deliver key presses.
type KeySource interface {
	OnKey(h KeyHandler)
}

// Control is an activatable element such as a button.
type Control interface {
	OnActivate(fn func())
}

// Location exposes the path of the currently loaded page.
type Location interface {
	Path() string
}

// Page gathers the regions of the list page and the detail page. The same
// Page may carry regions of both.
type Page struct {
	List         Mount
	Status       TextRegion
	Search       Input
	SearchSubmit Control
	SearchClear  Control
	Transcript   Mount
	Meta         TextRegion
	Location     Location
}
