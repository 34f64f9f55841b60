package page

import "sync"

// Status is the shared sink for progress and error text. Each Set overwrites
// the previous text in every present region.
type Status struct {
	mu      sync.Mutex
	regions []TextRegion
	last    string
}

// NewStatus creates a Status that mirrors text into the given regions. Nil
// regions are absent and skipped.
func NewStatus(regions ...TextRegion) *Status {
	s := &Status{}
	for _, r := range regions {
		if r != nil {
			s.regions = append(s.regions, r)
		}
	}
	return s
}

// StatusFor creates a Status over the page's status region and meta region.
func StatusFor(p *Page) *Status {
	return NewStatus(p.Status, p.Meta)
}

func (s *Status) Set(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = text
	for _, r := range s.regions {
		r.SetText(text)
	}
}

// Text returns the most recently set text.
func (s *Status) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}
