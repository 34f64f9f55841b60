package archive

import (
	"context"
	"fmt"
	"time"
)

// Source defines the read side of the archive backend.
type Source interface {
	// Index returns the archive summaries in the order the backend sent them.
	// An empty query requests the unfiltered index.
	Index(ctx context.Context, query string) ([]Summary, error)

	// Conversation returns the full record for one session. A record whose
	// NotFound reports true is returned without error.
	Conversation(ctx context.Context, id string) (*Record, error)
}

// Config holds connection settings for an archive backend.
type Config struct {
	BaseURL   string
	AuthToken string
	Timeout   time.Duration
}

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Code int
	Path string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("archive backend %s: status %d", e.Path, e.Code)
}
