// internal/types/ids.go
package types

import (
	"net/url"
	"strings"

	"github.com/google/uuid"
)

type SessionID string
type RequestID string

func NewSessionID() SessionID {
	return SessionID(uuid.New().String())
}

func NewRequestID() RequestID {
	return RequestID(uuid.New().String())
}

// SessionIDFromPath returns the last "/"-delimited segment of a location
// path, unescaped. "/archive/abc123" yields "abc123"; "/archive/" yields "".
// A segment that is not valid escaping is returned as-is.
func SessionIDFromPath(path string) SessionID {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	segment := path[strings.LastIndex(path, "/")+1:]
	if unescaped, err := url.PathUnescape(segment); err == nil {
		segment = unescaped
	}
	return SessionID(segment)
}
