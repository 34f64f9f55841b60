package archive

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Summary is one stored session as shown in the archive list.
// Absent fields decode to the empty string.
type Summary struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at,omitempty"`
	Preview   string `json:"preview,omitempty"`
}

// IndexResponse is the body of GET /v1/archive. The backend may answer with a
// bare array of summaries or with an object carrying them under "items"; both
// shapes are folded into Items when decoding.
type IndexResponse struct {
	Items []Summary
}

// UnmarshalJSON resolves the two accepted shapes. null, {} and
// {"items": null} all yield an empty sequence.
func (r *IndexResponse) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		r.Items = []Summary{}
		return nil
	}

	switch trimmed[0] {
	case '[':
		var items []Summary
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return fmt.Errorf("decode summary list: %w", err)
		}
		r.Items = items
	case '{':
		var wrapped struct {
			Items []Summary `json:"items"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return fmt.Errorf("decode wrapped summary list: %w", err)
		}
		r.Items = wrapped.Items
	default:
		return fmt.Errorf("unexpected archive index shape starting with %q", trimmed[0])
	}

	if r.Items == nil {
		r.Items = []Summary{}
	}
	return nil
}

// MarshalJSON always emits the wrapped form.
func (r IndexResponse) MarshalJSON() ([]byte, error) {
	items := r.Items
	if items == nil {
		items = []Summary{}
	}
	return json.Marshal(struct {
		Items []Summary `json:"items"`
	}{Items: items})
}

// Message is one line of a transcript. Order within a Record is chronological.
type Message struct {
	Speaker string `json:"speaker,omitempty"`
	Content string `json:"content,omitempty"`
}

// Record is the body of GET /v1/archive/{id}.
type Record struct {
	ID        string          `json:"id,omitempty"`
	CreatedAt string          `json:"created_at,omitempty"`
	Messages  []Message       `json:"messages"`
	Error     json.RawMessage `json:"error,omitempty"`
}

// NotFound reports whether the record carries a truthy error marker.
// Absent, null, false, "" and 0 are not truthy.
func (r *Record) NotFound() bool {
	raw := bytes.TrimSpace(r.Error)
	if len(raw) == 0 {
		return false
	}
	switch string(raw) {
	case "null", "false", `""`, "0":
		return false
	}
	if c := raw[0]; c == '-' || (c >= '0' && c <= '9') {
		f, err := strconv.ParseFloat(string(raw), 64)
		return err != nil || f != 0
	}
	return true
}
