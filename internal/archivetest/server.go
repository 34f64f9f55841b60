// Package archivetest serves a file-backed archive over the archive HTTP API
// for use in tests.
package archivetest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/user/archiveview/internal/state"
	"github.com/user/archiveview/internal/types"
	"github.com/user/archiveview/pkg/archive"
)

// Shape selects the body form of GET /v1/archive.
type Shape int

const (
	ShapeWrapped Shape = iota // {"items": [...]}
	ShapeBare                 // [...]
)

// Handler answers the archive API from an ArchiveStore.
type Handler struct {
	store *state.ArchiveStore
	mux   *http.ServeMux

	mu       sync.Mutex
	shape    Shape
	failCode int
	requests atomic.Int64
	queries  []string
	reqIDs   []string
}

// NewHandler creates a Handler over store.
func NewHandler(store *state.ArchiveStore) *Handler {
	h := &Handler{
		store: store,
		mux:   http.NewServeMux(),
	}
	h.mux.HandleFunc("GET /v1/archive", h.handleIndex)
	h.mux.HandleFunc("GET /v1/archive/{id}", h.handleEntry)
	return h
}

// ServeHTTP delegates to the internal mux, implementing http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/v1/") {
		h.requests.Add(1)
		h.mu.Lock()
		h.reqIDs = append(h.reqIDs, r.Header.Get("X-Request-ID"))
		h.mu.Unlock()
		if code := h.failure(); code != 0 {
			http.Error(w, `{"error":"unavailable"}`, code)
			return
		}
	}
	h.mux.ServeHTTP(w, r)
}

// SetShape switches the index body form.
func (h *Handler) SetShape(s Shape) {
	h.mu.Lock()
	h.shape = s
	h.mu.Unlock()
}

// FailWith makes every API request answer with code. Zero restores normal
// behavior.
func (h *Handler) FailWith(code int) {
	h.mu.Lock()
	h.failCode = code
	h.mu.Unlock()
}

// Requests counts API requests received.
func (h *Handler) Requests() int64 {
	return h.requests.Load()
}

// Queries returns the raw query strings of index requests, in arrival order.
func (h *Handler) Queries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.queries...)
}

// RequestIDs returns the X-Request-ID header of every API request, in
// arrival order.
func (h *Handler) RequestIDs() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.reqIDs...)
}

func (h *Handler) failure() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.failCode
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	h.queries = append(h.queries, r.URL.RawQuery)
	shape := h.shape
	h.mu.Unlock()

	limit := -1
	if q := r.URL.Query().Get("limit"); q != "" {
		if n, err := strconv.Atoi(q); err == nil && n >= 0 {
			limit = n
		}
	}

	entries, err := h.store.List(r.Context(), limit)
	if err != nil {
		slog.Error("list archive failed", "error", err)
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}

	search := strings.TrimSpace(r.URL.Query().Get("search"))
	items := make([]archive.Summary, 0, len(entries))
	for _, e := range entries {
		if search != "" && !e.Matches(search) {
			continue
		}
		items = append(items, e.Summary())
	}

	if shape == ShapeBare {
		writeJSON(w, items)
		return
	}
	writeJSON(w, archive.IndexResponse{Items: items})
}

func (h *Handler) handleEntry(w http.ResponseWriter, r *http.Request) {
	id := types.SessionID(r.PathValue("id"))
	entry, err := h.store.Get(r.Context(), id)
	if err != nil {
		slog.Error("get archive entry failed", "session_id", id, "error", err)
		http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
		return
	}
	if entry == nil {
		writeJSON(w, map[string]any{"error": "Not found", "status": http.StatusNotFound})
		return
	}
	writeJSON(w, entry.Record())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// Server is a running fake backend.
type Server struct {
	*Handler
	Store *state.ArchiveStore
	URL   string
}

// NewServer starts a backend over a fresh archive file in t.TempDir and
// stores the given transcripts oldest first.
func NewServer(t *testing.T, transcripts ...[]archive.Message) *Server {
	t.Helper()
	store := state.NewArchiveStore(filepath.Join(t.TempDir(), "conversations.jsonl"))
	for _, messages := range transcripts {
		if _, err := store.Append(context.Background(), messages); err != nil {
			t.Fatal(err)
		}
	}
	h := NewHandler(store)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return &Server{Handler: h, Store: store, URL: srv.URL}
}

// Put stores entry and returns its id.
func (s *Server) Put(t *testing.T, entry *state.Entry) types.SessionID {
	t.Helper()
	if entry.ID == "" {
		entry.ID = types.NewSessionID()
	}
	if err := s.Store.Put(entry); err != nil {
		t.Fatal(err)
	}
	return entry.ID
}
