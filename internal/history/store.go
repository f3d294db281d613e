// Package history keeps the append-ordered, filterable record of completed
// interactions for operator review.
package history

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Item is one immutable record of a completed request/response cycle.
// Details holds free-form correlation fields (prompt text, execution id,
// session id, tool lists, risk tiers).
type Item struct {
	ID        string            `json:"id"`
	Kind      string            `json:"kind"`
	Label     string            `json:"label"`
	Body      string            `json:"body,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Details   map[string]string `json:"details,omitempty"`

	// search is the precomputed lowercase haystack for Filter.
	search string
}

// Sink receives each recorded item for persistence.
type Sink interface {
	Append(item *Item) error
}

// Store is the in-memory record, most-recent-first. Items are never
// mutated or removed; the store grows for the session lifetime.
type Store struct {
	mu    sync.RWMutex
	items []*Item
	sink  Sink
}

// NewStore creates a store. A nil sink keeps the record in memory only.
func NewStore(sink Sink) *Store {
	return &Store{sink: sink}
}

// Record creates one item and prepends it. The returned error comes only
// from the sink; the in-memory record always succeeds.
func (s *Store) Record(kind, label, body string, details map[string]string) (*Item, error) {
	item := &Item{
		ID:        uuid.NewString(),
		Kind:      kind,
		Label:     label,
		Body:      body,
		Timestamp: time.Now(),
		Details:   details,
	}
	item.search = buildSearch(item)

	s.mu.Lock()
	s.items = append([]*Item{item}, s.items...)
	s.mu.Unlock()

	if s.sink != nil {
		if err := s.sink.Append(item); err != nil {
			return item, err
		}
	}
	return item, nil
}

// All returns every item, most recent first.
func (s *Store) All() []*Item {
	return s.Filter("")
}

// Filter returns the items whose search string contains the query,
// case-insensitively. An empty query matches everything. Filtering is
// non-destructive.
func (s *Store) Filter(query string) []*Item {
	q := strings.ToLower(strings.TrimSpace(query))

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Item, 0, len(s.items))
	for _, item := range s.items {
		if q == "" || strings.Contains(item.search, q) {
			out = append(out, item)
		}
	}
	return out
}

// Len reports the number of recorded items.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func buildSearch(item *Item) string {
	parts := []string{item.Label, item.Body}
	for _, key := range []string{"prompt", "execution_id", "session_id"} {
		if v := item.Details[key]; v != "" {
			parts = append(parts, v)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}
