// Package state holds the in-memory owners of the application state: the
// document store, the conversation log, and the coaching settings. Each owner
// guards its data with a mutex and hands out copies, so callers never share
// memory with the store. Persistence is layered on top by the services
// package; nothing here touches the database.
package state

import (
	"sync"

	"github.com/tbourn/go-coach-backend/internal/domain"
)

// DocumentStore keeps ingested documents keyed by filename, in upload order.
type DocumentStore struct {
	mu    sync.RWMutex
	docs  []domain.Document
	index map[string]int
}

// NewDocumentStore returns an empty store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{index: make(map[string]int)}
}

// Add inserts doc. It is a no-op returning false when a document with the
// same filename is already present.
func (s *DocumentStore) Add(doc domain.Document) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[doc.Filename]; ok {
		return false
	}
	s.index[doc.Filename] = len(s.docs)
	s.docs = append(s.docs, doc.Clone())
	return true
}

// Has reports whether filename is stored.
func (s *DocumentStore) Has(filename string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[filename]
	return ok
}

// Get returns a copy of the document named filename.
func (s *DocumentStore) Get(filename string) (domain.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[filename]
	if !ok {
		return domain.Document{}, false
	}
	return s.docs[i].Clone(), true
}

// List returns summaries in upload order. An empty category means no filter.
func (s *DocumentStore) List(category domain.Category) []domain.DocumentSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.DocumentSummary, 0, len(s.docs))
	for _, d := range s.docs {
		if category != "" && d.Category != category {
			continue
		}
		out = append(out, d.Summary())
	}
	return out
}

// Chunks returns every chunk of every matching document, in upload order and
// then chunk order. An empty category means no filter.
func (s *DocumentStore) Chunks(category domain.Category) []domain.Chunk {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Chunk
	for _, d := range s.docs {
		if category != "" && d.Category != category {
			continue
		}
		out = append(out, d.Chunks...)
	}
	return out
}

// SetCategory overrides the category of filename. It returns false when the
// document is unknown.
func (s *DocumentStore) SetCategory(filename string, c domain.Category) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[filename]
	if !ok {
		return false
	}
	s.docs[i].Category = c
	return true
}

// Remove deletes filename. It returns false when the document is unknown.
func (s *DocumentStore) Remove(filename string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[filename]
	if !ok {
		return false
	}
	s.docs = append(s.docs[:i], s.docs[i+1:]...)
	s.reindex()
	return true
}

// Counts returns the number of documents per category. Every category of the
// taxonomy is present, including those with zero documents.
func (s *DocumentStore) Counts() map[domain.Category]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[domain.Category]int, len(domain.Categories()))
	for _, ci := range domain.Categories() {
		out[ci.Label] = 0
	}
	for _, d := range s.docs {
		out[d.Category]++
	}
	return out
}

// Len returns the number of stored documents.
func (s *DocumentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

// All returns copies of every document in upload order.
func (s *DocumentStore) All() []domain.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Document, len(s.docs))
	for i, d := range s.docs {
		out[i] = d.Clone()
	}
	return out
}

// Load replaces the content of the store with docs. Later duplicates of a
// filename are dropped.
func (s *DocumentStore) Load(docs []domain.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs = s.docs[:0]
	s.index = make(map[string]int, len(docs))
	for _, d := range docs {
		if _, dup := s.index[d.Filename]; dup {
			continue
		}
		s.index[d.Filename] = len(s.docs)
		s.docs = append(s.docs, d.Clone())
	}
}

// Reset empties the store.
func (s *DocumentStore) Reset() {
	s.Load(nil)
}

// reindex rebuilds the filename index; the caller holds the write lock.
func (s *DocumentStore) reindex() {
	s.index = make(map[string]int, len(s.docs))
	for i, d := range s.docs {
		s.index[d.Filename] = i
	}
}
