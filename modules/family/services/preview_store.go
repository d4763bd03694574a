package services

import (
	"sync"
	"time"

	"github.com/kindred-app/kindred/pkg/gedcom"
)

const DefaultPreviewTTL = 30 * time.Minute

// PreviewStore holds parsed documents between upload and import, keyed by
// an opaque upload identifier. Previews are ephemeral by contract: they
// disappear on import or after the TTL, and are never written anywhere.
type PreviewStore struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]previewEntry
	now     func() time.Time
}

type previewEntry struct {
	doc       *gedcom.Document
	expiresAt time.Time
}

func NewPreviewStore(ttl time.Duration) *PreviewStore {
	if ttl <= 0 {
		ttl = DefaultPreviewTTL
	}
	return &PreviewStore{
		ttl:     ttl,
		entries: make(map[string]previewEntry),
		now:     time.Now,
	}
}

// Put stores a preview under the upload id, replacing any previous one.
// Expired entries are purged opportunistically on write.
func (s *PreviewStore) Put(uploadID string, doc *gedcom.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, id)
		}
	}
	s.entries[uploadID] = previewEntry{doc: doc, expiresAt: now.Add(s.ttl)}
}

func (s *PreviewStore) Get(uploadID string) (*gedcom.Document, bool) {
	s.mu.RLock()
	e, ok := s.entries[uploadID]
	s.mu.RUnlock()

	if !ok || s.now().After(e.expiresAt) {
		return nil, false
	}
	return e.doc, true
}

func (s *PreviewStore) Delete(uploadID string) {
	s.mu.Lock()
	delete(s.entries, uploadID)
	s.mu.Unlock()
}
