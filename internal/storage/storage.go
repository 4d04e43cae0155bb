// Package storage provides a durable JSON document store used as the
// client-side persistence layer. Records live in a single JSON file, one
// document per key, plus a volatile in-memory overlay for values that must
// not outlive the process (the gate flag).
//
// Reads never fail: a missing or corrupt file is treated as an empty store.
// Writes are best-effort: a failed save keeps the in-memory state and logs,
// so an unavailable filesystem degrades to "nothing persists".
package storage

import (
	"encoding/json"
	"os"
	"sync"

	"go.uber.org/zap"
)

// Store is a mutex-guarded key/value store of JSON documents.
type Store struct {
	path string
	log  *zap.Logger

	mu       sync.Mutex
	loaded   bool
	docs     map[string]json.RawMessage
	volatile map[string]json.RawMessage
}

// New creates a Store backed by the file at path. The file is created on the
// first successful write. log may be nil.
func New(path string, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		path:     path,
		log:      log,
		docs:     map[string]json.RawMessage{},
		volatile: map[string]json.RawMessage{},
	}
}

// load reads the backing file once. Callers must hold s.mu.
func (s *Store) load() {
	if s.loaded {
		return
	}
	s.loaded = true

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("storage unreadable, starting empty", zap.Error(err))
		}
		return
	}

	var docs map[string]json.RawMessage
	if err := json.Unmarshal(data, &docs); err != nil {
		s.log.Warn("storage corrupt, starting empty", zap.Error(err))
		return
	}
	s.docs = docs
}

// save writes the full document map back. Callers must hold s.mu.
func (s *Store) save() {
	data, err := json.Marshal(s.docs)
	if err != nil {
		s.log.Warn("storage encode failed", zap.Error(err))
		return
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		s.log.Warn("storage write failed", zap.Error(err))
	}
}

// Get decodes the document at key into v. It returns false when the key is
// absent or the stored document does not decode into v.
func (s *Store) Get(key string, v any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()

	raw, ok := s.docs[key]
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		s.log.Warn("stored document corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Put stores v under key, best-effort.
func (s *Store) Put(key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		s.log.Warn("document encode failed", zap.String("key", key), zap.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	s.docs[key] = raw
	s.save()
}

// Delete removes the document at key, best-effort.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load()
	if _, ok := s.docs[key]; !ok {
		return
	}
	delete(s.docs, key)
	s.save()
}

// GetVolatile reads a session-scoped value that is never written to disk.
func (s *Store) GetVolatile(key string, v any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.volatile[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

// PutVolatile stores a session-scoped value in memory only.
func (s *Store) PutVolatile(key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		s.log.Warn("volatile encode failed", zap.String("key", key), zap.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.volatile[key] = raw
}

// DeleteVolatile removes a session-scoped value.
func (s *Store) DeleteVolatile(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.volatile, key)
}
