package sessions

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/go-go-golems/cicerone/pkg/turns"
)

// Session owns the conversation history for one session key. All history
// access goes through WithLock so concurrent requests on the same key are
// serialized rather than racing on the block slice.
type Session struct {
	Key string

	mu      sync.Mutex
	history *turns.Turn
}

// WithLock runs fn with exclusive access to the session history. The history
// must not be retained past the callback.
func (s *Session) WithLock(fn func(history *turns.Turn)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.history)
}

// Snapshot returns a deep copy of the current history.
func (s *Session) Snapshot() *turns.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.Clone()
}

// Len returns the number of blocks currently in the history.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history.Blocks)
}

// Store maps session keys to conversation histories. Histories are created on
// first contact and live for the process lifetime; there is no eviction.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// GetOrCreate returns the session for key, creating an empty one if absent.
// The mapping is idempotent: the same key always yields the same session.
func (st *Store) GetOrCreate(key string) *Session {
	st.mu.RLock()
	sess, ok := st.sessions[key]
	st.mu.RUnlock()
	if ok {
		return sess
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if sess, ok := st.sessions[key]; ok {
		return sess
	}
	sess = &Session{
		Key:     key,
		history: &turns.Turn{ID: uuid.NewString(), Metadata: map[string]any{turns.MetaKeySessionID: key}},
	}
	st.sessions[key] = sess
	return sess
}

// Count returns the number of live sessions.
func (st *Store) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Keys returns the session keys in sorted order.
func (st *Store) Keys() []string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	keys := make([]string, 0, len(st.sessions))
	for k := range st.sessions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
