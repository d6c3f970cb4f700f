// Package scrollmark remembers list scroll offsets across navigations.
package scrollmark

import "sync"

// Store is a keyed offset store. Implementations are best effort: a failed
// write is dropped and a failed read looks like a missing mark.
type Store interface {
	Get(key string) (int, bool)
	Set(key string, offset int)
}

// MemoryStore keeps marks for the lifetime of the process.
type MemoryStore struct {
	mu    sync.Mutex
	marks map[string]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{marks: map[string]int{}}
}

func (s *MemoryStore) Get(key string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	offset, ok := s.marks[key]
	return offset, ok
}

func (s *MemoryStore) Set(key string, offset int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.marks == nil {
		s.marks = map[string]int{}
	}
	s.marks[key] = offset
}

// Memory binds a store to one logical list.
type Memory struct {
	store     Store
	key       string
	lastCount int
}

func New(store Store, key string) *Memory {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Memory{store: store, key: key, lastCount: -1}
}

func (m *Memory) Key() string { return m.key }

// Record persists offset. Called on every scroll event.
func (m *Memory) Record(offset int) {
	if m == nil {
		return
	}
	if offset < 0 {
		offset = 0
	}
	m.store.Set(m.key, offset)
}

// RestoreAfter returns the stored offset the first time it sees a new item
// count. The caller applies it once the taller list has been rendered.
func (m *Memory) RestoreAfter(count int) (int, bool) {
	if m == nil || count == m.lastCount {
		return 0, false
	}
	m.lastCount = count
	if count == 0 {
		return 0, false
	}
	return m.store.Get(m.key)
}

// Forget re-arms RestoreAfter, e.g. when the list is rebuilt from scratch.
func (m *Memory) Forget() {
	if m == nil {
		return
	}
	m.lastCount = -1
}
