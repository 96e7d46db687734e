package storage

import (
	"sync"

	"go.uber.org/zap"
)

// MemoryBackend is a map-backed Backend. It is used in tests and as the
// degraded mode of Resilient.
type MemoryBackend struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory returns an empty MemoryBackend.
func NewMemory() *MemoryBackend {
	return &MemoryBackend{data: make(map[string][]byte)}
}

func (m *MemoryBackend) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryBackend) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryBackend) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryBackend) Close() error { return nil }

// Resilient writes through to a primary backend until the first write
// failure, then keeps working from memory only. Reads prefer the in-memory
// copy once degraded.
type Resilient struct {
	mu       sync.Mutex
	primary  Backend
	memory   *MemoryBackend
	degraded bool
	log      *zap.Logger
}

// NewResilient wraps primary.
func NewResilient(primary Backend, log *zap.Logger) *Resilient {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resilient{primary: primary, memory: NewMemory(), log: log}
}

// Degraded reports whether writes are no longer reaching the primary backend.
func (r *Resilient) Degraded() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.degraded
}

func (r *Resilient) Get(key string) ([]byte, error) {
	r.mu.Lock()
	degraded := r.degraded
	r.mu.Unlock()

	if degraded {
		return r.memory.Get(key)
	}
	return r.primary.Get(key)
}

func (r *Resilient) Put(key string, value []byte) error {
	_ = r.memory.Put(key, value)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.degraded {
		return nil
	}
	if err := r.primary.Put(key, value); err != nil {
		r.degraded = true
		r.log.Error("persistent storage write failed, continuing in memory", zap.String("key", key), zap.Error(err))
		r.seedMemory(key)
	}
	return nil
}

func (r *Resilient) Delete(key string) error {
	_ = r.memory.Delete(key)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.degraded {
		return nil
	}
	if err := r.primary.Delete(key); err != nil {
		r.degraded = true
		r.log.Error("persistent storage delete failed, continuing in memory", zap.String("key", key), zap.Error(err))
		r.seedMemory(key)
	}
	return nil
}

func (r *Resilient) Close() error {
	return r.primary.Close()
}

// seedMemory copies the other named entries from primary so reads keep
// working after degradation. Caller holds r.mu.
func (r *Resilient) seedMemory(skip string) {
	for _, key := range []string{KeyEvents, KeyTasks, KeyUser, KeyUsers} {
		if key == skip {
			continue
		}
		if _, err := r.memory.Get(key); err == nil {
			continue
		}
		if v, err := r.primary.Get(key); err == nil {
			_ = r.memory.Put(key, v)
		}
	}
}
