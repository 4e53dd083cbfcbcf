package storage

import (
	"fmt"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// MemoryBackend keeps encoded documents in memory.
// Documents go through the same TOML encoding as FileBackend, so callers never share state with it.
type MemoryBackend struct {
	mu      sync.Mutex
	docs    map[string][]byte
	saveErr error
	saves   int
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{docs: make(map[string][]byte)}
}

func (b *MemoryBackend) Load(path string, v any) error {
	b.mu.Lock()
	data, ok := b.docs[path]
	b.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	if err := toml.Unmarshal(data, v); err != nil {
		return &CorruptError{Path: path, Err: err}
	}
	return nil
}

func (b *MemoryBackend) Save(path string, v any) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.saveErr != nil {
		return fmt.Errorf("storage: save %s: %w", path, b.saveErr)
	}

	data, err := toml.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", path, err)
	}
	b.docs[path] = data
	b.saves++
	return nil
}

// FailSaves makes every following Save return err. A nil err restores normal saves.
func (b *MemoryBackend) FailSaves(err error) {
	b.mu.Lock()
	b.saveErr = err
	b.mu.Unlock()
}

// Put stores raw document bytes at path
func (b *MemoryBackend) Put(path string, data []byte) {
	b.mu.Lock()
	b.docs[path] = append([]byte(nil), data...)
	b.mu.Unlock()
}

// Saves returns the number of successful saves
func (b *MemoryBackend) Saves() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.saves
}

func (b *MemoryBackend) Status() (string, bool) {
	return "🟡 | Memoria (sin persistencia)", true
}
