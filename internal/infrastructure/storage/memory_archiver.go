package storage

import (
	"context"
	"fmt"
	"sync"
)

// MemoryArchiver archivador en memoria para desarrollo y tests.
type MemoryArchiver struct {
	mu      sync.RWMutex
	objects map[string]memObject
}

type memObject struct {
	contentType string
	data        []byte
}

func NewMemoryArchiver() *MemoryArchiver {
	return &MemoryArchiver{objects: make(map[string]memObject)}
}

func (a *MemoryArchiver) Archive(_ context.Context, key, contentType string, data []byte) (string, error) {
	k, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.objects[k]; ok {
		return "", fmt.Errorf("%w: %s", ErrExists, k)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	a.objects[k] = memObject{contentType: contentType, data: cp}
	return "mem://" + k, nil
}

// Get devuelve una copia del objeto archivado.
func (a *MemoryArchiver) Get(key string) ([]byte, string, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	o, ok := a.objects[key]
	if !ok {
		return nil, "", false
	}
	cp := make([]byte, len(o.data))
	copy(cp, o.data)
	return cp, o.contentType, true
}

func (a *MemoryArchiver) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.objects)
}
