package auth

import (
	"context"
	"sync"
)

// MemoryStore keeps sessions in a process local map. Sessions are gone
// after a restart, and multiple server instances do not share them -
// both are fine for a single instance, single admin deployment.
type MemoryStore struct {
	mutex    sync.Mutex
	sessions map[string]SessionRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]SessionRecord),
	}
}

func (ms *MemoryStore) Get(_ context.Context, token string) (SessionRecord, bool, error) {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	record, found := ms.sessions[token]
	return record, found, nil
}

func (ms *MemoryStore) Set(_ context.Context, token string, record SessionRecord) error {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	ms.sessions[token] = record
	return nil
}

func (ms *MemoryStore) Delete(_ context.Context, token string) error {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	delete(ms.sessions, token)
	return nil
}

func (ms *MemoryStore) Tokens(_ context.Context) ([]string, error) {
	ms.mutex.Lock()
	defer ms.mutex.Unlock()
	tokens := make([]string, 0, len(ms.sessions))
	for token := range ms.sessions {
		tokens = append(tokens, token)
	}
	return tokens, nil
}
