package database

import (
	"sync"

	"github.com/google/uuid"
)

type memStore struct {
	Screenings map[uuid.UUID]*ScreeningEntry
	mutex      *sync.Mutex
}

func NewMemStore() *memStore {
	return &memStore{
		Screenings: make(map[uuid.UUID]*ScreeningEntry),
		mutex:      &sync.Mutex{},
	}
}

func (m *memStore) SaveScreeningEntry(entry *ScreeningEntry) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.Screenings[entry.Id] = entry
	return nil
}
