package database

type mockStore struct{}

func NewMockStore() Store {
	return &mockStore{}
}

func (m *mockStore) SaveScreeningEntry(entry *ScreeningEntry) error {
	return nil
}
