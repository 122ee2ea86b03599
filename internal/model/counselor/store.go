package counselor

// Store exposes counselor retrieval for HTTP handlers and booking validation.
type Store interface {
	List() []Counselor
	FindByID(id string) (Counselor, bool)
}

// MemoryStore implements Store with an in-memory slice loaded from content.
type MemoryStore struct {
	items []Counselor
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied counselors.
func NewMemoryStore(items []Counselor) *MemoryStore {
	return &MemoryStore{items: append([]Counselor(nil), items...)}
}

// List returns the counselors in catalog order.
func (s *MemoryStore) List() []Counselor {
	return append([]Counselor(nil), s.items...)
}

// FindByID looks up a counselor by identifier.
func (s *MemoryStore) FindByID(id string) (Counselor, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Counselor{}, false
}
