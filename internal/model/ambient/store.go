package ambient

// Store exposes category retrieval for HTTP handlers.
type Store interface {
	List() []Category
	FindByID(id string) (Category, bool)
}

// MemoryStore implements Store with an in-memory slice.
type MemoryStore struct {
	items []Category
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied categories.
func NewMemoryStore(items []Category) *MemoryStore {
	return &MemoryStore{items: append([]Category(nil), items...)}
}

// List returns the predefined category list.
func (s *MemoryStore) List() []Category {
	return append([]Category(nil), s.items...)
}

// FindByID looks up a category by identifier.
func (s *MemoryStore) FindByID(id string) (Category, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Category{}, false
}
