package resource

import "strings"

// Store exposes the resource catalog.
type Store interface {
	List(filter Filter) []Resource
	FindByID(id int) (Resource, bool)
	Categories() []string
}

// MemoryStore implements Store over a fixed slice.
type MemoryStore struct {
	items []Resource
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied resources.
func NewMemoryStore(items []Resource) *MemoryStore {
	return &MemoryStore{items: append([]Resource(nil), items...)}
}

// List returns resources matching filter in catalog order.
func (s *MemoryStore) List(filter Filter) []Resource {
	out := make([]Resource, 0, len(s.items))
	for _, item := range s.items {
		if filter.Category != "" && !strings.EqualFold(item.Category, filter.Category) {
			continue
		}
		if filter.Type != "" && !strings.EqualFold(item.Type, filter.Type) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// FindByID looks up a resource by identifier.
func (s *MemoryStore) FindByID(id int) (Resource, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Resource{}, false
}

// Categories lists distinct categories in the order they first appear.
func (s *MemoryStore) Categories() []string {
	seen := make(map[string]struct{}, len(s.items))
	categories := make([]string, 0, len(s.items))
	for _, item := range s.items {
		if _, ok := seen[item.Category]; ok {
			continue
		}
		seen[item.Category] = struct{}{}
		categories = append(categories, item.Category)
	}
	return categories
}
