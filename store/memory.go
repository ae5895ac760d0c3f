package store

import (
	"fmt"
	"slices"
	"strings"
)

// InMemoryStore keeps entities in a plain map. It holds no lock; callers
// sharing one between goroutines must serialise access themselves.
type InMemoryStore[K comparable, V Entity[K]] struct {
	db map[K]V
}

// NewInMemoryStore returns a store holding the given seed entities, saved in
// order so later duplicates win.
func NewInMemoryStore[K comparable, V Entity[K]](seed ...V) *InMemoryStore[K, V] {
	s := &InMemoryStore[K, V]{
		db: make(map[K]V, len(seed)),
	}

	for _, v := range seed {
		if err := s.Save(v); err != nil {
			panic(fmt.Sprintf("seeding in-memory store: %v", err))
		}
	}

	return s
}

func (s *InMemoryStore[K, V]) Count() (int, error) {
	return len(s.db), nil
}

func (s *InMemoryStore[K, V]) Save(entity V) error {
	s.db[entity.GetID()] = clone(entity)
	return nil
}

func (s *InMemoryStore[K, V]) FindByID(id K) (v V, err error) {

	v, ok := s.db[id]
	if !ok {
		return v, notFound(id)
	}

	return clone(v), nil
}

// Update has the same upsert semantics as Save.
func (s *InMemoryStore[K, V]) Update(entity V) error {
	return s.Save(entity)
}

func (s *InMemoryStore[K, V]) RemoveByID(id K) error {
	delete(s.db, id)
	return nil
}

func (s *InMemoryStore[K, V]) Remove(entity V) error {
	return s.RemoveByID(entity.GetID())
}

// SortedInMemoryStore adds paginated listing for entities with a total order.
type SortedInMemoryStore[K comparable, V SortableEntity[K, V]] struct {
	*InMemoryStore[K, V]
}

func NewSortedInMemoryStore[K comparable, V SortableEntity[K, V]](seed ...V) *SortedInMemoryStore[K, V] {
	return &SortedInMemoryStore[K, V]{
		InMemoryStore: NewInMemoryStore[K, V](seed...),
	}
}

func (s *SortedInMemoryStore[K, V]) FindAllWithPage(page Page) ([]V, error) {
	return s.FindAllWithPageAndSort(page, Ascending)
}

func (s *SortedInMemoryStore[K, V]) FindAllWithPageAndSort(page Page, sort Sort) ([]V, error) {
	entries := make([]entry[V], 0, len(s.db))
	for k, v := range s.db {
		entries = append(entries, entry[V]{key: keyText(k), value: clone(v)})
	}

	slices.SortFunc(entries, func(a, b entry[V]) int {
		return strings.Compare(a.key, b.key)
	})

	return window(entries, page, sort), nil
}
