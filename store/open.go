package store

import (
	"fmt"
	"os"
)

type Type string

const (
	Memory     Type = "memory"
	Persistent Type = "persistent"
)

// Options selects and configures a backend for Open.
type Options[V any] struct {
	Type     Type
	Path     string
	FileMode os.FileMode
	Bucket   string
	// Seed is only applied to the memory backend.
	Seed []V
}

// Open builds the backend named by opts.Type. The returned func releases the
// backend's resources and is safe to call for every type.
func Open[K comparable, V SortableEntity[K, V]](opts Options[V]) (Store[K, V], func() error, error) {
	switch opts.Type {
	case Memory:
		return NewSortedInMemoryStore[K, V](opts.Seed...), func() error { return nil }, nil
	case Persistent:
		mode := opts.FileMode
		if mode == 0 {
			mode = 0600
		}
		p, err := NewSortedPersistentStore[K, V](opts.Path, mode, opts.Bucket)
		if err != nil {
			return nil, nil, err
		}
		return p, p.Close, nil
	}

	return nil, nil, fmt.Errorf("%w: %q", ErrUnknownType, opts.Type)
}
