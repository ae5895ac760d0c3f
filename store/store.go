package store

// Entity is anything that can report the key it is stored under.
type Entity[K comparable] interface {
	GetID() K
}

// Sortable values carry their own total order. Compare returns a negative
// number when the receiver sorts before other, zero when they rank equal and a
// positive number otherwise.
type Sortable[V any] interface {
	Compare(other V) int
}

type SortableEntity[K comparable, V any] interface {
	Entity[K]
	Sortable[V]
}

// Cloner is implemented by entities holding slices, maps or pointers. Stores
// call Clone on the way in and on the way out so callers never share memory
// with stored state.
type Cloner[V any] interface {
	Clone() V
}

type Creator[V any] interface {
	Save(entity V) error
}

type Reader[K comparable, V any] interface {
	FindByID(id K) (V, error)
}

type PageReader[V any] interface {
	FindAllWithPage(page Page) ([]V, error)
	FindAllWithPageAndSort(page Page, sort Sort) ([]V, error)
}

type Updater[V any] interface {
	Update(entity V) error
}

type Deleter[K comparable, V any] interface {
	RemoveByID(id K) error
	Remove(entity V) error
}

// Crud is the full create/read/update/delete surface.
type Crud[K comparable, V any] interface {
	Creator[V]
	Reader[K, V]
	PageReader[V]
	Updater[V]
	Deleter[K, V]
}

type Counter interface {
	Count() (int, error)
}

// Store is what the API and CLI work against.
type Store[K comparable, V any] interface {
	Crud[K, V]
	Counter
}

// clone accepts Clone on either a value or a pointer receiver.
func clone[V any](v V) V {
	if c, ok := any(v).(Cloner[V]); ok {
		return c.Clone()
	}
	if c, ok := any(&v).(Cloner[V]); ok {
		return c.Clone()
	}
	return v
}
