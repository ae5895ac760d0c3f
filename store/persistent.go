package store

import (
	"encoding/json"
	"fmt"
	"os"

	"go.etcd.io/bbolt"
)

// PersistentStore keeps JSON-encoded entities in a single bbolt bucket, keyed
// by the text form of their id. Only what encoding/json writes survives a
// round trip: unexported fields and fields tagged "-" come back as zero
// values, unlike with InMemoryStore.
type PersistentStore[K comparable, V Entity[K]] struct {
	Db       *bbolt.DB
	DbFile   string
	FileMode os.FileMode
	Bucket   string
}

func NewPersistentStore[K comparable, V Entity[K]](file string, mode os.FileMode, bucket string) (*PersistentStore[K, V], error) {

	db, err := bbolt.Open(file, mode, nil)
	if err != nil {
		return nil, &StoreError{Operation: "open " + file, Err: err}
	}

	p := &PersistentStore[K, V]{
		Db:       db,
		DbFile:   file,
		FileMode: mode,
		Bucket:   bucket,
	}

	if err := p.createBucket(); err != nil {
		db.Close()
		return nil, &StoreError{Operation: "create bucket " + bucket, Err: err}
	}

	return p, nil
}

func (p *PersistentStore[K, V]) createBucket() error {
	return p.Db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(p.Bucket))
		return err
	})
}

func (p *PersistentStore[K, V]) Close() error {
	return p.Db.Close()
}

func (p *PersistentStore[K, V]) Count() (int, error) {
	count := 0

	err := p.Db.View(func(tx *bbolt.Tx) error {
		count = tx.Bucket([]byte(p.Bucket)).Stats().KeyN
		return nil
	})

	if err != nil {
		return -1, &StoreError{Operation: "count", Err: err}
	}

	return count, nil
}

func (p *PersistentStore[K, V]) Save(entity V) error {
	id := keyText(entity.GetID())

	buf, err := json.Marshal(entity)
	if err != nil {
		return &StoreError{Operation: "encode", EntityID: id, Err: err}
	}

	err = p.Db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(p.Bucket)).Put([]byte(id), buf)
	})
	if err != nil {
		return &StoreError{Operation: "save", EntityID: id, Err: err}
	}

	return nil
}

func (p *PersistentStore[K, V]) FindByID(id K) (v V, err error) {
	key := keyText(id)

	err = p.Db.View(func(tx *bbolt.Tx) error {

		buf := tx.Bucket([]byte(p.Bucket)).Get([]byte(key))
		if buf == nil {
			return notFound(id)
		}

		if err := json.Unmarshal(buf, &v); err != nil {
			return &StoreError{Operation: "decode", EntityID: key, Err: err}
		}

		return nil
	})

	return
}

// Update has the same upsert semantics as Save.
func (p *PersistentStore[K, V]) Update(entity V) error {
	return p.Save(entity)
}

// RemoveByID succeeds whether or not the key exists.
func (p *PersistentStore[K, V]) RemoveByID(id K) error {
	key := keyText(id)

	err := p.Db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(p.Bucket)).Delete([]byte(key))
	})
	if err != nil {
		return &StoreError{Operation: "remove", EntityID: key, Err: err}
	}

	return nil
}

func (p *PersistentStore[K, V]) Remove(entity V) error {
	return p.RemoveByID(entity.GetID())
}

// SortedPersistentStore adds paginated listing for entities with a total
// order. Listing decodes the whole bucket.
type SortedPersistentStore[K comparable, V SortableEntity[K, V]] struct {
	*PersistentStore[K, V]
}

func NewSortedPersistentStore[K comparable, V SortableEntity[K, V]](file string, mode os.FileMode, bucket string) (*SortedPersistentStore[K, V], error) {
	p, err := NewPersistentStore[K, V](file, mode, bucket)
	if err != nil {
		return nil, err
	}
	return &SortedPersistentStore[K, V]{PersistentStore: p}, nil
}

func (p *SortedPersistentStore[K, V]) FindAllWithPage(page Page) ([]V, error) {
	return p.FindAllWithPageAndSort(page, Ascending)
}

func (p *SortedPersistentStore[K, V]) FindAllWithPageAndSort(page Page, sort Sort) ([]V, error) {
	var entries []entry[V]

	// bbolt iterates in byte order, which already is key text order.
	err := p.Db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(p.Bucket)).ForEach(func(k, buf []byte) error {

			var v V
			if err := json.Unmarshal(buf, &v); err != nil {
				return fmt.Errorf("key %s: %w", k, err)
			}

			entries = append(entries, entry[V]{key: string(k), value: v})
			return nil
		})
	})
	if err != nil {
		return nil, &StoreError{Operation: "list", Err: err}
	}

	return window(entries, page, sort), nil
}
