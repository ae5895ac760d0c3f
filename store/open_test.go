package store_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kvcrud/store"
)

func TestOpen_Memory(t *testing.T) {
	s, closeFn, err := store.Open[uint32, myData](store.Options[myData]{
		Type: store.Memory,
		Seed: []myData{{ID: 1, Data: 1}, {ID: 2, Data: 2}},
	})
	require.NoError(t, err)
	defer closeFn()

	count, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestOpen_PersistentSurvivesReopen(t *testing.T) {
	opts := store.Options[myData]{
		Type:   store.Persistent,
		Path:   filepath.Join(t.TempDir(), "reopen.db"),
		Bucket: "data",
	}

	s, closeFn, err := store.Open[uint32, myData](opts)
	require.NoError(t, err)
	require.NoError(t, s.Save(myData{ID: 4, Data: 2}))
	require.NoError(t, closeFn())

	s, closeFn, err = store.Open[uint32, myData](opts)
	require.NoError(t, err)
	defer closeFn()

	got, err := s.FindByID(4)
	require.NoError(t, err)
	assert.Equal(t, myData{ID: 4, Data: 2}, got)
}

func TestOpen_UnknownType(t *testing.T) {
	_, _, err := store.Open[uint32, myData](store.Options[myData]{Type: "etcd"})

	assert.ErrorIs(t, err, store.ErrUnknownType)
}

func TestNewPersistentStore_BadPath(t *testing.T) {
	_, err := store.NewPersistentStore[uint32, myData](
		filepath.Join(t.TempDir(), "missing", "dir", "x.db"), 0600, "data")

	var se *store.StoreError
	assert.ErrorAs(t, err, &se)
}
