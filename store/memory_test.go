package store

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   int
	Tags []string
}

func (i item) GetID() int {
	return i.ID
}

func (i item) Clone() item {
	i.Tags = slices.Clone(i.Tags)
	return i
}

func TestInMemoryStore_SaveStoresCopy(t *testing.T) {
	s := NewInMemoryStore[int, item]()
	in := item{ID: 8, Tags: []string{"a"}}

	require.NoError(t, s.Save(in))
	in.Tags[0] = "mutated"

	assert.Equal(t, []string{"a"}, s.db[8].Tags)
}

func TestInMemoryStore_FindReturnsCopy(t *testing.T) {
	s := NewInMemoryStore[int, item](item{ID: 1, Tags: []string{"a"}})

	out, err := s.FindByID(1)
	require.NoError(t, err)
	out.Tags[0] = "mutated"

	again, err := s.FindByID(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, again.Tags)
}

func TestInMemoryStore_SeedSingle(t *testing.T) {
	s := NewInMemoryStore[int, item](item{ID: 1})

	assert.Len(t, s.db, 1)
	assert.Contains(t, s.db, 1)
}

func TestInMemoryStore_SeedLaterDuplicatesWin(t *testing.T) {
	s := NewInMemoryStore[int, item](
		item{ID: 1, Tags: []string{"first"}},
		item{ID: 2},
		item{ID: 1, Tags: []string{"second"}},
	)

	count, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, []string{"second"}, s.db[1].Tags)
}

func TestInMemoryStore_Empty(t *testing.T) {
	s := NewInMemoryStore[int, item]()

	assert.Empty(t, s.db)

	_, err := s.FindByID(123)
	var nf *EntityNotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "123", nf.EntityID)
}

func TestInMemoryStore_RemoveEntity(t *testing.T) {
	entity := item{ID: 1}
	s := NewInMemoryStore[int, item](entity)

	require.NoError(t, s.Remove(entity))

	assert.Empty(t, s.db)
}

// pitem declares Clone on the pointer receiver.
type pitem struct {
	ID   int
	Tags []string
}

func (p pitem) GetID() int {
	return p.ID
}

func (p *pitem) Clone() pitem {
	return pitem{ID: p.ID, Tags: slices.Clone(p.Tags)}
}

func TestInMemoryStore_PointerReceiverClone(t *testing.T) {
	s := NewInMemoryStore[int, pitem]()
	in := pitem{ID: 1, Tags: []string{"a"}}

	require.NoError(t, s.Save(in))
	in.Tags[0] = "mutated"

	got, err := s.FindByID(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, got.Tags)

	got.Tags[0] = "changed"
	assert.Equal(t, []string{"a"}, s.db[1].Tags)
}

// sitem is an item with a total order, for listing.
type sitem struct {
	ID   int
	Tags []string
}

func (i sitem) GetID() int {
	return i.ID
}

func (i sitem) Compare(other sitem) int {
	return i.ID - other.ID
}

func (i sitem) Clone() sitem {
	i.Tags = slices.Clone(i.Tags)
	return i
}

func TestSortedInMemoryStore_ListingReturnsCopies(t *testing.T) {
	s := NewSortedInMemoryStore[int, sitem](
		sitem{ID: 1, Tags: []string{"a"}},
		sitem{ID: 2, Tags: []string{"b"}},
	)

	listed, err := s.FindAllWithPage(NewPage(0, 10))
	require.NoError(t, err)
	require.Len(t, listed, 2)
	listed[0].Tags[0] = "mutated"

	assert.Equal(t, []string{"a"}, s.db[1].Tags)

	again, err := s.FindAllWithPage(NewPage(0, 10))
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, again[0].Tags)
}
