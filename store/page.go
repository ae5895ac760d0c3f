package store

import (
	"math"
	"slices"
	"strings"
)

// Page selects one window of a listing. Number is zero based and the window
// starts at Number*Size, unless Start is set, in which case the window starts
// at that item and Number is ignored.
type Page struct {
	Number int `json:"page"`
	Size   int `json:"size"`
	Start  int `json:"offset,omitempty"`
}

func NewPage(number, size int) Page {
	return Page{Number: number, Size: size}
}

// NewPageAt returns a window of size items starting at offset, which need
// not be a multiple of size.
func NewPageAt(offset, size int) Page {
	return Page{Size: size, Start: offset}
}

// Offset is the number of items skipped before the window starts.
func (p Page) Offset() int {
	if p.Start > 0 {
		return p.Start
	}
	if p.Number <= 0 || p.Size <= 0 {
		return 0
	}
	if p.Number > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Number * p.Size
}

type Sort int

const (
	Ascending Sort = iota
	Descending
)

func (s Sort) String() string {

	var str string
	switch s {
	case Ascending:
		str = "ASC"
	case Descending:
		str = "DESC"
	}

	return str
}

// ParseSort reads a direction from user input. An empty string means
// Ascending.
func ParseSort(s string) (Sort, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return Ascending, ErrInvalidSort
}

// entry pairs a value with its key text so ties can be broken by key.
type entry[V any] struct {
	key   string
	value V
}

// window orders entries by V's total order and cuts out the requested page.
// Entries must arrive ordered by key text; the stable sort keeps that order
// among values that compare equal.
func window[V Sortable[V]](entries []entry[V], page Page, sort Sort) []V {
	slices.SortStableFunc(entries, func(a, b entry[V]) int {
		return a.value.Compare(b.value)
	})
	if sort == Descending {
		slices.Reverse(entries)
	}

	offset := page.Offset()
	if page.Size <= 0 || offset >= len(entries) {
		return []V{}
	}

	end := offset + min(page.Size, len(entries)-offset)
	values := make([]V, 0, end-offset)
	for _, e := range entries[offset:end] {
		values = append(values, e.value)
	}

	return values
}
