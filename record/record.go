// Package record defines the entity served by the kvcrud API and CLI.
package record

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/google/uuid"
)

type Record struct {
	ID      string    `json:"id"`
	Value   string    `json:"value"`
	Tags    []string  `json:"tags,omitempty"`
	Created time.Time `json:"created"`
}

// New returns a record with a fresh UUID, stamped with the current time.
func New(value string, tags ...string) Record {
	return Record{
		ID:      uuid.NewString(),
		Value:   value,
		Tags:    tags,
		Created: time.Now().UTC(),
	}
}

func (r Record) GetID() string {
	return r.ID
}

// Compare orders records by creation time, then id, then value.
func (r Record) Compare(other Record) int {
	return cmp.Or(
		r.Created.Compare(other.Created),
		cmp.Compare(r.ID, other.ID),
		cmp.Compare(r.Value, other.Value),
	)
}

func (r Record) Clone() Record {
	r.Tags = slices.Clone(r.Tags)
	return r
}

// Normalize fills in an id and creation time where they are missing.
func (r Record) Normalize() Record {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Created.IsZero() {
		r.Created = time.Now().UTC()
	}
	return r
}

// LoadSeed decodes a JSON array of records.
func LoadSeed(rd io.Reader) ([]Record, error) {
	var rs []Record

	d := json.NewDecoder(rd)
	d.DisallowUnknownFields()
	if err := d.Decode(&rs); err != nil {
		return nil, fmt.Errorf("decoding seed: %w", err)
	}

	for i := range rs {
		rs[i] = rs[i].Normalize()
	}

	return rs, nil
}
