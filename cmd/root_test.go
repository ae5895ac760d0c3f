package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kvcrud/record"
	"kvcrud/store"
)

func run(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"--db", db}, args...))

	err := root.Execute()
	return out.String(), err
}

func TestPutGetDelete(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	out, err := run(t, db, "put", "--id", "k1", "--value", "hello", "--tag", "a", "--tag", "b")
	require.NoError(t, err)
	assert.Equal(t, "k1\n", out)

	out, err = run(t, db, "get", "k1")
	require.NoError(t, err)
	var rec record.Record
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "hello", rec.Value)
	assert.Equal(t, []string{"a", "b"}, rec.Tags)

	_, err = run(t, db, "delete", "k1")
	require.NoError(t, err)
	_, err = run(t, db, "delete", "k1")
	require.NoError(t, err)

	_, err = run(t, db, "get", "k1")
	assert.True(t, store.IsNotFound(err))
}

func TestPutGeneratesID(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	out, err := run(t, db, "put", "--value", "x")
	require.NoError(t, err)

	id := strings.TrimSpace(out)
	assert.NotEmpty(t, id)

	_, err = run(t, db, "get", id)
	assert.NoError(t, err)
}

func TestUpdateCreatesAbsent(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	_, err := run(t, db, "update", "k9", "--value", "v1")
	require.NoError(t, err)
	_, err = run(t, db, "update", "k9", "--value", "v2")
	require.NoError(t, err)

	out, err := run(t, db, "get", "k9")
	require.NoError(t, err)
	assert.Contains(t, out, `"value": "v2"`)

	out, err = run(t, db, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "records: 1")
	assert.Contains(t, out, "file:")
}

func TestLoadAndList(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "cli.db")
	seed := filepath.Join(dir, "records.json")
	require.NoError(t, os.WriteFile(seed, []byte(`[
		{"id": "a", "value": "first", "created": "2024-01-01T00:00:00Z"},
		{"id": "b", "value": "second", "created": "2024-01-02T00:00:00Z"},
		{"id": "c", "value": "third", "created": "2024-01-03T00:00:00Z"}
	]`), 0600))

	out, err := run(t, db, "load", "-f", seed)
	require.NoError(t, err)
	assert.Equal(t, "loaded 3 records\n", out)

	out, err = run(t, db, "list", "--page", "0", "--size", "2", "--sort", "desc")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.True(t, strings.HasPrefix(lines[1], "c"))
	assert.True(t, strings.HasPrefix(lines[2], "b"))
}

func TestLoadMissingFile(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	_, err := run(t, db, "load", "-f", filepath.Join(t.TempDir(), "none.json"))
	assert.Error(t, err)
}

func TestListBadSort(t *testing.T) {
	db := filepath.Join(t.TempDir(), "cli.db")

	_, err := run(t, db, "list", "--sort", "sideways")
	assert.ErrorIs(t, err, store.ErrInvalidSort)
}

func TestMemoryBackendStats(t *testing.T) {
	out, err := run(t, filepath.Join(t.TempDir(), "unused.db"), "--backend", "memory", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "backend: memory")
	assert.Contains(t, out, "records: 0")
	assert.NotContains(t, out, "file:")
}

func TestInvalidBackendFlag(t *testing.T) {
	_, err := run(t, filepath.Join(t.TempDir(), "x.db"), "--backend", "etcd", "stats")
	assert.Error(t, err)
}

func TestCloseStoreReportsCloseError(t *testing.T) {
	closeErr := errors.New("sync failed")

	var err error
	closeStore(func() error { return closeErr }, &err)
	assert.ErrorIs(t, err, closeErr)

	earlier := errors.New("put failed")
	err = earlier
	closeStore(func() error { return closeErr }, &err)
	assert.Same(t, earlier, err)

	err = nil
	closeStore(func() error { return nil }, &err)
	assert.NoError(t, err)
}
