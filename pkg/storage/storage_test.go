package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testDoc struct {
	Name  string   `toml:"name"`
	Count int      `toml:"count"`
	Tags  []string `toml:"tags"`
}

func TestFileBackendRoundTrip(t *testing.T) {
	b := NewFileBackend(t.TempDir())

	in := testDoc{Name: "guild", Count: 3, Tags: []string{"a", "b"}}
	require.NoError(t, b.Save("nested/dir/doc.toml", &in))

	out, err := Load[testDoc](b, "nested/dir/doc.toml")
	require.NoError(t, err)
	assert.Equal(t, in, *out)
}

func TestFileBackendNotFound(t *testing.T) {
	b := NewFileBackend(t.TempDir())

	var doc testDoc
	err := b.Load("missing.toml", &doc)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, IsCorrupt(err))
}

func TestFileBackendCorrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.toml"), []byte("name = [unterminated"), 0644))

	b := NewFileBackend(dir)
	var doc testDoc
	err := b.Load("bad.toml", &doc)
	require.Error(t, err)
	assert.True(t, IsCorrupt(err))
	assert.False(t, errors.Is(err, ErrNotFound), "corrupt and missing must stay distinct")

	var ce *CorruptError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, filepath.Join(dir, "bad.toml"), ce.Path)
}

func TestFileBackendOverwritesWholeDocument(t *testing.T) {
	dir := t.TempDir()
	b := NewFileBackend(dir)

	require.NoError(t, b.Save("doc.toml", &testDoc{Name: "first", Tags: []string{"x", "y", "z"}}))
	require.NoError(t, b.Save("doc.toml", &testDoc{Name: "second", Tags: []string{"x"}}))

	out, err := Load[testDoc](b, "doc.toml")
	require.NoError(t, err)
	assert.Equal(t, "second", out.Name)
	assert.Equal(t, []string{"x"}, out.Tags)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestFileBackendAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	b := NewFileBackend("/should/not/be/used")

	path := filepath.Join(dir, "abs.toml")
	require.NoError(t, b.Save(path, &testDoc{Name: "abs"}))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestMemoryBackend(t *testing.T) {
	b := NewMemoryBackend()

	var doc testDoc
	assert.ErrorIs(t, b.Load("doc", &doc), ErrNotFound)

	require.NoError(t, b.Save("doc", &testDoc{Name: "mem", Count: 1}))
	assert.Equal(t, 1, b.Saves())

	out, err := Load[testDoc](b, "doc")
	require.NoError(t, err)
	assert.Equal(t, "mem", out.Name)

	boom := errors.New("disk full")
	b.FailSaves(boom)
	assert.ErrorIs(t, b.Save("doc", &testDoc{Name: "lost"}), boom)

	out, err = Load[testDoc](b, "doc")
	require.NoError(t, err)
	assert.Equal(t, "mem", out.Name, "failed save must not replace the document")

	b.Put("bad", []byte("= nope"))
	assert.True(t, IsCorrupt(b.Load("bad", &doc)))
}

func TestStatus(t *testing.T) {
	_, ok := Status(NewFileBackend(""))
	assert.True(t, ok)
}
