package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// FileBackend stores each document as a TOML file.
// Paths are used as given; relative paths resolve against Root when it is set.
type FileBackend struct {
	Root string
}

// NewFileBackend creates a FileBackend rooted at root
func NewFileBackend(root string) *FileBackend {
	return &FileBackend{Root: root}
}

func (b *FileBackend) resolve(path string) string {
	if b.Root == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(b.Root, path)
}

// Load reads and decodes the TOML document at path
func (b *FileBackend) Load(path string, v any) error {
	full := b.resolve(path)

	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return &CorruptError{Path: full, Err: err}
	}

	if err := toml.Unmarshal(data, v); err != nil {
		return &CorruptError{Path: full, Err: err}
	}
	return nil
}

// Save encodes v and replaces the document at path, creating parent directories.
// The data goes to a temporary file first, which is then renamed over the target.
func (b *FileBackend) Save(path string, v any) error {
	full := b.resolve(path)

	data, err := toml.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: encode %s: %w", full, err)
	}

	dir := filepath.Dir(full)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("storage: save %s: %w", full, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(full)+".*.tmp")
	if err != nil {
		return fmt.Errorf("storage: save %s: %w", full, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("storage: save %s: %w", full, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("storage: save %s: %w", full, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: save %s: %w", full, err)
	}

	if err := os.Rename(tmpName, full); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: save %s: %w", full, err)
	}
	return nil
}

// Status reports the file backend as always available
func (b *FileBackend) Status() (string, bool) {
	return "🟢 | Archivos locales", true
}
