package inventory

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileStore is a Store saving each key as a <key>.jsonl file in a directory.
type FileStore struct {
	dir string
}

// NewFileStore returns a FileStore rooted in dir. The directory is created on first save.
func NewFileStore(dir string) *FileStore { return &FileStore{dir: dir} }

// Dir returns the directory of the store.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) path(key string) string { return filepath.Join(s.dir, key+".jsonl") }

// Load reads the file of key. A missing file returns an error wrapping fs.ErrNotExist.
func (s *FileStore) Load(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, fmt.Errorf("could not read collection file: %w", err)
	}
	return data, nil
}

// Save writes data to a temporary file then renames it over the file of key.
func (s *FileStore) Save(key string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("could not create store directory %q: %w", s.dir, err)
	}
	f, err := os.CreateTemp(s.dir, key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("could not create temporary file for %q: %w", key, err)
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("could not write %q: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("could not close %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("could not replace %q: %w", s.path(key), err)
	}
	return nil
}
