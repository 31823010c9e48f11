package cache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// LastTranslationFile is the file name used in temp directory
const LastTranslationFile = "last_translation.txt"

// FileCache keeps last translation in a plain file
type FileCache struct {
	path string
}

// Save writes translation to file
func (c FileCache) Save(text string) error {
	if err := os.WriteFile(c.path, []byte(text), 0644); err != nil {
		return fmt.Errorf("write last translation: %w", err)
	}
	return nil
}

// Load reads translation from file
func (c FileCache) Load() (string, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("read last translation: %w", err)
	}
	return string(data), nil
}

// Path returns file path
func (c FileCache) Path() string {
	return c.path
}

// NewFileCache creates cache in given directory, empty dir means OS temp directory
func NewFileCache(dir string) FileCache {
	if dir == "" {
		dir = os.TempDir()
	}
	return FileCache{path: filepath.Join(dir, LastTranslationFile)}
}
