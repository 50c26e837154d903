package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const saveExt = ".sav"

// Dir is a KeyValueStore that keeps each key in its own save file
// inside a directory.
//
// Values are written to a temporary file which is then renamed over
// the save file, so a crash mid-write never leaves a corrupted save.
type Dir struct {
	path string
}

// NewDir returns a store backed by the directory at path, creating
// it if it doesn't exist.
func NewDir(path string) (*Dir, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, err
	}
	return &Dir{path: path}, nil
}

// Path returns the path of the save file for key.
func (d *Dir) Path(key string) string {
	return filepath.Join(d.path, sanitize(key)+saveExt)
}

// Get reads the save file for key.
func (d *Dir) Get(key string) ([]byte, error) {
	b, err := os.ReadFile(d.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return b, err
}

// Set replaces the save file for key.
func (d *Dir) Set(key string, value []byte) error {
	f, err := os.CreateTemp(d.path, fmt.Sprintf("%s.*", sanitize(key)))
	if err != nil {
		return err
	}
	if _, err := f.Write(value); err != nil {
		f.Close()
		os.Remove(f.Name())
		return fmt.Errorf("failed to write to temporary save file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}
	return os.Rename(f.Name(), d.Path(key))
}

// Keys returns the keys of every save file in the directory, the
// most recently modified first.
func (d *Dir) Keys() ([]string, error) {
	files, err := os.ReadDir(d.path)
	if err != nil {
		return nil, err
	}

	type save struct {
		key  string
		info fs.FileInfo
	}
	saves := make([]save, 0, len(files))
	for _, file := range files {
		if file.IsDir() || !isSaveFile(file.Name()) {
			continue
		}
		info, err := file.Info()
		if err != nil {
			return nil, err
		}
		saves = append(saves, save{strings.TrimSuffix(file.Name(), saveExt), info})
	}

	sort.SliceStable(saves, func(i, j int) bool {
		return saves[i].info.ModTime().After(saves[j].info.ModTime())
	})

	keys := make([]string, len(saves))
	for i, s := range saves {
		keys[i] = s.key
	}
	return keys, nil
}

// sanitize makes key safe to use as a file name.
func sanitize(key string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', 0:
			return '_'
		}
		return r
	}, key)
}

func isSaveFile(filename string) bool {
	return strings.HasSuffix(filename, saveExt)
}
