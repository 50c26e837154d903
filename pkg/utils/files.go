// Package utils loads ROM images from disk, decompressing them
// when they are archived.
package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
)

// ErrEmptyArchive is returned when an archive holds no files.
var ErrEmptyArchive = errors.New("archive is empty")

// LoadFile loads the given file and performs decompression if necessary.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return Decompress(filename, data)
}

// Decompress returns the ROM held in data, picking the compression
// type from the extension of name. Archives return their first ROM,
// or their first file when none has a ROM extension. Anything else
// is returned as is.
func Decompress(name string, data []byte) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		decoder, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		defer decoder.Close()
		return io.ReadAll(decoder)
	case ".zip":
		r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		files := make([]archived, 0, len(r.File))
		for _, f := range r.File {
			if !f.FileInfo().IsDir() {
				files = append(files, archived{f.Name, f.Open})
			}
		}
		return readFirst(name, files)
	case ".7z":
		r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		files := make([]archived, 0, len(r.File))
		for _, f := range r.File {
			if !f.FileInfo().IsDir() {
				files = append(files, archived{f.Name, f.Open})
			}
		}
		return readFirst(name, files)
	}

	return data, nil
}

// archived is a file inside an archive.
type archived struct {
	name string
	open func() (io.ReadCloser, error)
}

func readFirst(archive string, files []archived) ([]byte, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("%s: %w", archive, ErrEmptyArchive)
	}

	file := files[0]
	for _, f := range files {
		if isROM(f.name) {
			file = f
			break
		}
	}

	rc, err := file.open()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", archive, err)
	}
	defer rc.Close()

	return io.ReadAll(rc)
}

func isROM(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gb", ".gbc":
		return true
	}
	return false
}
