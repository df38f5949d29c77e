// Package loader reads cartridge images from disk, unpacking the archive
// formats ROMs are commonly distributed in, and persists battery RAM.
package loader

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bodgit/sevenzip"
)

// ErrNoROM is returned when an archive holds no file that looks like a ROM.
var ErrNoROM = errors.New("archive contains no ROM")

var romExtensions = []string{".gb", ".gbc", ".sgb", ".bin"}

// Load reads the file at path and returns the raw ROM image. Files ending in
// .gz, .zip or .7z are decompressed; anything else is returned as is.
func Load(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ROM: %w", err)
	}

	rom, err := Decode(filepath.Base(path), data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	slog.Debug("Read ROM file", "path", path, "size", len(data), "rom_size", len(rom))
	return rom, nil
}

// Decode unpacks data according to the extension of name.
func Decode(name string, data []byte) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		defer r.Close()
		return io.ReadAll(r)

	case ".zip":
		zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("opening zip archive: %w", err)
		}
		entries := make([]entry, 0, len(zr.File))
		for _, f := range zr.File {
			entries = append(entries, entry{name: f.Name, dir: f.FileInfo().IsDir(), open: f.Open})
		}
		return readEntry(entries)

	case ".7z":
		sr, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, fmt.Errorf("opening 7z archive: %w", err)
		}
		entries := make([]entry, 0, len(sr.File))
		for _, f := range sr.File {
			entries = append(entries, entry{name: f.Name, dir: f.FileInfo().IsDir(), open: f.Open})
		}
		return readEntry(entries)
	}

	return data, nil
}

// entry is a file inside an archive, independent of the archive format.
type entry struct {
	name string
	dir  bool
	open func() (io.ReadCloser, error)
}

// readEntry picks the first entry with a ROM extension, falling back to the
// first regular file, and reads it whole.
func readEntry(entries []entry) ([]byte, error) {
	var chosen *entry
	for i := range entries {
		e := &entries[i]
		if e.dir {
			continue
		}
		if slices.Contains(romExtensions, strings.ToLower(filepath.Ext(e.name))) {
			chosen = e
			break
		}
		if chosen == nil {
			chosen = e
		}
	}
	if chosen == nil {
		return nil, ErrNoROM
	}

	rc, err := chosen.open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", chosen.name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", chosen.name, err)
	}
	return data, nil
}

// SavePath returns the battery file path for a ROM, which sits next to it
// with a .sav extension.
func SavePath(romPath string) string {
	return strings.TrimSuffix(romPath, filepath.Ext(romPath)) + ".sav"
}

// LoadSave reads a battery file. A missing file is not an error and yields
// nil data.
func LoadSave(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading save: %w", err)
	}
	return data, nil
}

// WriteSave stores battery RAM, replacing any previous file only once the new
// contents are fully written.
func WriteSave(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("writing save: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing save: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("writing save: %w", err)
	}

	slog.Info("Saved battery RAM", "path", path, "size", len(data))
	return nil
}
