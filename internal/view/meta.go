package view

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"gopkg.in/ini.v1"

	"github.com/LinusVanElswijk/mve/internal/filesystem"
)

// MetaFileName is the metadata file stored inside every view directory.
const MetaFileName = "meta.ini"

var (
	// ErrMetaMissing indicates that the view directory has no metadata file
	ErrMetaMissing = errors.New("view metadata file missing")

	// ErrMetaCorrupt indicates that the metadata file could not be parsed
	ErrMetaCorrupt = errors.New("view metadata file corrupt")
)

// meta holds the decoded contents of a view's meta.ini.
type meta struct {
	ID   int
	Name string
}

func readMeta(fs filesystem.FileSystem, dir string) (meta, error) {
	path := filepath.Join(dir, MetaFileName)
	if !fs.Exists(path) {
		return meta{}, fmt.Errorf("%w: %s", ErrMetaMissing, path)
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return meta{}, fmt.Errorf("failed to read view metadata %s: %w", path, err)
	}

	cfg, err := ini.Load(data)
	if err != nil {
		return meta{}, fmt.Errorf("%w: %s: %v", ErrMetaCorrupt, path, err)
	}

	section := cfg.Section("view")
	id, err := section.Key("id").Int()
	if err != nil {
		return meta{}, fmt.Errorf("%w: %s: invalid view id", ErrMetaCorrupt, path)
	}

	return meta{
		ID:   id,
		Name: section.Key("name").String(),
	}, nil
}

func writeMeta(fs filesystem.FileSystem, dir string, m meta) error {
	cfg := ini.Empty()
	section, err := cfg.NewSection("view")
	if err != nil {
		return fmt.Errorf("failed to build view metadata: %w", err)
	}

	if _, err := section.NewKey("id", strconv.Itoa(m.ID)); err != nil {
		return fmt.Errorf("failed to build view metadata: %w", err)
	}
	if _, err := section.NewKey("name", m.Name); err != nil {
		return fmt.Errorf("failed to build view metadata: %w", err)
	}

	var buf bytes.Buffer
	if _, err := cfg.WriteTo(&buf); err != nil {
		return fmt.Errorf("failed to encode view metadata: %w", err)
	}

	path := filepath.Join(dir, MetaFileName)
	if err := fs.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write view metadata %s: %w", path, err)
	}

	return nil
}
