package view

import (
	"errors"
	"fmt"

	"github.com/LinusVanElswijk/mve/internal/filesystem"
)

// InvalidID is the id of a freshly created view that has not been assigned one.
const InvalidID = -1

// ErrNoDirectory indicates a save on a view that has no on-disk location yet
var ErrNoDirectory = errors.New("view has no directory")

// metaState tracks whether the lazily-loaded metadata fields are populated.
type metaState int

const (
	metaUnloaded metaState = iota
	metaLoaded
)

// View is one addressable unit of a scene. Views discovered on disk populate
// their metadata fields lazily on first access; freshly created views start
// fully in memory and gain an on-disk location through SaveAs.
type View struct {
	fs filesystem.FileSystem

	id   int
	dir  string
	name string

	meta  metaState
	dirty bool
}

// New creates a fresh view with no on-disk location.
func New(fs filesystem.FileSystem) *View {
	return &View{
		fs:   fs,
		id:   InvalidID,
		meta: metaLoaded,
	}
}

// FromDirectory creates a view placeholder for an existing view directory.
// The metadata file is not read until a metadata field is first accessed.
func FromDirectory(fs filesystem.FileSystem, dir string, id int) *View {
	return &View{
		fs:   fs,
		id:   id,
		dir:  dir,
		meta: metaUnloaded,
	}
}

// ID returns the view's id. Ids are assigned once and never change.
func (v *View) ID() int {
	return v.id
}

// SetID assigns the id of a freshly created view and marks it dirty.
func (v *View) SetID(id int) {
	v.id = id
	v.dirty = true
}

// Directory returns the directory holding the view's metadata file,
// or an empty string for views that were never saved.
func (v *View) Directory() string {
	return v.dir
}

// Name returns the view's name, reading the metadata file on first access.
func (v *View) Name() (string, error) {
	if err := v.ensureMeta(); err != nil {
		return "", err
	}
	return v.name, nil
}

// SetName replaces the view's name and marks it dirty, even if the new name
// equals the old one. A pending lazy load is skipped since the name would be
// overwritten anyway.
func (v *View) SetName(name string) {
	v.name = name
	v.meta = metaLoaded
	v.dirty = true
}

// IsDirty reports whether the view has unsaved changes.
func (v *View) IsDirty() bool {
	return v.dirty
}

// Save writes the view's metadata file and clears the dirty flag on
// success. On failure the dirty flag is left unchanged so a retry is safe.
func (v *View) Save() error {
	if v.dir == "" {
		return fmt.Errorf("%w: use SaveAs for views that were never saved", ErrNoDirectory)
	}

	if err := v.ensureMeta(); err != nil {
		return err
	}

	if err := writeMeta(v.fs, v.dir, meta{ID: v.id, Name: v.name}); err != nil {
		return err
	}

	v.dirty = false
	return nil
}

// SaveAs relocates the view to dir, creating it if necessary, and saves.
func (v *View) SaveAs(dir string) error {
	// Populate the metadata fields while the old location is still valid.
	if err := v.ensureMeta(); err != nil {
		return err
	}

	if err := v.fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create view directory %s: %w", dir, err)
	}

	v.dir = dir
	return v.Save()
}

// ensureMeta populates the lazily-loaded fields exactly once. A failed read
// leaves the view unloaded so a later retry can succeed.
func (v *View) ensureMeta() error {
	if v.meta == metaLoaded {
		return nil
	}

	m, err := readMeta(v.fs, v.dir)
	if err != nil {
		return err
	}

	if m.ID != v.id {
		// The directory name wins; ids are never reassigned after discovery.
		fmt.Printf("Warning: view %s: metadata id %d does not match directory id %d\n",
			v.dir, m.ID, v.id)
	}

	v.name = m.Name
	v.meta = metaLoaded
	return nil
}
