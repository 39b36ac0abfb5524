package scene

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/LinusVanElswijk/mve/internal/bundle"
	"github.com/LinusVanElswijk/mve/internal/filesystem"
	"github.com/LinusVanElswijk/mve/internal/view"
)

const (
	// ViewsDirName is the subdirectory holding one directory per view.
	ViewsDirName = "views"

	// BundleFileName is the aggregate bundle file, one per scene.
	BundleFileName = "synth_0.out"

	viewDirPrefix = "view_"
	viewDirSuffix = ".mve"
)

var (
	// ErrSceneDirMissing indicates that the scene path is not a directory
	ErrSceneDirMissing = errors.New("scene directory missing")

	// ErrViewsDirMissing indicates that the views subdirectory is absent
	ErrViewsDirMissing = errors.New("views subdirectory missing")

	// ErrBundleNotLoaded indicates a bundle save with nothing loaded
	ErrBundleNotLoaded = errors.New("no bundle loaded")
)

// Scene is the in-memory model of one on-disk reconstruction project. It
// owns an ordered collection of views and an optional cached bundle, and
// tracks unsaved changes per view and for the bundle independently.
//
// A scene is not safe for concurrent use; callers serialize access.
type Scene struct {
	fs filesystem.FileSystem

	path   string
	views  []*view.View
	bundle *bundle.Bundle
}

// Create builds a scene from an existing scene directory. The view list is
// enumerated eagerly; view metadata and the bundle are loaded on demand.
func Create(fs filesystem.FileSystem, path string) (*Scene, error) {
	if err := validateLayout(fs, path); err != nil {
		return nil, err
	}

	views, err := enumerateViews(fs, filepath.Join(path, ViewsDirName))
	if err != nil {
		return nil, err
	}

	return &Scene{
		fs:    fs,
		path:  path,
		views: views,
	}, nil
}

// Load re-points the scene at a different directory. Unsaved state is
// discarded. If validation or enumeration fails, the scene is untouched.
func (s *Scene) Load(path string) error {
	if err := validateLayout(s.fs, path); err != nil {
		return err
	}

	views, err := enumerateViews(s.fs, filepath.Join(path, ViewsDirName))
	if err != nil {
		return err
	}

	s.path = path
	s.views = views
	s.bundle = nil
	return nil
}

// Path returns the scene's root directory.
func (s *Scene) Path() string {
	return s.path
}

// Views returns the live view collection. Callers mutate views in place;
// adding views goes through AddView so id uniqueness holds.
func (s *Scene) Views() []*view.View {
	return s.views
}

// AddView appends a view to the scene. The view's id must not collide with
// any view already in the scene.
func (s *Scene) AddView(v *view.View) error {
	for _, existing := range s.views {
		if existing.ID() == v.ID() {
			return fmt.Errorf("view id %d already exists in scene", v.ID())
		}
	}

	s.views = append(s.views, v)
	return nil
}

// ViewDirectory returns the canonical directory for a view id within this
// scene, whether or not it exists yet.
func (s *Scene) ViewDirectory(id int) string {
	name := fmt.Sprintf("%s%04d%s", viewDirPrefix, id, viewDirSuffix)
	return filepath.Join(s.path, ViewsDirName, name)
}

// Bundle returns the scene's bundle, reading it from disk on first access.
// A failed read leaves the cache unloaded so a later call can retry.
func (s *Scene) Bundle() (*bundle.Bundle, error) {
	if s.bundle != nil {
		return s.bundle, nil
	}

	b, err := bundle.Load(s.fs, s.bundlePath())
	if err != nil {
		return nil, err
	}

	s.bundle = b
	return s.bundle, nil
}

// SetBundle replaces the cached bundle. The new bundle is always marked
// dirty, regardless of its content.
func (s *Scene) SetBundle(b *bundle.Bundle) {
	b.MarkDirty()
	s.bundle = b
}

// ResetBundle discards the cached bundle without writing anything. The next
// Bundle call re-reads from disk, so an unsaved replacement is lost.
func (s *Scene) ResetBundle() {
	s.bundle = nil
}

// SaveBundle writes the cached bundle to disk and clears its dirty flag.
// View dirty flags are untouched.
func (s *Scene) SaveBundle() error {
	if s.bundle == nil {
		return ErrBundleNotLoaded
	}
	return bundle.Save(s.fs, s.bundle, s.bundlePath())
}

// SaveViews saves every dirty view. A failing view does not stop the rest;
// all failures are collected and returned together. Views that saved
// successfully end up clean either way. The bundle is untouched.
func (s *Scene) SaveViews() error {
	var result *multierror.Error

	for _, v := range s.views {
		if !v.IsDirty() {
			continue
		}
		if err := v.Save(); err != nil {
			result = multierror.Append(result, fmt.Errorf("view %d: %w", v.ID(), err))
		}
	}

	return result.ErrorOrNil()
}

// SaveScene saves the bundle (when loaded) and then all dirty views. After
// a fully successful save the scene is clean.
func (s *Scene) SaveScene() error {
	var result *multierror.Error

	if s.bundle != nil {
		if err := s.SaveBundle(); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if err := s.SaveViews(); err != nil {
		result = multierror.Append(result, err)
	}

	return result.ErrorOrNil()
}

// IsDirty reports whether any view or the loaded bundle has unsaved
// changes. An unloaded bundle never contributes.
func (s *Scene) IsDirty() bool {
	for _, v := range s.views {
		if v.IsDirty() {
			return true
		}
	}
	return s.bundle != nil && s.bundle.IsDirty()
}

func (s *Scene) bundlePath() string {
	return filepath.Join(s.path, BundleFileName)
}

func validateLayout(fs filesystem.FileSystem, path string) error {
	if !fs.IsDir(path) {
		return fmt.Errorf("%w: %s", ErrSceneDirMissing, path)
	}
	if !fs.IsDir(filepath.Join(path, ViewsDirName)) {
		return fmt.Errorf("%w: %s", ErrViewsDirMissing, filepath.Join(path, ViewsDirName))
	}
	return nil
}

// enumerateViews builds one view placeholder per view directory. The id is
// parsed from the directory name; directories whose id cannot be parsed, or
// that would duplicate an id seen earlier, get the smallest id not yet
// taken, assigned in discovery order.
func enumerateViews(fs filesystem.FileSystem, viewsDir string) ([]*view.View, error) {
	entries, err := fs.ReadDir(viewsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read views directory %s: %w", viewsDir, err)
	}

	type placeholder struct {
		dir string
		id  int
		ok  bool
	}

	var placeholders []placeholder
	taken := make(map[int]bool)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasPrefix(name, viewDirPrefix) || !strings.HasSuffix(name, viewDirSuffix) {
			continue
		}

		p := placeholder{dir: filepath.Join(viewsDir, name)}
		raw := strings.TrimSuffix(strings.TrimPrefix(name, viewDirPrefix), viewDirSuffix)
		if id, err := strconv.Atoi(raw); err == nil && id >= 0 && !taken[id] {
			p.id = id
			p.ok = true
			taken[id] = true
		}
		placeholders = append(placeholders, p)
	}

	next := 0
	views := make([]*view.View, 0, len(placeholders))
	for _, p := range placeholders {
		if !p.ok {
			for taken[next] {
				next++
			}
			p.id = next
			taken[next] = true
		}
		views = append(views, view.FromDirectory(fs, p.dir, p.id))
	}

	return views, nil
}
