package filesystem

import (
	"io/fs"
)

// FileSystem provides an abstraction over file operations for testability
type FileSystem interface {
	// File operations
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm fs.FileMode) error
	Remove(path string) error
	Rename(oldPath, newPath string) error

	// Directory operations
	ReadDir(path string) ([]fs.DirEntry, error)
	MkdirAll(path string, perm fs.FileMode) error

	// Path operations
	Stat(path string) (fs.FileInfo, error)
	Exists(path string) bool
	IsDir(path string) bool
	Getwd() (string, error)
}
