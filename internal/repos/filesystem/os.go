// Package filesystem adapts the operating system to shared.FileSystem.
package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
)

// OSFileSystem implements shared.FileSystem using the operating system primitives.
type OSFileSystem struct{}

// Getwd returns the process working directory.
func (OSFileSystem) Getwd() (string, error) {
	return os.Getwd()
}

// ReadDir lists the immediate entries of path in the order the operating system returns them.
func (OSFileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	directory, openError := os.Open(path)
	if openError != nil {
		return nil, openError
	}
	defer directory.Close()
	return directory.ReadDir(-1)
}

// Abs resolves an absolute path.
func (OSFileSystem) Abs(path string) (string, error) {
	return filepath.Abs(path)
}

// CheckAccessible reports whether path can be entered, which running a process inside it requires.
// Statting "<path>/." needs search permission on path, the same permission chdir checks.
func (OSFileSystem) CheckAccessible(path string) error {
	_, statError := os.Stat(path + string(os.PathSeparator) + ".")
	return statError
}
