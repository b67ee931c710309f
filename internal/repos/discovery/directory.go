// Package discovery lists the candidate directories directly under a root.
package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/temirov/rehost/internal/repos/shared"
)

const (
	hiddenEntryPrefixConstant         = "."
	listEntriesErrorTemplateConstant  = "unable to list %s: %w"
	readMetadataErrorTemplateConstant = "unable to read metadata for %s: %w"
	emptyRootDirectoryMessageConstant = "root directory is empty"
	fileSystemMissingMessageConstant  = "discovery requires a filesystem"
	candidateStringTemplateConstant   = "%s (hidden=%t, directory=%t)"
)

// Candidate describes one immediate child of the root.
type Candidate struct {
	Name      string
	Path      string
	Hidden    bool
	Directory bool
}

// Eligible reports whether the candidate should be checked for a repository.
func (candidate Candidate) Eligible() bool {
	return !candidate.Hidden && candidate.Directory
}

// String renders the candidate for diagnostics.
func (candidate Candidate) String() string {
	return fmt.Sprintf(candidateStringTemplateConstant, candidate.Path, candidate.Hidden, candidate.Directory)
}

// DirectoryEnumerator lists immediate children without descending into them.
type DirectoryEnumerator struct {
	fileSystem shared.FileSystem
}

// NewDirectoryEnumerator constructs an enumerator over fileSystem.
func NewDirectoryEnumerator(fileSystem shared.FileSystem) (*DirectoryEnumerator, error) {
	if fileSystem == nil {
		return nil, errors.New(fileSystemMissingMessageConstant)
	}
	return &DirectoryEnumerator{fileSystem: fileSystem}, nil
}

// Enumerate returns the entries of root in filesystem order. Entries are classified
// separately so a metadata failure surfaces when that entry is reached.
func (enumerator *DirectoryEnumerator) Enumerate(root string) ([]fs.DirEntry, error) {
	if len(strings.TrimSpace(root)) == 0 {
		return nil, errors.New(emptyRootDirectoryMessageConstant)
	}
	entries, listError := enumerator.fileSystem.ReadDir(root)
	if listError != nil {
		return nil, fmt.Errorf(listEntriesErrorTemplateConstant, root, listError)
	}
	return entries, nil
}

// Classify builds the candidate for entry. Directory status comes from the entry's
// own metadata, so symbolic links never count as directories.
func Classify(root string, entry fs.DirEntry) (Candidate, error) {
	candidatePath := filepath.Join(root, entry.Name())
	info, infoError := entry.Info()
	if infoError != nil {
		return Candidate{}, fmt.Errorf(readMetadataErrorTemplateConstant, candidatePath, infoError)
	}
	return Candidate{
		Name:      entry.Name(),
		Path:      candidatePath,
		Hidden:    strings.HasPrefix(entry.Name(), hiddenEntryPrefixConstant),
		Directory: info.IsDir(),
	}, nil
}
