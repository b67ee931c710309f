package shared

import (
	"context"
	"io/fs"

	"github.com/temirov/rehost/internal/execshell"
)

const (
	// OriginRemoteNameConstant identifies the remote rewritten by default.
	OriginRemoteNameConstant = "origin"
	// DefaultTargetPrefixConstant is prepended to the repository name to form the new remote URL.
	DefaultTargetPrefixConstant = "git@github.com:awesomeorg/"
)

// FileSystem exposes the filesystem operations the migrator needs.
type FileSystem interface {
	Getwd() (string, error)
	ReadDir(path string) ([]fs.DirEntry, error)
	Abs(path string) (string, error)
	// CheckAccessible reports an error when path cannot be opened as a directory.
	CheckAccessible(path string) error
}

// GitRepositoryManager is the integration boundary with git. Implementations must
// report a command that ran and failed through the boolean result or the gitrepo
// sentinel errors, and reserve other errors for commands that could not run.
type GitRepositoryManager interface {
	IsRepository(executionContext context.Context, repositoryPath string) (bool, error)
	GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error)
	SetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error
}

// GitExecutor runs git subcommands.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}
