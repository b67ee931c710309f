package dependencies

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/rehost/internal/execshell"
	"github.com/temirov/rehost/internal/gitrepo"
	"github.com/temirov/rehost/internal/repos/filesystem"
	"github.com/temirov/rehost/internal/repos/shared"
)

// Backend selects the implementation of the git integration boundary.
type Backend string

// Supported backends.
const (
	BackendGit   Backend = Backend("git")
	BackendGoGit Backend = Backend("go-git")
)

const (
	unsupportedBackendErrorTemplate = "unsupported git backend %q (expected %s or %s)"
)

// ParseBackend normalizes a configured backend name. An empty value selects BackendGit.
func ParseBackend(rawValue string) (Backend, error) {
	normalized := Backend(strings.ToLower(strings.TrimSpace(rawValue)))
	switch normalized {
	case "", BackendGit:
		return BackendGit, nil
	case BackendGoGit:
		return BackendGoGit, nil
	default:
		return "", fmt.Errorf(unsupportedBackendErrorTemplate, rawValue, BackendGit, BackendGoGit)
	}
}

// ResolveFileSystem returns the provided filesystem or an OS-backed default.
func ResolveFileSystem(existing shared.FileSystem) shared.FileSystem {
	if existing != nil {
		return existing
	}
	return filesystem.OSFileSystem{}
}

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default
// that reports command lifecycle events to observer.
func ResolveGitExecutor(existing shared.GitExecutor, logger *zap.Logger, observer execshell.CommandEventObserver) (shared.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, creationError := execshell.NewShellExecutorWithObserver(logger, commandRunner, observer)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

// ResolveGitRepositoryManager returns the provided repository manager or constructs one for backend.
// The executor is only consulted for BackendGit.
func ResolveGitRepositoryManager(existing shared.GitRepositoryManager, backend Backend, executor shared.GitExecutor) (shared.GitRepositoryManager, error) {
	if existing != nil {
		return existing, nil
	}
	if backend == BackendGoGit {
		return gitrepo.NewNativeRepositoryManager(), nil
	}
	return gitrepo.NewCLIRepositoryManager(executor)
}
