package gitrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/temirov/rehost/internal/execshell"
	"github.com/temirov/rehost/internal/repos/shared"
)

const (
	gitChangeDirectoryFlagConstant = "-C"
	gitRevParseSubcommandConstant  = "rev-parse"
	gitRemoteSubcommandConstant    = "remote"
	gitGetURLSubcommandConstant    = "get-url"
	gitSetURLSubcommandConstant    = "set-url"
	executorMissingMessageConstant = "git repository manager requires a git executor"
	repositoryCheckErrorTemplate   = "unable to check %s for a git repository: %w"
	remoteLookupErrorTemplate      = "unable to read %s remote in %s: %w"
	remoteUpdateErrorTemplate      = "unable to set %s remote in %s: %w"
	wrappedSentinelErrorTemplate   = "%w: %w"
)

// ErrGitExecutorNotConfigured indicates the manager was constructed without an executor.
var ErrGitExecutorNotConfigured = errors.New(executorMissingMessageConstant)

// CLIRepositoryManager implements shared.GitRepositoryManager by running git.
type CLIRepositoryManager struct {
	executor shared.GitExecutor
}

// NewCLIRepositoryManager constructs a manager that runs git through executor.
func NewCLIRepositoryManager(executor shared.GitExecutor) (*CLIRepositoryManager, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &CLIRepositoryManager{executor: executor}, nil
}

// IsRepository runs "git -C <path> rev-parse" without changing directories.
func (manager *CLIRepositoryManager) IsRepository(executionContext context.Context, repositoryPath string) (bool, error) {
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments: []string{gitChangeDirectoryFlagConstant, repositoryPath, gitRevParseSubcommandConstant},
	})
	if executionError == nil {
		return true, nil
	}
	if isCommandFailure(executionError) {
		return false, nil
	}
	return false, fmt.Errorf(repositoryCheckErrorTemplate, repositoryPath, executionError)
}

// GetRemoteURL runs "git remote get-url <remote>" inside repositoryPath and returns stdout unmodified.
func (manager *CLIRepositoryManager) GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRemoteSubcommandConstant, gitGetURLSubcommandConstant, remoteName},
		WorkingDirectory: repositoryPath,
	})
	if executionError == nil {
		return executionResult.StandardOutput, nil
	}
	if isCommandFailure(executionError) {
		return "", fmt.Errorf(wrappedSentinelErrorTemplate, ErrRemoteUnavailable, executionError)
	}
	return "", fmt.Errorf(remoteLookupErrorTemplate, remoteName, repositoryPath, executionError)
}

// SetRemoteURL runs "git remote set-url <remote> <url>" inside repositoryPath.
func (manager *CLIRepositoryManager) SetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error {
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRemoteSubcommandConstant, gitSetURLSubcommandConstant, remoteName, remoteURL},
		WorkingDirectory: repositoryPath,
	})
	if executionError == nil {
		return nil
	}
	if isCommandFailure(executionError) {
		return fmt.Errorf(wrappedSentinelErrorTemplate, ErrRemoteUpdateFailed, executionError)
	}
	return fmt.Errorf(remoteUpdateErrorTemplate, remoteName, repositoryPath, executionError)
}

func isCommandFailure(executionError error) bool {
	var failedError execshell.CommandFailedError
	return errors.As(executionError, &failedError)
}
