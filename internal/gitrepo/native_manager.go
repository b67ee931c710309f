package gitrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
)

const (
	remoteNotConfiguredTemplate = "remote %s is not configured"
	remoteWithoutURLTemplate    = "remote %s has no url"
	configurationReadTemplate   = "unable to read configuration of %s: %w"
	remoteSectionNameConstant   = "remote"
	remoteURLOptionNameConstant = "url"
)

// NativeRepositoryManager implements shared.GitRepositoryManager with go-git,
// without launching git processes. URL rewriting rules such as insteadOf are
// not applied to the returned URL.
type NativeRepositoryManager struct{}

// NewNativeRepositoryManager constructs a go-git backed manager.
func NewNativeRepositoryManager() *NativeRepositoryManager {
	return &NativeRepositoryManager{}
}

// IsRepository reports whether repositoryPath is inside a working tree, searching
// parent directories the way git does.
func (manager *NativeRepositoryManager) IsRepository(executionContext context.Context, repositoryPath string) (bool, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return false, contextError
	}
	_, openError := openRepository(repositoryPath)
	return openError == nil, nil
}

// GetRemoteURL returns the first URL of remoteName followed by a newline, the same
// text "git remote get-url" prints.
func (manager *NativeRepositoryManager) GetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string) (string, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return "", contextError
	}

	repository, openError := openRepository(repositoryPath)
	if openError != nil {
		return "", fmt.Errorf(wrappedSentinelErrorTemplate, ErrRemoteUnavailable, openError)
	}

	remote, remoteError := repository.Remote(remoteName)
	if remoteError != nil {
		if errors.Is(remoteError, git.ErrRemoteNotFound) {
			return "", fmt.Errorf(wrappedSentinelErrorTemplate, ErrRemoteUnavailable, fmt.Errorf(remoteNotConfiguredTemplate, remoteName))
		}
		return "", fmt.Errorf(remoteLookupErrorTemplate, remoteName, repositoryPath, remoteError)
	}

	remoteURLs := remote.Config().URLs
	if len(remoteURLs) == 0 {
		return "", fmt.Errorf(wrappedSentinelErrorTemplate, ErrRemoteUnavailable, fmt.Errorf(remoteWithoutURLTemplate, remoteName))
	}

	return remoteURLs[0] + remoteOutputTerminatorConstant, nil
}

// SetRemoteURL replaces the first URL of remoteName in the repository configuration.
func (manager *NativeRepositoryManager) SetRemoteURL(executionContext context.Context, repositoryPath string, remoteName string, remoteURL string) error {
	if contextError := executionContext.Err(); contextError != nil {
		return contextError
	}

	repository, openError := openRepository(repositoryPath)
	if openError != nil {
		return fmt.Errorf(wrappedSentinelErrorTemplate, ErrRemoteUpdateFailed, openError)
	}

	configuration, configurationError := repository.Config()
	if configurationError != nil {
		return fmt.Errorf(configurationReadTemplate, repositoryPath, configurationError)
	}

	remoteConfiguration, remoteExists := configuration.Remotes[remoteName]
	if !remoteExists {
		return fmt.Errorf(wrappedSentinelErrorTemplate, ErrRemoteUpdateFailed, fmt.Errorf(remoteNotConfiguredTemplate, remoteName))
	}

	if len(remoteConfiguration.URLs) == 0 {
		remoteConfiguration.URLs = []string{remoteURL}
	} else {
		remoteConfiguration.URLs[0] = remoteURL
	}

	// The raw url options are merged with URLs on write; drop them so the slice order is kept.
	configuration.Raw.Section(remoteSectionNameConstant).Subsection(remoteName).RemoveOption(remoteURLOptionNameConstant)

	if storeError := repository.Storer.SetConfig(configuration); storeError != nil {
		return fmt.Errorf(wrappedSentinelErrorTemplate, ErrRemoteUpdateFailed, storeError)
	}
	return nil
}

func openRepository(repositoryPath string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(repositoryPath, &git.PlainOpenOptions{DetectDotGit: true})
}
