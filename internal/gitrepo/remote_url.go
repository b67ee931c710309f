package gitrepo

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	remoteOutputTerminatorConstant = "\n"
	remotePathSeparatorConstant    = "/"
	remoteOutputNotTextMessage     = "remote url output is not valid UTF-8"
	remoteOutputNoNewlineMessage   = "remote url output does not end with a newline"
	remoteURLNoSeparatorMessage    = "remote url has no '/' separator"
	remoteUnavailableMessage       = "remote url unavailable"
	remoteUpdateFailedMessage      = "remote url update failed"
)

var (
	// ErrRemoteOutputNotText indicates git printed bytes that are not UTF-8 text.
	ErrRemoteOutputNotText = errors.New(remoteOutputNotTextMessage)
	// ErrRemoteOutputMissingNewline indicates the remote URL output lacked its trailing newline.
	ErrRemoteOutputMissingNewline = errors.New(remoteOutputNoNewlineMessage)
	// ErrRemoteURLMissingSeparator indicates the remote URL has no path separator to split on.
	ErrRemoteURLMissingSeparator = errors.New(remoteURLNoSeparatorMessage)
	// ErrRemoteUnavailable indicates the remote could not be read, for example because it is not configured.
	ErrRemoteUnavailable = errors.New(remoteUnavailableMessage)
	// ErrRemoteUpdateFailed indicates the remote URL could not be replaced.
	ErrRemoteUpdateFailed = errors.New(remoteUpdateFailedMessage)
)

// DeriveRepositoryName extracts the repository name from the raw output of
// "git remote get-url": exactly one trailing newline is removed and the text after
// the last "/" is returned verbatim, extension included.
func DeriveRepositoryName(rawOutput string) (string, error) {
	if !utf8.ValidString(rawOutput) {
		return "", ErrRemoteOutputNotText
	}

	remoteURL, hadNewline := strings.CutSuffix(rawOutput, remoteOutputTerminatorConstant)
	if !hadNewline {
		return "", ErrRemoteOutputMissingNewline
	}

	separatorIndex := strings.LastIndex(remoteURL, remotePathSeparatorConstant)
	if separatorIndex < 0 {
		return "", ErrRemoteURLMissingSeparator
	}

	return remoteURL[separatorIndex+len(remotePathSeparatorConstant):], nil
}

// BuildTargetURL appends repositoryName to targetPrefix. The prefix is used as
// given, so it carries its own trailing "/" or ":".
func BuildTargetURL(targetPrefix string, repositoryName string) string {
	return targetPrefix + repositoryName
}
