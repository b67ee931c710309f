package repos

import (
	"strings"

	"go.uber.org/zap"

	pathutils "github.com/temirov/rehost/internal/utils/path"
)

var repositoryHomeDirectoryExpander = pathutils.NewHomeExpander()

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// determineRoot prefers the positional argument over the configured root. An empty
// result means the working directory.
func determineRoot(arguments []string, configuredRoot string) string {
	for _, argument := range arguments {
		candidate := strings.TrimSpace(argument)
		if len(candidate) > 0 {
			return repositoryHomeDirectoryExpander.Expand(candidate)
		}
	}

	trimmedConfiguredRoot := strings.TrimSpace(configuredRoot)
	if len(trimmedConfiguredRoot) == 0 {
		return ""
	}
	return repositoryHomeDirectoryExpander.Expand(trimmedConfiguredRoot)
}

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
