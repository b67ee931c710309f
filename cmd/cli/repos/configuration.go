package repos

import (
	"strings"

	"github.com/temirov/rehost/internal/repos/dependencies"
	"github.com/temirov/rehost/internal/repos/shared"
)

const (
	configurationRootKeyConstant         = "root"
	configurationTargetPrefixKeyConstant = "target_prefix"
	configurationRemoteKeyConstant       = "remote"
	configurationBackendKeyConstant      = "backend"
	configurationDryRunKeyConstant       = "dry_run"
)

// RehostConfiguration describes configuration values for the rehost command.
type RehostConfiguration struct {
	Root         string `mapstructure:"root"`
	TargetPrefix string `mapstructure:"target_prefix"`
	Remote       string `mapstructure:"remote"`
	Backend      string `mapstructure:"backend"`
	DryRun       bool   `mapstructure:"dry_run"`
}

// DefaultRehostConfiguration returns baseline configuration values for the rehost command.
func DefaultRehostConfiguration() RehostConfiguration {
	return RehostConfiguration{
		Root:         "",
		TargetPrefix: shared.DefaultTargetPrefixConstant,
		Remote:       shared.OriginRemoteNameConstant,
		Backend:      string(dependencies.BackendGit),
		DryRun:       false,
	}
}

// DefaultConfigurationValues produces Viper defaults for the rehost command under rootKey.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultRehostConfiguration()
	return map[string]any{
		rootKey + "." + configurationRootKeyConstant:         defaults.Root,
		rootKey + "." + configurationTargetPrefixKeyConstant: defaults.TargetPrefix,
		rootKey + "." + configurationRemoteKeyConstant:       defaults.Remote,
		rootKey + "." + configurationBackendKeyConstant:      defaults.Backend,
		rootKey + "." + configurationDryRunKeyConstant:       defaults.DryRun,
	}
}

// sanitize trims configured values and restores defaults for blank ones.
func (configuration RehostConfiguration) sanitize() RehostConfiguration {
	defaults := DefaultRehostConfiguration()
	sanitized := configuration
	sanitized.Root = strings.TrimSpace(configuration.Root)
	sanitized.Remote = strings.TrimSpace(configuration.Remote)
	sanitized.Backend = strings.TrimSpace(configuration.Backend)
	if len(strings.TrimSpace(sanitized.TargetPrefix)) == 0 {
		sanitized.TargetPrefix = defaults.TargetPrefix
	}
	if len(sanitized.Remote) == 0 {
		sanitized.Remote = defaults.Remote
	}
	if len(sanitized.Backend) == 0 {
		sanitized.Backend = defaults.Backend
	}
	return sanitized
}
