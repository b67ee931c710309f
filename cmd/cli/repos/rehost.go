package repos

import (
	"github.com/spf13/cobra"

	"github.com/temirov/rehost/internal/execshell"
	"github.com/temirov/rehost/internal/repos/dependencies"
	"github.com/temirov/rehost/internal/repos/remotes"
	"github.com/temirov/rehost/internal/repos/shared"
	"github.com/temirov/rehost/internal/ui"
)

const (
	rehostUseConstant             = "rehost [root]"
	rehostShortDescription        = "Point the origin remote of every repository under a directory at a new host"
	rehostLongDescription         = "rehost inspects the immediate subdirectories of root (the working directory by default) and rewrites the origin remote of each git repository to the target prefix followed by the repository name."
	targetPrefixFlagNameConstant  = "target-prefix"
	targetPrefixFlagUsageConstant = "Prefix prepended to each repository name to form the new remote URL."
	remoteFlagNameConstant        = "remote"
	remoteFlagUsageConstant       = "Name of the remote to rewrite."
	backendFlagNameConstant       = "backend"
	backendFlagUsageConstant      = "Git backend: git (run the git executable) or go-git (in-process)."
	dryRunFlagNameConstant        = "dry-run"
	dryRunFlagUsageConstant       = "Report the new remote URLs without changing any repository."
)

// RehostCommandBuilder assembles the rehost command.
type RehostCommandBuilder struct {
	LoggerProvider               LoggerProvider
	FileSystem                   shared.FileSystem
	GitExecutor                  shared.GitExecutor
	GitManager                   shared.GitRepositoryManager
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() RehostConfiguration
	SummaryHandler               func(remotes.Summary)
}

// Build constructs the rehost command.
func (builder *RehostCommandBuilder) Build() (*cobra.Command, error) {
	defaults := DefaultRehostConfiguration()
	command := &cobra.Command{
		Use:   rehostUseConstant,
		Short: rehostShortDescription,
		Long:  rehostLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.run,
	}

	command.Flags().String(targetPrefixFlagNameConstant, defaults.TargetPrefix, targetPrefixFlagUsageConstant)
	command.Flags().String(remoteFlagNameConstant, defaults.Remote, remoteFlagUsageConstant)
	command.Flags().String(backendFlagNameConstant, defaults.Backend, backendFlagUsageConstant)
	command.Flags().Bool(dryRunFlagNameConstant, defaults.DryRun, dryRunFlagUsageConstant)

	return command, nil
}

func (builder *RehostCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration, flagError := builder.resolveConfiguration(command)
	if flagError != nil {
		return flagError
	}

	backend, backendError := dependencies.ParseBackend(configuration.Backend)
	if backendError != nil {
		return backendError
	}

	logger := resolveLogger(builder.LoggerProvider)
	var commandObserver execshell.CommandEventObserver
	if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
		commandObserver = ui.NewConsoleCommandEventLogger(logger)
	}

	gitManager := builder.GitManager
	if gitManager == nil {
		var gitExecutor shared.GitExecutor
		if backend == dependencies.BackendGit {
			resolvedExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, commandObserver)
			if executorError != nil {
				return executorError
			}
			gitExecutor = resolvedExecutor
		}
		resolvedManager, managerError := dependencies.ResolveGitRepositoryManager(nil, backend, gitExecutor)
		if managerError != nil {
			return managerError
		}
		gitManager = resolvedManager
	}

	executor, executorError := remotes.NewExecutor(remotes.Dependencies{
		FileSystem: dependencies.ResolveFileSystem(builder.FileSystem),
		GitManager: gitManager,
		Output:     command.OutOrStdout(),
		Logger:     logger,
	})
	if executorError != nil {
		return executorError
	}

	summary, executionError := executor.Execute(command.Context(), remotes.Options{
		Root:         determineRoot(arguments, configuration.Root),
		TargetPrefix: configuration.TargetPrefix,
		RemoteName:   configuration.Remote,
		DryRun:       configuration.DryRun,
	})
	if builder.SummaryHandler != nil {
		builder.SummaryHandler(summary)
	}
	return executionError
}

// resolveConfiguration layers explicitly set flags over the provided configuration.
func (builder *RehostCommandBuilder) resolveConfiguration(command *cobra.Command) (RehostConfiguration, error) {
	configuration := DefaultRehostConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}

	flagSet := command.Flags()
	if flagSet.Changed(targetPrefixFlagNameConstant) {
		value, valueError := flagSet.GetString(targetPrefixFlagNameConstant)
		if valueError != nil {
			return RehostConfiguration{}, valueError
		}
		configuration.TargetPrefix = value
	}
	if flagSet.Changed(remoteFlagNameConstant) {
		value, valueError := flagSet.GetString(remoteFlagNameConstant)
		if valueError != nil {
			return RehostConfiguration{}, valueError
		}
		configuration.Remote = value
	}
	if flagSet.Changed(backendFlagNameConstant) {
		value, valueError := flagSet.GetString(backendFlagNameConstant)
		if valueError != nil {
			return RehostConfiguration{}, valueError
		}
		configuration.Backend = value
	}
	if flagSet.Changed(dryRunFlagNameConstant) {
		value, valueError := flagSet.GetBool(dryRunFlagNameConstant)
		if valueError != nil {
			return RehostConfiguration{}, valueError
		}
		configuration.DryRun = value
	}

	return configuration.sanitize(), nil
}
