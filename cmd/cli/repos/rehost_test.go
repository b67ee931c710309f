package repos_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	repos "github.com/temirov/rehost/cmd/cli/repos"
	"github.com/temirov/rehost/internal/execshell"
	"github.com/temirov/rehost/internal/gitrepo"
	"github.com/temirov/rehost/internal/repos/remotes"
)

const (
	rehostTestRepositoryName   = "service"
	rehostTestOriginOutput     = "https://github.com/someone/service.git\n"
	rehostTestConfiguredPrefix = "git@git.example.com:configured/"
	rehostTestFlagPrefix       = "ssh://git@git.example.com/flag/"
	rehostTestRemoteName       = "upstream"
)

type remoteUpdateCall struct {
	repositoryPath string
	remoteName     string
	remoteURL      string
}

type fakeGitRepositoryManager struct {
	repositories map[string]bool
	setCalls     []remoteUpdateCall
	remoteNames  []string
}

func (manager *fakeGitRepositoryManager) IsRepository(_ context.Context, repositoryPath string) (bool, error) {
	return manager.repositories[repositoryPath], nil
}

func (manager *fakeGitRepositoryManager) GetRemoteURL(_ context.Context, _ string, remoteName string) (string, error) {
	manager.remoteNames = append(manager.remoteNames, remoteName)
	return rehostTestOriginOutput, nil
}

func (manager *fakeGitRepositoryManager) SetRemoteURL(_ context.Context, repositoryPath string, remoteName string, remoteURL string) error {
	manager.setCalls = append(manager.setCalls, remoteUpdateCall{repositoryPath: repositoryPath, remoteName: remoteName, remoteURL: remoteURL})
	return nil
}

type scriptedGitExecutor struct {
	calls []execshell.CommandDetails
}

func (executor *scriptedGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.calls = append(executor.calls, details)
	if len(details.Arguments) > 1 && details.Arguments[0] == "remote" && details.Arguments[1] == "get-url" {
		return execshell.ExecutionResult{StandardOutput: rehostTestOriginOutput}, nil
	}
	return execshell.ExecutionResult{}, nil
}

func createRepositoryRoot(testInstance *testing.T) (string, string) {
	testInstance.Helper()
	root := testInstance.TempDir()
	repositoryPath := filepath.Join(root, rehostTestRepositoryName)
	require.NoError(testInstance, os.Mkdir(repositoryPath, 0o755))
	return root, repositoryPath
}

func executeRehost(testInstance *testing.T, builder *repos.RehostCommandBuilder, arguments []string) (string, error) {
	testInstance.Helper()
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)
	command.SetErr(&bytes.Buffer{})
	command.SetArgs(arguments)
	command.SetContext(context.Background())
	executionError := command.Execute()
	return outputBuffer.String(), executionError
}

func TestRehostCommandConfigurationPrecedence(testInstance *testing.T) {
	testCases := []struct {
		name               string
		configuration      repos.RehostConfiguration
		flags              []string
		expectedURL        string
		expectedRemote     string
		expectNoUpdates    bool
		expectedOutputLine string
	}{
		{
			name:           "defaults",
			configuration:  repos.DefaultRehostConfiguration(),
			expectedURL:    "git@github.com:awesomeorg/service.git",
			expectedRemote: "origin",
		},
		{
			name: "configuration_prefix_and_remote",
			configuration: repos.RehostConfiguration{
				TargetPrefix: rehostTestConfiguredPrefix,
				Remote:       rehostTestRemoteName,
			},
			expectedURL:    rehostTestConfiguredPrefix + "service.git",
			expectedRemote: rehostTestRemoteName,
		},
		{
			name: "flags_override_configuration",
			configuration: repos.RehostConfiguration{
				TargetPrefix: rehostTestConfiguredPrefix,
				Remote:       rehostTestRemoteName,
			},
			flags:          []string{"--target-prefix", rehostTestFlagPrefix, "--remote", "origin"},
			expectedURL:    rehostTestFlagPrefix + "service.git",
			expectedRemote: "origin",
		},
		{
			name:               "configuration_dry_run",
			configuration:      repos.RehostConfiguration{DryRun: true},
			expectNoUpdates:    true,
			expectedRemote:     "origin",
			expectedOutputLine: "would set origin to git@github.com:awesomeorg/service.git\n",
		},
		{
			name:               "flag_dry_run",
			configuration:      repos.DefaultRehostConfiguration(),
			flags:              []string{"--dry-run"},
			expectNoUpdates:    true,
			expectedRemote:     "origin",
			expectedOutputLine: "would set origin to git@github.com:awesomeorg/service.git\n",
		},
	}

	for testCaseIndex := range testCases {
		testCase := testCases[testCaseIndex]
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			root, repositoryPath := createRepositoryRoot(subtest)
			manager := &fakeGitRepositoryManager{repositories: map[string]bool{repositoryPath: true}}

			var capturedSummary remotes.Summary
			builder := &repos.RehostCommandBuilder{
				GitManager: manager,
				ConfigurationProvider: func() repos.RehostConfiguration {
					return testCase.configuration
				},
				SummaryHandler: func(summary remotes.Summary) {
					capturedSummary = summary
				},
			}

			output, executionError := executeRehost(subtest, builder, append(testCase.flags, root))
			require.NoError(subtest, executionError)
			require.Equal(subtest, []string{testCase.expectedRemote}, manager.remoteNames)
			require.Equal(subtest, root, capturedSummary.Root)

			if testCase.expectNoUpdates {
				require.Empty(subtest, manager.setCalls)
				require.Equal(subtest, 1, capturedSummary.Count(remotes.OutcomePlanned))
			} else {
				require.Equal(subtest, []remoteUpdateCall{{
					repositoryPath: repositoryPath,
					remoteName:     testCase.expectedRemote,
					remoteURL:      testCase.expectedURL,
				}}, manager.setCalls)
			}
			if len(testCase.expectedOutputLine) > 0 {
				require.Contains(subtest, output, testCase.expectedOutputLine)
			}
		})
	}
}

func TestRehostCommandUsesInjectedExecutor(testInstance *testing.T) {
	root, repositoryPath := createRepositoryRoot(testInstance)
	executor := &scriptedGitExecutor{}
	builder := &repos.RehostCommandBuilder{GitExecutor: executor}

	output, executionError := executeRehost(testInstance, builder, []string{root})
	require.NoError(testInstance, executionError)
	require.Contains(testInstance, output, fmt.Sprintf("Checking %s\nUpdating %s\ndone!\n", repositoryPath, repositoryPath))

	require.Len(testInstance, executor.calls, 3)
	require.Equal(testInstance, []string{"-C", repositoryPath, "rev-parse"}, executor.calls[0].Arguments)
	require.Equal(testInstance, []string{"remote", "get-url", "origin"}, executor.calls[1].Arguments)
	require.Equal(testInstance, repositoryPath, executor.calls[1].WorkingDirectory)
	require.Equal(testInstance, []string{"remote", "set-url", "origin", "git@github.com:awesomeorg/service.git"}, executor.calls[2].Arguments)
	require.Equal(testInstance, repositoryPath, executor.calls[2].WorkingDirectory)
}

func TestRehostCommandRejectsUnknownBackend(testInstance *testing.T) {
	root, _ := createRepositoryRoot(testInstance)
	builder := &repos.RehostCommandBuilder{}

	_, executionError := executeRehost(testInstance, builder, []string{"--backend", "libgit2", root})
	require.Error(testInstance, executionError)
}

func TestRehostCommandGoGitBackendIgnoresExecutor(testInstance *testing.T) {
	root, _ := createRepositoryRoot(testInstance)
	executor := &scriptedGitExecutor{}
	builder := &repos.RehostCommandBuilder{GitExecutor: executor}

	output, executionError := executeRehost(testInstance, builder, []string{"--backend", "go-git", root})
	require.NoError(testInstance, executionError)
	require.Empty(testInstance, executor.calls)
	require.Contains(testInstance, output, "not a git repo...\n")
}

func TestRehostCommandPropagatesFatalErrors(testInstance *testing.T) {
	root := testInstance.TempDir()
	builder := &repos.RehostCommandBuilder{GitManager: &fakeGitRepositoryManager{}}

	_, executionError := executeRehost(testInstance, builder, []string{filepath.Join(root, "missing")})
	require.Error(testInstance, executionError)
}

func TestRehostCommandLogsThroughProvidedLogger(testInstance *testing.T) {
	root, repositoryPath := createRepositoryRoot(testInstance)
	observerCore, observedLogs := observer.New(zapcore.DebugLevel)
	logger := zap.New(observerCore)
	builder := &repos.RehostCommandBuilder{
		LoggerProvider: func() *zap.Logger { return logger },
		GitManager:     &fakeGitRepositoryManager{repositories: map[string]bool{repositoryPath: true}},
	}

	_, executionError := executeRehost(testInstance, builder, []string{root})
	require.NoError(testInstance, executionError)
	require.Len(testInstance, observedLogs.FilterMessage("Remote migration completed").All(), 1)
}

func TestRehostCommandSurfacesDerivationErrors(testInstance *testing.T) {
	root, repositoryPath := createRepositoryRoot(testInstance)
	builder := &repos.RehostCommandBuilder{GitManager: &unparsableRemoteManager{repositoryPath: repositoryPath}}

	_, executionError := executeRehost(testInstance, builder, []string{root})
	require.ErrorIs(testInstance, executionError, gitrepo.ErrRemoteURLMissingSeparator)
}

type unparsableRemoteManager struct {
	repositoryPath string
}

func (manager *unparsableRemoteManager) IsRepository(_ context.Context, repositoryPath string) (bool, error) {
	return repositoryPath == manager.repositoryPath, nil
}

func (manager *unparsableRemoteManager) GetRemoteURL(context.Context, string, string) (string, error) {
	return "local-only\n", nil
}

func (manager *unparsableRemoteManager) SetRemoteURL(context.Context, string, string, string) error {
	return nil
}
