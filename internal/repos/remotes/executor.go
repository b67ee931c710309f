package remotes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/rehost/internal/gitrepo"
	"github.com/temirov/rehost/internal/repos/discovery"
	"github.com/temirov/rehost/internal/repos/shared"
)

const (
	lookingMessage           = "Looking for git repos inside: %q\n"
	checkingMessage          = "Checking %s\n"
	notRepositoryMessage     = "not a git repo...\n"
	updatingMessage          = "Updating %s\n"
	inaccessibleMessage      = "cannot enter %s...\n"
	remoteUnavailableMessage = "error getting remote %s...\n"
	planMessage              = "would set %s to %s\n"
	updateFailedMessage      = "failed to set new url... :-/\n"
	updatedMessage           = "done!\n"

	fileSystemMissingMessage      = "remote migration requires a filesystem"
	gitManagerMissingMessage      = "remote migration requires a git repository manager"
	workingDirectoryErrorTemplate = "unable to determine working directory: %w"
	rootResolutionErrorTemplate   = "unable to resolve root %s: %w"
	repositoryCheckErrorTemplate  = "unable to check %s: %w"
	remoteReadErrorTemplate       = "unable to read %s remote of %s: %w"
	remoteNameErrorTemplate       = "unable to derive repository name for %s: %w"
	remoteUpdateErrorTemplate     = "unable to update %s remote of %s: %w"

	logMessageSkippedCandidate = "Skipping candidate"
	logMessageInaccessible     = "Candidate directory cannot be entered"
	logMessageCompleted        = "Remote migration completed"
	logFieldPath               = "path"
	logFieldHidden             = "hidden"
	logFieldDirectory          = "directory"
	logFieldCandidates         = "candidates"
	logFieldUpdated            = "updated"
	logFieldPlanned            = "planned"
	logFieldSkipped            = "skipped"
)

// Outcome classifies what happened to one directory entry.
type Outcome string

// Outcomes reported for entries of the root.
const (
	OutcomeSkippedHidden       Outcome = Outcome("skipped-hidden")
	OutcomeSkippedNotDirectory Outcome = Outcome("skipped-not-directory")
	OutcomeNotRepository       Outcome = Outcome("not-repository")
	OutcomeInaccessible        Outcome = Outcome("inaccessible")
	OutcomeRemoteUnavailable   Outcome = Outcome("remote-unavailable")
	OutcomePlanned             Outcome = Outcome("planned")
	OutcomeUpdateFailed        Outcome = Outcome("update-failed")
	OutcomeUpdated             Outcome = Outcome("updated")
)

// Options configures a migration run.
type Options struct {
	// Root is the directory whose immediate children are examined. Empty means the working directory.
	Root string
	// TargetPrefix is prepended to each repository name. Empty means shared.DefaultTargetPrefixConstant.
	TargetPrefix string
	// RemoteName is the remote rewritten. Empty means shared.OriginRemoteNameConstant.
	RemoteName string
	DryRun     bool
}

// Dependencies captures collaborators required to migrate remotes.
type Dependencies struct {
	FileSystem shared.FileSystem
	GitManager shared.GitRepositoryManager
	Output     io.Writer
	Logger     *zap.Logger
}

// Result records the outcome for a single entry of the root.
type Result struct {
	Path        string
	Outcome     Outcome
	PreviousURL string
	TargetURL   string
}

// Summary lists the results of a run in enumeration order.
type Summary struct {
	Root    string
	Results []Result
}

// Count returns the number of results with outcome.
func (summary Summary) Count(outcome Outcome) int {
	count := 0
	for _, result := range summary.Results {
		if result.Outcome == outcome {
			count++
		}
	}
	return count
}

// Executor rewrites the remotes of the repositories directly under a root.
type Executor struct {
	dependencies Dependencies
	enumerator   *discovery.DirectoryEnumerator
}

// NewExecutor constructs an Executor from the provided dependencies.
func NewExecutor(dependencies Dependencies) (*Executor, error) {
	if dependencies.FileSystem == nil {
		return nil, errors.New(fileSystemMissingMessage)
	}
	if dependencies.GitManager == nil {
		return nil, errors.New(gitManagerMissingMessage)
	}
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	enumerator, enumeratorError := discovery.NewDirectoryEnumerator(dependencies.FileSystem)
	if enumeratorError != nil {
		return nil, enumeratorError
	}
	return &Executor{dependencies: dependencies, enumerator: enumerator}, nil
}

// Execute examines every immediate entry of the root once. Per-entry git failures are
// reported and skipped; a returned error aborts the run and carries the results gathered so far.
func (executor *Executor) Execute(executionContext context.Context, options Options) (Summary, error) {
	remoteName := strings.TrimSpace(options.RemoteName)
	if len(remoteName) == 0 {
		remoteName = shared.OriginRemoteNameConstant
	}
	targetPrefix := options.TargetPrefix
	if len(strings.TrimSpace(targetPrefix)) == 0 {
		targetPrefix = shared.DefaultTargetPrefixConstant
	}

	root, rootError := executor.resolveRoot(options.Root)
	if rootError != nil {
		return Summary{}, rootError
	}
	summary := Summary{Root: root}
	executor.printfOutput(lookingMessage, root)

	entries, listError := executor.enumerator.Enumerate(root)
	if listError != nil {
		return summary, listError
	}

	for _, entry := range entries {
		if contextError := executionContext.Err(); contextError != nil {
			return summary, contextError
		}

		candidate, classifyError := discovery.Classify(root, entry)
		if classifyError != nil {
			return summary, classifyError
		}

		if !candidate.Eligible() {
			outcome := OutcomeSkippedNotDirectory
			if candidate.Hidden {
				outcome = OutcomeSkippedHidden
			}
			executor.dependencies.Logger.Debug(
				logMessageSkippedCandidate,
				zap.String(logFieldPath, candidate.Path),
				zap.Bool(logFieldHidden, candidate.Hidden),
				zap.Bool(logFieldDirectory, candidate.Directory),
			)
			summary.Results = append(summary.Results, Result{Path: candidate.Path, Outcome: outcome})
			continue
		}

		result, candidateError := executor.migrateCandidate(executionContext, candidate, remoteName, targetPrefix, options.DryRun)
		summary.Results = append(summary.Results, result)
		if candidateError != nil {
			return summary, candidateError
		}
	}

	executor.dependencies.Logger.Info(
		logMessageCompleted,
		zap.String(logFieldPath, root),
		zap.Int(logFieldCandidates, len(summary.Results)),
		zap.Int(logFieldUpdated, summary.Count(OutcomeUpdated)),
		zap.Int(logFieldPlanned, summary.Count(OutcomePlanned)),
		zap.Int(logFieldSkipped, len(summary.Results)-summary.Count(OutcomeUpdated)-summary.Count(OutcomePlanned)),
	)
	return summary, nil
}

func (executor *Executor) migrateCandidate(executionContext context.Context, candidate discovery.Candidate, remoteName string, targetPrefix string, dryRun bool) (Result, error) {
	result := Result{Path: candidate.Path}
	executor.printfOutput(checkingMessage, candidate.Path)

	isRepository, checkError := executor.dependencies.GitManager.IsRepository(executionContext, candidate.Path)
	if checkError != nil {
		return result, fmt.Errorf(repositoryCheckErrorTemplate, candidate.Path, checkError)
	}
	if !isRepository {
		executor.printfOutput(notRepositoryMessage)
		result.Outcome = OutcomeNotRepository
		return result, nil
	}

	executor.printfOutput(updatingMessage, candidate.Path)

	if accessError := executor.dependencies.FileSystem.CheckAccessible(candidate.Path); accessError != nil {
		executor.dependencies.Logger.Warn(logMessageInaccessible, zap.String(logFieldPath, candidate.Path), zap.Error(accessError))
		executor.printfOutput(inaccessibleMessage, candidate.Path)
		result.Outcome = OutcomeInaccessible
		return result, nil
	}

	remoteOutput, remoteError := executor.dependencies.GitManager.GetRemoteURL(executionContext, candidate.Path, remoteName)
	if remoteError != nil {
		if errors.Is(remoteError, gitrepo.ErrRemoteUnavailable) {
			executor.printfOutput(remoteUnavailableMessage, remoteName)
			result.Outcome = OutcomeRemoteUnavailable
			return result, nil
		}
		return result, fmt.Errorf(remoteReadErrorTemplate, remoteName, candidate.Path, remoteError)
	}
	result.PreviousURL = strings.TrimSuffix(remoteOutput, "\n")

	repositoryName, nameError := gitrepo.DeriveRepositoryName(remoteOutput)
	if nameError != nil {
		return result, fmt.Errorf(remoteNameErrorTemplate, candidate.Path, nameError)
	}
	result.TargetURL = gitrepo.BuildTargetURL(targetPrefix, repositoryName)

	if dryRun {
		executor.printfOutput(planMessage, remoteName, result.TargetURL)
		result.Outcome = OutcomePlanned
		return result, nil
	}

	updateError := executor.dependencies.GitManager.SetRemoteURL(executionContext, candidate.Path, remoteName, result.TargetURL)
	if updateError != nil {
		if errors.Is(updateError, gitrepo.ErrRemoteUpdateFailed) {
			executor.printfOutput(updateFailedMessage)
			result.Outcome = OutcomeUpdateFailed
			return result, nil
		}
		return result, fmt.Errorf(remoteUpdateErrorTemplate, remoteName, candidate.Path, updateError)
	}

	executor.printfOutput(updatedMessage)
	result.Outcome = OutcomeUpdated
	return result, nil
}

func (executor *Executor) resolveRoot(requestedRoot string) (string, error) {
	if len(strings.TrimSpace(requestedRoot)) == 0 {
		workingDirectory, workingDirectoryError := executor.dependencies.FileSystem.Getwd()
		if workingDirectoryError != nil {
			return "", fmt.Errorf(workingDirectoryErrorTemplate, workingDirectoryError)
		}
		return workingDirectory, nil
	}
	absoluteRoot, absoluteError := executor.dependencies.FileSystem.Abs(requestedRoot)
	if absoluteError != nil {
		return "", fmt.Errorf(rootResolutionErrorTemplate, requestedRoot, absoluteError)
	}
	return absoluteRoot, nil
}

func (executor *Executor) printfOutput(format string, arguments ...any) {
	if executor.dependencies.Output == nil {
		return
	}
	fmt.Fprintf(executor.dependencies.Output, format, arguments...)
}
