// Package execshell runs external tools on behalf of rehost.
//
// ShellExecutor wraps a CommandRunner with zap logging and splits outcomes
// into two classes: a process that ran and exited non-zero
// (CommandFailedError) and a process that could not run at all
// (CommandExecutionError). Callers rely on that split to decide between
// skipping a repository and aborting the run.
package execshell
