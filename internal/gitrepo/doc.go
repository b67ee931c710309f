// Package gitrepo is the boundary between rehost and git.
//
// Three operations cross it: checking that a path is inside a working tree,
// reading a remote's URL, and replacing it. CLIRepositoryManager shells out to
// git with the exact argument shapes git users expect; NativeRepositoryManager
// performs the same operations in-process with go-git. Both report a command
// that ran and failed through IsRepository's boolean or the
// ErrRemoteUnavailable and ErrRemoteUpdateFailed sentinels, and return any
// other error only when the operation could not be attempted.
package gitrepo
