// Package shared defines the contracts between the rehost command and its collaborators.
package shared
