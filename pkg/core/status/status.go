// Package status exports errors produced by the core package.
package status

import (
	"github.com/oneconcern/checkpoint/pkg/errors"
)

var (
	// ErrStateNotFound indicates a (branch, checkpoint) pair held by neither
	// the cache nor durable storage
	ErrStateNotFound = errors.New("state not found in cache or durable storage")

	// ErrBranchNotFound indicates a branch absent from the registry
	ErrBranchNotFound = errors.New("branch not found")

	// ErrBranchExists indicates an attempt to create a branch under a name
	// already registered
	ErrBranchExists = errors.New("branch exists already")

	// ErrInvalidBranchOperation indicates an attempt to delete a protected
	// branch. The more specific ErrDefaultBranch and ErrActiveBranch both
	// match it with errors.Is.
	ErrInvalidBranchOperation = errors.New("invalid branch operation")

	// ErrDefaultBranch indicates an attempt to delete the default branch
	ErrDefaultBranch = errors.New("cannot delete the default branch").Wrap(ErrInvalidBranchOperation)

	// ErrActiveBranch indicates an attempt to delete the currently active branch
	ErrActiveBranch = errors.New("cannot delete the active branch").Wrap(ErrInvalidBranchOperation)

	// ErrCorruptSnapshot indicates durable bytes which failed to decode.
	// Fatal to the load that hit it, not to the store.
	ErrCorruptSnapshot = errors.New("corrupt snapshot in durable storage")

	// ErrSerializationFailure indicates a dataset which could not be encoded
	// on spill or export. The triggering operation fails rather than
	// silently dropping data.
	ErrSerializationFailure = errors.New("snapshot serialization failed")

	// ErrHistoryLinkage indicates a record appended out of parent order.
	// This is a logic error in the store, never a user-facing condition.
	ErrHistoryLinkage = errors.New("checkpoint record breaks parent linkage")
)
