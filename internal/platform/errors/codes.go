// Package errors provides structured error handling with machine-readable codes.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// Content load errors (fatal, abort startup)
	CodeContentPackLoad       Code = "CONTENT_PACK_LOAD"
	CodeContentReference      Code = "CONTENT_REFERENCE"
	CodeContentDuplicateID    Code = "CONTENT_DUPLICATE_ID"
	CodeContentRegistrySealed Code = "CONTENT_REGISTRY_SEALED"

	// Difficulty errors
	CodeDifficultyUnknownLevel   Code = "DIFFICULTY_UNKNOWN_LEVEL"
	CodeDifficultyUnknownMutator Code = "DIFFICULTY_UNKNOWN_MUTATOR"

	// Commit/chapter errors
	CodeCommitEmptyHash Code = "COMMIT_EMPTY_HASH"

	// Journal errors
	CodeJournalPathRequired Code = "JOURNAL_PATH_REQUIRED"
	CodeJournalAppend       Code = "JOURNAL_APPEND"
	CodeNotFound            Code = "NOT_FOUND"

	// Random/seed errors
	CodeSeedUnavailable Code = "SEED_UNAVAILABLE"
)
