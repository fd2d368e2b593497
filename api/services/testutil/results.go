package testutil

import "errors"

// StoreError is the message of every failing mocked store call.
const StoreError = "store unavailable"

// RepoResult is what a mocked repository call hands back.
type RepoResult[T any] struct {
	Data T
	Err  error
}

// RepoSuccess wraps the rows a mocked query returns.
func RepoSuccess[T any](data T) *RepoResult[T] {
	return &RepoResult[T]{Data: data}
}

// RepoFailure is a mocked query failing with StoreError.
func RepoFailure[T any]() *RepoResult[T] {
	return &RepoResult[T]{Err: errors.New(StoreError)}
}
