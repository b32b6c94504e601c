package store

import (
	"errors"
	"fmt"
)

// Errors returned by cache operations.
var (
	// ErrNotDownloadable indicates the configured transport cannot stream
	// object contents.
	ErrNotDownloadable = errors.New("provider does not support downloads")

	// ErrHandleMode indicates a read on a write handle or vice versa.
	ErrHandleMode = errors.New("operation does not match handle mode")
)

// DownloadError reports a failed materialization. Path points at the local
// file the download was writing to, which may exist and hold partial
// contents: no cleanup is performed on failure, and the caller decides
// whether to keep, retry, or remove it.
type DownloadError struct {
	// Key is the remote object key.
	Key string

	// Path is the local cache path the download was writing to.
	Path string

	// Err is the underlying transport error.
	Err error
}

// Error implements the error interface.
func (e *DownloadError) Error() string {
	return fmt.Sprintf("download %s to %s: %v", e.Key, e.Path, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *DownloadError) Unwrap() error {
	return e.Err
}
