// Package provider defines the transport abstraction consumed by the
// remote-store cache layer.
//
// Providers implement a minimal surface: paginated prefix listing plus a
// streaming download capability. Authentication uses SDK default credential
// chains - providers should not implement custom auth logic.
package provider

import (
	"context"
	"io"
	"time"
)

// Provider abstracts object store listing operations.
//
// Implementations should:
//   - Use SDK default credential chains where applicable
//   - Support pagination via continuation tokens
//   - Be safe for sequential reuse across calls
type Provider interface {
	// List returns a page of objects with the given prefix.
	// Use ContinuationToken from ListResult for subsequent pages.
	List(ctx context.Context, opts ListOptions) (*ListResult, error)

	// Close releases any resources held by the provider.
	Close() error
}

// ObjectDownloader is an optional capability for providers that can stream
// an object's contents into a writer. Feature detection is by type
// assertion, keeping the core Provider interface small.
type ObjectDownloader interface {
	// Download streams the object's bytes into dst and returns the number
	// of bytes written.
	Download(ctx context.Context, key string, dst io.Writer) (int64, error)
}

// ListOptions configures a List operation.
type ListOptions struct {
	// Prefix filters results to keys starting with this value.
	// Empty string lists all objects.
	Prefix string

	// ContinuationToken resumes listing from a previous ListResult.
	// Empty string starts from the beginning.
	ContinuationToken string

	// MaxKeys limits the number of objects returned per page.
	// Zero uses the provider default (typically 1000).
	MaxKeys int
}

// ListResult contains a page of objects from a List operation.
type ListResult struct {
	// Objects contains the object summaries for this page.
	Objects []ObjectSummary

	// ContinuationToken is used to retrieve the next page.
	// Empty string indicates no more pages.
	ContinuationToken string

	// IsTruncated indicates whether more results are available.
	IsTruncated bool
}

// ObjectSummary contains the metadata returned for one listed object.
type ObjectSummary struct {
	// Key is the full object key (path) in the bucket.
	Key string

	// Size is the object size in bytes.
	Size int64

	// ETag is the entity tag, typically an MD5 hash of the object.
	ETag string

	// LastModified is when the object was last modified.
	LastModified time.Time
}

// ProviderType identifies a transport provider.
type ProviderType string

const (
	// ProviderS3 represents AWS S3 or S3-compatible storage.
	ProviderS3 ProviderType = "s3"

	// ProviderFile represents a local filesystem directory.
	ProviderFile ProviderType = "file"
)

// String returns the string representation of the provider type.
func (p ProviderType) String() string {
	return string(p)
}
