package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"

	"github.com/bartfrenk/remote-store/pkg/provider"
)

// fakeProvider implements provider.Provider and provider.ObjectDownloader
// for testing. Listing serves pre-built pages keyed by prefix; downloads
// serve byte blobs keyed by object key.
type fakeProvider struct {
	mu sync.Mutex

	// pages maps prefix -> successive pages to serve.
	pages map[string][]provider.ListResult

	// served tracks how many pages were served per prefix.
	served map[string]int

	// tokens records the continuation tokens received, including empty
	// first-page tokens.
	tokens []string

	// listErr, when set, fails List after listErrAfter successful pages.
	listErr      error
	listErrAfter int

	// blobs maps key -> downloadable content.
	blobs map[string][]byte

	// downloadErr, when set, fails every Download after writing
	// partialBytes of the blob.
	downloadErr  error
	partialBytes int

	listCalls     int
	downloadCalls int
	closed        bool
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		pages:  make(map[string][]provider.ListResult),
		served: make(map[string]int),
		blobs:  make(map[string][]byte),
	}
}

// addPages splits the given summaries into pages of pageSize, chained with
// continuation tokens "page-1", "page-2", ...
func (f *fakeProvider) addPages(prefix string, pageSize int, objs ...provider.ObjectSummary) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var pages []provider.ListResult
	for start := 0; start < len(objs); start += pageSize {
		end := start + pageSize
		if end > len(objs) {
			end = len(objs)
		}
		page := provider.ListResult{Objects: objs[start:end]}
		if end < len(objs) {
			page.IsTruncated = true
			page.ContinuationToken = fmt.Sprintf("page-%d", len(pages)+1)
		}
		pages = append(pages, page)
	}
	if len(pages) == 0 {
		pages = []provider.ListResult{{}}
	}
	f.pages[prefix] = pages
}

func (f *fakeProvider) List(ctx context.Context, opts provider.ListOptions) (*provider.ListResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listCalls++
	f.tokens = append(f.tokens, opts.ContinuationToken)

	if f.listErr != nil && f.listCalls > f.listErrAfter {
		return nil, f.listErr
	}

	idx := f.served[opts.Prefix]
	pages := f.pages[opts.Prefix]
	if idx >= len(pages) {
		return &provider.ListResult{}, nil
	}
	f.served[opts.Prefix]++
	page := pages[idx]
	return &page, nil
}

func (f *fakeProvider) Download(ctx context.Context, key string, dst io.Writer) (int64, error) {
	f.mu.Lock()
	f.downloadCalls++
	blob, ok := f.blobs[key]
	derr := f.downloadErr
	partial := f.partialBytes
	f.mu.Unlock()

	if derr != nil {
		if partial > len(blob) {
			partial = len(blob)
		}
		n, _ := dst.Write(blob[:partial])
		return int64(n), derr
	}
	if !ok {
		return 0, &provider.ProviderError{Op: "Download", Provider: provider.ProviderFile, Key: key, Err: provider.ErrNotFound}
	}
	n, err := io.Copy(dst, bytes.NewReader(blob))
	return n, err
}

func (f *fakeProvider) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// listOnlyProvider lacks the download capability.
type listOnlyProvider struct{}

func (listOnlyProvider) List(ctx context.Context, opts provider.ListOptions) (*provider.ListResult, error) {
	return &provider.ListResult{}, nil
}

func (listOnlyProvider) Close() error { return nil }

// continuationTokens returns the non-empty tokens the provider received.
func (f *fakeProvider) continuationTokens() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []string
	for _, tok := range f.tokens {
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// gzipBytes compresses content for use as remote object bytes.
func gzipBytes(content string) []byte {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, _ = w.Write([]byte(content))
	_ = w.Close()
	return buf.Bytes()
}

// summaries builds n object summaries with keys "<prefix>obj-0000" onward.
func summaries(prefix string, n int) []provider.ObjectSummary {
	out := make([]provider.ObjectSummary, n)
	for i := range out {
		out[i] = provider.ObjectSummary{
			Key:  fmt.Sprintf("%sobj-%04d", prefix, i),
			Size: int64(100 + i),
			ETag: fmt.Sprintf("etag-%04d", i),
		}
	}
	return out
}
