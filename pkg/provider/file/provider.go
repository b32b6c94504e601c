// Package file implements the provider interface over a local directory.
//
// Keys are treated as relative paths under BaseDir. The provider exists for
// development and tests, where a real object store is not available.
package file

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bartfrenk/remote-store/pkg/provider"
)

// Provider implements provider.Provider for local filesystem paths.
type Provider struct {
	baseDir string
}

// Ensure Provider implements the interfaces.
var (
	_ provider.Provider         = (*Provider)(nil)
	_ provider.ObjectDownloader = (*Provider)(nil)
)

// Config configures a file provider.
type Config struct {
	// BaseDir is the directory whose contents are exposed as objects.
	BaseDir string
}

// Validate checks that required configuration is present.
func (c Config) Validate() error {
	if strings.TrimSpace(c.BaseDir) == "" {
		return fmt.Errorf("base dir is required")
	}
	return nil
}

// New creates a file provider rooted at cfg.BaseDir.
func New(cfg Config) (*Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Provider{baseDir: filepath.Clean(cfg.BaseDir)}, nil
}

// Close releases any resources held by the provider.
func (p *Provider) Close() error { return nil }

// List returns a page of keys under the prefix in lexicographic order.
// The continuation token is the last key of the previous page.
func (p *Provider) List(ctx context.Context, opts provider.ListOptions) (*provider.ListResult, error) {
	_ = ctx
	maxKeys := opts.MaxKeys
	if maxKeys <= 0 {
		maxKeys = 1000
	}

	prefix := strings.TrimPrefix(opts.Prefix, "/")
	keys, err := p.collectKeys(prefix)
	if err != nil {
		return nil, p.wrapError("List", opts.Prefix, err)
	}
	sort.Strings(keys)

	start := 0
	if opts.ContinuationToken != "" {
		// Start strictly after the last returned key.
		idx := sort.SearchStrings(keys, opts.ContinuationToken)
		for idx < len(keys) && keys[idx] <= opts.ContinuationToken {
			idx++
		}
		start = idx
	}

	end := start + maxKeys
	if end > len(keys) {
		end = len(keys)
	}

	objects := make([]provider.ObjectSummary, 0, end-start)
	for _, k := range keys[start:end] {
		full, err := p.fullPath(k)
		if err != nil {
			continue
		}
		st, err := os.Stat(full)
		if err != nil || st.IsDir() {
			continue
		}
		objects = append(objects, provider.ObjectSummary{Key: k, Size: st.Size(), LastModified: st.ModTime()})
	}

	res := &provider.ListResult{Objects: objects}
	if end < len(keys) {
		res.IsTruncated = true
		res.ContinuationToken = keys[end-1]
	}
	return res, nil
}

// Download copies the file's bytes into dst.
func (p *Provider) Download(ctx context.Context, key string, dst io.Writer) (int64, error) {
	_ = ctx
	full, err := p.fullPath(key)
	if err != nil {
		return 0, p.wrapError("Download", key, err)
	}
	f, err := os.Open(full)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, &provider.ProviderError{Op: "Download", Provider: provider.ProviderFile, Key: key, Err: provider.ErrNotFound}
		}
		return 0, p.wrapError("Download", key, err)
	}
	defer func() { _ = f.Close() }()

	n, err := io.Copy(dst, f)
	if err != nil {
		return n, p.wrapError("Download", key, err)
	}
	return n, nil
}

// collectKeys walks the base dir and returns slash-separated keys matching prefix.
func (p *Provider) collectKeys(prefix string) ([]string, error) {
	var keys []string
	err := filepath.WalkDir(p.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(p.baseDir, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if prefix == "" || strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// fullPath resolves a key to an absolute path under the base dir, rejecting
// keys that escape it.
func (p *Provider) fullPath(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(strings.TrimPrefix(key, "/")))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("key escapes base dir: %s", key)
	}
	return filepath.Join(p.baseDir, clean), nil
}

func (p *Provider) wrapError(op, key string, err error) error {
	return &provider.ProviderError{
		Op:       op,
		Provider: provider.ProviderFile,
		Key:      key,
		Err:      err,
	}
}
