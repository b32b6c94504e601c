package store

import (
	"context"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
)

// Mode selects how Open accesses the cached copy.
type Mode int

const (
	// ModeRead opens the cached copy for reading, materializing it first
	// if absent.
	ModeRead Mode = iota

	// ModeWrite creates or truncates the cached copy for writing. No
	// materialization occurs.
	ModeWrite

	// ModeAppend opens the cached copy for appending, creating it if
	// absent. No materialization occurs. Appended content becomes an
	// additional gzip member, which decompresses as a concatenation.
	ModeAppend
)

// Handle is a readable or writable view over a cached copy, layered through
// transparent gzip compression. Close releases the compression layer and
// the underlying file on all paths; a Handle must not be used after Close.
type Handle struct {
	f *os.File
	r *gzip.Reader
	w *gzip.Writer
}

// Open returns a handle over the object's locally cached copy.
//
// In ModeRead a cache miss triggers materialization first; a failed
// materialization is returned as an error rather than yielding a handle
// over a missing or truncated file. Contents are read and written through a
// gzip layer regardless of whether the remote object is itself compressed;
// the caller is responsible for content compatibility.
func (s *Store) Open(ctx context.Context, obj *Object, mode Mode) (*Handle, error) {
	path := s.cachePath(obj)

	switch mode {
	case ModeRead:
		if !s.IsCached(obj) {
			if _, err := s.Download(ctx, obj); err != nil {
				return nil, err
			}
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		r, err := gzip.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, err
		}
		return &Handle{f: f, r: r}, nil

	case ModeWrite, ModeAppend:
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
		flags := os.O_WRONLY | os.O_CREATE
		if mode == ModeAppend {
			flags |= os.O_APPEND
		} else {
			flags |= os.O_TRUNC
		}
		f, err := os.OpenFile(path, flags, 0o644)
		if err != nil {
			return nil, err
		}
		return &Handle{f: f, w: gzip.NewWriter(f)}, nil

	default:
		return nil, ErrHandleMode
	}
}

// Read reads decompressed content. Fails on write handles.
func (h *Handle) Read(p []byte) (int, error) {
	if h.r == nil {
		return 0, ErrHandleMode
	}
	return h.r.Read(p)
}

// Write compresses and writes content. Fails on read handles.
func (h *Handle) Write(p []byte) (int, error) {
	if h.w == nil {
		return 0, ErrHandleMode
	}
	return h.w.Write(p)
}

// Close releases the compression layer and then the file. The file is
// closed even when the compression layer fails to close.
func (h *Handle) Close() error {
	var layerErr error
	if h.r != nil {
		layerErr = h.r.Close()
	}
	if h.w != nil {
		layerErr = h.w.Close()
	}
	fileErr := h.f.Close()
	if layerErr != nil {
		return layerErr
	}
	return fileErr
}
