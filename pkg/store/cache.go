package store

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bartfrenk/remote-store/pkg/provider"
)

// IsCached reports whether a local copy of the object exists. The existence
// of a regular file at the resolved cache path is the sole hit signal; no
// manifest or index is consulted.
func (s *Store) IsCached(obj *Object) bool {
	st, err := os.Stat(s.cachePath(obj))
	return err == nil && st.Mode().IsRegular()
}

// Download materializes the object into the local cache and returns the
// cache path.
//
// Parent directories are created as needed and the local file is created or
// truncated before the transfer starts. On transport failure the error is
// returned as a *DownloadError together with the path: the partially written
// file is left in place, a failure marker goes to the progress sink, and no
// retry is attempted. The caller decides what to do with the partial copy.
func (s *Store) Download(ctx context.Context, obj *Object) (string, error) {
	path := s.cachePath(obj)

	p, err := s.provider(ctx)
	if err != nil {
		return path, err
	}
	dl, ok := p.(provider.ObjectDownloader)
	if !ok {
		return path, ErrNotDownloadable
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return path, &DownloadError{Key: obj.Key, Path: path, Err: err}
	}

	f, err := os.Create(path)
	if err != nil {
		return path, &DownloadError{Key: obj.Key, Path: path, Err: err}
	}

	if err := s.waitForRateLimit(ctx); err != nil {
		_ = f.Close()
		return path, &DownloadError{Key: obj.Key, Path: path, Err: err}
	}

	s.say(".")
	_, dlErr := dl.Download(ctx, obj.Key, f)
	closeErr := f.Close()

	if dlErr != nil {
		s.say("!")
		return path, &DownloadError{Key: obj.Key, Path: path, Err: dlErr}
	}
	if closeErr != nil {
		return path, &DownloadError{Key: obj.Key, Path: path, Err: closeErr}
	}

	return path, nil
}

// ClearCached removes the local copy of the object. An absent copy is not
// an error.
func (s *Store) ClearCached(obj *Object) error {
	err := os.Remove(s.cachePath(obj))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
