package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/droidbuild/droidbuild/pkg/cleanhttp"
	"github.com/droidbuild/droidbuild/pkg/progress"
	"github.com/pkg/errors"
)

// ErrVersionUnknown means a source cannot name its version yet. The
// version is part of every archive cache key, so a package cannot be
// built (or looked up remotely) until this resolves.
var ErrVersionUnknown = errors.New("source version unknown")

// FetchError is a failed retrieval. Status is the HTTP status when the
// server answered, zero when the transport itself failed. Fetching a
// source is always fatal on any FetchError; the archive cache treats
// its own not-found case differently, which is why the status is
// exposed rather than collapsed into a generic error.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
	}

	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Source is where a package's code comes from. The two variants are a
// fetchable URL (usually a release archive) and a version-control
// checkout; both resolve to a local directory plus a version string.
type Source interface {
	// URL is the origin locator.
	URL() string

	// SigSuffix, when non-empty, names a detached signature fetched
	// from URL()+SigSuffix() alongside this source.
	SigSuffix() string

	// Dir is the local directory this source materializes into.
	Dir() string

	// NeedDownload reports whether Fetch has work to do. A checkout
	// always does; a URL source is considered materialized once its
	// extracted tree carries a build-control file.
	NeedDownload() bool

	// Version derives the version string when the package does not
	// declare one. ErrVersionUnknown if it cannot be known yet.
	Version() (string, error)

	Fetch(ctx context.Context) error
}

// Download streams url to dest through the shared client. The write
// goes to a temp file first so an interrupted transfer never leaves a
// plausible-looking download behind. The archive cache uses the same
// primitive; the two paths differ only in how the caller reads a 404.
func Download(ctx context.Context, url, dest string) error {
	resp, err := cleanhttp.Get(ctx, url)
	if err != nil {
		return &FetchError{URL: url, Err: err}
	}

	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return &FetchError{URL: url, Status: resp.StatusCode}
	}

	tmp := dest + ".part"

	f, err := os.Create(tmp)
	if err != nil {
		return errors.WithStack(err)
	}

	bar := progress.Bytes(ctx, resp.ContentLength, filepath.Base(dest))
	defer bar.Close()

	_, err = io.Copy(io.MultiWriter(f, bar), resp.Body)
	if err != nil {
		f.Close()
		os.Remove(tmp)

		return &FetchError{URL: url, Err: err}
	}

	err = f.Close()
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(os.Rename(tmp, dest))
}
