package source

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/droidbuild/droidbuild/pkg/config"
	"github.com/hashicorp/go-getter"
	"github.com/pkg/errors"
)

// URLSource fetches a file by URL into the download directory. When
// the filename carries a known archive suffix the file is additionally
// unpacked into the sources directory; plain files (patches, detached
// signatures) stay where they land.
type URLSource struct {
	url       string
	sigSuffix string

	downloads string
	sources   string
}

type URLOption func(*URLSource)

// WithSigSuffix declares a detached signature published next to the
// file, e.g. ".sig" or ".asc".
func WithSigSuffix(suffix string) URLOption {
	return func(s *URLSource) {
		s.sigSuffix = suffix
	}
}

func NewURL(cfg *config.Config, url string, opts ...URLOption) *URLSource {
	s := &URLSource{
		url:       url,
		downloads: cfg.DownloadDir(),
		sources:   cfg.SourcesDir(),
	}

	for _, o := range opts {
		o(s)
	}

	return s
}

func (s *URLSource) URL() string {
	return s.url
}

func (s *URLSource) SigSuffix() string {
	return s.sigSuffix
}

// Path is where the fetched file lands.
func (s *URLSource) Path() string {
	return filepath.Join(s.downloads, path.Base(s.url))
}

// archiveSuffix finds the longest decompressor suffix matching the
// filename, empty when the file is not an archive we can unpack.
func (s *URLSource) archiveSuffix() string {
	base := path.Base(s.url)

	var archive string

	matchingLen := 0
	for k := range getter.Decompressors {
		if strings.HasSuffix(base, "."+k) && len(k) > matchingLen {
			archive = k
			matchingLen = len(k)
		}
	}

	return archive
}

// stem is the filename with the archive suffix removed; release
// tarballs of the packages built here unpack into a directory of this
// name.
func (s *URLSource) stem() string {
	base := path.Base(s.url)

	if suffix := s.archiveSuffix(); suffix != "" {
		return strings.TrimSuffix(base, "."+suffix)
	}

	return base
}

func (s *URLSource) Dir() string {
	if s.archiveSuffix() == "" {
		return s.downloads
	}

	return filepath.Join(s.sources, s.stem())
}

func (s *URLSource) NeedDownload() bool {
	if s.archiveSuffix() == "" {
		_, err := os.Stat(s.Path())
		return err != nil
	}

	_, err := os.Stat(filepath.Join(s.Dir(), "Makefile"))

	return err != nil
}

// Version parses the version out of the archive stem: everything after
// the last dash, which must look like a number ("Python-3.11.4.tar.xz"
// yields "3.11.4").
func (s *URLSource) Version() (string, error) {
	stem := s.stem()

	idx := strings.LastIndexByte(stem, '-')
	if idx == -1 || idx == len(stem)-1 {
		return "", errors.Wrapf(ErrVersionUnknown, "%s", path.Base(s.url))
	}

	ver := stem[idx+1:]
	if ver[0] < '0' || ver[0] > '9' {
		return "", errors.Wrapf(ErrVersionUnknown, "%s", path.Base(s.url))
	}

	return ver, nil
}

func (s *URLSource) Fetch(ctx context.Context) error {
	dest := s.Path()

	if _, err := os.Stat(dest); err != nil {
		err = Download(ctx, s.url, dest)
		if err != nil {
			return err
		}
	}

	suffix := s.archiveSuffix()
	if suffix == "" {
		return nil
	}

	if _, err := os.Stat(s.Dir()); err == nil {
		return nil
	}

	dec := getter.Decompressors[suffix]

	err := dec.Decompress(s.sources, dest, true, 0)
	if err != nil {
		return errors.Wrapf(err, "unpacking %s", path.Base(s.url))
	}

	return nil
}
