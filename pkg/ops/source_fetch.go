package ops

import (
	"context"

	"github.com/droidbuild/droidbuild/pkg/pkgs"
)

// SourceFetch materializes every fetchable input of a package: the
// main source, its patches, and the implicit detached-signature files.
// When the main source is already materialized the whole enumeration
// is skipped; an extracted tree carrying its build-control file does
// not trigger any network traffic.
type SourceFetch struct {
	common
}

func (s *SourceFetch) Fetch(ctx context.Context, pkg *pkgs.Package) error {
	if pkg.Source == nil {
		s.L().Debug("package declares no source", "package", pkg.Name)
		return nil
	}

	if !pkg.NeedDownload() {
		s.L().Debug("source already materialized",
			"package", pkg.Name, "dir", pkg.Source.Dir())
		return nil
	}

	ui := GetUI(ctx)

	for _, src := range pkg.Sources() {
		if !src.NeedDownload() {
			s.L().Debug("already fetched", "url", src.URL())
			continue
		}

		ui.Downloading(src.URL())

		err := src.Fetch(ctx)
		if err != nil {
			return err
		}

		s.L().Debug("fetched", "url", src.URL(), "dir", src.Dir())
	}

	return nil
}
