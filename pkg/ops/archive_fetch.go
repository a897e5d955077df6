package ops

import (
	"context"
	"os"
	"path/filepath"

	"github.com/droidbuild/droidbuild/pkg/pkgs"
	"github.com/droidbuild/droidbuild/pkg/source"
	"github.com/pkg/errors"
)

// ArchiveFetch asks the remote store for a package's archive.
type ArchiveFetch struct {
	common
}

// Fetch reports whether the archive is present locally afterwards. A
// local copy short-circuits with no network call, so it is safe to
// call repeatedly. A remote 404 or 410 is a soft miss (false, nil): no
// cached build exists and the caller proceeds to build from source.
// Any other failure is real and propagates. The not-found case is
// special only on this path; a 404 while fetching a source stays
// fatal.
func (a *ArchiveFetch) Fetch(ctx context.Context, pkg *pkgs.Package) (bool, error) {
	if pkg.SkipUpload {
		GetUI(ctx).SkipFetch(pkg.Name)
		return false, nil
	}

	name, err := ArchiveName(pkg)
	if err != nil {
		return false, err
	}

	cfg := pkg.Config()

	local := filepath.Join(cfg.DistDir(), name)

	if _, err := os.Stat(local); err == nil {
		GetUI(ctx).AlreadyDownloaded(local)
		return true, nil
	}

	url := cfg.ArchivesRoot + name

	GetUI(ctx).Downloading(url)

	err = source.Download(ctx, url, local)
	if err != nil {
		var fe *source.FetchError
		if errors.As(err, &fe) && (fe.Status == 404 || fe.Status == 410) {
			GetUI(ctx).ArchiveMissing(url)
			a.L().Debug("archive not in remote store", "url", url)

			return false, nil
		}

		return false, err
	}

	err = recordArchiveSum(cfg, local)
	if err != nil {
		a.L().Error("recording archive digest failed", "archive", name, "error", err)
	}

	return true, nil
}
