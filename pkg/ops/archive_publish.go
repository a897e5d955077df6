package ops

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/droidbuild/droidbuild/pkg/pkgs"
)

// ArchivePublish copies a finished archive onto the publish mount.
// Writers on that mount tend to run with a restrictive umask, so the
// published file is explicitly made world-readable.
type ArchivePublish struct {
	common
}

// Publish is a successful no-op when the package opted out of
// uploading or when no destination mount is configured.
func (a *ArchivePublish) Publish(ctx context.Context, pkg *pkgs.Package) error {
	if pkg.SkipUpload {
		GetUI(ctx).SkipUpload(pkg.Name)
		return nil
	}

	cfg := pkg.Config()

	if cfg.ArchiveDest == "" {
		a.L().Debug("no archive destination configured, not publishing",
			"package", pkg.Name)
		return nil
	}

	name, err := ArchiveName(pkg)
	if err != nil {
		return err
	}

	src := filepath.Join(cfg.DistDir(), name)
	dest := filepath.Join(cfg.ArchiveDest, name)

	GetUI(ctx).Publishing(name, cfg.ArchiveDest)

	err = copyFile(src, dest)
	if err != nil {
		return err
	}

	return track(os.Chmod(dest, 0644))
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return track(err)
	}

	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return track(err)
	}

	_, err = io.Copy(out, in)
	if err != nil {
		out.Close()
		return track(err)
	}

	return track(out.Close())
}
