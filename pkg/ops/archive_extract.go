package ops

import (
	"archive/tar"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/droidbuild/droidbuild/pkg/pkgs"
	"github.com/dsnet/compress/bzip2"
)

// ArchiveExtract unpacks a package's archive from dist into the shared
// sysroot, where every dependent build's include and library paths
// point. It runs for cached archives and freshly built ones alike.
type ArchiveExtract struct {
	common
}

func (e *ArchiveExtract) Extract(ctx context.Context, pkg *pkgs.Package) error {
	name, err := ArchiveName(pkg)
	if err != nil {
		return err
	}

	cfg := pkg.Config()

	path := filepath.Join(cfg.DistDir(), name)

	e.L().Debug("extracting archive",
		"archive", name, "sysroot", cfg.SysrootDir())

	f, err := os.Open(path)
	if err != nil {
		return track(err)
	}

	defer f.Close()

	return e.unpack(f, cfg.SysrootDir())
}

// unpack restores regular files and symlinks, creating parent
// directories as needed. Existing files are overwritten: the sysroot
// keeps whatever was extracted last, and nothing rolls back on failure.
func (e *ArchiveExtract) unpack(in io.Reader, dir string) error {
	bz, err := bzip2.NewReader(in, nil)
	if err != nil {
		return track(err)
	}

	tr := tar.NewReader(bz)

	for {
		hdr, err := tr.Next()
		if err != nil {
			if err == io.EOF {
				break
			}

			return track(err)
		}

		path := filepath.Join(dir, hdr.Name)

		parent := filepath.Dir(path)
		if _, err := os.Stat(parent); err != nil {
			err = os.MkdirAll(parent, 0755)
			if err != nil {
				return track(err)
			}
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			err = os.MkdirAll(path, hdr.FileInfo().Mode().Perm())
			if err != nil {
				return track(err)
			}
		case tar.TypeReg:
			mode := hdr.FileInfo().Mode()

			f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
			if err != nil {
				return track(err)
			}

			_, err = io.Copy(f, tr)
			if err != nil {
				f.Close()
				return track(err)
			}

			err = f.Close()
			if err != nil {
				return track(err)
			}

			// The open mode is filtered by the umask; restate
			// the recorded permissions.
			err = os.Chmod(path, mode.Perm())
			if err != nil {
				return track(err)
			}
		case tar.TypeSymlink:
			os.Remove(path)

			err = os.Symlink(hdr.Linkname, path)
			if err != nil {
				return track(err)
			}
		}
	}

	return nil
}
