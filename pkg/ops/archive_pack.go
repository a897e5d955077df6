package ops

import (
	"archive/tar"
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/droidbuild/droidbuild/pkg/pkgs"
	"github.com/droidbuild/droidbuild/pkg/progress"
	"github.com/dsnet/compress/bzip2"
	"github.com/pkg/errors"
)

// ArchivePack archives a package's destination directory into the
// local dist directory under the canonical name. Only the destination
// tree's own files go in: the tarball must look like any other
// producer's for the same cache key, so no metadata entries are added.
type ArchivePack struct {
	common
}

// Pack returns the path of the archive it wrote.
func (c *ArchivePack) Pack(ctx context.Context, pkg *pkgs.Package) (string, error) {
	name, err := ArchiveName(pkg)
	if err != nil {
		return "", err
	}

	cfg := pkg.Config()

	out := filepath.Join(cfg.DistDir(), name)

	GetUI(ctx).CreatingArchive(name, cfg.DistDir())

	f, err := os.Create(out)
	if err != nil {
		return "", track(err)
	}

	err = c.writeTar(ctx, pkg.Destdir(), f)
	if err != nil {
		f.Close()
		os.Remove(out)

		return "", err
	}

	err = f.Close()
	if err != nil {
		return "", track(err)
	}

	err = recordArchiveSum(cfg, out)
	if err != nil {
		c.L().Error("recording archive digest failed", "archive", name, "error", err)
	}

	return out, nil
}

func (c *ArchivePack) writeTar(ctx context.Context, dir string, w io.Writer) error {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		switch info.Mode() & os.ModeType {
		case 0, os.ModeSymlink:
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return track(err)
	}

	sort.Strings(files)

	bz, err := bzip2.NewWriter(w, &bzip2.WriterConfig{Level: bzip2.BestCompression})
	if err != nil {
		return track(err)
	}

	tw := tar.NewWriter(bz)

	bar := progress.Count(ctx, int64(len(files)), "archiving")
	defer bar.Close()

	for _, file := range files {
		err = c.writeEntry(tw, dir, file)
		if err != nil {
			return err
		}

		bar.Tick()
	}

	err = tw.Close()
	if err != nil {
		return track(err)
	}

	return track(bz.Close())
}

func (c *ArchivePack) writeEntry(tw *tar.Writer, dir, file string) error {
	fi, err := os.Lstat(file)
	if err != nil {
		return track(err)
	}

	var link string

	if fi.Mode()&os.ModeSymlink != 0 {
		link, err = os.Readlink(file)
		if err != nil {
			return track(err)
		}
	}

	hdr, err := tar.FileInfoHeader(fi, link)
	if err != nil {
		return track(err)
	}

	hdr.Uid = 0
	hdr.Gid = 0
	hdr.Uname = ""
	hdr.Gname = ""
	hdr.Name = file[len(dir)+1:]
	hdr.Format = tar.FormatPAX

	err = tw.WriteHeader(hdr)
	if err != nil {
		return errors.Wrapf(err, "writing header for %s", hdr.Name)
	}

	if link != "" {
		return nil
	}

	f, err := os.Open(file)
	if err != nil {
		return track(err)
	}

	defer f.Close()

	_, err = io.Copy(tw, f)

	return track(err)
}
