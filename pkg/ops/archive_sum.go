package ops

import (
	"io"
	"os"
	"path/filepath"

	"github.com/droidbuild/droidbuild/pkg/config"
	"github.com/droidbuild/droidbuild/pkg/sumfile"
	"golang.org/x/crypto/blake2b"
)

// recordArchiveSum notes an archive digest in the dist ledger. The
// ledger is informational (the archive name is the cache key), but it
// gives operators a way to compare what a mirror served against what
// was built.
func recordArchiveSum(cfg *config.Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return track(err)
	}

	defer f.Close()

	h, _ := blake2b.New256(nil)

	_, err = io.Copy(h, f)
	if err != nil {
		return track(err)
	}

	sums, err := sumfile.LoadFile(cfg.SumFilePath())
	if err != nil {
		return err
	}

	_, err = sums.Add(filepath.Base(path), "b2", h.Sum(nil))
	if err != nil {
		return err
	}

	return sums.SaveFile(cfg.SumFilePath())
}
