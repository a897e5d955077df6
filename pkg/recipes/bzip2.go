package recipes

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/droidbuild/droidbuild/pkg/config"
	"github.com/droidbuild/droidbuild/pkg/pkgs"
	"github.com/droidbuild/droidbuild/pkg/source"
)

func init() {
	pkgs.Register("bzip2", NewBzip2)
}

type Bzip2 struct {
	pkg *pkgs.Package
}

func NewBzip2(cfg *config.Config) (pkgs.Recipe, error) {
	p := pkgs.New(cfg, "bzip2")
	p.Source = source.NewURL(cfg, "https://sourceware.org/pub/bzip2/bzip2-1.0.8.tar.gz")

	return &Bzip2{pkg: p}, nil
}

func (b *Bzip2) Pkg() *pkgs.Package {
	return b.pkg
}

func (b *Bzip2) Prepare(ctx context.Context) error {
	return nil
}

// bzip2's Makefile hardcodes CC=gcc, so the toolchain has to go on the
// make command line rather than the environment.
func (b *Bzip2) Build(ctx context.Context) error {
	_, err := b.pkg.InitBuildEnv()
	if err != nil {
		return err
	}

	env := b.pkg.Env()

	err = b.pkg.RunWithEnv(ctx, "make",
		"CC="+strings.Join(env["CC"], " "),
		"AR="+strings.Join(env["AR"], " "),
		"RANLIB="+strings.Join(env["RANLIB"], " "),
		"CFLAGS="+strings.Join(env["CFLAGS"], " ")+" -O2",
		"libbz2.a",
	)
	if err != nil {
		return err
	}

	destdir := b.pkg.Destdir()

	err = b.pkg.Run(ctx, "install", "-Dm644", "bzlib.h",
		filepath.Join(destdir, "usr", "include", "bzlib.h"))
	if err != nil {
		return err
	}

	return b.pkg.Run(ctx, "install", "-Dm644", "libbz2.a",
		filepath.Join(destdir, "usr", "lib", "libbz2.a"))
}
