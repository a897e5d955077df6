package recipes

import (
	"context"

	"github.com/droidbuild/droidbuild/pkg/config"
	"github.com/droidbuild/droidbuild/pkg/pkgs"
	"github.com/droidbuild/droidbuild/pkg/source"
)

func init() {
	pkgs.Register("zlib", NewZlib)
}

type Zlib struct {
	pkg *pkgs.Package
}

func NewZlib(cfg *config.Config) (pkgs.Recipe, error) {
	p := pkgs.New(cfg, "zlib")
	p.Source = source.NewURL(cfg, "https://zlib.net/zlib-1.3.1.tar.gz")

	return &Zlib{pkg: p}, nil
}

func (z *Zlib) Pkg() *pkgs.Package {
	return z.pkg
}

func (z *Zlib) Prepare(ctx context.Context) error {
	return nil
}

// zlib's configure is not autoconf; it picks the compiler up from the
// environment and rejects --host, so we call it bare.
func (z *Zlib) Build(ctx context.Context) error {
	err := z.pkg.RunWithEnv(ctx, "./configure", "--prefix=/usr")
	if err != nil {
		return err
	}

	err = z.pkg.RunWithEnv(ctx, "make")
	if err != nil {
		return err
	}

	return z.pkg.RunWithEnv(ctx, "make", "install", "DESTDIR="+z.pkg.Destdir())
}
