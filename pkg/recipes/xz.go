package recipes

import (
	"context"

	"github.com/droidbuild/droidbuild/pkg/config"
	"github.com/droidbuild/droidbuild/pkg/pkgs"
	"github.com/droidbuild/droidbuild/pkg/source"
)

func init() {
	pkgs.Register("xz", NewXz)
}

type Xz struct {
	pkg *pkgs.Package
}

func NewXz(cfg *config.Config) (pkgs.Recipe, error) {
	p := pkgs.New(cfg, "xz")
	p.Source = source.NewURL(cfg,
		"https://downloads.sourceforge.net/project/lzmautils/xz-5.4.4.tar.bz2",
		source.WithSigSuffix(".sig"))

	return &Xz{pkg: p}, nil
}

func (x *Xz) Pkg() *pkgs.Package {
	return x.pkg
}

func (x *Xz) Prepare(ctx context.Context) error {
	return nil
}

func (x *Xz) Build(ctx context.Context) error {
	return autotools(ctx, x.pkg,
		"--disable-xzdec",
		"--disable-lzmadec",
		"--disable-lzmainfo",
		"--disable-scripts",
		"--disable-doc",
	)
}
