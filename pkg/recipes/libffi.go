package recipes

import (
	"context"

	"github.com/droidbuild/droidbuild/pkg/config"
	"github.com/droidbuild/droidbuild/pkg/pkgs"
	"github.com/droidbuild/droidbuild/pkg/source"
)

func init() {
	pkgs.Register("libffi", NewLibffi)
}

type Libffi struct {
	pkg *pkgs.Package
}

func NewLibffi(cfg *config.Config) (pkgs.Recipe, error) {
	p := pkgs.New(cfg, "libffi")
	p.Source = source.NewURL(cfg,
		"https://github.com/libffi/libffi/releases/download/v3.4.4/libffi-3.4.4.tar.gz")

	return &Libffi{pkg: p}, nil
}

func (l *Libffi) Pkg() *pkgs.Package {
	return l.pkg
}

func (l *Libffi) Prepare(ctx context.Context) error {
	return nil
}

func (l *Libffi) Build(ctx context.Context) error {
	return autotools(ctx, l.pkg, "--disable-docs")
}
