package recipes

import (
	"context"

	"github.com/droidbuild/droidbuild/pkg/config"
	"github.com/droidbuild/droidbuild/pkg/pkgs"
	"github.com/droidbuild/droidbuild/pkg/source"
)

func init() {
	pkgs.Register("ncurses", NewNcurses)
}

type Ncurses struct {
	pkg *pkgs.Package
}

func NewNcurses(cfg *config.Config) (pkgs.Recipe, error) {
	p := pkgs.New(cfg, "ncurses")
	p.Source = source.NewURL(cfg,
		"https://ftp.gnu.org/gnu/ncurses/ncurses-6.4.tar.gz",
		source.WithSigSuffix(".sig"))

	return &Ncurses{pkg: p}, nil
}

func (n *Ncurses) Pkg() *pkgs.Package {
	return n.pkg
}

func (n *Ncurses) Prepare(ctx context.Context) error {
	return nil
}

func (n *Ncurses) Build(ctx context.Context) error {
	return autotools(ctx, n.pkg,
		"--enable-widec",
		"--without-ada",
		"--without-cxx-binding",
		"--without-manpages",
		"--without-tests",
		"--with-shared",
		"--without-normal",
		"--disable-stripping",
	)
}
