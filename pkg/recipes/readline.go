package recipes

import (
	"context"

	"github.com/droidbuild/droidbuild/pkg/config"
	"github.com/droidbuild/droidbuild/pkg/pkgs"
	"github.com/droidbuild/droidbuild/pkg/source"
)

func init() {
	pkgs.Register("readline", NewReadline)
}

type Readline struct {
	pkg *pkgs.Package
}

func NewReadline(cfg *config.Config) (pkgs.Recipe, error) {
	p := pkgs.New(cfg, "readline")
	p.Source = source.NewURL(cfg,
		"https://ftp.gnu.org/gnu/readline/readline-8.2.tar.gz",
		source.WithSigSuffix(".sig"))
	p.Patches = []*source.Patch{
		source.NewPatch(cfg,
			"https://ftp.gnu.org/gnu/readline/readline-8.2-patches/readline82-001",
			source.WithSigSuffix(".sig")),
		source.NewPatch(cfg,
			"https://ftp.gnu.org/gnu/readline/readline-8.2-patches/readline82-002",
			source.WithSigSuffix(".sig")),
	}
	p.Dependencies = []string{"ncurses"}

	return &Readline{pkg: p}, nil
}

func (r *Readline) Pkg() *pkgs.Package {
	return r.pkg
}

func (r *Readline) Prepare(ctx context.Context) error {
	return nil
}

func (r *Readline) Build(ctx context.Context) error {
	return autotools(ctx, r.pkg,
		"--with-curses",
		"--disable-install-examples",
		"bash_cv_wcwidth_broken=no",
	)
}
