package recipes

import (
	"context"
	"path/filepath"

	"github.com/droidbuild/droidbuild/pkg/config"
	"github.com/droidbuild/droidbuild/pkg/pkgs"
	"github.com/droidbuild/droidbuild/pkg/source"
)

func init() {
	pkgs.Register("python-dev", NewPythonDev)
}

// PythonDev tracks the CPython main branch. Dev builds never publish;
// their version is whatever commit the checkout lands on, so there is
// nothing stable for other hosts to fetch.
type PythonDev struct {
	pkg *pkgs.Package
}

func NewPythonDev(cfg *config.Config) (pkgs.Recipe, error) {
	p := pkgs.New(cfg, "python-dev")
	p.Source = source.NewVCS(cfg, "https://github.com/python/cpython.git",
		source.WithBranch("main"))
	p.Dependencies = []string{
		"zlib", "bzip2", "xz", "libffi", "openssl", "ncurses", "readline",
	}
	p.SkipUpload = true

	return &PythonDev{pkg: p}, nil
}

func (p *PythonDev) Pkg() *pkgs.Package {
	return p.pkg
}

func (p *PythonDev) Prepare(ctx context.Context) error {
	return nil
}

func (p *PythonDev) Build(ctx context.Context) error {
	sysroot := p.pkg.Config().SysrootDir()

	return autotools(ctx, p.pkg,
		"--build="+buildTriple(),
		"--enable-shared",
		"--without-ensurepip",
		"--with-build-python=python3",
		"--with-openssl="+filepath.Join(sysroot, "usr"),
		"ac_cv_file__dev_ptmx=no",
		"ac_cv_file__dev_ptc=no",
	)
}
