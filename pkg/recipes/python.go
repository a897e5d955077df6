package recipes

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"github.com/droidbuild/droidbuild/pkg/config"
	"github.com/droidbuild/droidbuild/pkg/fileutils"
	"github.com/droidbuild/droidbuild/pkg/pkgs"
	"github.com/droidbuild/droidbuild/pkg/source"
)

func init() {
	pkgs.Register("python", NewPython)
}

type Python struct {
	pkg *pkgs.Package
}

func NewPython(cfg *config.Config) (pkgs.Recipe, error) {
	p := pkgs.New(cfg, "python")
	p.Source = source.NewURL(cfg,
		"https://www.python.org/ftp/python/3.11.6/Python-3.11.6.tar.xz",
		source.WithSigSuffix(".asc"))
	p.Dependencies = []string{
		"zlib", "bzip2", "xz", "libffi", "openssl", "ncurses", "readline",
	}

	return &Python{pkg: p}, nil
}

func (p *Python) Pkg() *pkgs.Package {
	return p.pkg
}

// Prepare lays the overlay from mk/python over the unpacked tree:
// Setup.local and the site config that CPython's configure cannot
// detect when cross compiling.
func (p *Python) Prepare(ctx context.Context) error {
	files := p.pkg.FilesDir()

	_, err := os.Stat(files)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return err
	}

	dir, err := p.pkg.SourceDir()
	if err != nil {
		return err
	}

	inst := &fileutils.Install{
		Ctx:     ctx,
		Pattern: filepath.Join(files, "*"),
		Dest:    dir,
	}

	return inst.Install()
}

func (p *Python) Build(ctx context.Context) error {
	sysroot := p.pkg.Config().SysrootDir()

	return autotools(ctx, p.pkg,
		"--build="+buildTriple(),
		"--enable-shared",
		"--without-ensurepip",
		"--with-build-python=python3",
		"--with-openssl="+filepath.Join(sysroot, "usr"),
		"ac_cv_file__dev_ptmx=no",
		"ac_cv_file__dev_ptc=no",
		"ac_cv_buggy_getaddrinfo=no",
	)
}

// buildTriple names the machine we are compiling on, for configure's
// --build. configure only needs it to notice it is cross compiling, so
// a coarse mapping is enough.
func buildTriple() string {
	arch := runtime.GOARCH
	switch arch {
	case "amd64":
		arch = "x86_64"
	case "arm64":
		arch = "aarch64"
	}

	if runtime.GOOS == "darwin" {
		return arch + "-apple-darwin"
	}

	return arch + "-unknown-linux-gnu"
}
