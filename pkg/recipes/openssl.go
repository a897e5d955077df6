package recipes

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/droidbuild/droidbuild/pkg/config"
	"github.com/droidbuild/droidbuild/pkg/pkgs"
	"github.com/droidbuild/droidbuild/pkg/source"
)

func init() {
	pkgs.Register("openssl", NewOpenSSL)
}

type OpenSSL struct {
	pkg *pkgs.Package
}

func NewOpenSSL(cfg *config.Config) (pkgs.Recipe, error) {
	p := pkgs.New(cfg, "openssl")
	p.Source = source.NewURL(cfg, "https://www.openssl.org/source/openssl-1.1.1w.tar.gz")

	return &OpenSSL{pkg: p}, nil
}

func (o *OpenSSL) Pkg() *pkgs.Package {
	return o.pkg
}

func (o *OpenSSL) Prepare(ctx context.Context) error {
	return nil
}

// OpenSSL carries its own Configure with per-platform targets. It finds
// the compiler itself as long as the NDK is on PATH, so we hand it the
// toolchain location instead of CC/CFLAGS.
func (o *OpenSSL) Build(ctx context.Context) error {
	p := o.pkg

	tc, err := p.Toolchain()
	if err != nil {
		return err
	}

	dir, err := p.SourceDir()
	if err != nil {
		return err
	}

	env := map[string][]string{
		"ANDROID_NDK_HOME": {tc.Root},
		"PATH":             {tc.BinDir + string(os.PathListSeparator) + os.Getenv("PATH")},
	}

	err = pkgs.RunIn(ctx, p.Name, dir, env,
		"./Configure",
		"android-"+p.Arch.Name,
		fmt.Sprintf("-D__ANDROID_API__=%d", p.Config().APILevel),
		"--prefix=/usr",
		"no-tests",
		"shared",
	)
	if err != nil {
		return err
	}

	err = pkgs.RunIn(ctx, p.Name, dir, env,
		"make", "-j"+strconv.Itoa(runtime.NumCPU()))
	if err != nil {
		return err
	}

	return pkgs.RunIn(ctx, p.Name, dir, env,
		"make", "install_sw", "DESTDIR="+p.Destdir())
}
