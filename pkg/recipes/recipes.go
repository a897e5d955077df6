// Package recipes holds the per-package build logic. Each file
// registers one recipe; the lifecycle only ever sees them through the
// Recipe interface and the registry.
package recipes

import (
	"context"
	"runtime"
	"strconv"

	"github.com/droidbuild/droidbuild/pkg/pkgs"
)

// autotools drives the configure/make/install trio most of the C
// dependencies share. Everything runs inside the cross environment;
// install lands in the package's destination directory, never the
// sysroot.
func autotools(ctx context.Context, p *pkgs.Package, configureArgs ...string) error {
	args := append([]string{
		"./configure",
		"--host=" + p.Arch.BinutilsPrefix,
		"--prefix=/usr",
	}, configureArgs...)

	err := p.RunWithEnv(ctx, args...)
	if err != nil {
		return err
	}

	err = p.RunWithEnv(ctx, "make", "-j"+strconv.Itoa(runtime.NumCPU()))
	if err != nil {
		return err
	}

	return p.RunWithEnv(ctx, "make", "install", "DESTDIR="+p.Destdir())
}
