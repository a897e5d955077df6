package ops

import (
	"github.com/droidbuild/droidbuild/pkg/pkgs"
)

// BuildEnv resolves the toolchain for a package and derives its cross
// environment. Both halves memoize on the package, so a second Init on
// the same instance does nothing.
type BuildEnv struct {
	common
}

func (b *BuildEnv) Init(pkg *pkgs.Package) error {
	tc, err := pkg.Toolchain()
	if err != nil {
		return err
	}

	mutated, err := pkg.InitBuildEnv()
	if err != nil {
		return err
	}

	if mutated {
		b.L().Debug("build environment initialized",
			"package", pkg.Name,
			"toolchain", tc.BinDir,
			"arch", pkg.Arch.Name,
		)
	}

	return nil
}
