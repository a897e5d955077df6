package ops

import (
	"fmt"

	"github.com/droidbuild/droidbuild/pkg/pkgs"
)

// ArchiveFileName builds the canonical archive name. This grammar is
// the cache-compatibility contract: any producer or consumer of these
// archives derives byte-identical names from equal inputs, and all
// five inputs participate in the cache key.
func ArchiveFileName(name, arch, version string, apiLevel int, ndkRevision string) string {
	return fmt.Sprintf("%s-%s-%s-android%d-ndk_%s.tar.bz2",
		name, arch, version, apiLevel, ndkRevision)
}

// ArchiveName resolves the cache-key inputs for pkg and names its
// archive. It fails when the version is not yet knowable, or when the
// toolchain cannot be validated.
func ArchiveName(pkg *pkgs.Package) (string, error) {
	version, err := pkg.ResolveVersion()
	if err != nil {
		return "", err
	}

	tc, err := pkg.Toolchain()
	if err != nil {
		return "", err
	}

	rev, err := tc.Revision()
	if err != nil {
		return "", err
	}

	return ArchiveFileName(pkg.Name, pkg.Arch.Name, version, pkg.Config().APILevel, rev), nil
}
