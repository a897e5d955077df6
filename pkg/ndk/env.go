package ndk

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/droidbuild/droidbuild/pkg/arch"
)

var binutilsTools = []string{
	"ar", "as", "ld", "objcopy", "objdump", "ranlib", "strip", "readelf",
}

// Environ derives the full cross-compilation environment for one
// target: compiler drivers pinned to the API level, search paths rooted
// in the shared sysroot, pkg-config confinement, and the binutils
// programs. Values are argument vectors; multi-element entries join
// with spaces when exported to a process environment. Equal inputs
// yield equal maps.
func Environ(t *Toolchain, a arch.Arch, apiLevel int, sysroot string) map[string][]string {
	clangPrefix := filepath.Join(t.BinDir, fmt.Sprintf("%s%d", a.Target, apiLevel))

	env := map[string][]string{
		"CC":  {clangPrefix + "-clang"},
		"CXX": {clangPrefix + "-clang++"},
		"CPP": {clangPrefix + "-clang", "-E"},

		"CPPFLAGS": {"-I" + filepath.Join(sysroot, "usr", "include")},
		"CFLAGS":   {"-fPIC"},
		"CXXFLAGS": {"-fPIC"},
		"LDFLAGS": {
			"-L" + filepath.Join(sysroot, "usr", "lib"),
			"-pie",
			"-fuse-ld=lld",
		},

		"PKG_CONFIG_SYSROOT_DIR": {sysroot},
		"PKG_CONFIG_LIBDIR":      {filepath.Join(sysroot, "usr", "lib", "pkgconfig")},
	}

	for _, tool := range binutilsTools {
		env[strings.ToUpper(tool)] = []string{
			filepath.Join(t.BinDir, a.BinutilsPrefix+"-"+tool),
		}
	}

	return env
}
