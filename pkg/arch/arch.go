package arch

import (
	"sort"

	"github.com/pkg/errors"
)

// Arch describes one Android target architecture. Target is the clang
// triple prefix baked into the unified toolchain driver names
// (an API level is appended to it), BinutilsPrefix is the prefix of
// the binutils programs shipped in the same bin directory.
type Arch struct {
	Name           string
	Target         string
	BinutilsPrefix string
}

var ErrUnknownArch = errors.New("unknown target architecture")

var known = map[string]Arch{
	"arm": {
		Name:           "arm",
		Target:         "armv7a-linux-androideabi",
		BinutilsPrefix: "arm-linux-androideabi",
	},
	"arm64": {
		Name:           "arm64",
		Target:         "aarch64-linux-android",
		BinutilsPrefix: "aarch64-linux-android",
	},
	"x86": {
		Name:           "x86",
		Target:         "i686-linux-android",
		BinutilsPrefix: "i686-linux-android",
	},
	"x86_64": {
		Name:           "x86_64",
		Target:         "x86_64-linux-android",
		BinutilsPrefix: "x86_64-linux-android",
	},
}

func Lookup(name string) (Arch, error) {
	a, ok := known[name]
	if !ok {
		return Arch{}, errors.Wrapf(ErrUnknownArch, "%s", name)
	}

	return a, nil
}

// Names returns the supported architecture names, sorted.
func Names() []string {
	var names []string
	for name := range known {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
