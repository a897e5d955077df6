package pkgs

import (
	"context"
	"sort"
	"strings"

	"github.com/droidbuild/droidbuild/pkg/config"
	"github.com/pkg/errors"
)

// Recipe supplies the two package-specific steps the lifecycle cannot
// know itself: configuring the source tree and producing an installed
// tree under the package's destination directory. Build runs strictly
// after the cross environment is initialized; neither step may write
// to the shared sysroot.
type Recipe interface {
	Pkg() *Package
	Prepare(ctx context.Context) error
	Build(ctx context.Context) error
}

// Factory builds a recipe bound to the given configuration.
type Factory func(cfg *config.Config) (Recipe, error)

var ErrUnknownPackage = errors.New("unknown package")

var factories = map[string]Factory{}

// Register maps a package name to its recipe factory. Called from the
// init of each recipe file; names are lowercased and must be unique.
func Register(name string, f Factory) {
	name = strings.ToLower(name)

	if _, dup := factories[name]; dup {
		panic("recipe registered twice: " + name)
	}

	factories[name] = f
}

// Load constructs the recipe registered under name.
func Load(name string, cfg *config.Config) (Recipe, error) {
	f, ok := factories[strings.ToLower(name)]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownPackage, "%s", name)
	}

	return f(cfg)
}

// Known reports whether a recipe is registered under name.
func Known(name string) bool {
	_, ok := factories[strings.ToLower(name)]
	return ok
}

// Names lists every registered recipe, sorted.
func Names() []string {
	var names []string
	for name := range factories {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
