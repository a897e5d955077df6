package ops

import (
	"context"
	"testing"

	"github.com/droidbuild/droidbuild/pkg/config"
	"github.com/droidbuild/droidbuild/pkg/pkgs"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var buildOrder []string

// orderRecipe is the minimal recipe the dependency walker can drive:
// no source, a literal version, and no publishing. Build records the
// order packages were reached in.
type orderRecipe struct {
	pkg *pkgs.Package
}

func (o *orderRecipe) Pkg() *pkgs.Package { return o.pkg }

func (o *orderRecipe) Prepare(ctx context.Context) error { return nil }

func (o *orderRecipe) Build(ctx context.Context) error {
	buildOrder = append(buildOrder, o.pkg.Name)
	return nil
}

func init() {
	pkgs.Register("order-root", func(cfg *config.Config) (pkgs.Recipe, error) {
		p := pkgs.New(cfg, "order-root")
		p.Version = "1.0"
		p.Dependencies = []string{"order-mid", "order-leaf"}
		p.SkipUpload = true

		return &orderRecipe{pkg: p}, nil
	})

	pkgs.Register("order-mid", func(cfg *config.Config) (pkgs.Recipe, error) {
		p := pkgs.New(cfg, "order-mid")
		p.Version = "1.0"
		p.Dependencies = []string{"order-leaf"}
		p.SkipUpload = true

		return &orderRecipe{pkg: p}, nil
	})

	pkgs.Register("order-leaf", func(cfg *config.Config) (pkgs.Recipe, error) {
		p := pkgs.New(cfg, "order-leaf")
		p.Version = "1.0"
		p.SkipUpload = true

		return &orderRecipe{pkg: p}, nil
	})

	pkgs.Register("cycle-a", func(cfg *config.Config) (pkgs.Recipe, error) {
		p := pkgs.New(cfg, "cycle-a")
		p.Version = "1.0"
		p.Dependencies = []string{"cycle-b"}
		p.SkipUpload = true

		return &orderRecipe{pkg: p}, nil
	})

	pkgs.Register("cycle-b", func(cfg *config.Config) (pkgs.Recipe, error) {
		p := pkgs.New(cfg, "cycle-b")
		p.Version = "1.0"
		p.Dependencies = []string{"cycle-a"}
		p.SkipUpload = true

		return &orderRecipe{pkg: p}, nil
	})
}

func TestPackagesBuild(t *testing.T) {
	withFakeNDK(t)

	t.Run("dependencies build first and only once", func(t *testing.T) {
		cfg := testConfig(t)

		buildOrder = nil

		pb := &PackagesBuild{Cfg: cfg}

		err := pb.Build(context.Background(), "order-root")
		require.NoError(t, err)

		assert.Equal(t, []string{"order-leaf", "order-mid", "order-root"}, buildOrder)

		states := pb.States()
		require.Len(t, states, 3)

		for name, state := range states {
			assert.Equal(t, SkippedUpload, state, name)
		}
	})

	t.Run("requesting a built package again is free", func(t *testing.T) {
		cfg := testConfig(t)

		buildOrder = nil

		pb := &PackagesBuild{Cfg: cfg}

		err := pb.Build(context.Background(), "order-leaf", "order-mid", "order-mid")
		require.NoError(t, err)

		assert.Equal(t, []string{"order-leaf", "order-mid"}, buildOrder)
	})

	t.Run("unknown packages are rejected", func(t *testing.T) {
		cfg := testConfig(t)

		pb := &PackagesBuild{Cfg: cfg}

		err := pb.Build(context.Background(), "no-such-thing")
		require.Error(t, err)

		assert.True(t, errors.Is(err, pkgs.ErrUnknownPackage))
	})

	t.Run("dependency cycles are reported, not followed", func(t *testing.T) {
		cfg := testConfig(t)

		pb := &PackagesBuild{Cfg: cfg}

		err := pb.Build(context.Background(), "cycle-a")
		require.Error(t, err)

		assert.Contains(t, err.Error(), "dependency cycle")
	})
}
