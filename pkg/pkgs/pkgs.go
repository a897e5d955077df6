package pkgs

import (
	"strings"

	"github.com/droidbuild/droidbuild/pkg/arch"
	"github.com/droidbuild/droidbuild/pkg/config"
	"github.com/droidbuild/droidbuild/pkg/ndk"
	"github.com/droidbuild/droidbuild/pkg/source"
	"github.com/pkg/errors"
)

// Package is one buildable unit: a source, its patches, the packages
// it needs present in the sysroot first, and the mutable build state
// (resolved toolchain, cross environment) the lifecycle fills in.
type Package struct {
	Name string
	Arch arch.Arch

	// Version overrides discovery when set; normally the source
	// derives it.
	Version string

	Source       source.Source
	Patches      []*source.Patch
	Dependencies []string

	// SkipUpload keeps this package out of the remote archive
	// store, both directions.
	SkipUpload bool

	cfg *config.Config

	env map[string][]string
	tc  *ndk.Toolchain
}

func New(cfg *config.Config, name string) *Package {
	return &Package{
		Name: strings.ToLower(name),
		Arch: cfg.Arch,
		cfg:  cfg,
	}
}

func (p *Package) Config() *config.Config {
	return p.cfg
}

// ResolveVersion returns the declared version if any, otherwise asks
// the source to derive one.
func (p *Package) ResolveVersion() (string, error) {
	if p.Version != "" {
		return p.Version, nil
	}

	if p.Source == nil {
		return "", errors.Wrapf(source.ErrVersionUnknown, "%s declares no source", p.Name)
	}

	return p.Source.Version()
}

// Toolchain resolves the NDK once and pins it for the lifetime of this
// package; every later call is free.
func (p *Package) Toolchain() (*ndk.Toolchain, error) {
	if p.tc != nil {
		return p.tc, nil
	}

	tc, err := ndk.Resolve()
	if err != nil {
		return nil, err
	}

	p.tc = tc

	return tc, nil
}

// InitBuildEnv derives the cross-compilation environment on first
// call and reports whether it did anything. Once populated the map is
// never rebuilt.
func (p *Package) InitBuildEnv() (bool, error) {
	if len(p.env) != 0 {
		return false, nil
	}

	tc, err := p.Toolchain()
	if err != nil {
		return false, err
	}

	p.env = ndk.Environ(tc, p.Arch, p.cfg.APILevel, p.cfg.SysrootDir())

	return true, nil
}

func (p *Package) Env() map[string][]string {
	return p.env
}

// Sources enumerates everything fetchable, in fetch order: the main
// source, then each patch. A source carrying a signature suffix is
// immediately followed by the implicit source for the signature file
// itself.
func (p *Package) Sources() []source.Source {
	var ret []source.Source

	add := func(s source.Source) {
		ret = append(ret, s)

		if suffix := s.SigSuffix(); suffix != "" {
			ret = append(ret, source.NewURL(p.cfg, s.URL()+suffix))
		}
	}

	if p.Source != nil {
		add(p.Source)
	}

	for _, patch := range p.Patches {
		add(patch)
	}

	return ret
}

// NeedDownload reports whether the main source must be materialized.
func (p *Package) NeedDownload() bool {
	if p.Source == nil {
		return false
	}

	return p.Source.NeedDownload()
}

func (p *Package) SourceDir() (string, error) {
	if p.Source == nil {
		return "", errors.Errorf("package %s has no source", p.Name)
	}

	return p.Source.Dir(), nil
}

// Destdir is this package's private install root, the tree that gets
// archived. Distinct from the shared sysroot.
func (p *Package) Destdir() string {
	return p.cfg.TargetDir(p.Name)
}

// FilesDir holds static files shipped with the recipe.
func (p *Package) FilesDir() string {
	return p.cfg.FilesDir(p.Name)
}
