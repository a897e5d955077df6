package ops

import (
	"context"
	"strings"

	"github.com/droidbuild/droidbuild/pkg/config"
	"github.com/droidbuild/droidbuild/pkg/pkgs"
	"github.com/pkg/errors"
)

// PackagesBuild builds a set of packages, dependencies first. One
// package builds at a time; the first failure halts the run, so
// nothing depending on a failed package ever starts.
type PackagesBuild struct {
	common

	Cfg *config.Config

	// Verifier is handed through to each package's patch applier.
	Verifier string

	done map[string]*PackageBuild
}

func (p *PackagesBuild) Build(ctx context.Context, names ...string) error {
	if p.done == nil {
		p.done = map[string]*PackageBuild{}
	}

	for _, name := range names {
		err := p.buildOne(ctx, strings.ToLower(name), nil)
		if err != nil {
			return err
		}
	}

	return nil
}

func (p *PackagesBuild) buildOne(ctx context.Context, name string, stack []string) error {
	if _, ok := p.done[name]; ok {
		return nil
	}

	for _, s := range stack {
		if s == name {
			return errors.Errorf("dependency cycle: %s -> %s",
				strings.Join(stack, " -> "), name)
		}
	}

	rec, err := pkgs.Load(name, p.Cfg)
	if err != nil {
		return err
	}

	for _, dep := range rec.Pkg().Dependencies {
		err = p.buildOne(ctx, strings.ToLower(dep), append(stack, name))
		if err != nil {
			return err
		}
	}

	pb := &PackageBuild{
		common:   p.sub(name),
		Verifier: p.Verifier,
	}

	p.done[name] = pb

	err = pb.Build(ctx, rec)
	if err != nil {
		return err
	}

	p.L().Info("package finished", "package", name, "state", pb.State.String())

	return nil
}

// States reports the terminal state of every package touched by this
// run, keyed by package name.
func (p *PackagesBuild) States() map[string]State {
	out := map[string]State{}

	for name, pb := range p.done {
		out[name] = pb.State
	}

	return out
}
