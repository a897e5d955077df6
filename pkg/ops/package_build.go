package ops

import (
	"context"
	"os"

	"github.com/droidbuild/droidbuild/pkg/pkgs"
	"github.com/droidbuild/droidbuild/pkg/source"
	"github.com/pkg/errors"
)

// State names how far a package's lifecycle got. The order is strict:
// states advance in sequence, never backwards and never in parallel.
type State int

const (
	Unresolved State = iota
	Cached
	SourceReady
	Patched
	EnvReady
	Built
	Packaged
	Uploaded
	SkippedUpload
	Failed
)

var stateNames = map[State]string{
	Unresolved:    "unresolved",
	Cached:        "cached",
	SourceReady:   "source-ready",
	Patched:       "patched",
	EnvReady:      "env-ready",
	Built:         "built",
	Packaged:      "packaged",
	Uploaded:      "uploaded",
	SkippedUpload: "skipped-upload",
	Failed:        "failed",
}

func (s State) String() string {
	return stateNames[s]
}

// Terminal reports whether a lifecycle ended here successfully.
func (s State) Terminal() bool {
	switch s {
	case Cached, Uploaded, SkippedUpload:
		return true
	}

	return false
}

// PackageBuild drives one package through its lifecycle: consult the
// archive cache, fetch and patch sources, set up the cross
// environment, run the recipe, then package, publish and extract the
// result. Failures are not retried; State records the outcome so a
// driver can decide what the failure means for dependent packages.
type PackageBuild struct {
	common

	State State

	// Verifier is handed to the patch applier for signed patches.
	Verifier string

	inited bool

	srcFetch SourceFetch
	patch    PatchApply
	env      BuildEnv
	cache    ArchiveFetch
	pack     ArchivePack
	publish  ArchivePublish
	extract  ArchiveExtract
}

func (p *PackageBuild) init() {
	if p.inited {
		return
	}

	p.inited = true

	p.srcFetch.common = p.sub("source")
	p.patch.common = p.sub("patch")
	p.patch.VerifyTool = p.Verifier
	p.env.common = p.sub("env")
	p.cache.common = p.sub("cache")
	p.pack.common = p.sub("archive")
	p.publish.common = p.sub("publish")
	p.extract.common = p.sub("sysroot")
}

func (p *PackageBuild) Build(ctx context.Context, rec pkgs.Recipe) error {
	p.init()

	err := p.run(ctx, rec)
	if err != nil {
		p.State = Failed
		return err
	}

	return nil
}

func (p *PackageBuild) run(ctx context.Context, rec pkgs.Recipe) error {
	pkg := rec.Pkg()

	p.State = Unresolved

	err := os.MkdirAll(pkg.Destdir(), 0755)
	if err != nil {
		return stepf(track(err), pkg.Name, "creating destination directory")
	}

	// Entry guard: a matching remote archive makes the pipeline
	// unnecessary. A package whose version is unknowable before its
	// source exists (a checkout before first sync) cannot be looked
	// up and just builds.
	_, err = ArchiveName(pkg)
	switch {
	case err == nil:
		hit, err := p.cache.Fetch(ctx, pkg)
		if err != nil {
			return stepf(err, pkg.Name, "checking archive cache")
		}

		if hit {
			err = p.extract.Extract(ctx, pkg)
			if err != nil {
				return stepf(err, pkg.Name, "extracting cached archive")
			}

			GetUI(ctx).UsingCached(pkg.Name)

			p.State = Cached

			return nil
		}
	case errors.Is(err, source.ErrVersionUnknown):
		p.L().Debug("version unknown before source sync, skipping cache check",
			"package", pkg.Name)
	default:
		return stepf(err, pkg.Name, "resolving archive name")
	}

	err = p.srcFetch.Fetch(ctx, pkg)
	if err != nil {
		return stepf(err, pkg.Name, "fetching source")
	}

	p.State = SourceReady

	err = p.patch.Apply(ctx, pkg)
	if err != nil {
		return stepf(err, pkg.Name, "patching")
	}

	p.State = Patched

	err = p.env.Init(pkg)
	if err != nil {
		return stepf(err, pkg.Name, "initializing build environment")
	}

	p.State = EnvReady

	version, err := pkg.ResolveVersion()
	if err != nil {
		return stepf(err, pkg.Name, "resolving version")
	}

	GetUI(ctx).Building(pkg.Name, version, pkg.Arch.Name)

	err = rec.Prepare(ctx)
	if err != nil {
		return stepf(err, pkg.Name, "preparing")
	}

	err = rec.Build(ctx)
	if err != nil {
		return stepf(err, pkg.Name, "building")
	}

	p.State = Built

	_, err = p.pack.Pack(ctx, pkg)
	if err != nil {
		return stepf(err, pkg.Name, "packaging")
	}

	p.State = Packaged

	err = p.publish.Publish(ctx, pkg)
	if err != nil {
		return stepf(err, pkg.Name, "publishing")
	}

	if pkg.SkipUpload || pkg.Config().ArchiveDest == "" {
		p.State = SkippedUpload
	} else {
		p.State = Uploaded
	}

	// Dependents resolve this package's headers and libraries
	// through the shared sysroot, so extraction must complete before
	// any of them starts.
	err = p.extract.Extract(ctx, pkg)
	if err != nil {
		return stepf(err, pkg.Name, "extracting into sysroot")
	}

	return nil
}
