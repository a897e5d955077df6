package ops

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/droidbuild/droidbuild/pkg/pkgs"
	"github.com/pkg/errors"
)

// PatchError is fatal for the affected package: a tree whose patch did
// not apply cleanly is not buildable, and the lifecycle never reaches
// the build step.
type PatchError struct {
	Patch string
	Err   error
}

func (e *PatchError) Error() string {
	return fmt.Sprintf("patch %s: %v", e.Patch, e.Err)
}

func (e *PatchError) Unwrap() error {
	return e.Err
}

// PatchApply applies a package's patches in declaration order inside
// its source directory. Fetching already happened; this op only checks
// the files are present.
type PatchApply struct {
	common

	// VerifyTool, when set, is run as "tool --verify <sig> <file>"
	// for every patch carrying a detached signature, before that
	// patch is applied.
	VerifyTool string
}

func (p *PatchApply) Apply(ctx context.Context, pkg *pkgs.Package) error {
	if len(pkg.Patches) == 0 {
		return nil
	}

	dir, err := pkg.SourceDir()
	if err != nil {
		return err
	}

	ui := GetUI(ctx)

	for _, patch := range pkg.Patches {
		name := filepath.Base(patch.Path())

		if _, err := os.Stat(patch.Path()); err != nil {
			return &PatchError{Patch: name, Err: errors.Wrap(err, "patch file not fetched")}
		}

		if patch.SigSuffix() != "" {
			err = p.verify(ctx, pkg, patch.Path(), patch.Path()+patch.SigSuffix())
			if err != nil {
				return &PatchError{Patch: name, Err: err}
			}
		}

		ui.Patching(pkg.Name, name)

		err = pkgs.RunIn(ctx, pkg.Name, dir, nil,
			"patch", "-p"+strconv.Itoa(patch.Strip), "-i", patch.Path())
		if err != nil {
			return &PatchError{Patch: name, Err: err}
		}

		p.L().Debug("patch applied", "package", pkg.Name, "patch", name)
	}

	return nil
}

func (p *PatchApply) verify(ctx context.Context, pkg *pkgs.Package, file, sig string) error {
	if _, err := os.Stat(sig); err != nil {
		return errors.Wrap(err, "signature not fetched")
	}

	if p.VerifyTool == "" {
		return nil
	}

	return pkgs.RunIn(ctx, pkg.Name, filepath.Dir(file), nil,
		p.VerifyTool, "--verify", sig, file)
}
