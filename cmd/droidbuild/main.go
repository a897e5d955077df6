package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"github.com/davecgh/go-spew/spew"
	"github.com/droidbuild/droidbuild/pkg/cmd"
	"github.com/droidbuild/droidbuild/pkg/config"
	"github.com/droidbuild/droidbuild/pkg/ndk"
	"github.com/droidbuild/droidbuild/pkg/ops"
	"github.com/droidbuild/droidbuild/pkg/pkgconfig"
	"github.com/droidbuild/droidbuild/pkg/pkgs"
	_ "github.com/droidbuild/droidbuild/pkg/recipes"
	"github.com/mitchellh/cli"
)

func main() {
	c := cli.NewCLI("droidbuild", "0.1.0")
	c.Args = os.Args[1:]
	c.Commands = map[string]cli.CommandFactory{
		"build": func() (cli.Command, error) {
			return cmd.New(
				"build",
				"Cross compile packages and their dependencies",
				buildF,
			), nil
		},
		"fetch": func() (cli.Command, error) {
			return cmd.New(
				"fetch",
				"Download and unpack package sources without building",
				fetchF,
			), nil
		},
		"env": func() (cli.Command, error) {
			return cmd.New(
				"env",
				"Output the cross compile environment for a package",
				envF,
			), nil
		},
		"list": func() (cli.Command, error) {
			return cmd.New(
				"list",
				"List known packages",
				listF,
			), nil
		},
		"sysroot": func() (cli.Command, error) {
			return cmd.New(
				"sysroot",
				"Show what is installed into the shared sysroot",
				sysrootF,
			), nil
		},
		"clean": func() (cli.Command, error) {
			return cmd.New(
				"clean",
				"Remove build state, keeping finished archives",
				cleanF,
			), nil
		},
		"debug": func() (cli.Command, error) {
			return cmd.New(
				"debug",
				"Debug various things",
				debugF,
			), nil
		},
	}

	exitStatus, err := c.Run()
	if err != nil {
		log.Println(err)
	}

	os.Exit(exitStatus)
}

func buildF(ctx context.Context, opts struct {
	Verifier string `short:"V" long:"verify" description:"verify detached signatures with this tool before patching"`

	Pos struct {
		Packages []string `positional-arg-name:"package" required:"1"`
	} `positional-args:"yes"`
}) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pb := &ops.PackagesBuild{
		Cfg:      cfg,
		Verifier: opts.Verifier,
	}

	err = pb.Build(ctx, opts.Pos.Packages...)
	if err != nil {
		return err
	}

	for name, state := range pb.States() {
		fmt.Printf("%s: %s\n", name, state)
	}

	return nil
}

func fetchF(ctx context.Context, opts struct {
	Pos struct {
		Packages []string `positional-arg-name:"package" required:"1"`
	} `positional-args:"yes"`
}) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var sf ops.SourceFetch

	for _, name := range opts.Pos.Packages {
		rec, err := pkgs.Load(name, cfg)
		if err != nil {
			return err
		}

		err = sf.Fetch(ctx, rec.Pkg())
		if err != nil {
			return err
		}
	}

	return nil
}

func envF(ctx context.Context, opts struct {
	Export bool `short:"e" long:"export" description:"prefix each line with export, for eval in a shell"`

	Pos struct {
		Package string `positional-arg-name:"package" required:"1"`
	} `positional-args:"yes"`
}) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	rec, err := pkgs.Load(opts.Pos.Package, cfg)
	if err != nil {
		return err
	}

	pkg := rec.Pkg()

	_, err = pkg.InitBuildEnv()
	if err != nil {
		return err
	}

	for _, kv := range pkgs.EnvStrings(nil, pkg.Env()) {
		if opts.Export {
			fmt.Printf("export %q\n", kv)
		} else {
			fmt.Println(kv)
		}
	}

	return nil
}

func listF(ctx context.Context, opts struct{}) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 4, 2, 1, ' ', 0)
	defer tw.Flush()

	for _, name := range pkgs.Names() {
		rec, err := pkgs.Load(name, cfg)
		if err != nil {
			return err
		}

		pkg := rec.Pkg()

		version, err := pkg.ResolveVersion()
		if err != nil {
			// VCS packages have no version until checkout.
			version = "-"
		}

		url := "-"
		if pkg.Source != nil {
			url = pkg.Source.URL()
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\n", name, version, url)
	}

	return nil
}

func sysrootF(ctx context.Context, opts struct{}) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	installed, err := pkgconfig.LoadAll(cfg.SysrootDir())
	if err != nil {
		return err
	}

	if len(installed) == 0 {
		fmt.Println("sysroot is empty")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 4, 2, 1, ' ', 0)
	defer tw.Flush()

	for _, pc := range installed {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", pc.Name, pc.Version, pc.Description)
	}

	return nil
}

func cleanF(ctx context.Context, opts struct {
	All bool `short:"a" long:"all" description:"also remove finished archives"`
}) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	dirs := []string{
		cfg.SourcesDir(),
		cfg.DownloadDir(),
		cfg.TargetsDir(),
		cfg.SysrootDir(),
	}

	if opts.All {
		dirs = append(dirs, cfg.DistDir())
	}

	for _, dir := range dirs {
		fmt.Printf("Removing %s\n", dir)

		err = os.RemoveAll(dir)
		if err != nil {
			return err
		}
	}

	return nil
}

func debugF(ctx context.Context, opts struct {
	Package string `short:"p" long:"package" description:"dump the resolved state of a package"`
	NDK     bool   `short:"n" long:"ndk" description:"dump the resolved toolchain"`
}) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if opts.NDK {
		tc, err := ndk.Resolve()
		if err != nil {
			return err
		}

		rev, err := tc.Revision()
		if err != nil {
			return err
		}

		spew.Dump(tc)
		fmt.Printf("revision: %s\n", rev)

		return nil
	}

	if opts.Package != "" {
		rec, err := pkgs.Load(opts.Package, cfg)
		if err != nil {
			return err
		}

		pkg := rec.Pkg()

		version := "-"
		if v, err := pkg.ResolveVersion(); err == nil {
			version = v
		}

		archive := "-"
		if name, err := ops.ArchiveName(pkg); err == nil {
			archive = name
		}

		srcDir := "-"
		if dir, err := pkg.SourceDir(); err == nil {
			srcDir = dir
		}

		url := "-"
		if pkg.Source != nil {
			url = pkg.Source.URL()
		}

		spew.Dump(struct {
			Name         string
			Version      string
			Archive      string
			URL          string
			SourceDir    string
			Destdir      string
			FilesDir     string
			NeedDownload bool
			Dependencies []string
			SkipUpload   bool
		}{
			Name:         pkg.Name,
			Version:      version,
			Archive:      archive,
			URL:          url,
			SourceDir:    srcDir,
			Destdir:      pkg.Destdir(),
			FilesDir:     pkg.FilesDir(),
			NeedDownload: pkg.NeedDownload(),
			Dependencies: pkg.Dependencies,
			SkipUpload:   pkg.SkipUpload,
		})

		return nil
	}

	return nil
}
