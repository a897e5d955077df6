package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/droidbuild/droidbuild/pkg/arch"
	"github.com/mitchellh/go-homedir"
)

// Config carries the process-wide build settings: where the build tree
// lives, which Android target is being produced, and where prebuilt
// archives are fetched from and published to. It is constructed once by
// Load and handed to every component explicitly.
type Config struct {
	// BuildRoot holds all generated state: downloads, extracted
	// sources, per-package install roots, the shared sysroot and
	// the dist directory of finished archives.
	BuildRoot string

	// BaseDir is the checkout the binary runs from; per-package
	// overlay files live under <BaseDir>/mk.
	BaseDir string

	// ArchivesRoot is the URL prefix of the remote archive store.
	ArchivesRoot string

	// ArchiveDest, when non-empty, is a local mount finished
	// archives are copied to. Empty means publishing is skipped.
	ArchiveDest string

	APILevel int
	Arch     arch.Arch
}

const (
	DefaultBuildRoot    = "build"
	DefaultArchivesRoot = "https://dl.chyen.cc/python3-android/"
	DefaultAPILevel     = 21
	DefaultArch         = "arm64"
)

func Load() (*Config, error) {
	base, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		BuildRoot:    filepath.Join(base, DefaultBuildRoot),
		BaseDir:      base,
		ArchivesRoot: DefaultArchivesRoot,
		APILevel:     DefaultAPILevel,
	}

	cfg.Arch, err = arch.Lookup(DefaultArch)
	if err != nil {
		return nil, err
	}

	return updateFromEnv(cfg)
}

func updateFromEnv(cfg *Config) (*Config, error) {
	if path := os.Getenv("DROIDBUILD_ROOT"); path != "" {
		path, err := homedir.Expand(path)
		if err != nil {
			return nil, err
		}

		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.BaseDir, path)
		}

		cfg.BuildRoot = path
	}

	if url := os.Getenv("DROIDBUILD_ARCHIVES_ROOT"); url != "" {
		cfg.ArchivesRoot = url
	}

	if path := os.Getenv("DROIDBUILD_ARCHIVE_DEST"); path != "" {
		path, err := homedir.Expand(path)
		if err != nil {
			return nil, err
		}

		cfg.ArchiveDest = path
	}

	if lvl := os.Getenv("ANDROID_API_LEVEL"); lvl != "" {
		n, err := strconv.Atoi(lvl)
		if err != nil {
			return nil, fmt.Errorf("invalid ANDROID_API_LEVEL: %s", lvl)
		}

		cfg.APILevel = n
	}

	if name := os.Getenv("ANDROID_ARCH"); name != "" {
		a, err := arch.Lookup(name)
		if err != nil {
			return nil, err
		}

		cfg.Arch = a
	}

	return ensureDirs(cfg)
}

func ensureDirs(cfg *Config) (*Config, error) {
	dirs := []string{
		cfg.DistDir(),
		cfg.SysrootDir(),
		cfg.SourcesDir(),
		cfg.DownloadDir(),
	}

	for _, dir := range dirs {
		fi, err := os.Stat(dir)
		if err != nil {
			if os.IsNotExist(err) {
				err = os.MkdirAll(dir, 0755)
				if err != nil {
					return nil, err
				}
			}
		} else if !fi.IsDir() {
			return nil, fmt.Errorf("path is not a directory: %s", dir)
		}
	}

	return cfg, nil
}

// DistDir holds finished archives, both locally built and fetched.
func (c *Config) DistDir() string {
	return filepath.Join(c.BuildRoot, "dist")
}

// SysrootDir is the shared cross-compile prefix every finished package
// is extracted into.
func (c *Config) SysrootDir() string {
	return filepath.Join(c.BuildRoot, "sysroot")
}

// TargetsDir is the parent of every per-package install root.
func (c *Config) TargetsDir() string {
	return filepath.Join(c.BuildRoot, "target")
}

// TargetDir is the isolated install root one package's build writes to.
func (c *Config) TargetDir(name string) string {
	return filepath.Join(c.TargetsDir(), name)
}

// SourcesDir holds extracted source trees and VCS checkouts.
func (c *Config) SourcesDir() string {
	return filepath.Join(c.BuildRoot, "src")
}

// DownloadDir holds fetched files before extraction.
func (c *Config) DownloadDir() string {
	return filepath.Join(c.BuildRoot, "downloads")
}

// FilesDir is the static overlay directory a recipe may install from.
func (c *Config) FilesDir(name string) string {
	return filepath.Join(c.BaseDir, "mk", name)
}

// SumFilePath is the digest ledger kept next to the archives.
func (c *Config) SumFilePath() string {
	return filepath.Join(c.DistDir(), "sums")
}
