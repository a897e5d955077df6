package pkgs

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/droidbuild/droidbuild/pkg/arch"
	"github.com/droidbuild/droidbuild/pkg/config"
	"github.com/droidbuild/droidbuild/pkg/source"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	dir, err := ioutil.TempDir("", "pkgs")
	require.NoError(t, err)

	t.Cleanup(func() { os.RemoveAll(dir) })

	a, err := arch.Lookup("arm64")
	require.NoError(t, err)

	cfg := &config.Config{
		BuildRoot: dir,
		BaseDir:   dir,
		APILevel:  24,
		Arch:      a,
	}

	require.NoError(t, os.MkdirAll(cfg.DownloadDir(), 0755))
	require.NoError(t, os.MkdirAll(cfg.SourcesDir(), 0755))

	return cfg
}

// withFakeNDK points $ANDROID_NDK at a minimal valid toolchain tree
// for the duration of the test.
func withFakeNDK(t *testing.T) string {
	t.Helper()

	root, err := ioutil.TempDir("", "ndk")
	require.NoError(t, err)

	bin := filepath.Join(root, "toolchains", "llvm", "prebuilt", "linux-x86_64", "bin")
	require.NoError(t, os.MkdirAll(bin, 0755))

	props := "Pkg.Desc = Android NDK\nPkg.Revision = 21.4.7075529\n"
	err = ioutil.WriteFile(filepath.Join(root, "source.properties"), []byte(props), 0644)
	require.NoError(t, err)

	old, had := os.LookupEnv("ANDROID_NDK")
	os.Setenv("ANDROID_NDK", root)

	t.Cleanup(func() {
		if had {
			os.Setenv("ANDROID_NDK", old)
		} else {
			os.Unsetenv("ANDROID_NDK")
		}

		os.RemoveAll(root)
	})

	return root
}

func TestPackage(t *testing.T) {
	t.Run("names are lowercased", func(t *testing.T) {
		cfg := testConfig(t)

		p := New(cfg, "OpenSSL")

		assert.Equal(t, "openssl", p.Name)
		assert.Equal(t, "arm64", p.Arch.Name)
	})

	t.Run("a declared version wins over the source", func(t *testing.T) {
		cfg := testConfig(t)

		p := New(cfg, "zlib")
		p.Version = "9.9"
		p.Source = source.NewURL(cfg, "https://zlib.net/zlib-1.3.1.tar.gz")

		ver, err := p.ResolveVersion()
		require.NoError(t, err)

		assert.Equal(t, "9.9", ver)
	})

	t.Run("the source derives the version otherwise", func(t *testing.T) {
		cfg := testConfig(t)

		p := New(cfg, "zlib")
		p.Source = source.NewURL(cfg, "https://zlib.net/zlib-1.3.1.tar.gz")

		ver, err := p.ResolveVersion()
		require.NoError(t, err)

		assert.Equal(t, "1.3.1", ver)
	})

	t.Run("no source means no version", func(t *testing.T) {
		cfg := testConfig(t)

		p := New(cfg, "meta")

		_, err := p.ResolveVersion()
		require.Error(t, err)

		assert.True(t, errors.Is(err, source.ErrVersionUnknown))
		assert.False(t, p.NeedDownload())
	})

	t.Run("layout accessors", func(t *testing.T) {
		cfg := testConfig(t)

		p := New(cfg, "zlib")

		assert.Equal(t, filepath.Join(cfg.BuildRoot, "target", "zlib"), p.Destdir())
		assert.Equal(t, filepath.Join(cfg.BaseDir, "mk", "zlib"), p.FilesDir())
	})
}

func TestPackageSources(t *testing.T) {
	cfg := testConfig(t)

	p := New(cfg, "readline")
	p.Source = source.NewURL(cfg,
		"https://ftp.gnu.org/gnu/readline/readline-8.2.tar.gz",
		source.WithSigSuffix(".sig"))
	p.Patches = []*source.Patch{
		source.NewPatch(cfg,
			"https://ftp.gnu.org/gnu/readline/readline-8.2-patches/readline82-001",
			source.WithSigSuffix(".sig")),
		source.NewPatch(cfg, "https://example.org/local-fix.patch"),
	}

	srcs := p.Sources()
	require.Len(t, srcs, 5)

	var urls []string
	for _, s := range srcs {
		urls = append(urls, s.URL())
	}

	assert.Equal(t, []string{
		"https://ftp.gnu.org/gnu/readline/readline-8.2.tar.gz",
		"https://ftp.gnu.org/gnu/readline/readline-8.2.tar.gz.sig",
		"https://ftp.gnu.org/gnu/readline/readline-8.2-patches/readline82-001",
		"https://ftp.gnu.org/gnu/readline/readline-8.2-patches/readline82-001.sig",
		"https://example.org/local-fix.patch",
	}, urls)

	// The implicit signature sources are plain files.
	assert.Equal(t, "", srcs[1].SigSuffix())
}

func TestInitBuildEnv(t *testing.T) {
	withFakeNDK(t)

	cfg := testConfig(t)

	p := New(cfg, "zlib")

	mutated, err := p.InitBuildEnv()
	require.NoError(t, err)

	require.True(t, mutated)

	env := p.Env()
	require.NotEmpty(t, env["CC"])

	assert.Contains(t, env["CC"][0], "aarch64-linux-android24-clang")

	mutated, err = p.InitBuildEnv()
	require.NoError(t, err)

	assert.False(t, mutated)
	assert.Equal(t, env["CC"], p.Env()["CC"])
}
