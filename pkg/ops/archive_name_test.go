package ops

import (
	"testing"

	"github.com/droidbuild/droidbuild/pkg/pkgs"
	"github.com/droidbuild/droidbuild/pkg/source"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveFileName(t *testing.T) {
	t.Run("follows the cache key grammar", func(t *testing.T) {
		name := ArchiveFileName("foo", "arm64", "1.2.3", 24, "21")

		assert.Equal(t, "foo-arm64-1.2.3-android24-ndk_21.tar.bz2", name)
	})

	t.Run("every input lands in the name", func(t *testing.T) {
		a := ArchiveFileName("openssl", "x86_64", "1.1.1w", 21, "23")

		assert.Equal(t, "openssl-x86_64-1.1.1w-android21-ndk_23.tar.bz2", a)
		assert.NotEqual(t, a, ArchiveFileName("openssl", "x86_64", "1.1.1w", 24, "23"))
		assert.NotEqual(t, a, ArchiveFileName("openssl", "x86_64", "1.1.1w", 21, "25"))
		assert.NotEqual(t, a, ArchiveFileName("openssl", "x86", "1.1.1w", 21, "23"))
	})
}

func TestArchiveName(t *testing.T) {
	withFakeNDK(t)

	cfg := testConfig(t)

	t.Run("resolves version and toolchain revision", func(t *testing.T) {
		p := pkgs.New(cfg, "zlib")
		p.Source = source.NewURL(cfg, "https://zlib.net/zlib-1.3.1.tar.gz")

		name, err := ArchiveName(p)
		require.NoError(t, err)

		assert.Equal(t, "zlib-arm64-1.3.1-android24-ndk_21.tar.bz2", name)
	})

	t.Run("propagates an unknowable version", func(t *testing.T) {
		p := pkgs.New(cfg, "mystery")

		_, err := ArchiveName(p)
		require.Error(t, err)

		assert.True(t, errors.Is(err, source.ErrVersionUnknown))
	})
}
