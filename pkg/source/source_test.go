package source

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/droidbuild/droidbuild/pkg/config"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	dir, err := ioutil.TempDir("", "source")
	require.NoError(t, err)

	t.Cleanup(func() { os.RemoveAll(dir) })

	cfg := &config.Config{
		BuildRoot: dir,
		BaseDir:   dir,
	}

	require.NoError(t, os.MkdirAll(cfg.DownloadDir(), 0755))
	require.NoError(t, os.MkdirAll(cfg.SourcesDir(), 0755))

	return cfg
}

// tarGz builds a release-style tarball in memory: one top level
// directory named dirName holding the given files.
func tarGz(t *testing.T, dirName string, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer

	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)

	err := tw.WriteHeader(&tar.Header{
		Name:     dirName + "/",
		Typeflag: tar.TypeDir,
		Mode:     0755,
	})
	require.NoError(t, err)

	var names []string
	for name := range files {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		content := files[name]

		err := tw.WriteHeader(&tar.Header{
			Name: dirName + "/" + name,
			Mode: 0644,
			Size: int64(len(content)),
		})
		require.NoError(t, err)

		_, err = tw.Write([]byte(content))
		require.NoError(t, err)
	}

	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())

	return buf.Bytes()
}

func TestDownload(t *testing.T) {
	t.Run("writes the body to dest", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("payload"))
		}))
		defer srv.Close()

		dir, err := ioutil.TempDir("", "download")
		require.NoError(t, err)

		defer os.RemoveAll(dir)

		dest := filepath.Join(dir, "file")

		err = Download(context.Background(), srv.URL+"/file", dest)
		require.NoError(t, err)

		data, err := ioutil.ReadFile(dest)
		require.NoError(t, err)

		assert.Equal(t, "payload", string(data))

		_, err = os.Stat(dest + ".part")
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("any non-200 is a FetchError carrying the status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer srv.Close()

		dir, err := ioutil.TempDir("", "download")
		require.NoError(t, err)

		defer os.RemoveAll(dir)

		dest := filepath.Join(dir, "file")

		err = Download(context.Background(), srv.URL+"/file", dest)
		require.Error(t, err)

		var fe *FetchError
		require.True(t, errors.As(err, &fe))

		assert.Equal(t, 404, fe.Status)

		_, err = os.Stat(dest)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("transport failures carry no status", func(t *testing.T) {
		dir, err := ioutil.TempDir("", "download")
		require.NoError(t, err)

		defer os.RemoveAll(dir)

		err = Download(context.Background(), "http://127.0.0.1:1/x", filepath.Join(dir, "x"))
		require.Error(t, err)

		var fe *FetchError
		require.True(t, errors.As(err, &fe))

		assert.Equal(t, 0, fe.Status)
		assert.Error(t, fe.Unwrap())
	})
}
