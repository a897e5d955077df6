package ndk

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/shirou/gopsutil/v3/host"
)

var (
	ErrNDKNotSet       = errors.New("requires environment variable $ANDROID_NDK")
	ErrUnsupportedHost = errors.New("unsupported host system")
	ErrToolchainTooOld = errors.New("requires Android NDK r19 or above")
)

// Toolchain is a validated NDK installation. BinDir points at the
// unified llvm toolchain binaries for this host; it is only ever
// constructed through Resolve, so holding a Toolchain means the
// validation already passed.
type Toolchain struct {
	Root   string
	HostOS string
	BinDir string

	revision string
}

// Resolve locates the NDK named by $ANDROID_NDK and validates it for
// the current host.
func Resolve() (*Toolchain, error) {
	root := os.Getenv("ANDROID_NDK")
	if root == "" {
		return nil, errors.WithStack(ErrNDKNotSet)
	}

	return ResolveAt(root)
}

// ResolveAt validates the NDK rooted at root.
func ResolveAt(root string) (*Toolchain, error) {
	hostOS, err := detectHost()
	if err != nil {
		return nil, err
	}

	return resolve(root, hostOS)
}

func resolve(root, hostOS string) (*Toolchain, error) {
	switch hostOS {
	case "linux", "darwin":
		// ok
	default:
		return nil, errors.Wrapf(ErrUnsupportedHost, "%s", hostOS)
	}

	bin := filepath.Join(root, "toolchains", "llvm", "prebuilt", hostOS+"-x86_64", "bin")

	fi, err := os.Stat(bin)
	if err != nil || !fi.IsDir() {
		return nil, errors.Wrapf(ErrToolchainTooOld, "no unified toolchain under %s", root)
	}

	return &Toolchain{
		Root:   root,
		HostOS: hostOS,
		BinDir: bin,
	}, nil
}

func detectHost() (string, error) {
	info, err := host.Info()
	if err != nil {
		return "", errors.WithStack(err)
	}

	return info.OS, nil
}

// Revision returns the major revision token of this NDK, parsed from
// its source.properties ("Pkg.Revision = 21.4.7075529" yields "21").
// The token is part of every archive cache key.
func (t *Toolchain) Revision() (string, error) {
	if t.revision != "" {
		return t.revision, nil
	}

	path := filepath.Join(t.Root, "source.properties")

	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, "reading toolchain revision")
	}

	defer f.Close()

	scan := bufio.NewScanner(f)
	for scan.Scan() {
		line := scan.Text()

		idx := strings.IndexByte(line, '=')
		if idx == -1 {
			continue
		}

		if strings.TrimSpace(line[:idx]) != "Pkg.Revision" {
			continue
		}

		val := strings.TrimSpace(line[idx+1:])
		if dot := strings.IndexByte(val, '.'); dot != -1 {
			val = val[:dot]
		}

		if val == "" {
			break
		}

		t.revision = val

		return val, nil
	}

	if err := scan.Err(); err != nil {
		return "", errors.WithStack(err)
	}

	return "", errors.Errorf("no Pkg.Revision in %s", path)
}
