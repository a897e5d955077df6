package ops

import (
	"context"
	"fmt"
)

// UI carries the human-facing lines of a build. The logger is for
// diagnostics; these are the messages an operator actually watches.
type UI struct {
}

func (u *UI) Downloading(url string) {
	fmt.Printf("Downloading %s...\n", url)
}

func (u *UI) AlreadyDownloaded(path string) {
	fmt.Printf("Skipping already downloaded %s...\n", path)
}

func (u *UI) ArchiveMissing(url string) {
	fmt.Printf("%s is missing. Skipping...\n", url)
}

func (u *UI) SkipFetch(name string) {
	fmt.Printf("Skipping fetching package %s\n", name)
}

func (u *UI) SkipUpload(name string) {
	fmt.Printf("Skipping uploading for package %s\n", name)
}

func (u *UI) Patching(name, patch string) {
	fmt.Printf("Applying %s to %s...\n", patch, name)
}

func (u *UI) Building(name, version, arch string) {
	fmt.Printf("Building %s-%s for %s...\n", name, version, arch)
}

func (u *UI) UsingCached(name string) {
	fmt.Printf("Using cached build for %s\n", name)
}

func (u *UI) CreatingArchive(name, dist string) {
	fmt.Printf("Creating %s in %s...\n", name, dist)
}

func (u *UI) Publishing(name, dest string) {
	fmt.Printf("Publishing %s to %s...\n", name, dest)
}

type uiMarker struct{}

func GetUI(ctx context.Context) *UI {
	v := ctx.Value(uiMarker{})
	if v == nil {
		return &UI{}
	}

	return v.(*UI)
}

// WithUI installs ui for every op run under ctx.
func WithUI(ctx context.Context, ui *UI) context.Context {
	return context.WithValue(ctx, uiMarker{}, ui)
}
