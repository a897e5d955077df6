package source

import "github.com/droidbuild/droidbuild/pkg/config"

// Patch is a diff applied to the owning package's source tree. For
// fetching it behaves exactly like the URL source it embeds; applying
// happens after every source is fetched, in declaration order.
type Patch struct {
	*URLSource

	// Strip is the -p level handed to the patch tool.
	Strip int
}

func NewPatch(cfg *config.Config, url string, opts ...URLOption) *Patch {
	return &Patch{
		URLSource: NewURL(cfg, url, opts...),
		Strip:     1,
	}
}
