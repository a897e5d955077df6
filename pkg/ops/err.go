package ops

import "github.com/pkg/errors"

func track(err error) error {
	return errors.WithStack(err)
}

// stepf wraps a lifecycle failure so the error surfaced at the top
// names the failing package and step.
func stepf(err error, pkg, step string) error {
	return errors.Wrapf(err, "package %s: %s", pkg, step)
}
