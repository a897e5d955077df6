package ops

import "github.com/hashicorp/go-hclog"

type common struct {
	logger hclog.Logger
}

func (c *common) L() hclog.Logger {
	if c.logger != nil {
		return c.logger
	}

	c.logger = hclog.L()

	return c.logger
}

func (c *common) SetLogger(logger hclog.Logger) {
	c.logger = logger
}

// sub derives the common state for a nested op, so the ops driving one
// package's lifecycle log under distinguishable component names.
func (c *common) sub(name string) common {
	return common{logger: c.L().Named(name)}
}
