package engine

import (
	"log/slog"

	"github.com/ib-77/convee/pkg/convee"
	"github.com/ib-77/convee/pkg/convee/metadata"
	"github.com/ib-77/convee/pkg/convee/plugin"
)

const DefaultName = "Process"

// Options configures an engine at construction time.
type Options struct {
	Name    string
	ID      string      // generated when empty
	Kind    convee.Kind // KindProcess when empty
	Plugins []plugin.Plugin
	Logger  *slog.Logger
}

type RunOption func(*runConfig)

type runConfig struct {
	itemID  string
	plugins []plugin.Plugin
	md      *metadata.Helper
}

// WithItemID runs under an existing item id instead of minting one.
func WithItemID(id string) RunOption {
	return func(c *runConfig) {
		c.itemID = id
	}
}

// WithPlugins adds single-use plugins. They run after the registered
// plugins of every belt and are dropped when the call returns.
func WithPlugins(plugins ...plugin.Plugin) RunOption {
	return func(c *runConfig) {
		c.plugins = append(c.plugins, plugins...)
	}
}

// WithMetadata shares an existing helper with the run, so the caller and
// every plugin observe one context.
func WithMetadata(md *metadata.Helper) RunOption {
	return func(c *runConfig) {
		c.md = md
	}
}
