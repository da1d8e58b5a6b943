package core

import (
	"log/slog"
)

// Config holds configuration for the ordering engine.
type Config struct {
	// FieldTag, when set, lets a property name also match the first
	// comma-separated value of that struct tag (e.g. "json" or "db").
	FieldTag string
	// Logger receives debug records about fallbacks and rejections.
	// Nil disables logging.
	Logger *slog.Logger

	hooks hookSet
}

// Option is a functional option for configuring the ordering engine.
type Option func(*Config)

// WithFieldTag makes property lookup also match the named struct tag.
// Matching stays exact and case-sensitive.
func WithFieldTag(tag string) Option {
	return func(c *Config) {
		c.FieldTag = tag
	}
}

// WithLogger sets the logger used for debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithHooks attaches resolution hooks. Multiple calls compose in FIFO
// order - hooks from earlier calls are invoked first.
func WithHooks(hooks Hooks) Option {
	return func(c *Config) {
		c.hooks = append(c.hooks, hooks)
	}
}

// ApplyOptions applies functional options to a zero Config.
func ApplyOptions(opts ...Option) Config {
	var cfg Config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Resolved reports a successful property resolution.
func (c Config) Resolved(typeName, property string) {
	c.hooks.resolve(typeName, property)
}

// Fallback reports that a fallback selector replaced an unresolvable property.
func (c Config) Fallback(typeName, property string, err error) {
	if c.Logger != nil {
		c.Logger.Debug("property not usable, ordering by fallback selector",
			slog.String("type", typeName),
			slog.String("property", property),
			slog.Any("error", err))
	}
	c.hooks.fallback(typeName, property, err)
}

// Rejected reports a resolution failure that is returned to the caller.
func (c Config) Rejected(typeName, property string, err error) {
	if c.Logger != nil {
		c.Logger.Debug("property rejected",
			slog.String("type", typeName),
			slog.String("property", property),
			slog.Any("error", err))
	}
	c.hooks.reject(typeName, property, err)
}
