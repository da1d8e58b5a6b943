// Package observe turns property resolution events of the ordering engine
// into metrics and log records.
//
// Usage pattern:
//
//	hooks, err := observe.Metrics(otel.Meter("orders"))
//	if err != nil {
//		return err
//	}
//	ordered, err := ordering.OrderByProperty(rows, sortParam, core.WithHooks(hooks))
package observe

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/lguimbarda/min-query/query/core"
	"github.com/lguimbarda/min-query/query/ordering"
)

// Metric instrument names.
const (
	ResolvedCounter = "query.property.resolved"
	FallbackCounter = "query.property.fallback"
	RejectedCounter = "query.property.rejected"
)

// Attribute keys attached to every measurement.
const (
	TypeKey     = attribute.Key("query.type")
	PropertyKey = attribute.Key("query.property")
	ReasonKey   = attribute.Key("query.reason")
)

// Metrics creates counters on meter and returns hooks that increment them.
// Fallback and rejection measurements carry a reason attribute of
// "not_found", "not_orderable" or "invalid".
func Metrics(meter metric.Meter) (core.Hooks, error) {
	if meter == nil {
		return core.Hooks{}, core.NilArgument("meter")
	}
	resolved, err := meter.Int64Counter(ResolvedCounter,
		metric.WithDescription("properties resolved to accessors"))
	if err != nil {
		return core.Hooks{}, err
	}
	fallback, err := meter.Int64Counter(FallbackCounter,
		metric.WithDescription("orderings that used the fallback selector"))
	if err != nil {
		return core.Hooks{}, err
	}
	rejected, err := meter.Int64Counter(RejectedCounter,
		metric.WithDescription("property names rejected without fallback"))
	if err != nil {
		return core.Hooks{}, err
	}

	// Hooks carry no context; measurements are taken against Background.
	ctx := context.Background()
	return core.Hooks{
		OnResolve: func(typeName, property string) {
			resolved.Add(ctx, 1, metric.WithAttributes(TypeKey.String(typeName), PropertyKey.String(property)))
		},
		OnFallback: func(typeName, property string, err error) {
			fallback.Add(ctx, 1, metric.WithAttributes(TypeKey.String(typeName), PropertyKey.String(property), ReasonKey.String(Reason(err))))
		},
		OnReject: func(typeName, property string, err error) {
			rejected.Add(ctx, 1, metric.WithAttributes(TypeKey.String(typeName), PropertyKey.String(property), ReasonKey.String(Reason(err))))
		},
	}, nil
}

// Reason classifies a resolution error.
func Reason(err error) string {
	switch {
	case errors.Is(err, ordering.ErrPropertyNotFound):
		return "not_found"
	case errors.Is(err, ordering.ErrNotOrderable):
		return "not_orderable"
	}
	return "invalid"
}

// Logging returns hooks that write resolution events to logger: resolutions
// at debug level, fallbacks at info and rejections at warn.
func Logging(logger *slog.Logger) core.Hooks {
	if logger == nil {
		return core.Hooks{}
	}
	return core.Hooks{
		OnResolve: func(typeName, property string) {
			logger.Debug("property resolved",
				slog.String("type", typeName),
				slog.String("property", property))
		},
		OnFallback: func(typeName, property string, err error) {
			logger.Info("property fallback",
				slog.String("type", typeName),
				slog.String("property", property),
				slog.String("reason", Reason(err)))
		},
		OnReject: func(typeName, property string, err error) {
			logger.Warn("property rejected",
				slog.String("type", typeName),
				slog.String("property", property),
				slog.Any("error", err))
		},
	}
}

// Stats counts resolution events in memory. The zero value is ready to use
// and safe for concurrent hooks.
type Stats struct {
	Resolved  atomic.Int64
	Fallbacks atomic.Int64
	Rejected  atomic.Int64
}

// Hooks returns hooks that update s.
func (s *Stats) Hooks() core.Hooks {
	return core.Hooks{
		OnResolve:  func(string, string) { s.Resolved.Add(1) },
		OnFallback: func(string, string, error) { s.Fallbacks.Add(1) },
		OnReject:   func(string, string, error) { s.Rejected.Add(1) },
	}
}
