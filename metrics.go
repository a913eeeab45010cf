package cashier

import (
	"context"

	"go.opentelemetry.io/otel/metric"
)

// NewMeterHooks returns a hook set backed by OpenTelemetry counters:
// cashier.hits, cashier.misses, cashier.stores, cashier.shared and
// cashier.evictions. Pass the result to [WithHooks], or combine it with
// other hook sets via [JoinHooks].
func NewMeterHooks(meter metric.Meter) (*Hooks, error) {
	hits, err := meter.Int64Counter(
		"cashier.hits",
		metric.WithDescription("Calls served from the cache"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}
	misses, err := meter.Int64Counter(
		"cashier.misses",
		metric.WithDescription("Calls that found no fresh cache entry"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}
	stores, err := meter.Int64Counter(
		"cashier.stores",
		metric.WithDescription("Computed results written to the cache"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, err
	}
	shared, err := meter.Int64Counter(
		"cashier.shared",
		metric.WithDescription("Callers that received a result from a concurrent computation"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}
	evictions, err := meter.Int64Counter(
		"cashier.evictions",
		metric.WithDescription("Entries removed because their TTL elapsed"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, err
	}

	return &Hooks{
		OnHit:    func(ctx context.Context, _ string) { hits.Add(ctx, 1) },
		OnMiss:   func(ctx context.Context, _ string) { misses.Add(ctx, 1) },
		OnStore:  func(ctx context.Context, _ string) { stores.Add(ctx, 1) },
		OnShared: func(ctx context.Context, _ string) { shared.Add(ctx, 1) },
		OnEvict:  func(_ string) { evictions.Add(context.Background(), 1) },
	}, nil
}
