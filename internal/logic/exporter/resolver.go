package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/skillcoder/kubemetrics-exporter/internal/infra/metrics"
)

// Resolver tries usage providers in order and returns the first success.
type Resolver struct {
	logger      *slog.Logger
	providers   []UsageProvider
	tierTimeout time.Duration
}

// NewResolver creates a resolver over the given tiers. A zero tierTimeout
// leaves each tier bounded only by the caller's context.
func NewResolver(
	logger *slog.Logger,
	tierTimeout time.Duration,
	providers ...UsageProvider,
) *Resolver {
	return &Resolver{
		logger:      logger,
		providers:   providers,
		tierTimeout: tierTimeout,
	}
}

var _ usageResolver = (*Resolver)(nil)

// ResolveUsage never fails: when every tier fails it returns an empty map and
// ProvenanceUnavailable.
func (r *Resolver) ResolveUsage(
	ctx context.Context,
	namespace string,
) (UsageMap, Provenance) {
	logger := r.logger.With("namespace", namespace, "component", "ResolveUsage")

	for _, provider := range r.providers {
		usage, err := r.query(ctx, provider, namespace)
		if err != nil {
			metrics.RecordUsageTierFailure(provider.Name())
			logger.WarnContext(ctx, "usage tier failed, trying next",
				"tier", provider.Name(),
				"provenance", string(provider.Provenance()),
				"reason", err,
			)

			continue
		}

		if usage == nil {
			usage = UsageMap{}
		}

		logger.DebugContext(ctx, "usage resolved",
			"tier", provider.Name(),
			"pods", len(usage),
		)

		return usage, provider.Provenance()
	}

	logger.WarnContext(ctx, "reporting zero usage",
		"reason", ErrUsageSourceDegraded,
		"tiers", len(r.providers),
	)

	return UsageMap{}, ProvenanceUnavailable
}

func (r *Resolver) query(
	ctx context.Context,
	provider UsageProvider,
	namespace string,
) (UsageMap, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context done before tier %s: %w", provider.Name(), err)
	}

	if r.tierTimeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, r.tierTimeout)
		defer cancel()
	}

	usage, err := provider.PodUsageQuery(ctx, namespace)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", provider.Name(), err)
	}

	return usage, nil
}
