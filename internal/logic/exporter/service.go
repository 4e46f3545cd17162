package exporter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/skillcoder/kubemetrics-exporter/internal/infra/metrics"
	"github.com/skillcoder/kubemetrics-exporter/internal/logic/quantity"
)

// Service builds metric snapshots for one namespace.
type Service struct {
	logger    *slog.Logger
	repo      Repository
	resolver  usageResolver
	namespace string
}

// New creates a new snapshot builder service.
func New(
	logger *slog.Logger,
	repo Repository,
	resolver usageResolver,
	namespace string,
) *Service {
	return &Service{
		logger:    logger,
		repo:      repo,
		resolver:  resolver,
		namespace: namespace,
	}
}

// Namespace returns the namespace the service reports on.
func (s *Service) Namespace() string {
	return s.namespace
}

// BuildSnapshot acquires inventory and usage concurrently, joins them by
// (pod, container) and parses every quantity. It always returns a complete
// snapshot; on inventory failure the snapshot has no pods.
func (s *Service) BuildSnapshot(ctx context.Context) MetricSnapshot {
	start := time.Now()
	logger := s.logger.With("namespace", s.namespace, "component", "BuildSnapshot")

	var (
		pods       []Pod
		usage      UsageMap
		provenance Provenance
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error

		pods, err = s.repo.ListPodsQuery(groupCtx, s.namespace)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInventoryFetch, err)
		}

		return nil
	})

	group.Go(func() error {
		usage, provenance = s.resolver.ResolveUsage(groupCtx, s.namespace)

		return nil
	})

	if err := group.Wait(); err != nil {
		metrics.RecordInventoryFailure(s.namespace)
		logger.ErrorContext(ctx, "pod inventory failed, serving empty snapshot",
			"reason", err,
			"hint", inventoryHint(err),
		)

		snapshot := MetricSnapshot{
			Namespace:    s.namespace,
			Provenance:   provenance,
			InventoryErr: err,
		}
		metrics.RecordSnapshot(s.namespace, string(provenance), 0, time.Since(start))

		return snapshot
	}

	records := make([]PodRecord, 0, len(pods))
	for i := range pods {
		records = append(records, s.buildPodRecord(ctx, logger, &pods[i], usage[pods[i].Name], provenance))
	}

	logger.DebugContext(ctx, "snapshot built",
		"pods", len(records),
		"provenance", string(provenance),
		"duration", time.Since(start),
	)
	metrics.RecordSnapshot(s.namespace, string(provenance), len(records), time.Since(start))

	return MetricSnapshot{
		Namespace:  s.namespace,
		Pods:       records,
		Provenance: provenance,
	}
}

func (s *Service) buildPodRecord(
	ctx context.Context,
	logger *slog.Logger,
	pod *Pod,
	podUsage PodUsage,
	provenance Provenance,
) PodRecord {
	logger = logger.With("pod", pod.Name)

	record := PodRecord{
		Name:              pod.Name,
		Node:              pod.Node,
		Phase:             pod.Phase,
		CreationTimestamp: pod.CreationTimestamp,
		Containers:        make([]ContainerSpec, 0, len(pod.Containers)),
		Usage:             make(map[string]ContainerUsage, len(pod.Containers)),
	}

	for i := range pod.Containers {
		container := &pod.Containers[i]
		clog := logger.With("container", container.Name)

		record.Containers = append(record.Containers, ContainerSpec{
			Name:          container.Name,
			CPURequest:    parseField(ctx, clog, "cpu_request", quantity.KindCPUCores, container.CPURequest),
			CPULimit:      parseField(ctx, clog, "cpu_limit", quantity.KindCPUCores, container.CPULimit),
			MemoryRequest: parseField(ctx, clog, "memory_request", quantity.KindMemoryBytes, container.MemoryRequest),
			MemoryLimit:   parseField(ctx, clog, "memory_limit", quantity.KindMemoryBytes, container.MemoryLimit),
		})

		raw, ok := podUsage[container.Name]
		usageProvenance := provenance

		if !ok {
			raw = RawUsage{CPU: ZeroQuantity, Memory: ZeroQuantity}
			usageProvenance = ProvenanceUnavailable
		}

		record.Usage[container.Name] = ContainerUsage{
			Name:       container.Name,
			CPU:        parseField(ctx, clog, "cpu_usage", quantity.KindCPUCores, raw.CPU),
			Memory:     parseField(ctx, clog, "memory_usage", quantity.KindMemoryBytes, raw.Memory),
			Provenance: usageProvenance,
		}
	}

	return record
}

// parseField degrades a malformed quantity to zero; the rest of the snapshot
// is unaffected.
func parseField(
	ctx context.Context,
	logger *slog.Logger,
	field string,
	kind quantity.Kind,
	raw string,
) ResourceQuantity {
	if raw == "" {
		raw = ZeroQuantity
	}

	value, err := quantity.Parse(kind, raw)
	if err != nil {
		metrics.RecordQuantityParseError(field)
		logger.WarnContext(ctx, "malformed quantity reported as zero",
			"field", field,
			"raw", raw,
			"reason", err,
		)

		value = 0
	}

	return ResourceQuantity{
		Raw:   raw,
		Value: value,
		Kind:  kind,
	}
}

func inventoryHint(err error) string {
	var notFoundTarget notFound
	if errors.As(err, &notFoundTarget) {
		return "namespace not found"
	}

	var forbiddenTarget forbidden
	if errors.As(err, &forbiddenTarget) {
		return "missing RBAC permission to list pods"
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return "cluster API did not answer within the scrape timeout"
	}

	return "cluster API unreachable"
}
