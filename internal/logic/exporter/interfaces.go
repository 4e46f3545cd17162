package exporter

import "context"

// Repository is the port interface for reading the pod inventory.
// Implementations are provided by adapters in the outbound layer.
type Repository interface {
	ListPodsQuery(
		ctx context.Context,
		namespace string,
	) ([]Pod, error)
}

// UsageProvider is one tier of the usage source chain.
type UsageProvider interface {
	Name() string
	Provenance() Provenance
	PodUsageQuery(
		ctx context.Context,
		namespace string,
	) (UsageMap, error)
}

type usageResolver interface {
	ResolveUsage(
		ctx context.Context,
		namespace string,
	) (UsageMap, Provenance)
}

// notFound is a private interface for checking "not found" errors
// without importing the adapter package.
type notFound interface {
	IsNotFound()
}

// forbidden is a private interface for checking authorization errors
// without importing the adapter package.
type forbidden interface {
	IsForbidden()
}
