package exporter

import "github.com/skillcoder/kubemetrics-exporter/internal/logic/quantity"

// Provenance tells which usage tier produced the values of a snapshot.
type Provenance string

const (
	ProvenanceMetricsAPI  Provenance = "metrics_api"
	ProvenanceCLIFallback Provenance = "cli_fallback"
	ProvenanceUnavailable Provenance = "unavailable"
)

// Pod is the raw inventory record of a pod, before any quantity parsing.
// Repositories report unscheduled pods with Node set to UnknownNode.
type Pod struct {
	Name              string
	Node              string
	Phase             string
	CreationTimestamp string
	Containers        []Container
}

// Container holds the declared resources of a container as raw strings.
type Container struct {
	Name          string
	CPURequest    string
	CPULimit      string
	MemoryRequest string
	MemoryLimit   string
}

// RawUsage is the observed usage of one container as reported by a usage tier.
type RawUsage struct {
	CPU    string
	Memory string
}

// PodUsage maps container name to its raw usage.
type PodUsage map[string]RawUsage

// UsageMap maps pod name to its per-container usage.
type UsageMap map[string]PodUsage

// ResourceQuantity is a parsed quantity that keeps its raw encoding.
type ResourceQuantity struct {
	Raw   string
	Value float64
	Kind  quantity.Kind
}

type ContainerSpec struct {
	Name          string
	CPURequest    ResourceQuantity
	CPULimit      ResourceQuantity
	MemoryRequest ResourceQuantity
	MemoryLimit   ResourceQuantity
}

type ContainerUsage struct {
	Name       string
	CPU        ResourceQuantity
	Memory     ResourceQuantity
	Provenance Provenance
}

// PodRecord is a pod as it appears in a snapshot. Usage has an entry for every
// container in Containers.
type PodRecord struct {
	Name              string
	Node              string
	Phase             string
	CreationTimestamp string
	Containers        []ContainerSpec
	Usage             map[string]ContainerUsage
}

// MetricSnapshot is the result of one scrape cycle. It is never modified after
// BuildSnapshot returns it.
type MetricSnapshot struct {
	Namespace    string
	Pods         []PodRecord
	Provenance   Provenance
	InventoryErr error
}
