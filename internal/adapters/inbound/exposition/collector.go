package exposition

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/skillcoder/kubemetrics-exporter/internal/logic/exporter"
)

var (
	containerLabels = []string{"namespace", "pod", "container"}
	podInfoLabels   = []string{"namespace", "pod", "node", "status", "creation_timestamp"}
)

var (
	cpuUsageDesc = prometheus.NewDesc(
		"pod_cpu_usage_cores",
		"CPU usage in cores",
		containerLabels, nil,
	)
	memoryUsageDesc = prometheus.NewDesc(
		"pod_memory_usage_bytes",
		"Memory usage in bytes",
		containerLabels, nil,
	)
	cpuRequestDesc = prometheus.NewDesc(
		"pod_cpu_request_cores",
		"CPU request in cores",
		containerLabels, nil,
	)
	cpuLimitDesc = prometheus.NewDesc(
		"pod_cpu_limit_cores",
		"CPU limit in cores",
		containerLabels, nil,
	)
	memoryRequestDesc = prometheus.NewDesc(
		"pod_memory_request_bytes",
		"Memory request in bytes",
		containerLabels, nil,
	)
	memoryLimitDesc = prometheus.NewDesc(
		"pod_memory_limit_bytes",
		"Memory limit in bytes",
		containerLabels, nil,
	)
	podInfoDesc = prometheus.NewDesc(
		"pod_info",
		"Pod information",
		podInfoLabels, nil,
	)
)

// SnapshotCollector renders one immutable snapshot. A new collector is
// created for every scrape.
type SnapshotCollector struct {
	snapshot exporter.MetricSnapshot
}

// NewSnapshotCollector wraps a snapshot as a prometheus.Collector.
func NewSnapshotCollector(snapshot exporter.MetricSnapshot) *SnapshotCollector {
	return &SnapshotCollector{snapshot: snapshot}
}

var _ prometheus.Collector = (*SnapshotCollector)(nil)

func (c *SnapshotCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- cpuUsageDesc
	ch <- memoryUsageDesc
	ch <- cpuRequestDesc
	ch <- cpuLimitDesc
	ch <- memoryRequestDesc
	ch <- memoryLimitDesc
	ch <- podInfoDesc
}

func (c *SnapshotCollector) Collect(ch chan<- prometheus.Metric) {
	namespace := c.snapshot.Namespace

	for i := range c.snapshot.Pods {
		pod := &c.snapshot.Pods[i]

		ch <- prometheus.MustNewConstMetric(
			podInfoDesc, prometheus.GaugeValue, 1,
			namespace, pod.Name, pod.Node, pod.Phase, pod.CreationTimestamp,
		)

		for j := range pod.Containers {
			spec := &pod.Containers[j]
			usage := pod.Usage[spec.Name]
			labels := []string{namespace, pod.Name, spec.Name}

			ch <- prometheus.MustNewConstMetric(cpuUsageDesc, prometheus.GaugeValue, usage.CPU.Value, labels...)
			ch <- prometheus.MustNewConstMetric(memoryUsageDesc, prometheus.GaugeValue, usage.Memory.Value, labels...)
			ch <- prometheus.MustNewConstMetric(cpuRequestDesc, prometheus.GaugeValue, spec.CPURequest.Value, labels...)
			ch <- prometheus.MustNewConstMetric(cpuLimitDesc, prometheus.GaugeValue, spec.CPULimit.Value, labels...)
			ch <- prometheus.MustNewConstMetric(memoryRequestDesc, prometheus.GaugeValue, spec.MemoryRequest.Value, labels...)
			ch <- prometheus.MustNewConstMetric(memoryLimitDesc, prometheus.GaugeValue, spec.MemoryLimit.Value, labels...)
		}
	}
}
