package k8s

import (
	"context"
	"log/slog"

	corev1 "k8s.io/api/core/v1"
	metricsv1beta1 "k8s.io/metrics/pkg/apis/metrics/v1beta1"

	"github.com/skillcoder/kubemetrics-exporter/internal/logic/exporter"
)

func toDomainPod(pod *corev1.Pod) exporter.Pod {
	out := exporter.Pod{
		Name:       pod.Name,
		Node:       pod.Spec.NodeName,
		Phase:      string(pod.Status.Phase),
		Containers: make([]exporter.Container, 0, len(pod.Spec.Containers)),
	}

	if out.Node == "" {
		out.Node = exporter.UnknownNode
	}

	if !pod.CreationTimestamp.IsZero() {
		out.CreationTimestamp = pod.CreationTimestamp.UTC().Format(exporter.CreationTimestampLayout)
	}

	for i := range pod.Spec.Containers {
		container := &pod.Spec.Containers[i]

		out.Containers = append(out.Containers, exporter.Container{
			Name:          container.Name,
			CPURequest:    rawQuantity(container.Resources.Requests, corev1.ResourceCPU),
			CPULimit:      rawQuantity(container.Resources.Limits, corev1.ResourceCPU),
			MemoryRequest: rawQuantity(container.Resources.Requests, corev1.ResourceMemory),
			MemoryLimit:   rawQuantity(container.Resources.Limits, corev1.ResourceMemory),
		})
	}

	return out
}

func rawQuantity(list corev1.ResourceList, name corev1.ResourceName) string {
	q, ok := list[name]
	if !ok {
		return exporter.ZeroQuantity
	}

	return q.String()
}

func toDomainUsage(
	ctx context.Context,
	logger *slog.Logger,
	podMetricsList *metricsv1beta1.PodMetricsList,
) exporter.UsageMap {
	usage := make(exporter.UsageMap, len(podMetricsList.Items))

	for i := range podMetricsList.Items {
		podMetrics := &podMetricsList.Items[i]
		containers := make(exporter.PodUsage, len(podMetrics.Containers))

		for j := range podMetrics.Containers {
			container := &podMetrics.Containers[j]

			containers[container.Name] = exporter.RawUsage{
				CPU:    rawQuantity(container.Usage, corev1.ResourceCPU),
				Memory: rawQuantity(container.Usage, corev1.ResourceMemory),
			}
		}

		logger.DebugContext(ctx, "pod metrics",
			"pod", podMetrics.Name,
			"namespace", podMetrics.Namespace,
			"containers", len(containers),
		)

		usage[podMetrics.Name] = containers
	}

	return usage
}
