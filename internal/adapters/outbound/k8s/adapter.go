package k8s

import (
	"context"
	"fmt"
	"log/slog"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	metricsv "k8s.io/metrics/pkg/client/clientset/versioned"

	"github.com/skillcoder/kubemetrics-exporter/internal/logic/exporter"
)

const (
	usageTierName = "metrics-api"
	pingerName    = "kube-apiserver"
	versionPath   = "/version"
)

// Adapter reads pods and pod metrics of a namespace.
type Adapter struct {
	logger           *slog.Logger
	clientset        kubernetes.Interface
	metricsClientset metricsv.Interface
}

// New creates a new K8s adapter. It serves the pod inventory, the primary
// usage tier and the API server pinger.
func New(
	logger *slog.Logger,
	clientset kubernetes.Interface,
	metricsClientset metricsv.Interface,
) *Adapter {
	return &Adapter{
		logger:           logger,
		clientset:        clientset,
		metricsClientset: metricsClientset,
	}
}

var (
	_ exporter.Repository    = (*Adapter)(nil)
	_ exporter.UsageProvider = (*usageTier)(nil)
)

func (a *Adapter) ListPodsQuery(
	ctx context.Context,
	namespace string,
) ([]exporter.Pod, error) {
	podList, err := a.clientset.CoreV1().Pods(namespace).List(
		ctx,
		metav1.ListOptions{},
	)
	if err != nil {
		return nil, fmt.Errorf("list pods: %w", classify(err))
	}

	pods := make([]exporter.Pod, 0, len(podList.Items))
	for i := range podList.Items {
		pods = append(pods, toDomainPod(&podList.Items[i]))
	}

	a.logger.DebugContext(ctx, "pods listed", "namespace", namespace, "count", len(pods))

	return pods, nil
}

// UsageTier returns the metrics.k8s.io usage provider.
func (a *Adapter) UsageTier() exporter.UsageProvider {
	return &usageTier{adapter: a}
}

// Name returns the name of the API server pinger.
func (a *Adapter) Name() string {
	return pingerName
}

// Ping checks that the API server answers. Cluster outages do not make the
// exporter unhealthy, so the pinger is informational only.
func (a *Adapter) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	discovery := a.clientset.Discovery()

	restClient := discovery.RESTClient()
	if restClient == nil {
		// Fake discovery clients carry no transport.
		if _, err := discovery.ServerVersion(); err != nil {
			return fmt.Errorf("get server version: %w", err)
		}

		return nil
	}

	if err := restClient.Get().AbsPath(versionPath).Do(ctx).Error(); err != nil {
		return fmt.Errorf("get server version: %w", err)
	}

	return nil
}

func (a *Adapter) PingerCritical() bool {
	return false
}

func (a *Adapter) PingerReadyCritical() bool {
	return false
}

type usageTier struct {
	adapter *Adapter
}

func (u *usageTier) Name() string {
	return usageTierName
}

func (u *usageTier) Provenance() exporter.Provenance {
	return exporter.ProvenanceMetricsAPI
}

func (u *usageTier) PodUsageQuery(
	ctx context.Context,
	namespace string,
) (exporter.UsageMap, error) {
	podMetricsList, err := u.adapter.metricsClientset.MetricsV1beta1().PodMetricses(namespace).List(
		ctx,
		metav1.ListOptions{},
	)
	if err != nil {
		return nil, fmt.Errorf("list pod metrics: %w", classify(err))
	}

	return toDomainUsage(ctx, u.adapter.logger, podMetricsList), nil
}

func classify(err error) error {
	switch {
	case apierrors.IsNotFound(err):
		return fmt.Errorf("%w: %w", errNamespaceNotFound, err)
	case apierrors.IsForbidden(err), apierrors.IsUnauthorized(err):
		return fmt.Errorf("%w: %w", errForbidden, err)
	}

	return err
}
