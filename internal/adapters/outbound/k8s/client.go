package k8s

import (
	"fmt"
	"log/slog"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	metricsv "k8s.io/metrics/pkg/client/clientset/versioned"
)

// Clients bundles the core and metrics API clients built from one config.
type Clients struct {
	Kubernetes kubernetes.Interface
	Metrics    metricsv.Interface
}

// NewClients builds the cluster clients. A kubeconfig (explicit path, $KUBECONFIG
// or ~/.kube/config) is tried first, then the in-cluster service account.
func NewClients(logger *slog.Logger, kubeConfigPath, kubeMaster string) (*Clients, error) {
	restConfig, err := buildRestConfig(logger, kubeConfigPath, kubeMaster)
	if err != nil {
		return nil, err
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("create clientset: %w", err)
	}

	metricsClientset, err := metricsv.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("create metrics clientset: %w", err)
	}

	return &Clients{
		Kubernetes: clientset,
		Metrics:    metricsClientset,
	}, nil
}

func buildRestConfig(logger *slog.Logger, kubeConfigPath, kubeMaster string) (*rest.Config, error) {
	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
	if kubeConfigPath != "" {
		loadingRules.ExplicitPath = kubeConfigPath
	}

	overrides := &clientcmd.ConfigOverrides{}
	if kubeMaster != "" {
		overrides.ClusterInfo.Server = kubeMaster
	}

	restConfig, kubeconfigErr := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(
		loadingRules,
		overrides,
	).ClientConfig()
	if kubeconfigErr == nil {
		logger.Info("using kubeconfig credentials", "host", restConfig.Host)

		return restConfig, nil
	}

	logger.Info("kubeconfig not usable, trying in-cluster config", "reason", kubeconfigErr)

	restConfig, inClusterErr := rest.InClusterConfig()
	if inClusterErr != nil {
		return nil, fmt.Errorf("%w: kubeconfig: %w; in-cluster: %w",
			ErrConnectionUnavailable,
			kubeconfigErr,
			inClusterErr,
		)
	}

	logger.Info("using in-cluster service account credentials", "host", restConfig.Host)

	return restConfig, nil
}
