package config

import "time"

// Env key constants. All exporter configuration env vars use KUBEMETRICS_ prefix;
// duration values support explicit units (e.g. 5s, 1m).

// Path to kubeconfig file. If unset, KUBECONFIG is used as fallback.
const envKeyKubeConfig = "KUBEMETRICS_KUBECONFIG"

// Kubernetes API server URL. If unset, KUBERNETES_MASTER is used as fallback.
const envKeyKubeMaster = "KUBEMETRICS_KUBE_MASTER"

// Namespace to report on. Overridden by --namespace.
const (
	envKeyNamespace  = "KUBEMETRICS_NAMESPACE"
	defaultNamespace = "default"
)

// Port of the scrape endpoint (GET /metrics). Overridden by --port.
const (
	envKeyMetricsPort  = "KUBEMETRICS_METRICS_PORT"
	defaultMetricsPort = 8000
)

// Port for health/readiness HTTP server.
const (
	envKeyHTTPPort  = "KUBEMETRICS_HTTP_PORT"
	defaultHTTPPort = "8080"
)

// Log level: debug, info, warn, error.
const envKeyLogLevel = "KUBEMETRICS_LOG_LEVEL"

// Log format: json or text.
const envKeyLogFormat = "KUBEMETRICS_LOG_FORMAT"

// Upper bound for building one snapshot, i.e. for one scrape.
const (
	envKeyScrapeTimeout  = "KUBEMETRICS_SCRAPE_TIMEOUT"
	envMinScrapeTimeout  = 100 * time.Millisecond
	defaultScrapeTimeout = "10s"
)

// Upper bound for a single usage source tier.
const (
	envKeyUsageTierTimeout  = "KUBEMETRICS_USAGE_TIER_TIMEOUT"
	envMinUsageTierTimeout  = 100 * time.Millisecond
	defaultUsageTierTimeout = "5s"
)

// kubectl binary used by the fallback usage tier.
const (
	envKeyKubectlPath  = "KUBEMETRICS_KUBECTL_PATH"
	defaultKubectlPath = "kubectl"
)

// Enables the kubectl fallback usage tier: true or false.
const envKeyKubectlFallback = "KUBEMETRICS_KUBECTL_FALLBACK"

// Maximum kubectl stdout size as a Kubernetes quantity (e.g. 8Mi).
const (
	envKeyKubectlMaxOutput  = "KUBEMETRICS_KUBECTL_MAX_OUTPUT"
	defaultKubectlMaxOutput = "8Mi"
)

// Pinger schedule as a cron expression or descriptor (e.g. @every 10s).
const (
	envKeyPingerSchedule  = "KUBEMETRICS_PINGER_SCHEDULE"
	defaultPingerSchedule = "@every 10s"
)

// Standard k8s env keys used as fallback when KUBEMETRICS_* are unset.
const (
	envKeyKubeConfigFallback = "KUBECONFIG"
	envKeyKubeMasterFallback = "KUBERNETES_MASTER"
)
