package kubectl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/skillcoder/kubemetrics-exporter/internal/logic/exporter"
)

const (
	tierName = "kubectl-raw"

	metricsAPIPathFormat = "/apis/metrics.k8s.io/v1beta1/namespaces/%s/pods"

	defaultBinary    = "kubectl"
	defaultTimeout   = 5 * time.Second
	defaultMaxOutput = 8 << 20 // 8Mi

	maxStderrBytes = 4 << 10
	waitDelay      = time.Second
)

// Adapter fetches pod usage by running `kubectl get --raw` against the
// metrics.k8s.io API. It is the fallback tier when the typed client fails.
type Adapter struct {
	logger    *slog.Logger
	binary    string
	timeout   time.Duration
	maxOutput int64
}

// New creates a kubectl fallback tier. Zero values select the defaults.
func New(
	logger *slog.Logger,
	binary string,
	timeout time.Duration,
	maxOutput int64,
) *Adapter {
	if binary == "" {
		binary = defaultBinary
	}

	if timeout <= 0 {
		timeout = defaultTimeout
	}

	if maxOutput <= 0 {
		maxOutput = defaultMaxOutput
	}

	return &Adapter{
		logger:    logger,
		binary:    binary,
		timeout:   timeout,
		maxOutput: maxOutput,
	}
}

var _ exporter.UsageProvider = (*Adapter)(nil)

func (a *Adapter) Name() string {
	return tierName
}

func (a *Adapter) Provenance() exporter.Provenance {
	return exporter.ProvenanceCLIFallback
}

// PodUsageQuery runs the command with a bounded timeout and output size.
// Exceeding either is reported as an error.
func (a *Adapter) PodUsageQuery(
	ctx context.Context,
	namespace string,
) (exporter.UsageMap, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	path := MetricsAPIPath(namespace)
	stdout := newLimitedBuffer(a.maxOutput)
	stderr := newLimitedBuffer(maxStderrBytes)

	//nolint:gosec // binary comes from operator configuration, path is built from a fixed format
	cmd := exec.CommandContext(ctx, a.binary, "get", "--raw", path)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = waitDelay

	start := time.Now()
	err := cmd.Run()

	a.logger.DebugContext(ctx, "kubectl finished",
		"path", path,
		"duration", time.Since(start),
		"stdoutBytes", stdout.Len(),
	)

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("run %s: %w: %w", a.binary, ErrTimeout, ctxErr)
	}

	if err != nil {
		return nil, fmt.Errorf("run %s: %w: %s", a.binary, err, strings.TrimSpace(stderr.String()))
	}

	if stdout.Overflowed() {
		return nil, fmt.Errorf("run %s: %w: limit %d bytes", a.binary, ErrOutputTooLarge, a.maxOutput)
	}

	return decodeUsage(stdout.Bytes())
}

// MetricsAPIPath returns the raw API path of namespaced pod metrics.
func MetricsAPIPath(namespace string) string {
	return fmt.Sprintf(metricsAPIPathFormat, namespace)
}

type podMetricsList struct {
	Items *[]podMetrics `json:"items"`
}

type podMetrics struct {
	Metadata struct {
		Name string `json:"name"`
	} `json:"metadata"`
	Containers []containerMetrics `json:"containers"`
}

type containerMetrics struct {
	Name  string            `json:"name"`
	Usage map[string]string `json:"usage"`
}

func decodeUsage(data []byte) (exporter.UsageMap, error) {
	var list podMetricsList

	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&list); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedOutput, err)
	}

	if list.Items == nil {
		return nil, fmt.Errorf("%w: missing items", ErrMalformedOutput)
	}

	usage := make(exporter.UsageMap, len(*list.Items))

	for _, item := range *list.Items {
		if item.Metadata.Name == "" {
			return nil, fmt.Errorf("%w: item without metadata.name", ErrMalformedOutput)
		}

		containers := make(exporter.PodUsage, len(item.Containers))
		for _, c := range item.Containers {
			containers[c.Name] = exporter.RawUsage{
				CPU:    usageOrZero(c.Usage, "cpu"),
				Memory: usageOrZero(c.Usage, "memory"),
			}
		}

		usage[item.Metadata.Name] = containers
	}

	return usage, nil
}

func usageOrZero(usage map[string]string, key string) string {
	if v, ok := usage[key]; ok && v != "" {
		return v
	}

	return exporter.ZeroQuantity
}

// limitedBuffer keeps at most limit bytes and drops the rest, so a chatty
// child process never blocks on a full pipe.
type limitedBuffer struct {
	buf        bytes.Buffer
	limit      int64
	overflowed bool
}

func newLimitedBuffer(limit int64) *limitedBuffer {
	return &limitedBuffer{limit: limit}
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	remaining := b.limit - int64(b.buf.Len())
	if remaining <= 0 {
		b.overflowed = b.overflowed || len(p) > 0

		return len(p), nil
	}

	if int64(len(p)) > remaining {
		b.buf.Write(p[:remaining])
		b.overflowed = true

		return len(p), nil
	}

	return b.buf.Write(p)
}

func (b *limitedBuffer) Bytes() []byte    { return b.buf.Bytes() }
func (b *limitedBuffer) String() string   { return b.buf.String() }
func (b *limitedBuffer) Len() int         { return b.buf.Len() }
func (b *limitedBuffer) Overflowed() bool { return b.overflowed }

