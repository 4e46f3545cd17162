package kubectl_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skillcoder/kubemetrics-exporter/internal/adapters/outbound/kubectl"
	"github.com/skillcoder/kubemetrics-exporter/internal/logic/exporter"
)

const podMetricsJSON = `{
  "kind": "PodMetricsList",
  "apiVersion": "metrics.k8s.io/v1beta1",
  "metadata": {},
  "items": [
    {
      "metadata": {"name": "web-0", "namespace": "demo"},
      "timestamp": "2026-10-19T08:00:00Z",
      "window": "15s",
      "containers": [
        {"name": "app", "usage": {"cpu": "42m", "memory": "32Mi"}},
        {"name": "sidecar", "usage": {"cpu": "1250000n"}}
      ]
    }
  ]
}`

// writeScript creates an executable shell script standing in for kubectl.
func writeScript(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "kubectl")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o700))

	return path
}

// Subtests run sequentially: writing an executable while another test forks
// can fail with "text file busy".
func TestAdapter_PodUsageQuery(t *testing.T) {
	logger := slog.Default()

	t.Run("decodes raw usage strings", func(t *testing.T) {
		script := writeScript(t, "cat <<'JSON'\n"+podMetricsJSON+"\nJSON")
		adapter := kubectl.New(logger, script, time.Second, 0)

		usage, err := adapter.PodUsageQuery(t.Context(), "demo")
		require.NoError(t, err)
		require.Equal(t, exporter.UsageMap{
			"web-0": {
				"app":     {CPU: "42m", Memory: "32Mi"},
				"sidecar": {CPU: "1250000n", Memory: "0"},
			},
		}, usage)
	})

	t.Run("passes the metrics api path", func(t *testing.T) {
		script := writeScript(t, `if [ "$1 $2 $3" != "get --raw /apis/metrics.k8s.io/v1beta1/namespaces/demo/pods" ]; then
  echo "unexpected args: $*" >&2
  exit 1
fi
echo '{"items": []}'`)
		adapter := kubectl.New(logger, script, time.Second, 0)

		usage, err := adapter.PodUsageQuery(t.Context(), "demo")
		require.NoError(t, err)
		require.Empty(t, usage)
	})

	t.Run("non-zero exit includes stderr", func(t *testing.T) {
		script := writeScript(t, `echo 'Error from server (ServiceUnavailable)' >&2
exit 1`)
		adapter := kubectl.New(logger, script, time.Second, 0)

		_, err := adapter.PodUsageQuery(t.Context(), "demo")
		require.Error(t, err)
		require.Contains(t, err.Error(), "ServiceUnavailable")
	})

	t.Run("hanging command is killed at timeout", func(t *testing.T) {
		script := writeScript(t, "exec sleep 10")
		adapter := kubectl.New(logger, script, 100*time.Millisecond, 0)

		start := time.Now()
		_, err := adapter.PodUsageQuery(t.Context(), "demo")
		require.ErrorIs(t, err, kubectl.ErrTimeout)
		require.Less(t, time.Since(start), 3*time.Second)
	})

	t.Run("oversized output is rejected", func(t *testing.T) {
		script := writeScript(t, "head -c 65536 /dev/zero")
		adapter := kubectl.New(logger, script, 2*time.Second, 1024)

		_, err := adapter.PodUsageQuery(t.Context(), "demo")
		require.ErrorIs(t, err, kubectl.ErrOutputTooLarge)
	})

	t.Run("malformed json is rejected", func(t *testing.T) {
		script := writeScript(t, "echo 'not json'")
		adapter := kubectl.New(logger, script, time.Second, 0)

		_, err := adapter.PodUsageQuery(t.Context(), "demo")
		require.ErrorIs(t, err, kubectl.ErrMalformedOutput)
	})

	t.Run("missing items is rejected", func(t *testing.T) {
		script := writeScript(t, `echo '{"kind": "Status"}'`)
		adapter := kubectl.New(logger, script, time.Second, 0)

		_, err := adapter.PodUsageQuery(t.Context(), "demo")
		require.ErrorIs(t, err, kubectl.ErrMalformedOutput)
	})

	t.Run("missing binary fails", func(t *testing.T) {
		adapter := kubectl.New(logger, filepath.Join(t.TempDir(), "absent"), time.Second, 0)

		_, err := adapter.PodUsageQuery(t.Context(), "demo")
		require.Error(t, err)
	})
}

func TestAdapter_Identity(t *testing.T) {
	t.Parallel()

	adapter := kubectl.New(slog.Default(), "", 0, 0)

	require.Equal(t, "kubectl-raw", adapter.Name())
	require.Equal(t, exporter.ProvenanceCLIFallback, adapter.Provenance())
	require.Equal(t, "/apis/metrics.k8s.io/v1beta1/namespaces/demo/pods", kubectl.MetricsAPIPath("demo"))
}
