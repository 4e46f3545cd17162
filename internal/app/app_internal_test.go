package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/api/resource"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"
	metricsv1beta1 "k8s.io/metrics/pkg/apis/metrics/v1beta1"
	metricsfake "k8s.io/metrics/pkg/client/clientset/versioned/fake"

	"github.com/skillcoder/kubemetrics-exporter/internal/adapters/outbound/k8s"
	"github.com/skillcoder/kubemetrics-exporter/internal/config"
	"github.com/skillcoder/kubemetrics-exporter/internal/infra/appstate"
	"github.com/skillcoder/kubemetrics-exporter/internal/infra/pinger"
)

type allChannelsCloseCase struct {
	name                         string
	giveNumChannels              int
	giveContextCancelBeforeClose bool
}

func TestAllChannelsClose(t *testing.T) {
	t.Parallel()

	logger := slog.Default()

	tests := []allChannelsCloseCase{
		{name: "zero channels closes immediately", giveNumChannels: 0},
		{name: "one channel closes when it closes", giveNumChannels: 1},
		{name: "two channels close when both close", giveNumChannels: 2},
		{name: "cancelled context closes without inputs", giveNumChannels: 2, giveContextCancelBeforeClose: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := t.Context()

			if tt.giveContextCancelBeforeClose {
				var cancel context.CancelFunc

				ctx, cancel = context.WithCancel(ctx)
				cancel()
			}

			inputs := make([]chan struct{}, 0, tt.giveNumChannels)
			chans := make([]<-chan struct{}, 0, tt.giveNumChannels)

			for range tt.giveNumChannels {
				ch := make(chan struct{})
				inputs = append(inputs, ch)
				chans = append(chans, ch)
			}

			out := allChannelsClose(ctx, logger, chans...)

			if tt.giveNumChannels > 0 && !tt.giveContextCancelBeforeClose {
				select {
				case <-out:
					t.Fatal("out closed before inputs")
				case <-time.After(20 * time.Millisecond):
				}

				for _, ch := range inputs {
					close(ch)
				}
			}

			select {
			case <-out:
			case <-time.After(500 * time.Millisecond):
				t.Fatal("expected out channel to close")
			}
		})
	}
}

type everySchedule time.Duration

func (e everySchedule) Next(after time.Time) time.Time {
	return after.Add(time.Duration(e))
}

func testClients() *k8s.Clients {
	pod := &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name:              "web-0",
			Namespace:         "demo",
			CreationTimestamp: metav1.NewTime(time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)),
		},
		Spec: corev1.PodSpec{
			NodeName: "node-a",
			Containers: []corev1.Container{{
				Name: "app",
				Resources: corev1.ResourceRequirements{
					Requests: corev1.ResourceList{
						corev1.ResourceCPU:    resource.MustParse("100m"),
						corev1.ResourceMemory: resource.MustParse("64Mi"),
					},
					Limits: corev1.ResourceList{
						corev1.ResourceCPU:    resource.MustParse("500m"),
						corev1.ResourceMemory: resource.MustParse("128Mi"),
					},
				},
			}},
		},
		Status: corev1.PodStatus{Phase: corev1.PodRunning},
	}

	metricsClientset := metricsfake.NewSimpleClientset()
	metricsClientset.PrependReactor("list", "pods", func(k8stesting.Action) (bool, runtime.Object, error) {
		return true, &metricsv1beta1.PodMetricsList{
			Items: []metricsv1beta1.PodMetrics{{
				ObjectMeta: metav1.ObjectMeta{Name: "web-0", Namespace: "demo"},
				Containers: []metricsv1beta1.ContainerMetrics{{
					Name: "app",
					Usage: corev1.ResourceList{
						corev1.ResourceCPU:    resource.MustParse("42m"),
						corev1.ResourceMemory: resource.MustParse("33554432"),
					},
				}},
			}},
		}, nil
	})

	return &k8s.Clients{
		Kubernetes: fake.NewClientset(pod),
		Metrics:    metricsClientset,
	}
}

func TestApp_Run(t *testing.T) {
	t.Parallel()

	logger := slog.Default()
	cfg := &config.Config{
		Namespace:        "demo",
		MetricsPort:      "0",
		HTTPPort:         "0",
		ScrapeTimeout:    2 * time.Second,
		UsageTierTimeout: time.Second,
	}

	pingers := pinger.New(logger, everySchedule(time.Hour))
	state := appstate.New(logger, time.Now(), nil, pingers)
	application := newWithClients(logger, cfg, state, pingers, testClients())

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	done := make(chan error, 1)

	go func() {
		done <- application.Run(ctx)
	}()

	require.Eventually(t, func() bool {
		return state.GetState() == appstate.StateRunning
	}, 5*time.Second, 10*time.Millisecond)

	require.True(t, state.IsReady())

	resp, err := http.Get("http://" + application.scrapeServer.Addr().String() + "/metrics")
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode)

	exposition := string(body)
	require.Contains(t, exposition, `pod_cpu_usage_cores{container="app",namespace="demo",pod="web-0"} 0.042`)
	require.Contains(t, exposition, `pod_cpu_request_cores{container="app",namespace="demo",pod="web-0"} 0.1`)
	require.Contains(t, exposition, `pod_memory_limit_bytes{container="app",namespace="demo",pod="web-0"} 1.34217728e+08`)
	require.Contains(t, exposition, `pod_info{creation_timestamp="2026-10-19T08:00:00Z",namespace="demo",node="node-a",pod="web-0",status="Running"} 1`)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("run did not return after cancel")
	}

	require.Equal(t, appstate.StateTerminated, state.GetState())
}

func TestNew_ConnectionUnavailable(t *testing.T) {
	t.Setenv("KUBERNETES_SERVICE_HOST", "")
	t.Setenv("KUBERNETES_SERVICE_PORT", "")
	t.Setenv("KUBECONFIG", "")

	logger := slog.Default()
	cfg := &config.Config{
		KubeConfig:       filepath.Join(t.TempDir(), "missing"),
		Namespace:        "demo",
		MetricsPort:      "0",
		HTTPPort:         "0",
		ScrapeTimeout:    2 * time.Second,
		UsageTierTimeout: time.Second,
	}

	pingers := pinger.New(logger, everySchedule(time.Hour))
	state := appstate.New(logger, time.Now(), nil, pingers)

	application, err := New(logger, cfg, state, pingers)
	require.ErrorIs(t, err, k8s.ErrConnectionUnavailable)
	require.Nil(t, application)

	require.Equal(t, appstate.StateInit, state.GetState())
	require.Empty(t, pingers.GetAllStats())
}
