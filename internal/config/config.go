package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/pflag"
	"k8s.io/apimachinery/pkg/api/resource"

	"github.com/skillcoder/kubemetrics-exporter/internal/infra/cronparser"
)

const maxPort = 65535

var (
	ErrInvalidPort     = errors.New("invalid port")
	ErrInvalidDuration = errors.New("invalid duration")
	ErrInvalidValue    = errors.New("invalid value")

	// ErrHelp is returned when -h or --help was requested.
	ErrHelp = pflag.ErrHelp
)

type Config struct {
	KubeConfig       string
	KubeMaster       string
	Namespace        string
	MetricsPort      string
	HTTPPort         string
	LogLevel         string
	LogFormat        string
	ScrapeTimeout    time.Duration
	UsageTierTimeout time.Duration
	KubectlPath      string
	KubectlFallback  bool
	KubectlMaxOutput int64
	PingerSchedule   string
}

// Load reads the configuration from the environment and then applies
// command-line flags from args (without the program name).
func Load(args []string) (*Config, error) {
	cfg := &Config{
		KubeConfig:     getEnvWithFallback(envKeyKubeConfig, envKeyKubeConfigFallback),
		KubeMaster:     getEnvWithFallback(envKeyKubeMaster, envKeyKubeMasterFallback),
		HTTPPort:       getEnvOrDefault(envKeyHTTPPort, defaultHTTPPort),
		LogLevel:       getEnvOrDefault(envKeyLogLevel, "info"),
		LogFormat:      getEnvOrDefault(envKeyLogFormat, "json"),
		KubectlPath:    getEnvOrDefault(envKeyKubectlPath, defaultKubectlPath),
		PingerSchedule: getEnvOrDefault(envKeyPingerSchedule, defaultPingerSchedule),
	}

	metricsPort := defaultMetricsPort

	if raw := os.Getenv(envKeyMetricsPort); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q: %w", ErrInvalidPort, envKeyMetricsPort, raw, err)
		}

		metricsPort = port
	}

	flags := pflag.NewFlagSet("kubemetrics-exporter", pflag.ContinueOnError)
	namespace := flags.StringP("namespace", "n", getEnvOrDefault(envKeyNamespace, defaultNamespace),
		"namespace to monitor")
	port := flags.IntP("port", "p", metricsPort, "port of the metrics endpoint")

	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if *port < 0 || *port > maxPort {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPort, *port)
	}

	if *namespace == "" {
		return nil, fmt.Errorf("%w: namespace must not be empty", ErrInvalidValue)
	}

	cfg.Namespace = *namespace
	cfg.MetricsPort = strconv.Itoa(*port)

	var err error

	cfg.ScrapeTimeout, err = parseDuration(envKeyScrapeTimeout, defaultScrapeTimeout, envMinScrapeTimeout)
	if err != nil {
		return nil, err
	}

	cfg.UsageTierTimeout, err = parseDuration(envKeyUsageTierTimeout, defaultUsageTierTimeout, envMinUsageTierTimeout)
	if err != nil {
		return nil, err
	}

	cfg.KubectlFallback, err = parseBool(envKeyKubectlFallback, true)
	if err != nil {
		return nil, err
	}

	cfg.KubectlMaxOutput, err = parseSize(envKeyKubectlMaxOutput, defaultKubectlMaxOutput)
	if err != nil {
		return nil, err
	}

	if err := cronparser.Validate(cfg.PingerSchedule); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidValue, envKeyPingerSchedule, err)
	}

	return cfg, nil
}

func parseDuration(key, defaultValue string, minValue time.Duration) (time.Duration, error) {
	raw := getEnvOrDefault(key, defaultValue)

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q: %w", ErrInvalidDuration, key, raw, err)
	}

	if d < minValue {
		return 0, fmt.Errorf("%w: %s=%s is below minimum %s", ErrInvalidDuration, key, d, minValue)
	}

	return d, nil
}

func parseBool(key string, defaultValue bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s=%q: %w", ErrInvalidValue, key, raw, err)
	}

	return v, nil
}

func parseSize(key, defaultValue string) (int64, error) {
	raw := getEnvOrDefault(key, defaultValue)

	q, err := resource.ParseQuantity(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q: %w", ErrInvalidValue, key, raw, err)
	}

	if q.Sign() <= 0 {
		return 0, fmt.Errorf("%w: %s=%q must be positive", ErrInvalidValue, key, raw)
	}

	return q.Value(), nil
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	return value
}

func getEnvWithFallback(key, fallbackKey string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return os.Getenv(fallbackKey)
}
