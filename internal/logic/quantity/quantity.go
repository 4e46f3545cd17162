package quantity

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"k8s.io/apimachinery/pkg/api/resource"
)

// Kind is the canonical unit a quantity resolves to.
type Kind string

const (
	KindCPUCores    Kind = "cpu_cores"
	KindMemoryBytes Kind = "memory_bytes"
)

// suffix scales a number by multiplier/divisor. Fractional units divide so
// that "42m" yields exactly 0.042.
type suffix struct {
	name       string
	multiplier float64
	divisor    float64
}

// Longest suffixes first: "Ki" must win over "k".
var cpuSuffixes = []suffix{
	{"n", 1, 1e9},
	{"u", 1, 1e6},
	{"m", 1, 1e3},
}

var memorySuffixes = []suffix{
	{"Ki", 1 << 10, 1},
	{"Mi", 1 << 20, 1},
	{"Gi", 1 << 30, 1},
	{"Ti", 1 << 40, 1},
	{"k", 1e3, 1},
	{"M", 1e6, 1},
	{"G", 1e9, 1},
	{"T", 1e12, 1},
}

// ParseCPU converts a CPU quantity string ("250m", "2", "100000n") to cores.
func ParseCPU(raw string) (float64, error) {
	return parse(raw, cpuSuffixes)
}

// ParseMemory converts a memory quantity string ("64Mi", "1G", "1024") to bytes.
func ParseMemory(raw string) (float64, error) {
	return parse(raw, memorySuffixes)
}

// Parse dispatches on kind.
func Parse(kind Kind, raw string) (float64, error) {
	switch kind {
	case KindCPUCores:
		return ParseCPU(raw)
	case KindMemoryBytes:
		return ParseMemory(raw)
	default:
		return 0, fmt.Errorf("%w: unknown kind %q", ErrQuantityParse, kind)
	}
}

func parse(raw string, suffixes []suffix) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}

	for _, s := range suffixes {
		number, ok := strings.CutSuffix(raw, s.name)
		if !ok {
			continue
		}

		value, err := parseFinite(number)
		if err != nil {
			break
		}

		return value * s.multiplier / s.divisor, nil
	}

	value, err := parseFinite(raw)
	if err == nil {
		return value, nil
	}

	// Remaining valid Kubernetes forms: Pi, Ei, P, E and exponents like 1e3.
	q, qErr := resource.ParseQuantity(raw)
	if qErr != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrQuantityParse, raw, qErr)
	}

	return q.AsApproximateFloat64(), nil
}

func parseFinite(s string) (float64, error) {
	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("not a finite number: %q", s)
	}

	return value, nil
}
