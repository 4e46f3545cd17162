package cronparser

import (
	"fmt"
	"strings"
	"time"

	cron "github.com/netresearch/go-cron"
)

var _parser = cron.MustNewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Schedule yields successive activation times.
type Schedule interface {
	Next(after time.Time) time.Time
}

// Parse parses a five-field cron expression or a descriptor such as
// "@every 10s". Specs without a CRON_TZ=/TZ= prefix are evaluated in UTC.
func Parse(spec string) (Schedule, error) {
	schedule, err := _parser.Parse(withTZ(spec))
	if err != nil {
		return nil, fmt.Errorf("parse cron spec %q: %w", spec, err)
	}

	return schedule, nil
}

// Validate reports whether spec can be parsed.
func Validate(spec string) error {
	_, err := Parse(spec)

	return err
}

func withTZ(spec string) string {
	spec = strings.TrimSpace(spec)

	if strings.HasPrefix(spec, "CRON_TZ=") || strings.HasPrefix(spec, "TZ=") {
		return spec
	}

	return "CRON_TZ=UTC " + spec
}
