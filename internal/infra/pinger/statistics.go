package pinger

import "time"

// Statistics is a point-in-time copy of one pinger's results.
type Statistics struct {
	Name           string        `json:"name"`
	ReadyCritical  bool          `json:"readyCritical"`
	HealthCritical bool          `json:"healthCritical"`
	LastRun        time.Time     `json:"lastRun"`
	LastSuccess    time.Time     `json:"lastSuccess"`
	LastLatency    time.Duration `json:"lastLatency"`
	LastError      string        `json:"lastError,omitempty"`
	SuccessCount   uint64        `json:"successCount"`
	ErrorCount     uint64        `json:"errorCount"`
}

// Failing reports whether the most recent ping failed.
func (s *Statistics) Failing() bool {
	return s.LastError != ""
}

type record struct {
	pinger         Pinger
	readyCritical  bool
	healthCritical bool
	timeout        time.Duration

	lastRun      time.Time
	lastSuccess  time.Time
	lastLatency  time.Duration
	lastErr      error
	successCount uint64
	errorCount   uint64
}

func (r *record) observe(at time.Time, latency time.Duration, err error) {
	r.lastRun = at
	r.lastLatency = latency
	r.lastErr = err

	if err != nil {
		r.errorCount++

		return
	}

	r.lastSuccess = at
	r.successCount++
}

func (r *record) snapshot() *Statistics {
	stats := &Statistics{
		Name:           r.pinger.Name(),
		ReadyCritical:  r.readyCritical,
		HealthCritical: r.healthCritical,
		LastRun:        r.lastRun,
		LastSuccess:    r.lastSuccess,
		LastLatency:    r.lastLatency,
		SuccessCount:   r.successCount,
		ErrorCount:     r.errorCount,
	}

	if r.lastErr != nil {
		stats.LastError = r.lastErr.Error()
	}

	return stats
}
