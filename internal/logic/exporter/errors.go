package exporter

import "errors"

var (
	ErrInventoryFetch      = errors.New("fetch pod inventory")
	ErrUsageSourceDegraded = errors.New("all usage sources failed")
)
