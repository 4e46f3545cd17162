package httpserver

import "time"

const (
	defaultPort       = "8080"
	defaultScrapePort = "8000"

	readTimeout       = 3 * time.Second
	readHeaderTimeout = 3 * time.Second
	writeTimeout      = 5 * time.Second
	idleTimeout       = 60 * time.Second
	maxHeaderBytes    = 1 << 12 // 4kb

	// headroom between the scrape deadline and the write deadline so a slow
	// snapshot still gets its response written.
	scrapeWriteHeadroom = 5 * time.Second
)
