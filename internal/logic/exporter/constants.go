package exporter

const (
	// UnknownNode is reported for pods that are not scheduled yet.
	UnknownNode = "unknown"

	// ZeroQuantity is the raw value used for undeclared resources and missing usage.
	ZeroQuantity = "0"

	// CreationTimestampLayout is the fixed UTC layout of PodRecord.CreationTimestamp.
	CreationTimestampLayout = "2006-01-02T15:04:05Z"
)
