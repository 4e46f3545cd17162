package k8s

import "errors"

// ErrConnectionUnavailable is returned when no credential source yields a
// usable cluster configuration.
var ErrConnectionUnavailable = errors.New("kubernetes connection unavailable")

// NamespaceNotFoundError represents a missing namespace; the exporter keeps
// serving empty snapshots.
type NamespaceNotFoundError struct{}

func (e *NamespaceNotFoundError) Error() string {
	return "namespace not found"
}

func (e *NamespaceNotFoundError) IsNotFound() {}

var errNamespaceNotFound = &NamespaceNotFoundError{}

// ForbiddenError represents an RBAC denial.
type ForbiddenError struct{}

func (e *ForbiddenError) Error() string {
	return "forbidden"
}

func (e *ForbiddenError) IsForbidden() {}

var errForbidden = &ForbiddenError{}
