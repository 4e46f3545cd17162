package quantity

import "errors"

// ErrQuantityParse is returned when a value matches neither the suffix tables
// nor the Kubernetes quantity grammar.
var ErrQuantityParse = errors.New("parse quantity")
