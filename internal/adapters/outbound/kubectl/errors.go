package kubectl

import "errors"

var (
	ErrTimeout         = errors.New("kubectl timed out")
	ErrOutputTooLarge  = errors.New("kubectl output exceeds limit")
	ErrMalformedOutput = errors.New("malformed kubectl output")
)
