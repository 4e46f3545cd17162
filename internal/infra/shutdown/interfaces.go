package shutdown

import (
	"context"
	"os"
)

// Shutdowner is implemented by components that release resources on exit.
type Shutdowner interface {
	Name() string
	Shutdown(ctx context.Context) error
}

type quiter interface {
	Quit() <-chan os.Signal
}
